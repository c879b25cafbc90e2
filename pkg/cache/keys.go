package cache

// Keyer generates cache keys.
type Keyer interface {
	// SceneKey identifies a storyboard by the inputs that shape it.
	SceneKey(opts SceneKeyOpts) string

	// ArtifactKey identifies one rendered output of a scene.
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string
}

// SceneKeyOpts holds the inputs that determine a storyboard.
type SceneKeyOpts struct {
	Vertices string // canonical "x,y;x,y;..." form
	SX, SY   float64
	Palette  string // canonical palette encoding
	Aspect   float64
}

// ArtifactKeyOpts holds the render settings of one output.
type ArtifactKeyOpts struct {
	Format string
	Width  int
	Height int
	FPS    int
	Time   float64
	// EmbedFont marks SVG output with the font inlined.
	EmbedFont bool
}

// DefaultKeyer hashes key options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SceneKey returns "scene:<sha256>".
func (DefaultKeyer) SceneKey(opts SceneKeyOpts) string {
	return hashKey("scene", opts.Vertices, opts.SX, opts.SY, opts.Palette, opts.Aspect)
}

// ArtifactKey returns "artifact:<format>:<sha256>".
func (DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+opts.Format, sceneHash, opts.Width, opts.Height, opts.FPS, opts.Time, opts.EmbedFont)
}

var _ Keyer = DefaultKeyer{}
