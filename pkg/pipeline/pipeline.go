// Package pipeline provides the build → render pipeline shared by the CLI
// and the preview server.
//
// # Architecture
//
// The pipeline has two stages:
//
//  1. Build: lay out the storyboard for the vertices and the scaling matrix
//  2. Render: produce each requested format (PNG, GIF, SVG, JSON, storyboard)
//
// Rendered artifacts are cached per format; the cache key covers every
// option that affects the bytes.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Vertices: geom.Shape{geom.Pt(1, 1), geom.Pt(3, 1), geom.Pt(2, 3)},
//	    Formats:  []string{"png", "gif"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	gif := result.Artifacts["gif"]
package pipeline

import (
	"encoding/json"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lintrans/pkg/cache"
	"github.com/matzehuels/lintrans/pkg/errors"
	"github.com/matzehuels/lintrans/pkg/geom"
	"github.com/matzehuels/lintrans/pkg/scene"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultWidth is the default image width in pixels.
	DefaultWidth = 960

	// DefaultHeight is the default image height in pixels.
	DefaultHeight = 540

	// DefaultFPS is the default animation frame rate.
	DefaultFPS = 15

	// DefaultFormat is rendered when no format is requested.
	DefaultFormat = FormatPNG
)

// Format constants for output formats.
const (
	FormatPNG        = "png"
	FormatGIF        = "gif"
	FormatSVG        = "svg"
	FormatJSON       = "json"
	FormatStoryboard = "storyboard"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG:        true,
	FormatGIF:        true,
	FormatSVG:        true,
	FormatJSON:       true,
	FormatStoryboard: true,
}

// Extension returns the file extension for a format.
func Extension(format string) string {
	switch format {
	case FormatStoryboard:
		return "storyboard.svg"
	default:
		return format
	}
}

// ContentType returns the MIME type of a format.
func ContentType(format string) string {
	switch format {
	case FormatPNG:
		return "image/png"
	case FormatGIF:
		return "image/gif"
	case FormatSVG, FormatStoryboard:
		return "image/svg+xml"
	case FormatJSON:
		return "application/json"
	default:
		return "application/octet-stream"
	}
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Scene options
	Vertices geom.Shape          `json:"vertices,omitempty"`
	Matrix   *geom.ScalingMatrix `json:"matrix,omitempty"` // nil selects diag(2, 2)
	Palette  scene.PaletteHex    `json:"palette,omitempty"`

	// Render options
	Width     int      `json:"width,omitempty"`
	Height    int      `json:"height,omitempty"`
	FPS       int      `json:"fps,omitempty"`
	Time      *float64 `json:"time,omitempty"` // still frame; nil or negative selects the end
	Formats   []string `json:"formats,omitempty"`
	EmbedFont bool     `json:"embed_font,omitempty"`
	Refresh   bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger   *log.Logger           `json:"-"`
	Progress func(done, total int) `json:"-"` // GIF frame progress

	palette   scene.Palette
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Scene is the built storyboard.
	Scene *scene.Scene

	// SceneHash identifies the scene inputs.
	SceneHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// ArtifactHashes identifies each artifact by its full cache key, so
	// outputs differing in any render setting get different hashes.
	ArtifactHashes map[string]string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which artifacts came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Vertices   int
	Steps      int
	Duration   float64 // animation length in seconds
	BuildTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits per format.
type CacheInfo struct {
	Hits map[string]bool
}

// AllHit reports whether every artifact came from the cache.
func (c CacheInfo) AllHit() bool {
	if len(c.Hits) == 0 {
		return false
	}
	for _, hit := range c.Hits {
		if !hit {
			return false
		}
	}
	return true
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: png, gif, svg, json, storyboard)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForBuild(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForBuild validates the scene inputs and applies their defaults.
func (o *Options) ValidateForBuild() error {
	if len(o.Vertices) == 0 {
		o.Vertices = scene.DefaultVertices()
	}
	if len(o.Vertices) < 3 {
		return errors.New(errors.ErrCodeInvalidInput, "a polygon needs at least 3 vertices, got %d", len(o.Vertices))
	}
	for _, p := range o.Vertices {
		if !finite(p.X) || !finite(p.Y) {
			return errors.New(errors.ErrCodeInvalidInput, "vertex %s is not finite", p)
		}
	}
	if o.Matrix == nil {
		m := scene.DefaultMatrix()
		o.Matrix = &m
	}
	if !finite(o.Matrix.SX) || !finite(o.Matrix.SY) {
		return errors.New(errors.ErrCodeInvalidInput, "scale factors must be finite")
	}
	pal, err := o.Palette.Palette()
	if err != nil {
		return err
	}
	o.palette = pal
	o.SetRenderDefaults()
	return errors.ValidateDimensions(o.Width, o.Height)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.FPS == 0 {
		o.FPS = DefaultFPS
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := errors.ValidateDimensions(o.Width, o.Height); err != nil {
		return err
	}
	if err := errors.ValidateFPS(o.FPS); err != nil {
		return err
	}
	if o.Time != nil && !finite(*o.Time) {
		return errors.New(errors.ErrCodeInvalidInput, "time must be finite")
	}
	return ValidateFormats(o.Formats)
}

// StillTime returns the time of the still frame, negative for the end.
func (o *Options) StillTime() float64 {
	if o.Time == nil {
		return -1
	}
	return *o.Time
}

// SceneConfig returns the storyboard configuration. The frame aspect
// follows the image so the scene fills it. Call after ValidateForBuild.
func (o *Options) SceneConfig() scene.Config {
	return scene.Config{
		Vertices: o.Vertices,
		Matrix:   *o.Matrix,
		Palette:  o.palette,
		Aspect:   float64(o.Width) / float64(o.Height),
	}
}

// SceneKeyOpts returns cache key options for the scene inputs.
func (o *Options) SceneKeyOpts() cache.SceneKeyOpts {
	pal, _ := json.Marshal(o.Palette)
	return cache.SceneKeyOpts{
		Vertices: geom.FormatShape(o.Vertices),
		SX:       o.Matrix.SX,
		SY:       o.Matrix.SY,
		Palette:  string(pal),
		Aspect:   float64(o.Width) / float64(o.Height),
	}
}

// ArtifactKeyOpts returns cache key options for one format. Settings that
// do not affect a format are left out so unrelated changes keep hitting.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatPNG:
		k.Width, k.Height, k.Time = o.Width, o.Height, o.StillTime()
	case FormatSVG:
		k.Width, k.Height, k.Time, k.EmbedFont = o.Width, o.Height, o.StillTime(), o.EmbedFont
	case FormatGIF:
		k.Width, k.Height, k.FPS = o.Width, o.Height, o.FPS
	case FormatJSON:
		k.FPS = o.FPS
	}
	if k.Time < 0 {
		k.Time = -1
	}
	return k
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
