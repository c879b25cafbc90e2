package scene

import (
	"fmt"
	"strings"

	"github.com/matzehuels/lintrans/pkg/errors"
	"github.com/matzehuels/lintrans/pkg/geom"
)

// DefaultAspect is the frame aspect ratio (width / height) used when a
// Config does not set one.
const DefaultAspect = 16.0 / 9.0

// Config parameterizes the storyboard.
type Config struct {
	// Vertices are the polygon vertices in data coordinates.
	Vertices geom.Shape
	// Matrix is applied to Vertices. Zero and negative factors are allowed.
	Matrix geom.ScalingMatrix
	// Palette colors the scene. The zero value selects DefaultPalette.
	Palette Palette
	// Aspect is the frame width divided by its height.
	Aspect float64
}

// DefaultVertices returns the triangle (1, 1), (3, 1), (2, 3).
func DefaultVertices() geom.Shape {
	return geom.Shape{geom.Pt(1, 1), geom.Pt(3, 1), geom.Pt(2, 3)}
}

// DefaultMatrix returns diag(2, 2).
func DefaultMatrix() geom.ScalingMatrix {
	return geom.Uniform(2)
}

// DefaultConfig returns the demonstration's stock configuration.
func DefaultConfig() Config {
	return Config{
		Vertices: DefaultVertices(),
		Matrix:   DefaultMatrix(),
		Palette:  DefaultPalette(),
		Aspect:   DefaultAspect,
	}
}

// Object ids used by the storyboard.
const (
	IDAxes     = "axes"
	IDTriangle = "triangle"
	IDMatrix   = "matrix"
	IDScaled   = "scaled"
	IDFilled   = "filled"
)

// LabelID returns the id of the i-th original vertex label.
func LabelID(i int) string { return fmt.Sprintf("label/%d", i) }

// VectorID returns the id of the i-th column vector.
func VectorID(i int) string { return fmt.Sprintf("vector/%d", i) }

// EqualsID returns the id of the i-th equals sign.
func EqualsID(i int) string { return fmt.Sprintf("equals/%d", i) }

// ResultID returns the id of the i-th product vector.
func ResultID(i int) string { return fmt.Sprintf("result/%d", i) }

// DotID returns the id of the i-th transformed-point dot.
func DotID(i int) string { return fmt.Sprintf("dot/%d", i) }

// FinalLabelID returns the id of the i-th transformed vertex label.
func FinalLabelID(i int) string { return fmt.Sprintf("final/%d", i) }

// Build lays out the storyboard for cfg.
func Build(cfg Config) (*Scene, error) {
	if len(cfg.Vertices) < 3 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "a polygon needs at least 3 vertices, got %d", len(cfg.Vertices))
	}
	if cfg.Aspect <= 0 {
		cfg.Aspect = DefaultAspect
	}
	if cfg.Palette == (Palette{}) {
		cfg.Palette = DefaultPalette()
	}
	cfg.Vertices = cfg.Vertices.Clone()

	frameWidth := FrameHeight * cfg.Aspect
	axes := NewAxes(frameWidth)
	sc := &Scene{
		cfg:         cfg,
		axes:        axes,
		frameWidth:  frameWidth,
		initial:     newState(),
		original:    cfg.Vertices.Clone(),
		transformed: geom.Transform(cfg.Vertices, cfg.Matrix),
	}
	b := &builder{sc: sc}
	b.script()
	sc.duration = b.t
	return sc, nil
}

type builder struct {
	sc *Scene
	t  float64
}

func (b *builder) add(o Object) {
	if o.Opacity == 0 {
		o.Opacity = 1
	}
	b.sc.initial.add(o)
}

func (b *builder) play(name, desc string, duration float64, anims ...Animation) {
	b.sc.steps = append(b.sc.steps, Step{
		Name:        name,
		Description: desc,
		Start:       b.t,
		Duration:    duration,
		Rate:        Smooth,
		Animations:  anims,
	})
	b.t += duration
}

func (b *builder) wait(duration float64) {
	b.sc.steps = append(b.sc.steps, Step{
		Name:        "wait",
		Description: fmt.Sprintf("Hold for %ss", geom.FormatNumber(duration)),
		Start:       b.t,
		Duration:    duration,
		Rate:        Linear,
	})
	b.t += duration
}

func (b *builder) script() {
	sc := b.sc
	pal := sc.cfg.Palette
	ax := sc.axes
	m := sc.cfg.Matrix
	vertices := sc.original
	transformed := sc.transformed

	b.add(Object{ID: IDAxes, Kind: KindAxes, Axes: &ax, Stroke: pal.Axes, StrokeWidth: StrokeWidth})
	b.play("create axes", "Draw the x and y axes over [-10, 10]", 1, Create{IDAxes})

	b.add(Object{ID: IDTriangle, Kind: KindPolygon, Vertices: ax.Map(vertices), Stroke: pal.Shape, StrokeWidth: StrokeWidth})
	b.play("create triangle", "Draw the triangle through "+joinPoints(vertices), 3, Create{IDTriangle})

	writes := make([]Animation, len(vertices))
	for i, p := range vertices {
		b.add(label(LabelID(i), p, ax, pal))
		writes[i] = Write{LabelID(i)}
	}
	b.play("write labels", "Label each vertex with its coordinates", 2, writes...)
	b.wait(1)

	matrix := Object{ID: IDMatrix, Kind: KindMatrix, Size: TexSize, Fill: pal.Text}
	matrix.Prefix, matrix.Entries = matrixEntries(m)
	matrix.Center = geom.Pt(
		-sc.frameWidth/2+CornerBuff+matrix.Width()/2,
		FrameHeight/2-CornerBuff-matrix.Height()/2,
	)
	b.add(matrix)
	b.play("write matrix", "Show the scaling matrix "+m.String(), 1, Write{IDMatrix})

	slot := geom.Pt(matrix.Right()+1, matrix.Center.Y)
	for i, p := range vertices {
		if i > 0 {
			b.play("clear product", "Fade out the previous column vector and equals sign", 1,
				FadeOut{VectorID(i - 1)}, FadeOut{EqualsID(i - 1)})
		}
		b.play("move label", fmt.Sprintf("Move %s next to the matrix", p), 1, MoveTo{LabelID(i), slot})

		vector := column(VectorID(i), p, slot, pal)
		b.add(vector)
		b.play("label to vector", fmt.Sprintf("Rewrite %s as a column vector", p), 1, Morph{LabelID(i), VectorID(i)})

		equals := Object{ID: EqualsID(i), Kind: KindTex, Text: "=", Size: TexSize, Fill: pal.Text}
		equals.Center = geom.Pt(vector.Right()+NextToBuff+equals.Width()/2, slot.Y)
		b.add(equals)

		q := transformed[i]
		result := column(ResultID(i), q, slot, pal)
		result.Center.X = equals.Right() + NextToBuff + result.Width()/2
		b.add(result)
		b.play("write product", fmt.Sprintf("%s · %s = %s", m, p, q), 1, Write{EqualsID(i)}, Write{ResultID(i)})
		b.wait(0.5)

		target := ax.CoordsToPoint(q)
		b.play("move product", fmt.Sprintf("Move the product to %s", q), 1, MoveTo{ResultID(i), target})

		b.add(Object{ID: DotID(i), Kind: KindDot, Center: target, Radius: DotRadius, Fill: pal.Dot})
		b.play("product to dot", fmt.Sprintf("Mark %s with a dot", q), 0.5, Morph{ResultID(i), DotID(i)})
	}
	last := len(vertices) - 1
	b.play("clear product", "Fade out the last column vector and equals sign", 1,
		FadeOut{VectorID(last)}, FadeOut{EqualsID(last)})

	scaled := ax.Map(transformed)
	b.add(Object{ID: IDScaled, Kind: KindPolygon, Vertices: scaled, Stroke: pal.Shape, StrokeWidth: StrokeWidth})
	b.add(Object{
		ID: IDFilled, Kind: KindPolygon, Vertices: scaled,
		Stroke: pal.Fill, Fill: pal.Fill, FillOpacity: 0.5, StrokeWidth: StrokeWidth,
	})
	b.play("scale triangle", "Apply "+m.String()+" to the triangle", 2,
		ApplyMatrix{ID: IDTriangle, Axes: ax, Shape: vertices, M: m})
	b.play("fill triangle", "Fill the transformed triangle", 1, Morph{IDScaled, IDFilled})

	writes = make([]Animation, len(transformed))
	for i, q := range transformed {
		b.add(label(FinalLabelID(i), q, ax, pal))
		writes[i] = Write{FinalLabelID(i)}
	}
	b.play("write final labels", "Label the transformed vertices "+joinPoints(transformed), 2, writes...)
	b.wait(2)
}

// label places the coordinates of p above its scene position.
func label(id string, p geom.Point, ax Axes, pal Palette) Object {
	size := TexSize * LabelScale
	at := ax.CoordsToPoint(p)
	return Object{
		ID:     id,
		Kind:   KindTex,
		Text:   p.String(),
		Size:   size,
		Fill:   pal.Text,
		Center: geom.Pt(at.X, at.Y+LabelBuff+TexSize/2),
	}
}

// column builds the column vector [x; y] centered at c.
func column(id string, p, c geom.Point, pal Palette) Object {
	return Object{
		ID:      id,
		Kind:    KindMatrix,
		Size:    TexSize,
		Fill:    pal.Text,
		Center:  c,
		Entries: [][]string{{geom.FormatNumber(p.X)}, {geom.FormatNumber(p.Y)}},
	}
}

// matrixEntries returns the displayed form of m: a uniform matrix is shown
// as a scalar times the identity.
func matrixEntries(m geom.ScalingMatrix) (string, [][]string) {
	if m.IsUniform() {
		return geom.FormatNumber(m.SX) + " ·", [][]string{{"1", "0"}, {"0", "1"}}
	}
	e := m.Entries()
	return "", [][]string{
		{geom.FormatNumber(e[0][0]), geom.FormatNumber(e[0][1])},
		{geom.FormatNumber(e[1][0]), geom.FormatNumber(e[1][1])},
	}
}

func joinPoints(s geom.Shape) string {
	parts := make([]string, len(s))
	for i, p := range s {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}
