package render

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"github.com/matzehuels/lintrans/pkg/fonts"
	"github.com/matzehuels/lintrans/pkg/geom"
	"github.com/matzehuels/lintrans/pkg/scene"
)

// Proportions in scene units.
const (
	tickSize    = 0.1
	tipLength   = 0.3
	tipWidth    = 0.24
	bracketStub = 0.1
	// emPerCap converts a cap height into a font size.
	emPerCap = 1.4
)

// Renderer draws frames at a fixed pixel size.
type Renderer struct {
	width, height int
	faces         map[int]text.Face
}

// NewRenderer returns a renderer for width×height images.
func NewRenderer(width, height int) (*Renderer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", width, height)
	}
	if _, err := fonts.Source(); err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	return &Renderer{width: width, height: height, faces: make(map[int]text.Face)}, nil
}

// Size returns the image dimensions.
func (r *Renderer) Size() (int, int) { return r.width, r.height }

// Camera returns the camera used for f.
func (r *Renderer) Camera(f scene.Frame) Camera {
	return NewCamera(r.width, r.height, f.Width, f.Height)
}

// Render draws f and returns the resulting image.
func (r *Renderer) Render(f scene.Frame) (image.Image, error) {
	dc, err := r.Draw(f)
	if err != nil {
		return nil, err
	}
	defer dc.Close()
	if err := dc.FlushGPU(); err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// Draw draws f into a new drawing context. The caller must Close it.
func (r *Renderer) Draw(f scene.Frame) (*gg.Context, error) {
	dc := gg.NewContext(r.width, r.height)
	dc.ClearWithColor(f.Background)
	dc.SetLineCap(gg.LineCapRound)

	p := painter{dc: dc, cam: r.Camera(f), r: r}
	for i := range f.Objects {
		if err := p.object(&f.Objects[i]); err != nil {
			dc.Close()
			return nil, fmt.Errorf("draw %s: %w", f.Objects[i].ID, err)
		}
	}
	return dc, nil
}

func (r *Renderer) face(px float64) text.Face {
	key := max(int(math.Round(px)), 1)
	if f, ok := r.faces[key]; ok {
		return f
	}
	src, _ := fonts.Source()
	f := src.Face(float64(key))
	r.faces[key] = f
	return f
}

type painter struct {
	dc  *gg.Context
	cam Camera
	r   *Renderer
}

func (p painter) setColor(c gg.RGBA, opacity float64) {
	p.dc.SetRGBA(c.R, c.G, c.B, c.A*clamp01(opacity))
}

func (p painter) moveTo(pt geom.Point) {
	x, y := p.cam.ToPixel(pt)
	p.dc.MoveTo(x, y)
}

func (p painter) lineTo(pt geom.Point) {
	x, y := p.cam.ToPixel(pt)
	p.dc.LineTo(x, y)
}

func (p painter) object(o *scene.Object) error {
	switch o.Kind {
	case scene.KindAxes:
		return p.axes(o)
	case scene.KindPolygon:
		return p.polygon(o)
	case scene.KindDot:
		return p.dot(o)
	case scene.KindTex:
		return p.tex(o.Text, o.Center, o.Size, Reveal(o.Text, o.Progress), o.Fill, o.Opacity)
	case scene.KindMatrix:
		return p.matrix(o)
	}
	return nil
}

// axes draws both axes growing from their low end, with ticks and tips
// appearing as the line reaches them.
func (p painter) axes(o *scene.Object) error {
	ax := o.Axes
	if ax == nil {
		return nil
	}
	progress := clamp01(o.Progress)
	p.dc.SetLineWidth(p.cam.Length(o.StrokeWidth))
	p.setColor(o.Stroke, o.Opacity)

	origin := ax.Origin()
	xStart := geom.Pt(-ax.XLength/2, origin.Y)
	xEnd := geom.Pt(ax.XLength/2, origin.Y)
	yStart := geom.Pt(origin.X, -ax.YLength/2)
	yEnd := geom.Pt(origin.X, ax.YLength/2)

	for _, line := range []struct {
		from, to geom.Point
		rng      scene.Range
		tick     func(v float64) geom.Point
		normal   geom.Point
	}{
		{xStart, xEnd, ax.X, func(v float64) geom.Point { return ax.CoordsToPoint(geom.Pt(v, 0)) }, geom.Pt(0, 1)},
		{yStart, yEnd, ax.Y, func(v float64) geom.Point { return ax.CoordsToPoint(geom.Pt(0, v)) }, geom.Pt(1, 0)},
	} {
		end := line.from.Lerp(line.to, progress)
		p.moveTo(line.from)
		p.lineTo(end)
		if err := p.dc.Stroke(); err != nil {
			return err
		}

		reached := progress * line.rng.Span()
		for _, v := range line.rng.Ticks() {
			if v-line.rng.Min > reached {
				break
			}
			c := line.tick(v)
			p.moveTo(c.Add(line.normal.Mul(tickSize)))
			p.lineTo(c.Sub(line.normal.Mul(tickSize)))
		}
		if err := p.dc.Stroke(); err != nil {
			return err
		}

		if progress >= 1 {
			dir := line.to.Sub(line.from)
			dir = dir.Mul(1 / math.Hypot(dir.X, dir.Y))
			base := line.to.Sub(dir.Mul(tipLength))
			p.moveTo(line.to)
			p.lineTo(base.Add(line.normal.Mul(tipWidth / 2)))
			p.lineTo(base.Sub(line.normal.Mul(tipWidth / 2)))
			p.dc.ClosePath()
			if err := p.dc.Fill(); err != nil {
				return err
			}
		}
	}
	return nil
}

// polygon strokes the outline up to Progress of its perimeter and fills the
// interior with FillOpacity scaled by Progress.
func (p painter) polygon(o *scene.Object) error {
	n := len(o.Vertices)
	if n < 2 {
		return nil
	}
	progress := clamp01(o.Progress)

	if o.FillOpacity > 0 && progress > 0 {
		p.outline(o.Vertices)
		p.setColor(o.Fill, o.Opacity*o.FillOpacity*progress)
		if err := p.dc.Fill(); err != nil {
			return err
		}
	}

	p.dc.SetLineWidth(p.cam.Length(o.StrokeWidth))
	p.setColor(o.Stroke, o.Opacity)
	if progress >= 1 {
		p.outline(o.Vertices)
		return p.dc.Stroke()
	}

	path := PartialOutline(o.Vertices, progress)
	if len(path) < 2 {
		return nil
	}
	p.moveTo(path[0])
	for _, pt := range path[1:] {
		p.lineTo(pt)
	}
	return p.dc.Stroke()
}

func (p painter) outline(vs geom.Shape) {
	p.moveTo(vs[0])
	for _, v := range vs[1:] {
		p.lineTo(v)
	}
	p.dc.ClosePath()
}

func (p painter) dot(o *scene.Object) error {
	x, y := p.cam.ToPixel(o.Center)
	p.dc.DrawCircle(x, y, p.cam.Length(o.Radius))
	p.setColor(o.Fill, o.Opacity)
	return p.dc.Fill()
}

// tex draws the first n runes of s, positioned as if the whole string were
// shown and centered on c.
func (p painter) tex(s string, c geom.Point, size float64, n int, col gg.RGBA, opacity float64) error {
	if n <= 0 || s == "" {
		return nil
	}
	face := p.r.face(p.cam.Length(size) * emPerCap)
	p.dc.SetFont(face)
	p.setColor(col, opacity)

	x, y := p.cam.ToPixel(c)
	w := face.Advance(s)
	m := face.Metrics()
	baseline := y + m.CapHeight/2
	if m.CapHeight == 0 {
		baseline = y + p.cam.Length(size)/2
	}
	p.dc.DrawString(string([]rune(s)[:n]), x-w/2, baseline)
	return nil
}

// matrix reveals its parts in reading order: prefix, left bracket, entries,
// right bracket.
func (p painter) matrix(o *scene.Object) error {
	l := scene.LayoutMatrix(o.Prefix, o.Entries, o.Size)
	shown, _ := MatrixParts(o)
	if shown == 0 {
		return nil
	}

	if o.Prefix != "" {
		left := o.Center.X - l.Width/2
		c := geom.Pt(left+scene.TextWidth(o.Prefix, o.Size)/2, o.Center.Y)
		if err := p.tex(o.Prefix, c, o.Size, len([]rune(o.Prefix)), o.Fill, o.Opacity); err != nil {
			return err
		}
		shown--
	}

	if shown > 0 {
		if err := p.bracket(o, l.BracketLeft, l.Height, 1); err != nil {
			return err
		}
		shown--
	}
	for i, row := range o.Entries {
		for j, e := range row {
			if shown == 0 {
				return nil
			}
			c := o.Center.Add(l.Cells[i][j])
			if err := p.tex(e, c, o.Size, len([]rune(e)), o.Fill, o.Opacity); err != nil {
				return err
			}
			shown--
		}
	}
	if shown > 0 {
		return p.bracket(o, l.BracketRight, l.Height, -1)
	}
	return nil
}

// bracket draws a square bracket whose spine sits at offset x from the
// matrix center; dir is +1 for a left bracket and -1 for a right one.
func (p painter) bracket(o *scene.Object, x, height float64, dir float64) error {
	top := o.Center.Add(geom.Pt(x, height/2))
	bottom := o.Center.Add(geom.Pt(x, -height/2))
	stub := geom.Pt(dir*bracketStub*o.Size/scene.TexSize, 0)

	p.dc.SetLineWidth(p.cam.Length(scene.StrokeWidth))
	p.setColor(o.Fill, o.Opacity)
	p.moveTo(top.Add(stub))
	p.lineTo(top)
	p.lineTo(bottom)
	p.lineTo(bottom.Add(stub))
	return p.dc.Stroke()
}
