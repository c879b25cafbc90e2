package sink

import (
	"bytes"
	"fmt"
	"html"
	"math"

	"github.com/gogpu/gg"

	"github.com/matzehuels/lintrans/pkg/fonts"
	"github.com/matzehuels/lintrans/pkg/geom"
	"github.com/matzehuels/lintrans/pkg/render"
	"github.com/matzehuels/lintrans/pkg/scene"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	width, height int
	time          float64
	embedFont     bool
}

// WithSVGSize sets the viewport size in pixels.
func WithSVGSize(w, h int) SVGOption {
	return func(r *svgRenderer) { r.width, r.height = w, h }
}

// WithSVGTime selects the frame at t seconds. Negative values select the
// last frame.
func WithSVGTime(t float64) SVGOption { return func(r *svgRenderer) { r.time = t } }

// WithSVGEmbeddedFont embeds the label font as a base64 @font-face rule so
// the file renders identically without the font installed.
func WithSVGEmbeddedFont() SVGOption { return func(r *svgRenderer) { r.embedFont = true } }

// RenderSVG renders one frame of sc as SVG.
func RenderSVG(sc *scene.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{width: DefaultWidth, height: DefaultHeight, time: -1}
	for _, opt := range opts {
		opt(&r)
	}
	f := sc.FrameAt(stillTime(sc, r.time))
	w := svgWriter{cam: render.NewCamera(r.width, r.height, f.Width, f.Height)}

	fmt.Fprintf(&w.buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		r.width, r.height, r.width, r.height)
	w.defs(r.embedFont)
	fmt.Fprintf(&w.buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", hexColor(f.Background))
	for i := range f.Objects {
		w.object(&f.Objects[i])
	}
	w.buf.WriteString("</svg>\n")
	return w.buf.Bytes()
}

type svgWriter struct {
	buf bytes.Buffer
	cam render.Camera
}

func (w *svgWriter) defs(embed bool) {
	w.buf.WriteString("  <style>\n")
	if embed {
		fmt.Fprintf(&w.buf, "    @font-face { font-family: '%s'; src: url(data:font/ttf;base64,%s) format('truetype'); }\n",
			fonts.FontFamily, fonts.RegularTTFBase64())
	}
	fmt.Fprintf(&w.buf, "    text { font-family: %s; }\n", fonts.FallbackFontFamily)
	w.buf.WriteString("  </style>\n")
}

func (w *svgWriter) px(p geom.Point) (float64, float64) { return w.cam.ToPixel(p) }

func (w *svgWriter) object(o *scene.Object) {
	switch o.Kind {
	case scene.KindAxes:
		w.axes(o)
	case scene.KindPolygon:
		w.polygon(o)
	case scene.KindDot:
		x, y := w.px(o.Center)
		fmt.Fprintf(&w.buf, `  <circle id=%q cx="%.2f" cy="%.2f" r="%.2f" fill="%s" fill-opacity="%.3f"/>`+"\n",
			o.ID, x, y, w.cam.Length(o.Radius), hexColor(o.Fill), alpha(o.Fill, o.Opacity))
	case scene.KindTex:
		w.text(o.ID, o.Text, o.Center, o.Size, render.Reveal(o.Text, o.Progress), o.Fill, o.Opacity)
	case scene.KindMatrix:
		w.matrix(o)
	}
}

func (w *svgWriter) axes(o *scene.Object) {
	ax := o.Axes
	if ax == nil {
		return
	}
	progress := math.Min(math.Max(o.Progress, 0), 1)
	origin := ax.Origin()
	stroke := fmt.Sprintf(`stroke="%s" stroke-opacity="%.3f" stroke-width="%.2f" stroke-linecap="round"`,
		hexColor(o.Stroke), alpha(o.Stroke, o.Opacity), w.cam.Length(o.StrokeWidth))

	fmt.Fprintf(&w.buf, "  <g id=%q %s>\n", o.ID, stroke)
	lines := []struct {
		from, to geom.Point
		rng      scene.Range
		tick     func(float64) geom.Point
		normal   geom.Point
	}{
		{geom.Pt(-ax.XLength/2, origin.Y), geom.Pt(ax.XLength/2, origin.Y), ax.X,
			func(v float64) geom.Point { return ax.CoordsToPoint(geom.Pt(v, 0)) }, geom.Pt(0, 1)},
		{geom.Pt(origin.X, -ax.YLength/2), geom.Pt(origin.X, ax.YLength/2), ax.Y,
			func(v float64) geom.Point { return ax.CoordsToPoint(geom.Pt(0, v)) }, geom.Pt(1, 0)},
	}
	for _, l := range lines {
		w.line(l.from, l.from.Lerp(l.to, progress))
		reached := progress * l.rng.Span()
		for _, v := range l.rng.Ticks() {
			if v-l.rng.Min > reached {
				break
			}
			c := l.tick(v)
			w.line(c.Add(l.normal.Mul(0.1)), c.Sub(l.normal.Mul(0.1)))
		}
		if progress >= 1 {
			dir := l.to.Sub(l.from)
			dir = dir.Mul(1 / math.Hypot(dir.X, dir.Y))
			base := l.to.Sub(dir.Mul(0.3))
			tip := []geom.Point{l.to, base.Add(l.normal.Mul(0.12)), base.Sub(l.normal.Mul(0.12))}
			fmt.Fprintf(&w.buf, `    <polygon points="%s" fill="%s" stroke="none"/>`+"\n", w.points(tip), hexColor(o.Stroke))
		}
	}
	w.buf.WriteString("  </g>\n")
}

func (w *svgWriter) line(a, b geom.Point) {
	x1, y1 := w.px(a)
	x2, y2 := w.px(b)
	fmt.Fprintf(&w.buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>`+"\n", x1, y1, x2, y2)
}

func (w *svgWriter) points(ps []geom.Point) string {
	var b bytes.Buffer
	for i, p := range ps {
		if i > 0 {
			b.WriteByte(' ')
		}
		x, y := w.px(p)
		fmt.Fprintf(&b, "%.2f,%.2f", x, y)
	}
	return b.String()
}

func (w *svgWriter) polygon(o *scene.Object) {
	if len(o.Vertices) < 2 {
		return
	}
	progress := math.Min(math.Max(o.Progress, 0), 1)
	stroke := fmt.Sprintf(`stroke="%s" stroke-opacity="%.3f" stroke-width="%.2f" stroke-linejoin="round"`,
		hexColor(o.Stroke), alpha(o.Stroke, o.Opacity), w.cam.Length(o.StrokeWidth))

	fill := `fill="none"`
	if o.FillOpacity > 0 {
		fill = fmt.Sprintf(`fill="%s" fill-opacity="%.3f"`, hexColor(o.Fill), alpha(o.Fill, o.Opacity*o.FillOpacity*progress))
	}

	if progress >= 1 {
		fmt.Fprintf(&w.buf, `  <polygon id=%q points="%s" %s %s/>`+"\n", o.ID, w.points(o.Vertices), fill, stroke)
		return
	}
	if o.FillOpacity > 0 {
		fmt.Fprintf(&w.buf, `  <polygon id="%s-fill" points="%s" %s stroke="none"/>`+"\n", o.ID, w.points(o.Vertices), fill)
	}
	path := render.PartialOutline(o.Vertices, progress)
	if len(path) >= 2 {
		fmt.Fprintf(&w.buf, `  <polyline id=%q points="%s" fill="none" %s/>`+"\n", o.ID, w.points(path), stroke)
	}
}

// text writes the first n runes of s, left-aligned where the full string
// would start when centered on c.
func (w *svgWriter) text(id, s string, c geom.Point, size float64, n int, col gg.RGBA, opacity float64) {
	if n <= 0 || s == "" {
		return
	}
	x, y := w.px(c)
	left := x - w.cam.Length(scene.TextWidth(s, size))/2
	baseline := y + w.cam.Length(size)/2
	fontSize := w.cam.Length(size) * 1.4

	idAttr := ""
	if id != "" {
		idAttr = fmt.Sprintf(" id=%q", id)
	}
	fmt.Fprintf(&w.buf, `  <text%s x="%.2f" y="%.2f" font-size="%.2f" fill="%s" fill-opacity="%.3f">%s</text>`+"\n",
		idAttr, left, baseline, fontSize, hexColor(col), alpha(col, opacity), html.EscapeString(string([]rune(s)[:n])))
}

func (w *svgWriter) matrix(o *scene.Object) {
	shown, _ := render.MatrixParts(o)
	if shown == 0 {
		return
	}
	l := scene.LayoutMatrix(o.Prefix, o.Entries, o.Size)

	fmt.Fprintf(&w.buf, "  <g id=%q>\n", o.ID)
	defer w.buf.WriteString("  </g>\n")

	if o.Prefix != "" {
		left := o.Center.X - l.Width/2
		w.text("", o.Prefix, geom.Pt(left+scene.TextWidth(o.Prefix, o.Size)/2, o.Center.Y), o.Size, len([]rune(o.Prefix)), o.Fill, o.Opacity)
		shown--
	}
	if shown > 0 {
		w.bracket(o, l.BracketLeft, l.Height, 1)
		shown--
	}
	for i, row := range o.Entries {
		for j, e := range row {
			if shown == 0 {
				return
			}
			w.text("", e, o.Center.Add(l.Cells[i][j]), o.Size, len([]rune(e)), o.Fill, o.Opacity)
			shown--
		}
	}
	if shown > 0 {
		w.bracket(o, l.BracketRight, l.Height, -1)
	}
}

func (w *svgWriter) bracket(o *scene.Object, x, height, dir float64) {
	top := o.Center.Add(geom.Pt(x, height/2))
	bottom := o.Center.Add(geom.Pt(x, -height/2))
	stub := geom.Pt(dir*0.1*o.Size/scene.TexSize, 0)
	fmt.Fprintf(&w.buf, `    <polyline points="%s" fill="none" stroke="%s" stroke-opacity="%.3f" stroke-width="%.2f"/>`+"\n",
		w.points([]geom.Point{top.Add(stub), top, bottom, bottom.Add(stub)}),
		hexColor(o.Fill), alpha(o.Fill, o.Opacity), w.cam.Length(scene.StrokeWidth))
}

func hexColor(c gg.RGBA) string {
	to8 := func(v float64) int { return int(math.Round(math.Min(math.Max(v, 0), 1) * 255)) }
	return fmt.Sprintf("#%02X%02X%02X", to8(c.R), to8(c.G), to8(c.B))
}

func alpha(c gg.RGBA, opacity float64) float64 {
	return math.Min(math.Max(c.A*opacity, 0), 1)
}
