package scene

import (
	"math"

	"github.com/gogpu/gg"

	"github.com/matzehuels/lintrans/pkg/geom"
)

// Kind identifies how an object is drawn.
type Kind int

const (
	KindAxes Kind = iota
	KindPolygon
	KindDot
	KindTex
	KindMatrix
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindAxes:
		return "axes"
	case KindPolygon:
		return "polygon"
	case KindDot:
		return "dot"
	case KindTex:
		return "tex"
	case KindMatrix:
		return "matrix"
	default:
		return "unknown"
	}
}

// Object sizes in scene units.
const (
	TexSize     = 0.5  // cap height of a full-size label
	LabelScale  = 0.6  // vertex labels are written at 60% size
	LabelBuff   = 0.4  // gap between a vertex and its label
	NextToBuff  = 0.25 // gap between neighbours placed side by side
	CornerBuff  = 0.5  // gap between a corner object and the frame edge
	DotRadius   = 0.08 // radius of the transformed-point dots
	StrokeWidth = 0.04 // polygon and axis stroke width
)

// Object is one drawable element of a frame.
//
// Polygon vertices and all centers are in scene units. Progress is the
// fraction drawn by Create or Write; Opacity multiplies every color.
type Object struct {
	ID      string
	Kind    Kind
	Visible bool
	Opacity float64
	// Progress is 1 for fully drawn objects.
	Progress float64

	Center geom.Point
	Size   float64 // text height for tex and matrix

	Stroke      gg.RGBA
	Fill        gg.RGBA
	FillOpacity float64
	StrokeWidth float64

	Vertices geom.Shape // polygon
	Radius   float64    // dot
	Axes     *Axes      // axes

	Text    string     // tex
	Prefix  string     // matrix scalar prefix, e.g. "2 ·"
	Entries [][]string // matrix rows
}

// clone deep-copies the mutable parts of o.
func (o *Object) clone() *Object {
	c := *o
	c.Vertices = o.Vertices.Clone()
	return &c
}

// Width returns the object's estimated width in scene units.
func (o *Object) Width() float64 {
	switch o.Kind {
	case KindTex:
		return TextWidth(o.Text, o.Size)
	case KindMatrix:
		return matrixWidth(o.Prefix, o.Entries, o.Size)
	case KindDot:
		return 2 * o.Radius
	case KindPolygon:
		lo, hi := o.Vertices.Bounds()
		return hi.X - lo.X
	case KindAxes:
		return o.Axes.XLength
	}
	return 0
}

// Height returns the object's estimated height in scene units.
func (o *Object) Height() float64 {
	switch o.Kind {
	case KindTex:
		return o.Size
	case KindMatrix:
		return matrixHeight(len(o.Entries), o.Size)
	case KindDot:
		return 2 * o.Radius
	case KindPolygon:
		lo, hi := o.Vertices.Bounds()
		return hi.Y - lo.Y
	case KindAxes:
		return o.Axes.YLength
	}
	return 0
}

// Right returns the x coordinate of the object's right edge.
func (o *Object) Right() float64 {
	return o.Center.X + o.Width()/2
}

// Matrix layout proportions relative to the entry text size.
const (
	matrixRowGap     = 0.35
	matrixColGap     = 0.8
	matrixBracket    = 0.2
	matrixBracketPad = 0.15
	matrixPrefixGap  = 0.25
)

// MatrixLayout is the geometry of a matrix object relative to its center.
type MatrixLayout struct {
	Width, Height float64
	PrefixWidth   float64
	// BracketLeft and BracketRight are x offsets of the bracket spines.
	BracketLeft, BracketRight float64
	// Cells holds the center offset of every entry.
	Cells [][]geom.Point
}

// LayoutMatrix computes the matrix geometry for the given entries at size.
func LayoutMatrix(prefix string, entries [][]string, size float64) MatrixLayout {
	rows := len(entries)
	cols := 0
	for _, r := range entries {
		cols = max(cols, len(r))
	}
	colWidths := make([]float64, cols)
	for _, r := range entries {
		for j, e := range r {
			colWidths[j] = math.Max(colWidths[j], TextWidth(e, size))
		}
	}

	var body float64
	for _, w := range colWidths {
		body += w
	}
	if cols > 1 {
		body += float64(cols-1) * matrixColGap * size
	}
	bracketed := body + 2*(matrixBracket+matrixBracketPad)*size

	var prefixW float64
	if prefix != "" {
		prefixW = TextWidth(prefix, size) + matrixPrefixGap*size
	}

	l := MatrixLayout{
		Width:       prefixW + bracketed,
		Height:      matrixHeight(rows, size),
		PrefixWidth: prefixW,
	}
	left := -l.Width / 2
	l.BracketLeft = left + prefixW + matrixBracket*size/2
	l.BracketRight = l.Width/2 - matrixBracket*size/2

	x0 := left + prefixW + (matrixBracket+matrixBracketPad)*size
	rowPitch := size * (1 + matrixRowGap)
	top := (float64(rows) - 1) * rowPitch / 2
	l.Cells = make([][]geom.Point, rows)
	for i, r := range entries {
		l.Cells[i] = make([]geom.Point, len(r))
		x := x0
		for j := range r {
			l.Cells[i][j] = geom.Pt(x+colWidths[j]/2, top-float64(i)*rowPitch)
			x += colWidths[j] + matrixColGap*size
		}
	}
	return l
}

func matrixWidth(prefix string, entries [][]string, size float64) float64 {
	return LayoutMatrix(prefix, entries, size).Width
}

func matrixHeight(rows int, size float64) float64 {
	if rows == 0 {
		return 0
	}
	return size * (float64(rows) + float64(rows-1)*matrixRowGap + 0.4)
}

// TextWidth estimates the advance width of s at the given cap height using
// proportional glyph widths close to the Go Regular face.
func TextWidth(s string, size float64) float64 {
	var w float64
	for _, r := range s {
		w += advance(r)
	}
	return w * size
}

func advance(r rune) float64 {
	switch r {
	case ' ', ',', '.', '·':
		return 0.36
	case '(', ')', '[', ']', '-':
		return 0.45
	case '=':
		return 0.8
	default:
		return 0.75
	}
}
