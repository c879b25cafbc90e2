package scene

import (
	"math"

	"github.com/matzehuels/lintrans/pkg/geom"
)

// Animation updates objects in to for the given progress alpha in [0, 1].
// from holds the state at the start of the enclosing step and must not be
// modified.
type Animation interface {
	Apply(from, to *State, alpha float64)
}

// RateFunc maps linear step progress to animation progress.
type RateFunc func(t float64) float64

// Linear is the identity rate function.
func Linear(t float64) float64 { return t }

// Smooth eases in and out along a sigmoid with inflection 10.
func Smooth(t float64) float64 {
	const inflection = 10.0
	e := sigmoid(-inflection / 2)
	v := (sigmoid(inflection*(t-0.5)) - e) / (1 - 2*e)
	return math.Min(math.Max(v, 0), 1)
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Create draws an object progressively: axes and polygons are stroked
// along their outline.
type Create struct{ ID string }

func (a Create) Apply(_, to *State, alpha float64) {
	o := to.Get(a.ID)
	o.Visible = true
	o.Opacity = 1
	o.Progress = alpha
}

// Write reveals text and matrices from left to right.
type Write struct{ ID string }

func (a Write) Apply(_, to *State, alpha float64) {
	o := to.Get(a.ID)
	o.Visible = true
	o.Opacity = 1
	o.Progress = alpha
}

// FadeOut lowers an object's opacity to zero and hides it.
type FadeOut struct{ ID string }

func (a FadeOut) Apply(from, to *State, alpha float64) {
	start := from.Get(a.ID)
	o := to.Get(a.ID)
	o.Opacity = start.Opacity * (1 - alpha)
	if alpha >= 1 {
		o.Visible = false
	}
}

// FadeIn raises an object's opacity from zero.
type FadeIn struct{ ID string }

func (a FadeIn) Apply(_, to *State, alpha float64) {
	o := to.Get(a.ID)
	o.Visible = true
	o.Progress = 1
	o.Opacity = alpha
}

// MoveTo moves an object's center to Target.
type MoveTo struct {
	ID     string
	Target geom.Point
}

func (a MoveTo) Apply(from, to *State, alpha float64) {
	start := from.Get(a.ID)
	to.Get(a.ID).Center = start.Center.Lerp(a.Target, alpha)
}

// Morph turns Src into the appearance of Dst.
//
// Two polygons with the same vertex count morph in place: vertices, colors
// and fill interpolate and Src keeps its identity. Any other pair
// cross-fades while Src travels to Dst's center; at the end Src is hidden
// and Dst is shown.
type Morph struct {
	Src, Dst string
}

func (a Morph) Apply(from, to *State, alpha float64) {
	src := from.Get(a.Src)
	dst := from.Get(a.Dst)

	if src.Kind == KindPolygon && dst.Kind == KindPolygon && len(src.Vertices) == len(dst.Vertices) {
		o := to.Get(a.Src)
		o.Visible = true
		o.Opacity = 1
		o.Progress = 1
		o.Vertices = src.Vertices.Lerp(dst.Vertices, alpha)
		o.Stroke = src.Stroke.Lerp(dst.Stroke, alpha)
		o.Fill = src.Fill.Lerp(dst.Fill, alpha)
		o.FillOpacity = lerp(src.FillOpacity, dst.FillOpacity, alpha)
		return
	}

	center := src.Center.Lerp(dst.Center, alpha)
	FadeOut{ID: a.Src}.Apply(from, to, alpha)
	FadeIn{ID: a.Dst}.Apply(from, to, alpha)
	to.Get(a.Src).Center = center
	to.Get(a.Dst).Center = center
}

// ApplyMatrix scales a polygon's data-space vertices by M about the data
// origin, interpolating each vertex linearly from Shape to
// geom.Transform(Shape, M).
type ApplyMatrix struct {
	ID    string
	Axes  Axes
	Shape geom.Shape
	M     geom.ScalingMatrix
}

func (a ApplyMatrix) Apply(_, to *State, alpha float64) {
	target := geom.Transform(a.Shape, a.M)
	to.Get(a.ID).Vertices = a.Axes.Map(a.Shape.Lerp(target, alpha))
}
