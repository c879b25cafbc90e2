package scene

import (
	"math"

	"github.com/matzehuels/lintrans/pkg/geom"
)

// Range is an inclusive axis range with a tick step.
type Range struct {
	Min, Max, Step float64
}

// Span returns Max-Min.
func (r Range) Span() float64 { return r.Max - r.Min }

// Ticks returns the tick positions from Min to Max, excluding zero.
func (r Range) Ticks() []float64 {
	if r.Step <= 0 {
		return nil
	}
	var ticks []float64
	n := int(math.Floor(r.Span()/r.Step + 1e-9))
	for i := 0; i <= n; i++ {
		v := r.Min + float64(i)*r.Step
		if math.Abs(v) < 1e-9 {
			continue
		}
		ticks = append(ticks, v)
	}
	return ticks
}

// Axes maps data coordinates to scene units. The axes rectangle is
// XLength by YLength scene units, centered on the scene origin.
type Axes struct {
	X, Y    Range
	XLength float64
	YLength float64
}

// NewAxes returns axes over [-10, 10] in both directions, sized to leave a
// one unit margin on each side of a frame frameWidth units wide.
func NewAxes(frameWidth float64) Axes {
	return Axes{
		X:       Range{Min: -10, Max: 10, Step: 1},
		Y:       Range{Min: -10, Max: 10, Step: 1},
		XLength: math.Round(frameWidth) - 2,
		YLength: math.Round(FrameHeight) - 2,
	}
}

// XUnit is the scene length of one data unit along x.
func (a Axes) XUnit() float64 { return a.XLength / a.X.Span() }

// YUnit is the scene length of one data unit along y.
func (a Axes) YUnit() float64 { return a.YLength / a.Y.Span() }

// CoordsToPoint maps a data coordinate to scene units.
func (a Axes) CoordsToPoint(p geom.Point) geom.Point {
	return geom.Pt(
		(p.X-a.X.Min)*a.XUnit()-a.XLength/2,
		(p.Y-a.Y.Min)*a.YUnit()-a.YLength/2,
	)
}

// Map applies CoordsToPoint to every vertex of s.
func (a Axes) Map(s geom.Shape) geom.Shape {
	out := make(geom.Shape, len(s))
	for i, p := range s {
		out[i] = a.CoordsToPoint(p)
	}
	return out
}

// Origin returns the scene position of data (0, 0).
func (a Axes) Origin() geom.Point {
	return a.CoordsToPoint(geom.Pt(0, 0))
}
