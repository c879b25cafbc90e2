package geom

import "math"

// Shape is an ordered sequence of vertices.
type Shape []Point

// Transform applies m to every vertex of s and returns a new shape.
// Order and count are preserved and s is left untouched.
func Transform(s Shape, m ScalingMatrix) Shape {
	out := make(Shape, len(s))
	for i, p := range s {
		out[i] = m.Apply(p)
	}
	return out
}

// Clone returns a copy of s that shares no storage with it.
func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	copy(out, s)
	return out
}

// Lerp interpolates vertex-wise from s (t=0) to other (t=1).
// Shapes of different lengths cannot be paired, so a copy of s is returned.
func (s Shape) Lerp(other Shape, t float64) Shape {
	if len(s) != len(other) {
		return s.Clone()
	}
	out := make(Shape, len(s))
	for i := range s {
		out[i] = s[i].Lerp(other[i], t)
	}
	return out
}


// Bounds returns the axis-aligned bounding box as (min, max).
// An empty shape has zero bounds.
func (s Shape) Bounds() (Point, Point) {
	if len(s) == 0 {
		return Point{}, Point{}
	}
	lo := Point{math.Inf(1), math.Inf(1)}
	hi := Point{math.Inf(-1), math.Inf(-1)}
	for _, p := range s {
		lo.X = math.Min(lo.X, p.X)
		lo.Y = math.Min(lo.Y, p.Y)
		hi.X = math.Max(hi.X, p.X)
		hi.Y = math.Max(hi.Y, p.Y)
	}
	return lo, hi
}

// Perimeter returns the length of the closed polyline through s.
func (s Shape) Perimeter() float64 {
	if len(s) < 2 {
		return 0
	}
	var total float64
	for i := range s {
		total += distance(s[i], s[(i+1)%len(s)])
	}
	return total
}

func distance(p, q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}
