// Package geom implements the coordinate transformer behind the scaling
// demonstration: points, shapes and axis-aligned scaling matrices.
//
// Everything here is a value type. [Transform] never mutates its input and
// always returns a freshly allocated [Shape] of the same length, so callers
// can keep the original vertices around for labels and animation keyframes.
//
// # Usage
//
//	triangle := geom.Shape{geom.Pt(1, 1), geom.Pt(3, 1), geom.Pt(2, 3)}
//	scaled := geom.Transform(triangle, geom.Uniform(2))
//	// scaled == [(2, 2) (6, 2) (4, 6)]
//
// The parse helpers ([ParsePoint], [ParseShape], [ParseScale]) accept the
// compact syntax used by the CLI flags and the preview server query strings.
package geom
