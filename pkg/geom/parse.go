package geom

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/lintrans/pkg/errors"
)

// ParsePoint parses "x,y" (whitespace around either number is ignored).
func ParsePoint(s string) (Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return Point{}, errors.New(errors.ErrCodeInvalidInput, "invalid point %q (want x,y)", s)
	}
	x, err := parseNumber(xs)
	if err != nil {
		return Point{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid point %q", s)
	}
	y, err := parseNumber(ys)
	if err != nil {
		return Point{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid point %q", s)
	}
	return Pt(x, y), nil
}

// ParseShape parses semicolon-separated points: "1,1;3,1;2,3".
// An empty string yields an empty shape.
func ParseShape(s string) (Shape, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Shape{}, nil
	}
	parts := strings.Split(s, ";")
	shape := make(Shape, 0, len(parts))
	for _, part := range parts {
		p, err := ParsePoint(part)
		if err != nil {
			return nil, err
		}
		shape = append(shape, p)
	}
	return shape, nil
}

// ParseScale parses "s" as diag(s, s) or "sx,sy" as diag(sx, sy).
func ParseScale(s string) (ScalingMatrix, error) {
	if xs, ys, ok := strings.Cut(s, ","); ok {
		sx, err := parseNumber(xs)
		if err != nil {
			return ScalingMatrix{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid scale %q", s)
		}
		sy, err := parseNumber(ys)
		if err != nil {
			return ScalingMatrix{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid scale %q", s)
		}
		return Scale(sx, sy), nil
	}
	v, err := parseNumber(s)
	if err != nil {
		return ScalingMatrix{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid scale %q", s)
	}
	return Uniform(v), nil
}

// FormatShape is the inverse of ParseShape.
func FormatShape(s Shape) string {
	parts := make([]string, len(s))
	for i, p := range s {
		parts[i] = FormatNumber(p.X) + "," + FormatNumber(p.Y)
	}
	return strings.Join(parts, ";")
}

func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return v, nil
}
