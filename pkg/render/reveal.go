package render

import (
	"math"

	"github.com/matzehuels/lintrans/pkg/geom"
	"github.com/matzehuels/lintrans/pkg/scene"
)

// Reveal returns the number of runes of s shown at progress t.
func Reveal(s string, t float64) int {
	n := len([]rune(s))
	return int(math.Ceil(clamp01(t) * float64(n)))
}

// PartialOutline returns the open path tracing the first t of the closed
// polygon vs's perimeter, starting at vs[0]. At t >= 1 the path ends back
// at vs[0].
func PartialOutline(vs geom.Shape, t float64) []geom.Point {
	n := len(vs)
	if n == 0 || t <= 0 {
		return nil
	}
	path := []geom.Point{vs[0]}
	remaining := clamp01(t) * vs.Perimeter()
	for i := 0; i < n && remaining > 0; i++ {
		a, b := vs[i], vs[(i+1)%n]
		d := math.Hypot(b.X-a.X, b.Y-a.Y)
		if d >= remaining {
			path = append(path, a.Lerp(b, remaining/d))
			break
		}
		path = append(path, b)
		remaining -= d
	}
	return path
}

// MatrixParts returns how many parts of a matrix object are shown. Parts
// are revealed in reading order: prefix, left bracket, entries, right
// bracket.
func MatrixParts(o *scene.Object) (shown, total int) {
	total = 2
	if o.Prefix != "" {
		total++
	}
	for _, row := range o.Entries {
		total += len(row)
	}
	return int(math.Ceil(clamp01(o.Progress) * float64(total))), total
}

func clamp01(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}
