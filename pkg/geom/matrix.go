package geom

// ScalingMatrix is a diagonal 2×2 matrix diag(SX, SY).
// The off-diagonal terms are zero by construction.
type ScalingMatrix struct {
	SX float64 `json:"sx"`
	SY float64 `json:"sy"`
}

// Scale returns diag(sx, sy).
func Scale(sx, sy float64) ScalingMatrix {
	return ScalingMatrix{SX: sx, SY: sy}
}

// Uniform returns diag(s, s).
func Uniform(s float64) ScalingMatrix {
	return ScalingMatrix{SX: s, SY: s}
}

// Identity returns diag(1, 1).
func Identity() ScalingMatrix {
	return ScalingMatrix{SX: 1, SY: 1}
}

// Apply scales each component of p independently.
func (m ScalingMatrix) Apply(p Point) Point {
	return Point{X: m.SX * p.X, Y: m.SY * p.Y}
}

// IsUniform reports whether both factors are equal.
func (m ScalingMatrix) IsUniform() bool {
	return m.SX == m.SY
}

// Entries returns the matrix in row-major order.
func (m ScalingMatrix) Entries() [2][2]float64 {
	return [2][2]float64{
		{m.SX, 0},
		{0, m.SY},
	}
}

// String formats the matrix as "diag(sx, sy)".
func (m ScalingMatrix) String() string {
	return "diag(" + FormatNumber(m.SX) + ", " + FormatNumber(m.SY) + ")"
}
