package geom_test

import (
	"fmt"

	"github.com/matzehuels/lintrans/pkg/geom"
)

func ExampleTransform() {
	triangle := geom.Shape{geom.Pt(1, 1), geom.Pt(3, 1), geom.Pt(2, 3)}
	scaled := geom.Transform(triangle, geom.Uniform(2))

	for i := range triangle {
		fmt.Println(triangle[i], "->", scaled[i])
	}
	// Output:
	// (1, 1) -> (2, 2)
	// (3, 1) -> (6, 2)
	// (2, 3) -> (4, 6)
}

func ExampleParseScale() {
	m, _ := geom.ParseScale("2,0.5")
	fmt.Println(m, m.Apply(geom.Pt(3, 4)))
	// Output: diag(2, 0.5) (6, 2)
}
