package render

import (
	"image/color"
	"math"
	"testing"

	"github.com/matzehuels/lintrans/pkg/geom"
	"github.com/matzehuels/lintrans/pkg/scene"
)

func TestCamera(t *testing.T) {
	cam := NewCamera(960, 540, scene.FrameHeight*16/9, scene.FrameHeight)

	if got := cam.Scale(); math.Abs(got-67.5) > 1e-9 {
		t.Errorf("Scale() = %v, want 67.5", got)
	}

	tests := []struct {
		in     geom.Point
		wx, wy float64
	}{
		{geom.Pt(0, 0), 480, 270},
		{geom.Pt(0, 4), 480, 0},
		{geom.Pt(0, -4), 480, 540},
		{geom.Pt(1, 1), 547.5, 202.5},
	}
	for _, tt := range tests {
		x, y := cam.ToPixel(tt.in)
		if math.Abs(x-tt.wx) > 1e-9 || math.Abs(y-tt.wy) > 1e-9 {
			t.Errorf("ToPixel(%v) = (%v, %v), want (%v, %v)", tt.in, x, y, tt.wx, tt.wy)
		}
	}
}

func TestCameraLetterbox(t *testing.T) {
	cam := NewCamera(800, 800, 16, 8)
	if got := cam.Scale(); got != 50 {
		t.Errorf("Scale() = %v, want 50", got)
	}
	if got := NewCamera(10, 10, 0, 8).Scale(); got != 0 {
		t.Errorf("Scale() with empty frame = %v, want 0", got)
	}
}

func TestNewRendererRejectsEmptySize(t *testing.T) {
	if _, err := NewRenderer(0, 540); err == nil {
		t.Error("NewRenderer(0, 540) should fail")
	}
}

func TestRenderFrames(t *testing.T) {
	sc, err := scene.Build(scene.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	r, err := NewRenderer(320, 180)
	if err != nil {
		t.Fatal(err)
	}

	for _, tm := range []float64{0, 2, 12.5, 25, sc.Duration()} {
		img, err := r.Render(sc.FrameAt(tm))
		if err != nil {
			t.Fatalf("Render(t=%v) error = %v", tm, err)
		}
		b := img.Bounds()
		if b.Dx() != 320 || b.Dy() != 180 {
			t.Errorf("t=%v bounds = %v, want 320x180", tm, b)
		}
	}
}

func TestRenderBackgroundAndFill(t *testing.T) {
	sc, err := scene.Build(scene.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	r, _ := NewRenderer(960, 540)
	f := sc.FrameAt(sc.Duration())
	img, err := r.Render(f)
	if err != nil {
		t.Fatal(err)
	}

	corner := color.NRGBAModel.Convert(img.At(2, 538)).(color.NRGBA)
	if corner.R != 0 || corner.G != 0 || corner.B != 0 {
		t.Errorf("corner pixel = %v, want black background", corner)
	}

	cam := r.Camera(f)
	var c geom.Point
	for _, p := range sc.Transformed() {
		c = c.Add(p.Mul(1.0 / 3))
	}
	x, y := cam.ToPixel(sc.Axes().CoordsToPoint(c))
	fill := color.NRGBAModel.Convert(img.At(int(x), int(y))).(color.NRGBA)
	if fill.G < 40 || fill.G <= fill.R || fill.G <= fill.B {
		t.Errorf("pixel inside the filled triangle = %v, want green", fill)
	}
}

func TestReveal(t *testing.T) {
	tests := []struct {
		s    string
		t    float64
		want int
	}{
		{"(1, 1)", 0, 0},
		{"(1, 1)", 1, 6},
		{"(1, 1)", 0.5, 3},
		{"(1, 1)", 0.01, 1},
		{"·", 2, 1},
	}
	for _, tt := range tests {
		if got := Reveal(tt.s, tt.t); got != tt.want {
			t.Errorf("Reveal(%q, %v) = %d, want %d", tt.s, tt.t, got, tt.want)
		}
	}
}

func TestPartialOutline(t *testing.T) {
	square := geom.Shape{geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(1, 1), geom.Pt(0, 1)}

	tests := []struct {
		name string
		t    float64
		want []geom.Point
	}{
		{"none", 0, nil},
		{"half edge", 0.125, []geom.Point{geom.Pt(0, 0), geom.Pt(0.5, 0)}},
		{"two edges", 0.5, []geom.Point{geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(1, 1)}},
		{"closed", 1, []geom.Point{geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(1, 1), geom.Pt(0, 1), geom.Pt(0, 0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PartialOutline(square, tt.t)
			if len(got) != len(tt.want) {
				t.Fatalf("PartialOutline() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if math.Abs(got[i].X-tt.want[i].X) > 1e-9 || math.Abs(got[i].Y-tt.want[i].Y) > 1e-9 {
					t.Errorf("point %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestMatrixParts(t *testing.T) {
	o := &scene.Object{Kind: scene.KindMatrix, Prefix: "2 ·", Entries: [][]string{{"1", "0"}, {"0", "1"}}}

	o.Progress = 1
	if shown, total := MatrixParts(o); shown != 7 || total != 7 {
		t.Errorf("MatrixParts() = %d/%d, want 7/7", shown, total)
	}
	o.Progress = 0
	if shown, _ := MatrixParts(o); shown != 0 {
		t.Errorf("MatrixParts() at 0 = %d, want 0", shown)
	}
	o.Prefix = ""
	o.Progress = 0.5
	if shown, total := MatrixParts(o); shown != 3 || total != 6 {
		t.Errorf("MatrixParts() = %d/%d, want 3/6", shown, total)
	}
}
