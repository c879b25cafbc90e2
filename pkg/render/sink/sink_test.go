package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"image/gif"
	"image/png"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/matzehuels/lintrans/pkg/geom"
	"github.com/matzehuels/lintrans/pkg/scene"
)

func testScene(t *testing.T) *scene.Scene {
	t.Helper()
	sc, err := scene.Build(scene.DefaultConfig())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return sc
}

func TestRenderPNG(t *testing.T) {
	sc := testScene(t)
	data, err := RenderPNG(sc, WithPNGSize(320, 180), WithPNGTime(10))
	if err != nil {
		t.Fatalf("RenderPNG() error = %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 180 {
		t.Errorf("bounds = %v, want 320x180", b)
	}
}

func TestRenderPNGInvalidSize(t *testing.T) {
	if _, err := RenderPNG(testScene(t), WithPNGSize(0, 0)); err == nil {
		t.Error("RenderPNG() with zero size should fail")
	}
}

func TestRenderGIF(t *testing.T) {
	sc := testScene(t)
	var calls atomic.Int32
	data, err := RenderGIF(context.Background(), sc,
		WithGIFSize(64, 36),
		WithGIFFPS(2),
		WithGIFWorkers(3),
		WithGIFProgress(func(done, total int) { calls.Add(1) }),
	)
	if err != nil {
		t.Fatalf("RenderGIF() error = %v", err)
	}
	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("gif.DecodeAll() error = %v", err)
	}
	want := sc.FrameCount(2)
	if len(g.Image) != want {
		t.Errorf("frames = %d, want %d", len(g.Image), want)
	}
	if int(calls.Load()) != want {
		t.Errorf("progress calls = %d, want %d", calls.Load(), want)
	}
	if g.Delay[0] != 50 {
		t.Errorf("Delay[0] = %d, want 50", g.Delay[0])
	}
}

func TestRenderGIFCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := RenderGIF(ctx, testScene(t), WithGIFSize(32, 18), WithGIFFPS(1)); err == nil {
		t.Error("RenderGIF() with cancelled context should fail")
	}
}

func TestRenderSVG(t *testing.T) {
	sc := testScene(t)
	svg := string(RenderSVG(sc, WithSVGSize(960, 540)))

	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 960 540"`,
		`id="triangle"`,
		`id="dot/0"`,
		`id="final/2"`,
		`(4, 6)</text>`,
		`id="matrix"`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	if strings.Contains(svg, "@font-face") {
		t.Error("font embedded without WithSVGEmbeddedFont")
	}
	if strings.Contains(svg, `id="vector/0"`) {
		t.Error("column vector should be gone at the end")
	}
}

func TestRenderSVGEmbeddedFontAndTime(t *testing.T) {
	svg := string(RenderSVG(testScene(t), WithSVGTime(0.5), WithSVGEmbeddedFont()))
	if !strings.Contains(svg, "@font-face") {
		t.Error("expected embedded font")
	}
	if strings.Contains(svg, `id="triangle"`) {
		t.Error("triangle should not be drawn during the first step")
	}
}

func TestRenderJSON(t *testing.T) {
	sc := testScene(t)
	data, err := RenderJSON(sc, WithJSONFPS(10))
	if err != nil {
		t.Fatalf("RenderJSON() error = %v", err)
	}

	var out Storyboard
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if out.Duration != 33 {
		t.Errorf("Duration = %v, want 33", out.Duration)
	}
	if out.FrameCount != 331 {
		t.Errorf("FrameCount = %d, want 331", out.FrameCount)
	}
	if len(out.Steps) != 30 {
		t.Errorf("Steps = %d, want 30", len(out.Steps))
	}
	if out.Matrix.SX != 2 || out.Matrix.Entries[1][1] != 2 || out.Matrix.Entries[0][1] != 0 {
		t.Errorf("Matrix = %+v", out.Matrix)
	}
	want := []geom.Point{geom.Pt(2, 2), geom.Pt(6, 2), geom.Pt(4, 6)}
	for i := range want {
		if out.Transformed[i] != want[i] {
			t.Errorf("Transformed[%d] = %v, want %v", i, out.Transformed[i], want[i])
		}
	}
}

func TestNewTransformEmpty(t *testing.T) {
	tr := NewTransform(nil, geom.Uniform(3))
	data, err := json.Marshal(tr)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"original":[]`) || !strings.Contains(string(data), `"transformed":[]`) {
		t.Errorf("empty shapes should encode as [], got %s", data)
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testScene(t))
	if !strings.HasPrefix(dot, "digraph storyboard {") {
		t.Errorf("unexpected DOT header: %q", dot[:30])
	}
	if !strings.Contains(dot, "s0 -> s1;") || !strings.Contains(dot, "s28 -> s29;") {
		t.Error("steps should be chained in order")
	}
	if strings.Contains(dot, "s29 -> s30") {
		t.Error("unexpected edge past the last step")
	}
}

func TestRenderStoryboard(t *testing.T) {
	svg, err := RenderStoryboard(context.Background(), testScene(t))
	if err != nil {
		t.Fatalf("RenderStoryboard() error = %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Error("output is not SVG")
	}
}

func TestWriteFrames(t *testing.T) {
	sc := testScene(t)
	var got []int
	err := WriteFrames(context.Background(), sc, func(i int, tm float64, data []byte) error {
		got = append(got, i)
		if _, err := png.Decode(bytes.NewReader(data)); err != nil {
			t.Errorf("frame %d: %v", i, err)
		}
		return nil
	}, WithFrameSize(32, 18), WithFrameFPS(1))
	if err != nil {
		t.Fatalf("WriteFrames() error = %v", err)
	}
	if len(got) != sc.FrameCount(1) {
		t.Errorf("frames = %d, want %d", len(got), sc.FrameCount(1))
	}
	for i, idx := range got {
		if idx != i {
			t.Fatalf("frame order = %v", got)
		}
	}
}

func TestFrameName(t *testing.T) {
	if got := FrameName(7); got != "frame_0007.png" {
		t.Errorf("FrameName(7) = %q", got)
	}
}
