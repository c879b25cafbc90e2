package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/lintrans/pkg/render"
	"github.com/matzehuels/lintrans/pkg/scene"
)

// Default raster size.
const (
	DefaultWidth  = 960
	DefaultHeight = 540
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	width, height int
	time          float64
}

// WithPNGSize sets the image size in pixels.
func WithPNGSize(w, h int) PNGOption {
	return func(r *pngRenderer) { r.width, r.height = w, h }
}

// WithPNGTime selects the frame at t seconds. Negative values select the
// last frame.
func WithPNGTime(t float64) PNGOption {
	return func(r *pngRenderer) { r.time = t }
}

// RenderPNG renders one frame of sc as PNG.
func RenderPNG(sc *scene.Scene, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{width: DefaultWidth, height: DefaultHeight, time: -1}
	for _, opt := range opts {
		opt(&r)
	}
	rr, err := render.NewRenderer(r.width, r.height)
	if err != nil {
		return nil, err
	}
	return encodePNG(rr, sc.FrameAt(stillTime(sc, r.time)))
}

func encodePNG(r *render.Renderer, f scene.Frame) ([]byte, error) {
	dc, err := r.Draw(f)
	if err != nil {
		return nil, err
	}
	defer dc.Close()

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func stillTime(sc *scene.Scene, t float64) float64 {
	if t < 0 {
		return sc.Duration()
	}
	return t
}
