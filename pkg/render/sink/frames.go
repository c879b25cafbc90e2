package sink

import (
	"context"
	"fmt"

	"github.com/matzehuels/lintrans/pkg/render"
	"github.com/matzehuels/lintrans/pkg/scene"
)

// FrameFunc receives one encoded frame. Returning an error stops
// [WriteFrames].
type FrameFunc func(index int, t float64, png []byte) error

// FrameOption configures [WriteFrames].
type FrameOption func(*frameWriter)

type frameWriter struct {
	width, height int
	fps           int
}

// WithFrameSize sets the image size in pixels.
func WithFrameSize(w, h int) FrameOption {
	return func(r *frameWriter) { r.width, r.height = w, h }
}

// WithFrameFPS sets the frame rate.
func WithFrameFPS(fps int) FrameOption { return func(r *frameWriter) { r.fps = fps } }

// WriteFrames renders every frame of sc as PNG in playback order and hands
// each to fn.
func WriteFrames(ctx context.Context, sc *scene.Scene, fn FrameFunc, opts ...FrameOption) error {
	w := frameWriter{width: DefaultWidth, height: DefaultHeight, fps: DefaultFPS}
	for _, opt := range opts {
		opt(&w)
	}
	if w.fps <= 0 {
		return fmt.Errorf("invalid fps %d", w.fps)
	}
	r, err := render.NewRenderer(w.width, w.height)
	if err != nil {
		return err
	}

	n := sc.FrameCount(w.fps)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		t := sc.FrameTime(i, w.fps)
		data, err := encodePNG(r, sc.FrameAt(t))
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		if err := fn(i, t, data); err != nil {
			return err
		}
	}
	return nil
}

// FrameName returns the conventional file name of frame i.
func FrameName(i int) string {
	return fmt.Sprintf("frame_%04d.png", i)
}
