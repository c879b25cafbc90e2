package sink

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"math"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/lintrans/pkg/render"
	"github.com/matzehuels/lintrans/pkg/scene"
)

// DefaultFPS is the default animation frame rate.
const DefaultFPS = 15

// GIFOption configures GIF rendering.
type GIFOption func(*gifRenderer)

type gifRenderer struct {
	width, height int
	fps           int
	workers       int
	progress      func(done, total int)
}

// WithGIFSize sets the image size in pixels.
func WithGIFSize(w, h int) GIFOption {
	return func(r *gifRenderer) { r.width, r.height = w, h }
}

// WithGIFFPS sets the frame rate.
func WithGIFFPS(fps int) GIFOption { return func(r *gifRenderer) { r.fps = fps } }

// WithGIFWorkers sets the number of frames rendered in parallel
// (default GOMAXPROCS).
func WithGIFWorkers(n int) GIFOption { return func(r *gifRenderer) { r.workers = n } }

// WithGIFProgress registers a callback invoked after each frame is
// rendered. It may be called from several goroutines.
func WithGIFProgress(fn func(done, total int)) GIFOption {
	return func(r *gifRenderer) { r.progress = fn }
}

// RenderGIF renders the full animation as a looping GIF. Frames are
// rendered concurrently, one renderer per worker, and encoded in order.
func RenderGIF(ctx context.Context, sc *scene.Scene, opts ...GIFOption) ([]byte, error) {
	r := gifRenderer{
		width:   DefaultWidth,
		height:  DefaultHeight,
		fps:     DefaultFPS,
		workers: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(&r)
	}
	if r.fps <= 0 {
		return nil, fmt.Errorf("invalid fps %d", r.fps)
	}
	r.workers = max(r.workers, 1)

	n := sc.FrameCount(r.fps)
	frames := make([]*image.Paletted, n)
	var done atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < r.workers; w++ {
		g.Go(func() error {
			rr, err := render.NewRenderer(r.width, r.height)
			if err != nil {
				return err
			}
			for i := w; i < n; i += r.workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				img, err := rr.Render(sc.FrameAt(sc.FrameTime(i, r.fps)))
				if err != nil {
					return fmt.Errorf("frame %d: %w", i, err)
				}
				frames[i] = quantize(img)
				if r.progress != nil {
					r.progress(int(done.Add(1)), n)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	delay := int(math.Round(100 / float64(r.fps)))
	anim := gif.GIF{
		Image: frames,
		Delay: make([]int, n),
	}
	for i := range anim.Delay {
		anim.Delay[i] = delay
	}
	// Hold the last frame for a second before looping.
	anim.Delay[n-1] = max(delay, 100)

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, &anim); err != nil {
		return nil, fmt.Errorf("encode gif: %w", err)
	}
	return buf.Bytes(), nil
}

func quantize(img image.Image) *image.Paletted {
	b := img.Bounds()
	p := image.NewPaletted(b, palette.Plan9)
	draw.FloydSteinberg.Draw(p, b, img, b.Min)
	return p
}
