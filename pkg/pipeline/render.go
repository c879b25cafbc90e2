package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/lintrans/pkg/render/sink"
	"github.com/matzehuels/lintrans/pkg/scene"
)

// RenderFormat renders sc in a single format.
func RenderFormat(ctx context.Context, sc *scene.Scene, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatPNG:
		return sink.RenderPNG(sc, pngOptions(opts)...)
	case FormatGIF:
		return sink.RenderGIF(ctx, sc, gifOptions(opts)...)
	case FormatSVG:
		return sink.RenderSVG(sc, svgOptions(opts)...), nil
	case FormatJSON:
		return sink.RenderJSON(sc, sink.WithJSONFPS(opts.FPS), sink.WithJSONIndent())
	case FormatStoryboard:
		return sink.RenderStoryboard(ctx, sc)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// Render generates output artifacts in every requested format without
// touching a cache.
func Render(ctx context.Context, sc *scene.Scene, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := RenderFormat(ctx, sc, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func pngOptions(opts Options) []sink.PNGOption {
	return []sink.PNGOption{
		sink.WithPNGSize(opts.Width, opts.Height),
		sink.WithPNGTime(opts.StillTime()),
	}
}

func gifOptions(opts Options) []sink.GIFOption {
	gifOpts := []sink.GIFOption{
		sink.WithGIFSize(opts.Width, opts.Height),
		sink.WithGIFFPS(opts.FPS),
	}
	if opts.Progress != nil {
		gifOpts = append(gifOpts, sink.WithGIFProgress(opts.Progress))
	}
	return gifOpts
}

func svgOptions(opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{
		sink.WithSVGSize(opts.Width, opts.Height),
		sink.WithSVGTime(opts.StillTime()),
	}
	if opts.EmbedFont {
		svgOpts = append(svgOpts, sink.WithSVGEmbeddedFont())
	}
	return svgOpts
}
