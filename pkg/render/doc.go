// Package render rasterizes scene frames.
//
// A [Camera] maps scene units (y up, origin at the frame center) to pixels
// (y down, origin at the top-left corner). A [Renderer] draws a
// [scene.Frame] with github.com/gogpu/gg:
//
//	r, err := render.NewRenderer(960, 540)
//	img, err := r.Render(sc.FrameAt(sc.Duration()))
//
// A Renderer caches font faces and is not safe for concurrent use; create
// one per goroutine. Output formats (PNG, GIF, SVG, JSON, storyboard) live
// in the [sink] subpackage.
//
// [sink]: github.com/matzehuels/lintrans/pkg/render/sink
package render
