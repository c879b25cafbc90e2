// Package sink provides output format renderers for scenes.
//
// # Overview
//
// A "sink" turns a built [scene.Scene] into bytes. This package provides:
//
//   - PNG: a single frame rasterized with gogpu/gg
//   - GIF: the whole animation, frames rendered concurrently
//   - SVG: a single frame as vector graphics
//   - JSON: the storyboard and the transformed points
//   - Storyboard: the step sequence as a Graphviz diagram (SVG)
//
// [WriteFrames] streams every frame as PNG for external encoders.
//
// Basic usage:
//
//	png, err := sink.RenderPNG(sc, sink.WithPNGSize(1920, 1080))
//	gif, err := sink.RenderGIF(ctx, sc, sink.WithGIFFPS(15))
//
// Still formats default to the last frame of the animation; pass a time
// with [WithPNGTime] or [WithSVGTime] to pick another instant.
package sink
