// Package pkg provides the core libraries of lintrans, an animated
// demonstration of a diagonal scaling matrix acting on a polygon.
//
// # Overview
//
// A scaling matrix diag(sx, sy) maps every vertex (x, y) of a shape to
// (sx·x, sy·y). lintrans shows this step by step: the shape is drawn on a
// pair of axes, each vertex is multiplied by the matrix on screen, the
// products drop onto the plane as dots, and finally the whole shape is
// scaled and filled.
//
// # Architecture
//
// The typical data flow:
//
//	vertices + matrix
//	         ↓
//	    [geom] package (points, shapes, the transform itself)
//	         ↓
//	    [scene] package (timed storyboard, frame snapshots)
//	         ↓
//	    [render] package (rasterizer) and [render/sink] (PNG, GIF, SVG, JSON, storyboard)
//	         ↓
//	    [pipeline] package (validation, caching, orchestration)
//
// # Quick Start
//
// Transform a shape directly:
//
//	import "github.com/matzehuels/lintrans/pkg/geom"
//
//	tri, _ := geom.ParseShape("1,1;3,1;2,3")
//	out := geom.Transform(tri, geom.Scale(2, -1))
//	// out = (2, -2), (6, -2), (4, -6)
//
// Or build and render the whole animation:
//
//	import "github.com/matzehuels/lintrans/pkg/pipeline"
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    Formats: []string{pipeline.FormatGIF, pipeline.FormatSVG},
//	})
//	gif := res.Artifacts[pipeline.FormatGIF]
//
// # Main Packages
//
//   - [geom]: points, shapes and the scaling transform
//   - [scene]: the storyboard and its frames
//   - [render], [render/sink]: raster and vector output
//   - [pipeline]: options, validation and the cached runner
//   - [cache]: file, Redis and MongoDB artifact caches
//   - [config]: TOML and YAML scene files
//   - [server]: the HTTP preview server
//   - [observability]: hooks for pipeline, cache and server events
//   - [errors]: coded errors shared by the CLI and the server
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/lintrans/pkg/geom
// [scene]: https://pkg.go.dev/github.com/matzehuels/lintrans/pkg/scene
// [render]: https://pkg.go.dev/github.com/matzehuels/lintrans/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/lintrans/pkg/render/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/lintrans/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/lintrans/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/lintrans/pkg/config
// [server]: https://pkg.go.dev/github.com/matzehuels/lintrans/pkg/server
// [observability]: https://pkg.go.dev/github.com/matzehuels/lintrans/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/lintrans/pkg/errors
package pkg
