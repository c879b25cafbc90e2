package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lintrans/pkg/cache"
	"github.com/matzehuels/lintrans/pkg/observability"
	"github.com/matzehuels/lintrans/pkg/render/sink"
	"github.com/matzehuels/lintrans/pkg/scene"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete build → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts:      make(map[string][]byte),
		ArtifactHashes: make(map[string]string),
		CacheInfo:      CacheInfo{Hits: make(map[string]bool)},
	}

	// Stage 1: Build
	buildStart := time.Now()
	sc, err := r.Build(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Scene = sc
	result.SceneHash = r.SceneHash(opts)
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.Vertices = len(opts.Vertices)
	result.Stats.Steps = len(sc.Steps())
	result.Stats.Duration = sc.Duration()

	r.Logger.Info("built scene",
		"vertices", result.Stats.Vertices,
		"steps", result.Stats.Steps,
		"duration", result.Stats.BuildTime)

	// Stage 2: Render
	renderStart := time.Now()
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, hit, err := r.RenderWithCacheInfo(ctx, sc, result.SceneHash, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		result.Artifacts[format] = data
		result.ArtifactHashes[format] = r.ArtifactHash(result.SceneHash, format, opts)
		result.CacheInfo.Hits[format] = hit
	}
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", result.CacheInfo.AllHit(),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Build lays out the storyboard. Building is cheap and deterministic, so
// scenes are never cached; only their renders are.
func (r *Runner) Build(ctx context.Context, opts Options) (*scene.Scene, error) {
	if err := opts.ValidateForBuild(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, len(opts.Vertices))

	start := time.Now()
	sc, err := scene.Build(opts.SceneConfig())
	steps := 0
	if sc != nil {
		steps = len(sc.Steps())
	}
	hooks.OnBuildComplete(ctx, steps, time.Since(start), err)
	return sc, err
}

// SceneHash identifies the scene inputs of opts. Call after validation.
func (r *Runner) SceneHash(opts Options) string {
	return cache.Hash([]byte(r.Keyer.SceneKey(opts.SceneKeyOpts())))
}

// ArtifactHash identifies the artifact of format rendered from opts. It
// hashes the same key the cache stores the artifact under.
func (r *Runner) ArtifactHash(sceneHash, format string, opts Options) string {
	return cache.Hash([]byte(r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))))
}

// RenderWithCacheInfo renders one format with caching and reports whether
// the artifact came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, sc *scene.Scene, sceneHash, format string, opts Options) ([]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)
	cacheHooks := observability.Cache()
	key := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		switch {
		case err != nil:
			r.Logger.Warn("cache read failed", "format", format, "err", err)
		case hit:
			cacheHooks.OnCacheHit(ctx, format)
			return data, true, nil
		default:
			cacheHooks.OnCacheMiss(ctx, format)
		}
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, format)
	start := time.Now()
	data, err := RenderFormat(ctx, sc, format, opts)
	hooks.OnRenderComplete(ctx, format, len(data), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, key, data, ttlFor(format)); err != nil {
		r.Logger.Warn("cache write failed", "format", format, "err", err)
	} else {
		cacheHooks.OnCacheSet(ctx, format, len(data))
	}
	return data, false, nil
}

// Frames builds the scene and streams every animation frame as PNG to fn.
// Frames are not cached.
func (r *Runner) Frames(ctx context.Context, opts Options, fn sink.FrameFunc) (*scene.Scene, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	sc, err := r.Build(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	r.Logger.Debug("writing frames", "count", sc.FrameCount(opts.FPS), "fps", opts.FPS)
	err = sink.WriteFrames(ctx, sc, fn,
		sink.WithFrameSize(opts.Width, opts.Height),
		sink.WithFrameFPS(opts.FPS))
	return sc, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func ttlFor(format string) time.Duration {
	switch format {
	case FormatJSON, FormatStoryboard:
		return cache.TTLScene
	default:
		return cache.TTLArtifact
	}
}
