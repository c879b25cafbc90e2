package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/lintrans/pkg/buildinfo"
	"github.com/matzehuels/lintrans/pkg/cache"
	"github.com/matzehuels/lintrans/pkg/config"
	"github.com/matzehuels/lintrans/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "lintrans"

	// defaultServeAddr is the listen address of `lintrans serve`.
	defaultServeAddr = ":8080"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "lintrans animates a scaling matrix acting on a triangle",
		Long: `lintrans shows how a diagonal scaling matrix transforms the vertices of a
polygon: each vertex is multiplied by the matrix on screen, dropped onto the
plane as a dot, and finally the whole shape is scaled and filled.

Render stills and animations, browse the storyboard, play it in a window or
serve previews over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.framesCommand())
	root.AddCommand(c.transformCommand())
	root.AddCommand(c.stepsCommand())
	root.AddCommand(c.playCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, cfg cache.Config) (*pipeline.Runner, error) {
	cc, err := cache.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("cache ready", "backend", backendName(cfg))
	return pipeline.NewRunner(cc, nil, c.Logger), nil
}

func backendName(cfg cache.Config) string {
	if cfg.Backend == "" {
		return cache.BackendFile
	}
	return cfg.Backend
}

// =============================================================================
// Scene Flags - shared by every command that builds a scene
// =============================================================================

// sceneFlags holds the flags that describe a scene and its render settings.
type sceneFlags struct {
	vertices   string
	scale      string
	width      int
	height     int
	fps        int
	at         float64
	formats    string
	embedFont  bool
	configPath string
	refresh    bool

	noCache      bool
	cacheBackend string
	cacheDir     string
}

// register adds the scene flags to cmd. withRender adds the still-frame and
// format flags used by render.
func (f *sceneFlags) register(cmd *cobra.Command, withRender bool) {
	fl := cmd.Flags()
	fl.StringVar(&f.vertices, config.FlagVertices, "", `polygon vertices, e.g. "1,1;3,1;2,3" (default triangle)`)
	fl.StringVar(&f.scale, config.FlagScale, "", `scale factors: "2" or "sx,sy" (default 2)`)
	fl.IntVar(&f.width, config.FlagWidth, pipeline.DefaultWidth, "image width in pixels")
	fl.IntVar(&f.height, config.FlagHeight, pipeline.DefaultHeight, "image height in pixels")
	fl.IntVar(&f.fps, config.FlagFPS, pipeline.DefaultFPS, "animation frame rate")
	fl.StringVarP(&f.configPath, "config", "c", "", "scene file (.toml, .yaml)")
	if withRender {
		fl.Float64Var(&f.at, config.FlagTime, -1, "time of the still frame in seconds (negative: the end)")
		fl.StringVarP(&f.formats, config.FlagFormats, "f", "", "output format(s): png (default), gif, svg, json, storyboard (comma-separated)")
		fl.BoolVar(&f.embedFont, config.FlagEmbed, false, "embed the font into SVG output")
		fl.BoolVar(&f.refresh, "refresh", false, "ignore cached artifacts")
	}
	fl.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	fl.StringVar(&f.cacheBackend, config.FlagBackend, "", "cache backend: file (default), redis, mongo, none")
	fl.StringVar(&f.cacheDir, config.FlagCacheDir, "", "file cache directory")
}

// options resolves the flags and the optional scene file into pipeline
// options and a cache configuration. Flags set explicitly win over the file.
func (f *sceneFlags) options(cmd *cobra.Command) (pipeline.Options, cache.Config, error) {
	var opts pipeline.Options
	changed := cmd.Flags().Changed

	v, err := pipeline.ParseVertices(f.vertices)
	if err != nil {
		return opts, cache.Config{}, err
	}
	m, err := pipeline.ParseMatrix(f.scale)
	if err != nil {
		return opts, cache.Config{}, err
	}
	formats, err := pipeline.ParseFormats(f.formats)
	if err != nil {
		return opts, cache.Config{}, err
	}

	opts = pipeline.Options{
		Vertices:  v,
		Matrix:    m,
		Width:     f.width,
		Height:    f.height,
		FPS:       f.fps,
		Formats:   formats,
		EmbedFont: f.embedFont,
		Refresh:   f.refresh,
	}
	if cmd.Flags().Lookup(config.FlagTime) != nil {
		at := f.at
		opts.Time = &at
	}
	cfg := cache.Config{Backend: f.cacheBackend, Dir: f.cacheDir}

	if f.configPath != "" {
		file, err := config.Load(f.configPath)
		if err != nil {
			return opts, cfg, err
		}
		if err := file.Apply(&opts, changed); err != nil {
			return opts, cfg, err
		}
		file.ApplyCache(&cfg, changed)
	}
	if f.noCache {
		cfg.Backend = cache.BackendNone
	}
	return opts, cfg, nil
}
