package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lintrans/pkg/pipeline"
)

// defaultBase is the output base name when -o is not given.
const defaultBase = "scene"

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags  sceneFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the scene to PNG, GIF, SVG, JSON or a storyboard diagram",
		Long: `Render the scene.

PNG and SVG hold a single frame (the end of the animation unless --at is
given), GIF holds the whole animation, JSON describes the transform and the
storyboard, and "storyboard" draws the step sequence as a diagram.`,
		Example: `  lintrans render
  lintrans render -f gif -o scaling.gif --scale 2,-1
  lintrans render -f png,svg --at 12 --vertices "0,0;4,0;0,3"
  lintrans render -c scene.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, cfg, err := flags.options(cmd)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), opts, output, func(ctx context.Context) (*pipeline.Runner, error) {
				return c.newRunner(ctx, cfg)
			})
		},
	}

	flags.register(cmd, true)
	cmd.Flags().StringVarP(&output, "output", "o", "", `output file (single format) or base path (multiple); "-" writes to stdout`)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, newRunner func(context.Context) (*pipeline.Runner, error)) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if output == "-" && len(opts.Formats) > 1 {
		return fmt.Errorf("stdout output needs a single format, got %d", len(opts.Formats))
	}

	runner, err := newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	label := "Rendering " + strings.Join(opts.Formats, ", ")
	spinner := newSpinnerWithContext(ctx, label)
	if slices.Contains(opts.Formats, pipeline.FormatGIF) && output != "-" {
		opts.Progress = spinner.frameProgress(label)
	}
	if output != "-" {
		spinner.Start()
	}
	prog := newProgress(c.Logger)
	res, err := runner.Execute(ctx, opts)
	spinner.Stop()
	if spinner.Cancelled() {
		return ctx.Err()
	}
	if err != nil {
		return err
	}

	if output == "-" {
		_, err := os.Stdout.Write(res.Artifacts[opts.Formats[0]])
		return err
	}

	paths := outputPaths(output, opts.Formats)
	for _, format := range opts.Formats {
		if err := writeOutput(paths[format], res.Artifacts[format]); err != nil {
			return err
		}
		c.Logger.Debug("wrote artifact", "format", format, "bytes", len(res.Artifacts[format]), "path", paths[format])
	}

	printSuccess("Rendered %d %s in %s", len(opts.Formats), plural(len(opts.Formats), "file", "files"), prog.elapsed())
	printStats(res.Stats.Steps, res.Stats.Duration, res.CacheInfo.AllHit())
	for _, format := range opts.Formats {
		printFile(paths[format])
	}
	printNextStep("Play it", appName+" play")
	return nil
}

// outputPaths maps each format to its output file. A single format writes to
// output as given; several formats share output as a base path with any
// known extension removed.
func outputPaths(output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output)
	for _, f := range formats {
		paths[f] = base + "." + pipeline.Extension(f)
	}
	return paths
}

// basePath strips a known format extension from output. An empty output
// yields the default base name.
func basePath(output string) string {
	if output == "" {
		return defaultBase
	}
	// Longest first so "x.storyboard.svg" loses both parts.
	exts := make([]string, 0, len(pipeline.ValidFormats))
	for f := range pipeline.ValidFormats {
		exts = append(exts, "."+pipeline.Extension(f))
	}
	slices.SortFunc(exts, func(a, b string) int { return len(b) - len(a) })
	for _, ext := range exts {
		if strings.HasSuffix(output, ext) && len(output) > len(ext) {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}

// writeOutput writes data to path, creating parent directories.
func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
