package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lintrans/pkg/pipeline"
	"github.com/matzehuels/lintrans/pkg/render/sink"
)

// framesCommand creates the frames command, which writes every animation
// frame as a numbered PNG for external encoders.
func (c *CLI) framesCommand() *cobra.Command {
	var flags sceneFlags

	cmd := &cobra.Command{
		Use:   "frames DIR",
		Short: "Write every animation frame as a numbered PNG",
		Example: `  lintrans frames out/
  ffmpeg -framerate 15 -i out/frame_%04d.png scaling.mp4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, _, err := flags.options(cmd)
			if err != nil {
				return err
			}
			return c.runFrames(cmd.Context(), opts, args[0])
		},
	}

	flags.register(cmd, false)
	return cmd
}

func (c *CLI) runFrames(ctx context.Context, opts pipeline.Options, dir string) error {
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Writing frames")
	spinner.Start()
	prog := newProgress(c.Logger)

	var written int
	sc, err := runner.Frames(ctx, opts, func(i int, t float64, png []byte) error {
		if err := writeOutput(filepath.Join(dir, sink.FrameName(i)), png); err != nil {
			return err
		}
		written++
		spinner.SetMessage(fmt.Sprintf("Writing frames %d (%.1fs)", written, t))
		return nil
	})
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Stopped after %d frames", written))
		return err
	}

	spinner.StopWithSuccess(fmt.Sprintf("Wrote %d frames in %s", written, prog.elapsed()))
	printStats(len(sc.Steps()), sc.Duration(), false)
	printFile(filepath.Join(dir, "frame_%04d.png"))
	return nil
}
