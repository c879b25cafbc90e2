package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/lintrans/pkg/pipeline"
)

// playCommand creates the play command, which opens a window and plays the
// animation. Builds tagged headless register the command without window
// support; see openWindow.
func (c *CLI) playCommand() *cobra.Command {
	var flags sceneFlags

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play the animation in a window",
		Long: `Play the animation in a window.

Keys: space pauses, left/right scrub, r restarts, h toggles the overlay,
q or escape quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, _, err := flags.options(cmd)
			if err != nil {
				return err
			}
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			sc, err := pipeline.NewRunner(nil, nil, c.Logger).Build(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return c.openWindow(sc, opts)
		},
	}

	flags.register(cmd, false)
	return cmd
}
