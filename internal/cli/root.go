package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lintrans/pkg/observability"
)

// Execute builds the command tree and runs it with ctx.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level, plus pipeline, cache and server
//     events through observability hooks
func (c *CLI) Execute(ctx context.Context, args []string) error {
	var verbose bool

	root := c.RootCommand()
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		level := LogInfo
		if verbose {
			level = LogDebug
			hooks := observability.NewLogHooks(c.Logger)
			observability.SetPipelineHooks(hooks)
			observability.SetCacheHooks(hooks)
			observability.SetServerHooks(hooks)
		}
		c.SetLogLevel(level)
		return nil
	}
	if args != nil {
		root.SetArgs(args)
	}
	return root.ExecuteContext(ctx)
}
