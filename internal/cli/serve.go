package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/lintrans/pkg/server"
)

// serveCommand creates the serve command, which runs the HTTP preview
// server until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		flags sceneFlags
		addr  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP preview server",
		Example: `  lintrans serve --addr :9000 --cache-backend redis
  curl 'localhost:9000/api/v1/scene.png?scale=2,-1&t=12' > frame.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cfg, err := flags.options(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, cfg)
			if err != nil {
				return err
			}
			defer runner.Close()

			printKeyValue("Listening", StyleLink.Render("http://"+displayAddr(addr)))
			printKeyValue("Cache", backendName(cfg))
			printInfo("Press Ctrl+C to stop")
			prog := newProgress(c.Logger)
			if err := server.New(runner, c.Logger).ListenAndServe(ctx, addr); err != nil {
				return err
			}
			prog.done("Server stopped")
			return nil
		},
	}

	flags.register(cmd, false)
	cmd.Flags().StringVar(&addr, "addr", defaultServeAddr, "listen address")
	return cmd
}

// displayAddr turns ":8080" into "localhost:8080".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
