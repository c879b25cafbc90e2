package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lintrans/pkg/cache"
	"github.com/matzehuels/lintrans/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheFlags selects the cache a cache subcommand acts on.
type cacheFlags struct {
	backend string
	dir     string
}

func (f *cacheFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.backend, config.FlagBackend, "", "cache backend: file (default), redis, mongo")
	cmd.Flags().StringVar(&f.dir, config.FlagCacheDir, "", "file cache directory")
}

func (f *cacheFlags) config() cache.Config {
	return cache.Config{Backend: f.backend, Dir: f.dir}
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var flags cacheFlags

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := flags.config()
			cc, err := cache.Open(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer cc.Close()

			clearer, ok := cc.(cache.Clearer)
			if !ok {
				printWarning("Nothing to clear for the %s backend", backendName(cfg))
				return nil
			}
			if err := clearer.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			printSuccess("Cleared the %s cache", backendName(cfg))
			if fc, ok := cc.(*cache.FileCache); ok {
				printDetail("Directory: %s", fc.Dir())
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print the file cache directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cacheDir(dir)
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Println(path)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, config.FlagCacheDir, "", "file cache directory")
	return cmd
}

// cacheDir returns dir, or the default file cache directory when dir is
// empty.
func cacheDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	return cache.DefaultDir()
}
