//go:build !headless

package cli

import (
	"github.com/matzehuels/lintrans/internal/player"
	"github.com/matzehuels/lintrans/pkg/pipeline"
	"github.com/matzehuels/lintrans/pkg/scene"
)

// openWindow plays sc in an ebiten window until the user closes it.
func (c *CLI) openWindow(sc *scene.Scene, opts pipeline.Options) error {
	p, err := player.New(sc, opts.Width, opts.Height, opts.FPS, c.Logger)
	if err != nil {
		return err
	}
	c.Logger.Debug("opening player", "size", opts.Width, "fps", opts.FPS)
	return p.Run(appName + " · " + opts.Matrix.String())
}
