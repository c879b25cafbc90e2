//go:build headless

package cli

import (
	"github.com/matzehuels/lintrans/pkg/errors"
	"github.com/matzehuels/lintrans/pkg/pipeline"
	"github.com/matzehuels/lintrans/pkg/scene"
)

// openWindow fails: headless builds leave out ebiten, which needs cgo and a
// display server.
func (c *CLI) openWindow(*scene.Scene, pipeline.Options) error {
	return errors.New(errors.ErrCodeUnsupported, "%s was built with -tags headless and cannot open a window; use render instead", appName)
}
