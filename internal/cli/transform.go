package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lintrans/pkg/geom"
	"github.com/matzehuels/lintrans/pkg/render/sink"
)

// transformCommand creates the transform command, which applies the scaling
// matrix without rendering anything.
func (c *CLI) transformCommand() *cobra.Command {
	var (
		flags  sceneFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "transform",
		Short: "Print the original and transformed vertices",
		Example: `  lintrans transform
  lintrans transform --vertices "0,0;4,0;0,3" --scale 2,-1 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, _, err := flags.options(cmd)
			if err != nil {
				return err
			}
			if err := opts.ValidateForBuild(); err != nil {
				return err
			}
			tr := sink.NewTransform(opts.Vertices, *opts.Matrix)
			if asJSON {
				return writeTransformJSON(os.Stdout, tr)
			}
			fmt.Println(transformTable(tr))
			return nil
		},
	}

	flags.register(cmd, false)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

// transformTable lays out the matrix and one row per vertex.
func transformTable(tr sink.Transform) string {
	rows := make([][]string, len(tr.Original))
	for i, p := range tr.Original {
		rows[i] = []string{fmt.Sprint(i + 1), p.String(), tr.Transformed[i].String()}
	}
	m := geom.Scale(tr.Matrix.SX, tr.Matrix.SY)
	return StyleTitle.Render("Scaling matrix ") + StyleValue.Render(m.String()) + "\n" +
		renderTable([]string{"#", "Original", "Transformed"}, rows)
}

func writeTransformJSON(w io.Writer, tr sink.Transform) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(tr)
}
