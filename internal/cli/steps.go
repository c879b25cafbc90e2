package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/lintrans/pkg/pipeline"
	"github.com/matzehuels/lintrans/pkg/scene"
)

// stepsCommand creates the steps command, which browses the storyboard.
func (c *CLI) stepsCommand() *cobra.Command {
	var (
		flags sceneFlags
		plain bool
	)

	cmd := &cobra.Command{
		Use:   "steps",
		Short: "Browse the storyboard steps",
		Long: `Browse the storyboard: every step with its start time, length and what it
animates. Use --plain to print a table instead of the interactive browser.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, _, err := flags.options(cmd)
			if err != nil {
				return err
			}
			sc, err := pipeline.NewRunner(nil, nil, c.Logger).Build(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if plain {
				fmt.Println(stepsTable(sc.Steps()))
				return nil
			}
			_, err = tea.NewProgram(NewStepListModel(sc.Steps(), sc.Duration()), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	flags.register(cmd, false)
	cmd.Flags().BoolVar(&plain, "plain", false, "print a table instead of the interactive browser")
	return cmd
}

func stepsTable(steps []scene.StepInfo) string {
	rows := make([][]string, len(steps))
	for i, s := range steps {
		rows[i] = []string{fmt.Sprint(s.Index + 1), formatSeconds(s.Start), formatSeconds(s.Duration), s.Name, s.Description}
	}
	return renderTable([]string{"#", "Start", "Length", "Step", "Description"}, rows)
}
