package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/giilab/giiscope/features"
	"github.com/giilab/giiscope/forest"
	"github.com/giilab/giiscope/report"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Cross-validate the baseline forest and report per-fold R²",
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := loadTable()
		if err != nil {
			return err
		}
		m, _, err := features.BuildMatrix(table)
		if err != nil {
			return err
		}

		cv, err := forest.CrossValidate(baselineParams(), m.X, m.Y, splitter())
		if err != nil {
			return err
		}
		return report.WriteCV(os.Stdout, cv)
	},
}

func init() {
	rootCmd.AddCommand(evaluateCmd)
}
