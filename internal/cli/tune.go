package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/giilab/giiscope/features"
	"github.com/giilab/giiscope/forest"
	"github.com/giilab/giiscope/report"
)

var tuneSave bool

var tuneCmd = &cobra.Command{
	Use:   "tune",
	Short: "Randomized hyperparameter search over the forest",
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := loadTable()
		if err != nil {
			return err
		}
		m, transform, err := features.BuildMatrix(table)
		if err != nil {
			return err
		}

		res, err := forest.RandomizedSearch(
			forest.DefaultSearchSpace(), cfg.Trials, cfg.Seed, m.X, m.Y, splitter())
		if err != nil {
			return err
		}
		if err := report.WriteTrials(os.Stdout, res); err != nil {
			return err
		}

		if !tuneSave {
			return nil
		}
		if err := saveBundle(res.Model, transform); err != nil {
			return err
		}
		fmt.Printf("\nbest model saved to %s\n", cfg.ModelPath)
		return nil
	},
}

func init() {
	tuneCmd.Flags().BoolVar(&tuneSave, "save", false, "save the refit best model")
	rootCmd.AddCommand(tuneCmd)
}
