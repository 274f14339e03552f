package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/giilab/giiscope/features"
	"github.com/giilab/giiscope/report"
)

var reportCharts bool

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize the cleaned table: statistics, correlations, charts",
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := loadTable()
		if err != nil {
			return err
		}

		if err := report.WriteSummary(os.Stdout, table); err != nil {
			return err
		}
		fmt.Println()
		if err := report.WriteCorrelation(os.Stdout, table); err != nil {
			return err
		}

		if !reportCharts {
			return nil
		}
		if err := ensureOutputDir(); err != nil {
			return err
		}
		if err := report.HistogramGII(table, outPath("gii_histogram.png")); err != nil {
			return err
		}
		if err := report.GroupBoxesGII(table, outPath("gii_by_group.png")); err != nil {
			return err
		}
		for _, indicator := range features.RawFeatures {
			if err := report.ScatterGII(table, indicator, outPath("gii_vs_"+indicator+".png")); err != nil {
				return err
			}
		}
		fmt.Printf("\ncharts written to %s\n", cfg.OutputDir)
		return nil
	},
}

func init() {
	reportCmd.Flags().BoolVar(&reportCharts, "charts", true, "render PNG charts into the output dir")
	rootCmd.AddCommand(reportCmd)
}
