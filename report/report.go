// Package report renders the analytics outputs: text summaries of the
// cleaned table and model quality, and PNG charts of the GII distribution
// and its relationship to the raw indicators.
package report

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/giilab/giiscope/dataset"
	"github.com/giilab/giiscope/forest"
)

// WriteSummary writes per-column descriptive statistics for the table.
// Missing values are excluded from every statistic; columns with no data
// still appear, with NaN statistics, so absence is visible.
func WriteSummary(w io.Writer, table *dataset.Table) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "column\tcount\tmean\tstd\tmin\tp25\tmedian\tp75\tmax")

	for _, s := range table.Describe() {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			s.Name, s.Count,
			fmtStat(s.Mean), fmtStat(s.Std),
			fmtStat(s.Min), fmtStat(s.Q25), fmtStat(s.Median), fmtStat(s.Q75), fmtStat(s.Max))
	}

	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\nrows: %d, cells nulled during cleaning: %d\n",
		len(table.Records), table.MissingCells)
	return err
}

// WriteCorrelation writes the pairwise-complete Pearson correlation matrix
// of the numeric columns.
func WriteCorrelation(w io.Writer, table *dataset.Table) error {
	corr, names, err := table.CorrelationMatrix()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprint(tw, "column")
	for _, name := range names {
		fmt.Fprintf(tw, "\t%s", name)
	}
	fmt.Fprintln(tw)

	for i, name := range names {
		fmt.Fprint(tw, name)
		for j := range names {
			fmt.Fprintf(tw, "\t%s", fmtStat(corr.At(i, j)))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

// WriteCV writes the per-fold cross-validation scores with their mean and
// standard deviation.
func WriteCV(w io.Writer, result *forest.CVResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "fold\tr2")
	for i, score := range result.Scores {
		fmt.Fprintf(tw, "%d\t%.4f\n", i, score)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\nmean r2: %.4f, std: %.4f over %d folds\n",
		result.Mean(), result.Std(), len(result.Scores))
	return err
}

// WriteTrials writes the hyperparameter search trials, best first only in
// the summary line; the table keeps evaluation order.
func WriteTrials(w io.Writer, result *forest.SearchResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "trial\ttrees\tmax_depth\tmin_split\tmin_leaf\tmax_features\tmean_r2\tstd_r2")
	for i, trial := range result.Trials {
		p := trial.Params
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\t%d\t%.4f\t%.4f\n",
			i, p.NumTrees, p.MaxDepth, p.MinSamplesSplit, p.MinSamplesLeaf, p.MaxFeatures,
			trial.Mean, trial.Std)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	b := result.Best.Params
	_, err := fmt.Fprintf(w, "\nbest: trees=%d depth=%d split=%d leaf=%d features=%d (mean r2 %.4f ± %.4f)\n",
		b.NumTrees, b.MaxDepth, b.MinSamplesSplit, b.MinSamplesLeaf, b.MaxFeatures,
		result.Best.Mean, result.Best.Std)
	return err
}

func fmtStat(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.3f", v)
}
