package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giilab/giiscope/dataset"
	"github.com/giilab/giiscope/features"
	"github.com/giilab/giiscope/forest"
)

func reportTable() *dataset.Table {
	var records []dataset.Record
	groups := []dataset.DevelopmentGroup{
		dataset.DevVeryHigh, dataset.DevHigh, dataset.DevMedium, dataset.DevLow,
	}
	for i := 0; i < 24; i++ {
		records = append(records, dataset.Record{
			Country:             "C" + string(rune('A'+i)),
			DevelopmentGroup:    groups[i%4],
			GIIValue:            dataset.F(0.1 + float64(i)*0.03),
			MaternalMortality:   dataset.F(20 + float64(i)*30),
			AdolescentBirthRate: dataset.F(10 + float64(i)*4),
			SeatsParliament:     dataset.F(float64(10 + i)),
			FSecondaryEduc:      dataset.F(float64(90 - i*2)),
			MSecondaryEduc:      dataset.F(float64(92 - i)),
			FLabourForce:        dataset.F(float64(40 + i)),
			MLabourForce:        dataset.F(float64(70 + i%10)),
		})
	}
	// One row with holes, so missing handling shows up in the summary.
	records = append(records, dataset.Record{Country: "Sparse"})
	return &dataset.Table{Records: records, MissingCells: 11}
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, reportTable()))

	out := buf.String()
	assert.Contains(t, out, "gii_value")
	assert.Contains(t, out, "maternal_mortality")
	assert.Contains(t, out, "cells nulled during cleaning: 11")
}

func TestWriteCorrelation(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCorrelation(&buf, reportTable()))

	out := buf.String()
	assert.Contains(t, out, "gii_value")
	// Column header row plus one row per column.
	lines := strings.Count(strings.TrimRight(out, "\n"), "\n") + 1
	assert.Greater(t, lines, 5)
}

func TestWriteCV(t *testing.T) {
	var buf bytes.Buffer
	cv := &forest.CVResult{Scores: []float64{0.61, 0.55, 0.70}}
	require.NoError(t, WriteCV(&buf, cv))

	out := buf.String()
	assert.Contains(t, out, "0.6100")
	assert.Contains(t, out, "over 3 folds")
}

func TestWriteTrials(t *testing.T) {
	res := &forest.SearchResult{
		Best: forest.Trial{Params: forest.Params{NumTrees: 100, MaxDepth: 5}, Mean: 0.6},
		Trials: []forest.Trial{
			{Params: forest.Params{NumTrees: 50}, Mean: 0.4},
			{Params: forest.Params{NumTrees: 100, MaxDepth: 5}, Mean: 0.6},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTrials(&buf, res))
	assert.Contains(t, buf.String(), "best: trees=100 depth=5")
}

func TestCharts(t *testing.T) {
	table := reportTable()
	dir := t.TempDir()

	cases := []struct {
		name string
		run  func(path string) error
	}{
		{"histogram.png", func(p string) error { return HistogramGII(table, p) }},
		{"scatter.png", func(p string) error {
			return ScatterGII(table, features.FeatMaternalMortality, p)
		}},
		{"groups.png", func(p string) error { return GroupBoxesGII(table, p) }},
	}
	for _, tc := range cases {
		path := filepath.Join(dir, tc.name)
		require.NoError(t, tc.run(path), tc.name)

		info, err := os.Stat(path)
		require.NoError(t, err, tc.name)
		assert.Greater(t, info.Size(), int64(0), tc.name)
	}
}

func TestScatterGIIUnknownIndicator(t *testing.T) {
	err := ScatterGII(reportTable(), "gii_rank", filepath.Join(t.TempDir(), "x.png"))
	require.Error(t, err)
}

func TestHistogramGIIEmptyTable(t *testing.T) {
	err := HistogramGII(&dataset.Table{}, filepath.Join(t.TempDir(), "x.png"))
	require.Error(t, err)
}
