package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantileLinearInterpolation(t *testing.T) {
	values := []float64{1, 2, 3, 4}

	// h = (n-1)p: p=0.5 sits halfway between the 2nd and 3rd order statistic.
	assert.InDelta(t, 2.5, Quantile(values, 0.5), 1e-12)
	assert.InDelta(t, 1.75, Quantile(values, 0.25), 1e-12)
	assert.InDelta(t, 1.0, Quantile(values, 0), 1e-12)
	assert.InDelta(t, 4.0, Quantile(values, 1), 1e-12)

	// Unsorted input is sorted internally, not mutated.
	shuffled := []float64{4, 1, 3, 2}
	assert.InDelta(t, 2.5, Quantile(shuffled, 0.5), 1e-12)
	assert.Equal(t, []float64{4, 1, 3, 2}, shuffled)
}

func TestQuantileSingleValue(t *testing.T) {
	assert.InDelta(t, 7.0, Quantile([]float64{7}, 0.99), 1e-12)
	assert.True(t, math.IsNaN(Quantile(nil, 0.5)))
}

func statsTable() *Table {
	return &Table{Records: []Record{
		{Country: "A", GIIValue: F(0.1), MaternalMortality: F(10), FSecondaryEduc: F(90)},
		{Country: "B", GIIValue: F(0.2), MaternalMortality: F(100), FSecondaryEduc: F(70)},
		{Country: "C", GIIValue: F(0.4), MaternalMortality: F(400), FSecondaryEduc: F(40)},
		{Country: "D", GIIValue: F(0.5), MaternalMortality: Missing, FSecondaryEduc: F(30)},
	}}
}

func TestDescribeSkipsMissing(t *testing.T) {
	table := statsTable()
	summaries := table.Describe()

	byName := map[string]ColumnSummary{}
	for _, s := range summaries {
		byName[s.Name] = s
	}

	mm := byName["maternal_mortality"]
	assert.Equal(t, 3, mm.Count)
	assert.InDelta(t, 170, mm.Mean, 1e-9)
	assert.InDelta(t, 10, mm.Min, 1e-12)
	assert.InDelta(t, 400, mm.Max, 1e-12)

	gii := byName["gii_value"]
	assert.Equal(t, 4, gii.Count)
	assert.InDelta(t, 0.3, gii.Mean, 1e-12)

	// Empty columns are reported, not dropped.
	gap := byName["edu_gap"]
	assert.Equal(t, 0, gap.Count)
	assert.True(t, math.IsNaN(gap.Mean))
}

func TestCorrelationMatrixPairwiseComplete(t *testing.T) {
	table := statsTable()
	corr, names, err := table.CorrelationMatrix()
	require.NoError(t, err)

	idx := map[string]int{}
	for i, name := range names {
		idx[name] = i
	}

	// Diagonal is exactly 1.
	assert.InDelta(t, 1.0, corr.At(idx["gii_value"], idx["gii_value"]), 1e-12)

	// GII rises with maternal mortality in this fixture, computed only over
	// the three rows where both are present.
	r := corr.At(idx["gii_value"], idx["maternal_mortality"])
	assert.Greater(t, r, 0.9)

	// GII falls as female education rises.
	r = corr.At(idx["gii_value"], idx["f_secondary_educ"])
	assert.Less(t, r, -0.9)
}

func TestCorrelationMatrixEmptyTable(t *testing.T) {
	empty := &Table{}
	_, _, err := empty.CorrelationMatrix()
	require.Error(t, err)
}
