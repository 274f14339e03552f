package dataset

import (
	"math"
	"sort"

	"github.com/giilab/giiscope/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// column binds a display name to a Record field accessor. The snake_case
// names are the identifiers used throughout modeling and scenario requests.
type column struct {
	Name string
	Get  func(Record) Float
}

// summaryColumns are the numeric columns reported by Describe and
// CorrelationMatrix, gaps included, in display order.
var summaryColumns = []column{
	{"hdi_rank", func(r Record) Float { return r.HDIRank }},
	{"gii_value", func(r Record) Float { return r.GIIValue }},
	{"gii_rank", func(r Record) Float { return r.GIIRank }},
	{"maternal_mortality", func(r Record) Float { return r.MaternalMortality }},
	{"adolescent_birth_rate", func(r Record) Float { return r.AdolescentBirthRate }},
	{"seats_parliament_pct", func(r Record) Float { return r.SeatsParliament }},
	{"f_secondary_educ", func(r Record) Float { return r.FSecondaryEduc }},
	{"m_secondary_educ", func(r Record) Float { return r.MSecondaryEduc }},
	{"f_labour_force", func(r Record) Float { return r.FLabourForce }},
	{"m_labour_force", func(r Record) Float { return r.MLabourForce }},
	{"edu_gap", func(r Record) Float { return r.EduGap }},
	{"labour_gap", func(r Record) Float { return r.LabourGap }},
}

// Quantile returns the p-quantile (p in [0,1]) of values using linear
// interpolation between order statistics: with n sorted values the quantile
// sits at rank h = (n-1)p and interpolates between floor(h) and ceil(h).
// This is the definition the clip bounds depend on; substituting another
// method changes every downstream model score.
func Quantile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[len(sorted)-1]
	}

	h := float64(len(sorted)-1) * p
	lo := int(math.Floor(h))
	hi := int(math.Ceil(h))
	if lo == hi {
		return sorted[lo]
	}
	frac := h - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ColumnSummary is one row of the Describe table.
type ColumnSummary struct {
	Name   string
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q25    float64
	Median float64
	Q75    float64
	Max    float64
}

// Column returns the non-missing values of the named numeric column in row
// order. Unknown names return nil.
func (t *Table) Column(name string) []float64 {
	for _, col := range summaryColumns {
		if col.Name != name {
			continue
		}
		var values []float64
		for _, rec := range t.Records {
			if v := col.Get(rec); v.Valid {
				values = append(values, v.Value)
			}
		}
		return values
	}
	return nil
}

// ColumnNames lists the numeric columns in display order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(summaryColumns))
	for i, col := range summaryColumns {
		names[i] = col.Name
	}
	return names
}

// Describe computes per-column summary statistics over non-missing values,
// one entry per numeric column. Columns with no data report Count 0 and NaN
// statistics rather than being dropped.
func (t *Table) Describe() []ColumnSummary {
	out := make([]ColumnSummary, 0, len(summaryColumns))
	for _, col := range summaryColumns {
		values := t.Column(col.Name)
		s := ColumnSummary{Name: col.Name, Count: len(values)}
		if len(values) == 0 {
			s.Mean, s.Std, s.Min, s.Q25, s.Median, s.Q75, s.Max =
				math.NaN(), math.NaN(), math.NaN(), math.NaN(), math.NaN(), math.NaN(), math.NaN()
			out = append(out, s)
			continue
		}
		s.Mean = stat.Mean(values, nil)
		if len(values) > 1 {
			s.Std = stat.StdDev(values, nil)
		}
		s.Min = Quantile(values, 0)
		s.Q25 = Quantile(values, 0.25)
		s.Median = Quantile(values, 0.5)
		s.Q75 = Quantile(values, 0.75)
		s.Max = Quantile(values, 1)
		out = append(out, s)
	}
	return out
}

// CorrelationMatrix computes the Pearson correlation between all numeric
// columns, pairwise-complete: each pair uses only the rows where both
// values are present. Pairs with fewer than two complete rows get NaN.
func (t *Table) CorrelationMatrix() (*mat.SymDense, []string, error) {
	n := len(summaryColumns)
	if len(t.Records) == 0 {
		return nil, nil, errors.Wrap(errors.ErrEmptyData, "CorrelationMatrix")
	}

	corr := mat.NewSymDense(n, nil)
	names := t.ColumnNames()

	for i := 0; i < n; i++ {
		corr.SetSym(i, i, 1)
		for j := i + 1; j < n; j++ {
			var xs, ys []float64
			for _, rec := range t.Records {
				xv := summaryColumns[i].Get(rec)
				yv := summaryColumns[j].Get(rec)
				if xv.Valid && yv.Valid {
					xs = append(xs, xv.Value)
					ys = append(ys, yv.Value)
				}
			}
			if len(xs) < 2 {
				corr.SetSym(i, j, math.NaN())
				continue
			}
			corr.SetSym(i, j, stat.Correlation(xs, ys, nil))
		}
	}
	return corr, names, nil
}
