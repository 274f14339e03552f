package features

import (
	"github.com/giilab/giiscope/dataset"
	"github.com/giilab/giiscope/pkg/errors"
	"github.com/giilab/giiscope/pkg/log"
	"gonum.org/v1/gonum/mat"
)

// Matrix pairs eligible records' feature vectors with their GII targets.
// It is rebuilt wholesale whenever the loader or feature engineer output
// changes; it is never mutated in place.
type Matrix struct {
	X *mat.Dense
	Y *mat.VecDense

	// Countries holds the country name for each matrix row, in row order,
	// for reproducible display.
	Countries []string

	// FeatureNames is the fixed column order of X.
	FeatureNames []string
}

// Rows returns the number of eligible records in the matrix.
func (m *Matrix) Rows() int {
	r, _ := m.X.Dims()
	return r
}

// Vector assembles the nine-element feature vector for rec in FeatureOrder,
// deriving the gaps and applying the transformer's stored clip/log
// statistics. The second result is false when the record is ineligible:
// any of the nine features (or, for modeling, the target) missing.
//
// Both the trainer and the scenario predictor build their inputs through
// this function, so training and serving can never disagree on the
// transform.
func Vector(rec dataset.Record, t *ClipLogTransformer) ([]float64, bool, error) {
	rec = WithGaps(rec)

	raw := []dataset.Float{
		rec.MaternalMortality,
		rec.AdolescentBirthRate,
		rec.SeatsParliament,
		rec.FSecondaryEduc,
		rec.MSecondaryEduc,
		rec.FLabourForce,
		rec.MLabourForce,
		rec.EduGap,
		rec.LabourGap,
	}
	for _, v := range raw {
		if !v.Valid {
			return nil, false, nil
		}
	}

	logMaternal, err := t.LogMaternal(rec.MaternalMortality.Value)
	if err != nil {
		return nil, false, err
	}
	logAdolescent, err := t.LogAdolescent(rec.AdolescentBirthRate.Value)
	if err != nil {
		return nil, false, err
	}

	return []float64{
		logMaternal,
		logAdolescent,
		rec.SeatsParliament.Value,
		rec.FSecondaryEduc.Value,
		rec.MSecondaryEduc.Value,
		rec.FLabourForce.Value,
		rec.MLabourForce.Value,
		rec.EduGap.Value,
		rec.LabourGap.Value,
	}, true, nil
}

// BuildMatrix fits a ClipLogTransformer on the table's full distribution and
// assembles the feature matrix from eligible records: those with GIIValue
// and all nine features present after transformation. Eligibility is
// evaluated here on every build, never cached.
func BuildMatrix(table *dataset.Table) (*Matrix, *ClipLogTransformer, error) {
	t := NewClipLogTransformer()
	if err := t.Fit(table.Records); err != nil {
		return nil, nil, err
	}
	m, err := BuildMatrixWith(table, t)
	if err != nil {
		return nil, nil, err
	}
	return m, t, nil
}

// BuildMatrixWith assembles the feature matrix using an already-fitted
// transformer, preserving its stored bounds.
func BuildMatrixWith(table *dataset.Table, t *ClipLogTransformer) (*Matrix, error) {
	logger := log.GetLoggerWithName("features.matrix")

	var (
		rows      []float64
		targets   []float64
		countries []string
	)
	for _, rec := range table.Records {
		if !rec.GIIValue.Valid {
			continue
		}
		vec, ok, err := Vector(rec, t)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		rows = append(rows, vec...)
		targets = append(targets, rec.GIIValue.Value)
		countries = append(countries, rec.Country)
	}

	if len(targets) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "BuildMatrixWith: no eligible records")
	}

	names := make([]string, len(FeatureOrder))
	copy(names, FeatureOrder)

	logger.Info("feature matrix built",
		log.RowsKey, len(table.Records),
		log.EligibleKey, len(targets),
		log.FeaturesKey, len(names))

	return &Matrix{
		X:            mat.NewDense(len(targets), len(names), rows),
		Y:            mat.NewVecDense(len(targets), targets),
		Countries:    countries,
		FeatureNames: names,
	}, nil
}
