package scenario

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giilab/giiscope/dataset"
	"github.com/giilab/giiscope/features"
	"github.com/giilab/giiscope/forest"
	"github.com/giilab/giiscope/pkg/errors"
)

// buildFixture trains a small forest on a synthetic table whose GII tracks
// maternal mortality and the education gap.
func buildFixture(t *testing.T) (*Predictor, *dataset.Table) {
	t.Helper()

	var records []dataset.Record
	for i := 0; i < 40; i++ {
		maternal := 10.0 + float64(i)*20
		fEduc := 30.0 + float64(i%20)
		mEduc := fEduc + 15.0
		gii := 0.1 + maternal/4000 + (mEduc-fEduc)/200
		records = append(records, dataset.Record{
			Country:             countryName(i),
			GIIValue:            dataset.F(gii),
			MaternalMortality:   dataset.F(maternal),
			AdolescentBirthRate: dataset.F(20 + float64(i)),
			SeatsParliament:     dataset.F(15 + float64(i%30)),
			FSecondaryEduc:      dataset.F(fEduc),
			MSecondaryEduc:      dataset.F(mEduc),
			FLabourForce:        dataset.F(45 + float64(i%25)),
			MLabourForce:        dataset.F(70 + float64(i%15)),
		})
	}
	table := &dataset.Table{Records: records}

	m, transform, err := features.BuildMatrix(table)
	require.NoError(t, err)

	rf := forest.NewRegressor(forest.Params{NumTrees: 30, MaxDepth: 8, Seed: 42})
	require.NoError(t, rf.Fit(m.X, m.Y))

	bundle, err := NewBundle(rf, transform)
	require.NoError(t, err)

	return NewPredictor(bundle, table), table
}

func countryName(i int) string {
	return "Country-" + string(rune('A'+i%26)) + string(rune('a'+i/26))
}

func TestPredictZeroDeltaIsFixedPoint(t *testing.T) {
	p, table := buildFixture(t)
	name := table.Records[3].Country

	res, err := p.Predict(name, nil)
	require.NoError(t, err)
	assert.Equal(t, res.BaselineGII, res.PredictedGII,
		"empty delta map must reproduce the baseline exactly")

	res2, err := p.Predict(name, map[string]float64{})
	require.NoError(t, err)
	assert.Equal(t, res.PredictedGII, res2.PredictedGII)
}

func TestPredictRederivesGaps(t *testing.T) {
	p, _ := buildFixture(t)

	rec := dataset.Record{
		Country:             "Gapland",
		MaternalMortality:   dataset.F(200),
		AdolescentBirthRate: dataset.F(40),
		SeatsParliament:     dataset.F(20),
		FSecondaryEduc:      dataset.F(30),
		MSecondaryEduc:      dataset.F(60),
		FLabourForce:        dataset.F(50),
		MLabourForce:        dataset.F(75),
	}

	res, err := p.PredictRecord(rec, map[string]float64{
		features.FeatFSecondaryEduc: 20,
	})
	require.NoError(t, err)

	assert.Equal(t, 50.0, res.Adjusted.FSecondaryEduc.Value)
	require.True(t, res.Adjusted.EduGap.Valid)
	assert.Equal(t, 10.0, res.Adjusted.EduGap.Value,
		"edu gap must be recomputed from the adjusted inputs, not carried over")

	// The forecast must come from the adjusted record, re-transformed the
	// same way a fresh baseline would be.
	again, err := p.PredictRecord(res.Adjusted, nil)
	require.NoError(t, err)
	assert.Equal(t, again.BaselineGII, res.PredictedGII)
}

func TestPredictUnknownCountry(t *testing.T) {
	p, _ := buildFixture(t)
	_, err := p.Predict("Atlantis", nil)
	require.Error(t, err)
	var valueErr *errors.ValueError
	assert.True(t, errors.As(err, &valueErr))
}

func TestPredictRejectsUnknownDelta(t *testing.T) {
	p, table := buildFixture(t)

	_, err := p.Predict(table.Records[0].Country, map[string]float64{
		"edu_gap": -5, // derived, not adjustable
	})
	require.Error(t, err)
	var invalidErr *errors.InvalidInputError
	require.True(t, errors.As(err, &invalidErr))
	assert.Equal(t, "edu_gap", invalidErr.Feature)
}

func TestPredictRejectsOutOfDomain(t *testing.T) {
	p, table := buildFixture(t)

	_, err := p.Predict(table.Records[0].Country, map[string]float64{
		features.FeatFLabourForce: 80, // pushes a percentage past 100
	})
	require.Error(t, err)
	var invalidErr *errors.InvalidInputError
	require.True(t, errors.As(err, &invalidErr))
	assert.Equal(t, features.FeatFLabourForce, invalidErr.Feature)
}

func TestPredictRejectsDeltaOnMissingIndicator(t *testing.T) {
	p, _ := buildFixture(t)

	rec := dataset.Record{
		Country:             "Holey",
		MaternalMortality:   dataset.F(100),
		AdolescentBirthRate: dataset.F(30),
		SeatsParliament:     dataset.Missing,
		FSecondaryEduc:      dataset.F(40),
		MSecondaryEduc:      dataset.F(55),
		FLabourForce:        dataset.F(50),
		MLabourForce:        dataset.F(70),
	}

	_, err := p.PredictRecord(rec, map[string]float64{
		features.FeatSeatsParliament: 5,
	})
	require.Error(t, err)
	var invalidErr *errors.InvalidInputError
	assert.True(t, errors.As(err, &invalidErr))
}

func TestPredictRejectsIncompleteBaseline(t *testing.T) {
	p, _ := buildFixture(t)

	rec := dataset.Record{
		Country:           "Holey",
		MaternalMortality: dataset.F(100),
	}
	_, err := p.PredictRecord(rec, nil)
	require.Error(t, err)
	var invalidErr *errors.InvalidInputError
	assert.True(t, errors.As(err, &invalidErr))
}

func TestBundleRoundTrip(t *testing.T) {
	p, table := buildFixture(t)
	name := table.Records[7].Country

	before, err := p.Predict(name, map[string]float64{features.FeatSeatsParliament: 3})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, p.bundle.Write(&buf))

	loaded, err := Read(&buf)
	require.NoError(t, err)
	assert.True(t, loaded.Forest.IsFitted(), "fitted flag must be restored on load")
	assert.True(t, loaded.Transform.IsFitted())
	assert.Equal(t, features.FeatureOrder, loaded.FeatureNames)

	after, err := NewPredictor(loaded, table).Predict(name, map[string]float64{features.FeatSeatsParliament: 3})
	require.NoError(t, err)
	assert.Equal(t, before.PredictedGII, after.PredictedGII,
		"persisted bundle must predict identically")
}

func TestReadRejectsForeignFeatureOrder(t *testing.T) {
	p, _ := buildFixture(t)

	tampered := *p.bundle
	tampered.FeatureNames = append([]string(nil), p.bundle.FeatureNames...)
	tampered.FeatureNames[0], tampered.FeatureNames[1] =
		tampered.FeatureNames[1], tampered.FeatureNames[0]

	var buf bytes.Buffer
	require.NoError(t, tampered.Write(&buf))
	_, err := Read(&buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "feature")
}

func TestNewBundleRequiresFitted(t *testing.T) {
	_, err := NewBundle(forest.NewRegressor(forest.DefaultParams()), features.NewClipLogTransformer())
	require.Error(t, err)
	var notFitted *errors.NotFittedError
	assert.True(t, errors.As(err, &notFitted))
}
