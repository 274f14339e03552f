package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giilab/giiscope/dataset"
)

func completeRecord(country string, gii float64) dataset.Record {
	return dataset.Record{
		Country:             country,
		GIIValue:            dataset.F(gii),
		MaternalMortality:   dataset.F(50),
		AdolescentBirthRate: dataset.F(30),
		SeatsParliament:     dataset.F(25),
		FSecondaryEduc:      dataset.F(60),
		MSecondaryEduc:      dataset.F(70),
		FLabourForce:        dataset.F(55),
		MLabourForce:        dataset.F(75),
	}
}

func TestBuildMatrixEligibility(t *testing.T) {
	noTarget := completeRecord("NoTarget", 0)
	noTarget.GIIValue = dataset.Missing

	noEduc := completeRecord("NoEduc", 0.3)
	noEduc.FSecondaryEduc = dataset.Missing // kills f_secondary_educ and edu_gap

	table := &dataset.Table{Records: []dataset.Record{
		completeRecord("A", 0.1),
		noTarget,
		noEduc,
		completeRecord("B", 0.4),
	}}

	m, tf, err := BuildMatrix(table)
	require.NoError(t, err)
	require.NotNil(t, tf)

	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, []string{"A", "B"}, m.Countries)
	assert.Equal(t, FeatureOrder, m.FeatureNames)

	_, cols := m.X.Dims()
	assert.Equal(t, 9, cols)

	assert.InDelta(t, 0.1, m.Y.AtVec(0), 1e-12)
	assert.InDelta(t, 0.4, m.Y.AtVec(1), 1e-12)
}

func TestBuildMatrixNoEligibleRows(t *testing.T) {
	rec := completeRecord("OnlyPartial", 0.2)
	rec.SeatsParliament = dataset.Missing

	table := &dataset.Table{Records: []dataset.Record{rec}}
	_, _, err := BuildMatrix(table)
	require.Error(t, err)
}

// The same Vector path serves training and scenario inference; a record run
// through BuildMatrix and through Vector with the same transformer must
// produce identical rows.
func TestVectorMatchesMatrixRow(t *testing.T) {
	table := &dataset.Table{Records: []dataset.Record{
		completeRecord("A", 0.1),
		completeRecord("B", 0.4),
	}}

	m, tf, err := BuildMatrix(table)
	require.NoError(t, err)

	vec, ok, err := Vector(table.Records[1], tf)
	require.NoError(t, err)
	require.True(t, ok)

	for j := 0; j < len(vec); j++ {
		assert.InDelta(t, m.X.At(1, j), vec[j], 1e-12)
	}
}

func TestVectorIneligibleRecord(t *testing.T) {
	tf := NewClipLogTransformer()
	tf.MaternalBounds = ClipBounds{0, 100}
	tf.AdolescentBounds = ClipBounds{0, 100}
	tf.SetFitted()

	rec := completeRecord("X", 0.5)
	rec.MLabourForce = dataset.Missing

	_, ok, err := Vector(rec, tf)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRawValueAndSetRaw(t *testing.T) {
	rec := completeRecord("X", 0.5)

	v, ok := RawValue(rec, FeatFSecondaryEduc)
	require.True(t, ok)
	assert.InDelta(t, 60, v.Value, 1e-12)

	_, ok = RawValue(rec, "edu_gap")
	assert.False(t, ok, "derived features are not raw-addressable")

	require.True(t, SetRaw(&rec, FeatFSecondaryEduc, 80))
	assert.InDelta(t, 80, rec.FSecondaryEduc.Value, 1e-12)
	assert.False(t, SetRaw(&rec, "unknown_feature", 1))
}
