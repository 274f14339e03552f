// Package features derives modeling features from cleaned records: the
// male-minus-female education and labour gaps, the percentile-clipped
// log-transformed health indicators, and the fixed-order feature matrix fed
// to the regressor.
package features

import (
	"math"

	"github.com/giilab/giiscope/dataset"
)

// Feature identifiers. Scenario deltas address raw indicators; the matrix
// columns use the transformed names.
const (
	FeatMaternalMortality   = "maternal_mortality"
	FeatAdolescentBirthRate = "adolescent_birth_rate"
	FeatSeatsParliament     = "seats_parliament_pct"
	FeatFSecondaryEduc      = "f_secondary_educ"
	FeatMSecondaryEduc      = "m_secondary_educ"
	FeatFLabourForce        = "f_labour_force"
	FeatMLabourForce        = "m_labour_force"
	FeatEduGap              = "edu_gap"
	FeatLabourGap           = "labour_gap"

	FeatLogMaternalMortality   = "log_maternal_mortality"
	FeatLogAdolescentBirthRate = "log_adolescent_birth_rate"
)

// FeatureOrder is the fixed column order of the feature matrix, for training
// and prediction alike. Persisted bundles record a copy and refuse to load
// when it disagrees with this order.
var FeatureOrder = []string{
	FeatLogMaternalMortality,
	FeatLogAdolescentBirthRate,
	FeatSeatsParliament,
	FeatFSecondaryEduc,
	FeatMSecondaryEduc,
	FeatFLabourForce,
	FeatMLabourForce,
	FeatEduGap,
	FeatLabourGap,
}

// RawFeatures are the delta-addressable raw indicators. Gap features are
// derived and cannot be targeted directly.
var RawFeatures = []string{
	FeatMaternalMortality,
	FeatAdolescentBirthRate,
	FeatSeatsParliament,
	FeatFSecondaryEduc,
	FeatMSecondaryEduc,
	FeatFLabourForce,
	FeatMLabourForce,
}

// Domain is the declared closed domain of a raw indicator.
type Domain struct {
	Min, Max float64
}

// Contains reports whether v lies inside the domain.
func (d Domain) Contains(v float64) bool {
	return v >= d.Min && v <= d.Max
}

// RawDomains declares the valid range per raw indicator: percentages in
// [0,100], rates non-negative and unbounded above.
var RawDomains = map[string]Domain{
	FeatMaternalMortality:   {0, math.Inf(1)},
	FeatAdolescentBirthRate: {0, math.Inf(1)},
	FeatSeatsParliament:     {0, 100},
	FeatFSecondaryEduc:      {0, 100},
	FeatMSecondaryEduc:      {0, 100},
	FeatFLabourForce:        {0, 100},
	FeatMLabourForce:        {0, 100},
}

// RawValue returns the named raw indicator of rec. The second result is
// false for unrecognized names.
func RawValue(rec dataset.Record, name string) (dataset.Float, bool) {
	switch name {
	case FeatMaternalMortality:
		return rec.MaternalMortality, true
	case FeatAdolescentBirthRate:
		return rec.AdolescentBirthRate, true
	case FeatSeatsParliament:
		return rec.SeatsParliament, true
	case FeatFSecondaryEduc:
		return rec.FSecondaryEduc, true
	case FeatMSecondaryEduc:
		return rec.MSecondaryEduc, true
	case FeatFLabourForce:
		return rec.FLabourForce, true
	case FeatMLabourForce:
		return rec.MLabourForce, true
	default:
		return dataset.Missing, false
	}
}

// SetRaw sets the named raw indicator on rec. Returns false for
// unrecognized names.
func SetRaw(rec *dataset.Record, name string, v float64) bool {
	switch name {
	case FeatMaternalMortality:
		rec.MaternalMortality = dataset.F(v)
	case FeatAdolescentBirthRate:
		rec.AdolescentBirthRate = dataset.F(v)
	case FeatSeatsParliament:
		rec.SeatsParliament = dataset.F(v)
	case FeatFSecondaryEduc:
		rec.FSecondaryEduc = dataset.F(v)
	case FeatMSecondaryEduc:
		rec.MSecondaryEduc = dataset.F(v)
	case FeatFLabourForce:
		rec.FLabourForce = dataset.F(v)
	case FeatMLabourForce:
		rec.MLabourForce = dataset.F(v)
	default:
		return false
	}
	return true
}

// WithGaps returns a copy of rec with EduGap and LabourGap derived from the
// already-cleaned fields. Pure and deterministic; a gap is missing whenever
// either operand is missing.
func WithGaps(rec dataset.Record) dataset.Record {
	rec.EduGap = rec.MSecondaryEduc.Sub(rec.FSecondaryEduc)
	rec.LabourGap = rec.MLabourForce.Sub(rec.FLabourForce)
	return rec
}

// EngineerGaps applies WithGaps to every record, returning a new slice. The
// input is not mutated; pipeline stages return new values.
func EngineerGaps(records []dataset.Record) []dataset.Record {
	out := make([]dataset.Record, len(records))
	for i, rec := range records {
		out[i] = WithGaps(rec)
	}
	return out
}
