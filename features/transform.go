package features

import (
	"math"

	"github.com/giilab/giiscope/core/model"
	"github.com/giilab/giiscope/dataset"
	"github.com/giilab/giiscope/pkg/errors"
)

// Percentile levels for the clip bounds.
const (
	clipLow  = 0.01
	clipHigh = 0.99
)

// ClipBounds is a closed clipping interval derived from distribution
// percentiles.
type ClipBounds struct {
	Low, High float64
}

// Clip bounds v into the interval. Idempotent: clipping an already-clipped
// value yields the same value.
func (b ClipBounds) Clip(v float64) float64 {
	if v < b.Low {
		return b.Low
	}
	if v > b.High {
		return b.High
	}
	return v
}

// ClipLogTransformer computes and applies the modeling transform for the two
// heavy-tailed health indicators: clip to the 1st-99th percentile range of
// the training distribution, then ln(1+x).
//
// The percentile bounds are batch statistics over all non-missing training
// values; Fit must see the full collection. Once fitted, the stored bounds
// apply to any new input, most importantly single scenario points, which
// have no meaningful percentiles of their own. The transform is monotonic:
// a <= b implies Transform(a) <= Transform(b).
type ClipLogTransformer struct {
	model.BaseEstimator

	MaternalBounds   ClipBounds
	AdolescentBounds ClipBounds
}

// NewClipLogTransformer creates an unfitted transformer.
func NewClipLogTransformer() *ClipLogTransformer {
	return &ClipLogTransformer{}
}

// Fit computes the 1st and 99th percentile of maternal mortality and of the
// adolescent birth rate independently across all non-missing values, using
// linear interpolation between order statistics.
func (t *ClipLogTransformer) Fit(records []dataset.Record) error {
	var maternal, adolescent []float64
	for _, rec := range records {
		if rec.MaternalMortality.Valid {
			maternal = append(maternal, rec.MaternalMortality.Value)
		}
		if rec.AdolescentBirthRate.Valid {
			adolescent = append(adolescent, rec.AdolescentBirthRate.Value)
		}
	}
	if len(maternal) == 0 || len(adolescent) == 0 {
		return errors.Wrap(errors.ErrEmptyData, "ClipLogTransformer.Fit")
	}

	t.MaternalBounds = ClipBounds{
		Low:  dataset.Quantile(maternal, clipLow),
		High: dataset.Quantile(maternal, clipHigh),
	}
	t.AdolescentBounds = ClipBounds{
		Low:  dataset.Quantile(adolescent, clipLow),
		High: dataset.Quantile(adolescent, clipHigh),
	}

	t.SetFitted()
	return nil
}

// LogMaternal applies the stored clip bounds and ln(1+x) to a raw maternal
// mortality value.
func (t *ClipLogTransformer) LogMaternal(v float64) (float64, error) {
	if !t.IsFitted() {
		return 0, errors.NewNotFittedError("ClipLogTransformer", "LogMaternal")
	}
	return math.Log1p(t.MaternalBounds.Clip(v)), nil
}

// LogAdolescent applies the stored clip bounds and ln(1+x) to a raw
// adolescent birth rate value.
func (t *ClipLogTransformer) LogAdolescent(v float64) (float64, error) {
	if !t.IsFitted() {
		return 0, errors.NewNotFittedError("ClipLogTransformer", "LogAdolescent")
	}
	return math.Log1p(t.AdolescentBounds.Clip(v)), nil
}
