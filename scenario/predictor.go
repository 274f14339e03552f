package scenario

import (
	"log/slog"

	"github.com/giilab/giiscope/dataset"
	"github.com/giilab/giiscope/features"
	"github.com/giilab/giiscope/pkg/errors"
	"github.com/giilab/giiscope/pkg/log"
)

// Result is one scenario prediction.
type Result struct {
	Country string

	// ObservedGII is the country's value in the source table, possibly
	// missing. Shown alongside the prediction, never substituted for it.
	ObservedGII dataset.Float

	// BaselineGII is the model's prediction with no deltas applied.
	BaselineGII float64

	// PredictedGII is the model's prediction for the adjusted indicators.
	PredictedGII float64

	// Adjusted is the record after deltas, with the gaps re-derived.
	Adjusted dataset.Record
}

// Predictor evaluates what-if scenarios for countries in a loaded table.
type Predictor struct {
	bundle *Bundle
	table  *dataset.Table
	logger *slog.Logger
}

// NewPredictor creates a predictor over the given table.
func NewPredictor(bundle *Bundle, table *dataset.Table) *Predictor {
	return &Predictor{
		bundle: bundle,
		table:  table,
		logger: log.GetLoggerWithName("scenario"),
	}
}

// Countries returns the country names available for scenarios.
func (p *Predictor) Countries() []string {
	return p.table.Countries()
}

// Predict looks up country, applies the deltas, and predicts its GII.
// Unknown countries return a ValueError.
func (p *Predictor) Predict(country string, deltas map[string]float64) (*Result, error) {
	rec, ok := p.table.Lookup(country)
	if !ok {
		return nil, errors.NewValueError("scenario.Predict", "unknown country: "+country)
	}
	return p.PredictRecord(rec, deltas)
}

// PredictRecord applies the deltas to rec and predicts its GII.
//
// Deltas are additive adjustments to the raw indicators, keyed by feature
// name ("f_secondary_educ" and friends). Only the seven raw indicators are
// adjustable; derived and log features are recomputed, never set directly.
// An unknown key, a delta on a missing indicator, or an adjusted value
// outside the indicator's domain is an InvalidInputError. A zero delta map
// reproduces the baseline prediction exactly.
func (p *Predictor) PredictRecord(rec dataset.Record, deltas map[string]float64) (*Result, error) {
	baseline, err := p.predictOne(rec)
	if err != nil {
		return nil, errors.Wrap(err, "baseline")
	}

	adjusted := rec
	for name, delta := range deltas {
		if _, known := features.RawDomains[name]; !known {
			return nil, errors.NewInvalidInputError(name, "not an adjustable indicator", delta)
		}
		cur, _ := features.RawValue(adjusted, name)
		if !cur.Valid {
			return nil, errors.NewInvalidInputError(name, "indicator missing for this country", delta)
		}
		features.SetRaw(&adjusted, name, cur.Value+delta)
	}

	for name, domain := range features.RawDomains {
		v, _ := features.RawValue(adjusted, name)
		if v.Valid && !domain.Contains(v.Value) {
			return nil, errors.NewInvalidInputError(name, "adjusted value out of range", v.Value)
		}
	}

	adjusted = features.WithGaps(adjusted)
	predicted, err := p.predictOne(adjusted)
	if err != nil {
		return nil, err
	}

	p.logger.Info("scenario evaluated",
		log.OperationKey, "predict",
		"country", rec.Country,
		"deltas", len(deltas),
		"baseline_gii", baseline,
		"predicted_gii", predicted)

	return &Result{
		Country:      rec.Country,
		ObservedGII:  rec.GIIValue,
		BaselineGII:  baseline,
		PredictedGII: predicted,
		Adjusted:     adjusted,
	}, nil
}

// predictOne runs one record through the shared feature path and the forest.
func (p *Predictor) predictOne(rec dataset.Record) (float64, error) {
	x, ok, err := features.Vector(rec, p.bundle.Transform)
	if err != nil {
		return 0, err
	}
	if !ok {
		name := firstMissingFeature(rec)
		return 0, errors.NewInvalidInputError(name, "indicator missing for this country", nil)
	}
	return p.bundle.Forest.PredictRow(x)
}

func firstMissingFeature(rec dataset.Record) string {
	rec = features.WithGaps(rec)
	for _, name := range features.RawFeatures {
		if v, _ := features.RawValue(rec, name); !v.Valid {
			return name
		}
	}
	if !rec.EduGap.Valid {
		return features.FeatEduGap
	}
	if !rec.LabourGap.Valid {
		return features.FeatLabourGap
	}
	return "unknown"
}
