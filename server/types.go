package server

import (
	"github.com/giilab/giiscope/dataset"
	"github.com/giilab/giiscope/features"
	"github.com/giilab/giiscope/scenario"
)

// ScenarioRequest is the POST /v1/scenario body. Deltas are additive
// adjustments to raw indicators, keyed by feature name.
type ScenarioRequest struct {
	Country string             `json:"country"`
	Deltas  map[string]float64 `json:"deltas,omitempty"`
}

// ScenarioResponse is the scenario prediction payload. ObservedGII is null
// when the source table has no value for the country.
type ScenarioResponse struct {
	Country      string             `json:"country"`
	ObservedGII  *float64           `json:"observed_gii"`
	BaselineGII  float64            `json:"baseline_gii"`
	PredictedGII float64            `json:"predicted_gii"`
	Adjusted     map[string]float64 `json:"adjusted_indicators"`
}

type countriesResponse struct {
	Countries []string `json:"countries"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// FromResult maps a scenario result to its response payload.
func FromResult(res *scenario.Result) ScenarioResponse {
	adjusted := make(map[string]float64, len(features.RawFeatures)+2)
	for _, name := range features.RawFeatures {
		if v, _ := features.RawValue(res.Adjusted, name); v.Valid {
			adjusted[name] = v.Value
		}
	}
	if res.Adjusted.EduGap.Valid {
		adjusted[features.FeatEduGap] = res.Adjusted.EduGap.Value
	}
	if res.Adjusted.LabourGap.Valid {
		adjusted[features.FeatLabourGap] = res.Adjusted.LabourGap.Value
	}

	return ScenarioResponse{
		Country:      res.Country,
		ObservedGII:  optional(res.ObservedGII),
		BaselineGII:  res.BaselineGII,
		PredictedGII: res.PredictedGII,
		Adjusted:     adjusted,
	}
}

func optional(f dataset.Float) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Value
	return &v
}
