package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giilab/giiscope/dataset"
	"github.com/giilab/giiscope/features"
	"github.com/giilab/giiscope/pkg/errors"
	"github.com/giilab/giiscope/scenario"
)

// fakeService scripts scenario responses without a trained model.
type fakeService struct {
	countries []string
	result    *scenario.Result
	err       error

	lastCountry string
	lastDeltas  map[string]float64
}

func (f *fakeService) Countries() []string { return f.countries }

func (f *fakeService) Predict(country string, deltas map[string]float64) (*scenario.Result, error) {
	f.lastCountry = country
	f.lastDeltas = deltas
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func postScenario(t *testing.T, svc Service, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/scenario", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	Router(svc).ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/healthz", nil)
	rec := httptest.NewRecorder()
	Router(&fakeService{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCountries(t *testing.T) {
	svc := &fakeService{countries: []string{"Norway", "Yemen"}}
	req := httptest.NewRequest(http.MethodGet, "/v1/countries", nil)
	rec := httptest.NewRecorder()
	Router(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp countriesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Norway", "Yemen"}, resp.Countries)
}

func TestScenarioSuccess(t *testing.T) {
	svc := &fakeService{
		result: &scenario.Result{
			Country:      "Norway",
			ObservedGII:  dataset.F(0.016),
			BaselineGII:  0.02,
			PredictedGII: 0.018,
			Adjusted: dataset.Record{
				Country:         "Norway",
				SeatsParliament: dataset.F(48),
				FSecondaryEduc:  dataset.F(95),
				MSecondaryEduc:  dataset.F(94),
				EduGap:          dataset.F(-1),
			},
		},
	}

	rec := postScenario(t, svc, ScenarioRequest{
		Country: "Norway",
		Deltas:  map[string]float64{features.FeatSeatsParliament: 3},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "Norway", svc.lastCountry)
	assert.Equal(t, 3.0, svc.lastDeltas[features.FeatSeatsParliament])

	var resp ScenarioResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0.018, resp.PredictedGII)
	require.NotNil(t, resp.ObservedGII)
	assert.Equal(t, 0.016, *resp.ObservedGII)
	assert.Equal(t, 48.0, resp.Adjusted[features.FeatSeatsParliament])
	assert.Equal(t, -1.0, resp.Adjusted[features.FeatEduGap])
	// Missing indicators stay out of the payload instead of showing as zero.
	_, present := resp.Adjusted[features.FeatMaternalMortality]
	assert.False(t, present)
}

func TestScenarioObservedGIINull(t *testing.T) {
	svc := &fakeService{
		result: &scenario.Result{Country: "Somalia", PredictedGII: 0.6},
	}

	rec := postScenario(t, svc, ScenarioRequest{Country: "Somalia"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"observed_gii":null`)
}

func TestScenarioBadInputIs400(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"invalid delta", errors.NewInvalidInputError("edu_gap", "not an adjustable indicator", -5.0)},
		{"unknown country", errors.NewValueError("scenario.Predict", "unknown country: Atlantis")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postScenario(t, &fakeService{err: tc.err}, ScenarioRequest{Country: "X"})
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestScenarioInternalErrorIs500(t *testing.T) {
	rec := postScenario(t, &fakeService{err: errors.New("model exploded")}, ScenarioRequest{Country: "X"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestScenarioMalformedBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/scenario", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	Router(&fakeService{}).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScenarioMissingCountry(t *testing.T) {
	rec := postScenario(t, &fakeService{}, ScenarioRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
