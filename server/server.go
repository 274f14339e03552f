// Package server exposes the scenario predictor over HTTP.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/giilab/giiscope/pkg/errors"
	"github.com/giilab/giiscope/pkg/log"
	"github.com/giilab/giiscope/scenario"
)

// Service defines the scenario operations the handlers depend on.
type Service interface {
	Countries() []string
	Predict(country string, deltas map[string]float64) (*scenario.Result, error)
}

// Handler wires scenario endpoints to the predictor.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a handler around the given service.
func New(service Service) *Handler {
	return &Handler{
		service: service,
		logger:  log.GetLoggerWithName("server"),
	}
}

// Router builds the full router with standard middleware.
func Router(service Service) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	New(service).Register(r)
	return r
}

// Register mounts the endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/v1/healthz", h.HandleHealthz)
	r.Get("/v1/countries", h.HandleCountries)
	r.Post("/v1/scenario", h.HandleScenario)
}

// HandleHealthz handles GET /v1/healthz requests.
func (h *Handler) HandleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleCountries handles GET /v1/countries requests.
func (h *Handler) HandleCountries(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, countriesResponse{Countries: h.service.Countries()})
}

// HandleScenario handles POST /v1/scenario requests.
func (h *Handler) HandleScenario(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req ScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.Country == "" {
		writeError(w, http.StatusBadRequest, "country is required")
		return
	}

	result, err := h.service.Predict(req.Country, req.Deltas)
	if err != nil {
		h.logger.Error("scenario request failed",
			log.OperationKey, "predict",
			"country", req.Country,
			log.ErrAttr(err))
		writeError(w, statusFor(err), err.Error())
		return
	}

	h.logger.Info("scenario request served",
		log.OperationKey, "predict",
		"country", req.Country,
		log.DurationMsKey, time.Since(start).Milliseconds())

	writeJSON(w, http.StatusOK, FromResult(result))
}

// statusFor maps domain errors to HTTP statuses. Bad client input is 400;
// everything else is a 500.
func statusFor(err error) int {
	var invalidErr *errors.InvalidInputError
	var valueErr *errors.ValueError
	switch {
	case errors.As(err, &invalidErr), errors.As(err, &valueErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
