package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"pulsecheck/internal/epistemic"
	"pulsecheck/internal/measure"
	"pulsecheck/internal/model"
)

// ClassifyRequest carries either precomputed volatility/trend or a raw
// period history to derive them from. History wins when present.
type ClassifyRequest struct {
	Construct        model.Construct `json:"construct"`
	PosteriorMean    *float64        `json:"posteriorMean,omitempty"`
	PosteriorSigma   *float64        `json:"posteriorSigma"`
	Volatility       float64         `json:"volatility"`
	Trend            model.Trend     `json:"trend"`
	ObservationCount int             `json:"observationCount"`
	LastObservedAt   *time.Time      `json:"lastObservedAt,omitempty"`
	History          []float64       `json:"history,omitempty"`
}

// Classify handles POST /v1/classify
func Classify(w http.ResponseWriter, r *http.Request) {
	var req ClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if len(req.History) > 0 {
		writeJSON(w, http.StatusOK, measure.BuildContext(req.Construct, measure.Summary{
			PosteriorMean:    req.PosteriorMean,
			PosteriorSigma:   req.PosteriorSigma,
			ObservationCount: req.ObservationCount,
			LastObservedAt:   req.LastObservedAt,
			History:          req.History,
		}))
		return
	}

	trend := req.Trend
	if trend == "" {
		trend = model.TrendUnknown
	}
	writeJSON(w, http.StatusOK, epistemic.ClassifyContext(model.MeasurementContext{
		Construct:        req.Construct,
		PosteriorMean:    req.PosteriorMean,
		PosteriorSigma:   req.PosteriorSigma,
		Volatility:       req.Volatility,
		ObservationCount: req.ObservationCount,
		LastObservedAt:   req.LastObservedAt,
		Trend:            trend,
	}))
}
