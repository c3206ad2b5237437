package model

import "time"

// Construct is a named measured dimension (autonomy, workload, ...)
type Construct string

// Trend is the direction of recent change over a short history window
type Trend string

const (
	TrendUp      Trend = "up"
	TrendDown    Trend = "down"
	TrendStable  Trend = "stable"
	TrendUnknown Trend = "unknown"
)

// EpistemicState describes how much, and how reliably, a construct is known for a user
type EpistemicState string

const (
	StateIgnorant     EpistemicState = "ignorant"
	StateExploratory  EpistemicState = "exploratory"
	StateConfirmatory EpistemicState = "confirmatory"
	StateStable       EpistemicState = "stable"
)

// Valid reports whether s is one of the four known states
func (s EpistemicState) Valid() bool {
	switch s {
	case StateIgnorant, StateExploratory, StateConfirmatory, StateStable:
		return true
	}
	return false
}

// MeasurementContext is the per (user, construct) statistical summary produced
// by the upstream estimator, plus the classifier's verdict.
type MeasurementContext struct {
	Construct        Construct      `json:"construct" bson:"construct"`
	PosteriorMean    *float64       `json:"posteriorMean,omitempty" bson:"posteriorMean,omitempty"`
	PosteriorSigma   *float64       `json:"posteriorSigma,omitempty" bson:"posteriorSigma,omitempty"`
	Volatility       float64        `json:"volatility" bson:"volatility"`             // population stddev of last <=5 period aggregates
	ObservationCount int            `json:"observationCount" bson:"observationCount"` // >= 0
	LastObservedAt   *time.Time     `json:"lastObservedAt,omitempty" bson:"lastObservedAt,omitempty"`
	Trend            Trend          `json:"trend" bson:"trend"`
	EpistemicState   EpistemicState `json:"epistemicState" bson:"epistemicState"`
}

// SigmaOr returns the posterior sigma, or def when it is unknown
func (c MeasurementContext) SigmaOr(def float64) float64 {
	if c.PosteriorSigma == nil {
		return def
	}
	return *c.PosteriorSigma
}

// Float64 returns a pointer to v. Handy for building contexts.
func Float64(v float64) *float64 {
	return &v
}
