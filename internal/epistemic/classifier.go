// Package epistemic classifies how much, and how reliably, a construct is
// known for a respondent.
package epistemic

import (
	"math"

	"pulsecheck/internal/model"
)

// Thresholds holds the cut points used by the classifier
type Thresholds struct {
	ExploreSigma     float64 // sigma above this is always exploratory
	ConfirmSigma     float64 // sigma at or below this may be confirmatory
	StableSigma      float64 // sigma at or below this may be stable
	VolatileAbove    float64 // volatility above this is exploratory
	StableVolatility float64 // volatility at or below this may be stable
}

// DefaultThresholds returns the production cut points.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ExploreSigma:     0.35,
		ConfirmSigma:     0.25,
		StableSigma:      0.15,
		VolatileAbove:    0.25,
		StableVolatility: 0.15,
	}
}

var defaults = DefaultThresholds()

// Classify maps one construct's statistical summary to an epistemic state
// using the default thresholds. It never panics; malformed input is treated
// as ignorance.
func Classify(sigma *float64, volatility float64, trend model.Trend, count int) model.EpistemicState {
	return defaults.Classify(sigma, volatility, trend, count)
}

// ClassifyContext classifies c and returns a copy with EpistemicState set.
func ClassifyContext(c model.MeasurementContext) model.MeasurementContext {
	c.EpistemicState = Classify(c.PosteriorSigma, c.Volatility, c.Trend, c.ObservationCount)
	return c
}

// Classify applies the ordered rules with t's cut points. First match wins.
func (t Thresholds) Classify(sigma *float64, volatility float64, trend model.Trend, count int) model.EpistemicState {
	if count <= 0 || sigma == nil {
		return model.StateIgnorant
	}
	s := *sigma
	if s < 0 || math.IsNaN(s) || math.IsInf(s, 0) || math.IsNaN(volatility) {
		return model.StateIgnorant
	}
	v := math.Max(volatility, 0)

	if s > t.ExploreSigma {
		return model.StateExploratory
	}
	if v > t.VolatileAbove {
		return model.StateExploratory
	}
	if s <= t.ConfirmSigma {
		if s <= t.StableSigma && v <= t.StableVolatility && trend == model.TrendStable {
			return model.StateStable
		}
		return model.StateConfirmatory
	}

	// ConfirmSigma < sigma <= ExploreSigma with low volatility: keep measuring
	// rather than confirm early.
	return model.StateExploratory
}
