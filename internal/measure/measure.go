// Package measure derives the short-window fields of a measurement context
// (volatility and trend) from period-level aggregates, the way the upstream
// estimator reports them.
package measure

import (
	"math"
	"time"

	"pulsecheck/internal/epistemic"
	"pulsecheck/internal/model"
)

const (
	// Window is how many trailing period aggregates feed volatility and trend.
	Window = 5
	// StableDelta is the largest |last - first| still considered flat.
	StableDelta = 0.1
)

// Summary is what an estimator knows about one construct for one user
type Summary struct {
	PosteriorMean    *float64   `json:"posteriorMean,omitempty" yaml:"posterior_mean,omitempty"`
	PosteriorSigma   *float64   `json:"posteriorSigma,omitempty" yaml:"posterior_sigma,omitempty"`
	ObservationCount int        `json:"observationCount" yaml:"observation_count"`
	LastObservedAt   *time.Time `json:"lastObservedAt,omitempty" yaml:"last_observed_at,omitempty"`
	// History holds period-level aggregates, oldest first.
	History []float64 `json:"history,omitempty" yaml:"history,omitempty"`
}

func tail(values []float64) []float64 {
	if len(values) > Window {
		return values[len(values)-Window:]
	}
	return values
}

// Volatility is the population standard deviation of the last Window values.
// Fewer than two values yield 0.
func Volatility(values []float64) float64 {
	w := tail(values)
	if len(w) < 2 {
		return 0
	}
	var sum float64
	for _, v := range w {
		sum += v
	}
	mean := sum / float64(len(w))
	var sq float64
	for _, v := range w {
		d := v - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(w)))
}

// TrendOf compares the first and last of the last Window values
func TrendOf(values []float64) model.Trend {
	w := tail(values)
	if len(w) < 2 {
		return model.TrendUnknown
	}
	delta := w[len(w)-1] - w[0]
	switch {
	case math.Abs(delta) < StableDelta:
		return model.TrendStable
	case delta > 0:
		return model.TrendUp
	default:
		return model.TrendDown
	}
}

// BuildContext assembles and classifies a context from a summary
func BuildContext(construct model.Construct, s Summary) model.MeasurementContext {
	c := model.MeasurementContext{
		Construct:        construct,
		PosteriorMean:    s.PosteriorMean,
		PosteriorSigma:   s.PosteriorSigma,
		Volatility:       Volatility(s.History),
		ObservationCount: s.ObservationCount,
		LastObservedAt:   s.LastObservedAt,
		Trend:            TrendOf(s.History),
	}
	return epistemic.ClassifyContext(c)
}
