package measure

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pulsecheck/internal/model"
)

func TestVolatility(t *testing.T) {
	assert.Zero(t, Volatility(nil))
	assert.Zero(t, Volatility([]float64{3.2}))
	assert.Zero(t, Volatility([]float64{2, 2, 2}))
	assert.InDelta(t, 1.0, Volatility([]float64{1, 3}), 1e-9)
	// only the last five count: {2,4,4,4,5,5,7,9} -> {4,5,5,7,9}
	assert.InDelta(t, 1.788854382, Volatility([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-6)
}

func TestTrendOf(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   model.Trend
	}{
		{"empty", nil, model.TrendUnknown},
		{"single", []float64{0.5}, model.TrendUnknown},
		{"flat", []float64{0.5, 0.9, 0.55}, model.TrendStable},
		{"up", []float64{0.2, 0.3, 0.5}, model.TrendUp},
		{"down", []float64{0.8, 0.3}, model.TrendDown},
		{"window", []float64{9, 1, 1, 1, 1, 1.05}, model.TrendStable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TrendOf(tt.values))
		})
	}
}

func TestBuildContext(t *testing.T) {
	c := BuildContext("workload", Summary{
		PosteriorSigma:   model.Float64(0.1),
		ObservationCount: 12,
		History:          []float64{3.0, 3.02, 3.01, 3.03},
	})
	assert.Equal(t, model.Construct("workload"), c.Construct)
	assert.Equal(t, model.TrendStable, c.Trend)
	assert.Less(t, c.Volatility, 0.15)
	assert.Equal(t, model.StateStable, c.EpistemicState)

	none := BuildContext("autonomy", Summary{})
	assert.Equal(t, model.StateIgnorant, none.EpistemicState)
	assert.Equal(t, model.TrendUnknown, none.Trend)
}
