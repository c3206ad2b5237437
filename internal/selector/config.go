package selector

import "time"

// Config holds the selector's tunables. Zero values are replaced by
// DefaultConfig's values in New.
type Config struct {
	// MaxPadIterations bounds the padding loop; it is the only guard against
	// a catalog that cannot satisfy the request.
	MaxPadIterations int

	// VolatilitySpike overrides recency blocking and demands
	// high-sensitivity items.
	VolatilitySpike float64

	HighRecency   time.Duration // observed more recently than this -> high sensitivity
	MediumRecency time.Duration // observed more recently than this -> medium sensitivity

	BehavioralSigmaCeiling float64 // behavioral tone needs sigma at or below this
	MissingSigma           float64 // sigma assumed when unknown
	ChallengeMinObs        int     // challenge intent needs at least this many observations

	BehavioralCeiling float64 // advisory: max fraction of behavioral items
	ChallengeCeiling  float64 // advisory: max fraction of challenge items

	// Clock supplies "now" for recency calculations.
	Clock func() time.Time
}

// DefaultConfig returns the production configuration
func DefaultConfig() Config {
	return Config{
		MaxPadIterations:       100,
		VolatilitySpike:        0.25,
		HighRecency:            7 * 24 * time.Hour,
		MediumRecency:          21 * 24 * time.Hour,
		BehavioralSigmaCeiling: 0.4,
		MissingSigma:           1.0,
		ChallengeMinObs:        3,
		BehavioralCeiling:      0.30,
		ChallengeCeiling:       0.20,
		Clock:                  time.Now,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxPadIterations <= 0 {
		c.MaxPadIterations = d.MaxPadIterations
	}
	if c.VolatilitySpike <= 0 {
		c.VolatilitySpike = d.VolatilitySpike
	}
	if c.HighRecency <= 0 {
		c.HighRecency = d.HighRecency
	}
	if c.MediumRecency <= 0 {
		c.MediumRecency = d.MediumRecency
	}
	if c.BehavioralSigmaCeiling <= 0 {
		c.BehavioralSigmaCeiling = d.BehavioralSigmaCeiling
	}
	if c.MissingSigma <= 0 {
		c.MissingSigma = d.MissingSigma
	}
	if c.ChallengeMinObs <= 0 {
		c.ChallengeMinObs = d.ChallengeMinObs
	}
	if c.BehavioralCeiling <= 0 {
		c.BehavioralCeiling = d.BehavioralCeiling
	}
	if c.ChallengeCeiling <= 0 {
		c.ChallengeCeiling = d.ChallengeCeiling
	}
	if c.Clock == nil {
		c.Clock = d.Clock
	}
	return c
}
