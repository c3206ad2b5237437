// Package selector assembles a bounded, safety-constrained, non-redundant
// set of check-in items from per-construct measurement contexts.
//
// Selection runs in four phases:
//
//	A. prioritize constructs (recency block, tiers, truncate)
//	B. pick one item per candidate construct under hard rules
//	C. pad with explore/diagnostic items up to the target count
//	D. audit the tone/intent mix (advisory)
//
// Select is pure apart from the injected RandSource and Clock.
package selector

import (
	"pulsecheck/internal/epistemic"
	"pulsecheck/internal/model"
)

// Selector picks items for one session at a time. It holds no per-call
// state and is safe for concurrent use as long as each call gets its own
// RandSource.
type Selector struct {
	cfg Config
}

// New creates a selector; unset config fields take their defaults.
func New(cfg Config) *Selector {
	return &Selector{cfg: cfg.withDefaults()}
}

// Config returns the effective configuration
func (s *Selector) Config() Config {
	return s.cfg
}

// Select runs phases A through D. A nil rnd gets a freshly seeded source.
func (s *Selector) Select(req model.SelectionRequest, rnd RandSource) model.SelectionResult {
	if rnd == nil {
		rnd = NewSeededSource(NewSeed())
	}
	var res model.SelectionResult
	if req.TargetCount <= 0 {
		res.Audit = AuditMix(nil, s.cfg.BehavioralCeiling, s.cfg.ChallengeCeiling)
		return res
	}

	idx := NewIndex(req.ItemBank)
	contexts := normalize(req.Contexts)

	candidates, blocked := s.prioritize(contexts, req.RecentConstructs, req.TargetCount)
	res.Blocked = blocked

	picked := make(map[string]bool)
	for _, c := range candidates {
		res.Candidates = append(res.Candidates, c.Construct)
		item, relaxed, ok := s.pick(c, idx, picked, rnd)
		if !ok {
			continue
		}
		picked[item.ItemID] = true
		res.Selected = append(res.Selected, model.SelectedItem{
			Item:    item,
			Source:  model.PickFresh,
			Relaxed: relaxed,
		})
	}

	res.Selected, res.PadRounds = s.pad(res.Selected, req.TargetCount, contexts, idx, picked, rnd)

	if len(res.Selected) > req.TargetCount {
		res.Selected = res.Selected[:req.TargetCount]
	}
	res.Audit = AuditMix(res.Items(), s.cfg.BehavioralCeiling, s.cfg.ChallengeCeiling)
	return res
}

// normalize keeps the first context per construct and classifies any
// context that arrives without a usable state.
func normalize(in []model.MeasurementContext) []model.MeasurementContext {
	seen := make(map[model.Construct]bool, len(in))
	out := make([]model.MeasurementContext, 0, len(in))
	for _, c := range in {
		if seen[c.Construct] {
			continue
		}
		seen[c.Construct] = true
		if !c.EpistemicState.Valid() {
			c = epistemic.ClassifyContext(c)
		}
		out = append(out, c)
	}
	return out
}

// prioritize is phase A
func (s *Selector) prioritize(contexts []model.MeasurementContext, recent []model.Construct, target int) ([]model.MeasurementContext, []model.Construct) {
	recentSet := make(map[model.Construct]bool, len(recent))
	for _, r := range recent {
		recentSet[r] = true
	}

	var blocked []model.Construct
	open := make([]model.MeasurementContext, 0, len(contexts))
	for _, c := range contexts {
		if recentSet[c.Construct] && !(c.Volatility > s.cfg.VolatilitySpike) {
			blocked = append(blocked, c.Construct)
			continue
		}
		open = append(open, c)
	}

	ordered := make([]model.MeasurementContext, 0, len(open))
	for _, tier := range []model.EpistemicState{model.StateIgnorant, model.StateExploratory, model.StateConfirmatory} {
		for _, c := range open {
			if c.EpistemicState == tier {
				ordered = append(ordered, c)
			}
		}
	}

	if len(ordered) > target {
		ordered = ordered[:target]
	}
	return ordered, blocked
}

// RequiredSensitivity returns the minimum temporal sensitivity an item for c
// must carry.
func (s *Selector) RequiredSensitivity(c model.MeasurementContext) model.TemporalSensitivity {
	if c.Volatility > s.cfg.VolatilitySpike {
		return model.SensitivityHigh
	}
	if c.LastObservedAt == nil {
		return model.SensitivityLow
	}
	age := s.cfg.Clock().Sub(*c.LastObservedAt)
	switch {
	case age < s.cfg.HighRecency:
		return model.SensitivityHigh
	case age < s.cfg.MediumRecency:
		return model.SensitivityMedium
	}
	return model.SensitivityLow
}

// Eligible returns c's items that pass every hard rule. With
// checkSensitivity false the temporal-sensitivity rule is dropped.
func (s *Selector) Eligible(c model.MeasurementContext, items []model.Item, checkSensitivity bool) []model.Item {
	return s.eligible(c, items, nil, checkSensitivity)
}

func (s *Selector) eligible(c model.MeasurementContext, items []model.Item, picked map[string]bool, checkSensitivity bool) []model.Item {
	required := s.RequiredSensitivity(c).Score()
	sigma := c.SigmaOr(s.cfg.MissingSigma)

	var out []model.Item
	for _, it := range items {
		if it.Construct != c.Construct || picked[it.ItemID] {
			continue
		}
		if it.Intent == model.IntentConfirm && c.EpistemicState == model.StateIgnorant {
			continue
		}
		// Stable constructs never reach phase B through Select, but direct
		// callers of Eligible still get the rule.
		if it.Intent == model.IntentExplore && c.EpistemicState == model.StateStable {
			continue
		}
		if it.Intent == model.IntentChallenge && c.ObservationCount < s.cfg.ChallengeMinObs {
			continue
		}
		if it.Tone == model.ToneBehavioral && sigma > s.cfg.BehavioralSigmaCeiling {
			continue
		}
		if checkSensitivity && it.TemporalSensitivity.Score() < required {
			continue
		}
		out = append(out, it)
	}
	return out
}

// pick is phase B for one construct
func (s *Selector) pick(c model.MeasurementContext, idx *Index, picked map[string]bool, rnd RandSource) (model.Item, bool, bool) {
	pool := idx.ForConstruct(c.Construct)
	relaxed := false
	eligible := s.eligible(c, pool, picked, true)
	if len(eligible) == 0 {
		relaxed = true
		eligible = s.eligible(c, pool, picked, false)
	}
	if len(eligible) == 0 {
		return model.Item{}, false, false
	}
	return eligible[rnd.Intn(len(eligible))], relaxed, true
}

// pad is phase C. It returns the extended selection and the number of
// iterations spent.
func (s *Selector) pad(selected []model.SelectedItem, target int, contexts []model.MeasurementContext, idx *Index, picked map[string]bool, rnd RandSource) ([]model.SelectedItem, int) {
	var preferred []model.Construct
	for _, c := range contexts {
		if c.EpistemicState == model.StateIgnorant || c.EpistemicState == model.StateExploratory {
			preferred = append(preferred, c.Construct)
		}
	}

	rounds := 0
	for rounds < s.cfg.MaxPadIterations && len(selected) < target {
		rounds++

		var construct model.Construct
		switch {
		case len(preferred) > 0:
			construct = preferred[rnd.Intn(len(preferred))]
		case len(idx.Constructs()) > 0:
			all := idx.Constructs()
			construct = all[rnd.Intn(len(all))]
		default:
			return selected, rounds
		}

		candidates := idx.padFor(construct, picked)
		if len(candidates) == 0 {
			candidates = idx.padAny(picked)
		}
		if len(candidates) == 0 {
			// The catalog has no pad items left; later rounds cannot progress.
			return selected, rounds
		}

		item := candidates[rnd.Intn(len(candidates))]
		picked[item.ItemID] = true
		selected = append(selected, model.SelectedItem{Item: item, Source: model.PickPad})
	}
	return selected, rounds
}
