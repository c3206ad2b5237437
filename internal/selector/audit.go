package selector

import "pulsecheck/internal/model"

// AuditMix computes the behavioral-tone and challenge-intent fractions of
// items against the given ceilings. It reports; it never changes a selection.
func AuditMix(items []model.Item, behavioralCeiling, challengeCeiling float64) model.MixAudit {
	a := model.MixAudit{
		Total:             len(items),
		BehavioralCeiling: behavioralCeiling,
		ChallengeCeiling:  challengeCeiling,
	}
	if len(items) == 0 {
		return a
	}
	for _, it := range items {
		if it.Tone == model.ToneBehavioral {
			a.BehavioralCount++
		}
		if it.Intent == model.IntentChallenge {
			a.ChallengeCount++
		}
	}
	n := float64(len(items))
	a.BehavioralFraction = float64(a.BehavioralCount) / n
	a.ChallengeFraction = float64(a.ChallengeCount) / n
	a.BehavioralExceeded = a.BehavioralFraction > behavioralCeiling
	a.ChallengeExceeded = a.ChallengeFraction > challengeCeiling
	return a
}
