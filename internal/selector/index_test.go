package selector

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"pulsecheck/internal/model"
)

// A bucket must hold exactly what a linear scan filtered by construct finds,
// in the same order, or seeded picks would differ from the naive scan.
func TestIndex_MatchesLinearScan(t *testing.T) {
	bank := randomBank(rand.New(rand.NewSource(7)), 120)
	idx := NewIndex(bank)
	assert.Equal(t, len(bank), idx.Len())

	for _, c := range idx.Constructs() {
		var scan []model.Item
		for _, it := range bank {
			if it.Construct == c {
				scan = append(scan, it)
			}
		}
		assert.Equal(t, scan, idx.ForConstruct(c))
	}

	var pad []model.Item
	for _, it := range bank {
		if it.Intent == model.IntentExplore && it.Tone == model.ToneDiagnostic {
			pad = append(pad, it)
		}
	}
	assert.Equal(t, pad, idx.padAny(map[string]bool{}))
}

func TestIndex_ConstructsInFirstAppearanceOrder(t *testing.T) {
	bank := []model.Item{
		item("1", "workload", model.IntentExplore, model.ToneDiagnostic, model.SensitivityLow),
		item("2", "autonomy", model.IntentExplore, model.ToneDiagnostic, model.SensitivityLow),
		item("3", "workload", model.IntentConfirm, model.ToneDiagnostic, model.SensitivityLow),
		item("4", "safety", model.IntentExplore, model.ToneReflective, model.SensitivityLow),
	}
	idx := NewIndex(bank)
	assert.Equal(t, []model.Construct{"workload", "autonomy", "safety"}, idx.Constructs())
	assert.Empty(t, idx.padFor("safety", nil))
	assert.Len(t, idx.padFor("workload", map[string]bool{"1": true}), 0)
	assert.Len(t, idx.padAny(map[string]bool{"1": true}), 1)
}

func TestAuditMix(t *testing.T) {
	items := []model.Item{
		item("1", "a", model.IntentChallenge, model.ToneBehavioral, model.SensitivityLow),
		item("2", "a", model.IntentExplore, model.ToneDiagnostic, model.SensitivityLow),
		item("3", "a", model.IntentExplore, model.ToneDiagnostic, model.SensitivityLow),
		item("4", "a", model.IntentConfirm, model.ToneReflective, model.SensitivityLow),
		item("5", "a", model.IntentConfirm, model.ToneBehavioral, model.SensitivityLow),
	}
	a := AuditMix(items, 0.30, 0.20)
	assert.Equal(t, 5, a.Total)
	assert.Equal(t, 2, a.BehavioralCount)
	assert.Equal(t, 1, a.ChallengeCount)
	assert.InDelta(t, 0.4, a.BehavioralFraction, 1e-9)
	assert.InDelta(t, 0.2, a.ChallengeFraction, 1e-9)
	assert.True(t, a.BehavioralExceeded)
	assert.False(t, a.ChallengeExceeded)

	empty := AuditMix(nil, 0.30, 0.20)
	assert.Zero(t, empty.BehavioralFraction)
	assert.False(t, empty.Exceeded())
}
