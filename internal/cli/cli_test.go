package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulsecheck/internal/model"
)

const catalogFile = "../catalog/testdata/items.yaml"

func run(t *testing.T, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	return &out, cmd.Execute()
}

func TestValidate(t *testing.T) {
	out, err := run(t, "validate", catalogFile)
	require.NoError(t, err)

	var report ValidateReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.True(t, report.OK)
	assert.Equal(t, 10, report.Items)
	assert.Equal(t, 9, report.Active)
	assert.Equal(t, []model.Construct{"autonomy", "workload", "psych_safety"}, report.Constructs)
	assert.Equal(t, 4, report.PerConstruct["autonomy"])
	assert.Equal(t, 2, report.PerConstruct["psych_safety"])
	assert.Equal(t, 5, report.PadItems)
}

func TestValidate_MissingFile(t *testing.T) {
	_, err := run(t, "validate", "testdata/nope.yaml")
	assert.Error(t, err)
}

func TestSimulate(t *testing.T) {
	args := []string{
		"simulate", catalogFile,
		"--contexts", "testdata/scenario.yaml",
		"--count", "2",
		"--seed", "11",
		"--now", "2026-03-02T09:00:00Z",
	}
	out, err := run(t, args...)
	require.NoError(t, err)

	var got SimulateOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, int64(11), got.Seed)

	require.Len(t, got.Contexts, 3)
	assert.Equal(t, model.StateIgnorant, got.Contexts[0].EpistemicState)
	assert.Equal(t, model.StateExploratory, got.Contexts[1].EpistemicState)
	assert.Equal(t, model.StateStable, got.Contexts[2].EpistemicState)

	// Workload is recent but volatile, so it is not blocked and demands a
	// high-sensitivity item.
	assert.Empty(t, got.Result.Blocked)
	assert.Equal(t, []model.Construct{"autonomy", "workload"}, got.Result.Candidates)
	require.Len(t, got.Result.Selected, 2)
	assert.Equal(t, model.Construct("autonomy"), got.Result.Selected[0].Item.Construct)
	assert.Equal(t, model.IntentExplore, got.Result.Selected[0].Item.Intent)
	assert.Equal(t, "wl-explore-1", got.Result.Selected[1].Item.ItemID)
	assert.False(t, got.Result.Selected[1].Relaxed)

	again, err := run(t, args...)
	require.NoError(t, err)
	assert.JSONEq(t, out.String(), again.String())
}

func TestSimulate_NoContextsPads(t *testing.T) {
	out, err := run(t, "simulate", catalogFile, "-n", "3", "--seed", "5")
	require.NoError(t, err)

	var got SimulateOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got.Result.Selected, 3)
	for _, s := range got.Result.Selected {
		assert.Equal(t, model.PickPad, s.Source)
		assert.Equal(t, model.ToneDiagnostic, s.Item.Tone)
		assert.NotEqual(t, "ps-retired-1", s.Item.ItemID)
	}
}

func TestSimulate_BadNow(t *testing.T) {
	_, err := run(t, "simulate", catalogFile, "--now", "yesterday")
	assert.Error(t, err)
}
