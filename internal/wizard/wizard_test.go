package wizard

import (
	"testing"

	"github.com/spboyer/coverank/internal/models"
	"github.com/spboyer/coverank/internal/strategy"
	"github.com/spboyer/coverank/internal/validation"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestGenerateBatchYAML(t *testing.T) {
	draft := &BatchDraft{
		Name:        "support-pages",
		Description: "candidate pages for the refund query",
		Mode:        strategy.ModeBalance,
		Parallel:    true,
	}

	out, err := GenerateBatchYAML(draft)
	require.NoError(t, err)
	require.Contains(t, out, "name: support-pages")
	require.Contains(t, out, "candidate pages for the refund query")
	require.Contains(t, out, "mode: balance")
	require.Contains(t, out, "parallel: true")
	require.NotContains(t, out, "weights:", "named modes carry no weight overrides")

	// The starter spec must itself pass schema validation.
	require.Empty(t, validation.ValidateBatchBytes([]byte(out)))
}

func TestGenerateBatchYAML_CustomWeights(t *testing.T) {
	draft := &BatchDraft{
		Name:    "custom-run",
		Mode:    strategy.ModeCustom,
		Weights: strategy.Weights{Mandatory: 0.8, Preferred: 0.3, Tasks: 0.1},
	}

	out, err := GenerateBatchYAML(draft)
	require.NoError(t, err)
	require.Contains(t, out, "mode: custom")
	require.Contains(t, out, "mandatory: 0.8")
	require.Contains(t, out, "preferred: 0.3")
	require.Contains(t, out, "tasks: 0.1")
	require.Empty(t, validation.ValidateBatchBytes([]byte(out)))
}

func TestGenerateBatchYAML_NoDescription(t *testing.T) {
	out, err := GenerateBatchYAML(&BatchDraft{Name: "bare", Mode: strategy.ModeStrictFilter})
	require.NoError(t, err)
	require.NotContains(t, out, "description:")
}

// The starter spec is more than schema-valid: the loader must accept it and
// produce resolvable candidates.
func TestGenerateBatchYAML_Loadable(t *testing.T) {
	out, err := GenerateBatchYAML(&BatchDraft{Name: "starter", Mode: strategy.ModeStrictFilter})
	require.NoError(t, err)

	var spec models.BatchSpec
	require.NoError(t, yaml.Unmarshal([]byte(out), &spec))
	require.Equal(t, "starter", spec.Name)
	require.Len(t, spec.Candidates, 2)

	for _, cand := range spec.Candidates {
		_, _, _, err := cand.Mandatory.Resolve()
		require.NoError(t, err, "candidate %s", cand.ID)
	}
}

func TestValidateWeight(t *testing.T) {
	require.NoError(t, validateWeight("0.5"))
	require.NoError(t, validateWeight(" 1.0 "))
	require.NoError(t, validateWeight("0"))
	require.Error(t, validateWeight("-0.1"))
	require.Error(t, validateWeight("heavy"))
	require.Error(t, validateWeight(""))
}
