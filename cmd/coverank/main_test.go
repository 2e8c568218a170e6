package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spboyer/coverank/internal/models"
	"github.com/stretchr/testify/require"
)

const validSpec = `
name: cli-demo
strategy:
  mode: strict-filter
candidates:
  - id: alpha
    mandatory:
      counts:
        high: 8
        partial: 1
        low: 1
        total: 10
      means:
        high: 90
        partial: 50
        low: 10
    preferred:
      counts:
        high: 1
        total: 1
    tasks:
      counts:
        high: 1
        total: 1
  - id: bravo
    mandatory:
      counts:
        high: 6
        partial: 3
        low: 1
        total: 10
      means:
        high: 85
        partial: 45
        low: 5
    preferred:
      counts:
        high: 1
        total: 1
    tasks:
      counts:
        high: 1
        total: 1
`

const invalidSpec = `
strategy:
  mode: aggressive
candidates: []
`

func writeTempSpec(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// runCLI executes the root command with the given args and returns combined
// output. Commands are rebuilt per call so flag defaults reset between tests.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRankCommand_Table(t *testing.T) {
	path := writeTempSpec(t, validSpec)

	out, err := runCLI(t, "rank", path, "--seed", "1")
	require.NoError(t, err)
	require.Contains(t, out, "Batch: cli-demo")
	require.Contains(t, out, "RANK")
	require.Contains(t, out, "alpha")
	require.Contains(t, out, "bravo")
	require.Contains(t, out, "0.9651")
	require.Contains(t, out, "0.8751")
	require.Contains(t, out, "2 candidate(s), 0 refined by tie-break")
}

func TestRankCommand_JSON(t *testing.T) {
	path := writeTempSpec(t, validSpec)

	out, err := runCLI(t, "rank", path, "--format", "json", "--seed", "1")
	require.NoError(t, err)

	var outcome models.RankOutcome
	require.NoError(t, json.Unmarshal([]byte(out), &outcome))
	require.Equal(t, "cli-demo", outcome.BatchName)
	require.Len(t, outcome.Ranked, 2)
	require.Equal(t, "alpha", outcome.Ranked[0].ID)
	require.Equal(t, "bravo", outcome.Ranked[1].ID)
	require.InDelta(t, 0.9651, outcome.Ranked[0].FinalColorScore, 1e-9)
}

func TestRankCommand_Markdown(t *testing.T) {
	path := writeTempSpec(t, validSpec)

	out, err := runCLI(t, "rank", path, "--format", "markdown", "--seed", "1")
	require.NoError(t, err)
	require.Contains(t, out, "## 📊 Coverank Results")
	require.Contains(t, out, "| 1 | alpha |")
}

func TestRankCommand_Interpret(t *testing.T) {
	path := writeTempSpec(t, validSpec)

	out, err := runCLI(t, "rank", path, "--interpret", "--seed", "1")
	require.NoError(t, err)
	require.Contains(t, out, "=== Interpretation ===")
	require.Contains(t, out, "Top candidate: alpha")
}

func TestRankCommand_OutputFile(t *testing.T) {
	path := writeTempSpec(t, validSpec)
	outPath := filepath.Join(t.TempDir(), "outcome.json")

	out, err := runCLI(t, "rank", path, "-o", outPath, "--seed", "1")
	require.NoError(t, err)
	require.Contains(t, out, "Full outcome written to "+outPath)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var outcome models.RankOutcome
	require.NoError(t, json.Unmarshal(data, &outcome))
	require.Len(t, outcome.Ranked, 2)
}

func TestRankCommand_ModeOverride(t *testing.T) {
	path := writeTempSpec(t, validSpec)

	out, err := runCLI(t, "rank", path, "--mode", "balance", "--format", "json", "--seed", "1")
	require.NoError(t, err)

	var outcome models.RankOutcome
	require.NoError(t, json.Unmarshal([]byte(out), &outcome))
	require.Equal(t, "balance", outcome.Mode)
}

func TestRankCommand_WeightsFlag(t *testing.T) {
	path := writeTempSpec(t, validSpec)

	out, err := runCLI(t, "rank", path, "--weights", "0.5,0.25,0.25", "--format", "json", "--seed", "1")
	require.NoError(t, err)

	var outcome models.RankOutcome
	require.NoError(t, json.Unmarshal([]byte(out), &outcome))
	require.Equal(t, "custom", outcome.Mode)
	require.InDelta(t, 0.5, outcome.Ranked[0].UsedWeights.Mandatory, 1e-9)
}

func TestRankCommand_BadWeightsFlag(t *testing.T) {
	path := writeTempSpec(t, validSpec)

	for _, weights := range []string{"1.0,0.1", "a,b,c"} {
		_, err := runCLI(t, "rank", path, "--weights", weights)
		require.Error(t, err, "weights=%q", weights)
	}
}

func TestRankCommand_InvalidSpec(t *testing.T) {
	path := writeTempSpec(t, invalidSpec)

	_, err := runCLI(t, "rank", path)
	require.Error(t, err)
	var checkErr *CheckFailureError
	require.ErrorAs(t, err, &checkErr)
	require.Contains(t, checkErr.Message, "schema violation")
}

func TestRankCommand_MissingFile(t *testing.T) {
	_, err := runCLI(t, "rank", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	var checkErr *CheckFailureError
	require.False(t, errors.As(err, &checkErr), "a missing file is a runtime error, not a failed check")
}

func TestCheckCommand_Valid(t *testing.T) {
	path := writeTempSpec(t, validSpec)

	out, err := runCLI(t, "check", path)
	require.NoError(t, err)
	require.Contains(t, out, "✓")
	require.Contains(t, out, "is a valid batch spec")
}

func TestCheckCommand_Invalid(t *testing.T) {
	path := writeTempSpec(t, invalidSpec)

	out, err := runCLI(t, "check", path)
	require.Error(t, err)
	var checkErr *CheckFailureError
	require.ErrorAs(t, err, &checkErr)
	require.Contains(t, out, "✗")
	require.Contains(t, out, "schema violation")
}

func TestCheckCommand_JSON(t *testing.T) {
	path := writeTempSpec(t, invalidSpec)

	out, err := runCLI(t, "check", path, "--format", "json")
	require.Error(t, err)

	var report checkJSONReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.False(t, report.Valid)
	require.NotEmpty(t, report.Errors)
	require.Equal(t, path, report.Path)
}

func TestModesCommand(t *testing.T) {
	out, err := runCLI(t, "modes")
	require.NoError(t, err)
	require.Contains(t, out, "MODE")
	require.Contains(t, out, "strict-filter")
	require.Contains(t, out, "flexible-profile")
	require.Contains(t, out, "balance")
	require.Contains(t, out, "custom")
	require.Contains(t, out, "1.00")
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "existing.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: keep\n"), 0o644))

	_, err := runCLI(t, "init", "-o", path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "already exists")

	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	require.Equal(t, "name: keep\n", string(data))
}
