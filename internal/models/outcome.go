package models

import (
	"time"

	"github.com/spboyer/coverank/internal/scoring"
	"github.com/spboyer/coverank/internal/statistics"
	"github.com/spboyer/coverank/internal/strategy"
)

// RankOutcome is the complete result of one ranking run.
type RankOutcome struct {
	BatchName string    `json:"batch"`
	Timestamp time.Time `json:"timestamp"`
	Mode      string    `json:"mode"`
	Epsilon   float64   `json:"epsilon"`

	// Ranked is the final total order, best first (Rank == 1).
	Ranked []CandidateResult `json:"candidates"`
	// Failures holds candidates that could not be scored. A failure never
	// aborts the rest of the batch.
	Failures []CandidateFailure `json:"failures,omitempty"`

	Digest OutcomeDigest `json:"summary"`
}

// OutcomeDigest aggregates batch-level numbers for display.
type OutcomeDigest struct {
	Candidates int `json:"candidates"`
	Failed     int `json:"failed"`
	// Refined counts candidates whose position went through Phase-2
	// tie-breaking.
	Refined int                     `json:"refined"`
	Scores  statistics.Distribution `json:"scores"`
}

// CandidateResult is the derived scoring output for one candidate.
type CandidateResult struct {
	ID   string `json:"id"`
	Rank int    `json:"rank"`

	Mandatory BlockResult `json:"mandatory"`
	Preferred BlockResult `json:"preferred"`
	Tasks     BlockResult `json:"tasks"`

	// UsedWeights is the resolved triple after empty-block redistribution.
	UsedWeights strategy.Weights `json:"used_weights"`

	FinalColorScore   float64 `json:"final_color_score"`
	FinalPercentScore float64 `json:"final_percent_score"`

	// Refined is true when the candidate's position was decided by
	// Phase-2 refinement rather than the primary score alone.
	Refined bool `json:"refined,omitempty"`
	// ZeroCoverage is true when no block holds a High or Partial match,
	// i.e. the primary score carries no ordering signal.
	ZeroCoverage bool `json:"zero_coverage,omitempty"`

	Metadata map[string]any `json:"metadata,omitempty"`
}

// Block returns the result for the given block kind.
func (c *CandidateResult) Block(kind scoring.BlockKind) BlockResult {
	switch kind {
	case scoring.BlockMandatory:
		return c.Mandatory
	case scoring.BlockPreferred:
		return c.Preferred
	default:
		return c.Tasks
	}
}

// AverageCoverage is the mean structural coverage over non-empty blocks, a
// diagnostic that plays no part in the ranking itself.
func (c *CandidateResult) AverageCoverage() float64 {
	total := 0.0
	blocks := 0
	for _, b := range []BlockResult{c.Mandatory, c.Preferred, c.Tasks} {
		if b.Counts.Total > 0 {
			total += b.Counts.Coverage()
			blocks++
		}
	}
	if blocks == 0 {
		return 0
	}
	return total / float64(blocks)
}

// BlockResult is the scored state of one block.
type BlockResult struct {
	Counts scoring.Counts `json:"counts"`
	Means  scoring.Means  `json:"means"`
	// ColorScore is the Phase-1 coverage score in [0,1]; zero for an
	// empty block (which also carries zero weight).
	ColorScore float64 `json:"color_score"`
	// PercentScore is the Phase-2 refinement in [0,1].
	PercentScore float64 `json:"percent_score"`
	// Details is the per-criterion breakdown, present when the block was
	// supplied as raw criteria rather than pre-aggregated counts.
	Details []CriterionDetail `json:"details,omitempty"`
}

// CriterionDetail records how a single criterion was classified.
type CriterionDetail struct {
	Name     string           `json:"name"`
	Percent  float64          `json:"percent"`
	Category scoring.Category `json:"category"`
	Evidence string           `json:"evidence,omitempty"`
	Comment  string           `json:"comment,omitempty"`
}

// CandidateFailure records a candidate the engine refused to score.
type CandidateFailure struct {
	ID    string `json:"id"`
	Error string `json:"error"`
	// Unscoreable marks candidates with no criteria in any block, which
	// is "no data" rather than "worst score".
	Unscoreable bool `json:"unscoreable,omitempty"`
}
