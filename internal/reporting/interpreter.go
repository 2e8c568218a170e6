package reporting

import (
	"fmt"
	"strings"

	"github.com/spboyer/coverank/internal/models"
)

// InterpretScore returns a plain-language label for a coverage score (0–1).
func InterpretScore(score float64) string {
	pct := score * 100
	switch {
	case pct > 90:
		return "Excellent coverage (>90%)"
	case pct >= 70:
		return "Good coverage (70-90%)"
	case pct >= 50:
		return "Partial coverage (50-70%)"
	default:
		return "Weak coverage (<50%)"
	}
}

// InterpretMargin explains the gap between the top two candidates.
func InterpretMargin(leader, runnerUp float64, refined bool) string {
	margin := leader - runnerUp
	switch {
	case refined:
		return "The top positions were decided by percentage refinement — the primary coverage scores were tied."
	case margin >= 0.2:
		return fmt.Sprintf("The leader is well ahead (margin %.2f).", margin)
	case margin >= 0.05:
		return fmt.Sprintf("The leader has a clear but modest edge (margin %.2f).", margin)
	default:
		return fmt.Sprintf("The top candidates are close (margin %.4f); consider reviewing block details before acting on the order.", margin)
	}
}

// FormatSummaryReport produces a full plain-language report from a rank
// outcome.
func FormatSummaryReport(outcome *models.RankOutcome) string {
	var b strings.Builder

	b.WriteString("=== Interpretation ===\n\n")

	if len(outcome.Ranked) == 0 {
		b.WriteString("No candidate could be scored.\n")
		for _, f := range outcome.Failures {
			b.WriteString(fmt.Sprintf("  - %s: %s\n", f.ID, f.Error))
		}
		return b.String()
	}

	leader := outcome.Ranked[0]
	b.WriteString(fmt.Sprintf("Top candidate: %s — score %.4f, %s\n",
		leader.ID, leader.FinalColorScore, InterpretScore(leader.FinalColorScore)))
	b.WriteString(fmt.Sprintf("Mandatory coverage of the leader: %.0f%% of criteria at least partially met.\n",
		leader.Mandatory.Counts.Coverage()*100))

	if len(outcome.Ranked) > 1 {
		runnerUp := outcome.Ranked[1]
		b.WriteString(InterpretMargin(leader.FinalColorScore, runnerUp.FinalColorScore, leader.Refined && runnerUp.Refined))
		b.WriteString("\n")
	}

	if outcome.Digest.Refined > 0 {
		b.WriteString(fmt.Sprintf("%d of %d ranked candidates were ordered by Phase-2 refinement.\n",
			outcome.Digest.Refined, len(outcome.Ranked)))
	}

	zero := 0
	for _, c := range outcome.Ranked {
		if c.ZeroCoverage {
			zero++
		}
	}
	if zero > 0 {
		b.WriteString(fmt.Sprintf("%d candidate(s) carry no High or Partial match in any block; their positions reflect tie-breaking only.\n", zero))
	}

	if len(outcome.Failures) > 0 {
		b.WriteString(fmt.Sprintf("%d candidate(s) could not be scored:\n", len(outcome.Failures)))
		for _, f := range outcome.Failures {
			label := f.Error
			if f.Unscoreable {
				label = "no criteria in any block (unscoreable, not a zero score)"
			}
			b.WriteString(fmt.Sprintf("  - %s: %s\n", f.ID, label))
		}
	}

	d := outcome.Digest.Scores
	if d.CI95 != nil {
		b.WriteString(fmt.Sprintf("Batch mean score %.4f (95%% CI %.4f–%.4f).\n", d.Mean, d.CI95.Lower, d.CI95.Upper))
	}
	return b.String()
}
