package reporting

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spboyer/coverank/internal/models"
)

// WriteJSON writes the full rank outcome as indented JSON.
func WriteJSON(outcome *models.RankOutcome, path string) error {
	data, err := json.MarshalIndent(outcome, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling outcome: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing outcome: %w", err)
	}
	return nil
}

// FormatMarkdown formats a rank outcome as a markdown comment suitable for
// pasting into a PR or issue.
func FormatMarkdown(outcome *models.RankOutcome) string {
	var b strings.Builder

	b.WriteString("## 📊 Coverank Results\n\n")
	b.WriteString(fmt.Sprintf("**Batch:** %s | **Mode:** %s | **Candidates:** %d",
		outcome.BatchName, outcome.Mode, outcome.Digest.Candidates))
	if outcome.Digest.Failed > 0 {
		b.WriteString(fmt.Sprintf(" | **Unscored:** %d", outcome.Digest.Failed))
	}
	b.WriteString("\n\n")

	b.WriteString("| Rank | Candidate | Score | Mandatory | Preferred | Tasks | Tie-break |\n")
	b.WriteString("|------|-----------|-------|-----------|-----------|-------|-----------|\n")
	for _, c := range outcome.Ranked {
		tieBreak := ""
		if c.Refined {
			tieBreak = fmt.Sprintf("%.4f", c.FinalPercentScore)
		}
		b.WriteString(fmt.Sprintf("| %d | %s | %.4f | %.4f | %.4f | %.4f | %s |\n",
			c.Rank, c.ID, c.FinalColorScore,
			c.Mandatory.ColorScore, c.Preferred.ColorScore, c.Tasks.ColorScore, tieBreak))
	}

	if len(outcome.Failures) > 0 {
		b.WriteString("\n### Unscored Candidates\n\n")
		for _, f := range outcome.Failures {
			b.WriteString(fmt.Sprintf("- **%s**: %s\n", f.ID, f.Error))
		}
	}

	d := outcome.Digest.Scores
	b.WriteString(fmt.Sprintf("\n**Score Range:** %.4f - %.4f (σ=%.4f)\n", d.Min, d.Max, d.StdDev))
	return b.String()
}
