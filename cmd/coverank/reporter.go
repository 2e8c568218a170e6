package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spboyer/coverank/internal/models"
	"golang.org/x/term"
)

const fallbackTerminalWidth = 120

// terminalWidth returns the current terminal width, or a fallback when
// stdout is not a terminal (pipes, CI).
func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return fallbackTerminalWidth
}

// renderTable writes the ranked candidates as an aligned text table.
func renderTable(w io.Writer, outcome *models.RankOutcome) {
	fmt.Fprintf(w, "Batch: %s  (mode=%s, epsilon=%g)\n\n", outcome.BatchName, outcome.Mode, outcome.Epsilon)

	// Candidate IDs can be arbitrarily long; cap the column so the table
	// fits the terminal.
	maxID := terminalWidth() / 3
	if maxID < 12 {
		maxID = 12
	}

	headers := []string{"RANK", "CANDIDATE", "SCORE", "MANDATORY", "PREFERRED", "TASKS", "COVERAGE", "NOTES"}
	rows := make([][]string, 0, len(outcome.Ranked))
	for i := range outcome.Ranked {
		c := &outcome.Ranked[i]
		notes := candidateNotes(c)
		rows = append(rows, []string{
			fmt.Sprintf("%d", c.Rank),
			runewidth.Truncate(c.ID, maxID, "…"),
			fmt.Sprintf("%.4f", c.FinalColorScore),
			fmt.Sprintf("%.4f", c.Mandatory.ColorScore),
			fmt.Sprintf("%.4f", c.Preferred.ColorScore),
			fmt.Sprintf("%.4f", c.Tasks.ColorScore),
			fmt.Sprintf("%.0f%%", c.AverageCoverage()*100),
			notes,
		})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	writeRow := func(cells []string) {
		padded := make([]string, len(cells))
		for i, cell := range cells {
			padded[i] = runewidth.FillRight(cell, widths[i])
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(padded, "  "), " "))
	}

	writeRow(headers)
	for _, row := range rows {
		writeRow(row)
	}

	if len(outcome.Failures) > 0 {
		fmt.Fprintf(w, "\nUnscored candidates (%d):\n", len(outcome.Failures))
		for _, f := range outcome.Failures {
			fmt.Fprintf(w, "  %s: %s\n", f.ID, f.Error)
		}
	}

	d := outcome.Digest
	fmt.Fprintf(w, "\n%d candidate(s), %d refined by tie-break, mean score %.4f (σ=%.4f)\n",
		d.Candidates, d.Refined, d.Scores.Mean, d.Scores.StdDev)
}

func candidateNotes(c *models.CandidateResult) string {
	var notes []string
	if c.ZeroCoverage {
		notes = append(notes, "zero-coverage")
	} else if c.Refined {
		notes = append(notes, "tie-break")
	}
	return strings.Join(notes, ", ")
}
