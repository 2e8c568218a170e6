package ranking

import (
	"sort"

	"github.com/spboyer/coverank/internal/models"
)

// order sorts candidates into the final total order and returns how many
// went through Phase-2 refinement.
//
// Phase 1 orders by FinalColorScore descending. Candidates whose scores sit
// within epsilon of an adjacent candidate form a tie group; a group is
// refined when it has more than one member or contains a zero-coverage
// candidate, whose primary score is residual-only noise. Refinement
// re-sorts each group in place by FinalPercentScore, so the relative order
// of candidates outside a group is never disturbed. Residual ties inside a
// group fall through to the secondary key.
func (r *Ranker) order(candidates []*models.CandidateResult) int {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].FinalColorScore > candidates[j].FinalColorScore
	})

	refined := 0
	for start := 0; start < len(candidates); {
		end := start + 1
		for end < len(candidates) && candidates[end-1].FinalColorScore-candidates[end].FinalColorScore < r.epsilon {
			end++
		}
		group := candidates[start:end]
		if len(group) > 1 || group[0].ZeroCoverage {
			r.refine(group)
			refined += len(group)
		}
		start = end
	}
	return refined
}

// refine applies the Phase-2 tie-break to one tie group.
func (r *Ranker) refine(group []*models.CandidateResult) {
	sort.SliceStable(group, func(i, j int) bool {
		a, b := group[i], group[j]
		if a.FinalPercentScore-b.FinalPercentScore > r.epsilon {
			return true
		}
		if b.FinalPercentScore-a.FinalPercentScore > r.epsilon {
			return false
		}
		return r.secondary(a, b)
	})
	for _, c := range group {
		c.Refined = true
	}
}
