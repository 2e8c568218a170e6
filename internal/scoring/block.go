package scoring

import (
	"fmt"
	"math"
)

// BlockKind identifies one of the three criterion groups.
type BlockKind string

const (
	BlockMandatory BlockKind = "mandatory"
	BlockPreferred BlockKind = "preferred"
	BlockTasks     BlockKind = "tasks"
)

// BlockKinds returns the three kinds in canonical order.
func BlockKinds() []BlockKind {
	return []BlockKind{BlockMandatory, BlockPreferred, BlockTasks}
}

// Contribution weights per category when aggregating coverage. The Low
// weight is a tie-breaking residual, not a meaningful coverage credit.
const (
	highWeight    = 1.0
	partialWeight = 0.5
	lowWeight     = 0.01
)

// Counts holds the per-category criterion counts of a single block.
// Invariant: High + Partial + Low == Total, all non-negative.
type Counts struct {
	High    int `json:"high" yaml:"high"`
	Partial int `json:"partial" yaml:"partial"`
	Low     int `json:"low" yaml:"low"`
	Total   int `json:"total" yaml:"total"`
}

// Validate checks the count invariant.
func (c Counts) Validate() error {
	if c.High < 0 || c.Partial < 0 || c.Low < 0 {
		return fmt.Errorf("%w: negative count (high=%d partial=%d low=%d)", ErrCountMismatch, c.High, c.Partial, c.Low)
	}
	if c.High+c.Partial+c.Low != c.Total {
		return fmt.Errorf("%w: %d+%d+%d != %d", ErrCountMismatch, c.High, c.Partial, c.Low, c.Total)
	}
	return nil
}

// HasSignal reports whether the block carries any positive coverage signal,
// i.e. at least one High or Partial match.
func (c Counts) HasSignal() bool {
	return c.High > 0 || c.Partial > 0
}

// Coverage is the structural coverage (g+y)/N, a diagnostic metric that is
// not part of the primary score.
func (c Counts) Coverage() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.High+c.Partial) / float64(c.Total)
}

// Means holds the mean raw-confidence percentage per category, each in
// [0,100]. A mean is meaningless (and ignored) when its count is zero.
type Means struct {
	High    float64 `json:"high" yaml:"high"`
	Partial float64 `json:"partial" yaml:"partial"`
	Low     float64 `json:"low" yaml:"low"`
}

// Validate checks that every mean lies in [0,100].
func (m Means) Validate() error {
	for _, v := range []float64{m.High, m.Partial, m.Low} {
		if math.IsNaN(v) || v < 0 || v > 100 {
			return fmt.Errorf("%w: %v", ErrInvalidMean, v)
		}
	}
	return nil
}

// Tally classifies a block's raw confidences and aggregates them into
// counts and per-category mean percentages.
func Tally(confidences []float64) (Counts, Means, error) {
	var counts Counts
	var sums Means

	for _, conf := range confidences {
		category, err := Classify(conf)
		if err != nil {
			return Counts{}, Means{}, err
		}
		pct := conf * 100
		switch category {
		case CategoryHigh:
			counts.High++
			sums.High += pct
		case CategoryPartial:
			counts.Partial++
			sums.Partial += pct
		default:
			counts.Low++
			sums.Low += pct
		}
	}
	counts.Total = counts.High + counts.Partial + counts.Low

	var means Means
	if counts.High > 0 {
		means.High = sums.High / float64(counts.High)
	}
	if counts.Partial > 0 {
		means.Partial = sums.Partial / float64(counts.Partial)
	}
	if counts.Low > 0 {
		means.Low = sums.Low / float64(counts.Low)
	}
	return counts, means, nil
}

// CoverageScore computes the Phase-1 coverage score of a block, bounded to
// [0,1]. The mandatory block uses a quadratic numerator that couples count
// and confidence, so losing mandatory matches degrades the score faster
// than linearly; preferred and tasks aggregate linearly.
//
// A block with no High and no Partial matches scores exactly zero, whatever
// its Low count: the lowWeight residual differentiates otherwise-equal
// candidates in the weighted sum but never grants coverage on its own.
func CoverageScore(kind BlockKind, counts Counts) (float64, error) {
	if err := counts.Validate(); err != nil {
		return 0, err
	}
	if counts.Total == 0 {
		return 0, fmt.Errorf("%w: %s", ErrUndefinedBlock, kind)
	}
	if !counts.HasSignal() {
		return 0, nil
	}

	g := float64(counts.High)
	y := float64(counts.Partial)
	r := float64(counts.Low)
	n := float64(counts.Total)

	if kind == BlockMandatory {
		numerator := (highWeight*g+partialWeight*y)*(g+y) + lowWeight*r
		return numerator / (n * n), nil
	}
	return (highWeight*g + partialWeight*y + lowWeight*r) / n, nil
}

// RefinedScore computes the Phase-2 per-block refinement: the category mean
// percentages, normalized to [0,1], aggregated with the category weights and
// scaled by the block's coverage score. Categories with a zero count
// contribute nothing. The result is clamped to [0,1].
func RefinedScore(counts Counts, means Means, coverageScore float64) float64 {
	factor := 0.0
	if counts.High > 0 {
		factor += highWeight * means.High / 100
	}
	if counts.Partial > 0 {
		factor += partialWeight * means.Partial / 100
	}
	if counts.Low > 0 {
		factor += lowWeight * means.Low / 100
	}

	score := factor * coverageScore
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0
	}
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
