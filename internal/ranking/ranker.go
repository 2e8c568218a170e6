// Package ranking implements the two-phase ranking pipeline: parallel
// per-candidate scoring, primary ordering by coverage score, and
// conditional percentage refinement for tied candidates.
package ranking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spboyer/coverank/internal/config"
	"github.com/spboyer/coverank/internal/models"
	"github.com/spboyer/coverank/internal/scoring"
	"github.com/spboyer/coverank/internal/statistics"
	"github.com/spboyer/coverank/internal/strategy"
	"golang.org/x/sync/errgroup"
)

// SecondaryKey orders two candidates when both ranking phases tie. It must
// be a strict, deterministic ordering so repeated runs agree.
type SecondaryKey func(a, b *models.CandidateResult) bool

// Ranker runs the ranking pipeline over a batch of candidates. Zero-value
// configuration is filled by New; a Ranker holds no per-run state and may
// be reused across batches.
type Ranker struct {
	strat     strategy.Spec
	epsilon   float64
	parallel  bool
	workers   int
	secondary SecondaryKey
	seed      int64
}

// Option configures a Ranker.
type Option func(*Ranker)

// WithStrategy selects the weight policy for the run.
func WithStrategy(spec strategy.Spec) Option {
	return func(r *Ranker) {
		r.strat = spec
	}
}

// WithEpsilon sets the tie-detection tolerance.
func WithEpsilon(epsilon float64) Option {
	return func(r *Ranker) {
		r.epsilon = epsilon
	}
}

// WithParallel enables concurrent candidate scoring.
func WithParallel(parallel bool) Option {
	return func(r *Ranker) {
		r.parallel = parallel
	}
}

// WithWorkers bounds concurrent scoring; effective only with WithParallel.
func WithWorkers(n int) Option {
	return func(r *Ranker) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithSecondaryKey overrides the last-resort ordering for candidates tied
// in both phases. The default orders by candidate ID ascending.
func WithSecondaryKey(less SecondaryKey) Option {
	return func(r *Ranker) {
		if less != nil {
			r.secondary = less
		}
	}
}

// WithDigestSeed fixes the bootstrap seed used for the outcome digest,
// for reproducible summaries. Negative means non-deterministic.
func WithDigestSeed(seed int64) Option {
	return func(r *Ranker) {
		r.seed = seed
	}
}

// New creates a Ranker with the default strategy, epsilon, and secondary
// key.
func New(opts ...Option) *Ranker {
	r := &Ranker{
		strat:   strategy.Spec{Mode: strategy.DefaultMode},
		epsilon: config.DefaultEpsilon,
		workers: config.DefaultWorkers,
		secondary: func(a, b *models.CandidateResult) bool {
			return a.ID < b.ID
		},
		seed: -1,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Rank scores every candidate and produces the final total order. Scoring
// failures are candidate-local: they are collected in the outcome and never
// abort the batch. Rank returns an error only for run-level problems
// (unresolvable strategy, cancellation).
func (r *Ranker) Rank(ctx context.Context, batchName string, candidates []models.CandidateInput) (*models.RankOutcome, error) {
	base, err := r.strat.Resolve()
	if err != nil {
		return nil, err
	}

	// Score candidates independently. Slots keep input order so failure
	// reporting is stable regardless of scheduling.
	results := make([]*models.CandidateResult, len(candidates))
	failures := make([]*models.CandidateFailure, len(candidates))

	workers := 1
	if r.parallel {
		workers = r.workers
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, cand := range candidates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := scoreCandidate(base, cand)
			if err != nil {
				failures[i] = &models.CandidateFailure{
					ID:          cand.ID,
					Error:       err.Error(),
					Unscoreable: errors.Is(err, scoring.ErrAllBlocksUndefined),
				}
				return nil
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	outcome := &models.RankOutcome{
		BatchName: batchName,
		Timestamp: time.Now().UTC(),
		Mode:      string(r.strat.Mode),
		Epsilon:   r.epsilon,
	}
	var scored []*models.CandidateResult
	for i := range candidates {
		if failures[i] != nil {
			outcome.Failures = append(outcome.Failures, *failures[i])
			continue
		}
		scored = append(scored, results[i])
	}

	// Ordering is a single-threaded barrier: tie detection is relative to
	// the whole batch, so it needs every Phase-1 score in hand.
	refined := r.order(scored)

	scores := make([]float64, len(scored))
	outcome.Ranked = make([]models.CandidateResult, len(scored))
	for i, res := range scored {
		res.Rank = i + 1
		scores[i] = res.FinalColorScore
		outcome.Ranked[i] = *res
	}
	outcome.Digest = models.OutcomeDigest{
		Candidates: len(candidates),
		Failed:     len(outcome.Failures),
		Refined:    refined,
		Scores:     statistics.DescribeWithSeed(scores, r.seed),
	}
	return outcome, nil
}

// scoreCandidate computes the full per-candidate scoring state: block
// resolution, weight redistribution, both phase scores.
func scoreCandidate(base strategy.Weights, in models.CandidateInput) (*models.CandidateResult, error) {
	res := &models.CandidateResult{ID: in.ID, Metadata: in.Metadata}

	blocks := make(map[scoring.BlockKind]*models.BlockResult, 3)
	for _, kind := range scoring.BlockKinds() {
		counts, means, details, err := in.Block(kind).Resolve()
		if err != nil {
			return nil, fmt.Errorf("%s block: %w", kind, err)
		}
		blocks[kind] = &models.BlockResult{Counts: counts, Means: means, Details: details}
	}

	mandatory := blocks[scoring.BlockMandatory]
	preferred := blocks[scoring.BlockPreferred]
	tasks := blocks[scoring.BlockTasks]

	if mandatory.Counts.Total == 0 && preferred.Counts.Total == 0 && tasks.Counts.Total == 0 {
		return nil, scoring.ErrAllBlocksUndefined
	}

	res.UsedWeights = base.Redistribute(mandatory.Counts.Total, preferred.Counts.Total, tasks.Counts.Total)

	zeroCoverage := true
	for kind, block := range blocks {
		if block.Counts.Total == 0 {
			// Empty blocks never reach the scorer; redistribution
			// already zeroed their weight.
			continue
		}
		colorScore, err := scoring.CoverageScore(kind, block.Counts)
		if err != nil {
			return nil, fmt.Errorf("%s block: %w", kind, err)
		}
		block.ColorScore = colorScore
		block.PercentScore = scoring.RefinedScore(block.Counts, block.Means, colorScore)
		if block.Counts.HasSignal() {
			zeroCoverage = false
		}
	}

	w := res.UsedWeights
	res.FinalColorScore = w.Mandatory*mandatory.ColorScore + w.Preferred*preferred.ColorScore + w.Tasks*tasks.ColorScore
	res.FinalPercentScore = w.Mandatory*mandatory.PercentScore + w.Preferred*preferred.PercentScore + w.Tasks*tasks.PercentScore
	res.ZeroCoverage = zeroCoverage

	res.Mandatory = *mandatory
	res.Preferred = *preferred
	res.Tasks = *tasks
	return res, nil
}
