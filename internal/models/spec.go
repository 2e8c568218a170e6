package models

import (
	"fmt"
	"os"

	"github.com/spboyer/coverank/internal/config"
	"github.com/spboyer/coverank/internal/scoring"
	"gopkg.in/yaml.v3"
)

// BatchSpec is a complete ranking specification: the candidates to rank
// plus the strategy and run settings for this batch.
type BatchSpec struct {
	SpecIdentity `yaml:",inline"`
	Version      string           `yaml:"version,omitempty"`
	Strategy     map[string]any   `yaml:"strategy,omitempty"`
	Config       config.Settings  `yaml:"config,omitempty"`
	Candidates   []CandidateInput `yaml:"candidates"`
}

type SpecIdentity struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// CandidateInput is the immutable input for a single candidate. Everything
// derived from it is recomputed per ranking run, never mutated in place.
type CandidateInput struct {
	ID        string         `yaml:"id" json:"id"`
	Mandatory BlockInput     `yaml:"mandatory,omitempty" json:"mandatory,omitempty"`
	Preferred BlockInput     `yaml:"preferred,omitempty" json:"preferred,omitempty"`
	Tasks     BlockInput     `yaml:"tasks,omitempty" json:"tasks,omitempty"`
	Metadata  map[string]any `yaml:"metadata,omitempty" json:"metadata,omitempty"`
}

// Block returns the input for the given block kind.
func (c CandidateInput) Block(kind scoring.BlockKind) BlockInput {
	switch kind {
	case scoring.BlockMandatory:
		return c.Mandatory
	case scoring.BlockPreferred:
		return c.Preferred
	default:
		return c.Tasks
	}
}

// BlockInput carries the evidence for one block in either of two shapes:
// per-criterion confidences (the classifier derives counts and means), or
// pre-aggregated category counts with optional per-category means.
type BlockInput struct {
	Criteria []Criterion     `yaml:"criteria,omitempty" json:"criteria,omitempty"`
	Counts   *scoring.Counts `yaml:"counts,omitempty" json:"counts,omitempty"`
	Means    *scoring.Means  `yaml:"means,omitempty" json:"means,omitempty"`
}

// Criterion is one atomic requirement with its externally evaluated
// confidence in [0,1].
type Criterion struct {
	Name       string  `yaml:"name" json:"name"`
	Confidence float64 `yaml:"confidence" json:"confidence"`
	Evidence   string  `yaml:"evidence,omitempty" json:"evidence,omitempty"`
	Comment    string  `yaml:"comment,omitempty" json:"comment,omitempty"`
}

// Resolve normalizes a block input to counts, means, and a per-criterion
// detail breakdown. An absent block resolves to zero counts.
func (b BlockInput) Resolve() (scoring.Counts, scoring.Means, []CriterionDetail, error) {
	if len(b.Criteria) > 0 && b.Counts != nil {
		return scoring.Counts{}, scoring.Means{}, nil, fmt.Errorf("block must supply criteria or counts, not both")
	}

	if len(b.Criteria) > 0 {
		confidences := make([]float64, len(b.Criteria))
		for i, crit := range b.Criteria {
			confidences[i] = crit.Confidence
		}
		counts, means, err := scoring.Tally(confidences)
		if err != nil {
			return scoring.Counts{}, scoring.Means{}, nil, err
		}

		details := make([]CriterionDetail, len(b.Criteria))
		for i, crit := range b.Criteria {
			// Tally already rejected out-of-range confidences.
			category, _ := scoring.Classify(crit.Confidence)
			details[i] = CriterionDetail{
				Name:     crit.Name,
				Percent:  crit.Confidence * 100,
				Category: category,
				Evidence: crit.Evidence,
				Comment:  crit.Comment,
			}
		}
		return counts, means, details, nil
	}

	if b.Counts != nil {
		counts := *b.Counts
		if err := counts.Validate(); err != nil {
			return scoring.Counts{}, scoring.Means{}, nil, err
		}
		var means scoring.Means
		if b.Means != nil {
			means = *b.Means
			if err := means.Validate(); err != nil {
				return scoring.Counts{}, scoring.Means{}, nil, err
			}
		}
		return counts, means, nil, nil
	}

	return scoring.Counts{}, scoring.Means{}, nil, nil
}

// LoadBatchSpec loads a batch spec from a YAML file and applies setting
// defaults. Schema validation is a separate, explicit step (see the
// validation package and the check command).
func LoadBatchSpec(path string) (*BatchSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var spec BatchSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parsing batch spec %s: %w", path, err)
	}

	if len(spec.Candidates) == 0 {
		return nil, fmt.Errorf("batch spec %s contains no candidates", path)
	}
	seen := make(map[string]bool, len(spec.Candidates))
	for i, cand := range spec.Candidates {
		if cand.ID == "" {
			return nil, fmt.Errorf("candidate %d has no id", i)
		}
		if seen[cand.ID] {
			return nil, fmt.Errorf("duplicate candidate id %q", cand.ID)
		}
		seen[cand.ID] = true
	}

	spec.Config.ApplyDefaults()
	if err := spec.Config.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}
