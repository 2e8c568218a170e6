// Package config holds the run-level settings of a ranking invocation.
// Settings come from the batch spec's config section and may be overridden
// by CLI flags; they are plain values handed to the ranker, never ambient
// state.
package config

import "fmt"

// Defaults applied when a batch spec leaves settings unset.
const (
	// DefaultEpsilon is the score-equality tolerance used for tie detection.
	DefaultEpsilon = 1e-6
	// DefaultWorkers bounds concurrent candidate scoring when parallel
	// execution is enabled.
	DefaultWorkers = 4
)

// Settings controls execution behavior for one ranking run.
type Settings struct {
	// Epsilon is the tolerance under which two final scores count as tied.
	Epsilon float64 `yaml:"epsilon,omitempty" json:"epsilon"`
	// Parallel enables concurrent per-candidate scoring.
	Parallel bool `yaml:"parallel,omitempty" json:"parallel"`
	// Workers is the concurrency limit; meaningful only with Parallel.
	Workers int `yaml:"max_workers,omitempty" json:"workers,omitempty"`
}

// ApplyDefaults fills unset fields with the package defaults.
func (s *Settings) ApplyDefaults() {
	if s.Epsilon == 0 {
		s.Epsilon = DefaultEpsilon
	}
	if s.Workers <= 0 {
		s.Workers = DefaultWorkers
	}
}

// Validate rejects settings the ranker cannot honor.
func (s Settings) Validate() error {
	if s.Epsilon < 0 {
		return fmt.Errorf("epsilon must be non-negative, got %v", s.Epsilon)
	}
	return nil
}
