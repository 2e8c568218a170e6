// Package strategy supplies the weight triple applied to the three
// criterion blocks during a ranking run. A strategy is plain configuration
// passed into each run; concurrent runs with different modes never share
// state.
package strategy

import (
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// Mode names a weighting policy over the three blocks, reflecting how
// strictly mandatory criteria gate the outcome.
type Mode string

const (
	// ModeStrictFilter makes mandatory coverage dominate almost entirely.
	ModeStrictFilter Mode = "strict-filter"
	// ModeFlexibleProfile lets preferred and tasks coverage pull real weight.
	ModeFlexibleProfile Mode = "flexible-profile"
	// ModeBalance sits between the two.
	ModeBalance Mode = "balance"
	// ModeCustom uses an explicit caller-supplied triple.
	ModeCustom Mode = "custom"
)

// DefaultMode is used when a batch spec names no strategy.
const DefaultMode = ModeStrictFilter

// Weights is the importance triple for the three blocks. The sum is a
// decision input and need not equal 1.
type Weights struct {
	Mandatory float64 `json:"mandatory" yaml:"mandatory" mapstructure:"mandatory"`
	Preferred float64 `json:"preferred" yaml:"preferred" mapstructure:"preferred"`
	Tasks     float64 `json:"tasks" yaml:"tasks" mapstructure:"tasks"`
}

var modeWeights = map[Mode]Weights{
	ModeStrictFilter:    {Mandatory: 1.0, Preferred: 0.1, Tasks: 0.1},
	ModeFlexibleProfile: {Mandatory: 0.6, Preferred: 0.2, Tasks: 0.2},
	ModeBalance:         {Mandatory: 0.7, Preferred: 0.15, Tasks: 0.15},
}

// Modes returns the named (non-custom) modes in display order.
func Modes() []Mode {
	return []Mode{ModeStrictFilter, ModeFlexibleProfile, ModeBalance}
}

// ParseMode converts a string flag or config value to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict-filter", "strict":
		return ModeStrictFilter, nil
	case "flexible-profile", "flexible":
		return ModeFlexibleProfile, nil
	case "balance", "balanced":
		return ModeBalance, nil
	case "custom":
		return ModeCustom, nil
	default:
		return "", fmt.Errorf("invalid strategy mode %q: must be strict-filter, flexible-profile, balance, or custom", s)
	}
}

// Sum returns the total weight of the triple.
func (w Weights) Sum() float64 {
	return w.Mandatory + w.Preferred + w.Tasks
}

// Spec selects the weights for one ranking run: either a named mode or a
// custom triple.
type Spec struct {
	Mode   Mode    `json:"mode" yaml:"mode" mapstructure:"mode"`
	Custom Weights `json:"weights,omitempty" yaml:"weights,omitempty" mapstructure:"weights"`
}

// FromConfig decodes an untyped strategy section (as produced by a YAML
// batch spec) into a Spec. An empty map yields the default mode.
func FromConfig(raw map[string]any) (Spec, error) {
	if len(raw) == 0 {
		return Spec{Mode: DefaultMode}, nil
	}

	var decoded struct {
		Mode    string         `mapstructure:"mode"`
		Weights map[string]any `mapstructure:"weights"`
	}
	if err := mapstructure.Decode(raw, &decoded); err != nil {
		return Spec{}, fmt.Errorf("decoding strategy config: %w", err)
	}

	spec := Spec{Mode: DefaultMode}
	if decoded.Mode != "" {
		mode, err := ParseMode(decoded.Mode)
		if err != nil {
			return Spec{}, err
		}
		spec.Mode = mode
	}
	if decoded.Weights != nil {
		if err := mapstructure.Decode(decoded.Weights, &spec.Custom); err != nil {
			return Spec{}, fmt.Errorf("decoding strategy weights: %w", err)
		}
		if decoded.Mode == "" {
			spec.Mode = ModeCustom
		}
	}
	return spec, nil
}

// Resolve returns the base weight triple for the spec.
func (s Spec) Resolve() (Weights, error) {
	if s.Mode == ModeCustom {
		w := s.Custom
		if w.Mandatory < 0 || w.Preferred < 0 || w.Tasks < 0 {
			return Weights{}, fmt.Errorf("custom weights must be non-negative, got %+v", w)
		}
		if w.Sum() == 0 {
			return Weights{}, fmt.Errorf("custom weights must not all be zero")
		}
		return w, nil
	}
	w, ok := modeWeights[s.Mode]
	if !ok {
		return Weights{}, fmt.Errorf("unknown strategy mode %q", s.Mode)
	}
	return w, nil
}

// Redistribute removes the weight of every empty block (criterion count of
// zero) and rescales the remaining weights proportionally so their sum
// equals the original sum of all three. The same resolved triple is used in
// both ranking phases.
func (w Weights) Redistribute(mandatoryN, preferredN, tasksN int) Weights {
	total := w.Sum()

	resolved := w
	if mandatoryN == 0 {
		resolved.Mandatory = 0
	}
	if preferredN == 0 {
		resolved.Preferred = 0
	}
	if tasksN == 0 {
		resolved.Tasks = 0
	}

	remaining := resolved.Sum()
	if remaining == 0 || remaining == total {
		return resolved
	}

	scale := total / remaining
	resolved.Mandatory *= scale
	resolved.Preferred *= scale
	resolved.Tasks *= scale
	return resolved
}
