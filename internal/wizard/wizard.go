package wizard

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/template"

	"github.com/charmbracelet/huh"
	"github.com/spboyer/coverank/internal/strategy"
	"golang.org/x/term"
)

// BatchDraft holds all fields collected during the interactive wizard.
type BatchDraft struct {
	Name        string
	Description string
	Mode        strategy.Mode
	Weights     strategy.Weights
	Parallel    bool
}

const batchYAMLTemplate = `name: {{ .Name }}
{{- if .Description }}
description: >
  {{ .Description }}
{{- end }}

strategy:
  mode: {{ .Mode }}
{{- if eq .Mode "custom" }}
  weights:
    mandatory: {{ .Weights.Mandatory }}
    preferred: {{ .Weights.Preferred }}
    tasks: {{ .Weights.Tasks }}
{{- end }}

config:
  parallel: {{ .Parallel }}

# Each candidate supplies evidence per block, either as raw criterion
# confidences in [0,1] or as pre-aggregated counts with optional means.
candidates:
  - id: candidate-a
    mandatory:
      criteria:
        - name: first mandatory criterion
          confidence: 0.85
        - name: second mandatory criterion
          confidence: 0.45
    preferred:
      criteria:
        - name: first preferred criterion
          confidence: 0.72
  - id: candidate-b
    mandatory:
      counts:
        high: 1
        partial: 1
        low: 0
        total: 2
      means:
        high: 90
        partial: 50
    preferred:
      counts:
        high: 0
        partial: 1
        low: 0
        total: 1
      means:
        partial: 40
`

// RunBatchWizard runs an interactive huh form to collect batch metadata.
// If initialName is non-empty, it pre-populates the name field.
func RunBatchWizard(in io.Reader, out io.Writer, initialName string) (*BatchDraft, error) {
	var (
		name         = initialName
		description  string
		modeRaw      = string(strategy.DefaultMode)
		mandatoryRaw = "1.0"
		preferredRaw = "0.1"
		tasksRaw     = "0.1"
		parallel     bool
	)

	modeOptions := make([]huh.Option[string], 0, len(strategy.Modes())+1)
	for _, m := range strategy.Modes() {
		modeOptions = append(modeOptions, huh.NewOption(string(m), string(m)))
	}
	modeOptions = append(modeOptions, huh.NewOption("custom", string(strategy.ModeCustom)))

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Batch name").
				Description("A short name for this ranking batch").
				Placeholder("my-batch").
				Value(&name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Description").
				Description("What is being ranked? (optional)").
				Value(&description),
			huh.NewSelect[string]().
				Title("Strategy mode").
				Description("How strictly mandatory criteria gate the outcome").
				Options(modeOptions...).
				Value(&modeRaw),
			huh.NewConfirm().
				Title("Score candidates in parallel?").
				Value(&parallel),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Mandatory weight").
				Value(&mandatoryRaw).
				Validate(validateWeight),
			huh.NewInput().
				Title("Preferred weight").
				Value(&preferredRaw).
				Validate(validateWeight),
			huh.NewInput().
				Title("Tasks weight").
				Value(&tasksRaw).
				Validate(validateWeight),
		).WithHideFunc(func() bool {
			return modeRaw != string(strategy.ModeCustom)
		}),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	mode, err := strategy.ParseMode(modeRaw)
	if err != nil {
		return nil, err
	}
	draft := &BatchDraft{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Mode:        mode,
		Parallel:    parallel,
	}
	if mode == strategy.ModeCustom {
		draft.Weights = strategy.Weights{
			Mandatory: mustParseWeight(mandatoryRaw),
			Preferred: mustParseWeight(preferredRaw),
			Tasks:     mustParseWeight(tasksRaw),
		}
	}
	return draft, nil
}

// GenerateBatchYAML renders a starter batch spec from the given draft.
func GenerateBatchYAML(draft *BatchDraft) (string, error) {
	tmpl, err := template.New("batchyaml").Parse(batchYAMLTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, draft); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return buf.String(), nil
}

func validateWeight(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("must be a number")
	}
	if v < 0 {
		return fmt.Errorf("must be non-negative")
	}
	return nil
}

// mustParseWeight assumes the form validator already accepted the value.
func mustParseWeight(s string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v
}
