package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spboyer/coverank/internal/models"
	"github.com/spboyer/coverank/internal/ranking"
	"github.com/spboyer/coverank/internal/reporting"
	"github.com/spboyer/coverank/internal/strategy"
	"github.com/spboyer/coverank/internal/validation"
	"github.com/spf13/cobra"
)

var (
	rankMode      string
	rankWeights   string
	rankEpsilon   float64
	rankParallel  bool
	rankWorkers   int
	rankOutput    string
	rankFormat    string
	rankInterpret bool
	rankSeed      int64
)

func newRankCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rank <batch.yaml>",
		Short: "Rank the candidates of a batch spec",
		Long: `Rank the candidates of a batch spec file.

The spec defines the candidates with their per-block evidence, the strategy
mode, and the run settings. CLI flags override the spec's strategy and
settings.`,
		Args: cobra.ExactArgs(1),
		RunE: runRank,
	}

	cmd.Flags().StringVar(&rankMode, "mode", "", "Strategy mode: strict-filter, flexible-profile, balance (overrides spec)")
	cmd.Flags().StringVar(&rankWeights, "weights", "", "Custom weight triple as mandatory,preferred,tasks (e.g. 1.0,0.2,0.2)")
	cmd.Flags().Float64Var(&rankEpsilon, "epsilon", 0, "Tie-detection tolerance (overrides spec)")
	cmd.Flags().BoolVar(&rankParallel, "parallel", false, "Score candidates concurrently")
	cmd.Flags().IntVar(&rankWorkers, "workers", 0, "Number of concurrent workers (requires --parallel)")
	cmd.Flags().StringVarP(&rankOutput, "output", "o", "", "Output JSON file for the full outcome")
	cmd.Flags().StringVar(&rankFormat, "format", "table", "Output format: table, markdown, json")
	cmd.Flags().BoolVar(&rankInterpret, "interpret", false, "Print a plain-language interpretation of the results")
	cmd.Flags().Int64Var(&rankSeed, "seed", -1, "Bootstrap seed for the summary statistics (negative = random)")

	return cmd
}

func runRank(cmd *cobra.Command, args []string) error {
	specPath := args[0]

	schemaErrs, err := validation.ValidateBatchFile(specPath)
	if err != nil {
		return err
	}
	if len(schemaErrs) > 0 {
		return &CheckFailureError{Message: fmt.Sprintf(
			"batch spec %s has %d schema violation(s); run 'coverank check %s' for details",
			specPath, len(schemaErrs), specPath)}
	}

	spec, err := models.LoadBatchSpec(specPath)
	if err != nil {
		return fmt.Errorf("failed to load batch spec: %w", err)
	}

	strat, err := resolveStrategy(spec)
	if err != nil {
		return err
	}

	// CLI flags override spec config
	settings := spec.Config
	if rankEpsilon > 0 {
		settings.Epsilon = rankEpsilon
	}
	if rankParallel {
		settings.Parallel = true
	}
	if rankWorkers > 0 {
		settings.Workers = rankWorkers
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	slog.Debug("starting ranking run",
		"batch", batchName(spec, specPath),
		"candidates", len(spec.Candidates),
		"mode", strat.Mode,
		"epsilon", settings.Epsilon,
		"parallel", settings.Parallel)

	ranker := ranking.New(
		ranking.WithStrategy(strat),
		ranking.WithEpsilon(settings.Epsilon),
		ranking.WithParallel(settings.Parallel),
		ranking.WithWorkers(settings.Workers),
		ranking.WithDigestSeed(rankSeed),
	)
	outcome, err := ranker.Rank(cmd.Context(), batchName(spec, specPath), spec.Candidates)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch rankFormat {
	case "table", "":
		renderTable(out, outcome)
	case "markdown":
		fmt.Fprintln(out, reporting.FormatMarkdown(outcome))
	case "json":
		data, err := json.MarshalIndent(outcome, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
	default:
		return fmt.Errorf("invalid format %q: must be table, markdown, or json", rankFormat)
	}

	if rankInterpret {
		fmt.Fprintln(out)
		fmt.Fprint(out, reporting.FormatSummaryReport(outcome))
	}

	if rankOutput != "" {
		if err := reporting.WriteJSON(outcome, rankOutput); err != nil {
			return err
		}
		fmt.Fprintf(out, "\nFull outcome written to %s\n", rankOutput)
	}
	return nil
}

// resolveStrategy combines the spec's strategy section with flag overrides.
func resolveStrategy(spec *models.BatchSpec) (strategy.Spec, error) {
	strat, err := strategy.FromConfig(spec.Strategy)
	if err != nil {
		return strategy.Spec{}, err
	}
	if rankMode != "" {
		mode, err := strategy.ParseMode(rankMode)
		if err != nil {
			return strategy.Spec{}, err
		}
		strat.Mode = mode
	}
	if rankWeights != "" {
		weights, err := parseWeightsFlag(rankWeights)
		if err != nil {
			return strategy.Spec{}, err
		}
		strat.Mode = strategy.ModeCustom
		strat.Custom = weights
	}
	return strat, nil
}

func parseWeightsFlag(raw string) (strategy.Weights, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 3 {
		return strategy.Weights{}, fmt.Errorf("invalid --weights %q: expected mandatory,preferred,tasks", raw)
	}
	values := make([]float64, 3)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return strategy.Weights{}, fmt.Errorf("invalid --weights %q: %w", raw, err)
		}
		values[i] = v
	}
	return strategy.Weights{Mandatory: values[0], Preferred: values[1], Tasks: values[2]}, nil
}

func batchName(spec *models.BatchSpec, path string) string {
	if spec.Name != "" {
		return spec.Name
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
