package main

import (
	"encoding/json"
	"fmt"

	"github.com/spboyer/coverank/internal/validation"
	"github.com/spf13/cobra"
)

var checkFormat string

func newCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <batch.yaml>",
		Short: "Validate a batch spec against the schema",
		Long: `Validate a batch spec file against the embedded JSON Schema.

Reports every violation with its location in the document. Exits non-zero
when the spec is invalid, so the command can gate CI.`,
		Args:          cobra.ExactArgs(1),
		RunE:          runCheck,
		SilenceErrors: true,
	}
	cmd.Flags().StringVar(&checkFormat, "format", "text", "Output format: text | json")
	return cmd
}

type checkJSONReport struct {
	Path   string   `json:"path"`
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	specPath := args[0]

	errs, err := validation.ValidateBatchFile(specPath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch checkFormat {
	case "json":
		report := checkJSONReport{Path: specPath, Valid: len(errs) == 0, Errors: errs}
		data, jsonErr := json.MarshalIndent(report, "", "  ")
		if jsonErr != nil {
			return jsonErr
		}
		fmt.Fprintln(out, string(data))
	case "text", "":
		if len(errs) == 0 {
			fmt.Fprintf(out, "✓ %s is a valid batch spec\n", specPath)
		} else {
			fmt.Fprintf(out, "✗ %s has %d schema violation(s):\n", specPath, len(errs))
			for _, e := range errs {
				fmt.Fprintf(out, "  %s\n", e)
			}
		}
	default:
		return fmt.Errorf("invalid format %q: must be text or json", checkFormat)
	}

	if len(errs) > 0 {
		return &CheckFailureError{Message: fmt.Sprintf("%s failed validation", specPath)}
	}
	return nil
}
