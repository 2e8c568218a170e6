package main

import (
	"fmt"
	"os"

	"github.com/spboyer/coverank/internal/wizard"
	"github.com/spf13/cobra"
)

var (
	initOutput string
	initForce  bool
)

func newInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [batch-name]",
		Short: "Create a starter batch spec interactively",
		Long: `Create a starter batch spec through an interactive wizard.

The wizard asks for the batch name, strategy mode (with custom weights when
requested), and execution settings, then writes a commented YAML spec with
example candidates to edit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}
	cmd.Flags().StringVarP(&initOutput, "output", "o", "coverank.yaml", "Path of the batch spec to create")
	cmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing file")
	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	initialName := ""
	if len(args) == 1 {
		initialName = args[0]
	}

	if !initForce {
		if _, err := os.Stat(initOutput); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", initOutput)
		}
	}

	draft, err := wizard.RunBatchWizard(cmd.InOrStdin(), cmd.OutOrStdout(), initialName)
	if err != nil {
		return err
	}

	content, err := wizard.GenerateBatchYAML(draft)
	if err != nil {
		return err
	}
	if err := os.WriteFile(initOutput, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", initOutput, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %s\n\n", initOutput)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintf(out, "  1. Replace the example candidates with real evidence\n")
	fmt.Fprintf(out, "  2. coverank check %s\n", initOutput)
	fmt.Fprintf(out, "  3. coverank rank %s\n", initOutput)
	return nil
}
