package main

import (
	"fmt"

	"github.com/spboyer/coverank/internal/strategy"
	"github.com/spf13/cobra"
)

func newModesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "modes",
		Short: "List the built-in strategy modes and their weights",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-18s %-10s %-10s %-10s\n", "MODE", "MANDATORY", "PREFERRED", "TASKS")
			for _, mode := range strategy.Modes() {
				w, err := strategy.Spec{Mode: mode}.Resolve()
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-18s %-10.2f %-10.2f %-10.2f\n", mode, w.Mandatory, w.Preferred, w.Tasks)
			}
			fmt.Fprintf(out, "%-18s %s\n", "custom", "explicit triple via strategy.weights or --weights")
			return nil
		},
	}
}
