package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coverank",
		Short: "Coverank - two-phase coverage ranking for scored candidates",
		Long: `Coverank ranks candidates against mandatory, preferred, and tasks
criteria when the evidence per criterion is a noisy confidence value.

Phase 1 scores each block from High/Partial/Low coverage counts (quadratic
for the mandatory block); Phase 2 breaks ties with mean confidence
percentages. Candidates, strategy, and run settings come from a YAML batch
spec.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newRankCommand())
	cmd.AddCommand(newCheckCommand())
	cmd.AddCommand(newInitCommand())
	cmd.AddCommand(newModesCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
