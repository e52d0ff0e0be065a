package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "callno",
		Short: "Call number construction for BPL and NYPL MARC records",
		Long: `Callno builds Brooklyn Public Library and New York Public Library call
numbers (FIC ADAMS, J-E ADAMS, B ADAMS G, 947.0842 B, eBOOK) from MARC
bibliographic records.

It supports building call numbers from files, a small HTTP API, and an
evaluation harness that scores constructed call numbers against cataloger
assigned ones.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log construction decisions")

	// Add subcommands
	cmd.AddCommand(newBuildCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newEvalCmd())

	return cmd
}
