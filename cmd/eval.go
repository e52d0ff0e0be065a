package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/callno/internal/evalcmd"
)

func newEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Call number evaluation tools",
		Long: `Evaluation tools for measuring how often constructed call numbers match the
ones catalogers assigned.

Supports fetching records from a VuFind catalog, running evaluations over
JSON, JSONL or Parquet datasets, inspecting individual records and
generating comparison reports.`,
	}

	cmd.AddCommand(evalcmd.NewFetchCmd())
	cmd.AddCommand(evalcmd.NewRunCmd())
	cmd.AddCommand(evalcmd.NewReportCmd())
	cmd.AddCommand(evalcmd.NewInspectCmd())

	return cmd
}
