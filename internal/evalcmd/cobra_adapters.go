// Package evalcmd implements the callno eval subcommands.
package evalcmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/callno/internal/callno"
	"github.com/lehigh-university-libraries/callno/internal/catalog"
	"github.com/lehigh-university-libraries/callno/internal/config"
)

// NewRunCmd creates the run command
func NewRunCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Construct call numbers for a dataset and score them",
		Long: `Constructs a call number for every dataset item and compares it with the
call number the cataloger assigned (exact match and Levenshtein similarity).

Datasets are .json ({"items": [...]}), .jsonl or .parquet files of
{id, library, call_type, marc, expected} items; a directory is read as
<dir>/dataset.json. Items without a library use $CALLNO_LIBRARY.

Writes results.json and summary.yaml to the output directory.`,
		Example: `  # Evaluate a dataset fetched with "eval fetch"
  callno eval run --dataset ./eval_data

  # Evaluate a Parquet export with 8 workers
  callno eval run --dataset ./items.parquet --concurrency 8 --output ./eval_results`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			opts.library = cfg.Library
			opts.constructor = callno.New(callno.WithClassifier(cfg.Classifier()))

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return executeRun(ctx, cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.datasetPath, "dataset", "./eval_data", "Dataset file or directory")
	cmd.Flags().StringVar(&opts.outputDir, "output", "./eval_results", "Output directory for results")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 4, "Number of concurrent evaluations")

	return cmd
}

// NewReportCmd creates the report command
func NewReportCmd() *cobra.Command {
	var resultsDir string
	var format string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print a report of evaluation results",
		Example: `  callno eval report --results ./eval_results
  callno eval report --results ./eval_results --format csv > results.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeReport(cmd.OutOrStdout(), resultsDir, format)
		},
	}

	cmd.Flags().StringVar(&resultsDir, "results", "./eval_results", "Results directory")
	cmd.Flags().StringVar(&format, "format", "text", "Output format (text, json, csv)")

	return cmd
}

// NewFetchCmd creates the fetch command
func NewFetchCmd() *cobra.Command {
	var baseURL string
	var ids string
	var library string
	var callType string
	var outputDir string

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch MARC records from VuFind to build an evaluation dataset",
		Long: `Fetches the MARC export of each record id from a VuFind catalog and adds
it to <output>/dataset.json. The expected call number is taken from the
record's existing call number field (099 for BPL, 091 for NYPL).`,
		Example: `  callno eval fetch --url https://catalog.example.org --ids 12345,67890 --library nypl`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if baseURL == "" {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				baseURL = cfg.VuFindURL
			}
			if baseURL == "" {
				return fmt.Errorf("--url or VUFIND_URL is required")
			}
			lib, err := callno.ParseLibrary(library)
			if err != nil {
				return err
			}
			ct, err := callno.ParseCallType(callType)
			if err != nil {
				return err
			}

			return executeFetch(cmd.Context(), cmd.OutOrStdout(), catalog.NewClient(baseURL), splitIDs(ids), lib, ct, outputDir)
		},
	}

	cmd.Flags().StringVar(&baseURL, "url", "", "VuFind base URL (default $VUFIND_URL)")
	cmd.Flags().StringVar(&ids, "ids", "", "Comma separated record ids (required)")
	cmd.Flags().StringVar(&library, "library", "bpl", "Library whose call number field holds the expected value")
	cmd.Flags().StringVar(&callType, "type", "auto", "Call type to request for the fetched items")
	cmd.Flags().StringVar(&outputDir, "output", "./eval_data", "Output directory for the dataset")

	_ = cmd.MarkFlagRequired("ids")
	return cmd
}

func splitIDs(s string) []string {
	var ids []string
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
