package evalcmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/callno/internal/callno"
	"github.com/lehigh-university-libraries/callno/internal/config"
	"github.com/lehigh-university-libraries/callno/internal/evaluation"
	"github.com/lehigh-university-libraries/callno/internal/marc"
)

// NewInspectCmd creates the inspect command
func NewInspectCmd() *cobra.Command {
	var datasetPath string
	var limit int
	var interactive bool
	var showMARC bool

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Inspect dataset records with the call number built for each",
		Long: `Inspect records from a dataset file.

Prints each item's expected call number next to the one constructed for it,
the content category the record resolved to, and optionally the MARC record.`,
		Example: `  # Inspect first 5 records interactively
  callno eval inspect --dataset ./eval_data --limit 5 --interactive

  # Hide the MARC records
  callno eval inspect --dataset ./items.jsonl --marc=false

  # Inspect all records (no limit)
  callno eval inspect --dataset ./items.parquet --limit 0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if datasetPath == "" {
				return fmt.Errorf("--dataset is required")
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			constructor := callno.New(callno.WithClassifier(cfg.Classifier()))

			// Create a context that gets canceled on an interrupt signal (Ctrl+C)
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			opts := inspectOptions{
				limit:       limit,
				interactive: interactive,
				showMARC:    showMARC,
				library:     cfg.Library,
				constructor: constructor,
			}
			return executeInspect(ctx, cmd.OutOrStdout(), cmd.InOrStdin(), datasetPath, opts)
		},
	}

	cmd.Flags().StringVar(&datasetPath, "dataset", "", "Path to dataset file or directory (required)")
	cmd.Flags().IntVar(&limit, "limit", 10, "Number of records to inspect (0 for all)")
	cmd.Flags().BoolVar(&interactive, "interactive", false, "Pause after each record (press Enter to continue)")
	cmd.Flags().BoolVar(&showMARC, "marc", true, "Show the MARC record")

	_ = cmd.MarkFlagRequired("dataset")

	return cmd
}

type inspectOptions struct {
	limit       int
	interactive bool
	showMARC    bool
	library     callno.Library
	constructor *callno.Constructor
}

func executeInspect(ctx context.Context, w io.Writer, in io.Reader, datasetPath string, opts inspectOptions) error {
	dataset, err := evaluation.LoadDataset(datasetPath)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	items := dataset.Items
	if opts.limit > 0 && len(items) > opts.limit {
		items = items[:opts.limit]
	}

	if opts.constructor == nil {
		opts.constructor = callno.New()
	}
	runner := evaluation.NewRunner(opts.constructor, opts.library, 1)

	fmt.Fprintf(w, "Loaded %d records from %s\n", len(dataset.Items), datasetPath)
	fmt.Fprintln(w, strings.Repeat("=", 80))
	fmt.Fprintln(w)

	reader := bufio.NewReader(in)

	for i, item := range items {
		select {
		case <-ctx.Done():
			fmt.Fprintln(w, "\nInspection interrupted.")
			return nil
		default:
		}

		fmt.Fprintf(w, "RECORD %d/%d\n", i+1, len(items))
		fmt.Fprintln(w, strings.Repeat("-", 80))

		r := runner.Evaluate(item)
		fmt.Fprintf(w, "ID:          %s\n", r.ID)
		fmt.Fprintf(w, "Library:     %s\n", r.Library)
		fmt.Fprintf(w, "Call Type:   %s\n", r.CallType)
		fmt.Fprintf(w, "Expected:    %s\n", r.Expected)
		switch {
		case r.Error != "":
			fmt.Fprintf(w, "Error:       %s\n", r.Error)
		case r.Actual == "":
			fmt.Fprintf(w, "Built:       NO CALL NUMBER (%s)\n", r.Reason)
		default:
			fmt.Fprintf(w, "Built:       %s (%s)\n", r.Actual, r.Resolved)
			fmt.Fprintf(w, "Similarity:  %.2f%%\n", r.Comparison.Similarity*100)
		}

		if opts.showMARC {
			fmt.Fprintln(w)
			if records, err := marc.DecodeRecords([]byte(item.MARC)); err == nil && len(records) > 0 {
				fmt.Fprint(w, marc.FormatRecord(records[0]))
			} else {
				fmt.Fprintln(w, item.MARC)
			}
			fmt.Fprintln(w, strings.Repeat("-", 80))
		}

		fmt.Fprintln(w)

		if opts.interactive {
			fmt.Fprint(w, "Press Enter to continue to next record (or Ctrl+C to quit)...")

			inputCh := make(chan struct{})
			go func() {
				_, _ = reader.ReadString('\n')
				close(inputCh)
			}()

			select {
			case <-ctx.Done():
				fmt.Fprintln(w, "\nInspection interrupted.")
				return nil
			case <-inputCh:
				fmt.Fprintln(w)
			}
		}
	}

	return nil
}
