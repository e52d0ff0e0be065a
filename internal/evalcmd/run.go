package evalcmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/lehigh-university-libraries/callno/internal/callno"
	"github.com/lehigh-university-libraries/callno/internal/evaluation"
)

type runOptions struct {
	datasetPath string
	outputDir   string
	concurrency int
	library     callno.Library
	constructor *callno.Constructor
}

func executeRun(ctx context.Context, w io.Writer, opts runOptions) error {
	slog.Info("Starting evaluation run", "dataset", opts.datasetPath, "library", opts.library)

	dataset, err := evaluation.LoadDataset(opts.datasetPath)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	slog.Info("Dataset loaded", "items", len(dataset.Items))

	if opts.constructor == nil {
		opts.constructor = callno.New()
	}
	runner := evaluation.NewRunner(opts.constructor, opts.library, opts.concurrency)

	slog.Info("Processing items", "concurrency", opts.concurrency)
	rs := runner.Run(ctx, dataset)

	results := &evaluation.Results{
		Dataset:   opts.datasetPath,
		CreatedAt: time.Now().UTC(),
		Results:   rs,
		Summary:   evaluation.Summarize(rs),
	}

	slog.Info("Saving results", "output", opts.outputDir)
	if err := evaluation.SaveResults(results, opts.outputDir); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}

	printSummary(w, results.Summary)

	fmt.Fprintf(w, "\nResults saved to: %s\n", opts.outputDir)
	fmt.Fprintf(w, "\nGenerate detailed report with:\n")
	fmt.Fprintf(w, "  callno eval report --results %s\n", opts.outputDir)

	return ctx.Err()
}

func printSummary(w io.Writer, summary *evaluation.Summary) {
	fmt.Fprintln(w, "\n========================================")
	fmt.Fprintln(w, "Evaluation Summary")
	fmt.Fprintln(w, "========================================")
	fmt.Fprintf(w, "Total Records:      %d\n", summary.TotalRecords)
	fmt.Fprintf(w, "Assembled:          %d\n", summary.Assembled)
	fmt.Fprintf(w, "No Call Number:     %d\n", summary.Failed)
	fmt.Fprintf(w, "Errors:             %d\n", summary.Errors)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Exact Matches:      %d/%d (%.2f%%)\n", summary.ExactMatches, summary.Scored, summary.ExactRate*100)
	fmt.Fprintf(w, "Average Similarity: %.2f%%\n", summary.AverageSimilarity*100)
	fmt.Fprintf(w, "Median Similarity:  %.2f%%\n", summary.MedianSimilarity*100)
	fmt.Fprintf(w, "Min Similarity:     %.2f%%\n", summary.MinSimilarity*100)
	fmt.Fprintf(w, "Max Similarity:     %.2f%%\n", summary.MaxSimilarity*100)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Call Types:")

	// Sort call types for consistent output
	var types []string
	for ct := range summary.CallTypes {
		types = append(types, ct)
	}
	sort.Strings(types)

	for _, ct := range types {
		s := summary.CallTypes[ct]
		fmt.Fprintf(w, "  %s: %d/%d exact, %.2f%% similar\n", ct, s.ExactMatches, s.Scored, s.AverageSimilarity*100)
	}
	fmt.Fprintln(w, "========================================")
}
