package evalcmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/lehigh-university-libraries/callno/internal/evaluation"
)

func executeReport(w io.Writer, resultsDir, format string) error {
	results, err := evaluation.LoadResults(resultsDir)
	if err != nil {
		return fmt.Errorf("failed to load results: %w", err)
	}

	switch format {
	case "text":
		return printTextReport(w, results)
	case "json":
		return printJSONReport(w, results)
	case "csv":
		return printCSVReport(w, results)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func printTextReport(w io.Writer, results *evaluation.Results) error {
	fmt.Fprintln(w, "========================================")
	fmt.Fprintln(w, "Call Number Evaluation Report")
	fmt.Fprintln(w, "========================================")
	fmt.Fprintf(w, "Dataset: %s\n", results.Dataset)
	fmt.Fprintf(w, "Run:     %s\n", results.CreatedAt.Format("2006-01-02 15:04:05"))

	printSummary(w, results.Summary)

	fmt.Fprintln(w, "\nDetailed Results:")
	fmt.Fprintln(w, "========================================")

	for i, r := range results.Results {
		fmt.Fprintf(w, "\n[%d] Record ID: %s (%s, %s)\n", i+1, r.ID, r.Library, r.CallType)

		if r.Error != "" {
			fmt.Fprintf(w, "  Error: %s\n", r.Error)
			continue
		}

		fmt.Fprintf(w, "  Expected: %s\n", r.Expected)
		if r.Actual == "" {
			fmt.Fprintf(w, "  Built:    NO CALL NUMBER (%s)\n", r.Reason)
		} else {
			fmt.Fprintf(w, "  Built:    %s (%s)\n", r.Actual, r.Resolved)
		}
		if r.Scored() {
			fmt.Fprintf(w, "  Score:    %.2f%% (distance %d)\n", r.Comparison.Similarity*100, r.Comparison.Distance)
		}
	}

	return nil
}

func printJSONReport(w io.Writer, results *evaluation.Results) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(results)
}

func printCSVReport(w io.Writer, results *evaluation.Results) error {
	writer := csv.NewWriter(w)

	header := []string{"ID", "Library", "Call Type", "Resolved", "Expected", "Actual", "Exact", "Similarity", "Distance", "Reason", "Error"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, r := range results.Results {
		row := []string{
			r.ID,
			r.Library,
			r.CallType,
			r.Resolved,
			r.Expected,
			r.Actual,
			strconv.FormatBool(r.Comparison.Exact),
			fmt.Sprintf("%.4f", r.Comparison.Similarity),
			strconv.Itoa(r.Comparison.Distance),
			r.Reason,
			r.Error,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
