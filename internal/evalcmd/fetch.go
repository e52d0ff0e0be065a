package evalcmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/lehigh-university-libraries/callno/internal/callno"
	"github.com/lehigh-university-libraries/callno/internal/catalog"
	"github.com/lehigh-university-libraries/callno/internal/evaluation"
	"github.com/lehigh-university-libraries/callno/internal/marc"
)

func executeFetch(ctx context.Context, w io.Writer, client *catalog.Client, ids []string, lib callno.Library, ct callno.CallType, outputDir string) error {
	if len(ids) == 0 {
		return fmt.Errorf("no record ids given")
	}
	slog.Info("Fetching records", "url", client.BaseURL, "ids", len(ids))

	records, err := client.FetchRecords(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to fetch records: %w", err)
	}

	items := make([]evaluation.DatasetItem, 0, len(records))
	for _, r := range records {
		expected := callno.Assigned(r.Record, lib)
		if expected == "" {
			slog.Warn("Record has no call number to compare against", "id", r.ID, "library", lib)
		}
		items = append(items, evaluation.DatasetItem{
			ID:       r.ID,
			Library:  string(lib),
			CallType: string(ct),
			MARC:     marc.FormatRecord(r.Record),
			Expected: expected,
		})
	}

	if err := evaluation.AppendDatasetItems(outputDir, items...); err != nil {
		return err
	}

	fmt.Fprintf(w, "Fetched %d of %d records into %s\n", len(items), len(ids), outputDir)
	return nil
}
