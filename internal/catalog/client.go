// Package catalog fetches MARC records from a VuFind catalog.
package catalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lehigh-university-libraries/callno/internal/marc"
)

// Client represents a VuFind client
type Client struct {
	BaseURL    string
	httpClient *http.Client
}

// CatalogRecord is a record exported from the catalog.
type CatalogRecord struct {
	ID     string
	Record *marc.BibRecord
}

// NewClient creates a new catalog client
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FetchRecords fetches the MARC export of every id. Records that cannot be
// fetched are logged and skipped; the error is returned only when none could
// be fetched.
func (c *Client) FetchRecords(ctx context.Context, ids []string) ([]CatalogRecord, error) {
	records := make([]CatalogRecord, 0, len(ids))
	var lastErr error
	for _, id := range ids {
		rec, err := c.FetchMARC(ctx, id)
		if err != nil {
			if ctx.Err() != nil {
				return records, ctx.Err()
			}
			slog.Warn("Skipping record", "id", id, "err", err)
			lastErr = err
			continue
		}
		records = append(records, CatalogRecord{ID: id, Record: rec})
	}
	if len(records) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return records, nil
}

// FetchMARC fetches the MARC record for a specific record ID
func (c *Client) FetchMARC(ctx context.Context, recordID string) (*marc.BibRecord, error) {
	marcURL := fmt.Sprintf("%s/Record/%s/Export?style=MARC", c.BaseURL, url.PathEscape(recordID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, marcURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch MARC: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("MARC fetch returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	records, err := marc.ReadRecords(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read MARC data: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("record %s: export is empty", recordID)
	}
	return records[0], nil
}
