package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehigh-university-libraries/callno/internal/marc"
)

func exportServer(t *testing.T) *httptest.Server {
	t.Helper()

	rec := marc.NewRecord("00000nam  2200000   4500")
	rec.AddField(
		marc.NewControlField("001", "ocm0001"),
		marc.NewDataField("100", "1", " ", "a", "Adams, John,"),
		marc.NewDataField("099", " ", " ", "a", "FIC", "a", "ADAMS"),
	)
	raw := marc.EncodeISO2709(rec)

	mux := http.NewServeMux()
	mux.HandleFunc("/Record/ocm0001/Export", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "MARC", r.URL.Query().Get("style"))
		_, _ = w.Write(raw)
	})
	mux.HandleFunc("/Record/empty/Export", func(w http.ResponseWriter, r *http.Request) {})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchMARC(t *testing.T) {
	srv := exportServer(t)
	c := NewClient(srv.URL + "/")

	rec, err := c.FetchMARC(context.Background(), "ocm0001")
	require.NoError(t, err)
	assert.Equal(t, "ocm0001", rec.ControlNumber())
	assert.True(t, marc.Has(rec, "099"))

	_, err = c.FetchMARC(context.Background(), "missing")
	assert.ErrorContains(t, err, "status 404")

	_, err = c.FetchMARC(context.Background(), "empty")
	assert.ErrorContains(t, err, "empty")
}

func TestFetchRecordsSkipsFailures(t *testing.T) {
	c := NewClient(exportServer(t).URL)

	records, err := c.FetchRecords(context.Background(), []string{"missing", "ocm0001"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "ocm0001", records[0].ID)

	_, err = c.FetchRecords(context.Background(), []string{"missing"})
	assert.Error(t, err)
}

func TestFetchRecordsCanceled(t *testing.T) {
	c := NewClient(exportServer(t).URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.FetchRecords(ctx, []string{"ocm0001"})
	assert.ErrorIs(t, err, context.Canceled)
}
