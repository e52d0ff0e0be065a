package evalcmd

import (
	"bytes"
	"context"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehigh-university-libraries/callno/internal/callno"
	"github.com/lehigh-university-libraries/callno/internal/catalog"
	"github.com/lehigh-university-libraries/callno/internal/evaluation"
	"github.com/lehigh-university-libraries/callno/internal/marc"
)

func fictionRecord(id string) *marc.BibRecord {
	data := []byte(strings.Repeat(" ", 40))
	copy(data[33:], "1")
	copy(data[35:], "eng")
	rec := marc.NewRecord("00000nam  2200000   4500")
	rec.AddField(
		marc.NewControlField("001", id),
		marc.NewControlField("008", string(data)),
		marc.NewDataField("100", "1", " ", "a", "Adams, John,"),
		marc.NewDataField("099", " ", " ", "a", "FIC", "a", "ADAMS"),
	)
	return rec
}

func writeDataset(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, evaluation.SaveDataset(&evaluation.Dataset{Items: []evaluation.DatasetItem{
		{ID: "a", MARC: marc.FormatRecord(fictionRecord("a")), Expected: "FIC ADAMS"},
		{ID: "b", CallType: "bio", MARC: marc.FormatRecord(fictionRecord("b")), Expected: "B ADAMS A"},
		{ID: "c", Library: "lpl", MARC: marc.FormatRecord(fictionRecord("c")), Expected: "FIC ADAMS"},
	}}, dir))
	return dir
}

func TestExecuteRunAndReport(t *testing.T) {
	datasetDir := writeDataset(t)
	outputDir := filepath.Join(t.TempDir(), "results")

	var out bytes.Buffer
	err := executeRun(context.Background(), &out, runOptions{
		datasetPath: datasetDir,
		outputDir:   outputDir,
		concurrency: 2,
		library:     callno.LibraryBPL,
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Exact Matches:      1/2 (50.00%)")
	assert.FileExists(t, filepath.Join(outputDir, "results.json"))
	assert.FileExists(t, filepath.Join(outputDir, "summary.yaml"))

	t.Run("text", func(t *testing.T) {
		var report bytes.Buffer
		require.NoError(t, executeReport(&report, outputDir, "text"))
		assert.Contains(t, report.String(), "Built:    FIC ADAMS (fic)")
		assert.Contains(t, report.String(), "Built:    NO CALL NUMBER (no biographee)")
		assert.Contains(t, report.String(), `Error: parse library: unknown library "lpl"`)
	})

	t.Run("csv", func(t *testing.T) {
		var report bytes.Buffer
		require.NoError(t, executeReport(&report, outputDir, "csv"))
		rows, err := csv.NewReader(&report).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 4)
		assert.Equal(t, []string{"a", "bpl", "auto", "fic", "FIC ADAMS", "FIC ADAMS", "true", "1.0000", "0", "", ""}, rows[1])
	})

	t.Run("json", func(t *testing.T) {
		var report bytes.Buffer
		require.NoError(t, executeReport(&report, outputDir, "json"))
		assert.Contains(t, report.String(), `"exact_matches": 1`)
	})

	t.Run("unsupported", func(t *testing.T) {
		assert.Error(t, executeReport(&bytes.Buffer{}, outputDir, "xml"))
	})
}

func TestExecuteRunMissingDataset(t *testing.T) {
	err := executeRun(context.Background(), &bytes.Buffer{}, runOptions{
		datasetPath: filepath.Join(t.TempDir(), "missing.json"),
		outputDir:   t.TempDir(),
		concurrency: 1,
		library:     callno.LibraryBPL,
	})
	assert.ErrorContains(t, err, "failed to load dataset")
}

func TestExecuteInspect(t *testing.T) {
	datasetDir := writeDataset(t)

	var out bytes.Buffer
	err := executeInspect(context.Background(), &out, strings.NewReader(""), datasetDir, inspectOptions{
		limit:    2,
		showMARC: true,
		library:  callno.LibraryNYPL,
	})
	require.NoError(t, err)

	s := out.String()
	assert.Contains(t, s, "Loaded 3 records")
	assert.Contains(t, s, "RECORD 2/2")
	assert.NotContains(t, s, "RECORD 3/")
	assert.Contains(t, s, "Library:     nypl")
	assert.Contains(t, s, "Built:       FIC ADAMS (fic)")
	assert.Contains(t, s, `=099  \\$aFIC$aADAMS`)
}

func TestExecuteInspectInteractive(t *testing.T) {
	datasetDir := writeDataset(t)

	var out bytes.Buffer
	err := executeInspect(context.Background(), &out, strings.NewReader("\n\n\n"), datasetDir, inspectOptions{
		interactive: true,
		library:     callno.LibraryBPL,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out.String(), "Press Enter"))
}

func TestExecuteFetch(t *testing.T) {
	raw := marc.EncodeISO2709(fictionRecord("ocm0001"))
	mux := http.NewServeMux()
	mux.HandleFunc("/Record/ocm0001/Export", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(raw)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	outputDir := t.TempDir()
	var out bytes.Buffer
	err := executeFetch(context.Background(), &out, catalog.NewClient(srv.URL), []string{"ocm0001", "gone"}, callno.LibraryBPL, callno.CallTypeAuto, outputDir)
	require.NoError(t, err)
	assert.Equal(t, "Fetched 1 of 2 records into "+outputDir+"\n", out.String())

	dataset, err := evaluation.LoadDataset(outputDir)
	require.NoError(t, err)
	require.Len(t, dataset.Items, 1)
	item := dataset.Items[0]
	assert.Equal(t, "ocm0001", item.ID)
	assert.Equal(t, "bpl", item.Library)
	assert.Equal(t, "auto", item.CallType)
	assert.Equal(t, "FIC ADAMS", item.Expected)

	got := evaluation.NewRunner(callno.New(), callno.LibraryBPL, 1).Evaluate(item)
	assert.True(t, got.Comparison.Exact)

	assert.Error(t, executeFetch(context.Background(), &out, catalog.NewClient(srv.URL), nil, callno.LibraryBPL, callno.CallTypeAuto, outputDir))
}

func TestSplitIDs(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitIDs(" a, ,b,"))
	assert.Nil(t, splitIDs(""))
}
