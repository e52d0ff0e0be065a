package metric

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehigh-university-libraries/callno/internal/callno"
	"github.com/lehigh-university-libraries/callno/internal/marc"
)

func TestObserve(t *testing.T) {
	m := NewMetrics()
	req := callno.Request{Library: callno.LibraryBPL, CallType: callno.CallTypeEBook}

	res, err := callno.Construct(nil, req)
	require.NoError(t, err)
	m.Observe(callno.LibraryBPL, res, err, time.Millisecond)

	failReq := callno.Request{Library: callno.LibraryBPL, CallType: callno.CallTypeFiction}
	res, err = callno.Construct(marc.NewRecord("00000nam  2200000   4500"), failReq)
	require.NoError(t, err)
	m.Observe(callno.LibraryBPL, res, err, time.Millisecond)

	res, err = callno.Construct(nil, callno.Request{Library: "qpl"})
	require.Error(t, err)
	m.Observe("qpl", res, err, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Constructions.WithLabelValues("bpl", "ebook", OutcomeAssembled)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Constructions.WithLabelValues("bpl", "fic", OutcomeFailed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Constructions.WithLabelValues("qpl", "", OutcomeError)))
}

func TestHandler(t *testing.T) {
	m := NewMetrics()
	m.Observe(callno.LibraryNYPL, &callno.Result{State: callno.StateFailed}, nil, time.Microsecond)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `callno_constructions_total{call_type="",library="nypl",outcome="failed"} 1`)
	assert.Contains(t, string(body), "callno_construction_duration_seconds_bucket")
}
