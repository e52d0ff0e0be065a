package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/lehigh-university-libraries/callno/internal/callno"
	"github.com/lehigh-university-libraries/callno/internal/marc"
	"github.com/lehigh-university-libraries/callno/internal/metric"
	"github.com/lehigh-university-libraries/callno/internal/models"
	"github.com/lehigh-university-libraries/callno/internal/storage"
)

type Handler struct {
	jobStore    *storage.JobStore
	constructor *callno.Constructor
	metrics     *metric.Metrics
	library     callno.Library
}

// New creates a Handler. library is used when a request names none.
func New(constructor *callno.Constructor, metrics *metric.Metrics, library callno.Library) *Handler {
	return &Handler{
		jobStore:    storage.New(),
		constructor: constructor,
		metrics:     metrics,
		library:     library,
	}
}

// Routes registers the API on a new mux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/callnumbers", h.HandleCallNumbers)
	mux.HandleFunc("/api/callnumbers/", h.HandleCallNumberDetail)
	mux.Handle("/metrics", h.metrics.Handler())
	mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			slog.Error("Unable to write healthcheck", "err", err)
		}
	})
	return mux
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	h.writeJSONStatus(w, http.StatusOK, data)
}

func (h *Handler) writeJSONStatus(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

// Job helpers
func (h *Handler) getJobOrError(w http.ResponseWriter, jobID string) (*models.CallNumberJob, bool) {
	job, exists := h.jobStore.Get(jobID)
	if !exists {
		h.writeError(w, "Job not found", http.StatusNotFound)
		return nil, false
	}
	return job, true
}

// runJob constructs a call number for rec and stores the job. The returned
// error is the construction error, already recorded on the job.
func (h *Handler) runJob(rec *marc.BibRecord, req callno.Request) (*models.CallNumberJob, error) {
	start := time.Now()
	res, err := h.constructor.Construct(rec, req)
	h.metrics.Observe(req.Library, res, err, time.Since(start))

	job := &models.CallNumberJob{
		ID:            uuid.NewString(),
		Library:       string(req.Library),
		CallType:      string(req.CallType),
		ControlNumber: rec.ControlNumber(),
		MARCRecord:    marc.FormatRecord(rec),
		Order:         req.Order,
		CreatedAt:     time.Now(),
	}
	if res != nil {
		job.State = string(res.State)
		job.Resolved = string(res.CallType)
		job.Reason = res.Reason
		if res.OK() {
			job.CallNumber = res.CallNumber.String()
			job.Field = res.CallNumber.Mnemonic()
			job.Elements = res.CallNumber.Elements()
		}
	}
	if err != nil {
		job.Error = err.Error()
	}

	h.jobStore.Set(job.ID, job)
	slog.Info("Call number job completed",
		"job_id", job.ID,
		"library", job.Library,
		"control_number", job.ControlNumber,
		"state", job.State,
		"call_number", job.CallNumber)
	return job, err
}
