package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/lehigh-university-libraries/callno/internal/callno"
	errs "github.com/lehigh-university-libraries/callno/internal/errors"
	"github.com/lehigh-university-libraries/callno/internal/marc"
	"github.com/lehigh-university-libraries/callno/internal/models"
)

const maxUploadSize = 10 * 1024 * 1024

// HandleConstruct accepts either a JSON CallNumberRequest holding one mnemonic
// record, or a multipart upload of a .mrc or .mrk file under "file" with
// library and call_type form values.
func (h *Handler) HandleConstruct(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	contentType := r.Header.Get("Content-Type")
	if strings.Contains(contentType, "application/json") {
		h.handleJSONConstruct(w, r)
		return
	}

	h.handleFileUpload(w, r)
}

func (h *Handler) handleJSONConstruct(w http.ResponseWriter, r *http.Request) {
	var request models.CallNumberRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxUploadSize)).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(request.MARC) == "" {
		h.writeError(w, "marc is required", http.StatusBadRequest)
		return
	}

	req, err := h.request(request.Library, request.CallType, request.Order)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec, err := marc.ParseMnemonic(request.MARC)
	if err != nil {
		h.writeError(w, "Invalid MARC record: "+err.Error(), http.StatusBadRequest)
		return
	}

	job, err := h.runJob(rec, req)
	if err != nil {
		h.writeJSONStatus(w, statusFor(err), job)
		return
	}
	h.writeJSONStatus(w, http.StatusCreated, job)
}

func (h *Handler) handleFileUpload(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		h.writeError(w, "Failed to read file: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
	if err != nil {
		h.writeError(w, "Failed to read file contents: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if len(data) >= maxUploadSize {
		h.writeError(w, "File too large (max 10MB)", http.StatusBadRequest)
		return
	}

	req, err := h.request(r.FormValue("library"), r.FormValue("call_type"), callno.Order{
		Audience: r.FormValue("order_audience"),
		Language: r.FormValue("order_language"),
		Note:     r.FormValue("order_note"),
		Shelf:    r.FormValue("order_shelf"),
	})
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	records, err := marc.DecodeRecords(data)
	if err != nil {
		h.writeError(w, "Invalid MARC file: "+err.Error(), http.StatusBadRequest)
		return
	}

	jobs := make([]*models.CallNumberJob, 0, len(records))
	for _, rec := range records {
		// construction errors are recorded on the job
		job, _ := h.runJob(rec, req)
		jobs = append(jobs, job)
	}
	h.writeJSONStatus(w, http.StatusCreated, jobs)
}

func (h *Handler) request(library, callType string, order callno.Order) (callno.Request, error) {
	lib := h.library
	if library != "" {
		parsed, err := callno.ParseLibrary(library)
		if err != nil {
			return callno.Request{}, err
		}
		lib = parsed
	}
	ct, err := callno.ParseCallType(callType)
	if err != nil {
		return callno.Request{}, err
	}
	return callno.Request{Library: lib, CallType: ct, Order: order}, nil
}

func statusFor(err error) int {
	switch {
	case errs.IsInvalid(err):
		return http.StatusBadRequest
	case errs.IsUnsupported(err):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
