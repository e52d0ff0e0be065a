package handlers

import (
	"net/http"
	"strings"
)

func (h *Handler) HandleCallNumbers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.writeJSON(w, h.jobStore.List())
	case http.MethodPost:
		h.HandleConstruct(w, r)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) HandleCallNumberDetail(w http.ResponseWriter, r *http.Request) {
	jobID := strings.TrimPrefix(r.URL.Path, "/api/callnumbers/")

	job, ok := h.getJobOrError(w, jobID)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.writeJSON(w, job)
	case http.MethodDelete:
		h.jobStore.Delete(jobID)
		w.WriteHeader(http.StatusNoContent)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
