package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/jwaldner/tetra/internal/models"
)

// AuditRunHandler executes the full numerical audit suite and returns the
// run report. The report is also persisted through the recorder.
func (h *Handler) AuditRunHandler(w http.ResponseWriter, r *http.Request) {
	if enableCORS(w, r, "POST") {
		return
	}
	start := time.Now()

	report := h.auditor.RunAll(h.recorder)
	status := http.StatusOK
	if !report.Passed {
		// Failed invariants surface on the status code so monitors trip
		status = http.StatusInternalServerError
	}
	h.writeJSON(w, status, models.APIResponse{Success: report.Passed, Data: report, Meta: h.newMeta(r, start)})
}

// AuditChecksHandler lists the registered checks without running them
func (h *Handler) AuditChecksHandler(w http.ResponseWriter, r *http.Request) {
	if enableCORS(w, r, "GET") {
		return
	}

	checks := h.auditor.Checks()
	response := map[string]interface{}{
		"success": true,
		"count":   len(checks),
		"checks":  checks,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
