package handlers

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/gorilla/schema"

	"github.com/jwaldner/tetra/internal/audit"
	"github.com/jwaldner/tetra/internal/config"
	"github.com/jwaldner/tetra/internal/glossary"
	"github.com/jwaldner/tetra/internal/logger"
	"github.com/jwaldner/tetra/internal/models"
	"github.com/jwaldner/tetra/internal/rates"
	"github.com/jwaldner/tetra/internal/scenario"
)

var errBadGrid = errors.New("grid bounds invalid: need min < max and step > 0")

// Handler routes HTTP requests to the pricing kernel and services - DUMB HTTP layer only
type Handler struct {
	config    *config.Config
	rates     *rates.Service
	scenarios *scenario.Manager
	glossary  *glossary.Service
	auditor   *audit.Coordinator
	recorder  *audit.Recorder
	decoder   *schema.Decoder
}

// NewHandler creates the handler - just HTTP routing over the services
func NewHandler(cfg *config.Config, ratesSvc *rates.Service, scenarioMgr *scenario.Manager, glossarySvc *glossary.Service, auditor *audit.Coordinator, recorder *audit.Recorder) *Handler {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	return &Handler{
		config:    cfg,
		rates:     ratesSvc,
		scenarios: scenarioMgr,
		glossary:  glossarySvc,
		auditor:   auditor,
		recorder:  recorder,
		decoder:   decoder,
	}
}

// enableCORS sets permissive headers for browser compatibility and answers
// preflight. Returns true when the request is fully handled.
func enableCORS(w http.ResponseWriter, r *http.Request, methods string) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", methods+", OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return true
	}
	return false
}

func (h *Handler) newMeta(r *http.Request, start time.Time) models.ResponseMetadata {
	return models.ResponseMetadata{
		RequestID:    requestIDFrom(r),
		Timestamp:    time.Now().Format(time.RFC3339),
		ProcessingMs: float64(time.Since(start).Microseconds()) / 1000.0,
		Engine:       "closed-form",
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, resp models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error.Printf("❌ Failed to encode response: %v", err)
	}
}

func (h *Handler) writeData(w http.ResponseWriter, r *http.Request, start time.Time, data interface{}) {
	h.writeJSON(w, http.StatusOK, models.APIResponse{
		Success: true,
		Data:    data,
		Meta:    h.newMeta(r, start),
	})
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, start time.Time, status int, msg string) {
	logger.Warn.Printf("⚠️ %d %s: %s", status, r.URL.Path, msg)
	h.writeJSON(w, status, models.APIResponse{
		Success: false,
		Error:   msg,
		Meta:    h.newMeta(r, start),
	})
}

// HealthHandler reports liveness
func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if enableCORS(w, r, "GET") {
		return
	}

	response := map[string]interface{}{
		"status":    "healthy",
		"engine":    "closed-form",
		"timestamp": time.Now().Unix(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// cleanFloat replaces infinity and NaN values that break JSON encoding
func cleanFloat(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// cleanSlice sanitizes a series in place
func cleanSlice(vals []float64) []float64 {
	for i, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			vals[i] = 0
			logger.Warn.Printf("🔧 Sanitized non-finite value at index %d", i)
		}
	}
	return vals
}

func cleanCurves(curves []models.CurveData) []models.CurveData {
	for i := range curves {
		cleanSlice(curves[i].Y)
	}
	return curves
}
