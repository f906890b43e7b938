package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jwaldner/tetra/internal/logger"
	"github.com/jwaldner/tetra/internal/models"
	"github.com/jwaldner/tetra/internal/scenario"
)

// GlossaryHandler serves the glossary, optionally filtered by a search
// query or a category
func (h *Handler) GlossaryHandler(w http.ResponseWriter, r *http.Request) {
	if enableCORS(w, r, "GET") {
		return
	}

	var req models.GlossaryRequest
	if err := h.decoder.Decode(&req, r.URL.Query()); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	terms := h.glossary.All()
	switch {
	case req.Query != "":
		terms = h.glossary.Search(req.Query)
	case req.Category != "":
		terms = h.glossary.ByCategory(req.Category)
	}

	logger.Debug.Printf("📖 Glossary request q=%q category=%q: %d terms", req.Query, req.Category, len(terms))

	response := map[string]interface{}{
		"success":    true,
		"count":      len(terms),
		"terms":      terms,
		"categories": h.glossary.Categories(),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// ScenariosHandler lists the available market scenarios
func (h *Handler) ScenariosHandler(w http.ResponseWriter, r *http.Request) {
	if enableCORS(w, r, "GET") {
		return
	}

	scenarios, err := h.scenarios.List()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	response := map[string]interface{}{
		"success":   true,
		"count":     len(scenarios),
		"source":    h.scenarios.ProviderName(),
		"scenarios": scenarios,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// ScenarioHandler serves one named scenario
func (h *Handler) ScenarioHandler(w http.ResponseWriter, r *http.Request) {
	if enableCORS(w, r, "GET") {
		return
	}
	start := time.Now()

	name := mux.Vars(r)["name"]
	sc, err := h.scenarios.Get(name)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, scenario.ErrNotFound) {
			status = http.StatusNotFound
		}
		h.writeError(w, r, start, status, err.Error())
		return
	}
	h.writeData(w, r, start, sc)
}

// RatesHandler exposes the interest rate curve backing curve-rate pricing
func (h *Handler) RatesHandler(w http.ResponseWriter, r *http.Request) {
	if enableCORS(w, r, "GET") {
		return
	}

	curve := h.rates.GetCurve()
	response := map[string]interface{}{
		"success": true,
		"source":  curve.Source,
		"as_of":   curve.AsOf,
		"count":   len(curve.Tenors),
		"tenors":  curve.Tenors,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
