package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/jwaldner/tetra/internal/config"
	"github.com/jwaldner/tetra/internal/logger"
	"github.com/jwaldner/tetra/internal/models"
	"github.com/jwaldner/tetra/internal/quant"
	"github.com/jwaldner/tetra/internal/strategy"
)

// writeCSV sets download headers and streams rows through gocsv
func (h *Handler) writeCSV(w http.ResponseWriter, kind string, rows interface{}) error {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	filename := config.FormatCSVFilename(h.config.CSV.FilenameFormat, kind, timestamp)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	return gocsv.Marshal(rows, w)
}

// PayoffCSVHandler exports the single-option payoff grid. Accepts the same
// query parameters as the payoff endpoint.
func (h *Handler) PayoffCSVHandler(w http.ResponseWriter, r *http.Request) {
	if enableCORS(w, r, "GET") {
		return
	}

	typ, side, req, grid, err := h.resolvePayoff(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	payoff := quant.PayoffCurve(typ, side, grid, req.Strike)
	profit := quant.ProfitCurve(typ, side, grid, req.Strike, req.Premium)

	rows := make([]models.PayoffCSVRow, len(grid))
	for i, s := range grid {
		rows[i] = models.PayoffCSVRow{Spot: s, Payoff: payoff[i], Profit: profit[i]}
	}

	if err := h.writeCSV(w, "payoff", &rows); err != nil {
		logger.Error.Printf("❌ Payoff CSV export failed: %v", err)
		return
	}
	logger.Debug.Printf("📁 Exported %d payoff rows for %s %s K=%.2f", len(rows), side, typ, req.Strike)
}

// StrategyCSVHandler exports a strategy's combined profit grid. Accepts the
// same query parameters as the strategy endpoint.
func (h *Handler) StrategyCSVHandler(w http.ResponseWriter, r *http.Request) {
	if enableCORS(w, r, "GET") {
		return
	}

	strat, grid, err := h.resolveStrategy(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	combined := strategy.ProfitCurve(strat.Legs, grid)
	rows := make([]models.StrategyCSVRow, len(grid))
	for i, s := range grid {
		rows[i] = models.StrategyCSVRow{Spot: s, CombinedProfit: combined[i]}
	}

	if err := h.writeCSV(w, "strategy", &rows); err != nil {
		logger.Error.Printf("❌ Strategy CSV export failed: %v", err)
		return
	}
	logger.Debug.Printf("📁 Exported %d strategy rows for %s", len(rows), strat.Name)
}
