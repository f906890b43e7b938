package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/jwaldner/tetra/internal/logger"
	"github.com/jwaldner/tetra/internal/models"
	"github.com/jwaldner/tetra/internal/quant"
	"github.com/jwaldner/tetra/internal/strategy"
	"github.com/wcharczuk/go-chart/v2"
)

// renderChart draws labeled curves into a PNG and writes it to the response
func (h *Handler) renderChart(w http.ResponseWriter, start time.Time, title, xLabel, yLabel string, curves []models.CurveData) {
	series := make([]chart.Series, 0, len(curves))
	for _, c := range curves {
		series = append(series, chart.ContinuousSeries{
			Name:    c.Label,
			XValues: c.X,
			YValues: c.Y,
		})
	}

	ch := chart.Chart{
		Title:      title,
		Width:      h.config.Chart.Width,
		Height:     h.config.Chart.Height,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 24}},
		XAxis:      chart.XAxis{Name: xLabel},
		YAxis:      chart.YAxis{Name: yLabel},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		logger.Error.Printf("❌ Chart render failed for %q: %v", title, err)
		http.Error(w, "chart rendering failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(buf.Bytes())
	logger.Debug.Printf("📊 Rendered chart %q: %d bytes in %v", title, buf.Len(), time.Since(start))
}

// PayoffChartHandler renders the single-option payoff diagram as PNG.
// Accepts the same query parameters as the payoff endpoint.
func (h *Handler) PayoffChartHandler(w http.ResponseWriter, r *http.Request) {
	if enableCORS(w, r, "GET") {
		return
	}
	start := time.Now()

	typ, side, req, grid, err := h.resolvePayoff(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	curves := []models.CurveData{
		{Label: "Payoff at expiration", X: grid, Y: quant.PayoffCurve(typ, side, grid, req.Strike)},
		{Label: "Profit after premium", X: grid, Y: quant.ProfitCurve(typ, side, grid, req.Strike, req.Premium)},
	}
	title := fmt.Sprintf("%s %s, K=%.0f, premium $%.2f", side, typ, req.Strike, req.Premium)
	h.renderChart(w, start, title, "Underlying Price at Expiration ($)", "Payoff / Profit ($)", curves)
}

// StrategyChartHandler renders a strategy's combined and per-leg profit
// curves as PNG. Accepts the same query parameters as the strategy endpoint.
func (h *Handler) StrategyChartHandler(w http.ResponseWriter, r *http.Request) {
	if enableCORS(w, r, "GET") {
		return
	}
	start := time.Now()

	strat, grid, err := h.resolveStrategy(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	curves := []models.CurveData{
		{Label: "Combined", X: grid, Y: strategy.ProfitCurve(strat.Legs, grid)},
	}
	curves = append(curves, toCurveData(strategy.LegCurves(strat.Legs, grid))...)
	h.renderChart(w, start, strat.DisplayName, "Underlying Price at Expiration ($)", "Profit ($)", curves)
}
