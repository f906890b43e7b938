package handlers

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/jwaldner/tetra/internal/logger"
	"github.com/jwaldner/tetra/internal/models"
	"github.com/jwaldner/tetra/internal/quant"
	"github.com/jwaldner/tetra/internal/strategy"
)

// defaultBuildParams picks strikes around the configured default strike
func (h *Handler) defaultBuildParams(name string) strategy.BuildParams {
	k := h.config.Pricing.Strike
	switch name {
	case "straddle":
		return strategy.BuildParams{Strike1: k}
	case "strangle", "risk-reversal":
		return strategy.BuildParams{Strike1: k - 10, Strike2: k + 10}
	case "butterfly":
		return strategy.BuildParams{Strike1: k - 10, Strike2: k, Strike3: k + 10}
	default:
		return strategy.BuildParams{Strike1: k - 5, Strike2: k + 5}
	}
}

// fillLegPremiums prices zero-premium legs with Black-Scholes at the
// configured market defaults, rounded to cents for display.
func (h *Handler) fillLegPremiums(strat *strategy.Strategy) {
	p := h.config.Pricing
	for i := range strat.Legs {
		leg := &strat.Legs[i]
		if leg.Premium != 0 {
			continue
		}
		price, err := quant.Price(leg.Type, p.Spot, leg.Strike, p.Rate, p.Volatility, p.MaturityYears)
		if err != nil {
			continue
		}
		leg.Premium = math.Round(price*100) / 100
		logger.Debug.Printf("💰 Derived premium $%.2f for %s %s K=%.0f", leg.Premium, leg.Side, leg.Type, leg.Strike)
	}
}

// resolveStrategy decodes a catalog strategy request with config defaults
func (h *Handler) resolveStrategy(r *http.Request) (strategy.Strategy, []float64, error) {
	req := models.StrategyRequest{
		Name:     "bull-call-spread",
		MinPrice: h.config.Grid.MinPrice,
		MaxPrice: h.config.Grid.MaxPrice,
		Step:     h.config.Grid.Step,
	}
	if err := h.decoder.Decode(&req, r.URL.Query()); err != nil {
		return strategy.Strategy{}, nil, err
	}

	params := h.defaultBuildParams(req.Name)
	if req.Strike1 > 0 {
		params.Strike1 = req.Strike1
	}
	if req.Strike2 > 0 {
		params.Strike2 = req.Strike2
	}
	if req.Strike3 > 0 {
		params.Strike3 = req.Strike3
	}
	if req.Premium1 > 0 {
		params.Premium1 = req.Premium1
	}
	if req.Premium2 > 0 {
		params.Premium2 = req.Premium2
	}
	if req.Premium3 > 0 {
		params.Premium3 = req.Premium3
	}

	strat, err := strategy.Build(req.Name, params)
	if err != nil {
		return strategy.Strategy{}, nil, err
	}
	h.fillLegPremiums(&strat)

	grid := quant.PriceGrid(req.MinPrice, req.MaxPrice, req.Step)
	if grid == nil {
		return strategy.Strategy{}, nil, errBadGrid
	}
	return strat, grid, nil
}

// decodeCustomStrategy reads a POST body of user-assembled legs
func (h *Handler) decodeCustomStrategy(r *http.Request) (strategy.Strategy, []float64, error) {
	var req models.CustomStrategyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return strategy.Strategy{}, nil, fmt.Errorf("invalid request body: %w", err)
	}

	legs := make([]strategy.Leg, 0, len(req.Legs))
	for i, l := range req.Legs {
		typ, err := quant.ParseOptionType(l.Type)
		if err != nil {
			return strategy.Strategy{}, nil, fmt.Errorf("leg %d: %w", i+1, err)
		}
		side, err := quant.ParseSide(l.Side)
		if err != nil {
			return strategy.Strategy{}, nil, fmt.Errorf("leg %d: %w", i+1, err)
		}
		if l.Strike <= 0 {
			return strategy.Strategy{}, nil, fmt.Errorf("leg %d: %w", i+1, quant.ErrInvalidStrike)
		}
		legs = append(legs, strategy.Leg{
			Type:     typ,
			Side:     side,
			Strike:   l.Strike,
			Premium:  l.Premium,
			Quantity: l.Quantity,
		})
	}

	strat, err := strategy.Custom(legs)
	if err != nil {
		return strategy.Strategy{}, nil, err
	}

	min, max, step := req.MinPrice, req.MaxPrice, req.Step
	if max <= min {
		min, max = h.config.Grid.MinPrice, h.config.Grid.MaxPrice
	}
	if step <= 0 {
		step = h.config.Grid.Step
	}
	grid := quant.PriceGrid(min, max, step)
	if grid == nil {
		return strategy.Strategy{}, nil, errBadGrid
	}
	return strat, grid, nil
}

// StrategyHandler serves strategy curves and metrics. GET builds a catalog
// strategy from query parameters; POST accepts custom legs in the body.
func (h *Handler) StrategyHandler(w http.ResponseWriter, r *http.Request) {
	if enableCORS(w, r, "GET, POST") {
		return
	}
	start := time.Now()

	var (
		strat strategy.Strategy
		grid  []float64
		err   error
	)
	if r.Method == http.MethodPost {
		strat, grid, err = h.decodeCustomStrategy(r)
	} else {
		strat, grid, err = h.resolveStrategy(r)
	}
	if err != nil {
		h.writeError(w, r, start, http.StatusBadRequest, err.Error())
		return
	}

	metrics, err := strategy.ComputeMetrics(strat.Legs, grid)
	if err != nil {
		h.writeError(w, r, start, http.StatusBadRequest, err.Error())
		return
	}

	data := models.StrategyData{
		Name:            strat.Name,
		DisplayName:     strat.DisplayName,
		Outlook:         strat.Outlook,
		Description:     strat.Description,
		RewardNote:      strat.RewardNote,
		RiskNote:        strat.RiskNote,
		Legs:            toModelLegs(strat.Legs),
		Grid:            grid,
		Combined:        cleanSlice(strategy.ProfitCurve(strat.Legs, grid)),
		LegCurves:       cleanCurves(toCurveData(strategy.LegCurves(strat.Legs, grid))),
		NetPremium:      metrics.NetPremium,
		MaxProfit:       metrics.MaxProfit,
		MaxLoss:         metrics.MaxLoss,
		ProfitUnbounded: metrics.ProfitUnbounded,
		LossUnbounded:   metrics.LossUnbounded,
		Breakevens:      metrics.Breakevens,
		FieldMetadata:   h.legFieldMetadata(),
	}
	for i, leg := range data.Legs {
		data.LegRows = append(data.LegRows, h.legRow(i+1, leg))
	}

	logger.Debug.Printf("📊 Strategy %s: %d legs, net premium %.2f, %d breakevens",
		strat.Name, len(strat.Legs), metrics.NetPremium, len(metrics.Breakevens))
	h.writeData(w, r, start, data)
}

// StrategiesHandler lists the catalog with descriptions
func (h *Handler) StrategiesHandler(w http.ResponseWriter, r *http.Request) {
	if enableCORS(w, r, "GET") {
		return
	}
	start := time.Now()

	catalog := strategy.Catalog()
	infos := make([]models.StrategyInfo, 0, len(catalog))
	for _, s := range catalog {
		infos = append(infos, models.StrategyInfo{
			Name:        s.Name,
			DisplayName: s.DisplayName,
			Outlook:     s.Outlook,
			Description: s.Description,
			RewardNote:  s.RewardNote,
			RiskNote:    s.RiskNote,
			Legs:        toModelLegs(s.Legs),
		})
	}
	h.writeData(w, r, start, infos)
}

func toModelLegs(legs []strategy.Leg) []models.StrategyLeg {
	out := make([]models.StrategyLeg, 0, len(legs))
	for _, l := range legs {
		qty := l.Quantity
		if qty == 0 {
			qty = 1
		}
		out = append(out, models.StrategyLeg{
			Type:     string(l.Type),
			Side:     string(l.Side),
			Strike:   l.Strike,
			Premium:  l.Premium,
			Quantity: qty,
		})
	}
	return out
}

func toCurveData(curves []quant.Curve) []models.CurveData {
	out := make([]models.CurveData, 0, len(curves))
	for _, c := range curves {
		out = append(out, models.CurveData{Label: c.Label, X: c.X, Y: c.Y})
	}
	return out
}
