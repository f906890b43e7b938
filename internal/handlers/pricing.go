package handlers

import (
	"net/http"
	"time"

	"github.com/jwaldner/tetra/internal/logger"
	"github.com/jwaldner/tetra/internal/models"
	"github.com/jwaldner/tetra/internal/quant"
)

// resolvePayoff decodes a payoff request with config defaults and builds the grid
func (h *Handler) resolvePayoff(r *http.Request) (quant.OptionType, quant.Side, models.PayoffRequest, []float64, error) {
	req := models.PayoffRequest{
		OptionType: string(quant.Call),
		Side:       string(quant.Long),
		Spot:       h.config.Pricing.Spot,
		Strike:     h.config.Pricing.Strike,
		Premium:    h.config.Pricing.Premium,
		MinPrice:   h.config.Grid.MinPrice,
		MaxPrice:   h.config.Grid.MaxPrice,
		Step:       h.config.Grid.Step,
	}
	if err := h.decoder.Decode(&req, r.URL.Query()); err != nil {
		return "", "", req, nil, err
	}

	typ, err := quant.ParseOptionType(req.OptionType)
	if err != nil {
		return "", "", req, nil, err
	}
	side, err := quant.ParseSide(req.Side)
	if err != nil {
		return "", "", req, nil, err
	}
	if req.Strike <= 0 {
		return "", "", req, nil, quant.ErrInvalidStrike
	}
	if req.Premium < 0 {
		return "", "", req, nil, quant.ErrInvalidPremium
	}

	grid := quant.PriceGrid(req.MinPrice, req.MaxPrice, req.Step)
	if grid == nil {
		return "", "", req, nil, errBadGrid
	}
	return typ, side, req, grid, nil
}

// PayoffHandler serves single-option payoff and profit curves plus contract analytics
func (h *Handler) PayoffHandler(w http.ResponseWriter, r *http.Request) {
	if enableCORS(w, r, "GET") {
		return
	}
	start := time.Now()

	typ, side, req, grid, err := h.resolvePayoff(r)
	if err != nil {
		h.writeError(w, r, start, http.StatusBadRequest, err.Error())
		return
	}

	data := models.PayoffData{
		OptionType:     string(typ),
		Side:           string(side),
		Spot:           req.Spot,
		Strike:         req.Strike,
		Premium:        req.Premium,
		Grid:           grid,
		Payoff:         quant.PayoffCurve(typ, side, grid, req.Strike),
		Profit:         quant.ProfitCurve(typ, side, grid, req.Strike, req.Premium),
		Breakeven:      quant.Breakeven(typ, req.Strike, req.Premium),
		IntrinsicValue: quant.IntrinsicValue(typ, req.Spot, req.Strike),
		TimeValue:      quant.TimeValue(typ, req.Spot, req.Strike, req.Premium),
		Moneyness:      quant.MoneynessStatus(typ, req.Spot, req.Strike),
	}
	data.Summary = h.payoffSummary(&data)
	data.FieldMetadata = h.payoffFieldMetadata()

	logger.Debug.Printf("📊 Payoff: %s %s K=%.2f premium=%.2f (%d grid points)",
		side, typ, req.Strike, req.Premium, len(grid))
	h.writeData(w, r, start, data)
}

// PriceHandler serves the Black-Scholes price, Greeks, and contract analytics
func (h *Handler) PriceHandler(w http.ResponseWriter, r *http.Request) {
	if enableCORS(w, r, "GET") {
		return
	}
	start := time.Now()

	req := models.PriceRequest{
		OptionType:    string(quant.Call),
		Spot:          h.config.Pricing.Spot,
		Strike:        h.config.Pricing.Strike,
		Rate:          h.config.Pricing.Rate,
		Volatility:    h.config.Pricing.Volatility,
		MaturityYears: h.config.Pricing.MaturityYears,
	}
	if err := h.decoder.Decode(&req, r.URL.Query()); err != nil {
		h.writeError(w, r, start, http.StatusBadRequest, "invalid query parameters: "+err.Error())
		return
	}

	if req.UseCurveRate {
		req.Rate = h.rates.RateFor(req.MaturityYears)
		logger.Debug.Printf("🏛️ Using curve rate %.4f for T=%.2fy", req.Rate, req.MaturityYears)
	}

	typ, err := quant.ParseOptionType(req.OptionType)
	if err != nil {
		h.writeError(w, r, start, http.StatusBadRequest, err.Error())
		return
	}
	if err := quant.ValidatePricingInputs(req.Spot, req.Strike, req.Rate, req.Volatility, req.MaturityYears); err != nil {
		h.writeError(w, r, start, http.StatusBadRequest, err.Error())
		return
	}

	price, err := quant.Price(typ, req.Spot, req.Strike, req.Rate, req.Volatility, req.MaturityYears)
	if err != nil {
		h.writeError(w, r, start, http.StatusBadRequest, err.Error())
		return
	}
	greeks, err := quant.GreeksFor(typ, req.Spot, req.Strike, req.Rate, req.Volatility, req.MaturityYears)
	if err != nil {
		h.writeError(w, r, start, http.StatusBadRequest, err.Error())
		return
	}

	data := models.PriceData{
		OptionType:       string(typ),
		Spot:             req.Spot,
		Strike:           req.Strike,
		Rate:             req.Rate,
		Volatility:       req.Volatility,
		MaturityYears:    req.MaturityYears,
		Price:            cleanFloat(price),
		Delta:            cleanFloat(greeks.Delta),
		Gamma:            cleanFloat(greeks.Gamma),
		Theta:            cleanFloat(greeks.Theta),
		ThetaPerDay:      cleanFloat(greeks.ThetaPerDay()),
		Vega:             cleanFloat(greeks.Vega),
		Rho:              cleanFloat(greeks.Rho),
		IntrinsicValue:   quant.IntrinsicValue(typ, req.Spot, req.Strike),
		TimeValue:        quant.TimeValue(typ, req.Spot, req.Strike, price),
		Moneyness:        quant.MoneynessStatus(typ, req.Spot, req.Strike),
		Breakeven:        quant.Breakeven(typ, req.Strike, price),
		DiscountedStrike: quant.DiscountedStrike(req.Strike, req.Rate, req.MaturityYears),
	}
	data.Summary = h.priceSummary(&data)
	data.FieldMetadata = h.priceFieldMetadata()

	h.writeData(w, r, start, data)
}

// IVHandler solves implied volatility from a market price
func (h *Handler) IVHandler(w http.ResponseWriter, r *http.Request) {
	if enableCORS(w, r, "GET") {
		return
	}
	start := time.Now()

	req := models.IVRequest{
		OptionType:    string(quant.Call),
		Spot:          h.config.Pricing.Spot,
		Strike:        h.config.Pricing.Strike,
		Rate:          h.config.Pricing.Rate,
		MaturityYears: h.config.Pricing.MaturityYears,
	}
	if err := h.decoder.Decode(&req, r.URL.Query()); err != nil {
		h.writeError(w, r, start, http.StatusBadRequest, "invalid query parameters: "+err.Error())
		return
	}

	typ, err := quant.ParseOptionType(req.OptionType)
	if err != nil {
		h.writeError(w, r, start, http.StatusBadRequest, err.Error())
		return
	}

	iv, err := quant.ImpliedVolatility(typ, req.MarketPrice, req.Spot, req.Strike, req.Rate, req.MaturityYears)
	if err != nil {
		h.writeError(w, r, start, http.StatusBadRequest, err.Error())
		return
	}

	// Reprice at the solved volatility so the UI can show the fit
	repriced, err := quant.Price(typ, req.Spot, req.Strike, req.Rate, iv, req.MaturityYears)
	if err != nil {
		h.writeError(w, r, start, http.StatusBadRequest, err.Error())
		return
	}

	data := models.IVData{
		OptionType:        string(typ),
		MarketPrice:       req.MarketPrice,
		ImpliedVolatility: cleanFloat(iv),
		RepricedValue:     cleanFloat(repriced),
	}
	data.Summary = models.FormattedRow{
		"option_type":        h.formatText(data.OptionType),
		"market_price":       h.formatCurrency(data.MarketPrice),
		"implied_volatility": h.formatPercentage(data.ImpliedVolatility),
		"repriced_value":     h.formatCurrency(data.RepricedValue),
	}
	data.FieldMetadata = h.ivFieldMetadata()

	logger.Info.Printf("🔍 IV solve: %s price=%.2f -> vol=%.4f", typ, req.MarketPrice, iv)
	h.writeData(w, r, start, data)
}

// ParityHandler verifies put-call parity and optionally solves one side from the other
func (h *Handler) ParityHandler(w http.ResponseWriter, r *http.Request) {
	if enableCORS(w, r, "GET") {
		return
	}
	start := time.Now()

	req := models.ParityRequest{
		Spot:          h.config.Pricing.Spot,
		Strike:        h.config.Pricing.Strike,
		Rate:          h.config.Pricing.Rate,
		Volatility:    h.config.Pricing.Volatility,
		MaturityYears: h.config.Pricing.MaturityYears,
	}
	if err := h.decoder.Decode(&req, r.URL.Query()); err != nil {
		h.writeError(w, r, start, http.StatusBadRequest, "invalid query parameters: "+err.Error())
		return
	}
	if err := quant.ValidatePricingInputs(req.Spot, req.Strike, req.Rate, req.Volatility, req.MaturityYears); err != nil {
		h.writeError(w, r, start, http.StatusBadRequest, err.Error())
		return
	}

	rep := quant.CheckParity(req.Spot, req.Strike, req.Rate, req.Volatility, req.MaturityYears)
	data := models.ParityData{
		CallPrice:        rep.CallPrice,
		PutPrice:         rep.PutPrice,
		LeftSide:         rep.LeftSide,
		RightSide:        rep.RightSide,
		Gap:              rep.Gap,
		DiscountedStrike: rep.DiscountedStrike,
		Holds:            rep.Holds,
	}

	switch req.Known {
	case "call":
		data.SolvedFor = "put"
		data.SolvedPrice = quant.PutFromParity(req.KnownPrice, req.Spot, req.Strike, req.Rate, req.MaturityYears)
	case "put":
		data.SolvedFor = "call"
		data.SolvedPrice = quant.CallFromParity(req.KnownPrice, req.Spot, req.Strike, req.Rate, req.MaturityYears)
	case "":
	default:
		h.writeError(w, r, start, http.StatusBadRequest, "known must be \"call\" or \"put\"")
		return
	}

	holds := "NO"
	if data.Holds {
		holds = "YES"
	}
	data.Summary = models.FormattedRow{
		"call_price":        h.formatCurrency(data.CallPrice),
		"put_price":         h.formatCurrency(data.PutPrice),
		"left_side":         h.formatCurrency(data.LeftSide),
		"right_side":        h.formatCurrency(data.RightSide),
		"gap":               h.formatNumber(data.Gap),
		"discounted_strike": h.formatCurrency(data.DiscountedStrike),
		"holds":             h.formatText(holds),
	}
	data.FieldMetadata = h.parityFieldMetadata()

	h.writeData(w, r, start, data)
}
