package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jwaldner/tetra/internal/logger"
	"github.com/jwaldner/tetra/internal/models"
	"github.com/jwaldner/tetra/internal/quant"
)

// CurvesHandler serves the sensitivity curve families for the factors page.
// Each family sweeps one pricing input while the others stay at the
// requested (or configured) values.
func (h *Handler) CurvesHandler(w http.ResponseWriter, r *http.Request) {
	if enableCORS(w, r, "GET") {
		return
	}
	start := time.Now()

	p := h.config.Pricing
	req := models.CurvesRequest{
		Family:        "maturity",
		OptionType:    "call",
		Spot:          p.Spot,
		Strike:        p.Strike,
		Rate:          p.Rate,
		Volatility:    p.Volatility,
		MaturityYears: p.MaturityYears,
	}
	if err := h.decoder.Decode(&req, r.URL.Query()); err != nil {
		h.writeError(w, r, start, http.StatusBadRequest, err.Error())
		return
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

	grid := quant.PriceGrid(h.config.Grid.MinPrice, h.config.Grid.MaxPrice, h.config.Grid.Step)
	sweeps := h.config.Curves

	var (
		curves []quant.Curve
		xLabel = "Underlying Price ($)"
		yLabel = "Option Price ($)"
	)
	switch req.Family {
	case "maturity":
		curves = quant.PriceVsSpotByMaturity(typ, grid, req.Strike, req.Rate, req.Volatility, sweeps.Maturities)
	case "volatility":
		curves = quant.PriceVsSpotByVolatility(typ, grid, req.Strike, req.Rate, req.MaturityYears, sweeps.Volatilities)
	case "rate":
		curves = quant.PriceVsSpotByRate(typ, grid, req.Strike, req.Volatility, req.MaturityYears, sweeps.Rates)
	case "strike":
		curves = quant.PriceVsSpotByStrike(typ, grid, req.Rate, req.Volatility, req.MaturityYears, sweeps.Strikes)
	case "delta":
		curves = []quant.Curve{quant.DeltaCurve(typ, grid, req.Strike, req.Rate, req.Volatility, req.MaturityYears)}
		yLabel = "Delta"
	case "time-decay":
		curves = quant.TimeDecayCurves(typ, req.Strike, req.Rate, req.Volatility)
		xLabel = "Days to Expiration"
	case "smile":
		curves = []quant.Curve{quant.VolatilitySmile(req.Volatility, req.Strike, sweeps.Strikes)}
		xLabel = "Strike ($)"
		yLabel = "Implied Volatility"
	case "pv-strike":
		maturities := quant.Linspace(0, 2, 100)
		curves = []quant.Curve{quant.DiscountedStrikeCurve(req.Strike, req.Rate, maturities)}
		xLabel = "Years to Expiration"
		yLabel = "Present Value of Strike ($)"
	default:
		h.writeError(w, r, start, http.StatusBadRequest, fmt.Sprintf("unknown curve family: %q", req.Family))
		return
	}

	data := models.CurvesData{
		Family:     req.Family,
		OptionType: string(typ),
		Curves:     cleanCurves(toCurveData(curves)),
		XLabel:     xLabel,
		YLabel:     yLabel,
	}

	logger.Debug.Printf("📈 Curves family=%s type=%s: %d curves", req.Family, typ, len(curves))
	h.writeData(w, r, start, data)
}
