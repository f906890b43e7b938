package quant

import "fmt"

// Curve is one labeled line of chart data
type Curve struct {
	Label string    `json:"label"`
	X     []float64 `json:"x"`
	Y     []float64 `json:"y"`
}

// priceCurve evaluates one Black-Scholes price line over the spot grid
func priceCurve(typ OptionType, grid []float64, k, r, sigma, t float64, label string) Curve {
	y := make([]float64, len(grid))
	for i, s := range grid {
		if typ == Put {
			y[i] = BSPutPrice(s, k, r, sigma, t)
		} else {
			y[i] = BSCallPrice(s, k, r, sigma, t)
		}
	}
	return Curve{Label: label, X: grid, Y: y}
}

// PriceVsSpotByMaturity sweeps time to expiry, one curve per maturity
func PriceVsSpotByMaturity(typ OptionType, grid []float64, k, r, sigma float64, maturities []float64) []Curve {
	curves := make([]Curve, 0, len(maturities))
	for _, t := range maturities {
		curves = append(curves, priceCurve(typ, grid, k, r, sigma, t, fmt.Sprintf("T = %.2fy", t)))
	}
	return curves
}

// PriceVsSpotByVolatility sweeps volatility, one curve per level
func PriceVsSpotByVolatility(typ OptionType, grid []float64, k, r, t float64, volatilities []float64) []Curve {
	curves := make([]Curve, 0, len(volatilities))
	for _, sigma := range volatilities {
		curves = append(curves, priceCurve(typ, grid, k, r, sigma, t, fmt.Sprintf("vol = %.0f%%", sigma*100)))
	}
	return curves
}

// PriceVsSpotByRate sweeps the risk-free rate, one curve per level
func PriceVsSpotByRate(typ OptionType, grid []float64, k, sigma, t float64, rates []float64) []Curve {
	curves := make([]Curve, 0, len(rates))
	for _, r := range rates {
		curves = append(curves, priceCurve(typ, grid, k, r, sigma, t, fmt.Sprintf("r = %.0f%%", r*100)))
	}
	return curves
}

// PriceVsSpotByStrike sweeps the strike, one curve per level
func PriceVsSpotByStrike(typ OptionType, grid []float64, r, sigma, t float64, strikes []float64) []Curve {
	curves := make([]Curve, 0, len(strikes))
	for _, k := range strikes {
		curves = append(curves, priceCurve(typ, grid, k, r, sigma, t, fmt.Sprintf("K = %.0f", k)))
	}
	return curves
}

// DeltaCurve plots delta against the underlying price
func DeltaCurve(typ OptionType, grid []float64, k, r, sigma, t float64) Curve {
	y := make([]float64, len(grid))
	for i, s := range grid {
		if typ == Put {
			y[i] = PutGreeks(s, k, r, sigma, t).Delta
		} else {
			y[i] = CallGreeks(s, k, r, sigma, t).Delta
		}
	}
	return Curve{Label: "delta", X: grid, Y: y}
}

// TimeDecayCurves shows option value eroding over the final year, one curve
// each for an at-the-money, 10% out-of-the-money and 10% in-the-money spot.
// X is calendar days remaining, descending toward expiry.
func TimeDecayCurves(typ OptionType, k, r, sigma float64) []Curve {
	type scenario struct {
		label string
		spot  float64
	}

	otm, itm := 0.9*k, 1.1*k
	if typ == Put {
		otm, itm = 1.1*k, 0.9*k
	}
	scenarios := []scenario{
		{label: "ATM", spot: k},
		{label: "OTM", spot: otm},
		{label: "ITM", spot: itm},
	}

	const days = 365
	curves := make([]Curve, 0, len(scenarios))
	for _, sc := range scenarios {
		x := make([]float64, 0, days+1)
		y := make([]float64, 0, days+1)
		for d := days; d >= 0; d-- {
			t := float64(d) / 365.0
			x = append(x, float64(d))
			if typ == Put {
				y = append(y, BSPutPrice(sc.spot, k, r, sigma, t))
			} else {
				y = append(y, BSCallPrice(sc.spot, k, r, sigma, t))
			}
		}
		curves = append(curves, Curve{Label: sc.label, X: x, Y: y})
	}
	return curves
}

// VolatilitySmile is the stylized quadratic smile around the at-the-money
// strike used on the factors page: vol(K) = atmVol + 0.001*(K - atmStrike)^2
func VolatilitySmile(atmVol, atmStrike float64, strikes []float64) Curve {
	y := make([]float64, len(strikes))
	for i, k := range strikes {
		diff := k - atmStrike
		y[i] = atmVol + 0.001*diff*diff
	}
	return Curve{Label: "implied vol", X: strikes, Y: y}
}

// DiscountedStrikeCurve plots the present value of the strike against
// remaining maturity
func DiscountedStrikeCurve(k, r float64, maturities []float64) Curve {
	y := make([]float64, len(maturities))
	for i, t := range maturities {
		y[i] = DiscountedStrike(k, r, t)
	}
	return Curve{Label: "PV of strike", X: maturities, Y: y}
}
