package quant

import (
	"fmt"
	"math"
)

// Greeks holds the closed-form Black-Scholes sensitivities. Theta and vega are
// per year and per unit of volatility; divide by 365 and 100 for the per-day
// and per-percent conventions quoted on trading screens.
type Greeks struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"`
	Vega  float64 `json:"vega"`
	Rho   float64 `json:"rho"`
}

// ThetaPerDay returns theta in value-per-calendar-day terms
func (g Greeks) ThetaPerDay() float64 {
	return g.Theta / 365.0
}

// ValidatePricingInputs rejects parameter combinations outside the pricing
// domain. Zero volatility and zero maturity are allowed; pricing degrades to
// intrinsic value there.
func ValidatePricingInputs(s, k, r, sigma, t float64) error {
	if s <= 0 {
		return fmt.Errorf("spot %.4f: %w", s, ErrInvalidSpot)
	}
	if k <= 0 {
		return fmt.Errorf("strike %.4f: %w", k, ErrInvalidStrike)
	}
	if sigma < 0 {
		return fmt.Errorf("volatility %.4f: %w", sigma, ErrInvalidVolatility)
	}
	if t < 0 {
		return fmt.Errorf("maturity %.4f: %w", t, ErrInvalidMaturity)
	}
	_ = r // any real rate is admissible
	return nil
}

func d1(s, k, r, sigma, t float64) float64 {
	return (math.Log(s/k) + (r+sigma*sigma/2)*t) / (sigma * math.Sqrt(t))
}

func d2(s, k, r, sigma, t float64) float64 {
	return d1(s, k, r, sigma, t) - sigma*math.Sqrt(t)
}

// BSCallPrice returns the Black-Scholes price of a European call.
// At zero maturity or zero volatility the price collapses to intrinsic value.
func BSCallPrice(s, k, r, sigma, t float64) float64 {
	if t <= 0 || sigma <= 0 {
		return CallPayoff(s, k)
	}
	dOne := d1(s, k, r, sigma, t)
	dTwo := dOne - sigma*math.Sqrt(t)
	return s*NormCDF(dOne) - k*math.Exp(-r*t)*NormCDF(dTwo)
}

// BSPutPrice returns the Black-Scholes price of a European put.
// At zero maturity or zero volatility the price collapses to intrinsic value.
func BSPutPrice(s, k, r, sigma, t float64) float64 {
	if t <= 0 || sigma <= 0 {
		return PutPayoff(s, k)
	}
	dOne := d1(s, k, r, sigma, t)
	dTwo := dOne - sigma*math.Sqrt(t)
	return k*math.Exp(-r*t)*NormCDF(-dTwo) - s*NormCDF(-dOne)
}

// Price dispatches to the Black-Scholes price for plain calls and puts.
// Binary contracts are payoff-only in this kernel and are rejected here.
func Price(typ OptionType, s, k, r, sigma, t float64) (float64, error) {
	if err := ValidatePricingInputs(s, k, r, sigma, t); err != nil {
		return 0, err
	}
	switch typ {
	case Call:
		return BSCallPrice(s, k, r, sigma, t), nil
	case Put:
		return BSPutPrice(s, k, r, sigma, t), nil
	}
	return 0, fmt.Errorf("pricing %q: %w", typ, ErrUnknownOptionType)
}

// CallGreeks returns the closed-form sensitivities of a European call
func CallGreeks(s, k, r, sigma, t float64) Greeks {
	if t <= 0 || sigma <= 0 {
		g := Greeks{}
		if s > k {
			g.Delta = 1
		}
		return g
	}
	dOne := d1(s, k, r, sigma, t)
	dTwo := dOne - sigma*math.Sqrt(t)
	sqrtT := math.Sqrt(t)
	discount := math.Exp(-r * t)

	return Greeks{
		Delta: NormCDF(dOne),
		Gamma: NormPDF(dOne) / (s * sigma * sqrtT),
		Theta: -(s*NormPDF(dOne)*sigma)/(2*sqrtT) - r*k*discount*NormCDF(dTwo),
		Vega:  s * NormPDF(dOne) * sqrtT,
		Rho:   k * t * discount * NormCDF(dTwo),
	}
}

// PutGreeks returns the closed-form sensitivities of a European put
func PutGreeks(s, k, r, sigma, t float64) Greeks {
	if t <= 0 || sigma <= 0 {
		g := Greeks{}
		if s < k {
			g.Delta = -1
		}
		return g
	}
	dOne := d1(s, k, r, sigma, t)
	dTwo := dOne - sigma*math.Sqrt(t)
	sqrtT := math.Sqrt(t)
	discount := math.Exp(-r * t)

	return Greeks{
		Delta: NormCDF(dOne) - 1,
		Gamma: NormPDF(dOne) / (s * sigma * sqrtT),
		Theta: -(s*NormPDF(dOne)*sigma)/(2*sqrtT) + r*k*discount*NormCDF(-dTwo),
		Vega:  s * NormPDF(dOne) * sqrtT,
		Rho:   -k * t * discount * NormCDF(-dTwo),
	}
}

// GreeksFor dispatches to CallGreeks or PutGreeks
func GreeksFor(typ OptionType, s, k, r, sigma, t float64) (Greeks, error) {
	if err := ValidatePricingInputs(s, k, r, sigma, t); err != nil {
		return Greeks{}, err
	}
	switch typ {
	case Call:
		return CallGreeks(s, k, r, sigma, t), nil
	case Put:
		return PutGreeks(s, k, r, sigma, t), nil
	}
	return Greeks{}, fmt.Errorf("greeks %q: %w", typ, ErrUnknownOptionType)
}
