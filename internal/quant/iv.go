package quant

import (
	"fmt"
	"math"
)

const (
	ivTolerance     = 1e-6
	ivMaxIterations = 100
	ivMinVol        = 0.01
	ivMaxVol        = 3.0
)

// ImpliedVolatility inverts the Black-Scholes price with Newton-Raphson on
// vega. The contract must be a plain call or put with positive maturity; the
// solve is clamped to volatilities in [0.01, 3.0].
func ImpliedVolatility(typ OptionType, marketPrice, s, k, r, t float64) (float64, error) {
	if typ != Call && typ != Put {
		return 0, fmt.Errorf("implied volatility %q: %w", typ, ErrUnknownOptionType)
	}
	if err := ValidatePricingInputs(s, k, r, 0, t); err != nil {
		return 0, err
	}
	if t == 0 {
		return 0, fmt.Errorf("implied volatility at expiry: %w", ErrInvalidMaturity)
	}
	if marketPrice <= 0 {
		return 0, fmt.Errorf("market price %.4f: %w", marketPrice, ErrInvalidPremium)
	}

	intrinsic := IntrinsicValue(typ, s, k)
	if marketPrice < intrinsic {
		return 0, fmt.Errorf("market price %.4f below intrinsic %.4f: %w", marketPrice, intrinsic, ErrNoConvergence)
	}

	vol := initialVolGuess(marketPrice, s, k, t)

	for i := 0; i < ivMaxIterations; i++ {
		var price float64
		if typ == Call {
			price = BSCallPrice(s, k, r, vol, t)
		} else {
			price = BSPutPrice(s, k, r, vol, t)
		}

		diff := price - marketPrice
		if math.Abs(diff) < ivTolerance {
			return vol, nil
		}

		vega := s * NormPDF(d1(s, k, r, vol, t)) * math.Sqrt(t)
		if vega < 1e-10 {
			break
		}

		vol -= diff / vega
		if vol < ivMinVol {
			vol = ivMinVol
		} else if vol > ivMaxVol {
			vol = ivMaxVol
		}
	}

	return 0, fmt.Errorf("after %d iterations: %w", ivMaxIterations, ErrNoConvergence)
}

// initialVolGuess seeds the solver with the Brenner-Subrahmanyam approximation,
// widened when the contract is far from the money where the approximation sags.
func initialVolGuess(marketPrice, s, k, t float64) float64 {
	guess := math.Sqrt(2*math.Pi/t) * marketPrice / s

	moneyness := s / k
	if moneyness > 1.2 || moneyness < 0.8 {
		guess *= 1.5
	}

	if guess < 0.05 {
		guess = 0.05
	} else if guess > 1.0 {
		guess = 1.0
	}
	return guess
}
