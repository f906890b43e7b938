package quant

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestPayoffParityProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("call payoff minus put payoff equals S minus K", prop.ForAll(
		func(s, k float64) bool {
			diff := CallPayoff(s, k) - PutPayoff(s, k)
			return math.Abs(diff-(s-k)) < 1e-12
		},
		gen.Float64Range(0, 500),
		gen.Float64Range(1, 500),
	))

	properties.Property("payoffs are never negative", prop.ForAll(
		func(s, k float64) bool {
			return CallPayoff(s, k) >= 0 && PutPayoff(s, k) >= 0
		},
		gen.Float64Range(0, 500),
		gen.Float64Range(1, 500),
	))

	properties.Property("binary payoffs are indicators", prop.ForAll(
		func(s, k float64) bool {
			bc := BinaryCallPayoff(s, k)
			bp := BinaryPutPayoff(s, k)
			if bc != 0 && bc != 1 {
				return false
			}
			if bp != 0 && bp != 1 {
				return false
			}
			// Both pay only off the strike, never together
			return s == k || bc+bp == 1
		},
		gen.Float64Range(0, 500),
		gen.Float64Range(1, 500),
	))

	properties.Property("short payoff mirrors long payoff", prop.ForAll(
		func(s, k float64) bool {
			for _, typ := range []OptionType{Call, Put, BinaryCall, BinaryPut} {
				if PayoffAt(typ, Short, s, k) != -PayoffAt(typ, Long, s, k) {
					return false
				}
			}
			return true
		},
		gen.Float64Range(0, 500),
		gen.Float64Range(1, 500),
	))

	properties.TestingRun(t)
}

func TestBlackScholesParityProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("call minus put equals S minus discounted strike", prop.ForAll(
		func(s, k, r, sigma, t64 float64) bool {
			left := BSCallPrice(s, k, r, sigma, t64) - BSPutPrice(s, k, r, sigma, t64)
			right := s - k*math.Exp(-r*t64)
			scale := math.Max(1, math.Max(math.Abs(left), math.Abs(right)))
			return math.Abs(left-right) <= 1e-9*scale
		},
		gen.Float64Range(1, 500),
		gen.Float64Range(1, 500),
		gen.Float64Range(0, 0.20),
		gen.Float64Range(0.01, 2.0),
		gen.Float64Range(0.01, 5.0),
	))

	properties.Property("call price stays inside its no-arbitrage band", prop.ForAll(
		func(s, k, r, sigma, t64 float64) bool {
			price := BSCallPrice(s, k, r, sigma, t64)
			lower := math.Max(s-k*math.Exp(-r*t64), 0)
			return price >= lower-1e-9 && price <= s+1e-9
		},
		gen.Float64Range(1, 500),
		gen.Float64Range(1, 500),
		gen.Float64Range(0, 0.20),
		gen.Float64Range(0.01, 2.0),
		gen.Float64Range(0.01, 5.0),
	))

	properties.Property("put price stays inside its no-arbitrage band", prop.ForAll(
		func(s, k, r, sigma, t64 float64) bool {
			price := BSPutPrice(s, k, r, sigma, t64)
			discounted := k * math.Exp(-r*t64)
			lower := math.Max(discounted-s, 0)
			return price >= lower-1e-9 && price <= discounted+1e-9
		},
		gen.Float64Range(1, 500),
		gen.Float64Range(1, 500),
		gen.Float64Range(0, 0.20),
		gen.Float64Range(0.01, 2.0),
		gen.Float64Range(0.01, 5.0),
	))

	properties.Property("deltas stay inside their bounds", prop.ForAll(
		func(s, k, r, sigma, t64 float64) bool {
			callDelta := CallGreeks(s, k, r, sigma, t64).Delta
			putDelta := PutGreeks(s, k, r, sigma, t64).Delta
			if callDelta < 0 || callDelta > 1 {
				return false
			}
			if putDelta < -1 || putDelta > 0 {
				return false
			}
			// Same d1 on both sides, so the gap is exactly one
			return math.Abs(callDelta-putDelta-1) < 1e-12
		},
		gen.Float64Range(1, 500),
		gen.Float64Range(1, 500),
		gen.Float64Range(0, 0.20),
		gen.Float64Range(0.01, 2.0),
		gen.Float64Range(0.01, 5.0),
	))

	properties.Property("gamma and vega are never negative", prop.ForAll(
		func(s, k, r, sigma, t64 float64) bool {
			for _, g := range []Greeks{CallGreeks(s, k, r, sigma, t64), PutGreeks(s, k, r, sigma, t64)} {
				if g.Gamma < 0 || g.Vega < 0 {
					return false
				}
			}
			return true
		},
		gen.Float64Range(1, 500),
		gen.Float64Range(1, 500),
		gen.Float64Range(0, 0.20),
		gen.Float64Range(0.01, 2.0),
		gen.Float64Range(0.01, 5.0),
	))

	properties.TestingRun(t)
}

func TestParitySolverProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("solved call and put satisfy the identity by construction", prop.ForAll(
		func(s, k, r, t64, price float64) bool {
			call := CallFromParity(price, s, k, r, t64)
			// Plugging the solved call back must recover the original put
			put := PutFromParity(call, s, k, r, t64)
			return math.Abs(put-price) < 1e-9
		},
		gen.Float64Range(1, 500),
		gen.Float64Range(1, 500),
		gen.Float64Range(0, 0.20),
		gen.Float64Range(0.01, 5.0),
		gen.Float64Range(0, 100),
	))

	properties.TestingRun(t)
}
