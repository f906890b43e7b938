package quant

import (
	"math"
	"strings"
)

// OptionType identifies the contract flavor
type OptionType string

const (
	Call       OptionType = "call"
	Put        OptionType = "put"
	BinaryCall OptionType = "binary-call"
	BinaryPut  OptionType = "binary-put"
)

// Side identifies the position direction
type Side string

const (
	Long  Side = "long"
	Short Side = "short"
)

// Moneyness status labels
const (
	StatusITM = "ITM"
	StatusATM = "ATM"
	StatusOTM = "OTM"
)

// atmBand is the relative distance from the strike still counted as at-the-money
const atmBand = 0.005

// ParseOptionType normalizes user input like "Call", "binary_put" to an OptionType
func ParseOptionType(s string) (OptionType, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, "_", "-")
	normalized = strings.ReplaceAll(normalized, " ", "-")
	switch OptionType(normalized) {
	case Call, Put, BinaryCall, BinaryPut:
		return OptionType(normalized), nil
	}
	return "", ErrUnknownOptionType
}

// ParseSide normalizes user input to a Side, defaulting empty input to long
func ParseSide(s string) (Side, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if normalized == "" {
		return Long, nil
	}
	switch Side(normalized) {
	case Long, Short:
		return Side(normalized), nil
	}
	return "", ErrUnknownSide
}

// CallPayoff returns the expiry payoff of a call: max(S-K, 0)
func CallPayoff(s, k float64) float64 {
	return math.Max(s-k, 0)
}

// PutPayoff returns the expiry payoff of a put: max(K-S, 0)
func PutPayoff(s, k float64) float64 {
	return math.Max(k-s, 0)
}

// BinaryCallPayoff pays one unit when the underlying finishes above the strike
func BinaryCallPayoff(s, k float64) float64 {
	if s > k {
		return 1
	}
	return 0
}

// BinaryPutPayoff pays one unit when the underlying finishes below the strike
func BinaryPutPayoff(s, k float64) float64 {
	if s < k {
		return 1
	}
	return 0
}

// PayoffAt returns the expiry payoff for one contract at underlying price s.
// Short positions are the negated long payoff.
func PayoffAt(typ OptionType, side Side, s, k float64) float64 {
	var payoff float64
	switch typ {
	case Call:
		payoff = CallPayoff(s, k)
	case Put:
		payoff = PutPayoff(s, k)
	case BinaryCall:
		payoff = BinaryCallPayoff(s, k)
	case BinaryPut:
		payoff = BinaryPutPayoff(s, k)
	}
	if side == Short {
		return -payoff
	}
	return payoff
}

// ProfitAt returns payoff net of premium: long pays the premium up front,
// short collects it.
func ProfitAt(typ OptionType, side Side, s, k, premium float64) float64 {
	if side == Short {
		return premium + PayoffAt(typ, Short, s, k)
	}
	return PayoffAt(typ, Long, s, k) - premium
}

// PayoffCurve evaluates PayoffAt over a price grid
func PayoffCurve(typ OptionType, side Side, grid []float64, k float64) []float64 {
	values := make([]float64, len(grid))
	for i, s := range grid {
		values[i] = PayoffAt(typ, side, s, k)
	}
	return values
}

// ProfitCurve evaluates ProfitAt over a price grid
func ProfitCurve(typ OptionType, side Side, grid []float64, k, premium float64) []float64 {
	values := make([]float64, len(grid))
	for i, s := range grid {
		values[i] = ProfitAt(typ, side, s, k, premium)
	}
	return values
}

// IntrinsicValue is the payoff the contract would deliver if exercised now
func IntrinsicValue(typ OptionType, s, k float64) float64 {
	return PayoffAt(typ, Long, s, k)
}

// TimeValue is the part of the premium above intrinsic value, floored at zero
func TimeValue(typ OptionType, s, k, premium float64) float64 {
	return math.Max(premium-IntrinsicValue(typ, s, k), 0)
}

// MoneynessStatus classifies the contract as ITM, ATM or OTM at underlying
// price s. Prices within a small band around the strike count as ATM, since
// slider inputs never hit the strike exactly.
func MoneynessStatus(typ OptionType, s, k float64) string {
	if k > 0 && math.Abs(s-k) <= atmBand*k {
		return StatusATM
	}
	inTheMoney := s > k
	if typ == Put || typ == BinaryPut {
		inTheMoney = s < k
	}
	if inTheMoney {
		return StatusITM
	}
	return StatusOTM
}

// Breakeven returns the underlying price where a plain call or put position
// crosses zero profit: strike plus premium for calls, strike minus premium for
// puts. Binary contracts have no breakeven in this sense and return the strike.
func Breakeven(typ OptionType, k, premium float64) float64 {
	switch typ {
	case Call:
		return k + premium
	case Put:
		return k - premium
	}
	return k
}

// PriceGrid builds the half-open arithmetic grid [min, max) in step increments
func PriceGrid(min, max, step float64) []float64 {
	if step <= 0 || max <= min {
		return nil
	}
	n := int(math.Ceil((max - min) / step))
	grid := make([]float64, 0, n)
	for s := min; s < max; s += step {
		grid = append(grid, s)
	}
	return grid
}

// Linspace builds an evenly spaced grid of n points from min to max inclusive
func Linspace(min, max float64, n int) []float64 {
	if n <= 1 || max <= min {
		return nil
	}
	grid := make([]float64, n)
	step := (max - min) / float64(n-1)
	for i := range grid {
		grid[i] = min + float64(i)*step
	}
	grid[n-1] = max
	return grid
}
