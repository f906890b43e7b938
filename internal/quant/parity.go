package quant

import "math"

// ParityReport lays out both sides of the put-call parity identity
// C - P = S - K*e^(-rT) computed from independent Black-Scholes prices.
type ParityReport struct {
	CallPrice         float64 `json:"call_price"`
	PutPrice          float64 `json:"put_price"`
	LeftSide          float64 `json:"left_side"`  // C - P
	RightSide         float64 `json:"right_side"` // S - K*e^(-rT)
	Gap               float64 `json:"gap"`
	DiscountedStrike  float64 `json:"discounted_strike"`
	Holds             bool    `json:"holds"`
	ToleranceAbsolute float64 `json:"tolerance"`
}

// parityTolerance is the absolute gap still considered a numerical zero
const parityTolerance = 1e-9

// DiscountedStrike returns the present value of the strike, K*e^(-rT)
func DiscountedStrike(k, r, t float64) float64 {
	return k * math.Exp(-r*t)
}

// CallFromParity recovers the call price implied by a put via parity:
// C = P + S - K*e^(-rT)
func CallFromParity(putPrice, s, k, r, t float64) float64 {
	return putPrice + s - DiscountedStrike(k, r, t)
}

// PutFromParity recovers the put price implied by a call via parity:
// P = C - S + K*e^(-rT)
func PutFromParity(callPrice, s, k, r, t float64) float64 {
	return callPrice - s + DiscountedStrike(k, r, t)
}

// CheckParity prices both legs with Black-Scholes and reports how closely the
// parity identity holds. With exact arithmetic the gap is zero; what shows up
// here is floating-point residue.
func CheckParity(s, k, r, sigma, t float64) ParityReport {
	call := BSCallPrice(s, k, r, sigma, t)
	put := BSPutPrice(s, k, r, sigma, t)
	discounted := DiscountedStrike(k, r, t)

	left := call - put
	right := s - discounted
	gap := math.Abs(left - right)

	return ParityReport{
		CallPrice:         call,
		PutPrice:          put,
		LeftSide:          left,
		RightSide:         right,
		Gap:               gap,
		DiscountedStrike:  discounted,
		Holds:             gap <= parityTolerance*math.Max(1, math.Abs(right)),
		ToleranceAbsolute: parityTolerance,
	}
}
