package quant

import "errors"

var (
	ErrInvalidSpot       = errors.New("spot price must be positive")
	ErrInvalidStrike     = errors.New("strike price must be positive")
	ErrInvalidVolatility = errors.New("volatility must not be negative")
	ErrInvalidMaturity   = errors.New("time to expiration must not be negative")
	ErrInvalidPremium    = errors.New("premium must not be negative")
	ErrUnknownOptionType = errors.New("unknown option type")
	ErrUnknownSide       = errors.New("unknown position side")
	ErrNoConvergence     = errors.New("implied volatility did not converge")
)
