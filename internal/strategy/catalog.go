package strategy

import (
	"fmt"
	"sort"
)

// catalog carries the teaching text for each named strategy. Legs are filled
// in by the builders once strikes and premiums are known.
var catalog = map[string]Strategy{
	"bull-call-spread": {
		Name:        "bull-call-spread",
		DisplayName: "Bull Call Spread",
		Outlook:     "moderately bullish",
		Description: "Buy a call at a lower strike and sell a call at a higher strike with the same expiry. The short call finances part of the long call.",
		RewardNote:  "Capped at the distance between strikes minus the net premium paid.",
		RiskNote:    "Limited to the net premium paid.",
	},
	"bear-put-spread": {
		Name:        "bear-put-spread",
		DisplayName: "Bear Put Spread",
		Outlook:     "moderately bearish",
		Description: "Buy a put at a higher strike and sell a put at a lower strike with the same expiry. Profits as the underlying falls toward the lower strike.",
		RewardNote:  "Capped at the distance between strikes minus the net premium paid.",
		RiskNote:    "Limited to the net premium paid.",
	},
	"straddle": {
		Name:        "straddle",
		DisplayName: "Long Straddle",
		Outlook:     "volatile, direction unknown",
		Description: "Buy a call and a put at the same strike and expiry. Profits from a large move in either direction.",
		RewardNote:  "Unlimited above the strike, substantial below it.",
		RiskNote:    "Limited to the combined premium when the underlying stays near the strike.",
	},
	"strangle": {
		Name:        "strangle",
		DisplayName: "Long Strangle",
		Outlook:     "volatile, direction unknown",
		Description: "Buy an out-of-the-money put below the spot and an out-of-the-money call above it. Cheaper than a straddle but needs a bigger move to pay off.",
		RewardNote:  "Unlimited above the call strike, substantial below the put strike.",
		RiskNote:    "Limited to the combined premium between the strikes.",
	},
	"butterfly": {
		Name:        "butterfly",
		DisplayName: "Long Call Butterfly",
		Outlook:     "neutral, low volatility",
		Description: "Buy one call at a low strike, sell two calls at the middle strike, buy one call at a high strike. Pays best when the underlying pins the middle strike at expiry.",
		RewardNote:  "Capped at the wing width minus the net premium, reached at the middle strike.",
		RiskNote:    "Limited to the net premium paid.",
	},
	"risk-reversal": {
		Name:        "risk-reversal",
		DisplayName: "Risk Reversal",
		Outlook:     "bullish",
		Description: "Sell an out-of-the-money put and buy an out-of-the-money call. The put premium funds the call, giving synthetic upside exposure at little or no cost.",
		RewardNote:  "Unlimited above the call strike.",
		RiskNote:    "Substantial below the put strike, like owning the underlying.",
	},
}

// Names returns the catalog keys in stable order
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns the catalog entry for a named strategy without legs
func Describe(name string) (Strategy, error) {
	s, ok := catalog[name]
	if !ok {
		return Strategy{}, fmt.Errorf("%q: %w", name, ErrUnknownStrategy)
	}
	return s, nil
}

// Catalog returns all catalog entries in stable order, legs unset
func Catalog() []Strategy {
	entries := make([]Strategy, 0, len(catalog))
	for _, name := range Names() {
		entries = append(entries, catalog[name])
	}
	return entries
}

// BuildParams carries the strikes and premiums a builder needs. Strategies
// with fewer strikes ignore the trailing fields.
type BuildParams struct {
	Strike1  float64
	Strike2  float64
	Strike3  float64
	Premium1 float64
	Premium2 float64
	Premium3 float64
}

// Build constructs a named strategy from the given parameters
func Build(name string, p BuildParams) (Strategy, error) {
	switch name {
	case "bull-call-spread":
		return BullCallSpread(p.Strike1, p.Strike2, p.Premium1, p.Premium2)
	case "bear-put-spread":
		return BearPutSpread(p.Strike1, p.Strike2, p.Premium1, p.Premium2)
	case "straddle":
		return Straddle(p.Strike1, p.Premium1, p.Premium2)
	case "strangle":
		return Strangle(p.Strike1, p.Strike2, p.Premium1, p.Premium2)
	case "butterfly":
		return Butterfly(p.Strike1, p.Strike2, p.Strike3, p.Premium1, p.Premium2, p.Premium3)
	case "risk-reversal":
		return RiskReversal(p.Strike1, p.Strike2, p.Premium1, p.Premium2)
	}
	return Strategy{}, fmt.Errorf("%q: %w", name, ErrUnknownStrategy)
}
