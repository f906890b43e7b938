package strategy

import (
	"errors"
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"github.com/jwaldner/tetra/internal/quant"
)

var (
	ErrUnknownStrategy = errors.New("unknown strategy")
	ErrNoLegs          = errors.New("strategy has no legs")
	ErrBadStrikeOrder  = errors.New("strikes must be in ascending order")
)

// Leg is a single option position inside a strategy
type Leg struct {
	Type     quant.OptionType `json:"type"`
	Side     quant.Side       `json:"side"`
	Strike   float64          `json:"strike"`
	Premium  float64          `json:"premium"`
	Quantity int              `json:"quantity"`
}

// Strategy is a named basket of legs plus its catalog text
type Strategy struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Outlook     string `json:"outlook"`
	Description string `json:"description"`
	RewardNote  string `json:"reward_note"`
	RiskNote    string `json:"risk_note"`
	Legs        []Leg  `json:"legs"`
}

// Metrics summarizes a strategy over the evaluated price grid
type Metrics struct {
	NetPremium      float64   `json:"net_premium"` // positive = debit paid
	MaxProfit       float64   `json:"max_profit"`
	MaxLoss         float64   `json:"max_loss"`
	ProfitUnbounded bool      `json:"profit_unbounded"`
	LossUnbounded   bool      `json:"loss_unbounded"`
	Breakevens      []float64 `json:"breakevens"`
}

// legProfit is one leg's profit at underlying price s, scaled by quantity
func legProfit(leg Leg, s float64) float64 {
	qty := leg.Quantity
	if qty == 0 {
		qty = 1
	}
	return float64(qty) * quant.ProfitAt(leg.Type, leg.Side, s, leg.Strike, leg.Premium)
}

// ProfitCurve evaluates the combined profit of all legs over the price grid
func ProfitCurve(legs []Leg, grid []float64) []float64 {
	combined := make([]float64, len(grid))
	for _, leg := range legs {
		for i, s := range grid {
			combined[i] += legProfit(leg, s)
		}
	}
	return combined
}

// LegCurves returns one labeled profit curve per leg
func LegCurves(legs []Leg, grid []float64) []quant.Curve {
	curves := make([]quant.Curve, 0, len(legs))
	for _, leg := range legs {
		y := make([]float64, len(grid))
		for i, s := range grid {
			y[i] = legProfit(leg, s)
		}
		label := fmt.Sprintf("%s %s K=%.0f", leg.Side, leg.Type, leg.Strike)
		curves = append(curves, quant.Curve{Label: label, X: grid, Y: y})
	}
	return curves
}

// NetPremium is the up-front cost of the basket: long legs pay premium,
// short legs collect it.
func NetPremium(legs []Leg) float64 {
	var net float64
	for _, leg := range legs {
		qty := leg.Quantity
		if qty == 0 {
			qty = 1
		}
		if leg.Side == quant.Short {
			net -= float64(qty) * leg.Premium
		} else {
			net += float64(qty) * leg.Premium
		}
	}
	return net
}

// ComputeMetrics evaluates the strategy over the grid and summarizes it.
// Unboundedness above the grid is decided from the net call exposure, since
// every other payoff component is capped.
func ComputeMetrics(legs []Leg, grid []float64) (Metrics, error) {
	if len(legs) == 0 {
		return Metrics{}, ErrNoLegs
	}
	profits := ProfitCurve(legs, grid)

	maxProfit, err := stats.Max(profits)
	if err != nil {
		return Metrics{}, fmt.Errorf("profit curve: %w", err)
	}
	minProfit, err := stats.Min(profits)
	if err != nil {
		return Metrics{}, fmt.Errorf("profit curve: %w", err)
	}

	m := Metrics{
		NetPremium: NetPremium(legs),
		MaxProfit:  maxProfit,
		MaxLoss:    -minProfit,
		Breakevens: breakevens(grid, profits),
	}

	netCalls := 0
	for _, leg := range legs {
		if leg.Type != quant.Call {
			continue
		}
		qty := leg.Quantity
		if qty == 0 {
			qty = 1
		}
		if leg.Side == quant.Short {
			netCalls -= qty
		} else {
			netCalls += qty
		}
	}
	m.ProfitUnbounded = netCalls > 0
	m.LossUnbounded = netCalls < 0

	return m, nil
}

// breakevens finds the zero crossings of the profit curve, linearly
// interpolated between grid points. Only the first point of a flat zero run
// is reported.
func breakevens(grid, profits []float64) []float64 {
	const eps = 1e-9
	var points []float64
	for i := range profits {
		p := profits[i]
		if math.Abs(p) <= eps {
			if i == 0 || math.Abs(profits[i-1]) > eps {
				points = append(points, grid[i])
			}
			continue
		}
		if i == 0 {
			continue
		}
		prev := profits[i-1]
		if math.Abs(prev) <= eps || prev*p > 0 {
			continue
		}
		frac := prev / (prev - p)
		points = append(points, grid[i-1]+frac*(grid[i]-grid[i-1]))
	}
	return points
}

// BullCallSpread buys the lower strike call and sells the higher one
func BullCallSpread(k1, k2, premium1, premium2 float64) (Strategy, error) {
	if k1 >= k2 {
		return Strategy{}, fmt.Errorf("bull call spread %g/%g: %w", k1, k2, ErrBadStrikeOrder)
	}
	s := catalog["bull-call-spread"]
	s.Legs = []Leg{
		{Type: quant.Call, Side: quant.Long, Strike: k1, Premium: premium1, Quantity: 1},
		{Type: quant.Call, Side: quant.Short, Strike: k2, Premium: premium2, Quantity: 1},
	}
	return s, nil
}

// BearPutSpread buys the higher strike put and sells the lower one
func BearPutSpread(k1, k2, premium1, premium2 float64) (Strategy, error) {
	if k1 >= k2 {
		return Strategy{}, fmt.Errorf("bear put spread %g/%g: %w", k1, k2, ErrBadStrikeOrder)
	}
	s := catalog["bear-put-spread"]
	s.Legs = []Leg{
		{Type: quant.Put, Side: quant.Long, Strike: k2, Premium: premium2, Quantity: 1},
		{Type: quant.Put, Side: quant.Short, Strike: k1, Premium: premium1, Quantity: 1},
	}
	return s, nil
}

// Straddle buys a call and a put at the same strike
func Straddle(k, callPremium, putPremium float64) (Strategy, error) {
	s := catalog["straddle"]
	s.Legs = []Leg{
		{Type: quant.Call, Side: quant.Long, Strike: k, Premium: callPremium, Quantity: 1},
		{Type: quant.Put, Side: quant.Long, Strike: k, Premium: putPremium, Quantity: 1},
	}
	return s, nil
}

// Strangle buys an out-of-the-money put below and call above the spot
func Strangle(putStrike, callStrike, putPremium, callPremium float64) (Strategy, error) {
	if putStrike >= callStrike {
		return Strategy{}, fmt.Errorf("strangle %g/%g: %w", putStrike, callStrike, ErrBadStrikeOrder)
	}
	s := catalog["strangle"]
	s.Legs = []Leg{
		{Type: quant.Put, Side: quant.Long, Strike: putStrike, Premium: putPremium, Quantity: 1},
		{Type: quant.Call, Side: quant.Long, Strike: callStrike, Premium: callPremium, Quantity: 1},
	}
	return s, nil
}

// Butterfly buys the wings and sells two calls at the body strike
func Butterfly(k1, k2, k3, premium1, premium2, premium3 float64) (Strategy, error) {
	if k1 >= k2 || k2 >= k3 {
		return Strategy{}, fmt.Errorf("butterfly %g/%g/%g: %w", k1, k2, k3, ErrBadStrikeOrder)
	}
	s := catalog["butterfly"]
	s.Legs = []Leg{
		{Type: quant.Call, Side: quant.Long, Strike: k1, Premium: premium1, Quantity: 1},
		{Type: quant.Call, Side: quant.Short, Strike: k2, Premium: premium2, Quantity: 2},
		{Type: quant.Call, Side: quant.Long, Strike: k3, Premium: premium3, Quantity: 1},
	}
	return s, nil
}

// RiskReversal sells the put below and buys the call above the spot
func RiskReversal(putStrike, callStrike, putPremium, callPremium float64) (Strategy, error) {
	if putStrike >= callStrike {
		return Strategy{}, fmt.Errorf("risk reversal %g/%g: %w", putStrike, callStrike, ErrBadStrikeOrder)
	}
	s := catalog["risk-reversal"]
	s.Legs = []Leg{
		{Type: quant.Put, Side: quant.Short, Strike: putStrike, Premium: putPremium, Quantity: 1},
		{Type: quant.Call, Side: quant.Long, Strike: callStrike, Premium: callPremium, Quantity: 1},
	}
	return s, nil
}

// Custom wraps caller-supplied legs in a strategy shell
func Custom(legs []Leg) (Strategy, error) {
	if len(legs) == 0 {
		return Strategy{}, ErrNoLegs
	}
	return Strategy{
		Name:        "custom",
		DisplayName: "Custom Strategy",
		Outlook:     "depends on construction",
		Description: "A user-assembled basket of option legs.",
		Legs:        legs,
	}, nil
}
