package scenario

import (
	"fmt"
	"strings"
)

// builtinScenarios are the teaching presets. Order matters: the first entry
// is the default the server seeds its forms with.
var builtinScenarios = []Scenario{
	{
		Name:          "baseline",
		DisplayName:   "Baseline (at the money)",
		Description:   "The textbook starting point: spot equals strike, moderate volatility, one year to expiry.",
		Spot:          100,
		Strike:        100,
		Rate:          0.05,
		Volatility:    0.20,
		MaturityYears: 1.0,
	},
	{
		Name:          "low-vol",
		DisplayName:   "Low volatility",
		Description:   "Same setup with 10% volatility. Option prices and vega shrink; the payoff dominates.",
		Spot:          100,
		Strike:        100,
		Rate:          0.05,
		Volatility:    0.10,
		MaturityYears: 1.0,
	},
	{
		Name:          "high-vol",
		DisplayName:   "High volatility",
		Description:   "40% volatility doubles down on uncertainty. Both call and put become much more expensive.",
		Spot:          100,
		Strike:        100,
		Rate:          0.05,
		Volatility:    0.40,
		MaturityYears: 1.0,
	},
	{
		Name:          "near-expiry",
		DisplayName:   "Near expiry",
		Description:   "About two weeks left. Time value is almost gone and theta bites hardest at the money.",
		Spot:          100,
		Strike:        100,
		Rate:          0.05,
		Volatility:    0.20,
		MaturityYears: 0.04,
	},
	{
		Name:          "deep-itm-call",
		DisplayName:   "Deep in-the-money call",
		Description:   "Spot well above strike. The call behaves like stock: delta approaches 1 and gamma fades.",
		Spot:          130,
		Strike:        100,
		Rate:          0.05,
		Volatility:    0.20,
		MaturityYears: 1.0,
	},
	{
		Name:          "zero-rate",
		DisplayName:   "Zero interest rate",
		Description:   "With r = 0 the discounted strike equals the strike, so parity reads C - P = S - K.",
		Spot:          100,
		Strike:        100,
		Rate:          0.0,
		Volatility:    0.20,
		MaturityYears: 1.0,
	},
}

// BuiltinProvider serves the compiled-in presets
type BuiltinProvider struct{}

func NewBuiltinProvider() *BuiltinProvider {
	return &BuiltinProvider{}
}

func (p *BuiltinProvider) ListScenarios() ([]Scenario, error) {
	out := make([]Scenario, len(builtinScenarios))
	copy(out, builtinScenarios)
	return out, nil
}

func (p *BuiltinProvider) GetScenario(name string) (*Scenario, error) {
	for i := range builtinScenarios {
		if strings.EqualFold(builtinScenarios[i].Name, name) {
			s := builtinScenarios[i]
			return &s, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
}

func (p *BuiltinProvider) ProviderName() string {
	return "builtin"
}
