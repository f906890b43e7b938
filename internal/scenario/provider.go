package scenario

import "errors"

var ErrNotFound = errors.New("scenario not found")

// Scenario is a named preset of market inputs the UI and CLI can start from
type Scenario struct {
	Name          string  `json:"name"`
	DisplayName   string  `json:"display_name"`
	Description   string  `json:"description"`
	Spot          float64 `json:"spot"`
	Strike        float64 `json:"strike"`
	Rate          float64 `json:"rate"`
	Volatility    float64 `json:"volatility"`
	MaturityYears float64 `json:"maturity_years"`
}

// Provider supplies preset scenarios
type Provider interface {
	// ListScenarios returns all presets this provider knows
	ListScenarios() ([]Scenario, error)

	// GetScenario returns one preset by name
	GetScenario(name string) (*Scenario, error)

	// ProviderName identifies the provider (e.g. "builtin", "file")
	ProviderName() string
}
