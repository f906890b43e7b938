package handlers

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/jwaldner/tetra/internal/config"
	"github.com/jwaldner/tetra/internal/logger"
	"github.com/jwaldner/tetra/internal/strategy"
)

// pageFuncMap provides ALL frontend data from backend config, so web
// changes never require a rebuild
func (h *Handler) pageFuncMap() template.FuncMap {
	expirationDate := config.CalculateDefaultExpirationDate()

	return template.FuncMap{
		// Core app info
		"appTitle": func() string {
			return "📈 Tetra - Option Pricing Lab"
		},
		"appDescription": func() string {
			return "Interactive Black-Scholes Teaching Tool"
		},
		"engineName": func() string {
			return "closed-form"
		},

		// Default values (calculated by backend)
		"defaultSpot": func() float64 {
			return h.config.Pricing.Spot
		},
		"defaultStrike": func() float64 {
			return h.config.Pricing.Strike
		},
		"defaultRate": func() float64 {
			return h.config.Pricing.Rate
		},
		"defaultVolatility": func() float64 {
			return h.config.Pricing.Volatility
		},
		"defaultMaturity": func() float64 {
			return h.config.Pricing.MaturityYears
		},
		"defaultPremium": func() float64 {
			return h.config.Pricing.Premium
		},
		"defaultExpirationDate": func() string {
			return expirationDate
		},

		// Grid bounds for the price sliders
		"gridMinPrice": func() float64 {
			return h.config.Grid.MinPrice
		},
		"gridMaxPrice": func() float64 {
			return h.config.Grid.MaxPrice
		},
		"gridStep": func() float64 {
			return h.config.Grid.Step
		},

		// Strategy catalog for the dropdown
		"strategyNames": func() []string {
			return strategy.Names()
		},
		"strategyOptions": func() map[string]string {
			options := make(map[string]string)
			for _, s := range strategy.Catalog() {
				options[s.Name] = s.DisplayName
			}
			return options
		},

		// Market scenarios for the preset picker
		"scenarioOptions": func() map[string]string {
			options := make(map[string]string)
			scenarios, err := h.scenarios.List()
			if err != nil {
				return options
			}
			for _, sc := range scenarios {
				options[sc.Name] = sc.DisplayName
			}
			return options
		},
		"scenarioSource": func() string {
			return h.scenarios.ProviderName()
		},
		"defaultScenario": func() string {
			return h.scenarios.Default().Name
		},

		// Rates and glossary info lines
		"rateSource": func() string {
			return h.rates.GetCurve().Source
		},
		"glossaryCount": func() int {
			return len(h.glossary.All())
		},
		"glossaryCategories": func() []string {
			return h.glossary.Categories()
		},

		// Curve families for the factors page tabs
		"curveFamilies": func() []string {
			return []string{"maturity", "volatility", "rate", "strike", "delta", "time-decay", "smile", "pv-strike"}
		},

		// CSS classes for field types
		"fieldTypeClasses": func() map[string]string {
			return map[string]string{
				"currency":   "text-right font-mono text-green-600 tabular-nums",
				"percentage": "text-right font-semibold text-blue-600 tabular-nums",
				"number":     "text-right font-mono tabular-nums",
				"integer":    "text-right font-mono tabular-nums",
				"text":       "text-left",
			}
		},

		// Form labels (backend controlled)
		"spotLabel": func() string {
			return "💵 Spot Price (S)"
		},
		"strikeLabel": func() string {
			return "🎯 Strike Price (K)"
		},
		"premiumLabel": func() string {
			return "💰 Premium Paid"
		},
		"rateLabel": func() string {
			return "🏛️ Risk-Free Rate (r)"
		},
		"volatilityLabel": func() string {
			return "📊 Volatility (σ)"
		},
		"maturityLabel": func() string {
			return "📅 Time to Expiration (years)"
		},
		"priceButtonText": func() string {
			return "🔍 Price Option"
		},
		"exportButtonText": func() string {
			return "📋 Export CSV"
		},
		"auditButtonText": func() string {
			return "✅ Run Audit"
		},
		"loadingText": func() string {
			return "Computing..."
		},

		// Error messages (backend controlled)
		"errorMessages": func() map[string]string {
			return map[string]string{
				"invalidStrike":   "Strike price must be greater than 0",
				"invalidPremium":  "Premium must not be negative",
				"invalidGrid":     "Price range needs min < max and a positive step",
				"noConvergence":   "No volatility matches that market price",
				"requestFailed":   "Request failed:",
				"chartLoadFailed": "Chart failed to load. Adjust inputs and retry.",
			}
		},
	}
}

// renderPage loads a template from disk on every request, so web changes
// never require a rebuild
func (h *Handler) renderPage(w http.ResponseWriter, name string) {
	tmpl, err := template.New(name).Funcs(h.pageFuncMap()).ParseFiles(fmt.Sprintf("web/templates/%s", name))
	if err != nil {
		logger.Error.Printf("❌ Template error: %v", err)
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// Execute with no data - everything comes from template functions
	if err := tmpl.Execute(w, nil); err != nil {
		logger.Error.Printf("❌ Template execution error: %v", err)
		http.Error(w, "Template execution error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	logger.Info.Printf("📄 Served page %s", name)
}

// HomeHandler serves the payoff and strategy explorer page
func (h *Handler) HomeHandler(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, "home.html")
}

// BasicsHandler serves the pricing, Greeks and factor sensitivity page
func (h *Handler) BasicsHandler(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, "basics.html")
}
