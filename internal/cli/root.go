// Package cli implements the tetra command-line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jwaldner/tetra/internal/audit"
	"github.com/jwaldner/tetra/internal/config"
	"github.com/jwaldner/tetra/internal/glossary"
	"github.com/jwaldner/tetra/internal/rates"
	"github.com/jwaldner/tetra/internal/scenario"
	"github.com/jwaldner/tetra/internal/utils"
)

// Version information
const (
	Version = "1.0.0"
	Engine  = "closed-form"
)

// App holds the services the commands share.
type App struct {
	Config    *config.Config
	Glossary  *glossary.Service
	Scenarios *scenario.Manager
	Rates     *rates.Service
	Auditor   *audit.Coordinator
}

// NewRootCmd builds the full command tree.
func NewRootCmd(cfg *config.Config) *cobra.Command {
	app := &App{
		Config:    cfg,
		Glossary:  glossary.NewService(cfg.Assets.GlossaryFile),
		Scenarios: scenario.NewManager(cfg.Assets.ScenariosFile),
		Rates:     rates.NewService(cfg.Assets.RatesFile),
		Auditor:   audit.NewCoordinator(),
	}

	rootCmd := &cobra.Command{
		Use:   "tetra",
		Short: "Tetra - Black-Scholes option pricing lab",
		Long: `Tetra prices European options with closed-form Black-Scholes and explains
what the numbers mean: Greeks, payoff diagrams, put-call parity, implied
volatility, and multi-leg strategies.

Market inputs default to the configured teaching values. Override them per
command (--spot, --strike, --vol, ...) or start from a preset with
--scenario (see 'tetra scenarios').

Use 'tetra help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().String("scenario", "", "start from a named market scenario")

	addPricingCommands(rootCmd, app)
	addStrategyCommands(rootCmd, app)
	addCurveCommands(rootCmd, app)
	addReferenceCommands(rootCmd, app)
	addAuditCommands(rootCmd, app)
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version": Version,
					"engine":  Engine,
				})
			} else {
				output.Printf("Tetra v%s\n", Version)
				output.Dim("Pricing engine: %s Black-Scholes", Engine)
			}
		},
	}
}

// marketInputs is the shared set of pricing inputs a command resolved from
// flags, scenario presets, and configured defaults.
type marketInputs struct {
	Spot       float64 `json:"spot"`
	Strike     float64 `json:"strike"`
	Rate       float64 `json:"rate"`
	Volatility float64 `json:"volatility"`
	Maturity   float64 `json:"maturity_years"`
}

// addMarketFlags registers the pricing input flags with configured defaults.
func addMarketFlags(cmd *cobra.Command, cfg *config.Config) {
	cmd.Flags().Float64("spot", cfg.Pricing.Spot, "spot price of the underlying")
	cmd.Flags().Float64("strike", cfg.Pricing.Strike, "strike price")
	cmd.Flags().Float64("rate", cfg.Pricing.Rate, "annualized risk-free rate (decimal)")
	cmd.Flags().Float64("vol", cfg.Pricing.Volatility, "annualized volatility (decimal)")
	cmd.Flags().Float64("maturity", cfg.Pricing.MaturityYears, "time to expiration in years")
	cmd.Flags().String("expiry", "", "expiration date YYYY-MM-DD (overrides --maturity)")
	cmd.Flags().Bool("curve-rate", false, "take the rate from the local zero curve for this maturity")
}

// resolveMarket merges configured defaults, an optional scenario preset, and
// explicit flags. Explicit flags win over the scenario, the scenario wins
// over the defaults.
func (app *App) resolveMarket(cmd *cobra.Command) (marketInputs, error) {
	p := app.Config.Pricing
	m := marketInputs{
		Spot:       p.Spot,
		Strike:     p.Strike,
		Rate:       p.Rate,
		Volatility: p.Volatility,
		Maturity:   p.MaturityYears,
	}

	if name, _ := cmd.Flags().GetString("scenario"); name != "" {
		sc, err := app.Scenarios.Get(name)
		if err != nil {
			return m, fmt.Errorf("unknown scenario %q, run 'tetra scenarios' to list presets", name)
		}
		m.Spot = sc.Spot
		m.Strike = sc.Strike
		m.Rate = sc.Rate
		m.Volatility = sc.Volatility
		m.Maturity = sc.MaturityYears
	}

	if cmd.Flags().Changed("spot") {
		m.Spot, _ = cmd.Flags().GetFloat64("spot")
	}
	if cmd.Flags().Changed("strike") {
		m.Strike, _ = cmd.Flags().GetFloat64("strike")
	}
	if cmd.Flags().Changed("rate") {
		m.Rate, _ = cmd.Flags().GetFloat64("rate")
	}
	if cmd.Flags().Changed("vol") {
		m.Volatility, _ = cmd.Flags().GetFloat64("vol")
	}
	if cmd.Flags().Changed("maturity") {
		m.Maturity, _ = cmd.Flags().GetFloat64("maturity")
	}

	if expiry, _ := cmd.Flags().GetString("expiry"); expiry != "" {
		t, err := utils.YearsUntil(expiry)
		if err != nil {
			return m, err
		}
		m.Maturity = t
	}

	if curveRate, _ := cmd.Flags().GetBool("curve-rate"); curveRate {
		m.Rate = app.Rates.RateFor(m.Maturity)
	}

	return m, nil
}

// inputsLine formats the resolved market inputs for the footer of text output.
func inputsLine(m marketInputs) string {
	return fmt.Sprintf("Inputs: S=%.2f  K=%.2f  r=%.2f%%  vol=%.2f%%  T=%.4gy",
		m.Spot, m.Strike, m.Rate*100, m.Volatility*100, m.Maturity)
}
