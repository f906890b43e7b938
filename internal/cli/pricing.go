package cli

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/jwaldner/tetra/internal/quant"
)

// addPricingCommands adds the single-option pricing commands.
func addPricingCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newPriceCmd(app))
	rootCmd.AddCommand(newGreeksCmd(app))
	rootCmd.AddCommand(newIVCmd(app))
	rootCmd.AddCommand(newParityCmd(app))
	rootCmd.AddCommand(newPayoffCmd(app))
}

func newPriceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Price a European option",
		Long: `Price a European call or put with closed-form Black-Scholes.

Alongside the fair value the command reports the intrinsic and time value
split, moneyness, the breakeven at expiration, and the present value of
the strike.`,
		Example: `  tetra price --type call
  tetra price --type put --spot 95 --strike 100 --vol 0.35
  tetra price --type call --expiry 2027-01-15 --curve-rate
  tetra price --scenario high-vol --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			m, err := app.resolveMarket(cmd)
			if err != nil {
				return err
			}

			typStr, _ := cmd.Flags().GetString("type")
			typ, err := quant.ParseOptionType(typStr)
			if err != nil {
				return err
			}

			if err := quant.ValidatePricingInputs(m.Spot, m.Strike, m.Rate, m.Volatility, m.Maturity); err != nil {
				return err
			}

			price, err := quant.Price(typ, m.Spot, m.Strike, m.Rate, m.Volatility, m.Maturity)
			if err != nil {
				return err
			}

			intrinsic := quant.IntrinsicValue(typ, m.Spot, m.Strike)
			timeValue := price - intrinsic
			moneyness := quant.MoneynessStatus(typ, m.Spot, m.Strike)
			breakeven := quant.Breakeven(typ, m.Strike, price)
			pvStrike := quant.DiscountedStrike(m.Strike, m.Rate, m.Maturity)

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"type":              typ,
					"inputs":            m,
					"price":             price,
					"intrinsic_value":   intrinsic,
					"time_value":        timeValue,
					"moneyness":         moneyness,
					"breakeven":         breakeven,
					"discounted_strike": pvStrike,
				})
			}

			output.Bold("💰 %s - fair value $%.4f", typ, price)
			output.Println()
			output.Printf("  Intrinsic value:  $%.4f\n", intrinsic)
			output.Printf("  Time value:       $%.4f\n", timeValue)
			output.Printf("  Moneyness:        %s\n", moneyness)
			output.Printf("  Breakeven:        $%.2f at expiration\n", breakeven)
			output.Printf("  PV of strike:     $%.4f\n", pvStrike)
			output.Println()
			output.Dim("  %s", inputsLine(m))
			return nil
		},
	}

	cmd.Flags().String("type", "call", "option type: call or put")
	addMarketFlags(cmd, app.Config)
	return cmd
}

func newGreeksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "greeks",
		Short: "Compute option Greeks",
		Long: `Compute the closed-form Black-Scholes sensitivities.

Theta and vega come out in natural units (per year, per unit of
volatility); the per-day and per-percent conventions quoted on trading
screens are shown alongside.`,
		Example: `  tetra greeks --type call
  tetra greeks --type put --spot 90 --vol 0.4 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			m, err := app.resolveMarket(cmd)
			if err != nil {
				return err
			}

			typStr, _ := cmd.Flags().GetString("type")
			typ, err := quant.ParseOptionType(typStr)
			if err != nil {
				return err
			}

			greeks, err := quant.GreeksFor(typ, m.Spot, m.Strike, m.Rate, m.Volatility, m.Maturity)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"type":          typ,
					"inputs":        m,
					"greeks":        greeks,
					"theta_per_day": greeks.ThetaPerDay(),
				})
			}

			output.Bold("📊 %s Greeks", typ)
			output.Println()
			output.Printf("  Delta (Δ):  %9.4f\n", greeks.Delta)
			output.Printf("  Gamma (Γ):  %9.4f\n", greeks.Gamma)
			output.Printf("  Theta (Θ):  %9.4f per year   (%.4f per day)\n", greeks.Theta, greeks.ThetaPerDay())
			output.Printf("  Vega:       %9.4f per vol    (%.4f per 1%%)\n", greeks.Vega, greeks.Vega/100)
			output.Printf("  Rho:        %9.4f\n", greeks.Rho)
			output.Println()
			output.Dim("  %s", inputsLine(m))
			return nil
		},
	}

	cmd.Flags().String("type", "call", "option type: call or put")
	addMarketFlags(cmd, app.Config)
	return cmd
}

func newIVCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "iv",
		Short: "Back out implied volatility from a market price",
		Long: `Solve for the volatility that reproduces an observed option price.

The --vol flag is ignored here since volatility is the unknown being
solved for. Prices below intrinsic value or above the model's no-arbitrage
bound are rejected.`,
		Example: `  tetra iv --type call --price 14.23
  tetra iv --type put --price 3.10 --spot 105 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			m, err := app.resolveMarket(cmd)
			if err != nil {
				return err
			}

			typStr, _ := cmd.Flags().GetString("type")
			typ, err := quant.ParseOptionType(typStr)
			if err != nil {
				return err
			}

			marketPrice, _ := cmd.Flags().GetFloat64("price")

			iv, err := quant.ImpliedVolatility(typ, marketPrice, m.Spot, m.Strike, m.Rate, m.Maturity)
			if err != nil {
				return err
			}

			// Reprice at the solved volatility to show the round trip.
			repriced, err := quant.Price(typ, m.Spot, m.Strike, m.Rate, iv, m.Maturity)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"type":               typ,
					"inputs":             m,
					"market_price":       marketPrice,
					"implied_volatility": iv,
					"repriced":           repriced,
					"residual":           math.Abs(repriced - marketPrice),
				})
			}

			output.Bold("🔍 Implied volatility: %.2f%%", iv*100)
			output.Println()
			output.Printf("  Market price:   $%.4f\n", marketPrice)
			output.Printf("  Repriced:       $%.4f  (residual %.2e)\n", repriced, math.Abs(repriced-marketPrice))
			output.Println()
			output.Dim("  Inputs: S=%.2f  K=%.2f  r=%.2f%%  T=%.4gy", m.Spot, m.Strike, m.Rate*100, m.Maturity)
			return nil
		},
	}

	cmd.Flags().String("type", "call", "option type: call or put")
	cmd.Flags().Float64("price", 0, "observed market price of the option")
	cmd.MarkFlagRequired("price")
	addMarketFlags(cmd, app.Config)
	return cmd
}

func newParityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parity",
		Short: "Verify put-call parity",
		Long: `Price the call and put independently and check the parity identity
C - P = S - K*e^(-rT).

With --known and --known-price the other side is solved from the identity
instead, the way a desk would imply an untraded leg from a traded one.`,
		Example: `  tetra parity
  tetra parity --spot 105 --vol 0.3
  tetra parity --known call --known-price 10.45`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			m, err := app.resolveMarket(cmd)
			if err != nil {
				return err
			}

			if err := quant.ValidatePricingInputs(m.Spot, m.Strike, m.Rate, m.Volatility, m.Maturity); err != nil {
				return err
			}

			report := quant.CheckParity(m.Spot, m.Strike, m.Rate, m.Volatility, m.Maturity)

			known, _ := cmd.Flags().GetString("known")
			knownPrice, _ := cmd.Flags().GetFloat64("known-price")
			var solved map[string]interface{}
			switch known {
			case "":
			case "call":
				solved = map[string]interface{}{
					"solved_for": "put",
					"price":      quant.PutFromParity(knownPrice, m.Spot, m.Strike, m.Rate, m.Maturity),
				}
			case "put":
				solved = map[string]interface{}{
					"solved_for": "call",
					"price":      quant.CallFromParity(knownPrice, m.Spot, m.Strike, m.Rate, m.Maturity),
				}
			default:
				return fmt.Errorf("unknown side %q: expected call or put", known)
			}

			if output.IsJSON() {
				out := map[string]interface{}{
					"inputs": m,
					"parity": report,
				}
				if solved != nil {
					out["solved"] = solved
				}
				return output.JSON(out)
			}

			output.Bold("🔁 Put-call parity")
			output.Println()
			output.Printf("  Call price:      $%.4f\n", report.CallPrice)
			output.Printf("  Put price:       $%.4f\n", report.PutPrice)
			output.Printf("  C - P:           $%.6f\n", report.LeftSide)
			output.Printf("  S - K*e^(-rT):   $%.6f\n", report.RightSide)
			output.Printf("  Gap:             %.2e\n", report.Gap)
			if report.Holds {
				output.Success("  ✅ Parity holds (tolerance %.0e)", report.ToleranceAbsolute)
			} else {
				output.Error("  ❌ Parity violated (tolerance %.0e)", report.ToleranceAbsolute)
			}
			if solved != nil {
				output.Println()
				output.Printf("  Implied %s from %s at $%.4f:  $%.4f\n",
					solved["solved_for"], known, knownPrice, solved["price"])
			}
			output.Println()
			output.Dim("  %s", inputsLine(m))
			return nil
		},
	}

	cmd.Flags().String("known", "", "side with an observed price: call or put")
	cmd.Flags().Float64("known-price", 0, "observed price of the known side")
	addMarketFlags(cmd, app.Config)
	return cmd
}
