package cli

import (
	"fmt"
	"math"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/jwaldner/tetra/internal/models"
	"github.com/jwaldner/tetra/internal/quant"
	"github.com/jwaldner/tetra/internal/strategy"
)

// addStrategyCommands adds the multi-leg strategy commands.
func addStrategyCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newStrategyCmd(app))
}

func newStrategyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strategy",
		Short: "Build and analyze multi-leg strategies",
		Long: `Build named option strategies from the catalog and analyze their
profit profile: net premium, maximum profit and loss, and breakevens.`,
	}

	cmd.AddCommand(newStrategyListCmd(app))
	cmd.AddCommand(newStrategyShowCmd(app))
	return cmd
}

func newStrategyListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the strategy catalog",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			entries := strategy.Catalog()

			if output.IsJSON() {
				output.JSON(entries)
				return
			}

			output.Bold("📋 Strategy catalog")
			output.Println()
			table := tablewriter.NewWriter(output.Writer())
			table.SetHeader([]string{"Name", "Outlook", "Reward", "Risk"})
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetBorder(false)
			table.SetColWidth(46)
			for _, s := range entries {
				table.Append([]string{s.Name, s.Outlook, s.RewardNote, s.RiskNote})
			}
			table.Render()
		},
	}
}

func newStrategyShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Analyze a catalog strategy",
		Long: `Build a catalog strategy and report its legs, metrics, and profit
diagram.

Strikes default to a band around the configured strike. Premiums left
unset are derived by pricing each leg with Black-Scholes at the
configured market defaults.`,
		Example: `  tetra strategy show straddle
  tetra strategy show bull-call-spread --strike1 95 --strike2 105
  tetra strategy show butterfly --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			name := args[0]

			params := defaultParams(name, app.Config.Pricing.Strike)
			if cmd.Flags().Changed("strike1") {
				params.Strike1, _ = cmd.Flags().GetFloat64("strike1")
			}
			if cmd.Flags().Changed("strike2") {
				params.Strike2, _ = cmd.Flags().GetFloat64("strike2")
			}
			if cmd.Flags().Changed("strike3") {
				params.Strike3, _ = cmd.Flags().GetFloat64("strike3")
			}
			if cmd.Flags().Changed("premium1") {
				params.Premium1, _ = cmd.Flags().GetFloat64("premium1")
			}
			if cmd.Flags().Changed("premium2") {
				params.Premium2, _ = cmd.Flags().GetFloat64("premium2")
			}
			if cmd.Flags().Changed("premium3") {
				params.Premium3, _ = cmd.Flags().GetFloat64("premium3")
			}

			strat, err := strategy.Build(name, params)
			if err != nil {
				return err
			}
			derivePremiums(app, strat.Legs)

			grid, err := app.resolveGrid(cmd)
			if err != nil {
				return err
			}

			metrics, err := strategy.ComputeMetrics(strat.Legs, grid)
			if err != nil {
				return err
			}
			profit := strategy.ProfitCurve(strat.Legs, grid)

			if csvPath, _ := cmd.Flags().GetString("csv"); csvPath != "" {
				rows := make([]models.StrategyCSVRow, len(grid))
				for i, s := range grid {
					rows[i] = models.StrategyCSVRow{Spot: s, CombinedProfit: profit[i]}
				}
				if err := writeCSVFile(csvPath, rows); err != nil {
					return err
				}
				output.Success("✅ Wrote %s (%d rows)", csvPath, len(rows))
				return nil
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"strategy": strat,
					"metrics":  metrics,
					"grid":     grid,
					"profit":   profit,
				})
			}

			output.Bold("🧩 %s - %s", strat.DisplayName, strat.Outlook)
			output.Println(strat.Description)
			output.Println()

			table := tablewriter.NewWriter(output.Writer())
			table.SetHeader([]string{"#", "Side", "Type", "Strike", "Premium", "Qty"})
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetBorder(false)
			for i, leg := range strat.Legs {
				table.Append([]string{
					strconv.Itoa(i + 1),
					string(leg.Side),
					string(leg.Type),
					fmt.Sprintf("%.2f", leg.Strike),
					fmt.Sprintf("%.2f", leg.Premium),
					strconv.Itoa(leg.Quantity),
				})
			}
			table.Render()
			output.Println()

			for _, line := range asciiPlot(grid, profit, plotWidth, plotHeight) {
				output.Println(line)
			}
			output.Println()

			premiumWord := "debit"
			if metrics.NetPremium < 0 {
				premiumWord = "credit"
			}
			output.Printf("  Net premium:  $%.2f %s\n", math.Abs(metrics.NetPremium), premiumWord)
			output.Printf("  Max profit:   %s\n", output.Green(boundedAmount(metrics.MaxProfit, metrics.ProfitUnbounded)))
			output.Printf("  Max loss:     %s\n", output.Red(boundedAmount(metrics.MaxLoss, metrics.LossUnbounded)))
			if len(metrics.Breakevens) == 0 {
				output.Printf("  Breakevens:   none on the evaluated grid\n")
			} else {
				output.Printf("  Breakevens:  ")
				for _, be := range metrics.Breakevens {
					output.Printf(" $%.2f", be)
				}
				output.Println()
			}
			return nil
		},
	}

	cmd.Flags().Float64("strike1", 0, "first strike (defaults near the configured strike)")
	cmd.Flags().Float64("strike2", 0, "second strike")
	cmd.Flags().Float64("strike3", 0, "third strike (butterfly only)")
	cmd.Flags().Float64("premium1", 0, "first leg premium (derived from the model when unset)")
	cmd.Flags().Float64("premium2", 0, "second leg premium")
	cmd.Flags().Float64("premium3", 0, "third leg premium")
	cmd.Flags().String("csv", "", "write the combined profit grid to this CSV file")
	addGridFlags(cmd, app.Config)
	return cmd
}

// defaultParams picks strikes around the configured default strike
func defaultParams(name string, k float64) strategy.BuildParams {
	switch name {
	case "straddle":
		return strategy.BuildParams{Strike1: k}
	case "strangle", "risk-reversal":
		return strategy.BuildParams{Strike1: k - 10, Strike2: k + 10}
	case "butterfly":
		return strategy.BuildParams{Strike1: k - 10, Strike2: k, Strike3: k + 10}
	default:
		return strategy.BuildParams{Strike1: k - 5, Strike2: k + 5}
	}
}

// derivePremiums prices zero-premium legs with Black-Scholes at the
// configured market defaults, rounded to cents like a screen quote.
func derivePremiums(app *App, legs []strategy.Leg) {
	p := app.Config.Pricing
	for i := range legs {
		if legs[i].Premium != 0 {
			continue
		}
		price, err := quant.Price(legs[i].Type, p.Spot, legs[i].Strike, p.Rate, p.Volatility, p.MaturityYears)
		if err != nil {
			continue
		}
		legs[i].Premium = math.Round(price*100) / 100
	}
}

// boundedAmount formats a metric that may be unbounded on one side
func boundedAmount(v float64, unbounded bool) string {
	if unbounded {
		return "unlimited"
	}
	return fmt.Sprintf("$%.2f", v)
}
