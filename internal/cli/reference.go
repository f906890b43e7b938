package cli

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// addReferenceCommands adds the glossary, scenario, and rate curve commands.
func addReferenceCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newGlossaryCmd(app))
	rootCmd.AddCommand(newScenariosCmd(app))
	rootCmd.AddCommand(newRatesCmd(app))
}

func newGlossaryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "glossary [query]",
		Short: "Look up option pricing terms",
		Long: `Browse the glossary of option pricing terms.

With a query argument only matching terms are shown. Use --category to
filter by category instead.`,
		Example: `  tetra glossary
  tetra glossary delta
  tetra glossary --category greeks`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			category, _ := cmd.Flags().GetString("category")
			terms := app.Glossary.All()
			switch {
			case len(args) > 0:
				terms = app.Glossary.Search(args[0])
			case category != "":
				terms = app.Glossary.ByCategory(category)
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"count": len(terms),
					"terms": terms,
				})
			}

			if len(terms) == 0 {
				output.Warning("No glossary terms matched")
				output.Dim("Categories: %v", app.Glossary.Categories())
				return nil
			}

			output.Bold("📖 Glossary (%d terms)", len(terms))
			output.Println()
			table := tablewriter.NewWriter(output.Writer())
			table.SetHeader([]string{"Term", "Category", "Definition"})
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetBorder(false)
			table.SetColWidth(70)
			for _, t := range terms {
				table.Append([]string{t.Term, t.Category, t.Definition})
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().String("category", "", "filter terms by category")
	return cmd
}

func newScenariosCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "List market scenario presets",
		Long: `List the named market scenarios that --scenario accepts.

Each scenario is a complete set of pricing inputs: spot, strike, rate,
volatility, and maturity.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			scenarios, err := app.Scenarios.List()
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"source":    app.Scenarios.ProviderName(),
					"count":     len(scenarios),
					"scenarios": scenarios,
				})
			}

			output.Bold("🗂  Market scenarios (%s)", app.Scenarios.ProviderName())
			output.Println()
			table := tablewriter.NewWriter(output.Writer())
			table.SetHeader([]string{"Name", "Spot", "Strike", "Rate", "Vol", "T (y)", "Description"})
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetBorder(false)
			table.SetColWidth(48)
			for _, sc := range scenarios {
				table.Append([]string{
					sc.Name,
					fmt.Sprintf("%.0f", sc.Spot),
					fmt.Sprintf("%.0f", sc.Strike),
					fmt.Sprintf("%.2f%%", sc.Rate*100),
					fmt.Sprintf("%.0f%%", sc.Volatility*100),
					fmt.Sprintf("%.2f", sc.MaturityYears),
					sc.Description,
				})
			}
			table.Render()
			return nil
		},
	}
}

func newRatesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Show the risk-free rate curve",
		Long: `Show the zero curve used when --curve-rate is passed to pricing
commands. Rates between tenors are linearly interpolated; beyond the
curve the nearest tenor applies flat.`,
		Example: `  tetra rates
  tetra rates --maturity 1.5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			curve := app.Rates.GetCurve()

			if cmd.Flags().Changed("maturity") {
				t, _ := cmd.Flags().GetFloat64("maturity")
				rate := app.Rates.RateFor(t)
				if output.IsJSON() {
					return output.JSON(map[string]interface{}{
						"maturity_years": t,
						"rate":           rate,
						"source":         curve.Source,
					})
				}
				output.Printf("Rate for T=%.2fy: %.4f%% (%s)\n", t, rate*100, curve.Source)
				return nil
			}

			if output.IsJSON() {
				return output.JSON(curve)
			}

			output.Bold("🏛️  Risk-free zero curve (%s, as of %s)", curve.Source, curve.AsOf)
			output.Println()
			table := tablewriter.NewWriter(output.Writer())
			table.SetHeader([]string{"Maturity (y)", "Rate"})
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetBorder(false)
			for _, tn := range curve.Tenors {
				table.Append([]string{
					fmt.Sprintf("%.4g", tn.MaturityYears),
					fmt.Sprintf("%.2f%%", tn.Rate*100),
				})
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().Float64("maturity", 0, "interpolate the rate for this maturity in years")
	return cmd
}
