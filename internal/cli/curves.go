package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/jwaldner/tetra/internal/quant"
)

// curveFamilies lists the supported sweep families for help text
var curveFamilies = []string{
	"maturity", "volatility", "rate", "strike",
	"delta", "time-decay", "smile", "pv-strike",
}

// addCurveCommands adds the sensitivity curve commands.
func addCurveCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newCurvesCmd(app))
}

func newCurvesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "curves",
		Short: "Sweep a pricing input and chart the result",
		Long: `Sweep one pricing input while the others stay fixed and render the
resulting curve family.

Families: maturity, volatility, rate, strike sweep that input across the
configured values; delta plots the hedge ratio; time-decay shows value
against days to expiration; smile is a stylized volatility smile;
pv-strike discounts the strike across maturities.

With --out the family is rendered to a PNG chart. Without it a text
summary of each curve is printed.`,
		Example: `  tetra curves --family maturity --out maturity.png
  tetra curves --family volatility --type put
  tetra curves --family smile --json`,
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

			family, _ := cmd.Flags().GetString("family")
			curves, xLabel, yLabel, err := app.buildCurves(family, typ, m)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"family":  family,
					"type":    typ,
					"x_label": xLabel,
					"y_label": yLabel,
					"curves":  curves,
				})
			}

			out, _ := cmd.Flags().GetString("out")
			if out != "" {
				title := fmt.Sprintf("%s - %s sweep", typ, family)
				if err := app.renderCurvesPNG(out, title, xLabel, yLabel, curves); err != nil {
					return err
				}
				output.Success("✅ Wrote %s (%d curves)", out, len(curves))
				return nil
			}

			output.Bold("📈 %s sweep - %s", family, typ)
			output.Println()
			for _, c := range curves {
				yMin, yMax := c.Y[0], c.Y[0]
				for _, y := range c.Y {
					if y < yMin {
						yMin = y
					}
					if y > yMax {
						yMax = y
					}
				}
				output.Printf("  %-14s %4d points, %s from %.4f to %.4f\n",
					c.Label, len(c.X), yLabel, yMin, yMax)
			}
			output.Println()
			output.Dim("  Pass --out chart.png to render the family as a chart")
			return nil
		},
	}

	cmd.Flags().String("family", "maturity", fmt.Sprintf("curve family: %v", curveFamilies))
	cmd.Flags().String("type", "call", "option type: call or put")
	cmd.Flags().String("out", "", "write a PNG chart to this path")
	addMarketFlags(cmd, app.Config)
	return cmd
}

// buildCurves evaluates one curve family. Each family sweeps one pricing
// input across the configured values while the others stay fixed.
func (app *App) buildCurves(family string, typ quant.OptionType, m marketInputs) ([]quant.Curve, string, string, error) {
	grid := quant.PriceGrid(app.Config.Grid.MinPrice, app.Config.Grid.MaxPrice, app.Config.Grid.Step)
	sweeps := app.Config.Curves

	var (
		curves []quant.Curve
		xLabel = "Underlying Price ($)"
		yLabel = "Option Price ($)"
	)
	switch family {
	case "maturity":
		curves = quant.PriceVsSpotByMaturity(typ, grid, m.Strike, m.Rate, m.Volatility, sweeps.Maturities)
	case "volatility":
		curves = quant.PriceVsSpotByVolatility(typ, grid, m.Strike, m.Rate, m.Maturity, sweeps.Volatilities)
	case "rate":
		curves = quant.PriceVsSpotByRate(typ, grid, m.Strike, m.Volatility, m.Maturity, sweeps.Rates)
	case "strike":
		curves = quant.PriceVsSpotByStrike(typ, grid, m.Rate, m.Volatility, m.Maturity, sweeps.Strikes)
	case "delta":
		curves = []quant.Curve{quant.DeltaCurve(typ, grid, m.Strike, m.Rate, m.Volatility, m.Maturity)}
		yLabel = "Delta"
	case "time-decay":
		curves = quant.TimeDecayCurves(typ, m.Strike, m.Rate, m.Volatility)
		xLabel = "Days to Expiration"
	case "smile":
		curves = []quant.Curve{quant.VolatilitySmile(m.Volatility, m.Strike, sweeps.Strikes)}
		xLabel = "Strike ($)"
		yLabel = "Implied Volatility"
	case "pv-strike":
		maturities := quant.Linspace(0, 2, 100)
		curves = []quant.Curve{quant.DiscountedStrikeCurve(m.Strike, m.Rate, maturities)}
		xLabel = "Years to Expiration"
		yLabel = "Present Value of Strike ($)"
	default:
		return nil, "", "", fmt.Errorf("unknown curve family %q: expected one of %v", family, curveFamilies)
	}
	return curves, xLabel, yLabel, nil
}

// renderCurvesPNG renders a curve family to a PNG file.
func (app *App) renderCurvesPNG(path, title, xLabel, yLabel string, curves []quant.Curve) error {
	series := make([]chart.Series, 0, len(curves))
	for _, c := range curves {
		series = append(series, chart.ContinuousSeries{
			Name:    c.Label,
			XValues: c.X,
			YValues: c.Y,
		})
	}

	ch := chart.Chart{
		Title:  title,
		Width:  app.Config.Chart.Width,
		Height: app.Config.Chart.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 24},
		},
		XAxis:  chart.XAxis{Name: xLabel},
		YAxis:  chart.YAxis{Name: yLabel},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := ch.Render(chart.PNG, f); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	return nil
}
