package cli

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"

	"github.com/jwaldner/tetra/internal/config"
	"github.com/jwaldner/tetra/internal/models"
	"github.com/jwaldner/tetra/internal/quant"
)

// Canvas size for terminal payoff diagrams
const (
	plotWidth  = 60
	plotHeight = 15
)

func newPayoffCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payoff",
		Short: "Draw a payoff diagram in the terminal",
		Long: `Evaluate a single-leg position at expiration over a price grid and draw
the profit curve as an ASCII diagram.

Binary contracts are supported here: binary-call and binary-put pay a
fixed $1 when they finish in the money.`,
		Example: `  tetra payoff --type call --side long
  tetra payoff --type put --side short --strike 95 --premium 4.20
  tetra payoff --type binary-call --premium 0.55 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			typStr, _ := cmd.Flags().GetString("type")
			typ, err := quant.ParseOptionType(typStr)
			if err != nil {
				return err
			}

			sideStr, _ := cmd.Flags().GetString("side")
			side, err := quant.ParseSide(sideStr)
			if err != nil {
				return err
			}

			strike, _ := cmd.Flags().GetFloat64("strike")
			premium, _ := cmd.Flags().GetFloat64("premium")
			if strike <= 0 {
				return fmt.Errorf("strike must be positive, got %g", strike)
			}
			if premium < 0 {
				return fmt.Errorf("premium must not be negative, got %g", premium)
			}

			grid, err := app.resolveGrid(cmd)
			if err != nil {
				return err
			}

			payoff := quant.PayoffCurve(typ, side, grid, strike)
			profit := quant.ProfitCurve(typ, side, grid, strike, premium)
			breakeven := quant.Breakeven(typ, strike, premium)

			maxProfit, maxLoss := profit[0], profit[0]
			for _, p := range profit {
				maxProfit = math.Max(maxProfit, p)
				maxLoss = math.Min(maxLoss, p)
			}

			if csvPath, _ := cmd.Flags().GetString("csv"); csvPath != "" {
				rows := make([]models.PayoffCSVRow, len(grid))
				for i, s := range grid {
					rows[i] = models.PayoffCSVRow{Spot: s, Payoff: payoff[i], Profit: profit[i]}
				}
				if err := writeCSVFile(csvPath, rows); err != nil {
					return err
				}
				output.Success("✅ Wrote %s (%d rows)", csvPath, len(rows))
				return nil
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"type":       typ,
					"side":       side,
					"strike":     strike,
					"premium":    premium,
					"grid":       grid,
					"payoff":     payoff,
					"profit":     profit,
					"breakeven":  breakeven,
					"max_profit": maxProfit,
					"max_loss":   maxLoss,
				})
			}

			output.Bold("📉 %s %s - K=%.2f, premium $%.2f", side, typ, strike, premium)
			output.Println()
			for _, line := range asciiPlot(grid, profit, plotWidth, plotHeight) {
				output.Println(line)
			}
			output.Println()
			if typ == quant.Call || typ == quant.Put {
				output.Printf("  Breakeven:   $%.2f\n", breakeven)
			}
			output.Printf("  Max profit:  %s on the evaluated grid\n", output.Green(fmt.Sprintf("$%.2f", maxProfit)))
			output.Printf("  Max loss:    %s on the evaluated grid\n", output.Red(fmt.Sprintf("$%.2f", maxLoss)))
			return nil
		},
	}

	cmd.Flags().String("type", "call", "option type: call, put, binary-call, binary-put")
	cmd.Flags().String("side", "long", "position side: long or short")
	cmd.Flags().Float64("strike", app.Config.Pricing.Strike, "strike price")
	cmd.Flags().Float64("premium", app.Config.Pricing.Premium, "premium paid or received")
	cmd.Flags().String("csv", "", "write the evaluated grid to this CSV file")
	addGridFlags(cmd, app.Config)
	return cmd
}

// writeCSVFile marshals rows to a CSV file.
func writeCSVFile(path string, rows interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := gocsv.Marshal(rows, f); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}

// addGridFlags registers the evaluation grid flags with configured defaults.
func addGridFlags(cmd *cobra.Command, cfg *config.Config) {
	cmd.Flags().Float64("grid-min", cfg.Grid.MinPrice, "lowest underlying price to evaluate")
	cmd.Flags().Float64("grid-max", cfg.Grid.MaxPrice, "highest underlying price to evaluate")
	cmd.Flags().Float64("grid-step", cfg.Grid.Step, "spacing between evaluated prices")
}

// resolveGrid builds the evaluation grid from flags.
func (app *App) resolveGrid(cmd *cobra.Command) ([]float64, error) {
	min, _ := cmd.Flags().GetFloat64("grid-min")
	max, _ := cmd.Flags().GetFloat64("grid-max")
	step, _ := cmd.Flags().GetFloat64("grid-step")

	grid := quant.PriceGrid(min, max, step)
	if len(grid) == 0 {
		return nil, fmt.Errorf("grid bounds produce no prices: min=%g max=%g step=%g", min, max, step)
	}
	return grid, nil
}

// asciiPlot draws ys against xs on a character canvas. The zero level gets
// its own axis row so profit and loss regions read at a glance.
func asciiPlot(xs, ys []float64, width, height int) []string {
	if len(xs) == 0 || len(xs) != len(ys) || width < 2 || height < 2 {
		return nil
	}

	yMin, yMax := ys[0], ys[0]
	for _, y := range ys {
		yMin = math.Min(yMin, y)
		yMax = math.Max(yMax, y)
	}
	if yMax-yMin < 1e-12 {
		// Flat curve still needs a nonzero span to land on a row
		yMax = yMin + 1
	}

	rowFor := func(y float64) int {
		frac := (y - yMin) / (yMax - yMin)
		row := int(math.Round(float64(height-1) * (1 - frac)))
		if row < 0 {
			row = 0
		}
		if row > height-1 {
			row = height - 1
		}
		return row
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	zeroRow := -1
	if yMin < 0 && yMax > 0 {
		zeroRow = rowFor(0)
		for j := 0; j < width; j++ {
			canvas[zeroRow][j] = '─'
		}
	}

	// Resample the curve onto the canvas columns
	for j := 0; j < width; j++ {
		idx := j * (len(xs) - 1) / (width - 1)
		canvas[rowFor(ys[idx])][j] = '●'
	}

	lines := make([]string, 0, height+2)
	for i, row := range canvas {
		label := strings.Repeat(" ", 10)
		switch {
		case i == 0:
			label = fmt.Sprintf("%9.2f ", yMax)
		case i == height-1:
			label = fmt.Sprintf("%9.2f ", yMin)
		case i == zeroRow:
			label = fmt.Sprintf("%9.2f ", 0.0)
		}
		lines = append(lines, label+"│"+string(row))
	}

	lines = append(lines, strings.Repeat(" ", 10)+"└"+strings.Repeat("─", width))
	lo := fmt.Sprintf("%.0f", xs[0])
	hi := fmt.Sprintf("%.0f", xs[len(xs)-1])
	lines = append(lines, fmt.Sprintf("%s%-*s%s", strings.Repeat(" ", 11), width-len(hi), lo, hi))
	return lines
}
