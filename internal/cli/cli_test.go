package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwaldner/tetra/internal/audit"
	"github.com/jwaldner/tetra/internal/config"
	"github.com/jwaldner/tetra/internal/glossary"
	"github.com/jwaldner/tetra/internal/quant"
	"github.com/jwaldner/tetra/internal/scenario"
	"github.com/jwaldner/tetra/internal/strategy"
)

// runCommand executes the CLI with a fresh command tree and captured output.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(config.Load())
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// runJSON executes the CLI in JSON mode and decodes the output.
func runJSON(t *testing.T, out interface{}, args ...string) {
	t.Helper()
	text, err := runCommand(t, append(args, "--json")...)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(text), out), "output: %s", text)
}

func TestVersionCommand(t *testing.T) {
	text, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, text, "Tetra v1.0.0")

	var got map[string]string
	runJSON(t, &got, "version")
	assert.Equal(t, "closed-form", got["engine"])
}

func TestPriceCommandReferenceValues(t *testing.T) {
	var got struct {
		Price            float64 `json:"price"`
		IntrinsicValue   float64 `json:"intrinsic_value"`
		TimeValue        float64 `json:"time_value"`
		Moneyness        string  `json:"moneyness"`
		Breakeven        float64 `json:"breakeven"`
		DiscountedStrike float64 `json:"discounted_strike"`
	}
	runJSON(t, &got, "price", "--type", "call")

	assert.InDelta(t, 10.4506, got.Price, 1e-4)
	assert.Zero(t, got.IntrinsicValue)
	assert.InDelta(t, got.Price, got.TimeValue, 1e-12)
	assert.Equal(t, "ATM", got.Moneyness)
	assert.InDelta(t, 100+got.Price, got.Breakeven, 1e-12)
	assert.InDelta(t, 95.1229, got.DiscountedStrike, 1e-4)
}

func TestPriceCommandPut(t *testing.T) {
	var got struct {
		Price float64 `json:"price"`
	}
	runJSON(t, &got, "price", "--type", "put")
	assert.InDelta(t, 5.5735, got.Price, 1e-4)
}

func TestPriceCommandTextOutput(t *testing.T) {
	text, err := runCommand(t, "price", "--type", "call")
	require.NoError(t, err)
	assert.Contains(t, text, "fair value $10.4506")
	assert.Contains(t, text, "Moneyness:        ATM")
}

func TestPriceCommandRejectsBadInputs(t *testing.T) {
	_, err := runCommand(t, "price", "--vol", "-0.2")
	assert.Error(t, err)

	_, err = runCommand(t, "price", "--type", "swaption")
	assert.Error(t, err)
}

func TestPriceCommandScenarioAndOverrides(t *testing.T) {
	var got struct {
		Inputs marketInputs `json:"inputs"`
	}
	runJSON(t, &got, "price", "--scenario", "high-vol")
	assert.InDelta(t, 0.40, got.Inputs.Volatility, 1e-12)

	// Explicit flags beat the scenario preset
	runJSON(t, &got, "price", "--scenario", "high-vol", "--vol", "0.25")
	assert.InDelta(t, 0.25, got.Inputs.Volatility, 1e-12)

	_, err := runCommand(t, "price", "--scenario", "flash-crash")
	assert.Error(t, err)
}

func TestPriceCommandCurveRate(t *testing.T) {
	var got struct {
		Inputs marketInputs `json:"inputs"`
	}
	runJSON(t, &got, "price", "--curve-rate")
	// One-year tenor on the builtin curve
	assert.InDelta(t, 0.0470, got.Inputs.Rate, 1e-12)
}

func TestGreeksCommand(t *testing.T) {
	var got struct {
		Greeks      quant.Greeks `json:"greeks"`
		ThetaPerDay float64      `json:"theta_per_day"`
	}
	runJSON(t, &got, "greeks", "--type", "call")

	assert.InDelta(t, 0.6368, got.Greeks.Delta, 1e-4)
	assert.InDelta(t, 0.0188, got.Greeks.Gamma, 1e-4)
	assert.InDelta(t, 37.524, got.Greeks.Vega, 1e-3)
	assert.InDelta(t, got.Greeks.Theta/365, got.ThetaPerDay, 1e-12)
}

func TestIVCommandRoundTrip(t *testing.T) {
	var got struct {
		ImpliedVolatility float64 `json:"implied_volatility"`
		Residual          float64 `json:"residual"`
	}
	runJSON(t, &got, "iv", "--type", "call", "--price", "14.2313")

	assert.InDelta(t, 0.30, got.ImpliedVolatility, 1e-3)
	assert.Less(t, got.Residual, 1e-6)
}

func TestIVCommandRejectsUnreachablePrice(t *testing.T) {
	_, err := runCommand(t, "iv", "--type", "call", "--price", "0.0001")
	assert.Error(t, err)
}

func TestParityCommand(t *testing.T) {
	var got struct {
		Parity quant.ParityReport `json:"parity"`
	}
	runJSON(t, &got, "parity")

	assert.True(t, got.Parity.Holds)
	assert.InDelta(t, 10.4506, got.Parity.CallPrice, 1e-4)
	assert.InDelta(t, 5.5735, got.Parity.PutPrice, 1e-4)
	assert.Less(t, got.Parity.Gap, 1e-9)
}

func TestParityCommandSolvesPut(t *testing.T) {
	var got struct {
		Solved struct {
			SolvedFor string  `json:"solved_for"`
			Price     float64 `json:"price"`
		} `json:"solved"`
	}
	runJSON(t, &got, "parity", "--known", "call", "--known-price", "10.450584")

	assert.Equal(t, "put", got.Solved.SolvedFor)
	assert.InDelta(t, 5.5735, got.Solved.Price, 1e-3)
}

func TestParityCommandRejectsUnknownSide(t *testing.T) {
	_, err := runCommand(t, "parity", "--known", "swap", "--known-price", "1")
	assert.Error(t, err)
}

func TestPayoffCommandJSON(t *testing.T) {
	var got struct {
		Grid      []float64 `json:"grid"`
		Profit    []float64 `json:"profit"`
		Breakeven float64   `json:"breakeven"`
		MaxProfit float64   `json:"max_profit"`
		MaxLoss   float64   `json:"max_loss"`
	}
	runJSON(t, &got, "payoff", "--type", "call", "--side", "long")

	require.Len(t, got.Grid, 120)
	assert.InDelta(t, -10.0, got.Profit[0], 1e-12)
	assert.InDelta(t, 110.0, got.Breakeven, 1e-12)
	// Last grid point is 159 on the half-open default grid
	assert.InDelta(t, 49.0, got.MaxProfit, 1e-12)
	assert.InDelta(t, -10.0, got.MaxLoss, 1e-12)
}

func TestPayoffCommandASCII(t *testing.T) {
	text, err := runCommand(t, "payoff", "--type", "call", "--side", "long")
	require.NoError(t, err)

	assert.Contains(t, text, "Breakeven:   $110.00")
	assert.Contains(t, text, "$49.00")
	assert.Contains(t, text, "$-10.00")
	// The diagram frame made it to the terminal
	assert.Contains(t, text, "└")
	assert.Contains(t, text, "●")
}

func TestPayoffCommandShortPut(t *testing.T) {
	var got struct {
		Profit    []float64 `json:"profit"`
		Breakeven float64   `json:"breakeven"`
	}
	runJSON(t, &got, "payoff", "--type", "put", "--side", "short", "--premium", "5")

	// At S=40 the short put is down strike-spot minus premium received
	assert.InDelta(t, -55.0, got.Profit[0], 1e-12)
	assert.InDelta(t, 95.0, got.Breakeven, 1e-12)
}

func TestPayoffCommandRejectsBadInputs(t *testing.T) {
	_, err := runCommand(t, "payoff", "--strike", "-5")
	assert.Error(t, err)

	_, err = runCommand(t, "payoff", "--grid-min", "100", "--grid-max", "50")
	assert.Error(t, err)
}

func TestStrategyListCommand(t *testing.T) {
	text, err := runCommand(t, "strategy", "list")
	require.NoError(t, err)
	assert.Contains(t, text, "bull-call-spread")
	assert.Contains(t, text, "straddle")

	var entries []strategy.Strategy
	runJSON(t, &entries, "strategy", "list")
	assert.Len(t, entries, 6)
}

func TestStrategyShowCommand(t *testing.T) {
	var got struct {
		Strategy strategy.Strategy `json:"strategy"`
		Metrics  strategy.Metrics  `json:"metrics"`
	}
	runJSON(t, &got, "strategy", "show", "bull-call-spread",
		"--premium1", "7", "--premium2", "2")

	require.Len(t, got.Strategy.Legs, 2)
	assert.InDelta(t, 95.0, got.Strategy.Legs[0].Strike, 1e-12)
	assert.InDelta(t, 105.0, got.Strategy.Legs[1].Strike, 1e-12)
	assert.InDelta(t, 5.0, got.Metrics.NetPremium, 1e-12)
	assert.InDelta(t, 5.0, got.Metrics.MaxProfit, 1e-9)
	assert.InDelta(t, 5.0, got.Metrics.MaxLoss, 1e-9)
	require.Len(t, got.Metrics.Breakevens, 1)
	assert.InDelta(t, 100.0, got.Metrics.Breakevens[0], 1e-9)
}

func TestStrategyShowDerivesPremiums(t *testing.T) {
	var got struct {
		Strategy strategy.Strategy `json:"strategy"`
		Metrics  strategy.Metrics  `json:"metrics"`
	}
	runJSON(t, &got, "strategy", "show", "straddle")

	require.Len(t, got.Strategy.Legs, 2)
	sum := 0.0
	for _, leg := range got.Strategy.Legs {
		assert.Greater(t, leg.Premium, 0.0)
		sum += leg.Premium
	}
	assert.InDelta(t, sum, got.Metrics.NetPremium, 1e-9)
	assert.True(t, got.Metrics.ProfitUnbounded)
}

func TestStrategyShowUnknownName(t *testing.T) {
	_, err := runCommand(t, "strategy", "show", "iron-condor")
	assert.Error(t, err)
}

func TestCurvesCommandFamilies(t *testing.T) {
	families := map[string]int{
		"maturity":   6,
		"volatility": 5,
		"rate":       4,
		"strike":     5,
		"delta":      1,
		"time-decay": 3,
		"smile":      1,
		"pv-strike":  1,
	}
	for family, want := range families {
		var got struct {
			Curves []quant.Curve `json:"curves"`
		}
		runJSON(t, &got, "curves", "--family", family)
		assert.Len(t, got.Curves, want, "family %s", family)
	}
}

func TestCurvesCommandUnknownFamily(t *testing.T) {
	_, err := runCommand(t, "curves", "--family", "banana")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown curve family")
}

func TestCurvesCommandWritesPNG(t *testing.T) {
	out := filepath.Join(t.TempDir(), "delta.png")
	text, err := runCommand(t, "curves", "--family", "delta", "--out", out)
	require.NoError(t, err)
	assert.Contains(t, text, "Wrote")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Greater(t, len(data), 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, data[:8])
}

func TestPayoffCommandWritesCSV(t *testing.T) {
	out := filepath.Join(t.TempDir(), "payoff.csv")
	_, err := runCommand(t, "payoff", "--grid-min", "90", "--grid-max", "110", "--grid-step", "10", "--csv", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	// Header plus the half-open grid rows 90 and 100
	require.Len(t, lines, 3)
	assert.Equal(t, "spot,payoff,profit", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "90,"))
}

func TestStrategyShowWritesCSV(t *testing.T) {
	out := filepath.Join(t.TempDir(), "strategy.csv")
	_, err := runCommand(t, "strategy", "show", "straddle", "--csv", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 121)
	assert.Equal(t, "spot,combined_profit", lines[0])
}

func TestGlossaryCommand(t *testing.T) {
	var got struct {
		Count int             `json:"count"`
		Terms []glossary.Term `json:"terms"`
	}
	runJSON(t, &got, "glossary", "delta")

	require.Greater(t, got.Count, 0)
	found := false
	for _, term := range got.Terms {
		if strings.EqualFold(term.Term, "delta") {
			found = true
		}
	}
	assert.True(t, found, "expected the Delta term in %v", got.Terms)
}

func TestScenariosCommand(t *testing.T) {
	var got struct {
		Source    string              `json:"source"`
		Count     int                 `json:"count"`
		Scenarios []scenario.Scenario `json:"scenarios"`
	}
	runJSON(t, &got, "scenarios")

	assert.Equal(t, "builtin", got.Source)
	assert.Equal(t, 6, got.Count)
	require.NotEmpty(t, got.Scenarios)
	assert.Equal(t, "baseline", got.Scenarios[0].Name)
}

func TestRatesCommand(t *testing.T) {
	var curve struct {
		Tenors []struct {
			MaturityYears float64 `json:"maturity_years"`
			Rate          float64 `json:"rate"`
		} `json:"tenors"`
	}
	runJSON(t, &curve, "rates")
	assert.Len(t, curve.Tenors, 8)

	var point struct {
		Rate float64 `json:"rate"`
	}
	runJSON(t, &point, "rates", "--maturity", "1")
	assert.InDelta(t, 0.0470, point.Rate, 1e-12)
}

func TestAuditCommand(t *testing.T) {
	var rep audit.RunReport
	runJSON(t, &rep, "audit")

	assert.True(t, rep.Passed)
	assert.Len(t, rep.Results, 5)
	assert.Zero(t, rep.TotalFailures)
}

func TestAuditListCommand(t *testing.T) {
	text, err := runCommand(t, "audit", "--list")
	require.NoError(t, err)
	assert.Contains(t, text, "put-call-parity")
	assert.Contains(t, text, "iv-roundtrip")
}

func TestAsciiPlotShape(t *testing.T) {
	xs := []float64{0, 1, 2, 3, 4}
	ys := []float64{-2, -1, 0, 1, 2}
	lines := asciiPlot(xs, ys, 20, 9)

	// height rows plus the axis and label lines
	require.Len(t, lines, 11)
	assert.Contains(t, lines[0], "2.00")
	assert.Contains(t, lines[8], "-2.00")

	zeroLine := ""
	for _, line := range lines {
		if strings.Contains(line, "0.00") && strings.Contains(line, "─") {
			zeroLine = line
		}
	}
	assert.NotEmpty(t, zeroLine, "expected a zero axis row")
}

func TestAsciiPlotDegenerateInput(t *testing.T) {
	assert.Nil(t, asciiPlot(nil, nil, 20, 9))
	assert.Nil(t, asciiPlot([]float64{1}, []float64{1, 2}, 20, 9))
	assert.Nil(t, asciiPlot([]float64{1, 2}, []float64{1, 2}, 1, 9))
}
