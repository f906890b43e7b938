package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwaldner/tetra/internal/audit"
	"github.com/jwaldner/tetra/internal/config"
	"github.com/jwaldner/tetra/internal/glossary"
	"github.com/jwaldner/tetra/internal/models"
	"github.com/jwaldner/tetra/internal/rates"
	"github.com/jwaldner/tetra/internal/scenario"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	cfg := config.Load()
	return NewHandler(cfg, rates.NewService(""), scenario.NewManager(""),
		glossary.NewService(""), audit.NewCoordinator(), nil)
}

type envelope struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
	Meta    struct {
		RequestID    string  `json:"request_id"`
		Timestamp    string  `json:"timestamp"`
		ProcessingMs float64 `json:"processing_ms"`
		Engine       string  `json:"engine"`
	} `json:"meta"`
}

func getEnvelope(t *testing.T, handler http.HandlerFunc, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rr := httptest.NewRecorder()
	handler(rr, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), "body: %s", rr.Body.String())
	return rr, env
}

func TestHealthHandler(t *testing.T) {
	h := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rr := httptest.NewRecorder()
	h.HealthHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, "closed-form", resp["engine"])
}

func TestPayoffHandlerDefaults(t *testing.T) {
	h := newTestHandler(t)
	rr, env := getEnvelope(t, h.PayoffHandler, "/api/payoff")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "closed-form", env.Meta.Engine)

	var data models.PayoffData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "call", data.OptionType)
	assert.Equal(t, "long", data.Side)
	assert.Len(t, data.Grid, 120) // half-open 40..160 step 1
	assert.Len(t, data.Payoff, 120)
	assert.Len(t, data.Profit, 120)
	assert.InDelta(t, 110.0, data.Breakeven, 1e-12) // K 100 + premium 10
	assert.Equal(t, "ATM", data.Moneyness)
	assert.NotEmpty(t, data.Summary)
	assert.NotEmpty(t, data.FieldMetadata)
}

func TestPayoffHandlerShortPut(t *testing.T) {
	h := newTestHandler(t)
	rr, env := getEnvelope(t, h.PayoffHandler,
		"/api/payoff?type=put&side=short&strike=100&premium=5&spot=90&min=50&max=150&step=10")

	assert.Equal(t, http.StatusOK, rr.Code)
	var data models.PayoffData
	require.NoError(t, json.Unmarshal(env.Data, &data))

	// Short put at S=50: payoff -(100-50), profit -50+5
	assert.InDelta(t, -50.0, data.Payoff[0], 1e-12)
	assert.InDelta(t, -45.0, data.Profit[0], 1e-12)
	// Above the strike the short put keeps the full premium
	last := len(data.Profit) - 1
	assert.InDelta(t, 5.0, data.Profit[last], 1e-12)
	assert.InDelta(t, 95.0, data.Breakeven, 1e-12)
	assert.Equal(t, "ITM", data.Moneyness)
	assert.InDelta(t, 10.0, data.IntrinsicValue, 1e-12)
}

func TestPayoffHandlerRejectsBadGrid(t *testing.T) {
	h := newTestHandler(t)
	rr, env := getEnvelope(t, h.PayoffHandler, "/api/payoff?min=100&max=50")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "grid bounds")
}

func TestPriceHandlerReferenceContract(t *testing.T) {
	h := newTestHandler(t)
	rr, env := getEnvelope(t, h.PriceHandler,
		"/api/price?type=call&spot=100&strike=100&rate=0.05&vol=0.2&t=1")

	assert.Equal(t, http.StatusOK, rr.Code)
	var data models.PriceData
	require.NoError(t, json.Unmarshal(env.Data, &data))

	assert.InDelta(t, 10.4506, data.Price, 1e-3)
	assert.InDelta(t, 0.6368, data.Delta, 1e-3)
	assert.InDelta(t, 0.0188, data.Gamma, 1e-3)
	assert.InDelta(t, 37.524, data.Vega, 1e-2)
	assert.InDelta(t, -6.414, data.Theta, 1e-2)
	assert.InDelta(t, data.Theta/365.0, data.ThetaPerDay, 1e-12)
	assert.InDelta(t, 53.232, data.Rho, 1e-2)
	assert.InDelta(t, 0.0, data.IntrinsicValue, 1e-12)
	assert.InDelta(t, data.Price, data.TimeValue, 1e-12)
	assert.InDelta(t, 95.1229, data.DiscountedStrike, 1e-3)
	assert.NotEmpty(t, data.Summary["price"].Display)
}

func TestPriceHandlerExpiredFallsBackToIntrinsic(t *testing.T) {
	h := newTestHandler(t)
	rr, env := getEnvelope(t, h.PriceHandler,
		"/api/price?type=call&spot=120&strike=100&rate=0.05&vol=0.2&t=0")

	assert.Equal(t, http.StatusOK, rr.Code)
	var data models.PriceData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.InDelta(t, 20.0, data.Price, 1e-12)
	assert.InDelta(t, 1.0, data.Delta, 1e-12)
	assert.InDelta(t, 0.0, data.Vega, 1e-12)
}

func TestPriceHandlerRejectsBadInputs(t *testing.T) {
	h := newTestHandler(t)

	rr, env := getEnvelope(t, h.PriceHandler, "/api/price?strike=-5")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.False(t, env.Success)

	rr, _ = getEnvelope(t, h.PriceHandler, "/api/price?type=swaption")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPriceHandlerCurveRate(t *testing.T) {
	h := newTestHandler(t)
	rr, env := getEnvelope(t, h.PriceHandler,
		"/api/price?type=call&spot=100&strike=100&vol=0.2&t=1&curve_rate=true")

	assert.Equal(t, http.StatusOK, rr.Code)
	var data models.PriceData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	// Builtin curve quotes 4.70% at one year
	assert.InDelta(t, 0.0470, data.Rate, 1e-9)
}

func TestIVHandlerRoundTrip(t *testing.T) {
	h := newTestHandler(t)

	// Price the reference call at 30% vol, then ask the solver to recover it
	rr, env := getEnvelope(t, h.PriceHandler,
		"/api/price?type=call&spot=100&strike=100&rate=0.05&vol=0.3&t=1")
	require.Equal(t, http.StatusOK, rr.Code)
	var priced models.PriceData
	require.NoError(t, json.Unmarshal(env.Data, &priced))

	target := fmt.Sprintf("/api/iv?type=call&spot=100&strike=100&rate=0.05&t=1&price=%.6f", priced.Price)
	rr, env = getEnvelope(t, h.IVHandler, target)

	assert.Equal(t, http.StatusOK, rr.Code)
	var data models.IVData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.InDelta(t, 0.30, data.ImpliedVolatility, 1e-3)
	assert.InDelta(t, priced.Price, data.RepricedValue, 1e-3)
}

func TestIVHandlerRejectsUnreachablePrice(t *testing.T) {
	h := newTestHandler(t)
	// Below intrinsic-adjacent floor, no vol can produce this price
	rr, env := getEnvelope(t, h.IVHandler,
		"/api/iv?type=call&spot=100&strike=100&rate=0.05&t=1&price=0.0001")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.False(t, env.Success)
}

func TestParityHandlerHolds(t *testing.T) {
	h := newTestHandler(t)
	rr, env := getEnvelope(t, h.ParityHandler,
		"/api/parity?spot=100&strike=100&rate=0.05&vol=0.2&t=1")

	assert.Equal(t, http.StatusOK, rr.Code)
	var data models.ParityData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.True(t, data.Holds)
	assert.InDelta(t, 0.0, data.Gap, 1e-9)
	assert.InDelta(t, 10.4506, data.CallPrice, 1e-3)
	assert.InDelta(t, 5.5735, data.PutPrice, 1e-3)
	assert.Equal(t, "YES", data.Summary["holds"].Raw)
}

func TestParityHandlerSolvesPut(t *testing.T) {
	h := newTestHandler(t)
	rr, env := getEnvelope(t, h.ParityHandler,
		"/api/parity?spot=100&strike=100&rate=0.05&t=1&known=call&known_price=10.450584")

	assert.Equal(t, http.StatusOK, rr.Code)
	var data models.ParityData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "put", data.SolvedFor)
	assert.InDelta(t, 5.5735, data.SolvedPrice, 1e-3)
}

func TestStrategyHandlerDefaultsDerivePremiums(t *testing.T) {
	h := newTestHandler(t)
	rr, env := getEnvelope(t, h.StrategyHandler, "/api/strategy")

	assert.Equal(t, http.StatusOK, rr.Code)
	var data models.StrategyData
	require.NoError(t, json.Unmarshal(env.Data, &data))

	assert.Equal(t, "bull-call-spread", data.Name)
	require.Len(t, data.Legs, 2)
	assert.InDelta(t, 95.0, data.Legs[0].Strike, 1e-12)
	assert.InDelta(t, 105.0, data.Legs[1].Strike, 1e-12)
	for _, leg := range data.Legs {
		assert.Greater(t, leg.Premium, 0.0, "premium should come from the pricing model")
	}
	// Debit spread: max profit plus net premium equals the strike width
	assert.InDelta(t, 10.0, data.MaxProfit+data.NetPremium, 1e-9)
	require.Len(t, data.Breakevens, 1)
	assert.InDelta(t, 95.0+data.NetPremium, data.Breakevens[0], 0.5)
	assert.Len(t, data.LegRows, 2)
}

func TestStrategyHandlerExplicitSpread(t *testing.T) {
	h := newTestHandler(t)
	rr, env := getEnvelope(t, h.StrategyHandler,
		"/api/strategy?name=bull-call-spread&strike1=90&strike2=110&premium1=8&premium2=3")

	assert.Equal(t, http.StatusOK, rr.Code)
	var data models.StrategyData
	require.NoError(t, json.Unmarshal(env.Data, &data))

	assert.InDelta(t, 5.0, data.NetPremium, 1e-9)
	assert.InDelta(t, 15.0, data.MaxProfit, 1e-9)
	assert.InDelta(t, 5.0, data.MaxLoss, 1e-9) // loss reported as magnitude
	assert.False(t, data.ProfitUnbounded)
	assert.False(t, data.LossUnbounded)
	require.Len(t, data.Breakevens, 1)
	assert.InDelta(t, 95.0, data.Breakevens[0], 1e-9)
	assert.Len(t, data.Combined, len(data.Grid))
	assert.Len(t, data.LegCurves, 2)
}

func TestStrategyHandlerStraddle(t *testing.T) {
	h := newTestHandler(t)
	rr, env := getEnvelope(t, h.StrategyHandler,
		"/api/strategy?name=straddle&strike1=100&premium1=6&premium2=4")

	assert.Equal(t, http.StatusOK, rr.Code)
	var data models.StrategyData
	require.NoError(t, json.Unmarshal(env.Data, &data))

	assert.InDelta(t, 10.0, data.NetPremium, 1e-9)
	assert.Len(t, data.Breakevens, 2)
	assert.True(t, data.ProfitUnbounded)
}

func TestStrategyHandlerUnknownName(t *testing.T) {
	h := newTestHandler(t)
	rr, env := getEnvelope(t, h.StrategyHandler, "/api/strategy?name=iron-condor")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.False(t, env.Success)
}

func TestStrategyHandlerCustomPost(t *testing.T) {
	h := newTestHandler(t)

	body := models.CustomStrategyRequest{
		Legs: []models.StrategyLeg{
			{Type: "call", Side: "long", Strike: 100, Premium: 5, Quantity: 1},
		},
	}
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/strategy", bytes.NewReader(raw))
	rr := httptest.NewRecorder()
	h.StrategyHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	var data models.StrategyData
	require.NoError(t, json.Unmarshal(env.Data, &data))

	assert.Equal(t, "custom", data.Name)
	assert.InDelta(t, 5.0, data.NetPremium, 1e-9)
	assert.True(t, data.ProfitUnbounded)
	assert.False(t, data.LossUnbounded)
	require.Len(t, data.Breakevens, 1)
	assert.InDelta(t, 105.0, data.Breakevens[0], 1e-9)
}

func TestStrategyHandlerCustomPostRejectsBadLeg(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/strategy",
		strings.NewReader(`{"legs":[{"type":"swap","side":"long","strike":100}]}`))
	rr := httptest.NewRecorder()
	h.StrategyHandler(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestStrategiesHandlerCatalog(t *testing.T) {
	h := newTestHandler(t)
	rr, env := getEnvelope(t, h.StrategiesHandler, "/api/strategies")

	assert.Equal(t, http.StatusOK, rr.Code)
	var infos []models.StrategyInfo
	require.NoError(t, json.Unmarshal(env.Data, &infos))
	assert.Len(t, infos, 6)

	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name)
		assert.NotEmpty(t, info.DisplayName)
		assert.NotEmpty(t, info.Outlook)
		assert.NotEmpty(t, info.Legs)
	}
	assert.Contains(t, names, "bull-call-spread")
	assert.Contains(t, names, "butterfly")
}

func TestCurvesHandlerFamilies(t *testing.T) {
	h := newTestHandler(t)

	cases := []struct {
		family string
		curves int
		xLabel string
	}{
		{"maturity", 6, "Underlying Price ($)"},
		{"volatility", 5, "Underlying Price ($)"},
		{"rate", 4, "Underlying Price ($)"},
		{"strike", 5, "Underlying Price ($)"},
		{"delta", 1, "Underlying Price ($)"},
		{"time-decay", 3, "Days to Expiration"},
		{"smile", 1, "Strike ($)"},
		{"pv-strike", 1, "Years to Expiration"},
	}
	for _, tc := range cases {
		t.Run(tc.family, func(t *testing.T) {
			rr, env := getEnvelope(t, h.CurvesHandler, "/api/curves?family="+tc.family)
			assert.Equal(t, http.StatusOK, rr.Code)

			var data models.CurvesData
			require.NoError(t, json.Unmarshal(env.Data, &data))
			assert.Equal(t, tc.family, data.Family)
			assert.Len(t, data.Curves, tc.curves)
			assert.Equal(t, tc.xLabel, data.XLabel)
			for _, c := range data.Curves {
				assert.Equal(t, len(c.X), len(c.Y))
				assert.NotEmpty(t, c.X)
			}
		})
	}
}

func TestCurvesHandlerUnknownFamily(t *testing.T) {
	h := newTestHandler(t)
	rr, env := getEnvelope(t, h.CurvesHandler, "/api/curves?family=skew")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "unknown curve family")
}

func TestGlossaryHandlerSearch(t *testing.T) {
	h := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/glossary?q=delta", nil)
	rr := httptest.NewRecorder()
	h.GlossaryHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Success bool            `json:"success"`
		Count   int             `json:"count"`
		Terms   []glossary.Term `json:"terms"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Greater(t, resp.Count, 0)

	found := false
	for _, term := range resp.Terms {
		if strings.EqualFold(term.Term, "delta") {
			found = true
		}
	}
	assert.True(t, found, "search for delta should surface the Delta term")
}

func TestScenariosHandlerBuiltin(t *testing.T) {
	h := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/scenarios", nil)
	rr := httptest.NewRecorder()
	h.ScenariosHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Success   bool                `json:"success"`
		Count     int                 `json:"count"`
		Source    string              `json:"source"`
		Scenarios []scenario.Scenario `json:"scenarios"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "builtin", resp.Source)
	assert.Equal(t, 6, resp.Count)
	assert.Equal(t, "baseline", resp.Scenarios[0].Name)
}

func TestScenarioHandlerByName(t *testing.T) {
	h := newTestHandler(t)
	router := mux.NewRouter()
	router.HandleFunc("/api/scenarios/{name}", h.ScenarioHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/scenarios/high-vol", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	var sc scenario.Scenario
	require.NoError(t, json.Unmarshal(env.Data, &sc))
	assert.Equal(t, "high-vol", sc.Name)
	assert.InDelta(t, 0.40, sc.Volatility, 1e-12)

	req = httptest.NewRequest(http.MethodGet, "/api/scenarios/flash-crash", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRatesHandlerBuiltinCurve(t *testing.T) {
	h := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/rates", nil)
	rr := httptest.NewRecorder()
	h.RatesHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Success bool          `json:"success"`
		Source  string        `json:"source"`
		Count   int           `json:"count"`
		Tenors  []rates.Tenor `json:"tenors"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "builtin", resp.Source)
	assert.Equal(t, 8, resp.Count)
}

func TestPayoffCSVExport(t *testing.T) {
	h := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/export/payoff.csv?min=90&max=110&step=10", nil)
	rr := httptest.NewRecorder()
	h.PayoffCSVHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/csv", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, rr.Header().Get("Content-Disposition"), ".csv")

	lines := strings.Split(strings.TrimSpace(rr.Body.String()), "\n")
	require.Len(t, lines, 3) // header + half-open grid 90,100
	assert.Equal(t, "spot,payoff,profit", strings.TrimSpace(lines[0]))
	assert.True(t, strings.HasPrefix(lines[1], "90,"))
}

func TestStrategyCSVExport(t *testing.T) {
	h := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet,
		"/api/export/strategy.csv?name=bull-call-spread&strike1=90&strike2=110&premium1=8&premium2=3", nil)
	rr := httptest.NewRecorder()
	h.StrategyCSVHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	lines := strings.Split(strings.TrimSpace(rr.Body.String()), "\n")
	require.Greater(t, len(lines), 1)
	assert.Equal(t, "spot,combined_profit", strings.TrimSpace(lines[0]))
	assert.Len(t, lines, 121) // header + 120 grid rows
}

func TestPayoffChartRendersPNG(t *testing.T) {
	h := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/payoff/chart.png", nil)
	rr := httptest.NewRecorder()
	h.PayoffChartHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
	body := rr.Body.Bytes()
	require.Greater(t, len(body), 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, body[:8])
}

func TestStrategyChartRendersPNG(t *testing.T) {
	h := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/strategy/chart.png?name=straddle", nil)
	rr := httptest.NewRecorder()
	h.StrategyChartHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, rr.Body.Bytes()[:8])
}

func TestAuditChecksHandler(t *testing.T) {
	h := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/audit/checks", nil)
	rr := httptest.NewRecorder()
	h.AuditChecksHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Success bool                `json:"success"`
		Count   int                 `json:"count"`
		Checks  []audit.CheckResult `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 5, resp.Count)
	for _, check := range resp.Checks {
		assert.NotEmpty(t, check.Name)
		assert.NotEmpty(t, check.Description)
	}
}

func TestAuditRunHandler(t *testing.T) {
	h := newTestHandler(t)
	req := httptest.NewRequest(http.MethodPost, "/api/audit/run", nil)
	rr := httptest.NewRecorder()
	h.AuditRunHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.True(t, env.Success)

	var report audit.RunReport
	require.NoError(t, json.Unmarshal(env.Data, &report))
	assert.True(t, report.Passed)
	assert.Len(t, report.Results, 5)
	assert.NotEmpty(t, report.RunID)
}

func TestCORSPreflight(t *testing.T) {
	h := newTestHandler(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/price", nil)
	rr := httptest.NewRecorder()
	h.PriceHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), "GET")
	assert.Empty(t, rr.Body.String())
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestIDFrom(r)
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rr := httptest.NewRecorder()
	RequestID(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.NotEmpty(t, seen)
	assert.Len(t, seen, 8)
	assert.Equal(t, seen, rr.Header().Get("X-Request-ID"))
}
