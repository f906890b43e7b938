package models

// FieldValue represents a field with both raw data and formatted display
type FieldValue struct {
	Raw     interface{} `json:"raw"`     // For CSV/sorting: 1234.56
	Display string      `json:"display"` // For UI: "$1,234.56"
	Type    string      `json:"type"`    // For CSS: "currency"
}

// FormattedRow is one table row of formatted fields keyed by field name
type FormattedRow map[string]FieldValue

type FieldMetadata struct {
	DisplayName string `json:"display_name"`
	Type        string `json:"type"`
	Sortable    bool   `json:"sortable"`
	Alignment   string `json:"alignment"`
}

// ResponseMetadata rides along with every API response
type ResponseMetadata struct {
	RequestID    string  `json:"request_id"`
	Timestamp    string  `json:"timestamp"`
	ProcessingMs float64 `json:"processing_ms"`
	Engine       string  `json:"engine"`
}

// APIResponse is the common envelope for all JSON endpoints
type APIResponse struct {
	Success bool             `json:"success"`
	Error   string           `json:"error,omitempty"`
	Data    interface{}      `json:"data,omitempty"`
	Meta    ResponseMetadata `json:"meta"`
}

// --- Requests (query parameters, decoded with gorilla/schema) ---

// PayoffRequest describes a single-option payoff query
type PayoffRequest struct {
	OptionType string  `schema:"type" json:"option_type"`
	Side       string  `schema:"side" json:"side"`
	Spot       float64 `schema:"spot" json:"spot"`
	Strike     float64 `schema:"strike" json:"strike"`
	Premium    float64 `schema:"premium" json:"premium"`
	MinPrice   float64 `schema:"min" json:"min_price"`
	MaxPrice   float64 `schema:"max" json:"max_price"`
	Step       float64 `schema:"step" json:"step"`
}

// PriceRequest describes a Black-Scholes pricing query
type PriceRequest struct {
	OptionType    string  `schema:"type" json:"option_type"`
	Spot          float64 `schema:"spot" json:"spot"`
	Strike        float64 `schema:"strike" json:"strike"`
	Rate          float64 `schema:"rate" json:"rate"`
	Volatility    float64 `schema:"vol" json:"volatility"`
	MaturityYears float64 `schema:"t" json:"maturity_years"`
	UseCurveRate  bool    `schema:"curve_rate" json:"use_curve_rate"`
}

// IVRequest describes an implied volatility solve
type IVRequest struct {
	OptionType    string  `schema:"type" json:"option_type"`
	MarketPrice   float64 `schema:"price" json:"market_price"`
	Spot          float64 `schema:"spot" json:"spot"`
	Strike        float64 `schema:"strike" json:"strike"`
	Rate          float64 `schema:"rate" json:"rate"`
	MaturityYears float64 `schema:"t" json:"maturity_years"`
}

// ParityRequest describes a put-call parity query. When Known names a side
// ("call" or "put") the other side is solved from KnownPrice.
type ParityRequest struct {
	Spot          float64 `schema:"spot" json:"spot"`
	Strike        float64 `schema:"strike" json:"strike"`
	Rate          float64 `schema:"rate" json:"rate"`
	Volatility    float64 `schema:"vol" json:"volatility"`
	MaturityYears float64 `schema:"t" json:"maturity_years"`
	Known         string  `schema:"known" json:"known"`
	KnownPrice    float64 `schema:"known_price" json:"known_price"`
}

// StrategyRequest selects a catalog strategy and its strikes/premiums
type StrategyRequest struct {
	Name     string  `schema:"name" json:"name"`
	Strike1  float64 `schema:"strike1" json:"strike1"`
	Strike2  float64 `schema:"strike2" json:"strike2"`
	Strike3  float64 `schema:"strike3" json:"strike3"`
	Premium1 float64 `schema:"premium1" json:"premium1"`
	Premium2 float64 `schema:"premium2" json:"premium2"`
	Premium3 float64 `schema:"premium3" json:"premium3"`
	MinPrice float64 `schema:"min" json:"min_price"`
	MaxPrice float64 `schema:"max" json:"max_price"`
	Step     float64 `schema:"step" json:"step"`
}

// CustomStrategyRequest is the POST body for user-assembled strategies
type CustomStrategyRequest struct {
	Name     string        `json:"name"`
	Legs     []StrategyLeg `json:"legs"`
	MinPrice float64       `json:"min_price"`
	MaxPrice float64       `json:"max_price"`
	Step     float64       `json:"step"`
}

// CurvesRequest selects a factor-sensitivity curve family
type CurvesRequest struct {
	Family        string  `schema:"family" json:"family"`
	OptionType    string  `schema:"type" json:"option_type"`
	Spot          float64 `schema:"spot" json:"spot"`
	Strike        float64 `schema:"strike" json:"strike"`
	Rate          float64 `schema:"rate" json:"rate"`
	Volatility    float64 `schema:"vol" json:"volatility"`
	MaturityYears float64 `schema:"t" json:"maturity_years"`
}

// GlossaryRequest carries a glossary search
type GlossaryRequest struct {
	Query    string `schema:"q" json:"q"`
	Category string `schema:"category" json:"category"`
}

// --- Response payloads ---

// CurveData is one labeled series over the spot grid
type CurveData struct {
	Label string    `json:"label"`
	X     []float64 `json:"x"`
	Y     []float64 `json:"y"`
}

// PayoffData is the /api/payoff payload
type PayoffData struct {
	OptionType     string                   `json:"option_type"`
	Side           string                   `json:"side"`
	Spot           float64                  `json:"spot"`
	Strike         float64                  `json:"strike"`
	Premium        float64                  `json:"premium"`
	Grid           []float64                `json:"grid"`
	Payoff         []float64                `json:"payoff"`
	Profit         []float64                `json:"profit"`
	Breakeven      float64                  `json:"breakeven"`
	IntrinsicValue float64                  `json:"intrinsic_value"`
	TimeValue      float64                  `json:"time_value"`
	Moneyness      string                   `json:"moneyness"`
	Summary        FormattedRow             `json:"summary"`
	FieldMetadata  map[string]FieldMetadata `json:"field_metadata"`
}

// PriceData is the /api/price payload
type PriceData struct {
	OptionType       string                   `json:"option_type"`
	Spot             float64                  `json:"spot"`
	Strike           float64                  `json:"strike"`
	Rate             float64                  `json:"rate"`
	Volatility       float64                  `json:"volatility"`
	MaturityYears    float64                  `json:"maturity_years"`
	Price            float64                  `json:"price"`
	Delta            float64                  `json:"delta"`
	Gamma            float64                  `json:"gamma"`
	Theta            float64                  `json:"theta"`
	ThetaPerDay      float64                  `json:"theta_per_day"`
	Vega             float64                  `json:"vega"`
	Rho              float64                  `json:"rho"`
	IntrinsicValue   float64                  `json:"intrinsic_value"`
	TimeValue        float64                  `json:"time_value"`
	Moneyness        string                   `json:"moneyness"`
	Breakeven        float64                  `json:"breakeven"`
	DiscountedStrike float64                  `json:"discounted_strike"`
	Summary          FormattedRow             `json:"summary"`
	FieldMetadata    map[string]FieldMetadata `json:"field_metadata"`
}

// IVData is the /api/iv payload
type IVData struct {
	OptionType        string                   `json:"option_type"`
	MarketPrice       float64                  `json:"market_price"`
	ImpliedVolatility float64                  `json:"implied_volatility"`
	RepricedValue     float64                  `json:"repriced_value"`
	Summary           FormattedRow             `json:"summary"`
	FieldMetadata     map[string]FieldMetadata `json:"field_metadata"`
}

// ParityData is the /api/parity payload
type ParityData struct {
	CallPrice        float64                  `json:"call_price"`
	PutPrice         float64                  `json:"put_price"`
	LeftSide         float64                  `json:"left_side"`
	RightSide        float64                  `json:"right_side"`
	Gap              float64                  `json:"gap"`
	DiscountedStrike float64                  `json:"discounted_strike"`
	Holds            bool                     `json:"holds"`
	SolvedFor        string                   `json:"solved_for,omitempty"`
	SolvedPrice      float64                  `json:"solved_price,omitempty"`
	Summary          FormattedRow             `json:"summary"`
	FieldMetadata    map[string]FieldMetadata `json:"field_metadata"`
}

// StrategyLeg mirrors one leg for API consumers
type StrategyLeg struct {
	Type     string  `json:"type"`
	Side     string  `json:"side"`
	Strike   float64 `json:"strike"`
	Premium  float64 `json:"premium"`
	Quantity int     `json:"quantity"`
}

// StrategyData is the /api/strategy payload
type StrategyData struct {
	Name            string                   `json:"name"`
	DisplayName     string                   `json:"display_name"`
	Outlook         string                   `json:"outlook"`
	Description     string                   `json:"description"`
	RewardNote      string                   `json:"reward_note"`
	RiskNote        string                   `json:"risk_note"`
	Legs            []StrategyLeg            `json:"legs"`
	Grid            []float64                `json:"grid"`
	Combined        []float64                `json:"combined"`
	LegCurves       []CurveData              `json:"leg_curves"`
	NetPremium      float64                  `json:"net_premium"`
	MaxProfit       float64                  `json:"max_profit"`
	MaxLoss         float64                  `json:"max_loss"`
	ProfitUnbounded bool                     `json:"profit_unbounded"`
	LossUnbounded   bool                     `json:"loss_unbounded"`
	Breakevens      []float64                `json:"breakevens"`
	LegRows         []FormattedRow           `json:"leg_rows"`
	FieldMetadata   map[string]FieldMetadata `json:"field_metadata"`
}

// StrategyInfo is one catalog entry for /api/strategies
type StrategyInfo struct {
	Name        string        `json:"name"`
	DisplayName string        `json:"display_name"`
	Outlook     string        `json:"outlook"`
	Description string        `json:"description"`
	RewardNote  string        `json:"reward_note"`
	RiskNote    string        `json:"risk_note"`
	Legs        []StrategyLeg `json:"legs"`
}

// CurvesData is the /api/curves payload
type CurvesData struct {
	Family     string      `json:"family"`
	OptionType string      `json:"option_type"`
	Curves     []CurveData `json:"curves"`
	XLabel     string      `json:"x_label"`
	YLabel     string      `json:"y_label"`
}

// --- CSV export rows (gocsv) ---

// PayoffCSVRow is one spot-grid row of the payoff export
type PayoffCSVRow struct {
	Spot   float64 `csv:"spot"`
	Payoff float64 `csv:"payoff"`
	Profit float64 `csv:"profit"`
}

// StrategyCSVRow is one spot-grid row of the strategy export
type StrategyCSVRow struct {
	Spot           float64 `csv:"spot"`
	CombinedProfit float64 `csv:"combined_profit"`
}
