package handlers

import (
	"fmt"

	"github.com/jwaldner/tetra/internal/models"
)

// Formatter methods for dual format responses
func (h *Handler) formatCurrency(value float64) models.FieldValue {
	return models.FieldValue{
		Raw:     cleanFloat(value),
		Display: fmt.Sprintf("$%.2f", cleanFloat(value)),
		Type:    "currency",
	}
}

func (h *Handler) formatPercentage(value float64) models.FieldValue {
	return models.FieldValue{
		Raw:     cleanFloat(value),
		Display: fmt.Sprintf("%.2f%%", cleanFloat(value)*100),
		Type:    "percentage",
	}
}

func (h *Handler) formatNumber(value float64) models.FieldValue {
	return models.FieldValue{
		Raw:     cleanFloat(value),
		Display: fmt.Sprintf("%.4f", cleanFloat(value)),
		Type:    "number",
	}
}

func (h *Handler) formatInteger(value int) models.FieldValue {
	return models.FieldValue{
		Raw:     value,
		Display: fmt.Sprintf("%d", value),
		Type:    "integer",
	}
}

func (h *Handler) formatText(value string) models.FieldValue {
	return models.FieldValue{
		Raw:     value,
		Display: value,
		Type:    "text",
	}
}

// payoffSummary builds the dual-format contract summary row
func (h *Handler) payoffSummary(data *models.PayoffData) models.FormattedRow {
	return models.FormattedRow{
		"option_type":     h.formatText(data.OptionType),
		"side":            h.formatText(data.Side),
		"spot":            h.formatCurrency(data.Spot),
		"strike":          h.formatCurrency(data.Strike),
		"premium":         h.formatCurrency(data.Premium),
		"breakeven":       h.formatCurrency(data.Breakeven),
		"intrinsic_value": h.formatCurrency(data.IntrinsicValue),
		"time_value":      h.formatCurrency(data.TimeValue),
		"moneyness":       h.formatText(data.Moneyness),
	}
}

func (h *Handler) payoffFieldMetadata() map[string]models.FieldMetadata {
	return map[string]models.FieldMetadata{
		"option_type":     {DisplayName: "Type", Type: "text", Sortable: false, Alignment: "left"},
		"side":            {DisplayName: "Side", Type: "text", Sortable: false, Alignment: "left"},
		"spot":            {DisplayName: "Spot", Type: "currency", Sortable: false, Alignment: "right"},
		"strike":          {DisplayName: "Strike", Type: "currency", Sortable: false, Alignment: "right"},
		"premium":         {DisplayName: "Premium", Type: "currency", Sortable: false, Alignment: "right"},
		"breakeven":       {DisplayName: "Breakeven", Type: "currency", Sortable: false, Alignment: "right"},
		"intrinsic_value": {DisplayName: "Intrinsic Value", Type: "currency", Sortable: false, Alignment: "right"},
		"time_value":      {DisplayName: "Time Value", Type: "currency", Sortable: false, Alignment: "right"},
		"moneyness":       {DisplayName: "Moneyness", Type: "text", Sortable: false, Alignment: "center"},
	}
}

// priceSummary builds the dual-format pricing summary row
func (h *Handler) priceSummary(data *models.PriceData) models.FormattedRow {
	return models.FormattedRow{
		"option_type":       h.formatText(data.OptionType),
		"price":             h.formatCurrency(data.Price),
		"delta":             h.formatNumber(data.Delta),
		"gamma":             h.formatNumber(data.Gamma),
		"theta_per_day":     h.formatNumber(data.ThetaPerDay),
		"vega":              h.formatNumber(data.Vega),
		"rho":               h.formatNumber(data.Rho),
		"intrinsic_value":   h.formatCurrency(data.IntrinsicValue),
		"time_value":        h.formatCurrency(data.TimeValue),
		"moneyness":         h.formatText(data.Moneyness),
		"breakeven":         h.formatCurrency(data.Breakeven),
		"discounted_strike": h.formatCurrency(data.DiscountedStrike),
		"volatility":        h.formatPercentage(data.Volatility),
	}
}

func (h *Handler) priceFieldMetadata() map[string]models.FieldMetadata {
	return map[string]models.FieldMetadata{
		"option_type":       {DisplayName: "Type", Type: "text", Sortable: false, Alignment: "left"},
		"price":             {DisplayName: "Model Price", Type: "currency", Sortable: false, Alignment: "right"},
		"delta":             {DisplayName: "Delta", Type: "number", Sortable: false, Alignment: "right"},
		"gamma":             {DisplayName: "Gamma", Type: "number", Sortable: false, Alignment: "right"},
		"theta_per_day":     {DisplayName: "Theta/day", Type: "number", Sortable: false, Alignment: "right"},
		"vega":              {DisplayName: "Vega", Type: "number", Sortable: false, Alignment: "right"},
		"rho":               {DisplayName: "Rho", Type: "number", Sortable: false, Alignment: "right"},
		"intrinsic_value":   {DisplayName: "Intrinsic Value", Type: "currency", Sortable: false, Alignment: "right"},
		"time_value":        {DisplayName: "Time Value", Type: "currency", Sortable: false, Alignment: "right"},
		"moneyness":         {DisplayName: "Moneyness", Type: "text", Sortable: false, Alignment: "center"},
		"breakeven":         {DisplayName: "Breakeven", Type: "currency", Sortable: false, Alignment: "right"},
		"discounted_strike": {DisplayName: "PV of Strike", Type: "currency", Sortable: false, Alignment: "right"},
		"volatility":        {DisplayName: "Volatility", Type: "percentage", Sortable: false, Alignment: "right"},
	}
}

func (h *Handler) ivFieldMetadata() map[string]models.FieldMetadata {
	return map[string]models.FieldMetadata{
		"option_type":        {DisplayName: "Type", Type: "text", Sortable: false, Alignment: "left"},
		"market_price":       {DisplayName: "Market Price", Type: "currency", Sortable: false, Alignment: "right"},
		"implied_volatility": {DisplayName: "Implied Volatility", Type: "percentage", Sortable: false, Alignment: "right"},
		"repriced_value":     {DisplayName: "Repriced Value", Type: "currency", Sortable: false, Alignment: "right"},
	}
}

func (h *Handler) parityFieldMetadata() map[string]models.FieldMetadata {
	return map[string]models.FieldMetadata{
		"call_price":        {DisplayName: "Call Price", Type: "currency", Sortable: false, Alignment: "right"},
		"put_price":         {DisplayName: "Put Price", Type: "currency", Sortable: false, Alignment: "right"},
		"left_side":         {DisplayName: "C + PV(K)", Type: "currency", Sortable: false, Alignment: "right"},
		"right_side":        {DisplayName: "P + S", Type: "currency", Sortable: false, Alignment: "right"},
		"gap":               {DisplayName: "Gap", Type: "number", Sortable: false, Alignment: "right"},
		"discounted_strike": {DisplayName: "PV of Strike", Type: "currency", Sortable: false, Alignment: "right"},
		"holds":             {DisplayName: "Parity Holds", Type: "text", Sortable: false, Alignment: "center"},
	}
}

// legRow converts one strategy leg to a dual-format table row
func (h *Handler) legRow(rank int, leg models.StrategyLeg) models.FormattedRow {
	return models.FormattedRow{
		"rank":     h.formatInteger(rank),
		"type":     h.formatText(leg.Type),
		"side":     h.formatText(leg.Side),
		"strike":   h.formatCurrency(leg.Strike),
		"premium":  h.formatCurrency(leg.Premium),
		"quantity": h.formatInteger(leg.Quantity),
	}
}

func (h *Handler) legFieldMetadata() map[string]models.FieldMetadata {
	return map[string]models.FieldMetadata{
		"rank":     {DisplayName: "#", Type: "integer", Sortable: true, Alignment: "center"},
		"type":     {DisplayName: "Type", Type: "text", Sortable: true, Alignment: "left"},
		"side":     {DisplayName: "Side", Type: "text", Sortable: true, Alignment: "left"},
		"strike":   {DisplayName: "Strike", Type: "currency", Sortable: true, Alignment: "right"},
		"premium":  {DisplayName: "Premium", Type: "currency", Sortable: true, Alignment: "right"},
		"quantity": {DisplayName: "Qty", Type: "integer", Sortable: true, Alignment: "right"},
	}
}
