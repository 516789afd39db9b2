package services

import (
	"math"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	// DefaultHourlyRate is the labour rate applied when a session opens.
	DefaultHourlyRate = 25.0

	// VATRate is the fixed UK VAT rate applied when a quote includes VAT.
	VATRate = 0.20
)

// PricingInputs are the quote-session-wide scalars feeding the totals
// calculation. Markup applies to the materials subtotal only, never to labour.
type PricingInputs struct {
	MarkupPercent float64 `json:"markup_percent"`
	LaborHours    float64 `json:"labor_hours"`
	HourlyRate    float64 `json:"hourly_rate"`
	IncludeVAT    bool    `json:"include_vat"`
}

// Validate rejects negative scalar inputs.
func (in PricingInputs) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.MarkupPercent, validation.Min(0.0)),
		validation.Field(&in.LaborHours, validation.Min(0.0)),
		validation.Field(&in.HourlyRate, validation.Min(0.0)),
	)
}

// QuoteTotals is the full price breakdown of a quote. All fields carry full
// float precision; rounding to 2 decimal places happens only at display and
// serialization time via Round2, so intermediate maths never accumulates
// rounding drift.
type QuoteTotals struct {
	MaterialsSubtotal   float64 `json:"materials_subtotal"`
	Markup              float64 `json:"markup"`
	MaterialsWithMarkup float64 `json:"materials_with_markup"`
	LaborCost           float64 `json:"labor_cost"`
	Subtotal            float64 `json:"subtotal"`
	VAT                 float64 `json:"vat"`
	Total               float64 `json:"total"`
}

// CalcQuoteTotals derives the price breakdown from the materials subtotal and
// the pricing scalars. It is a pure function: calling it repeatedly with the
// same inputs yields identical output, and it has no hidden state.
//
// Fixed order: markup on materials, then labour, then VAT on everything.
func CalcQuoteTotals(materialsSubtotal float64, in PricingInputs) QuoteTotals {
	markup := materialsSubtotal * (in.MarkupPercent / 100)
	materialsWithMarkup := materialsSubtotal + markup
	laborCost := in.LaborHours * in.HourlyRate
	subtotal := materialsWithMarkup + laborCost

	var vat float64
	if in.IncludeVAT {
		vat = subtotal * VATRate
	}

	return QuoteTotals{
		MaterialsSubtotal:   materialsSubtotal,
		Markup:              markup,
		MaterialsWithMarkup: materialsWithMarkup,
		LaborCost:           laborCost,
		Subtotal:            subtotal,
		VAT:                 vat,
		Total:               subtotal + vat,
	}
}

// Rounded returns a copy with every field rounded to 2 decimal places, for
// serialization into a persisted quote or an API response.
func (t QuoteTotals) Rounded() QuoteTotals {
	return QuoteTotals{
		MaterialsSubtotal:   Round2(t.MaterialsSubtotal),
		Markup:              Round2(t.Markup),
		MaterialsWithMarkup: Round2(t.MaterialsWithMarkup),
		LaborCost:           Round2(t.LaborCost),
		Subtotal:            Round2(t.Subtotal),
		VAT:                 Round2(t.VAT),
		Total:               Round2(t.Total),
	}
}

// Round2 rounds a monetary amount to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
