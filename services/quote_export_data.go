package services

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
)

// QuoteExportData holds all data needed to render a quote document (PDF or
// Excel). Totals come straight from the persisted quote's frozen snapshot
// fields; they are never re-derived from the items.
type QuoteExportData struct {
	// Company (hardcoded for now)
	CompanyName    string
	CompanyAddress string
	CompanyEmail   string

	// Quote header
	QuoteNumber  string
	CustomerName string
	Status       string
	IssuedDate   string
	ValidUntil   string

	// Line items
	Items []QuoteExportItem

	// Totals snapshot
	Subtotal      float64
	Markup        float64
	Tax           float64
	Total         float64
	AmountInWords string

	Notes string
}

// QuoteExportItem is a single line of the exported quote document.
type QuoteExportItem struct {
	SINo        int
	Description string
	Category    string
	Quantity    float64
	UnitPrice   float64
	TotalPrice  float64
}

// BuildQuoteExportData assembles export data from the stored quote and its
// line item records.
func BuildQuoteExportData(app *pocketbase.PocketBase, quoteId string) (*QuoteExportData, error) {
	quote, err := app.FindRecordById("quotes", quoteId)
	if err != nil {
		return nil, fmt.Errorf("quote not found: %w", err)
	}

	itemRecords, err := app.FindRecordsByFilter(
		"quote_items",
		"quote = {:quoteId}",
		"sort_order",
		0,
		0,
		map[string]any{"quoteId": quoteId},
	)
	if err != nil {
		log.Printf("quote_export: could not fetch items for quote %s: %v", quoteId, err)
		itemRecords = nil
	}

	var items []QuoteExportItem
	for i, rec := range itemRecords {
		items = append(items, QuoteExportItem{
			SINo:        i + 1,
			Description: rec.GetString("description"),
			Category:    rec.GetString("category"),
			Quantity:    rec.GetFloat("quantity"),
			UnitPrice:   rec.GetFloat("unit_price"),
			TotalPrice:  rec.GetFloat("total_price"),
		})
	}

	issuedDate := ""
	if dt := quote.GetDateTime("created"); !dt.IsZero() {
		issuedDate = dt.Time().Format("02 Jan 2006")
	}
	validUntil := ""
	if dt := quote.GetDateTime("valid_until"); !dt.IsZero() {
		validUntil = dt.Time().Format("02 Jan 2006")
	}

	total := quote.GetFloat("total")

	return &QuoteExportData{
		CompanyName:    "GREENSCAPE GARDEN DESIGN",
		CompanyAddress: "Richmond, London",
		CompanyEmail:   "quotes@greenscape.co.uk",

		QuoteNumber:  quote.GetString("quote_number"),
		CustomerName: quote.GetString("customer_name"),
		Status:       quote.GetString("status"),
		IssuedDate:   issuedDate,
		ValidUntil:   validUntil,

		Items: items,

		Subtotal:      quote.GetFloat("subtotal"),
		Markup:        quote.GetFloat("markup"),
		Tax:           quote.GetFloat("tax"),
		Total:         total,
		AmountInWords: AmountToWords(total),

		Notes: quote.GetString("notes"),
	}, nil
}
