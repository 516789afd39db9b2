package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// LineItemCategory classifies a quote line item.
type LineItemCategory string

const (
	CategoryProduct LineItemCategory = "product"
	CategoryService LineItemCategory = "service"
)

// QuoteLineItem is one flattened, priced line of a finalized quote. The
// feature/material association is deliberately not carried over; a persisted
// quote keeps only its flat item list.
type QuoteLineItem struct {
	SortOrder   int              `json:"sort_order"`
	Description string           `json:"description"`
	Quantity    float64          `json:"quantity"`
	UnitPrice   float64          `json:"unit_price"`
	TotalPrice  float64          `json:"total_price"`
	Category    LineItemCategory `json:"category"`
}

// ErrEmptyQuote rejects finalizing a session with nothing selected.
var ErrEmptyQuote = errors.New("cannot generate a quote from an empty session")

// quoteValidityDays is how long a freshly generated quote stays valid.
const quoteValidityDays = 30

// BuildLineItems flattens the session's material attachments into product
// lines, then appends synthetic service lines for labour and markup when
// they apply. Monetary values are rounded here because line items exist only
// in serialized form.
func (s *QuoteBuilderSession) BuildLineItems() []QuoteLineItem {
	totals := s.Totals()

	var items []QuoteLineItem
	for _, att := range s.attachments {
		items = append(items, QuoteLineItem{
			SortOrder:   len(items) + 1,
			Description: att.ProductName,
			Quantity:    att.Quantity,
			UnitPrice:   Round2(att.UnitPrice),
			TotalPrice:  Round2(att.Total),
			Category:    CategoryProduct,
		})
	}

	if s.Pricing.LaborHours > 0 {
		items = append(items, QuoteLineItem{
			SortOrder:   len(items) + 1,
			Description: fmt.Sprintf("Labour (%g hours)", s.Pricing.LaborHours),
			Quantity:    s.Pricing.LaborHours,
			UnitPrice:   Round2(s.Pricing.HourlyRate),
			TotalPrice:  Round2(totals.LaborCost),
			Category:    CategoryService,
		})
	}

	if s.Pricing.MarkupPercent > 0 {
		items = append(items, QuoteLineItem{
			SortOrder:   len(items) + 1,
			Description: fmt.Sprintf("Markup (%g%% on materials)", s.Pricing.MarkupPercent),
			Quantity:    1,
			UnitPrice:   Round2(totals.Markup),
			TotalPrice:  Round2(totals.Markup),
			Category:    CategoryService,
		})
	}

	return items
}

// FinalizeQuote snapshots the session's totals, flattens its line items and
// persists the quote plus items in one transaction. On success the session
// moves to the persisted state and should be discarded by the caller. On any
// failure the session drops back to composing with every selection intact,
// so the user can correct and retry without re-entering anything.
func FinalizeQuote(app *pocketbase.PocketBase, s *QuoteBuilderSession, customerName, notes string, now time.Time) (*core.Record, error) {
	if err := s.ensureComposing(); err != nil {
		return nil, err
	}
	if s.Empty() {
		return nil, ErrEmptyQuote
	}

	totals := s.Totals().Rounded()
	items := s.BuildLineItems()

	quoteNumber, err := EnsureUniqueQuoteNumber(app, now)
	if err != nil {
		return nil, fmt.Errorf("quote number: %w", err)
	}

	s.State = StateFinalizing

	var quote *core.Record
	txErr := app.RunInTransaction(func(tx core.App) error {
		quotesCol, err := tx.FindCollectionByNameOrId("quotes")
		if err != nil {
			return fmt.Errorf("quotes collection: %w", err)
		}
		itemsCol, err := tx.FindCollectionByNameOrId("quote_items")
		if err != nil {
			return fmt.Errorf("quote_items collection: %w", err)
		}

		quote = core.NewRecord(quotesCol)
		quote.Set("quote_number", quoteNumber)
		quote.Set("status", "draft")
		quote.Set("customer_name", customerName)
		quote.Set("notes", notes)
		quote.Set("subtotal", totals.Subtotal)
		quote.Set("markup", totals.Markup)
		quote.Set("tax", totals.VAT)
		quote.Set("total", totals.Total)
		quote.Set("valid_until", now.AddDate(0, 0, quoteValidityDays))

		if err := tx.Save(quote); err != nil {
			return fmt.Errorf("save quote: %w", err)
		}

		for _, item := range items {
			rec := core.NewRecord(itemsCol)
			rec.Set("quote", quote.Id)
			rec.Set("sort_order", item.SortOrder)
			rec.Set("description", item.Description)
			rec.Set("quantity", item.Quantity)
			rec.Set("unit_price", item.UnitPrice)
			rec.Set("total_price", item.TotalPrice)
			rec.Set("category", string(item.Category))

			if err := tx.Save(rec); err != nil {
				return fmt.Errorf("save quote item %d: %w", item.SortOrder, err)
			}
		}
		return nil
	})
	if txErr != nil {
		// No partial commit happened; reopen the session for retry.
		s.State = StateComposing
		return nil, txErr
	}

	s.State = StatePersisted
	return quote, nil
}
