package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// quoteStatuses are the lifecycle tags a persisted quote can carry.
var quoteStatuses = map[string]bool{
	"draft":     true,
	"pending":   true,
	"sent":      true,
	"approved":  true,
	"rejected":  true,
	"expired":   true,
	"converted": true,
}

func quoteSummary(r *core.Record) map[string]any {
	return map[string]any{
		"id":            r.Id,
		"quote_number":  r.GetString("quote_number"),
		"status":        r.GetString("status"),
		"customer_name": r.GetString("customer_name"),
		"subtotal":      r.GetFloat("subtotal"),
		"markup":        r.GetFloat("markup"),
		"tax":           r.GetFloat("tax"),
		"total":         r.GetFloat("total"),
		"valid_until":   r.GetString("valid_until"),
		"created":       r.GetString("created"),
	}
}

// HandleQuoteList returns persisted quotes, newest first.
func HandleQuoteList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		filter := "id != ''"
		params := map[string]any{}
		if status := e.Request.URL.Query().Get("status"); status != "" {
			if !quoteStatuses[status] {
				return apiError(e, http.StatusBadRequest, "Unknown quote status")
			}
			filter = "status = {:status}"
			params["status"] = status
		}

		records, err := app.FindRecordsByFilter("quotes", filter, "-created", 0, 0, params)
		if err != nil {
			log.Printf("quote_list: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		quotes := make([]map[string]any, 0, len(records))
		for _, r := range records {
			quotes = append(quotes, quoteSummary(r))
		}
		return e.JSON(http.StatusOK, map[string]any{"quotes": quotes})
	}
}

// HandleQuoteView returns one quote with its line items.
func HandleQuoteView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		quote, err := app.FindRecordById("quotes", quoteID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Quote not found")
		}

		itemRecords, err := app.FindRecordsByFilter(
			"quote_items",
			"quote = {:quoteId}",
			"sort_order",
			0,
			0,
			map[string]any{"quoteId": quoteID},
		)
		if err != nil {
			log.Printf("quote_view: could not fetch items for %s: %v", quoteID, err)
			itemRecords = nil
		}

		items := make([]map[string]any, 0, len(itemRecords))
		for _, rec := range itemRecords {
			items = append(items, map[string]any{
				"sort_order":  rec.GetInt("sort_order"),
				"description": rec.GetString("description"),
				"quantity":    rec.GetFloat("quantity"),
				"unit_price":  rec.GetFloat("unit_price"),
				"total_price": rec.GetFloat("total_price"),
				"category":    rec.GetString("category"),
			})
		}

		resp := quoteSummary(quote)
		resp["notes"] = quote.GetString("notes")
		resp["items"] = items
		return e.JSON(http.StatusOK, resp)
	}
}

// HandleQuoteUpdate patches the fields of a persisted quote: its status tag,
// customer name, notes and the four monetary fields. Monetary edits are
// applied exactly as sent; nothing is re-derived from the line items, so
// subtotal, markup, tax and total can drift apart if the caller makes them.
func HandleQuoteUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quote, err := app.FindRecordById("quotes", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "Quote not found")
		}

		var req struct {
			Status       *string  `json:"status"`
			CustomerName *string  `json:"customer_name"`
			Notes        *string  `json:"notes"`
			Subtotal     *float64 `json:"subtotal"`
			Markup       *float64 `json:"markup"`
			Tax          *float64 `json:"tax"`
			Total        *float64 `json:"total"`
		}
		if err := e.BindBody(&req); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}

		updated := false
		if req.Status != nil {
			if !quoteStatuses[*req.Status] {
				return apiError(e, http.StatusBadRequest, "Unknown quote status")
			}
			quote.Set("status", *req.Status)
			updated = true
		}
		if req.CustomerName != nil {
			quote.Set("customer_name", *req.CustomerName)
			updated = true
		}
		if req.Notes != nil {
			quote.Set("notes", *req.Notes)
			updated = true
		}
		if req.Subtotal != nil {
			quote.Set("subtotal", *req.Subtotal)
			updated = true
		}
		if req.Markup != nil {
			quote.Set("markup", *req.Markup)
			updated = true
		}
		if req.Tax != nil {
			quote.Set("tax", *req.Tax)
			updated = true
		}
		if req.Total != nil {
			quote.Set("total", *req.Total)
			updated = true
		}

		if updated {
			if err := app.Save(quote); err != nil {
				log.Printf("quote_update: error saving %s: %v", quote.Id, err)
				return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
			}
		}
		return e.JSON(http.StatusOK, quoteSummary(quote))
	}
}

// HandleQuoteDelete removes a quote; the cascade relation takes its line
// items with it.
func HandleQuoteDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quote, err := app.FindRecordById("quotes", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "Quote not found")
		}
		if err := app.Delete(quote); err != nil {
			log.Printf("quote_delete: error deleting %s: %v", quote.Id, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		return e.NoContent(http.StatusNoContent)
	}
}
