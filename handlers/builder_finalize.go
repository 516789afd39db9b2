package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"gardenquote/services"
)

// HandleBuilderFinalize snapshots the session into a persisted quote with
// flattened line items. On success the session is dropped from the store; on
// failure it stays open for another attempt.
func HandleBuilderFinalize(app *pocketbase.PocketBase, store *SessionStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		s, ok := store.Get(id)
		if !ok {
			return apiError(e, http.StatusNotFound, "Builder session not found")
		}

		var req struct {
			CustomerName string `json:"customer_name"`
			Notes        string `json:"notes"`
		}
		if err := e.BindBody(&req); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}

		quote, err := services.FinalizeQuote(app, s, req.CustomerName, req.Notes, time.Now())
		if err != nil {
			log.Printf("builder_finalize: session %s: %v", id, err)
			if errors.Is(err, services.ErrEmptyQuote) {
				return apiError(e, http.StatusUnprocessableEntity, err.Error())
			}
			if errors.Is(err, services.ErrNotComposing) {
				return apiError(e, http.StatusConflict, err.Error())
			}
			return apiError(e, http.StatusInternalServerError, "Could not save the quote. Please try again.")
		}

		store.Delete(id)

		return e.JSON(http.StatusCreated, map[string]any{
			"id":           quote.Id,
			"quote_number": quote.GetString("quote_number"),
			"status":       quote.GetString("status"),
			"total":        quote.GetFloat("total"),
		})
	}
}
