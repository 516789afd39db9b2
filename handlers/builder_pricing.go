package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"
)

// HandlePricingUpdate patches the session's pricing scalars. Absent fields
// keep their current value, so the client can adjust one slider at a time.
func HandlePricingUpdate(store *SessionStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		s, ok := store.Get(e.Request.PathValue("id"))
		if !ok {
			return apiError(e, http.StatusNotFound, "Builder session not found")
		}

		var req struct {
			MarkupPercent *float64 `json:"markup_percent"`
			LaborHours    *float64 `json:"labor_hours"`
			HourlyRate    *float64 `json:"hourly_rate"`
			IncludeVAT    *bool    `json:"include_vat"`
		}
		if err := e.BindBody(&req); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}

		in := s.Pricing
		if req.MarkupPercent != nil {
			in.MarkupPercent = *req.MarkupPercent
		}
		if req.LaborHours != nil {
			in.LaborHours = *req.LaborHours
		}
		if req.HourlyRate != nil {
			in.HourlyRate = *req.HourlyRate
		}
		if req.IncludeVAT != nil {
			in.IncludeVAT = *req.IncludeVAT
		}

		if err := s.SetPricing(in); err != nil {
			return apiError(e, statusForSessionError(err), err.Error())
		}
		return e.JSON(http.StatusOK, buildSessionResponse(s))
	}
}
