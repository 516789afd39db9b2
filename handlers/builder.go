package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"gardenquote/services"
)

// sessionResponse is the JSON snapshot of a builder session returned by
// every builder endpoint, so the client always sees the full state after a
// mutation.
type sessionResponse struct {
	ID           string                                           `json:"id"`
	State        services.SessionState                            `json:"state"`
	Features     []services.FeatureSelection                      `json:"features"`
	Attachments  []services.MaterialAttachment                    `json:"attachments"`
	Pricing      services.PricingInputs                           `json:"pricing"`
	Totals       services.QuoteTotals                             `json:"totals"`
	CustomTypes  map[services.FeatureType]services.FeatureTypeInfo `json:"custom_types"`
	FeatureTypes []featureTypeOption                              `json:"feature_types"`
}

type featureTypeOption struct {
	Type     services.FeatureType `json:"type"`
	Label    string               `json:"label"`
	Unit     services.Unit        `json:"unit"`
	Selected bool                 `json:"selected"`
}

func buildSessionResponse(s *services.QuoteBuilderSession) sessionResponse {
	var options []featureTypeOption
	for _, t := range services.StandardFeatureTypes() {
		info, _ := services.StandardFeatureTypeInfo(t)
		_, selected := s.FeatureByType(t)
		options = append(options, featureTypeOption{
			Type:     t,
			Label:    info.Label,
			Unit:     info.Unit,
			Selected: selected,
		})
	}
	for t, info := range s.CustomFeatureTypes() {
		_, selected := s.FeatureByType(t)
		options = append(options, featureTypeOption{
			Type:     t,
			Label:    info.Label,
			Unit:     info.Unit,
			Selected: selected,
		})
	}

	return sessionResponse{
		ID:           s.ID,
		State:        s.State,
		Features:     s.Features(),
		Attachments:  s.Attachments(),
		Pricing:      s.Pricing,
		Totals:       s.Totals().Rounded(),
		CustomTypes:  s.CustomFeatureTypes(),
		FeatureTypes: options,
	}
}

// HandleBuilderOpen starts a new quote builder session.
func HandleBuilderOpen(store *SessionStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		s := store.Open()
		return e.JSON(http.StatusCreated, buildSessionResponse(s))
	}
}

// HandleBuilderView returns the current snapshot of a builder session.
func HandleBuilderView(store *SessionStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		s, ok := store.Get(e.Request.PathValue("id"))
		if !ok {
			return apiError(e, http.StatusNotFound, "Builder session not found")
		}
		return e.JSON(http.StatusOK, buildSessionResponse(s))
	}
}

// HandleBuilderDiscard throws away a builder session without persisting
// anything.
func HandleBuilderDiscard(store *SessionStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if _, ok := store.Get(id); !ok {
			return apiError(e, http.StatusNotFound, "Builder session not found")
		}
		store.Delete(id)
		return e.NoContent(http.StatusNoContent)
	}
}
