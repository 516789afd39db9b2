package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"gardenquote/services"
)

// HandleFeatureToggle selects a feature type into the session, or deselects
// it (cascading its material attachments) when it is already selected.
func HandleFeatureToggle(store *SessionStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		s, ok := store.Get(e.Request.PathValue("id"))
		if !ok {
			return apiError(e, http.StatusNotFound, "Builder session not found")
		}

		var req struct {
			Type services.FeatureType `json:"type"`
		}
		if err := e.BindBody(&req); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}
		if req.Type == "" {
			return apiError(e, http.StatusBadRequest, "Feature type is required")
		}

		if _, err := s.ToggleFeature(req.Type); err != nil {
			log.Printf("feature_toggle: %s: %v", req.Type, err)
			return apiError(e, statusForSessionError(err), err.Error())
		}
		return e.JSON(http.StatusOK, buildSessionResponse(s))
	}
}

// HandleFeatureUpdate patches the size and/or notes of a feature selection.
// Absent fields are left untouched.
func HandleFeatureUpdate(store *SessionStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		s, ok := store.Get(e.Request.PathValue("id"))
		if !ok {
			return apiError(e, http.StatusNotFound, "Builder session not found")
		}
		featureID := e.Request.PathValue("featureId")

		var req struct {
			Size  *float64 `json:"size"`
			Notes *string  `json:"notes"`
		}
		if err := e.BindBody(&req); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}

		if req.Size != nil {
			if err := s.UpdateFeatureSize(featureID, *req.Size); err != nil {
				return apiError(e, statusForSessionError(err), err.Error())
			}
		}
		if req.Notes != nil {
			if err := s.UpdateFeatureNotes(featureID, *req.Notes); err != nil {
				return apiError(e, statusForSessionError(err), err.Error())
			}
		}
		return e.JSON(http.StatusOK, buildSessionResponse(s))
	}
}

// HandleFeatureDelete removes a feature selection and its attachments.
func HandleFeatureDelete(store *SessionStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		s, ok := store.Get(e.Request.PathValue("id"))
		if !ok {
			return apiError(e, http.StatusNotFound, "Builder session not found")
		}

		if err := s.RemoveFeature(e.Request.PathValue("featureId")); err != nil {
			return apiError(e, statusForSessionError(err), err.Error())
		}
		return e.JSON(http.StatusOK, buildSessionResponse(s))
	}
}

// HandleCustomFeatureCreate registers a user-defined feature type on the
// session and returns the minted type tag alongside the snapshot.
func HandleCustomFeatureCreate(store *SessionStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		s, ok := store.Get(e.Request.PathValue("id"))
		if !ok {
			return apiError(e, http.StatusNotFound, "Builder session not found")
		}

		var req struct {
			Label string        `json:"label"`
			Unit  services.Unit `json:"unit"`
		}
		if err := e.BindBody(&req); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}

		t, err := s.RegisterCustomFeature(req.Label, req.Unit)
		if err != nil {
			log.Printf("custom_feature_create: %v", err)
			return apiError(e, statusForSessionError(err), err.Error())
		}

		return e.JSON(http.StatusCreated, map[string]any{
			"type":    t,
			"session": buildSessionResponse(s),
		})
	}
}

// HandleCustomFeatureDelete unregisters a custom feature type, cascading its
// selection and attachments.
func HandleCustomFeatureDelete(store *SessionStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		s, ok := store.Get(e.Request.PathValue("id"))
		if !ok {
			return apiError(e, http.StatusNotFound, "Builder session not found")
		}

		t := services.FeatureType(e.Request.PathValue("type"))
		if err := s.DeleteCustomFeatureType(t); err != nil {
			return apiError(e, statusForSessionError(err), err.Error())
		}
		return e.JSON(http.StatusOK, buildSessionResponse(s))
	}
}
