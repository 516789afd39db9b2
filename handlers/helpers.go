package handlers

import (
	"errors"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"gardenquote/services"
)

// apiError writes a JSON error body with the given status.
func apiError(e *core.RequestEvent, status int, message string) error {
	return e.JSON(status, map[string]string{"error": message})
}

// statusForSessionError maps builder session errors to HTTP statuses.
func statusForSessionError(err error) int {
	switch {
	case errors.Is(err, services.ErrFeatureNotFound),
		errors.Is(err, services.ErrAttachmentNotFound),
		errors.Is(err, services.ErrUnknownFeatureType):
		return http.StatusNotFound
	case errors.Is(err, services.ErrNotComposing):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}
