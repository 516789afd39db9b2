package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"gardenquote/services"
)

// HandleMaterialAttach attaches a catalog product to a feature selection,
// snapshotting the current catalog price onto the new line.
func HandleMaterialAttach(app *pocketbase.PocketBase, store *SessionStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		s, ok := store.Get(e.Request.PathValue("id"))
		if !ok {
			return apiError(e, http.StatusNotFound, "Builder session not found")
		}

		featureID := e.Request.PathValue("featureId")

		var req struct {
			ProductID string  `json:"product_id"`
			Quantity  float64 `json:"quantity"`
		}
		if err := e.BindBody(&req); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}
		if req.ProductID == "" {
			return apiError(e, http.StatusBadRequest, "product_id is required")
		}

		product, err := services.GetProduct(app, req.ProductID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Product not found")
		}

		if _, err := s.AttachProduct(featureID, product, req.Quantity); err != nil {
			log.Printf("material_attach: feature %s product %s: %v", featureID, req.ProductID, err)
			return apiError(e, statusForSessionError(err), err.Error())
		}
		return e.JSON(http.StatusOK, buildSessionResponse(s))
	}
}

// HandleMaterialUpdate replaces the quantity on an existing attachment.
func HandleMaterialUpdate(store *SessionStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		s, ok := store.Get(e.Request.PathValue("id"))
		if !ok {
			return apiError(e, http.StatusNotFound, "Builder session not found")
		}

		var req struct {
			Quantity float64 `json:"quantity"`
		}
		if err := e.BindBody(&req); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}

		featureID := e.Request.PathValue("featureId")
		productID := e.Request.PathValue("productId")
		if err := s.UpdateAttachmentQuantity(featureID, productID, req.Quantity); err != nil {
			return apiError(e, statusForSessionError(err), err.Error())
		}
		return e.JSON(http.StatusOK, buildSessionResponse(s))
	}
}

// HandleMaterialRemove deletes a material line from the session.
func HandleMaterialRemove(store *SessionStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		s, ok := store.Get(e.Request.PathValue("id"))
		if !ok {
			return apiError(e, http.StatusNotFound, "Builder session not found")
		}

		featureID := e.Request.PathValue("featureId")
		productID := e.Request.PathValue("productId")
		if err := s.RemoveAttachment(featureID, productID); err != nil {
			return apiError(e, statusForSessionError(err), err.Error())
		}
		return e.JSON(http.StatusOK, buildSessionResponse(s))
	}
}
