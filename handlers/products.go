package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"gardenquote/services"
)

// HandleProductList searches the product catalog. Query params: q (name
// substring), category (exact match), max_price (upper bound on unit price).
func HandleProductList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		q := e.Request.URL.Query().Get("q")
		category := e.Request.URL.Query().Get("category")

		var maxPrice float64
		if raw := e.Request.URL.Query().Get("max_price"); raw != "" {
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil || f < 0 {
				return apiError(e, http.StatusBadRequest, "max_price must be a non-negative number")
			}
			maxPrice = f
		}

		products, err := services.SearchProducts(app, q, category, maxPrice)
		if err != nil {
			log.Printf("product_list: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		return e.JSON(http.StatusOK, map[string]any{"products": products})
	}
}

// HandleProductView returns one catalog product.
func HandleProductView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		product, err := services.GetProduct(app, e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "Product not found")
		}
		return e.JSON(http.StatusOK, product)
	}
}
