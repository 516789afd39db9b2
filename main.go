package main

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"gardenquote/collections"
	"gardenquote/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		return se.Next()
	})

	store := handlers.NewSessionStore()

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// ── Quote builder sessions ───────────────────────────────
		se.Router.POST("/builder", handlers.HandleBuilderOpen(store))
		se.Router.GET("/builder/{id}", handlers.HandleBuilderView(store))
		se.Router.DELETE("/builder/{id}", handlers.HandleBuilderDiscard(store))

		// Feature selection
		se.Router.POST("/builder/{id}/features", handlers.HandleFeatureToggle(store))
		se.Router.PATCH("/builder/{id}/features/{featureId}", handlers.HandleFeatureUpdate(store))
		se.Router.DELETE("/builder/{id}/features/{featureId}", handlers.HandleFeatureDelete(store))

		// Custom feature types
		se.Router.POST("/builder/{id}/custom-features", handlers.HandleCustomFeatureCreate(store))
		se.Router.DELETE("/builder/{id}/custom-features/{type}", handlers.HandleCustomFeatureDelete(store))

		// Material attachments
		se.Router.POST("/builder/{id}/features/{featureId}/materials", handlers.HandleMaterialAttach(app, store))
		se.Router.PATCH("/builder/{id}/features/{featureId}/materials/{productId}", handlers.HandleMaterialUpdate(store))
		se.Router.DELETE("/builder/{id}/features/{featureId}/materials/{productId}", handlers.HandleMaterialRemove(store))

		// Pricing scalars
		se.Router.PATCH("/builder/{id}/pricing", handlers.HandlePricingUpdate(store))

		// Finalization
		se.Router.POST("/builder/{id}/finalize", handlers.HandleBuilderFinalize(app, store))

		// ── Product catalog ──────────────────────────────────────
		se.Router.GET("/products", handlers.HandleProductList(app))
		se.Router.GET("/products/{id}", handlers.HandleProductView(app))

		// ── Persisted quotes ─────────────────────────────────────
		se.Router.GET("/quotes", handlers.HandleQuoteList(app))
		se.Router.GET("/quotes/{id}/export/pdf", handlers.HandleQuoteExportPDF(app))
		se.Router.GET("/quotes/{id}/export/excel", handlers.HandleQuoteExportExcel(app))
		se.Router.GET("/quotes/{id}", handlers.HandleQuoteView(app))
		se.Router.PATCH("/quotes/{id}", handlers.HandleQuoteUpdate(app))
		se.Router.DELETE("/quotes/{id}", handlers.HandleQuoteDelete(app))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
