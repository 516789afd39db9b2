// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"gardenquote/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestProduct creates a catalog product record and returns it.
func CreateTestProduct(t *testing.T, app *pocketbase.PocketBase, name string, price float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("products")
	if err != nil {
		t.Fatalf("failed to find products collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("price", price)
	record.Set("unit", "sqm")
	record.Set("category", "paving")
	record.Set("supplier_name", "Test Supplier")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test product: %v", err)
	}

	return record
}

// CreateTestProductWithMinOrder creates a catalog product carrying a minimum
// order quantity.
func CreateTestProductWithMinOrder(t *testing.T, app *pocketbase.PocketBase, name string, price, minOrder float64) *core.Record {
	t.Helper()

	record := CreateTestProduct(t, app, name, price)
	record.Set("min_order", minOrder)
	if err := app.Save(record); err != nil {
		t.Fatalf("failed to set min_order on test product: %v", err)
	}
	return record
}

// CreateTestQuote creates a persisted quote record and returns it.
func CreateTestQuote(t *testing.T, app *pocketbase.PocketBase, quoteNumber, status string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("quotes")
	if err != nil {
		t.Fatalf("failed to find quotes collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("quote_number", quoteNumber)
	record.Set("status", status)
	record.Set("customer_name", "Test Customer")
	record.Set("subtotal", 1811.88)
	record.Set("markup", 312.38)
	record.Set("tax", 362.38)
	record.Set("total", 2174.25)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test quote: %v", err)
	}

	return record
}

// CreateTestQuoteItem creates a line item record under a quote.
func CreateTestQuoteItem(t *testing.T, app *pocketbase.PocketBase, quoteID string, sortOrder int, description string, qty, unitPrice float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("quote_items")
	if err != nil {
		t.Fatalf("failed to find quote_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("quote", quoteID)
	record.Set("sort_order", sortOrder)
	record.Set("description", description)
	record.Set("quantity", qty)
	record.Set("unit_price", unitPrice)
	record.Set("total_price", qty*unitPrice)
	record.Set("category", "product")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test quote item: %v", err)
	}

	return record
}
