package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// ── Definition structs ───────────────────────────────────────────────────

type productDef struct {
	name         string
	price        float64
	unit         string
	category     string
	supplierName string
	minOrder     float64
}

type quoteItemDef struct {
	sortOrder   int
	description string
	quantity    float64
	unitPrice   float64
	totalPrice  float64
	category    string
}

type quoteDef struct {
	quoteNumber  string
	status       string
	customerName string
	subtotal     float64
	markup       float64
	tax          float64
	total        float64
	validUntil   string
	notes        string
	items        []quoteItemDef
}

// Seed populates the product catalogue with realistic landscaping materials
// and a couple of historical quotes. It is safe to call on every startup
// because it returns early if any product records already exist.
func Seed(app *pocketbase.PocketBase) error {
	// ── idempotency: skip if products already exist ──────────────────
	productsCol, err := app.FindCollectionByNameOrId("products")
	if err != nil {
		return fmt.Errorf("seed: could not find products collection: %w", err)
	}
	existing, err := app.FindAllRecords(productsCol)
	if err != nil {
		return fmt.Errorf("seed: could not query products: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: products collection is empty – inserting seed data …")

	quotesCol, err := app.FindCollectionByNameOrId("quotes")
	if err != nil {
		return fmt.Errorf("seed: could not find quotes collection: %w", err)
	}
	quoteItemsCol, err := app.FindCollectionByNameOrId("quote_items")
	if err != nil {
		return fmt.Errorf("seed: could not find quote_items collection: %w", err)
	}

	// ── helper: create product ───────────────────────────────────────
	createProduct := func(d productDef) error {
		r := core.NewRecord(productsCol)
		r.Set("name", d.name)
		r.Set("price", d.price)
		r.Set("unit", d.unit)
		r.Set("category", d.category)
		r.Set("supplier_name", d.supplierName)
		if d.minOrder > 0 {
			r.Set("min_order", d.minOrder)
		}
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save product %q: %w", d.name, err)
		}
		return nil
	}

	// ── helper: create quote with line items ─────────────────────────
	createQuote := func(d quoteDef) error {
		r := core.NewRecord(quotesCol)
		r.Set("quote_number", d.quoteNumber)
		r.Set("status", d.status)
		r.Set("customer_name", d.customerName)
		r.Set("subtotal", d.subtotal)
		r.Set("markup", d.markup)
		r.Set("tax", d.tax)
		r.Set("total", d.total)
		r.Set("valid_until", d.validUntil)
		r.Set("notes", d.notes)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save quote %q: %w", d.quoteNumber, err)
		}

		for _, li := range d.items {
			lr := core.NewRecord(quoteItemsCol)
			lr.Set("quote", r.Id)
			lr.Set("sort_order", li.sortOrder)
			lr.Set("description", li.description)
			lr.Set("quantity", li.quantity)
			lr.Set("unit_price", li.unitPrice)
			lr.Set("total_price", li.totalPrice)
			lr.Set("category", li.category)
			if err := app.Save(lr); err != nil {
				return fmt.Errorf("seed: save quote item %q: %w", li.description, err)
			}
		}
		return nil
	}

	// ── Product catalogue ────────────────────────────────────────────
	products := []productDef{
		// Paving & hard landscaping
		{name: "Indian Sandstone Paving Slabs (Raj Green)", price: 38.50, unit: "sqm", category: "paving", supplierName: "Stonemarket Direct", minOrder: 10},
		{name: "Porcelain Paving 600x600 (Anthracite)", price: 52.00, unit: "sqm", category: "paving", supplierName: "London Stone Co", minOrder: 5},
		{name: "Block Paving (Charcoal, 50mm)", price: 24.75, unit: "sqm", category: "paving", supplierName: "Marshalls Trade", minOrder: 15},
		{name: "Granite Setts 100x100x100", price: 45.00, unit: "sqm", category: "paving", supplierName: "Stonemarket Direct", minOrder: 5},
		{name: "Sharp Sand (Bulk Bag)", price: 62.00, unit: "unit", category: "aggregates", supplierName: "Travis Perkins"},
		{name: "MOT Type 1 Sub-base (Bulk Bag)", price: 58.00, unit: "unit", category: "aggregates", supplierName: "Travis Perkins"},
		{name: "Cement 25kg (General Purpose)", price: 6.80, unit: "unit", category: "aggregates", supplierName: "Travis Perkins", minOrder: 5},

		// Decking
		{name: "Composite Decking Board 3.6m (Graphite)", price: 32.40, unit: "metre", category: "decking", supplierName: "TimberTech UK", minOrder: 20},
		{name: "Hardwood Decking Board 28x145mm (Balau)", price: 18.90, unit: "metre", category: "decking", supplierName: "Silva Timber", minOrder: 25},
		{name: "Decking Joist Treated C24 47x150mm", price: 7.25, unit: "metre", category: "decking", supplierName: "Travis Perkins", minOrder: 30},
		{name: "Decking Frame Fixing Kit", price: 42.00, unit: "unit", category: "decking", supplierName: "TimberTech UK"},

		// Turf & planting
		{name: "Premium Lawn Turf Roll (1sqm)", price: 4.95, unit: "sqm", category: "turf", supplierName: "Rolawn", minOrder: 40},
		{name: "Artificial Grass 35mm Pile", price: 21.50, unit: "sqm", category: "turf", supplierName: "Namgrass UK", minOrder: 20},
		{name: "Topsoil Screened (Bulk Bag)", price: 74.00, unit: "unit", category: "turf", supplierName: "Rolawn"},
		{name: "Mixed Herbaceous Border Plants (9cm pots)", price: 5.25, unit: "unit", category: "planting", supplierName: "Crocus Nurseries", minOrder: 12},
		{name: "Laurel Hedging 1.2m (Root Ball)", price: 16.50, unit: "unit", category: "planting", supplierName: "Hedges Direct", minOrder: 10},
		{name: "Bark Mulch Chipped (Bulk Bag)", price: 68.00, unit: "unit", category: "planting", supplierName: "Crocus Nurseries"},

		// Fencing & boundaries
		{name: "Featheredge Fence Panel 6x6ft", price: 36.00, unit: "unit", category: "fencing", supplierName: "Jacksons Fencing", minOrder: 4},
		{name: "Fence Post Treated 100x100mm 2.4m", price: 14.20, unit: "unit", category: "fencing", supplierName: "Jacksons Fencing", minOrder: 4},
		{name: "Postcrete 20kg", price: 7.10, unit: "unit", category: "fencing", supplierName: "Travis Perkins", minOrder: 4},
		{name: "Sleeper Oak 200x100mm 2.4m", price: 34.50, unit: "unit", category: "fencing", supplierName: "Silva Timber", minOrder: 5},

		// Water & lighting
		{name: "Pond Liner EPDM 0.75mm", price: 9.80, unit: "sqm", category: "water", supplierName: "Bradshaws Direct", minOrder: 12},
		{name: "Pond Pump 3500L/h with Filter", price: 129.00, unit: "unit", category: "water", supplierName: "Bradshaws Direct"},
		{name: "Garden Spike Light LED (Warm White)", price: 22.50, unit: "unit", category: "lighting", supplierName: "Collingwood Lighting", minOrder: 6},
		{name: "Outdoor Cable Armoured 1.5mm 25m", price: 48.00, unit: "unit", category: "lighting", supplierName: "Collingwood Lighting"},

		// Features
		{name: "Fire Pit Kit Corten Steel 80cm", price: 285.00, unit: "unit", category: "features", supplierName: "London Stone Co"},
		{name: "Water Feature Self-Contained (Granite Sphere)", price: 395.00, unit: "unit", category: "features", supplierName: "London Stone Co"},
		{name: "Pergola Kit Cedar 3x3m", price: 620.00, unit: "unit", category: "features", supplierName: "Jacksons Fencing"},
	}

	for _, d := range products {
		if err := createProduct(d); err != nil {
			return err
		}
	}

	// ── Historical quotes ────────────────────────────────────────────
	if err := createQuote(quoteDef{
		quoteNumber:  "QUO-20250712-K4T9B2",
		status:       "approved",
		customerName: "Mrs. Eleanor Whitfield",
		subtotal:     1811.88,
		markup:       312.38,
		tax:          362.38,
		total:        2174.25,
		validUntil:   "2025-08-11",
		notes:        "Rear garden patio and lawn renovation, access via side gate.",
		items: []quoteItemDef{
			{sortOrder: 1, description: "Indian Sandstone Paving Slabs (Raj Green)", quantity: 30, unitPrice: 38.50, totalPrice: 1155.00, category: "product"},
			{sortOrder: 2, description: "Sharp Sand (Bulk Bag)", quantity: 1, unitPrice: 62.00, totalPrice: 62.00, category: "product"},
			{sortOrder: 3, description: "MOT Type 1 Sub-base (Bulk Bag)", quantity: 0.5, unitPrice: 58.00, totalPrice: 29.00, category: "product"},
			{sortOrder: 4, description: "Cement 25kg (General Purpose)", quantity: 0.5, unitPrice: 7.00, totalPrice: 3.50, category: "product"},
			{sortOrder: 5, description: "Labour (10 hours)", quantity: 10, unitPrice: 25.00, totalPrice: 250.00, category: "service"},
			{sortOrder: 6, description: "Markup (25% on materials)", quantity: 1, unitPrice: 312.38, totalPrice: 312.38, category: "service"},
		},
	}); err != nil {
		return err
	}

	if err := createQuote(quoteDef{
		quoteNumber:  "QUO-20250803-M7X2QD",
		status:       "sent",
		customerName: "Mr. James Okafor",
		subtotal:     3186.40,
		markup:       486.40,
		tax:          637.28,
		total:        3823.68,
		validUntil:   "2025-09-02",
		notes:        "Composite decking with integrated lighting, front garden.",
		items: []quoteItemDef{
			{sortOrder: 1, description: "Composite Decking Board 3.6m (Graphite)", quantity: 45, unitPrice: 32.40, totalPrice: 1458.00, category: "product"},
			{sortOrder: 2, description: "Decking Joist Treated C24 47x150mm", quantity: 60, unitPrice: 7.25, totalPrice: 435.00, category: "product"},
			{sortOrder: 3, description: "Decking Frame Fixing Kit", quantity: 2, unitPrice: 42.00, totalPrice: 84.00, category: "product"},
			{sortOrder: 4, description: "Garden Spike Light LED (Warm White)", quantity: 6, unitPrice: 22.50, totalPrice: 135.00, category: "product"},
			{sortOrder: 5, description: "Labour (24 hours)", quantity: 24, unitPrice: 25.00, totalPrice: 600.00, category: "service"},
			{sortOrder: 6, description: "Markup (23% on materials)", quantity: 1, unitPrice: 486.40, totalPrice: 486.40, category: "service"},
		},
	}); err != nil {
		return err
	}

	log.Println("seed: all seed data inserted successfully (28 products, 2 quotes)")
	return nil
}
