package services

import (
	"fmt"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// ProductFromRecord maps a products collection record into the Product value
// the pricing core works with.
func ProductFromRecord(r *core.Record) Product {
	return Product{
		ID:           r.Id,
		Name:         r.GetString("name"),
		Price:        r.GetFloat("price"),
		Unit:         r.GetString("unit"),
		Category:     r.GetString("category"),
		SupplierName: r.GetString("supplier_name"),
		MinOrder:     r.GetFloat("min_order"),
	}
}

// SearchProducts queries the product catalog. All filters are optional:
// query matches against name, category narrows to an exact category, and a
// positive maxPrice caps the unit price.
func SearchProducts(app *pocketbase.PocketBase, query, category string, maxPrice float64) ([]Product, error) {
	var clauses []string
	params := map[string]any{}

	if q := strings.TrimSpace(query); q != "" {
		clauses = append(clauses, "name ~ {:query}")
		params["query"] = q
	}
	if c := strings.TrimSpace(category); c != "" {
		clauses = append(clauses, "category = {:category}")
		params["category"] = c
	}
	if maxPrice > 0 {
		clauses = append(clauses, "price <= {:maxPrice}")
		params["maxPrice"] = maxPrice
	}

	filter := strings.Join(clauses, " && ")
	if filter == "" {
		filter = "id != ''"
	}

	records, err := app.FindRecordsByFilter("products", filter, "name", 0, 0, params)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}

	products := make([]Product, 0, len(records))
	for _, r := range records {
		products = append(products, ProductFromRecord(r))
	}
	return products, nil
}

// GetProduct fetches one catalog product by id.
func GetProduct(app *pocketbase.PocketBase, id string) (Product, error) {
	r, err := app.FindRecordById("products", id)
	if err != nil {
		return Product{}, fmt.Errorf("product not found: %w", err)
	}
	return ProductFromRecord(r), nil
}
