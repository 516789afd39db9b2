package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"gardenquote/services"
	"gardenquote/testhelpers"
)

func TestHandleProductList(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestProduct(t, app, "Sandstone Slabs", 38.50)
	testhelpers.CreateTestProduct(t, app, "Porcelain Paving", 52.00)
	turf := testhelpers.CreateTestProduct(t, app, "Lawn Turf Roll", 4.95)
	turf.Set("category", "turf")
	if err := app.Save(turf); err != nil {
		t.Fatalf("save turf: %v", err)
	}

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{"no filters", "/products", 3},
		{"name query", "/products?q=Paving", 1},
		{"category", "/products?category=turf", 1},
		{"max price", "/products?max_price=40", 2},
		{"combined", "/products?category=paving&max_price=40", 1},
		{"no match", "/products?q=Decking", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			rec := httptest.NewRecorder()
			if err := HandleProductList(app)(newTestRequestEvent(app, req, rec)); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
			}

			var resp struct {
				Products []services.Product `json:"products"`
			}
			decodeJSON(t, rec, &resp)
			if len(resp.Products) != tt.want {
				t.Errorf("products = %d, want %d", len(resp.Products), tt.want)
			}
		})
	}
}

func TestHandleProductListBadMaxPrice(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/products?max_price=cheap", nil)
	rec := httptest.NewRecorder()
	if err := HandleProductList(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleProductView(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	product := testhelpers.CreateTestProductWithMinOrder(t, app, "Lawn Turf Roll", 4.95, 40)

	req := httptest.NewRequest(http.MethodGet, "/products/"+product.Id, nil)
	req.SetPathValue("id", product.Id)
	rec := httptest.NewRecorder()
	if err := HandleProductView(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp services.Product
	decodeJSON(t, rec, &resp)
	if resp.Name != "Lawn Turf Roll" || resp.Price != 4.95 || resp.MinOrder != 40 {
		t.Errorf("product = %+v", resp)
	}
}

func TestHandleProductViewNotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/products/missing", nil)
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()
	if err := HandleProductView(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
