package services

import (
	"errors"
	"math"
	"testing"
)

func testProduct(id string, price float64) Product {
	return Product{ID: id, Name: "Product " + id, Price: price, Unit: "sqm"}
}

func TestNewSession(t *testing.T) {
	s := NewSession()

	if s.ID == "" {
		t.Error("expected a non-empty session id")
	}
	if s.State != StateComposing {
		t.Errorf("State = %q, want %q", s.State, StateComposing)
	}
	if s.Pricing.HourlyRate != DefaultHourlyRate {
		t.Errorf("HourlyRate = %v, want %v", s.Pricing.HourlyRate, DefaultHourlyRate)
	}
	if !s.Empty() {
		t.Error("new session should be empty")
	}
}

func TestToggleFeature(t *testing.T) {
	s := NewSession()

	sel, err := s.ToggleFeature(FeaturePatio)
	if err != nil {
		t.Fatalf("toggle on: %v", err)
	}
	if sel == nil {
		t.Fatal("expected a selection, got nil")
	}
	if sel.Label != "Patio" || sel.Unit != UnitSQM {
		t.Errorf("selection = %+v, want Patio/SQM", sel)
	}
	if sel.Size != 1 {
		t.Errorf("default size = %v, want 1", sel.Size)
	}

	// Toggling the same type again removes it rather than duplicating.
	sel2, err := s.ToggleFeature(FeaturePatio)
	if err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if sel2 != nil {
		t.Errorf("expected nil on toggle-off, got %+v", sel2)
	}
	if len(s.Features()) != 0 {
		t.Errorf("features after toggle-off = %d, want 0", len(s.Features()))
	}
}

func TestToggleFeatureUnknownType(t *testing.T) {
	s := NewSession()
	if _, err := s.ToggleFeature("GAZEBO"); !errors.Is(err, ErrUnknownFeatureType) {
		t.Errorf("expected ErrUnknownFeatureType, got %v", err)
	}
}

func TestToggleOffCascadesAttachments(t *testing.T) {
	s := NewSession()
	sel, _ := s.ToggleFeature(FeaturePatio)
	other, _ := s.ToggleFeature(FeatureFencing)

	if _, err := s.AttachProduct(sel.ID, testProduct("p1", 38.50), 30); err != nil {
		t.Fatalf("attach: %v", err)
	}
	if _, err := s.AttachProduct(other.ID, testProduct("p2", 36), 4); err != nil {
		t.Fatalf("attach: %v", err)
	}

	if _, err := s.ToggleFeature(FeaturePatio); err != nil {
		t.Fatalf("toggle off: %v", err)
	}

	atts := s.Attachments()
	if len(atts) != 1 {
		t.Fatalf("attachments after cascade = %d, want 1", len(atts))
	}
	if atts[0].FeatureID != other.ID {
		t.Errorf("surviving attachment belongs to %s, want %s", atts[0].FeatureID, other.ID)
	}
}

func TestUpdateFeatureSize(t *testing.T) {
	s := NewSession()
	sel, _ := s.ToggleFeature(FeatureTurf)

	if err := s.UpdateFeatureSize(sel.ID, 42.5); err != nil {
		t.Fatalf("update size: %v", err)
	}
	got, _ := s.FeatureByID(sel.ID)
	if got.Size != 42.5 {
		t.Errorf("Size = %v, want 42.5", got.Size)
	}

	if err := s.UpdateFeatureSize(sel.ID, 0); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("size 0: expected ErrInvalidSize, got %v", err)
	}
	if err := s.UpdateFeatureSize(sel.ID, -3); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("negative size: expected ErrInvalidSize, got %v", err)
	}
	if err := s.UpdateFeatureSize("missing", 5); !errors.Is(err, ErrFeatureNotFound) {
		t.Errorf("missing feature: expected ErrFeatureNotFound, got %v", err)
	}
}

func TestUpdateFeatureNotes(t *testing.T) {
	s := NewSession()
	sel, _ := s.ToggleFeature(FeatureDecking)

	if err := s.UpdateFeatureNotes(sel.ID, "south-facing corner"); err != nil {
		t.Fatalf("update notes: %v", err)
	}
	got, _ := s.FeatureByID(sel.ID)
	if got.Notes != "south-facing corner" {
		t.Errorf("Notes = %q", got.Notes)
	}
}

func TestRegisterCustomFeature(t *testing.T) {
	s := NewSession()

	typ, err := s.RegisterCustomFeature("Koi Pond", UnitSQM)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if !IsCustomType(typ) {
		t.Errorf("minted type %q should carry the custom prefix", typ)
	}

	// The new type is selectable like a standard one.
	sel, err := s.ToggleFeature(typ)
	if err != nil {
		t.Fatalf("toggle custom: %v", err)
	}
	if sel.Label != "Koi Pond" || sel.Unit != UnitSQM {
		t.Errorf("selection = %+v, want Koi Pond/SQM", sel)
	}
}

func TestRegisterCustomFeatureValidation(t *testing.T) {
	s := NewSession()

	if _, err := s.RegisterCustomFeature("", UnitSQM); err == nil {
		t.Error("empty label should be rejected")
	}
	if _, err := s.RegisterCustomFeature("Koi Pond", "FURLONG"); err == nil {
		t.Error("unknown unit should be rejected")
	}
}

func TestDeleteCustomFeatureTypeCascades(t *testing.T) {
	s := NewSession()
	typ, _ := s.RegisterCustomFeature("Koi Pond", UnitSQM)
	sel, _ := s.ToggleFeature(typ)
	if _, err := s.AttachProduct(sel.ID, testProduct("p1", 9.80), 12); err != nil {
		t.Fatalf("attach: %v", err)
	}

	if err := s.DeleteCustomFeatureType(typ); err != nil {
		t.Fatalf("delete custom type: %v", err)
	}
	if len(s.Features()) != 0 || len(s.Attachments()) != 0 {
		t.Errorf("cascade incomplete: %d features, %d attachments",
			len(s.Features()), len(s.Attachments()))
	}
	if _, err := s.ToggleFeature(typ); !errors.Is(err, ErrUnknownFeatureType) {
		t.Errorf("deleted type should be unknown, got %v", err)
	}
}

func TestAttachProduct(t *testing.T) {
	s := NewSession()
	sel, _ := s.ToggleFeature(FeaturePatio)

	att, err := s.AttachProduct(sel.ID, testProduct("p1", 38.50), 30)
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	if att.UnitPrice != 38.50 {
		t.Errorf("UnitPrice = %v, want 38.50 (snapshot)", att.UnitPrice)
	}
	if math.Abs(att.Total-1155.0) > 0.001 {
		t.Errorf("Total = %v, want 1155", att.Total)
	}
}

func TestAttachProductSnapshotsPrice(t *testing.T) {
	s := NewSession()
	sel, _ := s.ToggleFeature(FeaturePatio)

	p := testProduct("p1", 38.50)
	att, _ := s.AttachProduct(sel.ID, p, 10)

	// A later catalog price change must not affect the existing line.
	p.Price = 99.99
	if att.UnitPrice != 38.50 {
		t.Errorf("UnitPrice = %v, want 38.50", att.UnitPrice)
	}
	if got := s.Attachments()[0].UnitPrice; got != 38.50 {
		t.Errorf("stored UnitPrice = %v, want 38.50", got)
	}
}

func TestAttachProductMergesDuplicates(t *testing.T) {
	s := NewSession()
	sel, _ := s.ToggleFeature(FeaturePatio)
	p := testProduct("p1", 10)

	s.AttachProduct(sel.ID, p, 5)
	s.AttachProduct(sel.ID, p, 3)

	atts := s.Attachments()
	if len(atts) != 1 {
		t.Fatalf("attachments = %d, want 1 merged line", len(atts))
	}
	if atts[0].Quantity != 8 {
		t.Errorf("merged quantity = %v, want 8", atts[0].Quantity)
	}
	if atts[0].Total != 80 {
		t.Errorf("merged total = %v, want 80", atts[0].Total)
	}
}

func TestAttachProductMinOrderClamp(t *testing.T) {
	s := NewSession()
	sel, _ := s.ToggleFeature(FeatureTurf)

	p := testProduct("turf", 4.95)
	p.MinOrder = 40

	att, err := s.AttachProduct(sel.ID, p, 25)
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	if att.Quantity != 40 {
		t.Errorf("quantity = %v, want clamped to min order 40", att.Quantity)
	}
}

func TestAttachProductErrors(t *testing.T) {
	s := NewSession()
	sel, _ := s.ToggleFeature(FeaturePatio)

	if _, err := s.AttachProduct("missing", testProduct("p1", 10), 5); !errors.Is(err, ErrFeatureNotFound) {
		t.Errorf("missing feature: expected ErrFeatureNotFound, got %v", err)
	}
	if _, err := s.AttachProduct(sel.ID, testProduct("p1", 10), 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("zero quantity: expected ErrInvalidQuantity, got %v", err)
	}
}

func TestUpdateAttachmentQuantity(t *testing.T) {
	s := NewSession()
	sel, _ := s.ToggleFeature(FeaturePatio)
	s.AttachProduct(sel.ID, testProduct("p1", 10), 5)

	if err := s.UpdateAttachmentQuantity(sel.ID, "p1", 12); err != nil {
		t.Fatalf("update quantity: %v", err)
	}
	if got := s.Attachments()[0]; got.Quantity != 12 || got.Total != 120 {
		t.Errorf("attachment = %+v, want quantity 12 total 120", got)
	}

	// Non-positive quantities clamp to 1 instead of erroring.
	if err := s.UpdateAttachmentQuantity(sel.ID, "p1", -4); err != nil {
		t.Fatalf("clamp: %v", err)
	}
	if got := s.Attachments()[0].Quantity; got != 1 {
		t.Errorf("clamped quantity = %v, want 1", got)
	}

	if err := s.UpdateAttachmentQuantity(sel.ID, "nope", 3); !errors.Is(err, ErrAttachmentNotFound) {
		t.Errorf("expected ErrAttachmentNotFound, got %v", err)
	}
}

func TestRemoveAttachment(t *testing.T) {
	s := NewSession()
	sel, _ := s.ToggleFeature(FeaturePatio)
	s.AttachProduct(sel.ID, testProduct("p1", 10), 5)
	s.AttachProduct(sel.ID, testProduct("p2", 20), 2)

	if err := s.RemoveAttachment(sel.ID, "p1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	atts := s.Attachments()
	if len(atts) != 1 || atts[0].ProductID != "p2" {
		t.Errorf("attachments = %+v, want only p2", atts)
	}
	// The feature selection itself is untouched.
	if len(s.Features()) != 1 {
		t.Errorf("features = %d, want 1", len(s.Features()))
	}
}

func TestMaterialsSubtotal(t *testing.T) {
	s := NewSession()
	if got := s.MaterialsSubtotal(); got != 0 {
		t.Errorf("empty subtotal = %v, want 0", got)
	}

	sel, _ := s.ToggleFeature(FeaturePatio)
	s.AttachProduct(sel.ID, testProduct("p1", 38.50), 30) // 1155.00
	s.AttachProduct(sel.ID, testProduct("p2", 62), 1)     // 62.00
	s.AttachProduct(sel.ID, testProduct("p3", 58), 0.5)   // 29.00
	s.AttachProduct(sel.ID, testProduct("p4", 7), 0.5)    // 3.50

	if got := s.MaterialsSubtotal(); math.Abs(got-1249.50) > 0.001 {
		t.Errorf("subtotal = %v, want 1249.50", got)
	}

	// Removing a line adjusts the subtotal additively.
	s.RemoveAttachment(sel.ID, "p2")
	if got := s.MaterialsSubtotal(); math.Abs(got-1187.50) > 0.001 {
		t.Errorf("subtotal after remove = %v, want 1187.50", got)
	}
}

// The subtotal is a sum of line totals, so attachment insertion order must
// not change it.
func TestMaterialsSubtotalOrderIndependent(t *testing.T) {
	products := []Product{
		testProduct("p1", 38.50),
		testProduct("p2", 62),
		testProduct("p3", 58),
		testProduct("p4", 7),
	}
	quantities := []float64{30, 1, 0.5, 0.5}

	orders := [][]int{
		{0, 1, 2, 3},
		{3, 2, 1, 0},
		{2, 0, 3, 1},
	}

	var subtotals []float64
	for _, order := range orders {
		s := NewSession()
		sel, _ := s.ToggleFeature(FeaturePatio)
		for _, i := range order {
			if _, err := s.AttachProduct(sel.ID, products[i], quantities[i]); err != nil {
				t.Fatalf("attach %d: %v", i, err)
			}
		}
		subtotals = append(subtotals, s.MaterialsSubtotal())
	}

	for i, got := range subtotals {
		if math.Abs(got-1249.50) > 0.001 {
			t.Errorf("order %v subtotal = %v, want 1249.50", orders[i], got)
		}
	}
}

func TestSessionTotalsEndToEnd(t *testing.T) {
	s := NewSession()
	sel, _ := s.ToggleFeature(FeaturePatio)
	s.AttachProduct(sel.ID, testProduct("slabs", 38.50), 30)
	s.AttachProduct(sel.ID, testProduct("sand", 62), 1)
	s.AttachProduct(sel.ID, testProduct("subbase", 58), 0.5)
	s.AttachProduct(sel.ID, testProduct("cement", 7), 0.5)

	if err := s.SetPricing(PricingInputs{
		MarkupPercent: 25,
		LaborHours:    10,
		HourlyRate:    25,
		IncludeVAT:    true,
	}); err != nil {
		t.Fatalf("set pricing: %v", err)
	}

	totals := s.Totals().Rounded()
	if totals.Subtotal != 1811.88 {
		t.Errorf("Subtotal = %v, want 1811.88", totals.Subtotal)
	}
	if totals.VAT != 362.38 {
		t.Errorf("VAT = %v, want 362.38", totals.VAT)
	}
	if totals.Total != 2174.25 {
		t.Errorf("Total = %v, want 2174.25", totals.Total)
	}
}

func TestSetPricingRejectsNegative(t *testing.T) {
	s := NewSession()
	if err := s.SetPricing(PricingInputs{MarkupPercent: -5}); err == nil {
		t.Error("negative markup should be rejected")
	}
	// Session keeps its previous pricing on a rejected update.
	if s.Pricing.MarkupPercent != 0 {
		t.Errorf("MarkupPercent = %v, want 0", s.Pricing.MarkupPercent)
	}
}

func TestSessionStateGuards(t *testing.T) {
	s := NewSession()
	sel, _ := s.ToggleFeature(FeaturePatio)
	s.State = StatePersisted

	if _, err := s.ToggleFeature(FeatureTurf); !errors.Is(err, ErrNotComposing) {
		t.Errorf("toggle: expected ErrNotComposing, got %v", err)
	}
	if err := s.UpdateFeatureSize(sel.ID, 5); !errors.Is(err, ErrNotComposing) {
		t.Errorf("update size: expected ErrNotComposing, got %v", err)
	}
	if _, err := s.AttachProduct(sel.ID, testProduct("p1", 10), 1); !errors.Is(err, ErrNotComposing) {
		t.Errorf("attach: expected ErrNotComposing, got %v", err)
	}
	if err := s.SetPricing(PricingInputs{}); !errors.Is(err, ErrNotComposing) {
		t.Errorf("set pricing: expected ErrNotComposing, got %v", err)
	}
}
