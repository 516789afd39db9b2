package services

import (
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// SessionState tracks where a builder session is in its lifecycle.
type SessionState string

const (
	StateComposing  SessionState = "composing"
	StateFinalizing SessionState = "finalizing"
	StatePersisted  SessionState = "persisted"
)

// Domain error conditions surfaced by session operations. Handlers map these
// to HTTP statuses; none of them leaves partial state behind.
var (
	ErrUnknownFeatureType = errors.New("unknown feature type")
	ErrFeatureNotFound    = errors.New("feature selection not found")
	ErrAttachmentNotFound = errors.New("material attachment not found")
	ErrInvalidSize        = errors.New("feature size must be greater than zero")
	ErrInvalidQuantity    = errors.New("quantity must be greater than zero")
	ErrNotComposing       = errors.New("builder session is no longer editable")
)

// FeatureSelection is one garden feature picked into the quote being built.
type FeatureSelection struct {
	ID    string      `json:"id"`
	Type  FeatureType `json:"type"`
	Label string      `json:"label"`
	Size  float64     `json:"size"`
	Unit  Unit        `json:"unit"`
	Notes string      `json:"notes"`
}

// Product is a catalog entry as seen by the pricing core. It is read-only
// here; the catalog itself lives in the products collection.
type Product struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Unit         string  `json:"unit"`
	Category     string  `json:"category"`
	SupplierName string  `json:"supplier_name"`
	MinOrder     float64 `json:"min_order"`
}

// MaterialAttachment links a catalog product to a feature selection with a
// quantity. UnitPrice is copied from the catalog at attach time and never
// refreshed, so later catalog price changes cannot alter an existing line.
type MaterialAttachment struct {
	FeatureID   string  `json:"feature_id"`
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`
}

// QuoteBuilderSession is the in-memory aggregate for one quote-building
// session: selected features, attached materials, pricing scalars and the
// finalize state machine. It is owned by a single editor and is not safe for
// concurrent use.
type QuoteBuilderSession struct {
	ID      string
	State   SessionState
	Pricing PricingInputs

	features    []FeatureSelection
	attachments []MaterialAttachment
	customTypes map[FeatureType]FeatureTypeInfo
}

// NewSession opens a fresh builder session in the composing state with the
// default hourly labour rate.
func NewSession() *QuoteBuilderSession {
	return &QuoteBuilderSession{
		ID:    uuid.NewString(),
		State: StateComposing,
		Pricing: PricingInputs{
			HourlyRate: DefaultHourlyRate,
		},
		customTypes: make(map[FeatureType]FeatureTypeInfo),
	}
}

// featureTypeInfo resolves a type against the standard table and this
// session's custom registry.
func (s *QuoteBuilderSession) featureTypeInfo(t FeatureType) (FeatureTypeInfo, bool) {
	if info, ok := standardFeatureTypes[t]; ok {
		return info, true
	}
	info, ok := s.customTypes[t]
	return info, ok
}

// Features returns a copy of the current feature selections in insertion order.
func (s *QuoteBuilderSession) Features() []FeatureSelection {
	out := make([]FeatureSelection, len(s.features))
	copy(out, s.features)
	return out
}

// Attachments returns a copy of the current material attachments in insertion order.
func (s *QuoteBuilderSession) Attachments() []MaterialAttachment {
	out := make([]MaterialAttachment, len(s.attachments))
	copy(out, s.attachments)
	return out
}

// CustomFeatureTypes returns the session's registered custom feature types.
func (s *QuoteBuilderSession) CustomFeatureTypes() map[FeatureType]FeatureTypeInfo {
	out := make(map[FeatureType]FeatureTypeInfo, len(s.customTypes))
	for t, info := range s.customTypes {
		out[t] = info
	}
	return out
}

// Empty reports whether the session holds no selections and no attachments.
func (s *QuoteBuilderSession) Empty() bool {
	return len(s.features) == 0 && len(s.attachments) == 0
}

func (s *QuoteBuilderSession) ensureComposing() error {
	if s.State != StateComposing {
		return ErrNotComposing
	}
	return nil
}

// FeatureByID returns the feature selection with the given id.
func (s *QuoteBuilderSession) FeatureByID(id string) (*FeatureSelection, bool) {
	for i := range s.features {
		if s.features[i].ID == id {
			return &s.features[i], true
		}
	}
	return nil, false
}

// FeatureByType returns the feature selection with the given type, if any.
// At most one selection per type can exist.
func (s *QuoteBuilderSession) FeatureByType(t FeatureType) (*FeatureSelection, bool) {
	for i := range s.features {
		if s.features[i].Type == t {
			return &s.features[i], true
		}
	}
	return nil, false
}

// ToggleFeature adds a feature selection for the given type with a default
// size of 1, or removes the existing selection (cascading its attachments)
// when the type is already selected. It returns the added selection, or nil
// when the call removed one.
func (s *QuoteBuilderSession) ToggleFeature(t FeatureType) (*FeatureSelection, error) {
	if err := s.ensureComposing(); err != nil {
		return nil, err
	}

	info, ok := s.featureTypeInfo(t)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFeatureType, t)
	}

	if existing, ok := s.FeatureByType(t); ok {
		// Selecting twice toggles the feature off rather than duplicating it.
		if err := s.RemoveFeature(existing.ID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	sel := FeatureSelection{
		ID:    uuid.NewString(),
		Type:  t,
		Label: info.Label,
		Size:  1,
		Unit:  info.Unit,
	}
	s.features = append(s.features, sel)
	return &s.features[len(s.features)-1], nil
}

// RemoveFeature deletes a feature selection and every material attachment
// referencing it, so no orphaned attachments remain.
func (s *QuoteBuilderSession) RemoveFeature(id string) error {
	if err := s.ensureComposing(); err != nil {
		return err
	}

	idx := -1
	for i := range s.features {
		if s.features[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrFeatureNotFound, id)
	}

	s.features = append(s.features[:idx], s.features[idx+1:]...)

	kept := s.attachments[:0]
	for _, att := range s.attachments {
		if att.FeatureID != id {
			kept = append(kept, att)
		}
	}
	s.attachments = kept
	return nil
}

// UpdateFeatureSize sets the size of a feature selection. Non-positive sizes
// are rejected.
func (s *QuoteBuilderSession) UpdateFeatureSize(id string, size float64) error {
	if err := s.ensureComposing(); err != nil {
		return err
	}
	sel, ok := s.FeatureByID(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrFeatureNotFound, id)
	}
	if size <= 0 {
		return ErrInvalidSize
	}
	sel.Size = size
	return nil
}

// UpdateFeatureNotes sets the free-text notes of a feature selection.
func (s *QuoteBuilderSession) UpdateFeatureNotes(id string, notes string) error {
	if err := s.ensureComposing(); err != nil {
		return err
	}
	sel, ok := s.FeatureByID(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrFeatureNotFound, id)
	}
	sel.Notes = notes
	return nil
}

// RegisterCustomFeature adds a user-defined feature type to the session's
// registry and returns its minted type tag. It does not create a selection;
// the new type becomes available to ToggleFeature.
func (s *QuoteBuilderSession) RegisterCustomFeature(label string, unit Unit) (FeatureType, error) {
	if err := s.ensureComposing(); err != nil {
		return "", err
	}
	if err := validation.Validate(label, validation.Required, validation.Length(1, 80)); err != nil {
		return "", fmt.Errorf("label: %w", err)
	}
	if !ValidUnit(unit) {
		return "", fmt.Errorf("unit: must be one of SQM, METRE, UNIT, got %q", unit)
	}

	t := newCustomFeatureType(time.Now())
	for {
		if _, taken := s.customTypes[t]; !taken {
			break
		}
		// Two registrations within the same millisecond.
		t = FeatureType(string(t) + "X")
	}

	s.customTypes[t] = FeatureTypeInfo{Label: label, Unit: unit}
	return t, nil
}

// DeleteCustomFeatureType removes a custom feature type registration and
// cascades removal of its active selection and that selection's attachments.
func (s *QuoteBuilderSession) DeleteCustomFeatureType(t FeatureType) error {
	if err := s.ensureComposing(); err != nil {
		return err
	}
	if _, ok := s.customTypes[t]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownFeatureType, t)
	}

	if sel, ok := s.FeatureByType(t); ok {
		if err := s.RemoveFeature(sel.ID); err != nil {
			return err
		}
	}
	delete(s.customTypes, t)
	return nil
}

// attachmentIndex finds the attachment for (featureID, productID).
func (s *QuoteBuilderSession) attachmentIndex(featureID, productID string) int {
	for i := range s.attachments {
		if s.attachments[i].FeatureID == featureID && s.attachments[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// AttachProduct attaches a catalog product to a feature selection. The unit
// price is snapshotted from the product at this moment. Quantities below the
// product's minimum order are raised to it. Re-attaching the same product to
// the same feature merges quantities into the existing line instead of
// creating a duplicate.
func (s *QuoteBuilderSession) AttachProduct(featureID string, p Product, quantity float64) (*MaterialAttachment, error) {
	if err := s.ensureComposing(); err != nil {
		return nil, err
	}
	if _, ok := s.FeatureByID(featureID); !ok {
		return nil, fmt.Errorf("%w: %s", ErrFeatureNotFound, featureID)
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if p.MinOrder > 0 && quantity < p.MinOrder {
		quantity = p.MinOrder
	}

	if idx := s.attachmentIndex(featureID, p.ID); idx >= 0 {
		att := &s.attachments[idx]
		att.Quantity += quantity
		att.Total = att.Quantity * att.UnitPrice
		return att, nil
	}

	s.attachments = append(s.attachments, MaterialAttachment{
		FeatureID:   featureID,
		ProductID:   p.ID,
		ProductName: p.Name,
		Quantity:    quantity,
		UnitPrice:   p.Price,
		Total:       quantity * p.Price,
	})
	return &s.attachments[len(s.attachments)-1], nil
}

// UpdateAttachmentQuantity replaces the quantity on an existing attachment
// and recomputes its line total. Quantities at or below zero clamp to 1.
func (s *QuoteBuilderSession) UpdateAttachmentQuantity(featureID, productID string, quantity float64) error {
	if err := s.ensureComposing(); err != nil {
		return err
	}
	idx := s.attachmentIndex(featureID, productID)
	if idx < 0 {
		return fmt.Errorf("%w: feature %s product %s", ErrAttachmentNotFound, featureID, productID)
	}
	if quantity <= 0 {
		quantity = 1
	}
	att := &s.attachments[idx]
	att.Quantity = quantity
	att.Total = att.Quantity * att.UnitPrice
	return nil
}

// RemoveAttachment deletes a material line. No other lines are affected.
func (s *QuoteBuilderSession) RemoveAttachment(featureID, productID string) error {
	if err := s.ensureComposing(); err != nil {
		return err
	}
	idx := s.attachmentIndex(featureID, productID)
	if idx < 0 {
		return fmt.Errorf("%w: feature %s product %s", ErrAttachmentNotFound, featureID, productID)
	}
	s.attachments = append(s.attachments[:idx], s.attachments[idx+1:]...)
	return nil
}

// MaterialsSubtotal sums the line totals of all current attachments. It is
// recomputed on every call and never cached.
func (s *QuoteBuilderSession) MaterialsSubtotal() float64 {
	var sum float64
	for _, att := range s.attachments {
		sum += att.Total
	}
	return sum
}

// SetPricing validates and replaces the session's pricing scalars.
func (s *QuoteBuilderSession) SetPricing(in PricingInputs) error {
	if err := s.ensureComposing(); err != nil {
		return err
	}
	if err := in.Validate(); err != nil {
		return err
	}
	s.Pricing = in
	return nil
}

// Totals derives the current price breakdown from the session state.
func (s *QuoteBuilderSession) Totals() QuoteTotals {
	return CalcQuoteTotals(s.MaterialsSubtotal(), s.Pricing)
}
