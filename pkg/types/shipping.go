package types

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShippingMethod is one entry in a vendor's ordered shipping list. The
// first entry doubles as the fallback default at checkout.
type ShippingMethod struct {
	Name string          `json:"name"`
	Rate decimal.Decimal `json:"rate"`
}

// ShippingMethods stores the vendor's ordered shipping list as JSON; array
// order is significant and must survive the round trip.
type ShippingMethods []ShippingMethod

// Value serializes the method list to JSON.
func (s ShippingMethods) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// Scan decodes the JSON column into the method list.
func (s *ShippingMethods) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, s)
}

// ShippingBreakdownEntry is the resolved per-vendor shipping for one order.
// Method is nil when the vendor has no shipping methods configured.
type ShippingBreakdownEntry struct {
	VendorID uuid.UUID       `json:"vendorId"`
	Method   *string         `json:"method"`
	Rate     decimal.Decimal `json:"rate"`
}

// ShippingBreakdown holds one entry per distinct vendor present in the
// order, in the order vendors first appear in the cart.
type ShippingBreakdown []ShippingBreakdownEntry

// Value serializes the breakdown to JSON.
func (b ShippingBreakdown) Value() (driver.Value, error) {
	if b == nil {
		return "[]", nil
	}
	raw, err := json.Marshal(b)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// Scan decodes the JSON column into the breakdown.
func (b *ShippingBreakdown) Scan(value interface{}) error {
	if value == nil {
		*b = nil
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, b)
}
