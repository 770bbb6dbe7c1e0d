package types

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/google/uuid"
)

// AddressSnapshot is the copy of a customer address embedded into an order
// at placement time. Later edits to the source address never reach it.
type AddressSnapshot struct {
	ID      uuid.UUID `json:"id"`
	Label   string    `json:"label"`
	Line1   string    `json:"line1"`
	City    string    `json:"city"`
	Country string    `json:"country"`
	Phone   string    `json:"phone"`
}

// Value serializes the snapshot to JSON.
func (a AddressSnapshot) Value() (driver.Value, error) {
	raw, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// Scan decodes the JSON column into the snapshot.
func (a *AddressSnapshot) Scan(value interface{}) error {
	if value == nil {
		*a = AddressSnapshot{}
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, a)
}

// StoreProfile is the vendor's public storefront identity.
type StoreProfile struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Value serializes the profile to JSON.
func (p StoreProfile) Value() (driver.Value, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// Scan decodes the JSON column into the profile.
func (p *StoreProfile) Scan(value interface{}) error {
	if value == nil {
		*p = StoreProfile{}
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, p)
}
