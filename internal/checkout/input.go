package checkout

import "github.com/google/uuid"

// CartItemInput is one cart row. Rows are never merged: two rows for the
// same product stay two line items.
type CartItemInput struct {
	ProductID uuid.UUID
	Qty       int
}

// ShippingChoiceInput is the customer's optional per-vendor method pick.
type ShippingChoiceInput struct {
	VendorID   uuid.UUID
	MethodName string
}

// PlaceOrderInput is the validated order placement payload.
type PlaceOrderInput struct {
	Items           []CartItemInput
	AddressID       uuid.UUID
	ShippingChoices []ShippingChoiceInput
}

func (in PlaceOrderInput) choiceFor(vendorID uuid.UUID) string {
	for _, choice := range in.ShippingChoices {
		if choice.VendorID == vendorID {
			return choice.MethodName
		}
	}
	return ""
}
