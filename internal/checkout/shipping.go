package checkout

import (
	"github.com/shopspring/decimal"

	"github.com/bahzadkaka/mv-marketplace/pkg/types"
)

const standardMethodName = "Standard"

// resolveShipping picks a vendor's method for this order. The fallback
// chain is: customer choice by exact name, then the literal "Standard",
// then the first entry in the vendor's list. An empty list is a valid
// zero-shipping state, not an error. The chain is load-bearing for order
// totals; changing it changes what customers are charged.
func resolveShipping(methods types.ShippingMethods, choice string) (*string, decimal.Decimal) {
	if choice != "" {
		for _, method := range methods {
			if method.Name == choice {
				name := method.Name
				return &name, method.Rate
			}
		}
	}
	for _, method := range methods {
		if method.Name == standardMethodName {
			name := method.Name
			return &name, method.Rate
		}
	}
	if len(methods) > 0 {
		name := methods[0].Name
		return &name, methods[0].Rate
	}
	return nil, decimal.Zero
}
