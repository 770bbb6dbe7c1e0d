package checkout

import (
	"github.com/google/uuid"

	"github.com/bahzadkaka/mv-marketplace/pkg/db/models"
)

// partition carries the flattened ordered line items (stored verbatim as
// order.items) and the per-vendor grouping used for shipping resolution.
// vendorOrder lists vendors by first appearance in the cart so the shipping
// breakdown has a stable iteration order.
type partition struct {
	items       []models.OrderLineItem
	byVendor    map[uuid.UUID][]models.OrderLineItem
	vendorOrder []uuid.UUID
}

// partitionByVendor snapshots each cart row into a line item and groups the
// items by owning vendor. Cart order is preserved both in the flattened list
// (via Position) and inside every vendor group. Rows are never merged.
func partitionByVendor(items []CartItemInput, snapshot *catalogSnapshot) partition {
	result := partition{
		items:    make([]models.OrderLineItem, 0, len(items)),
		byVendor: make(map[uuid.UUID][]models.OrderLineItem),
	}
	for i, item := range items {
		product := snapshot.products[item.ProductID]
		line := models.OrderLineItem{
			ID:        uuid.New(),
			Position:  i,
			ProductID: product.ID,
			Title:     product.Title,
			VendorID:  product.VendorID,
			Price:     product.Price,
			Qty:       item.Qty,
		}
		if _, ok := result.byVendor[product.VendorID]; !ok {
			result.vendorOrder = append(result.vendorOrder, product.VendorID)
		}
		result.byVendor[product.VendorID] = append(result.byVendor[product.VendorID], line)
		result.items = append(result.items, line)
	}
	return result
}
