package checkout

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/bahzadkaka/mv-marketplace/pkg/db/models"
	pkgerrors "github.com/bahzadkaka/mv-marketplace/pkg/errors"
	"github.com/bahzadkaka/mv-marketplace/pkg/types"
)

type productCatalog interface {
	FindProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
}

type vendorCatalog interface {
	FindVendorsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.User, error)
}

// catalogSnapshot is the read-only view of products and vendor shipping
// config taken once at the start of order placement. Everything after
// validation works off this snapshot; the live catalog is never re-read
// mid-request.
type catalogSnapshot struct {
	products map[uuid.UUID]models.Product
	shipping map[uuid.UUID]types.ShippingMethods
}

// loadSnapshot resolves every cart product and the shipping config of every
// vendor those products belong to. The first unresolved product fails the
// whole request, identifying the offending id.
func loadSnapshot(ctx context.Context, products productCatalog, vendors vendorCatalog, items []CartItemInput) (*catalogSnapshot, error) {
	ids := make([]uuid.UUID, 0, len(items))
	seen := make(map[uuid.UUID]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}

	found, err := products.FindProductsByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products")
	}
	productMap := make(map[uuid.UUID]models.Product, len(found))
	for _, product := range found {
		productMap[product.ID] = product
	}
	for _, item := range items {
		if _, ok := productMap[item.ProductID]; !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("product %s not found", item.ProductID))
		}
	}

	vendorIDs := make([]uuid.UUID, 0, len(productMap))
	vendorSeen := make(map[uuid.UUID]struct{}, len(productMap))
	for _, item := range items {
		vendorID := productMap[item.ProductID].VendorID
		if _, ok := vendorSeen[vendorID]; ok {
			continue
		}
		vendorSeen[vendorID] = struct{}{}
		vendorIDs = append(vendorIDs, vendorID)
	}

	vendorRecords, err := vendors.FindVendorsByIDs(ctx, vendorIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendors")
	}
	shippingMap := make(map[uuid.UUID]types.ShippingMethods, len(vendorRecords))
	for _, vendor := range vendorRecords {
		shippingMap[vendor.ID] = vendor.Shipping
	}

	return &catalogSnapshot{products: productMap, shipping: shippingMap}, nil
}
