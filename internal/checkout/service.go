package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bahzadkaka/mv-marketplace/internal/orders"
	"github.com/bahzadkaka/mv-marketplace/pkg/db/models"
	"github.com/bahzadkaka/mv-marketplace/pkg/enums"
	pkgerrors "github.com/bahzadkaka/mv-marketplace/pkg/errors"
	"github.com/bahzadkaka/mv-marketplace/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type addressResolver interface {
	ResolveOwned(ctx context.Context, customerID, addressID uuid.UUID) (*types.AddressSnapshot, error)
}

// Service executes order placement: validate, partition, resolve shipping,
// assemble, persist. All validation happens before anything is written.
type Service interface {
	PlaceOrder(ctx context.Context, customerID uuid.UUID, input PlaceOrderInput) (*models.Order, error)
}

type service struct {
	tx        txRunner
	products  productCatalog
	vendors   vendorCatalog
	addresses addressResolver
	orders    orders.Repository
	now       func() time.Time
}

// NewService builds the checkout service.
func NewService(
	tx txRunner,
	products productCatalog,
	vendors vendorCatalog,
	addresses addressResolver,
	ordersRepo orders.Repository,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if products == nil {
		return nil, fmt.Errorf("product catalog required")
	}
	if vendors == nil {
		return nil, fmt.Errorf("vendor catalog required")
	}
	if addresses == nil {
		return nil, fmt.Errorf("address resolver required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &service{
		tx:        tx,
		products:  products,
		vendors:   vendors,
		addresses: addresses,
		orders:    ordersRepo,
		now:       time.Now,
	}, nil
}

func (s *service) PlaceOrder(ctx context.Context, customerID uuid.UUID, input PlaceOrderInput) (*models.Order, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart contains no items")
	}
	for _, item := range input.Items {
		if item.Qty < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("qty for product %s must be at least 1", item.ProductID))
		}
	}

	address, err := s.addresses.ResolveOwned(ctx, customerID, input.AddressID)
	if err != nil {
		return nil, err
	}

	snapshot, err := loadSnapshot(ctx, s.products, s.vendors, input.Items)
	if err != nil {
		return nil, err
	}

	grouped := partitionByVendor(input.Items, snapshot)

	shippingTotal := decimal.Zero
	breakdown := make(types.ShippingBreakdown, 0, len(grouped.vendorOrder))
	for _, vendorID := range grouped.vendorOrder {
		method, rate := resolveShipping(snapshot.shipping[vendorID], input.choiceFor(vendorID))
		shippingTotal = shippingTotal.Add(rate)
		breakdown = append(breakdown, types.ShippingBreakdownEntry{
			VendorID: vendorID,
			Method:   method,
			Rate:     rate,
		})
	}

	itemsTotal := decimal.Zero
	for _, line := range grouped.items {
		itemsTotal = itemsTotal.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Qty))))
	}
	total := itemsTotal.Add(shippingTotal.Round(2)).Round(2)

	order := &models.Order{
		ID:         uuid.New(),
		CustomerID: customerID,
		Address:    *address,
		Status:     enums.OrderStatusPending,
		Shipping: models.OrderShipping{
			Total:     shippingTotal.Round(2),
			Breakdown: breakdown,
		},
		Total:     total,
		Items:     grouped.items,
		CreatedAt: s.now().UTC(),
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		_, err := s.orders.WithTx(tx).Create(ctx, order)
		return err
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist order")
	}
	return order, nil
}
