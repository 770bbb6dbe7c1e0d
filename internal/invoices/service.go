package invoices

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/bahzadkaka/mv-marketplace/pkg/db/models"
	pkgerrors "github.com/bahzadkaka/mv-marketplace/pkg/errors"
)

type orderLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
}

// Invoice is a rendered document plus its suggested filename.
type Invoice struct {
	Filename string
	PDF      []byte
}

// Service renders invoices from persisted orders. The renderer reads only
// the order record: product and vendor state may have changed since the
// order was placed and must not leak into the document.
type Service interface {
	Render(ctx context.Context, orderID uuid.UUID) (*Invoice, error)
}

type service struct {
	orders orderLoader
	title  string
}

// NewService builds the invoice service.
func NewService(orders orderLoader, title string) (Service, error) {
	if orders == nil {
		return nil, fmt.Errorf("order loader required")
	}
	if title == "" {
		return nil, fmt.Errorf("invoice title required")
	}
	return &service{orders: orders, title: title}, nil
}

func (s *service) Render(ctx context.Context, orderID uuid.UUID) (*Invoice, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	pdf, err := renderPDF(buildLines(order, s.title))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render invoice")
	}

	return &Invoice{
		Filename: fmt.Sprintf("invoice-%s.pdf", order.ID),
		PDF:      pdf,
	}, nil
}
