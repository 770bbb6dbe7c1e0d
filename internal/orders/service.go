package orders

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/bahzadkaka/mv-marketplace/pkg/db/models"
	pkgerrors "github.com/bahzadkaka/mv-marketplace/pkg/errors"
)

// Service exposes the order listing and status transition surface. Order
// creation happens in the checkout engine, not here.
type Service interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListForCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	TransitionStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error)
}

type service struct {
	repo Repository
}

// NewService builds the orders service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListForCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Order, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}

func (s *service) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.repo.ListAll(ctx)
}

// TransitionStatus accepts any non-empty status string. There is no status
// state machine; admins own the vocabulary.
func (s *service) TransitionStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "status required")
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}
