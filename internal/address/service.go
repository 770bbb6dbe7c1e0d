package address

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bahzadkaka/mv-marketplace/pkg/db/models"
	pkgerrors "github.com/bahzadkaka/mv-marketplace/pkg/errors"
	"github.com/bahzadkaka/mv-marketplace/pkg/types"
)

// AddressInput is the validated payload to add an address book entry.
type AddressInput struct {
	Label   string
	Line1   string
	City    string
	Country string
	Phone   string
}

// Service manages a customer's address book and resolves owned addresses
// for order placement.
type Service interface {
	Add(ctx context.Context, customerID uuid.UUID, input AddressInput) (*models.Address, error)
	Remove(ctx context.Context, customerID, addressID uuid.UUID) error
	List(ctx context.Context, customerID uuid.UUID) ([]models.Address, error)
	ResolveOwned(ctx context.Context, customerID, addressID uuid.UUID) (*types.AddressSnapshot, error)
}

type service struct {
	db *gorm.DB
}

// NewService builds the address service.
func NewService(db *gorm.DB) (Service, error) {
	if db == nil {
		return nil, fmt.Errorf("db handle required")
	}
	return &service{db: db}, nil
}

func (s *service) Add(ctx context.Context, customerID uuid.UUID, input AddressInput) (*models.Address, error) {
	record := &models.Address{
		ID:         uuid.New(),
		CustomerID: customerID,
		Label:      input.Label,
		Line1:      input.Line1,
		City:       input.City,
		Country:    input.Country,
		Phone:      input.Phone,
	}
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create address")
	}
	return record, nil
}

func (s *service) Remove(ctx context.Context, customerID, addressID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND customer_id = ?", addressID, customerID).
		Delete(&models.Address{})
	if result.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, result.Error, "delete address")
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
	}
	return nil
}

func (s *service) List(ctx context.Context, customerID uuid.UUID) ([]models.Address, error) {
	var records []models.Address
	err := s.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list addresses")
	}
	return records, nil
}

// ResolveOwned returns the address as a snapshot, rejecting ids that do not
// belong to the requesting customer.
func (s *service) ResolveOwned(ctx context.Context, customerID, addressID uuid.UUID) (*types.AddressSnapshot, error) {
	var record models.Address
	err := s.db.WithContext(ctx).
		Where("id = ? AND customer_id = ?", addressID, customerID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("address %s does not belong to customer", addressID))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve address")
	}
	snapshot := &types.AddressSnapshot{
		ID:      record.ID,
		Label:   record.Label,
		Line1:   record.Line1,
		City:    record.City,
		Country: record.Country,
		Phone:   record.Phone,
	}
	return snapshot, nil
}
