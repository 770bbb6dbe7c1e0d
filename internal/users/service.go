package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bahzadkaka/mv-marketplace/pkg/db/models"
	"github.com/bahzadkaka/mv-marketplace/pkg/enums"
	pkgerrors "github.com/bahzadkaka/mv-marketplace/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type vendorProductCleaner interface {
	DeleteByVendor(ctx context.Context, tx *gorm.DB, vendorID uuid.UUID) error
}

// Service exposes account management operations for admins and the
// self-service profile surface for vendors and customers.
type Service interface {
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id uuid.UUID) (*models.User, error)
	SetStatus(ctx context.Context, id uuid.UUID, status enums.UserStatus) (*models.User, error)
	Update(ctx context.Context, id uuid.UUID, patch UserPatch) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateVendorProfile(ctx context.Context, vendorID uuid.UUID, patch VendorProfilePatch) (*models.User, error)
	UpdateCustomerProfile(ctx context.Context, customerID uuid.UUID, patch CustomerProfilePatch) (*models.User, error)
}

type service struct {
	tx       txRunner
	repo     Repository
	products vendorProductCleaner
}

// NewService builds the users service.
func NewService(tx txRunner, repo Repository, products vendorProductCleaner) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product cleaner required")
	}
	return &service{tx: tx, repo: repo, products: products}, nil
}

func (s *service) List(ctx context.Context) ([]models.User, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) SetStatus(ctx context.Context, id uuid.UUID, status enums.UserStatus) (*models.User, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid status %q", status))
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Status = status
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, patch UserPatch) (*models.User, error) {
	if patch.Status != nil && !patch.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid status %q", *patch.Status))
	}
	if patch.Email != nil && strings.TrimSpace(*patch.Email) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email cannot be empty")
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.apply(user)
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the account. A vendor's products go with it so the catalog
// never references a missing vendor.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if user.Role == enums.RoleVendor {
			if err := s.products.DeleteByVendor(ctx, tx, user.ID); err != nil {
				return err
			}
		}
		return s.repo.WithTx(tx).Delete(ctx, user.ID)
	})
}

func (s *service) UpdateVendorProfile(ctx context.Context, vendorID uuid.UUID, patch VendorProfilePatch) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if user.Role != enums.RoleVendor {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not a vendor account")
	}
	patch.apply(user)
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) UpdateCustomerProfile(ctx context.Context, customerID uuid.UUID, patch CustomerProfilePatch) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if user.Role != enums.RoleCustomer {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not a customer account")
	}
	patch.apply(user)
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
