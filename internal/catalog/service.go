package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bahzadkaka/mv-marketplace/pkg/db/models"
	"github.com/bahzadkaka/mv-marketplace/pkg/enums"
	pkgerrors "github.com/bahzadkaka/mv-marketplace/pkg/errors"
)

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Title      string
	Price      decimal.Decimal
	CategoryID *uuid.UUID
	Stock      int
	ImageURL   string
}

// ProductPatch holds optional mutation values for a product. Each field is
// applied only when non-nil.
type ProductPatch struct {
	Title      *string
	Price      *decimal.Decimal
	CategoryID *uuid.UUID
	Stock      *int
	ImageURL   *string
}

func (p ProductPatch) apply(product *models.Product) {
	if p.Title != nil {
		product.Title = *p.Title
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
	if p.CategoryID != nil {
		product.CategoryID = p.CategoryID
	}
	if p.Stock != nil {
		product.Stock = *p.Stock
	}
	if p.ImageURL != nil {
		product.ImageURL = *p.ImageURL
	}
}

// CategoryPatch holds optional mutation values for a category.
type CategoryPatch struct {
	Name *string
}

// Service exposes catalog management for vendors and admins plus the public
// storefront listing.
type Service interface {
	CreateProduct(ctx context.Context, vendorID uuid.UUID, input CreateProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, actorID uuid.UUID, actorRole enums.Role, productID uuid.UUID, patch ProductPatch) (*models.Product, error)
	DeleteProduct(ctx context.Context, actorID uuid.UUID, actorRole enums.Role, productID uuid.UUID) error
	ListVendorProducts(ctx context.Context, vendorID uuid.UUID) ([]models.Product, error)
	ListPublicProducts(ctx context.Context, categoryID *uuid.UUID) ([]models.Product, error)
	CreateCategory(ctx context.Context, name string) (*models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, patch CategoryPatch) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	ListCategories(ctx context.Context) ([]models.Category, error)
	DeleteByVendor(ctx context.Context, tx *gorm.DB, vendorID uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService builds the catalog service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreateProduct(ctx context.Context, vendorID uuid.UUID, input CreateProductInput) (*models.Product, error) {
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
	}
	if input.CategoryID != nil {
		if _, err := s.repo.FindCategoryByID(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
	}
	product := &models.Product{
		ID:         uuid.New(),
		VendorID:   vendorID,
		Title:      strings.TrimSpace(input.Title),
		Price:      input.Price,
		CategoryID: input.CategoryID,
		Stock:      input.Stock,
		ImageURL:   input.ImageURL,
	}
	return s.repo.CreateProduct(ctx, product)
}

func (s *service) UpdateProduct(ctx context.Context, actorID uuid.UUID, actorRole enums.Role, productID uuid.UUID, patch ProductPatch) (*models.Product, error) {
	product, err := s.loadOwned(ctx, actorID, actorRole, productID)
	if err != nil {
		return nil, err
	}
	if patch.Price != nil && patch.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
	}
	if patch.CategoryID != nil {
		if _, err := s.repo.FindCategoryByID(ctx, *patch.CategoryID); err != nil {
			return nil, err
		}
	}
	patch.apply(product)
	if err := s.repo.SaveProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *service) DeleteProduct(ctx context.Context, actorID uuid.UUID, actorRole enums.Role, productID uuid.UUID) error {
	product, err := s.loadOwned(ctx, actorID, actorRole, productID)
	if err != nil {
		return err
	}
	return s.repo.DeleteProduct(ctx, product.ID)
}

// loadOwned enforces that vendors only touch their own listings. Admins may
// touch any listing.
func (s *service) loadOwned(ctx context.Context, actorID uuid.UUID, actorRole enums.Role, productID uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if actorRole != enums.RoleAdmin && product.VendorID != actorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "product belongs to another vendor")
	}
	return product, nil
}

func (s *service) ListVendorProducts(ctx context.Context, vendorID uuid.UUID) ([]models.Product, error) {
	return s.repo.ListProductsByVendor(ctx, vendorID)
}

func (s *service) ListPublicProducts(ctx context.Context, categoryID *uuid.UUID) ([]models.Product, error) {
	return s.repo.ListProducts(ctx, categoryID)
}

func (s *service) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name required")
	}
	return s.repo.CreateCategory(ctx, &models.Category{ID: uuid.New(), Name: name})
}

func (s *service) UpdateCategory(ctx context.Context, id uuid.UUID, patch CategoryPatch) (*models.Category, error) {
	category, err := s.repo.FindCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name required")
		}
		category.Name = name
	}
	if err := s.repo.SaveCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindCategoryByID(ctx, id); err != nil {
		return err
	}
	return s.repo.DeleteCategory(ctx, id)
}

func (s *service) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.repo.ListCategories(ctx)
}

// DeleteByVendor removes every listing owned by the vendor. Runs inside the
// caller's transaction during account deletion.
func (s *service) DeleteByVendor(ctx context.Context, tx *gorm.DB, vendorID uuid.UUID) error {
	return s.repo.WithTx(tx).DeleteProductsByVendor(ctx, vendorID)
}
