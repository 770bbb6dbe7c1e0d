package banners

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bahzadkaka/mv-marketplace/pkg/db/models"
	pkgerrors "github.com/bahzadkaka/mv-marketplace/pkg/errors"
)

// CreateBannerInput is the validated payload to create a storefront banner.
type CreateBannerInput struct {
	Kind     string
	ImageURL string
	Position int
	LinkURL  string
}

// BannerPatch holds optional mutation values for a banner.
type BannerPatch struct {
	Kind     *string
	ImageURL *string
	Position *int
	LinkURL  *string
}

func (p BannerPatch) apply(banner *models.Banner) {
	if p.Kind != nil {
		banner.Kind = *p.Kind
	}
	if p.ImageURL != nil {
		banner.ImageURL = *p.ImageURL
	}
	if p.Position != nil {
		banner.Position = *p.Position
	}
	if p.LinkURL != nil {
		banner.LinkURL = *p.LinkURL
	}
}

// Service manages the admin-curated storefront banners.
type Service interface {
	Create(ctx context.Context, input CreateBannerInput) (*models.Banner, error)
	Update(ctx context.Context, id uuid.UUID, patch BannerPatch) (*models.Banner, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]models.Banner, error)
}

type service struct {
	db *gorm.DB
}

// NewService builds the banners service.
func NewService(db *gorm.DB) (Service, error) {
	if db == nil {
		return nil, fmt.Errorf("db handle required")
	}
	return &service{db: db}, nil
}

func (s *service) Create(ctx context.Context, input CreateBannerInput) (*models.Banner, error) {
	if strings.TrimSpace(input.ImageURL) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "banner image required")
	}
	banner := &models.Banner{
		ID:       uuid.New(),
		Kind:     input.Kind,
		ImageURL: input.ImageURL,
		Position: input.Position,
		LinkURL:  input.LinkURL,
	}
	if err := s.db.WithContext(ctx).Create(banner).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create banner")
	}
	return banner, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, patch BannerPatch) (*models.Banner, error) {
	banner, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.apply(banner)
	if err := s.db.WithContext(ctx).Save(banner).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save banner")
	}
	return banner, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	return s.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Banner{}).Error
}

func (s *service) List(ctx context.Context) ([]models.Banner, error) {
	var banners []models.Banner
	err := s.db.WithContext(ctx).
		Order("position ASC").
		Find(&banners).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list banners")
	}
	return banners, nil
}

func (s *service) find(ctx context.Context, id uuid.UUID) (*models.Banner, error) {
	var banner models.Banner
	err := s.db.WithContext(ctx).
		Where("id = ?", id).
		First(&banner).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "banner not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find banner")
	}
	return &banner, nil
}
