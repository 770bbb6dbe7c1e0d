package backup

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/bahzadkaka/mv-marketplace/pkg/db/models"
	pkgerrors "github.com/bahzadkaka/mv-marketplace/pkg/errors"
)

// Snapshot is the full dataset as one JSON document, collection by
// collection. The same shape round-trips through export and import.
type Snapshot struct {
	Users      []models.User          `json:"users"`
	Addresses  []models.Address       `json:"addresses"`
	Products   []models.Product       `json:"products"`
	Categories []models.Category      `json:"categories"`
	Banners    []models.Banner        `json:"banners"`
	Orders     []models.Order         `json:"orders"`
	OrderItems []models.OrderLineItem `json:"orderItems"`
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exports the whole store and restores it wholesale.
type Service interface {
	Export(ctx context.Context) (*Snapshot, error)
	Import(ctx context.Context, snapshot *Snapshot) error
}

type service struct {
	db *gorm.DB
	tx txRunner
}

// NewService builds the backup service.
func NewService(db *gorm.DB, tx txRunner) (Service, error) {
	if db == nil {
		return nil, fmt.Errorf("db handle required")
	}
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	return &service{db: db, tx: tx}, nil
}

func (s *service) Export(ctx context.Context) (*Snapshot, error) {
	snapshot := &Snapshot{}
	var errs error
	errs = multierr.Append(errs, s.db.WithContext(ctx).Order("created_at ASC").Find(&snapshot.Users).Error)
	errs = multierr.Append(errs, s.db.WithContext(ctx).Find(&snapshot.Addresses).Error)
	errs = multierr.Append(errs, s.db.WithContext(ctx).Find(&snapshot.Products).Error)
	errs = multierr.Append(errs, s.db.WithContext(ctx).Find(&snapshot.Categories).Error)
	errs = multierr.Append(errs, s.db.WithContext(ctx).Find(&snapshot.Banners).Error)
	errs = multierr.Append(errs, s.db.WithContext(ctx).Find(&snapshot.Orders).Error)
	errs = multierr.Append(errs, s.db.WithContext(ctx).Order("position ASC").Find(&snapshot.OrderItems).Error)
	if errs != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, errs, "export store")
	}
	return snapshot, nil
}

// Import replaces every collection with the snapshot's contents in one
// transaction. A failing collection aborts the whole restore.
func (s *service) Import(ctx context.Context, snapshot *Snapshot) error {
	if snapshot == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "snapshot required")
	}
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		for _, model := range models.All() {
			if err := tx.WithContext(ctx).Where("1 = 1").Delete(model).Error; err != nil {
				return fmt.Errorf("clear %T: %w", model, err)
			}
		}
		if err := createAll(ctx, tx, snapshot); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "import store")
	}
	return nil
}

func createAll(ctx context.Context, tx *gorm.DB, snapshot *Snapshot) error {
	if len(snapshot.Users) > 0 {
		if err := tx.WithContext(ctx).Omit("Addresses").Create(&snapshot.Users).Error; err != nil {
			return fmt.Errorf("restore users: %w", err)
		}
	}
	if len(snapshot.Addresses) > 0 {
		if err := tx.WithContext(ctx).Create(&snapshot.Addresses).Error; err != nil {
			return fmt.Errorf("restore addresses: %w", err)
		}
	}
	if len(snapshot.Products) > 0 {
		if err := tx.WithContext(ctx).Create(&snapshot.Products).Error; err != nil {
			return fmt.Errorf("restore products: %w", err)
		}
	}
	if len(snapshot.Categories) > 0 {
		if err := tx.WithContext(ctx).Create(&snapshot.Categories).Error; err != nil {
			return fmt.Errorf("restore categories: %w", err)
		}
	}
	if len(snapshot.Banners) > 0 {
		if err := tx.WithContext(ctx).Create(&snapshot.Banners).Error; err != nil {
			return fmt.Errorf("restore banners: %w", err)
		}
	}
	if len(snapshot.Orders) > 0 {
		if err := tx.WithContext(ctx).Omit("Items").Create(&snapshot.Orders).Error; err != nil {
			return fmt.Errorf("restore orders: %w", err)
		}
	}
	if len(snapshot.OrderItems) > 0 {
		if err := tx.WithContext(ctx).Create(&snapshot.OrderItems).Error; err != nil {
			return fmt.Errorf("restore order items: %w", err)
		}
	}
	return nil
}
