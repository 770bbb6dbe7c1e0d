package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents the canonical vendor listing. Price is authoritative
// only at the moment an order is placed; orders snapshot it.
type Product struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	VendorID   uuid.UUID       `gorm:"column:vendor_id;type:uuid;not null;index" json:"vendorId"`
	Title      string          `gorm:"column:title;not null" json:"title"`
	Price      decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	CategoryID *uuid.UUID      `gorm:"column:category_id;type:uuid" json:"categoryId,omitempty"`
	Stock      int             `gorm:"column:stock;not null;default:0" json:"stock"`
	ImageURL   string          `gorm:"column:image_url" json:"image"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
