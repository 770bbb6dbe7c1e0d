package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bahzadkaka/mv-marketplace/pkg/enums"
	"github.com/bahzadkaka/mv-marketplace/pkg/types"
)

// OrderShipping is the shipping block embedded in every order: the summed
// rate across vendors plus the per-vendor breakdown.
type OrderShipping struct {
	Total     decimal.Decimal         `gorm:"column:shipping_total;type:numeric(12,2);not null" json:"total"`
	Breakdown types.ShippingBreakdown `gorm:"column:shipping_breakdown;type:jsonb;serializer:json" json:"breakdown"`
}

// Order is the immutable record produced by order placement. Only Status
// ever changes after creation, and only through an admin transition.
type Order struct {
	ID         uuid.UUID             `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CustomerID uuid.UUID             `gorm:"column:customer_id;type:uuid;not null;index" json:"customerId"`
	Address    types.AddressSnapshot `gorm:"column:address;type:jsonb;serializer:json" json:"address"`
	Status     enums.OrderStatus     `gorm:"column:status;type:text;not null;default:'pending'" json:"status"`
	Shipping   OrderShipping         `gorm:"embedded" json:"shipping"`
	Total      decimal.Decimal       `gorm:"column:total;type:numeric(12,2);not null" json:"total"`
	Items      []OrderLineItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt  time.Time             `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt  time.Time             `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}
