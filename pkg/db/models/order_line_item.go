package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderLineItem is the snapshot of one cart row at order time. Position
// preserves the original cart order; vendor grouping never reorders items.
type OrderLineItem struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"-"`
	OrderID   uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index" json:"-"`
	Position  int             `gorm:"column:position;not null" json:"-"`
	ProductID uuid.UUID       `gorm:"column:product_id;type:uuid;not null" json:"productId"`
	Title     string          `gorm:"column:title;not null" json:"title"`
	VendorID  uuid.UUID       `gorm:"column:vendor_id;type:uuid;not null" json:"vendorId"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	Qty       int             `gorm:"column:qty;not null" json:"qty"`
}
