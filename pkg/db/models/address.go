package models

import (
	"time"

	"github.com/google/uuid"
)

// Address is one entry in a customer's address book. Orders embed a
// snapshot of it, never a reference.
type Address struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CustomerID uuid.UUID `gorm:"column:customer_id;type:uuid;not null;index" json:"customerId"`
	Label      string    `gorm:"column:label" json:"label"`
	Line1      string    `gorm:"column:line1" json:"line1"`
	City       string    `gorm:"column:city" json:"city"`
	Country    string    `gorm:"column:country" json:"country"`
	Phone      string    `gorm:"column:phone" json:"phone"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}
