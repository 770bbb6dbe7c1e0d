package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/bahzadkaka/mv-marketplace/pkg/enums"
	"github.com/bahzadkaka/mv-marketplace/pkg/types"
)

// User represents the canonical identity entity. Vendors additionally carry
// a storefront profile and an ordered shipping method list; customers carry
// an address book (separate table).
type User struct {
	ID           uuid.UUID             `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Role         enums.Role            `gorm:"column:role;type:text;not null" json:"role"`
	Email        string                `gorm:"column:email;type:text;not null;uniqueIndex" json:"email"`
	PasswordHash string                `gorm:"column:password_hash;not null" json:"-"`
	Name         string                `gorm:"column:name;not null" json:"name"`
	Status       enums.UserStatus      `gorm:"column:status;type:text;not null;default:'active'" json:"status"`
	Store        *types.StoreProfile   `gorm:"column:store;type:jsonb;serializer:json" json:"store,omitempty"`
	Shipping     types.ShippingMethods `gorm:"column:shipping;type:jsonb;serializer:json" json:"shipping,omitempty"`
	Addresses    []Address             `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"addresses,omitempty"`
	CreatedAt    time.Time             `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time             `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
