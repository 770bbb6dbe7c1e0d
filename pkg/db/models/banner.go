package models

import (
	"time"

	"github.com/google/uuid"
)

// Banner is a storefront slide or promo tile managed by admins.
type Banner struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Kind      string    `gorm:"column:kind;not null;default:'banner'" json:"type"`
	ImageURL  string    `gorm:"column:image_url" json:"image"`
	Position  int       `gorm:"column:position;not null;default:0" json:"position"`
	LinkURL   string    `gorm:"column:link_url" json:"url"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
