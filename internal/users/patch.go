package users

import (
	"github.com/bahzadkaka/mv-marketplace/pkg/db/models"
	"github.com/bahzadkaka/mv-marketplace/pkg/enums"
	"github.com/bahzadkaka/mv-marketplace/pkg/types"
)

// UserPatch holds optional admin-settable user fields. Each field is applied
// only when non-nil.
type UserPatch struct {
	Name   *string
	Email  *string
	Status *enums.UserStatus
}

func (p UserPatch) apply(user *models.User) {
	if p.Name != nil {
		user.Name = *p.Name
	}
	if p.Email != nil {
		user.Email = *p.Email
	}
	if p.Status != nil {
		user.Status = *p.Status
	}
}

// VendorProfilePatch holds optional vendor self-service fields.
type VendorProfilePatch struct {
	Name     *string
	Store    *types.StoreProfile
	Shipping *types.ShippingMethods
}

func (p VendorProfilePatch) apply(user *models.User) {
	if p.Name != nil {
		user.Name = *p.Name
	}
	if p.Store != nil {
		user.Store = p.Store
	}
	if p.Shipping != nil {
		user.Shipping = *p.Shipping
	}
}

// CustomerProfilePatch holds optional customer self-service fields.
type CustomerProfilePatch struct {
	Name *string
}

func (p CustomerProfilePatch) apply(user *models.User) {
	if p.Name != nil {
		user.Name = *p.Name
	}
}
