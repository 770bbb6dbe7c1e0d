package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/bahzadkaka/mv-marketplace/api/responses"
	"github.com/bahzadkaka/mv-marketplace/api/validators"
	usersvc "github.com/bahzadkaka/mv-marketplace/internal/users"
	"github.com/bahzadkaka/mv-marketplace/pkg/logger"
	"github.com/bahzadkaka/mv-marketplace/pkg/types"
)

type storeProfileRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type shippingMethodRequest struct {
	Name string          `json:"name" validate:"required"`
	Rate decimal.Decimal `json:"rate"`
}

type updateVendorProfileRequest struct {
	Name     *string                  `json:"name,omitempty"`
	Store    *storeProfileRequest     `json:"store,omitempty"`
	Shipping *[]shippingMethodRequest `json:"shipping,omitempty" validate:"omitempty,dive"`
}

func (p updateVendorProfileRequest) toPatch() usersvc.VendorProfilePatch {
	patch := usersvc.VendorProfilePatch{Name: p.Name}
	if p.Store != nil {
		patch.Store = &types.StoreProfile{
			Name:    p.Store.Name,
			Phone:   p.Store.Phone,
			Address: p.Store.Address,
		}
	}
	if p.Shipping != nil {
		methods := make(types.ShippingMethods, 0, len(*p.Shipping))
		for _, method := range *p.Shipping {
			methods = append(methods, types.ShippingMethod{
				Name: method.Name,
				Rate: method.Rate,
			})
		}
		patch.Shipping = &methods
	}
	return patch
}

// GetVendorProfile returns the authenticated vendor's account, store
// profile and shipping methods.
func GetVendorProfile(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendorID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vendor, err := svc.Get(r.Context(), vendorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, vendor)
	}
}

// UpdateVendorProfile applies partial updates to the vendor's store
// profile and shipping method list. A shipping array replaces the whole
// list; array order is preserved.
func UpdateVendorProfile(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendorID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateVendorProfileRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vendor, err := svc.UpdateVendorProfile(r.Context(), vendorID, payload.toPatch())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, vendor)
	}
}
