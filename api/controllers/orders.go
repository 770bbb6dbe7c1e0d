package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/bahzadkaka/mv-marketplace/api/responses"
	"github.com/bahzadkaka/mv-marketplace/api/validators"
	checkoutsvc "github.com/bahzadkaka/mv-marketplace/internal/checkout"
	ordersvc "github.com/bahzadkaka/mv-marketplace/internal/orders"
	"github.com/bahzadkaka/mv-marketplace/pkg/logger"
)

type cartItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Qty       int       `json:"qty" validate:"required,min=1"`
}

type shippingChoiceRequest struct {
	VendorID   uuid.UUID `json:"vendorId" validate:"required"`
	MethodName string    `json:"methodName" validate:"required"`
}

type placeOrderRequest struct {
	Items           []cartItemRequest       `json:"items" validate:"required,min=1,dive"`
	AddressID       uuid.UUID               `json:"addressId" validate:"required"`
	ShippingChoices []shippingChoiceRequest `json:"shippingChoices" validate:"omitempty,dive"`
}

func (p placeOrderRequest) toInput() checkoutsvc.PlaceOrderInput {
	input := checkoutsvc.PlaceOrderInput{
		Items:           make([]checkoutsvc.CartItemInput, 0, len(p.Items)),
		AddressID:       p.AddressID,
		ShippingChoices: make([]checkoutsvc.ShippingChoiceInput, 0, len(p.ShippingChoices)),
	}
	for _, item := range p.Items {
		input.Items = append(input.Items, checkoutsvc.CartItemInput{
			ProductID: item.ProductID,
			Qty:       item.Qty,
		})
	}
	for _, choice := range p.ShippingChoices {
		input.ShippingChoices = append(input.ShippingChoices, checkoutsvc.ShippingChoiceInput{
			VendorID:   choice.VendorID,
			MethodName: choice.MethodName,
		})
	}
	return input
}

// PlaceOrder validates the cart, snapshots it into an immutable order and
// returns the stored order with its line items and shipping breakdown.
func PlaceOrder(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload placeOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.PlaceOrder(r.Context(), customerID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

func ListCustomerOrders(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orders, err := svc.ListForCustomer(r.Context(), customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, orders)
	}
}
