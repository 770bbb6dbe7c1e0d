package controllers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bahzadkaka/mv-marketplace/api/middleware"
	"github.com/bahzadkaka/mv-marketplace/api/responses"
	catalogsvc "github.com/bahzadkaka/mv-marketplace/internal/catalog"
	"github.com/bahzadkaka/mv-marketplace/internal/media"
	"github.com/bahzadkaka/mv-marketplace/pkg/enums"
	pkgerrors "github.com/bahzadkaka/mv-marketplace/pkg/errors"
	"github.com/bahzadkaka/mv-marketplace/pkg/logger"
)

// actorRole returns the authenticated user's role from the request context.
func actorRole(r *http.Request) (enums.Role, error) {
	role, err := enums.ParseRole(middleware.RoleFromContext(r.Context()))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "role context missing")
	}
	return role, nil
}

func ListVendorProducts(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendorID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		products, err := svc.ListVendorProducts(r.Context(), vendorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}

// CreateVendorProduct accepts a multipart form with title, price,
// categoryId, stock and an optional "image" file or URL field.
func CreateVendorProduct(svc catalogsvc.Service, uploads media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendorID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		imageURL, _, err := parseImageForm(r, uploads)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := catalogsvc.CreateProductInput{ImageURL: imageURL}
		title, ok := formValue(r, "title")
		if !ok || title == "" {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "title required"))
			return
		}
		input.Title = title

		raw, ok := formValue(r, "price")
		if !ok {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "price required"))
			return
		}
		price, err := decimal.NewFromString(raw)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price"))
			return
		}
		input.Price = price

		if raw, ok := formValue(r, "categoryId"); ok && raw != "" {
			categoryID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid categoryId"))
				return
			}
			input.CategoryID = &categoryID
		}
		if raw, ok := formValue(r, "stock"); ok && raw != "" {
			stock, err := strconv.Atoi(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid stock"))
				return
			}
			input.Stock = stock
		}

		product, err := svc.CreateProduct(r.Context(), vendorID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

func UpdateVendorProduct(svc catalogsvc.Service, uploads media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		role, err := actorRole(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		imageURL, hasImage, err := parseImageForm(r, uploads)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var patch catalogsvc.ProductPatch
		if hasImage {
			patch.ImageURL = &imageURL
		}
		if title, ok := formValue(r, "title"); ok {
			patch.Title = &title
		}
		if raw, ok := formValue(r, "price"); ok {
			price, err := decimal.NewFromString(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price"))
				return
			}
			patch.Price = &price
		}
		if raw, ok := formValue(r, "categoryId"); ok {
			categoryID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid categoryId"))
				return
			}
			patch.CategoryID = &categoryID
		}
		if raw, ok := formValue(r, "stock"); ok {
			stock, err := strconv.Atoi(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid stock"))
				return
			}
			patch.Stock = &stock
		}

		product, err := svc.UpdateProduct(r.Context(), actor, role, productID, patch)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func DeleteVendorProduct(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		role, err := actorRole(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), actor, role, productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}
