package controllers

import (
	"net/http"

	"github.com/bahzadkaka/mv-marketplace/api/responses"
	"github.com/bahzadkaka/mv-marketplace/api/validators"
	bannersvc "github.com/bahzadkaka/mv-marketplace/internal/banners"
	catalogsvc "github.com/bahzadkaka/mv-marketplace/internal/catalog"
	"github.com/bahzadkaka/mv-marketplace/pkg/db/models"
	"github.com/bahzadkaka/mv-marketplace/pkg/logger"
)

type storeHomeResponse struct {
	Banners    []models.Banner   `json:"banners"`
	Categories []models.Category `json:"categories"`
	Products   []models.Product  `json:"products"`
}

// StoreHome aggregates banners, categories and the full catalog for the
// public landing page.
func StoreHome(catalog catalogsvc.Service, banners bannersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bannerList, err := banners.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		categories, err := catalog.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		products, err := catalog.ListPublicProducts(r.Context(), nil)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, storeHomeResponse{
			Banners:    bannerList,
			Categories: categories,
			Products:   products,
		})
	}
}

// StoreProducts lists the public catalog, optionally filtered by the
// categoryId query parameter.
func StoreProducts(catalog catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := validators.ParseQueryUUID(r, "categoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		products, err := catalog.ListPublicProducts(r.Context(), categoryID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}
