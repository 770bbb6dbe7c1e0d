package controllers

import (
	"net/http"
	"strconv"

	"github.com/bahzadkaka/mv-marketplace/api/responses"
	bannersvc "github.com/bahzadkaka/mv-marketplace/internal/banners"
	"github.com/bahzadkaka/mv-marketplace/internal/media"
	pkgerrors "github.com/bahzadkaka/mv-marketplace/pkg/errors"
	"github.com/bahzadkaka/mv-marketplace/pkg/logger"
)

// AdminListBanners returns every banner in display order.
func AdminListBanners(svc bannersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		banners, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, banners)
	}
}

// AdminCreateBanner accepts a multipart form with an optional "image" file.
// Without a file the "image" field supplies the URL directly.
func AdminCreateBanner(svc bannersvc.Service, uploads media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		imageURL, _, err := parseImageForm(r, uploads)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := bannersvc.CreateBannerInput{
			Kind:     "banner",
			ImageURL: imageURL,
			LinkURL:  "#",
		}
		if kind, ok := formValue(r, "type"); ok {
			input.Kind = kind
		}
		if link, ok := formValue(r, "url"); ok {
			input.LinkURL = link
		}
		if raw, ok := formValue(r, "position"); ok {
			position, err := strconv.Atoi(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid position"))
				return
			}
			input.Position = position
		}

		banner, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, banner)
	}
}

func AdminUpdateBanner(svc bannersvc.Service, uploads media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		imageURL, hasImage, err := parseImageForm(r, uploads)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var patch bannersvc.BannerPatch
		if hasImage {
			patch.ImageURL = &imageURL
		}
		if kind, ok := formValue(r, "type"); ok {
			patch.Kind = &kind
		}
		if link, ok := formValue(r, "url"); ok {
			patch.LinkURL = &link
		}
		if raw, ok := formValue(r, "position"); ok {
			position, err := strconv.Atoi(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid position"))
				return
			}
			patch.Position = &position
		}

		banner, err := svc.Update(r.Context(), id, patch)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, banner)
	}
}

func AdminDeleteBanner(svc bannersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}
