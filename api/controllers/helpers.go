package controllers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bahzadkaka/mv-marketplace/api/middleware"
	"github.com/bahzadkaka/mv-marketplace/internal/media"
	pkgerrors "github.com/bahzadkaka/mv-marketplace/pkg/errors"
)

const multipartMemoryLimit = 8 << 20

// actorID returns the authenticated user's id from the request context.
func actorID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	return id, nil
}

// parseImageForm parses a multipart form that may carry an "image" file.
// An uploaded file is stored through the media service and its public URL
// returned; without a file the "image" form field is used as-is.
func parseImageForm(r *http.Request, uploads media.Service) (string, bool, error) {
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		return "", false, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "parse multipart form")
	}
	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		url := r.FormValue("image")
		return url, url != "", nil
	}
	if err != nil {
		return "", false, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read image upload")
	}
	defer file.Close()

	url, err := uploads.SaveImage(r.Context(), header.Filename, file)
	if err != nil {
		return "", false, err
	}
	return url, true, nil
}

// formValue returns a multipart form field and whether it was present.
func formValue(r *http.Request, key string) (string, bool) {
	if r.MultipartForm == nil {
		return "", false
	}
	values, ok := r.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// pathUUID parses a uuid route parameter.
func pathUUID(r *http.Request, key string) (uuid.UUID, error) {
	raw := chi.URLParam(r, key)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+key)
	}
	return id, nil
}
