package controllers

import (
	"net/http"

	"github.com/bahzadkaka/mv-marketplace/api/responses"
	"github.com/bahzadkaka/mv-marketplace/api/validators"
	userssvc "github.com/bahzadkaka/mv-marketplace/internal/users"
	"github.com/bahzadkaka/mv-marketplace/pkg/enums"
	"github.com/bahzadkaka/mv-marketplace/pkg/logger"
)

type setUserStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active pending suspended"`
}

type updateUserRequest struct {
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty" validate:"omitempty,email"`
	Status *string `json:"status,omitempty" validate:"omitempty,oneof=active pending suspended"`
}

// AdminListUsers lists every account.
func AdminListUsers(svc userssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, users)
	}
}

// AdminSetUserStatus transitions an account status. Activating a pending
// vendor happens here.
func AdminSetUserStatus(svc userssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload setUserStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.SetStatus(r.Context(), id, enums.UserStatus(payload.Status))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}

// AdminUpdateUser applies a partial account edit.
func AdminUpdateUser(svc userssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateUserRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		patch := userssvc.UserPatch{Name: payload.Name, Email: payload.Email}
		if payload.Status != nil {
			status := enums.UserStatus(*payload.Status)
			patch.Status = &status
		}

		user, err := svc.Update(r.Context(), id, patch)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}

// AdminDeleteUser removes an account and, for vendors, their products.
func AdminDeleteUser(svc userssvc.Service, logg *logger.Logger) http.HandlerFunc {
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
