package rest

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/legalchicks/lcen-portal/internal/common"
	"github.com/legalchicks/lcen-portal/internal/server/services"
)

const (
	msgForbiddenProfile = "Not authorized to update this profile"
	msgBadVisibility    = "Visibility must be public or private"
	msgMembersErr       = "Server error fetching members"
	msgProfileErr       = "Server error fetching profile"
	msgUpdateErr        = "Server error updating profile"
)

type updateProfileRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Visibility string `json:"visibility"`
}

func (s *Server) handleMembers(w http.ResponseWriter, r *http.Request) {
	members, err := s.svc.Profiles.Members(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "list members", "error", err)
		errorJSON(w, http.StatusInternalServerError, msgMembersErr)
		return
	}
	writeJSON(w, http.StatusOK, members)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := s.svc.Profiles.Profile(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			errorJSON(w, http.StatusNotFound, msgUserNotFound)
			return
		}
		s.logger.Error(r.Context(), "get profile", "error", err)
		errorJSON(w, http.StatusInternalServerError, msgProfileErr)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	subject, _ := SubjectFromContext(r.Context())

	var req updateProfileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, msgBadRequestBody)
		return
	}

	user, err := s.svc.Profiles.UpdateProfile(r.Context(), subject.UserID, chi.URLParam(r, "id"), services.ProfileChanges{
		Name:       req.Name,
		Email:      req.Email,
		Visibility: req.Visibility,
	})
	if err != nil {
		switch {
		case errors.Is(err, common.ErrUserNotFound):
			errorJSON(w, http.StatusNotFound, msgUserNotFound)
		case errors.Is(err, common.ErrForbidden):
			errorJSON(w, http.StatusForbidden, msgForbiddenProfile)
		case errors.Is(err, common.ErrValidation):
			errorJSON(w, http.StatusBadRequest, msgBadVisibility)
		case errors.Is(err, common.ErrEmailExists):
			errorJSON(w, http.StatusBadRequest, msgEmailExists)
		default:
			s.logger.Error(r.Context(), "update profile", "error", err)
			errorJSON(w, http.StatusInternalServerError, msgUpdateErr)
		}
		return
	}

	writeJSON(w, http.StatusOK, userResponse{Success: true, User: user})
}
