package rest

import (
	"errors"
	"net/http"

	"github.com/legalchicks/lcen-portal/internal/common"
	"github.com/legalchicks/lcen-portal/internal/server/models"
)

const (
	msgLoginMissing      = "Please provide email and password"
	msgRegisterMissing   = "Please provide name, email, and password"
	msgInvalidCreds      = "Invalid credentials. Please try again."
	msgEmailExists       = "An account with this email already exists."
	msgLoginSuccess      = "Login successful!"
	msgRegisterSuccess   = "Registration successful! Please check your email for a verification link."
	msgUserNotFound      = "User not found"
	msgLoginServerErr    = "Server error during login"
	msgRegisterServerErr = "Server error during registration"
	msgVerifyServerErr   = "Server error during verification"
	msgBadRequestBody    = "Invalid request body"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Token   string            `json:"token"`
	User    models.PublicUser `json:"user"`
}

type userResponse struct {
	Success bool               `json:"success"`
	User    *models.PublicUser `json:"user"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, msgBadRequestBody)
		return
	}

	res, err := s.svc.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrMissingFields):
			errorJSON(w, http.StatusBadRequest, msgLoginMissing)
		case errors.Is(err, common.ErrInvalidCredentials):
			errorJSON(w, http.StatusUnauthorized, msgInvalidCreds)
		default:
			s.logger.Error(r.Context(), "login failed", "error", err)
			errorJSON(w, http.StatusInternalServerError, msgLoginServerErr)
		}
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Success: true, Message: msgLoginSuccess, Token: res.Token, User: res.User})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, msgBadRequestBody)
		return
	}

	res, err := s.svc.Auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrMissingFields):
			errorJSON(w, http.StatusBadRequest, msgRegisterMissing)
		case errors.Is(err, common.ErrEmailExists):
			errorJSON(w, http.StatusBadRequest, msgEmailExists)
		default:
			s.logger.Error(r.Context(), "register failed", "error", err)
			errorJSON(w, http.StatusInternalServerError, msgRegisterServerErr)
		}
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{Success: true, Message: msgRegisterSuccess, Token: res.Token, User: res.User})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	token, _ := bearerToken(r.Header.Get(common.AuthorizationHeaderName))

	user, err := s.svc.Auth.Verify(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrNoToken):
			errorJSON(w, http.StatusUnauthorized, msgNoToken)
		case errors.Is(err, common.ErrUserNotFound):
			errorJSON(w, http.StatusUnauthorized, msgUserNotFound)
		case errors.Is(err, common.ErrTokenExpired), errors.Is(err, common.ErrInvalidToken):
			errorJSON(w, http.StatusUnauthorized, msgInvalidToken)
		default:
			s.logger.Error(r.Context(), "verify failed", "error", err)
			errorJSON(w, http.StatusInternalServerError, msgVerifyServerErr)
		}
		return
	}

	writeJSON(w, http.StatusOK, userResponse{Success: true, User: user})
}
