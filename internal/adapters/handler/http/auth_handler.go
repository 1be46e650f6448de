package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/tasklist/api/internal/core/domain"
	"github.com/tasklist/api/internal/core/ports"
)

type AuthHandler struct {
	service ports.AuthService
	logger  *slog.Logger
}

func NewAuthHandler(service ports.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger,
	}
}

type registerRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName *string `json:"full_name,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, "email and password are required", nil)
		return
	}

	err := h.service.Register(r.Context(), ports.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		if !errors.Is(err, domain.ErrEmailTaken) {
			h.logger.Error("register failed", "error", err)
		}
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, "user registered successfully", nil)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, "email and password are required", nil)
		return
	}

	pair, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			h.logger.Error("login failed", "error", err)
		}
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, "login successful", pair)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ident, ok := identityFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, "missing user context", nil)
		return
	}

	if err := h.service.Logout(r.Context(), ident.UserID); err != nil {
		h.logger.Error("logout failed", "error", err, "user_id", ident.UserID)
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, "logged out successfully", nil)
}
