package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/tasklist/api/internal/core/domain"
	"github.com/tasklist/api/internal/core/ports"
)

type UserHandler struct {
	service ports.UserService
	logger  *slog.Logger
}

func NewUserHandler(service ports.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger,
	}
}

type profileResponse struct {
	Email     string    `json:"email"`
	FullName  *string   `json:"full_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type updateProfileRequest struct {
	FullName string `json:"full_name"`
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ident, ok := identityFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, "missing user context", nil)
		return
	}

	user, err := h.service.GetProfile(r.Context(), ident)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			h.logger.Error("failed to get profile", "error", err, "user_id", ident.UserID)
		}
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, "profile retrieved successfully", profileResponse{
		Email:     user.Email,
		FullName:  user.FullName,
		CreatedAt: user.CreatedAt,
	})
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ident, ok := identityFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, "missing user context", nil)
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if req.FullName == "" {
		writeJSON(w, http.StatusBadRequest, "full_name is required", nil)
		return
	}

	if err := h.service.UpdateProfile(r.Context(), ident, req.FullName); err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			h.logger.Error("failed to update profile", "error", err, "user_id", ident.UserID)
		}
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, "profile updated successfully", nil)
}
