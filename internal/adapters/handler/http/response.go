package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tasklist/api/internal/core/domain"
)

type envelope struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Message: message, Data: data})
}

// writeDomainError maps the core error taxonomy to HTTP statuses; anything
// unrecognized is reported as a generic internal error.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyDescription):
		writeJSON(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, domain.ErrTaskNotFound), errors.Is(err, domain.ErrUserNotFound):
		writeJSON(w, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, domain.ErrEmailTaken):
		writeJSON(w, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, err.Error(), nil)
	default:
		writeJSON(w, http.StatusInternalServerError, "internal server error", nil)
	}
}
