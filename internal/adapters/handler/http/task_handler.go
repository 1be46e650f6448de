package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/tasklist/api/internal/core/domain"
	"github.com/tasklist/api/internal/core/ports"
)

type TaskHandler struct {
	service ports.TaskService
	logger  *slog.Logger
}

func NewTaskHandler(service ports.TaskService, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{
		service: service,
		logger:  logger,
	}
}

type createTaskRequest struct {
	Description string `json:"description"`
	Position    *int   `json:"position,omitempty"`
}

type updateTaskRequest struct {
	Description *string `json:"description,omitempty"`
	IsCompleted *bool   `json:"is_completed,omitempty"`
	Position    *int    `json:"position,omitempty"`
}

type reorderTaskRequest struct {
	NewPosition *int `json:"new_position"`
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	ident, ok := identityFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, "missing user context", nil)
		return
	}

	tasks, err := h.service.List(r.Context(), ident)
	if err != nil {
		h.logger.Error("failed to list tasks", "error", err, "user_id", ident.UserID)
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, "tasks retrieved successfully", tasks)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	ident, ok := identityFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, "missing user context", nil)
		return
	}

	taskID, err := taskIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, "invalid task id", nil)
		return
	}

	task, err := h.service.Get(r.Context(), ident, taskID)
	if err != nil {
		if !errors.Is(err, domain.ErrTaskNotFound) {
			h.logger.Error("failed to get task", "error", err, "task_id", taskID)
		}
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, "task retrieved successfully", task)
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	ident, ok := identityFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, "missing user context", nil)
		return
	}

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if req.Position != nil && *req.Position < 0 {
		writeJSON(w, http.StatusBadRequest, "position must not be negative", nil)
		return
	}

	task, err := h.service.Create(r.Context(), ident, ports.CreateTaskInput{
		Description: req.Description,
		Position:    req.Position,
	})
	if err != nil {
		if !errors.Is(err, domain.ErrEmptyDescription) {
			h.logger.Error("failed to create task", "error", err, "user_id", ident.UserID)
		}
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, "task created successfully", task)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	ident, ok := identityFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, "missing user context", nil)
		return
	}

	taskID, err := taskIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, "invalid task id", nil)
		return
	}

	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	input := ports.UpdateTaskInput{
		Description: req.Description,
		IsCompleted: req.IsCompleted,
		Position:    req.Position,
	}
	// At least one field is required; this is the caller's check, not the
	// engine's.
	if input.Empty() {
		writeJSON(w, http.StatusBadRequest, "no update data provided", nil)
		return
	}
	if req.Position != nil && *req.Position < 0 {
		writeJSON(w, http.StatusBadRequest, "position must not be negative", nil)
		return
	}

	task, err := h.service.Update(r.Context(), ident, taskID, input)
	if err != nil {
		if !errors.Is(err, domain.ErrTaskNotFound) {
			h.logger.Error("failed to update task", "error", err, "task_id", taskID)
		}
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, "task updated successfully", task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ident, ok := identityFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, "missing user context", nil)
		return
	}

	taskID, err := taskIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, "invalid task id", nil)
		return
	}

	if err := h.service.Delete(r.Context(), ident, taskID); err != nil {
		if !errors.Is(err, domain.ErrTaskNotFound) {
			h.logger.Error("failed to delete task", "error", err, "task_id", taskID)
		}
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, "task deleted successfully", nil)
}

func (h *TaskHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	ident, ok := identityFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, "missing user context", nil)
		return
	}

	taskID, err := taskIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, "invalid task id", nil)
		return
	}

	var req reorderTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if req.NewPosition == nil || *req.NewPosition < 0 {
		writeJSON(w, http.StatusBadRequest, "valid new_position is required", nil)
		return
	}

	tasks, err := h.service.Reorder(r.Context(), ident, taskID, *req.NewPosition)
	if err != nil {
		if !errors.Is(err, domain.ErrTaskNotFound) {
			h.logger.Error("failed to reorder task", "error", err, "task_id", taskID)
		}
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, "task reordered successfully", tasks)
}

func (h *TaskHandler) ToggleCompletion(w http.ResponseWriter, r *http.Request) {
	ident, ok := identityFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, "missing user context", nil)
		return
	}

	taskID, err := taskIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, "invalid task id", nil)
		return
	}

	task, err := h.service.ToggleCompletion(r.Context(), ident, taskID)
	if err != nil {
		if !errors.Is(err, domain.ErrTaskNotFound) {
			h.logger.Error("failed to toggle task", "error", err, "task_id", taskID)
		}
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, "task updated successfully", task)
}

func taskIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
