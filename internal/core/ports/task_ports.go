package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/tasklist/api/internal/core/domain"
)

type TaskRepository interface {
	FindAll(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)
	FindByID(ctx context.Context, id int64, userID uuid.UUID) (*domain.Task, error)
	Create(ctx context.Context, task *domain.Task) error
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id int64, userID uuid.UUID) (bool, error)
	// UpdatePositions persists the position of every given task in a single
	// transaction.
	UpdatePositions(ctx context.Context, userID uuid.UUID, tasks []*domain.Task) error
}

type CreateTaskInput struct {
	Description string
	Position    *int
}

type UpdateTaskInput struct {
	Description *string
	IsCompleted *bool
	Position    *int
}

func (i UpdateTaskInput) Empty() bool {
	return i.Description == nil && i.IsCompleted == nil && i.Position == nil
}

type TaskService interface {
	List(ctx context.Context, ident Identity) ([]*domain.Task, error)
	Get(ctx context.Context, ident Identity, taskID int64) (*domain.Task, error)
	Create(ctx context.Context, ident Identity, input CreateTaskInput) (*domain.Task, error)
	Update(ctx context.Context, ident Identity, taskID int64, input UpdateTaskInput) (*domain.Task, error)
	Delete(ctx context.Context, ident Identity, taskID int64) error
	Reorder(ctx context.Context, ident Identity, taskID int64, newPosition int) ([]*domain.Task, error)
	ToggleCompletion(ctx context.Context, ident Identity, taskID int64) (*domain.Task, error)
}
