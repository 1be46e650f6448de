package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/tasklist/api/internal/core/domain"
	"github.com/tasklist/api/internal/core/ports"
)

type taskService struct {
	repo ports.TaskRepository
}

func NewTaskService(repo ports.TaskRepository) ports.TaskService {
	return &taskService{
		repo: repo,
	}
}

func (s *taskService) List(ctx context.Context, ident ports.Identity) ([]*domain.Task, error) {
	tasks, err := s.repo.FindAll(ctx, ident.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func (s *taskService) Get(ctx context.Context, ident ports.Identity, taskID int64) (*domain.Task, error) {
	task, err := s.repo.FindByID(ctx, taskID, ident.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}
	return task, nil
}

func (s *taskService) Create(ctx context.Context, ident ports.Identity, input ports.CreateTaskInput) (*domain.Task, error) {
	if input.Description == "" {
		return nil, domain.ErrEmptyDescription
	}

	// An omitted position defaults to 0. Existing rows are not renumbered;
	// renumbering is reorder's job.
	position := 0
	if input.Position != nil {
		position = *input.Position
	}

	now := time.Now()
	task := &domain.Task{
		Description: input.Description,
		Position:    position,
		UserID:      ident.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

func (s *taskService) Update(ctx context.Context, ident ports.Identity, taskID int64, input ports.UpdateTaskInput) (*domain.Task, error) {
	task, err := s.repo.FindByID(ctx, taskID, ident.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}

	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.IsCompleted != nil {
		task.IsCompleted = *input.IsCompleted
	}
	if input.Position != nil {
		// A direct position edit does not compact the rest of the list; only
		// Reorder keeps the sequence dense.
		task.Position = *input.Position
	}
	task.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

func (s *taskService) Delete(ctx context.Context, ident ports.Identity, taskID int64) error {
	deleted, err := s.repo.Delete(ctx, taskID, ident.UserID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if !deleted {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (s *taskService) ToggleCompletion(ctx context.Context, ident ports.Identity, taskID int64) (*domain.Task, error) {
	task, err := s.repo.FindByID(ctx, taskID, ident.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}

	toggled := !task.IsCompleted
	return s.Update(ctx, ident, taskID, ports.UpdateTaskInput{IsCompleted: &toggled})
}

// Reorder moves a task to newPosition and shifts every task between the old
// and new position by one, so the positions that existed before the call are
// exactly the positions that exist after it.
func (s *taskService) Reorder(ctx context.Context, ident ports.Identity, taskID int64, newPosition int) ([]*domain.Task, error) {
	target, err := s.repo.FindByID(ctx, taskID, ident.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if target == nil {
		return nil, domain.ErrTaskNotFound
	}

	tasks, err := s.repo.FindAll(ctx, ident.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	oldPosition := target.Position
	now := time.Now()
	var changed []*domain.Task

	for _, t := range tasks {
		switch {
		case t.ID == target.ID:
			t.Position = newPosition
			t.UpdatedAt = now
			changed = append(changed, t)
		case oldPosition < newPosition && t.Position > oldPosition && t.Position <= newPosition:
			t.Position--
			t.UpdatedAt = now
			changed = append(changed, t)
		case oldPosition > newPosition && t.Position >= newPosition && t.Position < oldPosition:
			t.Position++
			t.UpdatedAt = now
			changed = append(changed, t)
		}
	}

	if err := s.repo.UpdatePositions(ctx, ident.UserID, changed); err != nil {
		return nil, fmt.Errorf("failed to persist positions: %w", err)
	}

	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].Position < tasks[j].Position
	})

	return tasks, nil
}
