package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/taskd/internal/core/domain"
	"github.com/custodia-labs/taskd/internal/core/ports/driven"
	"github.com/custodia-labs/taskd/internal/core/ports/driving"
	"github.com/custodia-labs/taskd/internal/logger"
)

// Ensure TaskService implements the interface.
var _ driving.TaskService = (*TaskService)(nil)

// TaskService validates task input and checks existence before handing
// work to the task store.
type TaskService struct {
	store driven.TaskStore
}

// NewTaskService creates a new task service.
func NewTaskService(store driven.TaskStore) *TaskService {
	return &TaskService{store: store}
}

// List returns tasks, optionally restricted to one completion state.
func (s *TaskService) List(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.store.List(ctx, filter)
}

// Get retrieves a task by ID.
func (s *TaskService) Get(ctx context.Context, id int64) (*domain.Task, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.store.Get(ctx, id)
}

// Create trims the input, rejects a blank title and stores the task.
func (s *TaskService) Create(ctx context.Context, task domain.NewTask) (*domain.Task, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}

	input, err := task.Normalize()
	if err != nil {
		return nil, err
	}

	created, err := s.store.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	logger.Debug("created task %d", created.ID)
	return created, nil
}

// Update applies the present fields of patch to an existing task.
// Input errors are reported before the store is consulted.
func (s *TaskService) Update(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}

	normalized, err := patch.Normalize()
	if err != nil {
		return nil, err
	}

	if _, err := s.store.Get(ctx, id); err != nil {
		return nil, err
	}

	updated, err := s.store.Update(ctx, id, normalized)
	if err != nil {
		return nil, fmt.Errorf("update task %d: %w", id, err)
	}
	logger.Debug("updated task %d", id)
	return updated, nil
}

// Delete removes an existing task. Deleting a missing task, including one
// deleted a moment ago, reports domain.ErrNotFound.
func (s *TaskService) Delete(ctx context.Context, id int64) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}

	if _, err := s.store.Get(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	logger.Debug("deleted task %d", id)
	return nil
}
