package driving

import (
	"context"

	"github.com/custodia-labs/taskd/internal/core/domain"
)

// TaskService manages tasks.
//
// Validation failures are reported as domain.ErrInvalidInput before the store
// is touched; missing tasks as domain.ErrNotFound; everything else is a
// storage failure (domain.ErrStorage).
type TaskService interface {
	// List returns tasks, optionally restricted to one completion state.
	List(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error)

	// Get retrieves a task by ID.
	Get(ctx context.Context, id int64) (*domain.Task, error)

	// Create validates and stores a new task.
	Create(ctx context.Context, task domain.NewTask) (*domain.Task, error)

	// Update applies a sparse patch to an existing task.
	Update(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error)

	// Delete removes a task.
	Delete(ctx context.Context, id int64) error
}
