package driven

import (
	"context"

	"github.com/custodia-labs/taskd/internal/core/domain"
)

// TaskStore persists tasks.
//
// Implementations own id assignment and both timestamps. Input is expected to
// be normalised already; the store does not trim or validate titles.
type TaskStore interface {
	// List returns tasks matching the filter, newest first.
	// An empty result is an empty, non-nil slice.
	List(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error)

	// Get retrieves a task by ID.
	// Returns domain.ErrNotFound if no task has that ID.
	Get(ctx context.Context, id int64) (*domain.Task, error)

	// Create inserts a task and returns it as stored.
	Create(ctx context.Context, task domain.NewTask) (*domain.Task, error)

	// Update applies the present fields of the patch in a single statement,
	// refreshes updated_at and returns the row as stored.
	// Returns domain.ErrNotFound if no row was affected.
	Update(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error)

	// Delete removes a task.
	// Returns domain.ErrNotFound if no row was affected.
	Delete(ctx context.Context, id int64) error
}
