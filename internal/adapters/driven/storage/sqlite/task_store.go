package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/taskd/internal/core/domain"
	"github.com/custodia-labs/taskd/internal/core/ports/driven"
)

const taskColumns = "id, title, description, completed, created_at, updated_at"

// nowExpr is the store clock in the persisted timestamp layout.
const nowExpr = "strftime('%Y-%m-%d %H:%M:%f', 'now')"

// touchUpdatedAt moves updated_at to the store clock, or one millisecond
// past its previous value when the clock has not advanced.
const touchUpdatedAt = "updated_at = CASE WHEN " + nowExpr + " > updated_at THEN " + nowExpr +
	" ELSE strftime('%Y-%m-%d %H:%M:%f', updated_at, '+0.001 seconds') END"

// taskStore implements driven.TaskStore.
type taskStore struct {
	store *Store
}

var _ driven.TaskStore = (*taskStore)(nil)

// List returns tasks newest first, optionally filtered by completion state.
func (s *taskStore) List(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	query := "SELECT " + taskColumns + " FROM tasks"
	var args []any
	if filter.Completed != nil {
		query += " WHERE completed = ?"
		args = append(args, boolToInt(*filter.Completed))
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w: %w", domain.ErrStorage, err)
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w: %w", domain.ErrStorage, err)
	}
	return tasks, nil
}

// Get retrieves a task by ID.
func (s *taskStore) Get(ctx context.Context, id int64) (*domain.Task, error) {
	row := s.store.db.QueryRowContext(ctx, "SELECT "+taskColumns+" FROM tasks WHERE id = ?", id)
	return scanTask(row)
}

// Create inserts a task. Completion and both timestamps come from the column
// defaults of a single statement, so created_at equals updated_at.
func (s *taskStore) Create(ctx context.Context, task domain.NewTask) (*domain.Task, error) {
	result, err := s.store.db.ExecContext(ctx,
		"INSERT INTO tasks (title, description) VALUES (?, ?)",
		task.Title, nullString(task.Description))
	if err != nil {
		return nil, fmt.Errorf("inserting task: %w: %w", domain.ErrStorage, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading task id: %w: %w", domain.ErrStorage, err)
	}
	return s.Get(ctx, id)
}

// Update writes the present fields of the patch and refreshes updated_at in
// one statement. An empty patch still refreshes updated_at.
func (s *taskStore) Update(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	var sets []string
	var args []any

	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, nullString(*patch.Description))
	}
	if patch.Completed != nil {
		sets = append(sets, "completed = ?")
		args = append(args, boolToInt(*patch.Completed))
	}
	sets = append(sets, touchUpdatedAt)
	args = append(args, id)

	query := "UPDATE tasks SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	result, err := s.store.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("updating task %d: %w: %w", id, domain.ErrStorage, err)
	}
	if err := requireAffected(result, "updating task", id); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes a task.
func (s *taskStore) Delete(ctx context.Context, id int64) error {
	result, err := s.store.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting task %d: %w: %w", id, domain.ErrStorage, err)
	}
	return requireAffected(result, "deleting task", id)
}

// requireAffected maps zero affected rows to domain.ErrNotFound.
func requireAffected(result sql.Result, op string, id int64) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s %d: %w: %w", op, id, domain.ErrStorage, err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var description sql.NullString
	var completed int
	var createdAt, updatedAt string

	if err := row.Scan(&task.ID, &task.Title, &description, &completed, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning task: %w: %w", domain.ErrStorage, err)
	}

	task.Description = description.String
	task.Completed = completed != 0

	var err error
	if task.CreatedAt, err = domain.ParseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at of task %d: %w: %w", task.ID, domain.ErrStorage, err)
	}
	if task.UpdatedAt, err = domain.ParseTimestamp(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at of task %d: %w: %w", task.ID, domain.ErrStorage, err)
	}
	return &task, nil
}
