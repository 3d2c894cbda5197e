package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/taskd/internal/core/domain"
	"github.com/custodia-labs/taskd/internal/core/ports/driven"
)

// Ensure TaskStore implements the interface.
var _ driven.TaskStore = (*TaskStore)(nil)

// TaskStore is an in-memory implementation of driven.TaskStore.
// It follows the SQLite store's ordering and timestamp rules.
type TaskStore struct {
	mu     sync.RWMutex
	tasks  map[int64]domain.Task
	nextID int64
	now    func() time.Time
}

// NewTaskStore creates a new in-memory task store.
func NewTaskStore() *TaskStore {
	return &TaskStore{
		tasks:  make(map[int64]domain.Task),
		nextID: 1,
		now:    time.Now,
	}
}

// WithClock replaces the clock used for timestamps. Intended for tests.
func (s *TaskStore) WithClock(now func() time.Time) *TaskStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
	return s
}

// stamp returns the clock in the persisted (millisecond, UTC) resolution.
func (s *TaskStore) stamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// List returns tasks newest first, optionally filtered by completion state.
func (s *TaskStore) List(_ context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		if filter.Completed != nil && task.Completed != *filter.Completed {
			continue
		}
		result = append(result, task)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

// Get retrieves a task by ID.
func (s *TaskStore) Get(_ context.Context, id int64) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	task, ok := s.tasks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &task, nil
}

// Create stores a new task with the next ID.
func (s *TaskStore) Create(_ context.Context, input domain.NewTask) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.stamp()
	task := domain.Task{
		ID:          s.nextID,
		Title:       input.Title,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.nextID++
	s.tasks[task.ID] = task
	return &task, nil
}

// Update applies the present fields and refreshes UpdatedAt.
func (s *TaskStore) Update(_ context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Completed != nil {
		task.Completed = *patch.Completed
	}

	now := s.stamp()
	if !now.After(task.UpdatedAt) {
		now = task.UpdatedAt.Add(time.Millisecond)
	}
	task.UpdatedAt = now

	s.tasks[id] = task
	return &task, nil
}

// Delete removes a task.
func (s *TaskStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}
