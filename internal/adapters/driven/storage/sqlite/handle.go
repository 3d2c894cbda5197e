package sqlite

import (
	"context"
	"sync"

	"github.com/custodia-labs/taskd/internal/core/domain"
	"github.com/custodia-labs/taskd/internal/core/ports/driven"
	"github.com/custodia-labs/taskd/internal/logger"
)

// Handle lazily opens a Store on first use and keeps it for the lifetime of
// the process. The zero value is not usable; create one with NewHandle.
//
// Acquire and Release are safe for concurrent use. A failed Acquire leaves
// the handle empty, so the next call tries again.
type Handle struct {
	dataDir string

	mu    sync.Mutex
	store *Store
}

// NewHandle returns a handle that opens its store in dataDir.
// An empty dataDir means DefaultDataDir.
func NewHandle(dataDir string) *Handle {
	return &Handle{dataDir: dataDir}
}

// Acquire returns the open store, opening it and applying the schema if
// this is the first call. Concurrent first calls share one store.
func (h *Handle) Acquire() (*Store, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.store != nil {
		return h.store, nil
	}

	store, err := NewStore(h.dataDir)
	if err != nil {
		return nil, err
	}
	logger.Debug("store ready at %s", store.Path())
	h.store = store
	return store, nil
}

// Release closes the held store. It is a no-op when nothing is held; a later
// Acquire opens a fresh store.
func (h *Handle) Release() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.store == nil {
		return nil
	}
	store := h.store
	h.store = nil
	return store.Close()
}

// Held reports whether a store is currently open.
func (h *Handle) Held() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.store != nil
}

// Ping acquires the store and checks the connection.
func (h *Handle) Ping(ctx context.Context) error {
	store, err := h.Acquire()
	if err != nil {
		return err
	}
	return store.Ping(ctx)
}

// TaskStore returns a TaskStore whose every operation acquires the store
// first. Nothing is opened until the first operation runs.
func (h *Handle) TaskStore() driven.TaskStore {
	return &lazyTaskStore{handle: h}
}

// lazyTaskStore implements driven.TaskStore over a Handle.
type lazyTaskStore struct {
	handle *Handle
}

var _ driven.TaskStore = (*lazyTaskStore)(nil)

func (s *lazyTaskStore) tasks() (driven.TaskStore, error) {
	store, err := s.handle.Acquire()
	if err != nil {
		return nil, err
	}
	return store.TaskStore(), nil
}

func (s *lazyTaskStore) List(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	tasks, err := s.tasks()
	if err != nil {
		return nil, err
	}
	return tasks.List(ctx, filter)
}

func (s *lazyTaskStore) Get(ctx context.Context, id int64) (*domain.Task, error) {
	tasks, err := s.tasks()
	if err != nil {
		return nil, err
	}
	return tasks.Get(ctx, id)
}

func (s *lazyTaskStore) Create(ctx context.Context, task domain.NewTask) (*domain.Task, error) {
	tasks, err := s.tasks()
	if err != nil {
		return nil, err
	}
	return tasks.Create(ctx, task)
}

func (s *lazyTaskStore) Update(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	tasks, err := s.tasks()
	if err != nil {
		return nil, err
	}
	return tasks.Update(ctx, id, patch)
}

func (s *lazyTaskStore) Delete(ctx context.Context, id int64) error {
	tasks, err := s.tasks()
	if err != nil {
		return err
	}
	return tasks.Delete(ctx, id)
}
