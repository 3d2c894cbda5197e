package mcp

import (
	"context"

	"github.com/custodia-labs/taskd/internal/core/domain"
)

// mockTaskService is a mock implementation of driving.TaskService.
type mockTaskService struct {
	tasks []domain.Task
	task  *domain.Task
	err   error

	lastFilter domain.TaskFilter
	lastNew    domain.NewTask
	lastID     int64
	lastPatch  domain.TaskPatch
}

func (m *mockTaskService) List(_ context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	m.lastFilter = filter
	return m.tasks, m.err
}

func (m *mockTaskService) Get(_ context.Context, id int64) (*domain.Task, error) {
	m.lastID = id
	return m.task, m.err
}

func (m *mockTaskService) Create(_ context.Context, in domain.NewTask) (*domain.Task, error) {
	m.lastNew = in
	return m.task, m.err
}

func (m *mockTaskService) Update(_ context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	m.lastID = id
	m.lastPatch = patch
	return m.task, m.err
}

func (m *mockTaskService) Delete(_ context.Context, id int64) error {
	m.lastID = id
	return m.err
}
