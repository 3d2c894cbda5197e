package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/taskd/internal/core/domain"
)

var testTime = time.Date(2024, 3, 5, 14, 7, 9, 120_000_000, time.UTC)

func sampleTask(id int64, title string, completed bool) domain.Task {
	return domain.Task{
		ID:        id,
		Title:     title,
		Completed: completed,
		CreatedAt: testTime,
		UpdatedAt: testTime,
	}
}

func newTestServer(t *testing.T, svc *mockTaskService) *Server {
	t.Helper()
	server, err := NewServer(&Ports{Tasks: svc})
	require.NoError(t, err)
	return server
}

func TestServer_handleListTasks(t *testing.T) {
	ctx := context.Background()

	t.Run("returns tasks", func(t *testing.T) {
		svc := &mockTaskService{tasks: []domain.Task{
			sampleTask(2, "second", false),
			sampleTask(1, "first", true),
		}}
		server := newTestServer(t, svc)

		_, output, err := server.handleListTasks(ctx, nil, ListTasksInput{})

		require.NoError(t, err)
		assert.Equal(t, 2, output.Count)
		require.Len(t, output.Tasks, 2)
		assert.Equal(t, int64(2), output.Tasks[0].ID)
		assert.Equal(t, "second", output.Tasks[0].Title)
		assert.Equal(t, "2024-03-05 14:07:09.120", output.Tasks[0].CreatedAt)
		assert.True(t, output.Tasks[1].Completed)
		assert.Nil(t, svc.lastFilter.Completed)
	})

	t.Run("passes completed filter", func(t *testing.T) {
		svc := &mockTaskService{}
		server := newTestServer(t, svc)

		_, output, err := server.handleListTasks(ctx, nil, ListTasksInput{Completed: domain.Ptr(false)})

		require.NoError(t, err)
		assert.Equal(t, 0, output.Count)
		assert.NotNil(t, output.Tasks)
		require.NotNil(t, svc.lastFilter.Completed)
		assert.False(t, *svc.lastFilter.Completed)
	})

	t.Run("returns error on failure", func(t *testing.T) {
		server := newTestServer(t, &mockTaskService{err: errors.New("database error")})

		_, _, err := server.handleListTasks(ctx, nil, ListTasksInput{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "database error")
	})
}

func TestServer_handleGetTask(t *testing.T) {
	ctx := context.Background()
	task := sampleTask(7, "seven", false)
	task.Description = "lucky"
	svc := &mockTaskService{task: &task}
	server := newTestServer(t, svc)

	_, output, err := server.handleGetTask(ctx, nil, TaskIDInput{ID: 7})

	require.NoError(t, err)
	assert.Equal(t, int64(7), svc.lastID)
	assert.Equal(t, "seven", output.Title)
	assert.Equal(t, "lucky", output.Description)

	svc.err = domain.ErrNotFound
	_, _, err = server.handleGetTask(ctx, nil, TaskIDInput{ID: 8})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestServer_handleCreateTask(t *testing.T) {
	ctx := context.Background()
	task := sampleTask(1, "new", false)
	svc := &mockTaskService{task: &task}
	server := newTestServer(t, svc)

	_, output, err := server.handleCreateTask(ctx, nil, CreateTaskInput{Title: "new", Description: "d"})

	require.NoError(t, err)
	assert.Equal(t, domain.NewTask{Title: "new", Description: "d"}, svc.lastNew)
	assert.Equal(t, int64(1), output.ID)
}

func TestServer_handleUpdateTask(t *testing.T) {
	ctx := context.Background()
	task := sampleTask(3, "renamed", true)
	svc := &mockTaskService{task: &task}
	server := newTestServer(t, svc)

	_, output, err := server.handleUpdateTask(ctx, nil, UpdateTaskInput{
		ID:        3,
		Completed: domain.Ptr(true),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(3), svc.lastID)
	assert.Nil(t, svc.lastPatch.Title)
	assert.Nil(t, svc.lastPatch.Description)
	require.NotNil(t, svc.lastPatch.Completed)
	assert.True(t, *svc.lastPatch.Completed)
	assert.True(t, output.Completed)

	svc.err = domain.ErrEmptyPatch
	_, _, err = server.handleUpdateTask(ctx, nil, UpdateTaskInput{ID: 3})
	assert.ErrorIs(t, err, domain.ErrEmptyPatch)
}

func TestServer_handleDeleteTask(t *testing.T) {
	ctx := context.Background()
	svc := &mockTaskService{}
	server := newTestServer(t, svc)

	_, output, err := server.handleDeleteTask(ctx, nil, TaskIDInput{ID: 9})

	require.NoError(t, err)
	assert.Equal(t, DeleteTaskOutput{ID: 9, Deleted: true}, output)

	svc.err = domain.ErrNotFound
	_, output, err = server.handleDeleteTask(ctx, nil, TaskIDInput{ID: 9})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.False(t, output.Deleted)
}
