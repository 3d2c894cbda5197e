package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/taskd/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/taskd/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/taskd/internal/core/domain"
	"github.com/custodia-labs/taskd/internal/core/services"
)

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func newTestApp(t *testing.T) (*App, *services.TaskService) {
	t.Helper()
	svc := services.NewTaskService(memory.NewTaskStore())
	app, err := NewApp(NewPorts(svc))
	require.NoError(t, err)
	app.SetDimensions(100, 30)
	return app, svc
}

// send feeds msg to the app and then follows the app's own messages its
// commands produce. Cursor blinks and other library messages end the chain.
func send(t *testing.T, app *App, msg tea.Msg) {
	t.Helper()
	for i := 0; i < 10; i++ {
		_, cmd := app.Update(msg)
		if cmd == nil {
			return
		}
		msg = cmd()
		switch msg.(type) {
		case messages.ViewChanged, messages.TasksLoaded, messages.TaskCreated,
			messages.TaskUpdated, messages.TaskDeleted, messages.ErrorOccurred:
		default:
			return
		}
	}
}

func TestNewApp_Success(t *testing.T) {
	app, _ := newTestApp(t)

	assert.Equal(t, messages.ViewTasks, app.CurrentView())
	assert.True(t, app.Ready())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{})

	assert.ErrorIs(t, err, ErrMissingTaskService)
	assert.Nil(t, app)
}

func TestApp_WithContext(t *testing.T) {
	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	var seen context.Context
	svc := &MockTaskService{ListFunc: func(ctx context.Context, _ domain.TaskFilter) ([]domain.Task, error) {
		seen = ctx
		return nil, nil
	}}
	app, err := NewApp(NewPorts(svc))
	require.NoError(t, err)

	result := app.WithContext(ctx)
	assert.Same(t, app, result)

	send(t, app, keyRune('r'))
	require.NotNil(t, seen)
	assert.Equal(t, "value", seen.Value(contextKey("key")))
}

func TestApp_Init(t *testing.T) {
	app, _ := newTestApp(t)

	assert.NotNil(t, app.Init())
}

func TestApp_ViewBeforeReady(t *testing.T) {
	app, err := NewApp(NewPorts(&MockTaskService{}))
	require.NoError(t, err)

	assert.Equal(t, "Initialising...", app.View())

	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.True(t, app.Ready())
	assert.Contains(t, app.View(), "Tasks")
}

func TestApp_CtrlCQuits(t *testing.T) {
	app, _ := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_QuitMessage(t *testing.T) {
	app, _ := newTestApp(t)

	_, cmd := app.Update(keyRune('q'))
	require.NotNil(t, cmd)
	msg := cmd()
	assert.Equal(t, messages.Quit{}, msg)

	_, cmd = app.Update(msg)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_AddTaskFlow(t *testing.T) {
	app, svc := newTestApp(t)

	send(t, app, keyRune('a'))
	require.Equal(t, messages.ViewAddTask, app.CurrentView())
	assert.Contains(t, app.View(), "New task")

	for _, r := range "Write report" {
		app.Update(keyRune(r))
	}
	send(t, app, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, messages.ViewTasks, app.CurrentView())
	require.Len(t, app.TasksView().Tasks(), 1)
	assert.Equal(t, "Write report", app.TasksView().Tasks()[0].Title)
	assert.Contains(t, app.View(), "Write report")

	list, err := svc.List(context.Background(), domain.TaskFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestApp_AddTaskCancel(t *testing.T) {
	app, _ := newTestApp(t)
	send(t, app, keyRune('a'))

	send(t, app, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, messages.ViewTasks, app.CurrentView())
}

func TestApp_AddTaskFailureStaysOnForm(t *testing.T) {
	app, err := NewApp(NewPorts(&MockTaskService{err: domain.ErrStorage}))
	require.NoError(t, err)
	app.SetDimensions(100, 30)

	send(t, app, keyRune('a'))
	app.Update(keyRune('x'))
	send(t, app, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, messages.ViewAddTask, app.CurrentView())
	assert.ErrorIs(t, app.Err(), domain.ErrStorage)
	assert.ErrorIs(t, app.AddView().Err(), domain.ErrStorage)
}

func TestApp_ToggleFlow(t *testing.T) {
	app, svc := newTestApp(t)
	_, err := svc.Create(context.Background(), domain.NewTask{Title: "a"})
	require.NoError(t, err)
	send(t, app, keyRune('r'))

	send(t, app, keyRune('x'))

	got, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, got.Completed)
	require.Len(t, app.TasksView().Tasks(), 1)
	assert.True(t, app.TasksView().Tasks()[0].Completed)
}

func TestApp_HelpView(t *testing.T) {
	app, _ := newTestApp(t)

	send(t, app, keyRune('?'))
	require.Equal(t, messages.ViewHelp, app.CurrentView())
	view := app.View()
	assert.Contains(t, view, "Help")
	assert.Contains(t, view, "toggle")
	assert.Contains(t, view, "filter")

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewTasks, app.CurrentView())
}

func TestApp_ErrorOccurred(t *testing.T) {
	app, _ := newTestApp(t)

	app.Update(messages.ErrorOccurred{Err: errors.New("boom")})

	assert.EqualError(t, app.Err(), "boom")
	assert.EqualError(t, app.TasksView().Err(), "boom")
}

func TestApp_LoadErrorThenRecovery(t *testing.T) {
	app, _ := newTestApp(t)

	app.Update(messages.TasksLoaded{Err: domain.ErrStorage})
	assert.ErrorIs(t, app.Err(), domain.ErrStorage)

	app.Update(messages.TasksLoaded{Tasks: []domain.Task{}})
	assert.NoError(t, app.Err())
}
