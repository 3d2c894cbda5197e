// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/taskd/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewTasks is the task list.
	ViewTasks ViewType = iota
	// ViewAddTask is the new task form.
	ViewAddTask
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewTasks:
		return "tasks"
	case ViewAddTask:
		return "add_task"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// TasksLoaded carries a task listing from the service.
type TasksLoaded struct {
	Tasks []domain.Task
	Err   error
}

// TaskCreated signals a task was created.
type TaskCreated struct {
	Task *domain.Task
	Err  error
}

// TaskUpdated signals a task was changed.
type TaskUpdated struct {
	Task *domain.Task
	Err  error
}

// TaskDeleted signals a task was deleted.
type TaskDeleted struct {
	ID  int64
	Err error
}
