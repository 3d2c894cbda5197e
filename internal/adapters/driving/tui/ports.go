// Package tui provides an interactive terminal user interface for taskd.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/taskd/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
type Ports struct {
	// Tasks manages the task list.
	Tasks driving.TaskService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(tasks driving.TaskService) *Ports {
	return &Ports{Tasks: tasks}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Tasks == nil {
		return ErrMissingTaskService
	}
	return nil
}
