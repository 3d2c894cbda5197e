// Package addtask provides the new task form for the TUI.
package addtask

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/taskd/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/taskd/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/taskd/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/taskd/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/taskd/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/taskd/internal/core/domain"
	"github.com/custodia-labs/taskd/internal/core/ports/driving"
)

const (
	fieldTitle = iota
	fieldDescription
	fieldCount
)

// View is the form for creating a task.
type View struct {
	ctx     context.Context
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	service driving.TaskService
	bar     *status.Bar

	fields     [fieldCount]*input.Field
	focus      int
	submitting bool
	err        error
}

// NewView creates a new add task view.
func NewView(s *styles.Styles, km *keymap.KeyMap, service driving.TaskService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	bar := status.NewBar(s, km)
	bar.SetState(status.StateForm)

	v := &View{
		ctx:     context.Background(),
		styles:  s,
		keymap:  km,
		service: service,
		bar:     bar,
	}
	v.fields[fieldTitle] = input.NewField(s, "Title", "What needs doing?", 200)
	v.fields[fieldDescription] = input.NewField(s, "Description", "optional", 1000)
	v.fields[fieldTitle].Focus()
	return v
}

// SetContext sets the context used for service calls.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// Init starts the cursor blinking.
func (v *View) Init() tea.Cmd {
	return v.fields[v.focus].Init()
}

// Reset clears the form and focuses the title.
func (v *View) Reset() {
	for _, f := range v.fields {
		f.Reset()
		f.Blur()
	}
	v.focus = fieldTitle
	v.fields[fieldTitle].Focus()
	v.submitting = false
	v.err = nil
	v.bar.SetState(status.StateForm)
	v.bar.SetMessage("")
}

// Update handles messages for the form.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.TaskCreated:
		v.submitting = false
		if msg.Err != nil {
			v.err = msg.Err
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.fields[v.focus], cmd = v.fields[v.focus].Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, v.keymap.Back):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewTasks} }
	case keymap.Matches(keyStr, v.keymap.NextField):
		step := 1
		if keyStr == "shift+tab" {
			step = fieldCount - 1
		}
		return v, v.moveFocus((v.focus + step) % fieldCount)
	case keymap.Matches(keyStr, v.keymap.Submit):
		return v, v.submit()
	}

	var cmd tea.Cmd
	v.fields[v.focus], cmd = v.fields[v.focus].Update(msg)
	return v, cmd
}

func (v *View) moveFocus(to int) tea.Cmd {
	v.fields[v.focus].Blur()
	v.focus = to
	return v.fields[v.focus].Focus()
}

func (v *View) submit() tea.Cmd {
	if v.submitting {
		return nil
	}
	if strings.TrimSpace(v.fields[fieldTitle].Value()) == "" {
		v.err = domain.ErrEmptyTitle
		return v.moveFocus(fieldTitle)
	}

	v.submitting = true
	v.err = nil
	ctx, svc := v.ctx, v.service
	in := domain.NewTask{
		Title:       v.fields[fieldTitle].Value(),
		Description: v.fields[fieldDescription].Value(),
	}
	return func() tea.Msg {
		task, err := svc.Create(ctx, in)
		return messages.TaskCreated{Task: task, Err: err}
	}
}

// View renders the form.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Heading.Render("New task"))
	b.WriteString("\n\n")
	for _, f := range v.fields {
		b.WriteString(f.View())
		b.WriteString("\n")
	}

	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err)))
		b.WriteString("\n")
	}
	if v.submitting {
		b.WriteString("\n")
		b.WriteString(v.styles.Hint.Render("Saving..."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.bar.View())
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, _ int) {
	for _, f := range v.fields {
		f.SetWidth(width)
	}
	v.bar.SetWidth(width)
}

// Title returns the title field value.
func (v *View) Title() string {
	return v.fields[fieldTitle].Value()
}

// Description returns the description field value.
func (v *View) Description() string {
	return v.fields[fieldDescription].Value()
}

// FocusedField returns the label of the focused field.
func (v *View) FocusedField() string {
	return v.fields[v.focus].Label()
}

// Submitting reports whether a create is in flight.
func (v *View) Submitting() bool {
	return v.submitting
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
