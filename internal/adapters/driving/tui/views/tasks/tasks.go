// Package tasks provides the task list view for the TUI.
package tasks

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/taskd/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/taskd/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/taskd/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/taskd/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/taskd/internal/core/domain"
	"github.com/custodia-labs/taskd/internal/core/ports/driving"
)

// View is the task list.
type View struct {
	ctx     context.Context
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	service driving.TaskService
	bar     *status.Bar

	tasks         []domain.Task
	selected      int
	filter        Filter
	confirmDelete int64
	loading       bool
	err           error
	width         int
	height        int
}

// NewView creates a new task list view.
func NewView(s *styles.Styles, km *keymap.KeyMap, service driving.TaskService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		ctx:     context.Background(),
		styles:  s,
		keymap:  km,
		service: service,
		bar:     status.NewBar(s, km),
		tasks:   []domain.Task{},
		width:   80,
		height:  24,
	}
}

// SetContext sets the context used for service calls.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// Init loads the task list.
func (v *View) Init() tea.Cmd {
	return v.Reload()
}

// Reload marks the view as loading and returns the load command.
func (v *View) Reload() tea.Cmd {
	v.loading = true
	v.bar.SetState(status.StateLoading)
	return v.loadTasks()
}

func (v *View) loadTasks() tea.Cmd {
	ctx, svc, filter := v.ctx, v.service, v.filter.TaskFilter()
	return func() tea.Msg {
		tasks, err := svc.List(ctx, filter)
		return messages.TasksLoaded{Tasks: tasks, Err: err}
	}
}

func (v *View) setCompleted(task domain.Task) tea.Cmd {
	ctx, svc := v.ctx, v.service
	completed := !task.Completed
	return func() tea.Msg {
		updated, err := svc.Update(ctx, task.ID, domain.TaskPatch{Completed: &completed})
		return messages.TaskUpdated{Task: updated, Err: err}
	}
}

func (v *View) deleteTask(id int64) tea.Cmd {
	ctx, svc := v.ctx, v.service
	return func() tea.Msg {
		return messages.TaskDeleted{ID: id, Err: svc.Delete(ctx, id)}
	}
}

// Update handles messages for the task list.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.TasksLoaded:
		v.loading = false
		if msg.Err != nil {
			v.setErr(msg.Err)
			return v, nil
		}
		v.err = nil
		v.tasks = msg.Tasks
		if v.selected >= len(v.tasks) {
			v.selected = max(0, len(v.tasks)-1)
		}
		v.bar.SetState(status.StateReady)
		v.bar.SetCounts(len(v.tasks), v.countDone())
		return v, nil

	case messages.TaskUpdated:
		return v, v.afterChange(msg.Err, "task updated")

	case messages.TaskDeleted:
		return v, v.afterChange(msg.Err, "task deleted")

	case messages.TaskCreated:
		return v, v.afterChange(msg.Err, "task created")

	case messages.ErrorOccurred:
		v.setErr(msg.Err)
		return v, nil
	}

	return v, nil
}

func (v *View) afterChange(err error, message string) tea.Cmd {
	if err != nil {
		v.setErr(err)
		return nil
	}
	cmd := v.Reload()
	v.bar.SetMessage(message)
	return cmd
}

func (v *View) setErr(err error) {
	v.err = err
	v.bar.SetState(status.StateError)
	v.bar.SetMessage(err.Error())
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	if v.confirmDelete != 0 {
		id := v.confirmDelete
		v.confirmDelete = 0
		if keyStr == "y" || keyStr == "Y" {
			return v, v.deleteTask(id)
		}
		v.bar.SetMessage("")
		return v, nil
	}

	v.bar.SetMessage("")
	switch {
	case keymap.Matches(keyStr, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
	case keymap.Matches(keyStr, v.keymap.Down):
		if v.selected < len(v.tasks)-1 {
			v.selected++
		}
	case keymap.Matches(keyStr, v.keymap.Toggle):
		if task, ok := v.Selected(); ok {
			return v, v.setCompleted(task)
		}
	case keymap.Matches(keyStr, v.keymap.Delete):
		if task, ok := v.Selected(); ok {
			v.confirmDelete = task.ID
		}
	case keymap.Matches(keyStr, v.keymap.Filter):
		v.filter = v.filter.Next()
		v.selected = 0
		return v, v.Reload()
	case keymap.Matches(keyStr, v.keymap.Reload):
		return v, v.Reload()
	case keymap.Matches(keyStr, v.keymap.Add):
		return v, changeView(messages.ViewAddTask)
	case keymap.Matches(keyStr, v.keymap.Help):
		return v, changeView(messages.ViewHelp)
	case keymap.Matches(keyStr, v.keymap.Quit):
		return v, func() tea.Msg { return messages.Quit{} }
	}
	return v, nil
}

func changeView(view messages.ViewType) tea.Cmd {
	return func() tea.Msg { return messages.ViewChanged{View: view} }
}

// View renders the task list.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Heading.Render("Tasks"))
	b.WriteString("  ")
	b.WriteString(v.styles.Filter.Render(v.filter.String()))
	b.WriteString("\n\n")

	switch {
	case v.loading && len(v.tasks) == 0:
		b.WriteString(v.styles.Hint.Render("Loading tasks..."))
		b.WriteString("\n")
	case v.err != nil && len(v.tasks) == 0:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err)))
		b.WriteString("\n")
	case len(v.tasks) == 0:
		b.WriteString(v.styles.Hint.Render("Nothing here. Press [a] to add a task."))
		b.WriteString("\n")
	default:
		start, end := v.visibleRange()
		for i := start; i < end; i++ {
			b.WriteString(v.renderTask(i, &v.tasks[i]))
			b.WriteString("\n")
		}
	}

	if v.confirmDelete != 0 {
		b.WriteString("\n")
		b.WriteString(v.styles.Confirm.Render(fmt.Sprintf("Delete task #%d? [y/N]", v.confirmDelete)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.bar.View())
	return b.String()
}

// visibleRange keeps the selection on screen.
func (v *View) visibleRange() (start, end int) {
	visible := v.height - 6
	if visible < 1 {
		visible = 1
	}
	if v.selected >= visible {
		start = v.selected - visible + 1
	}
	end = min(start+visible, len(v.tasks))
	return start, end
}

func (v *View) renderTask(index int, task *domain.Task) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}
	check := "[ ]"
	if task.Completed {
		check = "[x]"
	}

	title := task.Title
	maxTitleLen := v.width - 16
	if maxTitleLen < 10 {
		maxTitleLen = 10
	}
	if len([]rune(title)) > maxTitleLen {
		title = string([]rune(title)[:maxTitleLen-3]) + "..."
	}

	prefix := fmt.Sprintf("%s%s #%-4d ", indicator, check, task.ID)
	if index == v.selected {
		return v.styles.Selected.Render(prefix + title)
	}
	return v.styles.Hint.Render(prefix) + v.styles.Task(task.Completed).Render(title)
}

func (v *View) countDone() int {
	n := 0
	for i := range v.tasks {
		if v.tasks[i].Completed {
			n++
		}
	}
	return n
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.bar.SetWidth(width)
}

// Tasks returns the currently listed tasks.
func (v *View) Tasks() []domain.Task {
	return v.tasks
}

// Selected returns the task under the cursor.
func (v *View) Selected() (domain.Task, bool) {
	if v.selected < 0 || v.selected >= len(v.tasks) {
		return domain.Task{}, false
	}
	return v.tasks[v.selected], true
}

// SelectedIndex returns the cursor position.
func (v *View) SelectedIndex() int {
	return v.selected
}

// Filter returns the active filter.
func (v *View) Filter() Filter {
	return v.filter
}

// Loading reports whether a load is in flight.
func (v *View) Loading() bool {
	return v.loading
}

// PendingDelete returns the id awaiting confirmation, or zero.
func (v *View) PendingDelete() int64 {
	return v.confirmDelete
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// Bar returns the status bar.
func (v *View) Bar() *status.Bar {
	return v.bar
}
