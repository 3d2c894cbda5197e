package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/taskd/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/taskd/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/taskd/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/taskd/internal/adapters/driving/tui/views/addtask"
	"github.com/custodia-labs/taskd/internal/adapters/driving/tui/views/tasks"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	tasksView *tasks.View
	addView   *addtask.View

	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		tasksView:   tasks.NewView(s, km, ports.Tasks),
		addView:     addtask.NewView(s, km, ports.Tasks),
		currentView: messages.ViewTasks,
	}, nil
}

// WithContext sets the context for the app and its service calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.tasksView.SetContext(ctx)
	a.addView.SetContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("taskd"),
		a.tasksView.Init(),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.currentView {
		case messages.ViewTasks:
			a.tasksView, cmd = a.tasksView.Update(msg)
		case messages.ViewAddTask:
			a.addView, cmd = a.addView.Update(msg)
		case messages.ViewHelp:
			keyStr := msg.String()
			if keymap.Matches(keyStr, a.keymap.Back) || keymap.Matches(keyStr, a.keymap.Help) ||
				keymap.Matches(keyStr, a.keymap.Quit) {
				a.currentView = messages.ViewTasks
			}
		}
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		if msg.View == messages.ViewAddTask {
			a.addView.Reset()
			return a, a.addView.Init()
		}
		return a, nil

	case messages.TaskCreated:
		if msg.Err != nil {
			a.err = msg.Err
			a.addView, cmd = a.addView.Update(msg)
			return a, cmd
		}
		a.addView, _ = a.addView.Update(msg)
		a.currentView = messages.ViewTasks
		a.tasksView, cmd = a.tasksView.Update(msg)
		return a, cmd

	case messages.TasksLoaded:
		a.err = msg.Err
		a.tasksView, cmd = a.tasksView.Update(msg)
		return a, cmd

	case messages.TaskUpdated:
		a.err = msg.Err
		a.tasksView, cmd = a.tasksView.Update(msg)
		return a, cmd

	case messages.TaskDeleted:
		a.err = msg.Err
		a.tasksView, cmd = a.tasksView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.tasksView, cmd = a.tasksView.Update(msg)
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// cursor blink and friends
	if a.currentView == messages.ViewAddTask {
		a.addView, cmd = a.addView.Update(msg)
	}
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewAddTask:
		return a.addView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.tasksView.View()
	}
}

// viewHelp renders the keybinding reference.
func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Heading.Render("Help"))
	b.WriteString("\n\n")
	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-10s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Hint.Render("[esc] back to tasks"))
	return b.String()
}

// Run starts the TUI application and blocks until it exits.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// TasksView returns the task list view.
func (a *App) TasksView() *tasks.View {
	return a.tasksView
}

// AddView returns the add task view.
func (a *App) AddView() *addtask.View {
	return a.addView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.tasksView.SetDimensions(width, height)
	a.addView.SetDimensions(width, height)
}
