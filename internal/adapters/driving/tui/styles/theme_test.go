package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPalette_TaskStatesAreDistinct(t *testing.T) {
	p := DefaultPalette()

	states := map[string]lipgloss.Color{
		"accent":  p.Accent,
		"pending": p.Pending,
		"done":    p.Done,
		"confirm": p.Confirm,
		"saved":   p.Saved,
		"danger":  p.Danger,
	}
	seen := make(map[lipgloss.Color]string)
	for name, c := range states {
		require.NotEmpty(t, string(c), name)
		other, dup := seen[c]
		assert.False(t, dup, "%s shares a colour with %s", name, other)
		seen[c] = name
	}
}

func TestNewStyles_NilPalette(t *testing.T) {
	s := NewStyles(nil)

	require.NotNil(t, s.Palette())
	assert.Equal(t, DefaultPalette(), s.Palette())
}

func TestNewStyles_UsesPalette(t *testing.T) {
	p := DefaultPalette()
	p.Accent = lipgloss.Color("#123456")

	s := NewStyles(p)
	assert.Same(t, p, s.Palette())
	assert.Equal(t, lipgloss.Color("#123456"), s.Heading.GetForeground())
	assert.Equal(t, lipgloss.Color("#123456"), s.Filter.GetBackground())
	assert.Equal(t, lipgloss.Color("#123456"), s.Selected.GetBackground())
}

func TestStyles_Task(t *testing.T) {
	s := DefaultStyles()

	done := s.Task(true)
	assert.True(t, done.GetStrikethrough())
	assert.Equal(t, s.Palette().Done, done.GetForeground())

	pending := s.Task(false)
	assert.False(t, pending.GetStrikethrough())
	assert.Equal(t, s.Palette().Pending, pending.GetForeground())
}

func TestStyles_Emphasis(t *testing.T) {
	s := DefaultStyles()

	assert.True(t, s.Heading.GetBold())
	assert.True(t, s.Selected.GetBold())
	assert.True(t, s.Confirm.GetBold())
	assert.Equal(t, s.Palette().Danger, s.Error.GetForeground())
	assert.Equal(t, s.Palette().Surface, s.StatusBar.GetBackground())
	assert.Positive(t, s.Input.GetHorizontalFrameSize())
}

func TestStyles_Render(t *testing.T) {
	s := DefaultStyles()

	for name, style := range map[string]lipgloss.Style{
		"heading": s.Heading,
		"filter":  s.Filter,
		"hint":    s.Hint,
		"confirm": s.Confirm,
		"saved":   s.Saved,
		"done":    s.Done,
	} {
		t.Run(name, func(t *testing.T) {
			assert.Contains(t, style.Render("Buy milk"), "Buy milk")
		})
	}
}
