package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/taskd/internal/adapters/driving/tui/styles"
)

func typeText(f *Field, text string) *Field {
	for _, r := range text {
		f, _ = f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return f
}

func TestNewField(t *testing.T) {
	f := NewField(styles.DefaultStyles(), "Title", "What needs doing?", 200)

	require.NotNil(t, f)
	assert.Equal(t, "Title", f.Label())
	assert.Empty(t, f.Value())
	assert.False(t, f.Focused())
}

func TestNewField_NilStyles(t *testing.T) {
	f := NewField(nil, "Title", "", 0)

	require.NotNil(t, f)
	assert.NotNil(t, f.styles)
}

func TestField_Init(t *testing.T) {
	assert.NotNil(t, NewField(nil, "Title", "", 0).Init())
}

func TestField_TypingRequiresFocus(t *testing.T) {
	f := NewField(nil, "Title", "", 0)

	f = typeText(f, "ignored")
	assert.Empty(t, f.Value())

	f.Focus()
	f = typeText(f, "Buy milk")
	assert.Equal(t, "Buy milk", f.Value())
}

func TestField_CharLimit(t *testing.T) {
	f := NewField(nil, "Title", "", 3)
	f.Focus()

	f = typeText(f, "abcdef")

	assert.Equal(t, "abc", f.Value())
}

func TestField_FocusBlur(t *testing.T) {
	f := NewField(nil, "Title", "", 0)

	f.Focus()
	assert.True(t, f.Focused())

	f.Blur()
	assert.False(t, f.Focused())
}

func TestField_SetValueAndReset(t *testing.T) {
	f := NewField(nil, "Title", "", 0)

	f.SetValue("hello")
	assert.Equal(t, "hello", f.Value())

	f.Reset()
	assert.Empty(t, f.Value())
}

func TestField_SetWidth(t *testing.T) {
	f := NewField(nil, "Title", "", 0)

	f.SetWidth(100)
	assert.Equal(t, 100, f.Width())
	assert.Equal(t, 80, f.textinput.Width)

	f.SetWidth(10)
	assert.Equal(t, 20, f.textinput.Width)
}

func TestField_View(t *testing.T) {
	f := NewField(nil, "Title", "", 0)
	f.SetValue("draft")

	view := f.View()

	assert.Contains(t, view, "Title:")
	assert.Contains(t, view, "draft")
}
