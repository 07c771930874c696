package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// TextInput is a single-line free-text answer field.
type TextInput struct {
	field textinput.Model
}

// NewTextInput returns a focused input. charLimit <= 0 keeps the bubbles
// default.
func NewTextInput(placeholder string, charLimit int) TextInput {
	f := textinput.New()
	f.Prompt = "› "
	f.Placeholder = placeholder
	if charLimit > 0 {
		f.CharLimit = charLimit
	}
	f.Focus()
	return TextInput{field: f}
}

func (t TextInput) Init() tea.Cmd { return t.field.Focus() }

func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.field, cmd = t.field.Update(msg)
	return t, cmd
}

func (t TextInput) View() string  { return t.field.View() }
func (t TextInput) Value() string { return t.field.Value() }

func (t *TextInput) SetValue(s string) { t.field.SetValue(s) }
func (t *TextInput) Reset()            { t.field.Reset() }
func (t *TextInput) Focus() tea.Cmd    { return t.field.Focus() }
func (t *TextInput) Blur()             { t.field.Blur() }
