package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"skillsetu/internal/ui/theme"
)

// Field is a labelled text input with an inline validation message.
type Field struct {
	Name  string
	Label string
	Input textinput.Model
	Error string
}

func NewField(name, label, placeholder string, secret bool) Field {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = 40
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return Field{Name: name, Label: label, Input: ti}
}

func (f Field) Value() string {
	return f.Input.Value()
}

func (f Field) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Muted.Render(f.Label) + "\n")
	sb.WriteString(f.Input.View() + "\n")
	if f.Error != "" {
		sb.WriteString(theme.FieldError.Render(f.Error) + "\n")
	}
	return sb.String()
}

// Form cycles focus across its fields.
type Form struct {
	Fields []Field
	focus  int
}

func NewForm(fields ...Field) Form {
	f := Form{Fields: fields}
	if len(f.Fields) > 0 {
		f.Fields[0].Input.Focus()
	}
	return f
}

func (f *Form) Focus(i int) tea.Cmd {
	if len(f.Fields) == 0 {
		return nil
	}
	f.Fields[f.focus].Input.Blur()
	f.focus = (i + len(f.Fields)) % len(f.Fields)
	return f.Fields[f.focus].Input.Focus()
}

func (f *Form) Next() tea.Cmd { return f.Focus(f.focus + 1) }
func (f *Form) Prev() tea.Cmd { return f.Focus(f.focus - 1) }

func (f Form) Focused() int { return f.focus }

func (f Form) OnLast() bool { return f.focus == len(f.Fields)-1 }

// SetErrors shows messages keyed by field name and clears the rest.
func (f *Form) SetErrors(errs map[string]string) {
	for i := range f.Fields {
		f.Fields[i].Error = errs[f.Fields[i].Name]
	}
}

func (f *Form) ClearError(i int) {
	if i >= 0 && i < len(f.Fields) {
		f.Fields[i].Error = ""
	}
}

func (f Form) Value(name string) string {
	for _, field := range f.Fields {
		if field.Name == name {
			return field.Value()
		}
	}
	return ""
}

func (f *Form) SetValue(name, value string) {
	for i := range f.Fields {
		if f.Fields[i].Name == name {
			f.Fields[i].Input.SetValue(value)
		}
	}
}

// Update forwards msg to the focused input and clears its error once edited.
func (f Form) Update(msg tea.Msg) (Form, tea.Cmd) {
	if len(f.Fields) == 0 {
		return f, nil
	}
	before := f.Fields[f.focus].Value()
	var cmd tea.Cmd
	f.Fields[f.focus].Input, cmd = f.Fields[f.focus].Input.Update(msg)
	if f.Fields[f.focus].Value() != before {
		f.Fields[f.focus].Error = ""
	}
	return f, cmd
}

func (f Form) View() string {
	var sb strings.Builder
	for _, field := range f.Fields {
		sb.WriteString(field.View() + "\n")
	}
	return sb.String()
}
