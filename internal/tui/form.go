package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// form is the shared field-entry overlay used by the login screen, the
// resource edit forms, and the new-application flow.
type form struct {
	commit func(values []string) tea.Cmd
	title  string
	fields []formField
	focus  int
}

type formField struct {
	label string
	input textinput.Model
}

func newField(label, value string, secret bool) formField {
	in := textinput.New()
	in.SetValue(value)
	in.CharLimit = 256
	if secret {
		in.EchoMode = textinput.EchoPassword
	}
	return formField{label: label, input: in}
}

func newForm(title string, commit func(values []string) tea.Cmd, fields ...formField) *form {
	f := &form{title: title, commit: commit, fields: fields}
	if len(f.fields) > 0 {
		f.fields[0].input.Focus()
	}
	return f
}

func (f *form) values() []string {
	out := make([]string, len(f.fields))
	for i, field := range f.fields {
		out[i] = strings.TrimSpace(field.input.Value())
	}
	return out
}

func (f *form) setFocus(i int) {
	if i < 0 || i >= len(f.fields) {
		return
	}
	f.fields[f.focus].input.Blur()
	f.focus = i
	f.fields[f.focus].input.Focus()
}

// update routes a message to the form. Enter advances through the
// fields and commits on the last one; Tab and Shift+Tab move focus.
func (f *form) update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			if f.focus == len(f.fields)-1 {
				return f.commit(f.values())
			}
			f.setFocus(f.focus + 1)
			return nil
		case "tab", "down":
			f.setFocus((f.focus + 1) % len(f.fields))
			return nil
		case "shift+tab", "up":
			f.setFocus((f.focus - 1 + len(f.fields)) % len(f.fields))
			return nil
		}
	}

	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return cmd
}

// atoiField parses a numeric ID field, treating blanks as zero so the
// module-level validation produces the user-facing message.
func atoiField(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func atofField(s string) float64 {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return n
}
