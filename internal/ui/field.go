package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/adanyl0v/go-todo-board/internal/validation"
)

// field is a single line input. name matches the form tag of the
// validated struct, so validation errors land on the right field.
type field struct {
	name    string
	label   string
	input   textinput.Model
	choices []string
	// fixed fields only change by cycling through choices.
	fixed bool
}

func newField(name, label string) *field {
	input := textinput.New()
	input.Prompt = ""
	input.Cursor.SetMode(cursor.CursorStatic)
	return &field{name: name, label: label, input: input}
}

func (f *field) masked() *field {
	f.input.EchoMode = textinput.EchoPassword
	f.input.EchoCharacter = '*'
	return f
}

func (f *field) withChoices(choices []string, fixed bool) *field {
	f.choices = choices
	f.fixed = fixed
	return f
}

func (f *field) String() string {
	return f.input.Value()
}

func (f *field) set(v string) {
	f.input.SetValue(v)
}

func (f *field) display() string {
	return f.input.View()
}

func (f *field) focus() {
	f.input.Focus()
}

func (f *field) blur() {
	f.input.Blur()
}

func (f *field) cycle(step int) {
	if len(f.choices) == 0 {
		return
	}
	idx := -1
	for i, c := range f.choices {
		if strings.EqualFold(c, f.String()) {
			idx = i
			break
		}
	}
	switch {
	case idx < 0 && step < 0:
		idx = len(f.choices) - 1
	case idx < 0:
		idx = 0
	default:
		idx = (idx + step + len(f.choices)) % len(f.choices)
	}
	f.set(f.choices[idx])
}

// handleKey edits the value and reports whether the key was consumed.
// Left and right cycle choices; everything else goes to the text input.
func (f *field) handleKey(msg tea.KeyMsg) bool {
	if len(f.choices) > 0 {
		switch msg.Type {
		case tea.KeyLeft:
			f.cycle(-1)
			return true
		case tea.KeyRight:
			f.cycle(1)
			return true
		}
	}
	if f.fixed {
		return false
	}

	before := f.input.Value()
	f.input, _ = f.input.Update(msg)
	return f.input.Value() != before || msg.Type == tea.KeyLeft || msg.Type == tea.KeyRight
}

type form struct {
	fields []*field
	focus  int
	errs   validation.Errors
}

func newForm(fields ...*field) *form {
	f := &form{fields: fields}
	f.setFocus(0)
	return f
}

func (f *form) add(fl *field) {
	f.fields = append(f.fields, fl)
	f.setFocus(f.focus)
}

func (f *form) field(name string) *field {
	for _, fl := range f.fields {
		if fl.name == name {
			return fl
		}
	}
	return nil
}

func (f *form) value(name string) string {
	if fl := f.field(name); fl != nil {
		return fl.String()
	}
	return ""
}

func (f *form) focused() *field {
	return f.fields[f.focus]
}

func (f *form) setFocus(idx int) {
	f.focus = idx
	for i, fl := range f.fields {
		if i == idx {
			fl.focus()
		} else {
			fl.blur()
		}
	}
}

func (f *form) move(step int) {
	f.setFocus((f.focus + step + len(f.fields)) % len(f.fields))
}

func (f *form) reset() {
	for _, fl := range f.fields {
		fl.set("")
	}
	f.setFocus(0)
	f.errs = nil
}

// handleKey covers focus movement and editing. Submission and
// cancellation belong to the screen.
func (f *form) handleKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyTab, tea.KeyDown:
		f.move(1)
		return true
	case tea.KeyShiftTab, tea.KeyUp:
		f.move(-1)
		return true
	}
	return f.focused().handleKey(msg)
}
