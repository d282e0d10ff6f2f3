// Package ui is the terminal view layer. Screens render the state store
// and turn key presses into action creator calls.
package ui

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/adanyl0v/go-todo-board/internal/locale"
	"github.com/adanyl0v/go-todo-board/internal/state"
)

var ErrNotTTY = errors.New("tui requires a TTY")

// Run starts the interface and blocks until the user quits or ctx is
// cancelled.
func Run(ctx context.Context, actions *state.Actions, t *locale.Translator) error {
	if !IsTTY(os.Stdout) {
		return ErrNotTTY
	}

	m := newModel(ctx, actions, t)
	defer m.close()

	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}

type screen int

const (
	screenLogin screen = iota
	screenRegister
	screenDashboard
	screenTaskForm
)

// stateChangedMsg arrives after the store notified its listeners.
type stateChangedMsg struct{}

// actionDoneMsg arrives when an action creator returned.
type actionDoneMsg struct{}

type model struct {
	ctx     context.Context
	actions *state.Actions
	t       *locale.Translator

	state       state.State
	changed     chan struct{}
	unsubscribe func()

	screen    screen
	width     int
	loadedFor string

	login    *form
	register *form
	task     *form
	// editingID is empty while creating a task.
	editingID string

	dash dashboard
}

func newModel(ctx context.Context, actions *state.Actions, t *locale.Translator) *model {
	m := &model{
		ctx:      ctx,
		actions:  actions,
		t:        t,
		state:    actions.Store().State(),
		changed:  make(chan struct{}, 1),
		login:    newLoginForm(),
		register: newRegisterForm(),
		dash:     dashboard{view: state.ViewAll},
	}
	m.unsubscribe = actions.Store().Subscribe(func(state.State) {
		select {
		case m.changed <- struct{}{}:
		default:
		}
	})
	return m
}

func (m *model) close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

func (m *model) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForChange(m.ctx, m.changed)}
	if token := m.state.Auth.Token; token != "" {
		cmds = append(cmds, m.run(func(ctx context.Context) {
			m.actions.LoadUser(ctx, token)
		}))
	}
	return tea.Batch(cmds...)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case stateChangedMsg:
		return m, tea.Batch(m.sync(), waitForChange(m.ctx, m.changed))
	case actionDoneMsg:
		return m, m.sync()
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.screen {
		case screenLogin:
			return m, m.updateLogin(msg)
		case screenRegister:
			return m, m.updateRegister(msg)
		case screenDashboard:
			return m, m.updateDashboard(msg)
		case screenTaskForm:
			return m, m.updateTaskForm(msg)
		}
	}
	return m, nil
}

func (m *model) View() string {
	var b strings.Builder
	switch m.screen {
	case screenLogin:
		m.viewAuth(&b, locale.MsgLoginTitle, m.login, locale.MsgLoginHelp)
	case screenRegister:
		m.viewAuth(&b, locale.MsgRegisterTitle, m.register, locale.MsgRegisterHelp)
	case screenDashboard:
		m.viewDashboard(&b)
	case screenTaskForm:
		m.viewTaskForm(&b)
	}
	return b.String()
}

// sync pulls the latest state and moves between the signed out and
// signed in screens. It returns a command when tasks need loading.
func (m *model) sync() tea.Cmd {
	m.state = m.actions.Store().State()
	auth := m.state.Auth
	if auth.Loading() {
		return nil
	}

	if !auth.IsAuthenticated() || auth.User == nil {
		if m.screen == screenDashboard || m.screen == screenTaskForm {
			m.screen = screenLogin
			m.editingID = ""
			m.task = nil
		}
		m.loadedFor = ""
		return nil
	}

	if m.screen == screenLogin || m.screen == screenRegister {
		m.screen = screenDashboard
		m.login.reset()
		m.register.reset()
		m.dash = dashboard{view: state.ViewAll}
	}
	m.dash.clamp(len(m.visible()))

	if m.loadedFor != auth.User.ID {
		m.loadedFor = auth.User.ID
		userID := auth.User.ID
		return m.run(func(ctx context.Context) {
			m.actions.GetTasks(ctx, userID)
		})
	}
	return nil
}

// run calls an action creator off the update loop.
func (m *model) run(fn func(ctx context.Context)) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		fn(ctx)
		return actionDoneMsg{}
	}
}

func waitForChange(ctx context.Context, ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case <-ch:
			return stateChangedMsg{}
		}
	}
}

func (m *model) writeTitle(b *strings.Builder, id string) {
	b.WriteString(titleStyle.Render(m.t.T(id)))
	b.WriteString("\n")
}

func (m *model) writeBanner(b *strings.Builder, message string) {
	if message == "" {
		return
	}
	style := bannerStyle
	if m.width > 0 {
		style = style.Width(m.width)
	}
	b.WriteString(style.Render(message))
	b.WriteString("\n\n")
}

func (m *model) writeForm(b *strings.Builder, f *form) {
	for i, fl := range f.fields {
		label := labelStyle
		if i == f.focus {
			label = focusedLabelStyle
		}
		value := fl.display()
		if len(fl.choices) > 0 {
			value = "< " + value + " >"
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			label.Render(m.t.T(fl.label)),
			inputStyle.Render(value+" "),
		))
		b.WriteString("\n")
		if msg, ok := f.errs[fl.name]; ok {
			b.WriteString(fieldErrorStyle.Render(msg))
			b.WriteString("\n")
		}
	}
}

func (m *model) writeHelp(b *strings.Builder, id string) {
	b.WriteString(helpStyle.Render(m.t.T(id)))
	b.WriteString("\n")
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
