package ui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/adanyl0v/go-todo-board/internal/locale"
	"github.com/adanyl0v/go-todo-board/internal/services"
	"github.com/adanyl0v/go-todo-board/internal/validation"
)

func newLoginForm() *form {
	return newForm(
		newField("email", locale.MsgEmailLabel),
		newField("password", locale.MsgPasswordLabel).masked(),
	)
}

func newRegisterForm() *form {
	return newForm(
		newField("username", locale.MsgUsernameLabel),
		newField("email", locale.MsgEmailLabel),
		newField("password", locale.MsgPasswordLabel).masked(),
		newField("confirmPassword", locale.MsgConfirmLabel).masked(),
	)
}

func (m *model) updateLogin(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		return tea.Quit
	case tea.KeyCtrlR:
		m.login.errs = nil
		m.screen = screenRegister
		return nil
	case tea.KeyEnter:
		return m.submitLogin()
	}
	m.login.handleKey(msg)
	return nil
}

func (m *model) submitLogin() tea.Cmd {
	if m.state.Auth.Loading() {
		return nil
	}

	form := validation.LoginForm{
		Email:    m.login.value("email"),
		Password: m.login.value("password"),
	}
	m.login.errs = validation.Login(m.t, form)
	if !m.login.errs.Valid() {
		return nil
	}

	params := services.LoginParams{
		Email:    strings.TrimSpace(form.Email),
		Password: form.Password,
	}
	return m.run(func(ctx context.Context) {
		m.actions.Login(ctx, params)
	})
}

func (m *model) updateRegister(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.register.errs = nil
		m.screen = screenLogin
		return nil
	case tea.KeyEnter:
		return m.submitRegister()
	}
	m.register.handleKey(msg)
	return nil
}

func (m *model) submitRegister() tea.Cmd {
	if m.state.Auth.Loading() {
		return nil
	}

	form := validation.RegisterForm{
		Username:        m.register.value("username"),
		Email:           m.register.value("email"),
		Password:        m.register.value("password"),
		ConfirmPassword: m.register.value("confirmPassword"),
	}
	m.register.errs = validation.Register(m.t, form)
	if !m.register.errs.Valid() {
		return nil
	}

	params := services.RegisterParams{
		Username: strings.TrimSpace(form.Username),
		Email:    strings.TrimSpace(form.Email),
		Password: form.Password,
	}
	return m.run(func(ctx context.Context) {
		m.actions.Register(ctx, params)
	})
}

func (m *model) viewAuth(b *strings.Builder, title string, f *form, help string) {
	m.writeTitle(b, title)
	m.writeBanner(b, m.state.Auth.Error)
	if m.state.Auth.Loading() {
		b.WriteString(mutedStyle.Render(m.t.T(locale.MsgLoading)))
		b.WriteString("\n\n")
	}
	m.writeForm(b, f)
	m.writeHelp(b, help)
}
