package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/adanyl0v/go-todo-board/internal/locale"
	"github.com/adanyl0v/go-todo-board/internal/models"
	"github.com/adanyl0v/go-todo-board/internal/state"
	"github.com/adanyl0v/go-todo-board/internal/validation"
)

var views = []state.View{state.ViewAll, state.ViewActive, state.ViewCompleted}

type dashboard struct {
	cursor    int
	view      state.View
	filtering bool
	filter    []rune
	// deleting holds the task id awaiting a y/n answer.
	deleting string
}

func (d *dashboard) clamp(n int) {
	if d.cursor >= n {
		d.cursor = n - 1
	}
	if d.cursor < 0 {
		d.cursor = 0
	}
}

func (m *model) visible() []models.Task {
	return m.state.Task.Visible(m.dash.view)
}

func (m *model) selected() (models.Task, bool) {
	tasks := m.visible()
	if m.dash.cursor < 0 || m.dash.cursor >= len(tasks) {
		return models.Task{}, false
	}
	return tasks[m.dash.cursor], true
}

func (m *model) updateDashboard(msg tea.KeyMsg) tea.Cmd {
	if m.dash.filtering {
		m.updateFilter(msg)
		return nil
	}
	if m.dash.deleting != "" {
		id := m.dash.deleting
		m.dash.deleting = ""
		if msg.String() != "y" {
			return nil
		}
		return m.run(func(ctx context.Context) {
			m.actions.DeleteTask(ctx, id)
		})
	}

	switch msg.String() {
	case "q":
		return tea.Quit
	case "up", "k":
		m.dash.cursor--
	case "down", "j":
		m.dash.cursor++
	case "/":
		m.dash.filtering = true
	case "c":
		m.actions.SetTaskCategory(nextCategory(m.state.Task))
		m.dash.cursor = 0
	case "v", "tab":
		m.dash.view = nextView(m.dash.view)
		m.dash.cursor = 0
	case "1", "2", "3":
		m.dash.view = views[msg.String()[0]-'1']
		m.dash.cursor = 0
	case " ", "x":
		if task, ok := m.selected(); ok {
			return m.run(func(ctx context.Context) {
				m.actions.ToggleTask(ctx, task)
			})
		}
	case "d":
		if task, ok := m.selected(); ok {
			m.dash.deleting = task.ID
		}
	case "n":
		m.openTaskForm(nil)
	case "e", "enter":
		if task, ok := m.selected(); ok {
			m.openTaskForm(&task)
		}
	case "r":
		m.loadedFor = ""
	case "L":
		return m.run(func(ctx context.Context) {
			m.actions.Logout(ctx)
		})
	}
	return m.sync()
}

func (m *model) updateFilter(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEsc:
		m.dash.filtering = false
		m.dash.filter = nil
		m.actions.ClearFilter()
	case tea.KeyEnter:
		m.dash.filtering = false
	case tea.KeyRunes:
		m.dash.filter = append(m.dash.filter, msg.Runes...)
	case tea.KeySpace:
		m.dash.filter = append(m.dash.filter, ' ')
	case tea.KeyBackspace:
		if len(m.dash.filter) > 0 {
			m.dash.filter = m.dash.filter[:len(m.dash.filter)-1]
		}
	default:
		return
	}

	if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace || msg.Type == tea.KeyBackspace {
		if len(m.dash.filter) == 0 {
			m.actions.ClearFilter()
		} else {
			m.actions.FilterTasks(string(m.dash.filter))
		}
	}
	m.dash.cursor = 0
	m.sync()
}

func nextCategory(s state.TaskState) string {
	options := append([]string{models.CategoryAll}, s.Categories...)
	for i, c := range options {
		if c == s.Category {
			return options[(i+1)%len(options)]
		}
	}
	return models.CategoryAll
}

func nextView(v state.View) state.View {
	for i, candidate := range views {
		if candidate == v {
			return views[(i+1)%len(views)]
		}
	}
	return state.ViewAll
}

func (m *model) viewDashboard(b *strings.Builder) {
	m.writeTitle(b, locale.MsgDashboardTitle)
	if user := m.state.Auth.User; user != nil {
		b.WriteString(fmt.Sprintf("%s, %s\n\n", m.t.T(locale.MsgWelcome), user.Username))
	}
	m.writeBanner(b, m.state.Task.Error)

	st := state.ComputeStats(m.state.Task.Tasks)
	b.WriteString(statsStyle.Render(m.t.TData(locale.MsgStats, map[string]any{
		"Total":        st.Total,
		"Completed":    st.Completed,
		"Pending":      st.Pending,
		"HighPriority": st.HighPriority,
		"Rate":         fmt.Sprintf("%.0f", st.CompletionRate),
	})))
	b.WriteString("\n\n")

	tabs := make([]string, 0, len(views))
	for _, v := range views {
		style := tabStyle
		if v == m.dash.view {
			style = activeTab
		}
		tabs = append(tabs, style.Render(string(v)))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString(fmt.Sprintf("   %s: %s\n", m.t.T(locale.MsgCategoryLabel), m.state.Task.Category))

	filter := string(m.dash.filter)
	if m.dash.filtering {
		filter += "_"
	}
	if filter != "" {
		b.WriteString(fmt.Sprintf("%s: %s\n", m.t.T(locale.MsgFilterLabel), filter))
	}
	b.WriteString("\n")

	if m.state.Task.Loading {
		b.WriteString(mutedStyle.Render(m.t.T(locale.MsgLoading)))
		b.WriteString("\n")
	}

	tasks := m.visible()
	switch {
	case len(m.state.Task.Tasks) == 0 && !m.state.Task.Loading:
		b.WriteString(mutedStyle.Render(m.t.T(locale.MsgNoTasks)))
		b.WriteString("\n")
	case len(tasks) == 0 && !m.state.Task.Loading:
		b.WriteString(mutedStyle.Render(m.t.T(locale.MsgNoMatches)))
		b.WriteString("\n")
	}
	for i, task := range tasks {
		b.WriteString(formatTask(task, i == m.dash.cursor))
		b.WriteString("\n")
	}

	if m.dash.deleting != "" {
		b.WriteString("\n" + m.t.T(locale.MsgConfirmDelete) + "\n")
	}
	m.writeHelp(b, locale.MsgDashboardHelp)
}

func formatTask(task models.Task, selected bool) string {
	cursor := "  "
	if selected {
		cursor = cursorStyle.Render("> ")
	}
	check := "[ ]"
	title := task.Title
	if task.Completed {
		check = "[x]"
		title = doneStyle.Render(title)
	}

	priority := string(task.Priority)
	if style, ok := priorityStyles[priority]; ok {
		priority = style.Render(priority)
	}

	line := fmt.Sprintf("%s%s %s  %s  %s  %d%%", cursor, check, title, priority, task.Category, task.Progress)
	if task.DueDate != nil {
		line += "  " + mutedStyle.Render("due "+task.DueDate.Format(validation.DateLayout))
	}
	if task.Description != "" {
		line += "\n      " + mutedStyle.Render(truncate(task.Description, 60))
	}
	return line
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
