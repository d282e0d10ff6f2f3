package ui

import (
	"context"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/adanyl0v/go-todo-board/internal/locale"
	"github.com/adanyl0v/go-todo-board/internal/models"
	"github.com/adanyl0v/go-todo-board/internal/services"
	"github.com/adanyl0v/go-todo-board/internal/validation"
)

var priorityChoices = []string{
	string(models.PriorityLow),
	string(models.PriorityMedium),
	string(models.PriorityHigh),
}

// openTaskForm shows an empty form for a new task, or one filled from
// task when editing. Progress is only editable on existing tasks.
func (m *model) openTaskForm(task *models.Task) {
	f := newForm(
		newField("title", locale.MsgTitleLabel),
		newField("description", locale.MsgDescriptionLabel),
		newField("priority", locale.MsgPriorityLabel).withChoices(priorityChoices, true),
		newField("dueDate", locale.MsgDueDateLabel),
		newField("category", locale.MsgCategoryLabel).withChoices(m.state.Task.Categories, false),
	)

	m.editingID = ""
	if task == nil {
		f.field("priority").set(string(models.PriorityMedium))
		f.field("category").set(models.CategoryOther)
	} else {
		m.editingID = task.ID
		m.actions.SetCurrentTask(*task)

		f.add(newField("progress", locale.MsgProgressLabel))
		f.field("title").set(task.Title)
		f.field("description").set(task.Description)
		f.field("priority").set(string(task.Priority))
		f.field("category").set(task.Category)
		f.field("progress").set(strconv.Itoa(task.Progress))
		if task.DueDate != nil {
			f.field("dueDate").set(task.DueDate.Format(validation.DateLayout))
		}
	}

	m.task = f
	m.screen = screenTaskForm
}

func (m *model) closeTaskForm() {
	if m.editingID != "" {
		m.actions.ClearCurrentTask()
	}
	m.editingID = ""
	m.task = nil
	m.screen = screenDashboard
}

func (m *model) updateTaskForm(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeTaskForm()
		return m.sync()
	case tea.KeyEnter:
		return m.submitTask()
	}
	m.task.handleKey(msg)
	return nil
}

func (m *model) submitTask() tea.Cmd {
	form := validation.TaskForm{
		Title:       m.task.value("title"),
		Description: m.task.value("description"),
		Priority:    m.task.value("priority"),
		DueDate:     m.task.value("dueDate"),
		Category:    strings.TrimSpace(m.task.value("category")),
	}

	progressErr := false
	if m.editingID != "" {
		progress, err := strconv.Atoi(strings.TrimSpace(m.task.value("progress")))
		if err != nil {
			progressErr = true
		}
		form.Progress = progress
	}

	m.task.errs = validation.Task(m.t, form)
	if progressErr {
		m.task.errs["progress"] = m.t.T(locale.MsgProgressOutOfRange)
	}
	dueDate, err := form.ParsedDueDate()
	if err != nil {
		m.task.errs["dueDate"] = m.t.T(locale.MsgDueDateInvalid)
	}
	if !m.task.errs.Valid() {
		return nil
	}

	title := strings.TrimSpace(form.Title)
	priority := models.Priority(form.Priority)
	editingID := m.editingID
	m.closeTaskForm()

	if editingID == "" {
		params := services.CreateTaskParams{
			UserID:      m.loadedFor,
			Title:       title,
			Description: form.Description,
			Priority:    priority,
			DueDate:     dueDate,
			Category:    form.Category,
		}
		return m.run(func(ctx context.Context) {
			m.actions.AddTask(ctx, params)
		})
	}

	params := services.UpdateTaskParams{
		ID:          editingID,
		Title:       &title,
		Description: &form.Description,
		Priority:    &priority,
		DueDate:     dueDate,
		DueDateSet:  true,
		Category:    &form.Category,
		Progress:    &form.Progress,
	}
	return m.run(func(ctx context.Context) {
		m.actions.UpdateTask(ctx, params)
	})
}

func (m *model) viewTaskForm(b *strings.Builder) {
	title := locale.MsgNewTaskTitle
	if m.editingID != "" {
		title = locale.MsgEditTaskTitle
	}
	m.writeTitle(b, title)
	m.writeBanner(b, m.state.Task.Error)
	m.writeForm(b, m.task)
	m.writeHelp(b, locale.MsgFormHelp)
}
