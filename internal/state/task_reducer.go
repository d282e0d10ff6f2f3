package state

import (
	"strings"

	"github.com/adanyl0v/go-todo-board/internal/models"
)

type View string

const (
	ViewAll       View = "all"
	ViewActive    View = "active"
	ViewCompleted View = "completed"
)

func ParseView(s string) (View, bool) {
	switch View(s) {
	case ViewAll, ViewActive, ViewCompleted:
		return View(s), true
	}
	return "", false
}

type TaskState struct {
	Tasks      []models.Task
	Current    *models.Task
	Loading    bool
	Error      string
	Filter     string
	Filtering  bool
	Categories []string
	Category   string
}

func NewTaskState() TaskState {
	return TaskState{
		Tasks:      []models.Task{},
		Categories: models.DefaultCategories(),
		Category:   models.CategoryAll,
	}
}

// Filtered applies the text filter. Without an active filter it returns
// Tasks itself.
func (s TaskState) Filtered() []models.Task {
	if !s.Filtering {
		return s.Tasks
	}
	return FilterByText(s.Tasks, s.Filter)
}

// Visible is what a list shows: text filter, then view, then category.
func (s TaskState) Visible(view View) []models.Task {
	return FilterByCategory(FilterByView(s.Filtered(), view), s.Category)
}

// FilterByText keeps tasks whose title or description contains text,
// ignoring case.
func FilterByText(tasks []models.Task, text string) []models.Task {
	needle := strings.ToLower(text)
	out := make([]models.Task, 0, len(tasks))
	for _, task := range tasks {
		if strings.Contains(strings.ToLower(task.Title), needle) ||
			strings.Contains(strings.ToLower(task.Description), needle) {
			out = append(out, task)
		}
	}
	return out
}

func FilterByView(tasks []models.Task, view View) []models.Task {
	switch view {
	case ViewActive, ViewCompleted:
	default:
		return tasks
	}

	wantCompleted := view == ViewCompleted
	out := make([]models.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.Completed == wantCompleted {
			out = append(out, task)
		}
	}
	return out
}

func FilterByCategory(tasks []models.Task, category string) []models.Task {
	if category == "" || category == models.CategoryAll {
		return tasks
	}
	out := make([]models.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.Category == category {
			out = append(out, task)
		}
	}
	return out
}

func ReduceTask(s TaskState, action Action) TaskState {
	switch a := action.(type) {
	case TaskLoading:
		s.Loading = true
		s.Error = ""
	case TasksLoaded:
		s.Tasks = append([]models.Task{}, a.Tasks...)
		s.Loading = false
	case TaskAdded:
		s.Loading = false
		if a.Task.ID == "" {
			s.Error = "Invalid task data received"
			break
		}
		tasks := make([]models.Task, 0, len(s.Tasks)+1)
		tasks = append(tasks, a.Task)
		s.Tasks = append(tasks, s.Tasks...)
	case TaskUpdated:
		s.Loading = false
		if a.Task.ID == "" {
			s.Error = "Invalid task update data received"
			break
		}
		tasks := make([]models.Task, len(s.Tasks))
		for i, task := range s.Tasks {
			if task.ID == a.Task.ID {
				task = a.Task
			}
			tasks[i] = task
		}
		s.Tasks = tasks
		if s.Current != nil && s.Current.ID == a.Task.ID {
			current := a.Task
			s.Current = &current
		}
	case TaskDeleted:
		s.Loading = false
		if a.ID == "" {
			s.Error = "Invalid task ID for deletion"
			break
		}
		tasks := make([]models.Task, 0, len(s.Tasks))
		for _, task := range s.Tasks {
			if task.ID != a.ID {
				tasks = append(tasks, task)
			}
		}
		s.Tasks = tasks
		if s.Current != nil && s.Current.ID == a.ID {
			s.Current = nil
		}
	case TaskError:
		s.Loading = false
		s.Error = a.Message
	case SetCurrentTask:
		current := a.Task
		s.Current = &current
	case ClearCurrentTask:
		s.Current = nil
	case FilterTasks:
		s.Filter = a.Text
		s.Filtering = true
	case ClearFilter:
		s.Filter = ""
		s.Filtering = false
	case SetTaskCategory:
		s.Category = a.Category
		if s.Category == "" {
			s.Category = models.CategoryAll
		}
	case Logout:
		return NewTaskState()
	}
	return s
}
