package state

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-todo-board/internal/models"
	"github.com/adanyl0v/go-todo-board/internal/services"
)

// Actions runs service calls and turns their outcome into dispatched
// actions. Failures end up in the slice Error fields, never returned.
type Actions struct {
	logger zerolog.Logger
	store  *Store
	auth   services.AuthService
	tasks  services.TaskService
}

func NewActions(
	logger zerolog.Logger,
	store *Store,
	authService services.AuthService,
	taskService services.TaskService,
) *Actions {
	return &Actions{
		logger: logger,
		store:  store,
		auth:   authService,
		tasks:  taskService,
	}
}

func (a *Actions) Store() *Store {
	return a.store
}

func (a *Actions) Register(ctx context.Context, params services.RegisterParams) {
	a.store.Dispatch(AuthLoading{})

	result, err := a.auth.Register(ctx, params)
	if err != nil {
		a.logger.Error().
			Err(err).
			Msg("failed to register")
		a.store.Dispatch(AuthError{Message: err.Error()})
		return
	}

	a.store.Dispatch(RegisterSuccess{User: result.User, Token: result.Token})
	a.LoadUser(ctx, result.Token)
}

func (a *Actions) Login(ctx context.Context, params services.LoginParams) {
	a.store.Dispatch(AuthLoading{})

	result, err := a.auth.Login(ctx, params)
	if err != nil {
		a.logger.Error().
			Err(err).
			Msg("failed to login")
		a.store.Dispatch(AuthError{Message: err.Error()})
		return
	}

	a.store.Dispatch(LoginSuccess{User: result.User, Token: result.Token})
	a.LoadUser(ctx, result.Token)
}

func (a *Actions) LoadUser(ctx context.Context, token string) {
	a.store.Dispatch(AuthLoading{})

	user, err := a.auth.GetCurrentUser(ctx, token)
	if err != nil {
		a.logger.Error().
			Err(err).
			Msg("failed to load user")
		a.store.Dispatch(AuthError{Message: err.Error()})
		return
	}

	a.store.Dispatch(AuthSuccess{User: *user})
}

func (a *Actions) Logout(ctx context.Context) {
	err := a.auth.Logout(ctx)
	if err != nil {
		a.logger.Error().
			Err(err).
			Msg("failed to discard token")
	}
	a.store.Dispatch(Logout{})
}

func (a *Actions) GetTasks(ctx context.Context, userID string) {
	if userID == "" {
		a.store.Dispatch(TaskError{Message: "User ID is required to load tasks"})
		return
	}

	a.store.Dispatch(TaskLoading{})

	tasks, err := a.tasks.GetTasksByUserID(ctx, userID)
	if err != nil {
		a.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to load tasks")
		a.store.Dispatch(TaskError{Message: "Failed to get tasks: " + err.Error()})
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	a.store.Dispatch(TasksLoaded{Tasks: tasks})
}

func (a *Actions) AddTask(ctx context.Context, params services.CreateTaskParams) {
	if params.Title == "" || params.UserID == "" {
		a.store.Dispatch(TaskError{Message: "Invalid task data. Title and user ID are required."})
		return
	}

	a.store.Dispatch(TaskLoading{})

	task, err := a.tasks.CreateTask(ctx, params)
	if err != nil {
		a.logger.Error().
			Err(err).
			Msg("failed to add task")
		a.store.Dispatch(TaskError{Message: "Failed to add task: " + err.Error()})
		return
	}

	a.store.Dispatch(TaskAdded{Task: *task})
}

func (a *Actions) UpdateTask(ctx context.Context, params services.UpdateTaskParams) {
	if params.ID == "" {
		a.store.Dispatch(TaskError{Message: "Task ID is required for updates"})
		return
	}

	a.store.Dispatch(TaskLoading{})

	task, err := a.tasks.UpdateTask(ctx, params)
	if err != nil {
		a.logger.Error().
			Err(err).
			Str("task_id", params.ID).
			Msg("failed to update task")
		a.store.Dispatch(TaskError{Message: "Failed to update task: " + err.Error()})
		return
	}

	a.store.Dispatch(TaskUpdated{Task: *task})
}

// ToggleTask flips completion. Completing a task fills its progress;
// reopening it keeps the progress it had.
func (a *Actions) ToggleTask(ctx context.Context, task models.Task) {
	completed := !task.Completed
	params := services.UpdateTaskParams{
		ID:        task.ID,
		Completed: &completed,
	}
	if completed {
		progress := models.MaxProgress
		params.Progress = &progress
	}
	a.UpdateTask(ctx, params)
}

func (a *Actions) DeleteTask(ctx context.Context, taskID string) {
	if taskID == "" {
		a.store.Dispatch(TaskError{Message: "Task ID is required for deletion"})
		return
	}

	a.store.Dispatch(TaskLoading{})

	err := a.tasks.DeleteTask(ctx, taskID)
	if err != nil {
		a.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to delete task")
		a.store.Dispatch(TaskError{Message: "Failed to delete task: " + err.Error()})
		return
	}

	a.store.Dispatch(TaskDeleted{ID: taskID})
}

func (a *Actions) SetCurrentTask(task models.Task) {
	if task.ID == "" {
		a.logger.Warn().Msg("attempted to set invalid task as current")
		return
	}
	a.store.Dispatch(SetCurrentTask{Task: task})
}

func (a *Actions) ClearCurrentTask() {
	a.store.Dispatch(ClearCurrentTask{})
}

func (a *Actions) FilterTasks(text string) {
	a.store.Dispatch(FilterTasks{Text: text})
}

func (a *Actions) ClearFilter() {
	a.store.Dispatch(ClearFilter{})
}

func (a *Actions) SetTaskCategory(category string) {
	a.store.Dispatch(SetTaskCategory{Category: category})
}
