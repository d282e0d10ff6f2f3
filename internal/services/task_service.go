package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-todo-board/internal/models"
	"github.com/adanyl0v/go-todo-board/internal/storage"
)

const defaultTaskTitle = "Untitled Task"

type taskServiceImpl struct {
	logger  zerolog.Logger
	store   *storage.Store
	latency time.Duration
}

func NewTaskService(
	logger zerolog.Logger,
	store *storage.Store,
	latency time.Duration,
) TaskService {
	return &taskServiceImpl{
		logger:  logger,
		store:   store,
		latency: latency,
	}
}

func (s *taskServiceImpl) GetTasksByUserID(ctx context.Context, userID string) ([]models.Task, error) {
	err := simulateLatency(ctx, s.latency)
	if err != nil {
		return nil, err
	}

	if userID == "" {
		s.logger.Warn().Msg("tasks requested without a user id")
		return []models.Task{}, nil
	}

	all := s.store.Tasks()
	tasks := make([]models.Task, 0, len(all))
	for _, task := range all {
		if task.UserID == userID {
			tasks = append(tasks, task)
		}
	}

	s.logger.Info().
		Int("count", len(tasks)).
		Str("user_id", userID).
		Msg("tasks found")
	return tasks, nil
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error) {
	err := simulateLatency(ctx, s.latency)
	if err != nil {
		return nil, err
	}

	if params.UserID == "" {
		s.logger.Error().Msg("task without user id")
		return nil, ErrMissingUserID
	}
	if params.Priority != "" && !params.Priority.Valid() {
		s.logger.Error().
			Str("priority", string(params.Priority)).
			Msg("invalid priority")
		return nil, ErrInvalidPriority
	}

	task := models.Task{
		Title:       strings.TrimSpace(params.Title),
		Description: params.Description,
		Completed:   false,
		UserID:      params.UserID,
		CreatedAt:   time.Now().UTC(),
		Priority:    params.Priority,
		DueDate:     params.DueDate,
		Category:    strings.TrimSpace(params.Category),
		Progress:    models.MinProgress,
	}
	if task.Title == "" {
		task.Title = defaultTaskTitle
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	if task.Category == "" {
		task.Category = models.CategoryOther
	}

	taskUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate task uuid")
		return nil, err
	}
	task.ID = taskUUID.String()

	err = s.store.UpdateTasks(func(tasks []models.Task) ([]models.Task, error) {
		return append(tasks, task), nil
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return nil, err
	}
	s.logger.Debug().
		Str("task_id", task.ID).
		Msg("inserted task")

	s.logger.Info().
		Str("task_id", task.ID).
		Str("user_id", task.UserID).
		Msg("created task")
	return &task, nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error) {
	err := simulateLatency(ctx, s.latency)
	if err != nil {
		return nil, err
	}

	if params.ID == "" {
		s.logger.Error().Msg("no task id provided")
		return nil, ErrMissingTaskID
	}
	if params.Title != nil && strings.TrimSpace(*params.Title) == "" {
		s.logger.Error().
			Str("task_id", params.ID).
			Msg("empty title")
		return nil, ErrInvalidTitle
	}
	if params.Priority != nil && !params.Priority.Valid() {
		s.logger.Error().
			Str("task_id", params.ID).
			Str("priority", string(*params.Priority)).
			Msg("invalid priority")
		return nil, ErrInvalidPriority
	}
	if params.Progress != nil && (*params.Progress < models.MinProgress || *params.Progress > models.MaxProgress) {
		s.logger.Error().
			Str("task_id", params.ID).
			Int("progress", *params.Progress).
			Msg("invalid progress")
		return nil, ErrInvalidProgress
	}
	if params.empty() {
		s.logger.Warn().
			Str("task_id", params.ID).
			Msg("no fields to update")
	}

	var updated models.Task
	err = s.store.UpdateTasks(func(tasks []models.Task) ([]models.Task, error) {
		for i := range tasks {
			if tasks[i].ID != params.ID {
				continue
			}
			applyTaskUpdate(&tasks[i], params)
			updated = tasks[i]
			return tasks, nil
		}
		return nil, ErrTaskNotFound
	})
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			s.logger.Error().
				Str("task_id", params.ID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Str("task_id", params.ID).
			Msg("failed to update task")
		return nil, err
	}
	s.logger.Debug().
		Str("task_id", updated.ID).
		Msg("updated task")

	s.logger.Info().
		Str("task_id", updated.ID).
		Str("user_id", updated.UserID).
		Msg("updated task")
	return &updated, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, taskID string) error {
	err := simulateLatency(ctx, s.latency)
	if err != nil {
		return err
	}

	if taskID == "" {
		s.logger.Error().Msg("no task id provided")
		return ErrMissingTaskID
	}

	err = s.store.UpdateTasks(func(tasks []models.Task) ([]models.Task, error) {
		kept := make([]models.Task, 0, len(tasks))
		for _, task := range tasks {
			if task.ID != taskID {
				kept = append(kept, task)
			}
		}
		if len(kept) == len(tasks) {
			return nil, ErrTaskNotFound
		}
		return kept, nil
	})
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			s.logger.Error().
				Str("task_id", taskID).
				Msg("task not found")
			return ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to delete task")
		return err
	}
	s.logger.Debug().
		Str("task_id", taskID).
		Msg("deleted task")

	s.logger.Info().
		Str("task_id", taskID).
		Msg("deleted task")
	return nil
}

func applyTaskUpdate(task *models.Task, params UpdateTaskParams) {
	if params.Title != nil {
		task.Title = strings.TrimSpace(*params.Title)
	}
	if params.Description != nil {
		task.Description = *params.Description
	}
	if params.Completed != nil {
		task.Completed = *params.Completed
	}
	if params.Priority != nil {
		task.Priority = *params.Priority
	}
	if params.DueDateSet {
		task.DueDate = params.DueDate
	}
	if params.Category != nil {
		task.Category = strings.TrimSpace(*params.Category)
		if task.Category == "" {
			task.Category = models.CategoryOther
		}
	}
	if params.Progress != nil {
		task.Progress = *params.Progress
	}

	now := time.Now().UTC()
	task.UpdatedAt = &now
}
