package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"

	"github.com/adanyl0v/go-todo-board/internal/models"
	"github.com/adanyl0v/go-todo-board/internal/storage"
)

type TaskServiceSuite struct {
	suite.Suite

	ctx   context.Context
	store *storage.Store
	svc   TaskService
}

func TestTaskService(t *testing.T) {
	suite.Run(t, new(TaskServiceSuite))
}

func (s *TaskServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = storage.New(zerolog.Nop(), storage.NewMemoryBackend(), true)
	s.svc = NewTaskService(zerolog.Nop(), s.store, 0)
}

func (s *TaskServiceSuite) create(userID, title string) *models.Task {
	task, err := s.svc.CreateTask(s.ctx, CreateTaskParams{UserID: userID, Title: title})
	s.Require().NoError(err)
	return task
}

func (s *TaskServiceSuite) TestCreateTask_Defaults() {
	task := s.create("u1", "")

	s.Equal("Untitled Task", task.Title)
	s.Equal("", task.Description)
	s.False(task.Completed)
	s.Equal(models.PriorityMedium, task.Priority)
	s.Equal(models.CategoryOther, task.Category)
	s.Equal(0, task.Progress)
	s.Equal("u1", task.UserID)
	s.NotEmpty(task.ID)
	s.Nil(task.UpdatedAt)
	s.WithinDuration(time.Now(), task.CreatedAt, time.Minute)

	stored := s.store.Tasks()
	s.Require().Len(stored, 1)
	s.Equal(task.ID, stored[0].ID)
}

func (s *TaskServiceSuite) TestCreateTask_UsesParams() {
	due := time.Date(2026, 12, 24, 0, 0, 0, 0, time.UTC)
	task, err := s.svc.CreateTask(s.ctx, CreateTaskParams{
		UserID:      "u1",
		Title:       "  Buy milk ",
		Description: "2 litres",
		Priority:    models.PriorityHigh,
		DueDate:     &due,
		Category:    models.CategoryShopping,
	})
	s.Require().NoError(err)

	s.Equal("Buy milk", task.Title)
	s.Equal("2 litres", task.Description)
	s.Equal(models.PriorityHigh, task.Priority)
	s.Equal(models.CategoryShopping, task.Category)
	s.Require().NotNil(task.DueDate)
	s.True(due.Equal(*task.DueDate))
}

func (s *TaskServiceSuite) TestCreateTask_UniqueIDs() {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		task := s.create("u1", "task")
		s.False(seen[task.ID], "duplicate id %s", task.ID)
		seen[task.ID] = true
	}
	s.Len(s.store.Tasks(), 20)
}

func (s *TaskServiceSuite) TestCreateTask_Rejects() {
	_, err := s.svc.CreateTask(s.ctx, CreateTaskParams{Title: "no owner"})
	s.ErrorIs(err, ErrMissingUserID)

	_, err = s.svc.CreateTask(s.ctx, CreateTaskParams{UserID: "u1", Priority: "urgent"})
	s.ErrorIs(err, ErrInvalidPriority)

	s.Empty(s.store.Tasks())
}

func (s *TaskServiceSuite) TestGetTasksByUserID() {
	mine := s.create("u1", "mine")
	s.create("u2", "theirs")

	tasks, err := s.svc.GetTasksByUserID(s.ctx, "u1")
	s.Require().NoError(err)
	s.Require().Len(tasks, 1)
	s.Equal(mine.ID, tasks[0].ID)

	tasks, err = s.svc.GetTasksByUserID(s.ctx, "nobody")
	s.Require().NoError(err)
	s.NotNil(tasks)
	s.Empty(tasks)

	tasks, err = s.svc.GetTasksByUserID(s.ctx, "")
	s.Require().NoError(err)
	s.NotNil(tasks)
	s.Empty(tasks)
}

func (s *TaskServiceSuite) TestUpdateTask() {
	task := s.create("u1", "draft")
	other := s.create("u1", "other")

	title := "final"
	completed := true
	progress := 70
	priority := models.PriorityLow
	updated, err := s.svc.UpdateTask(s.ctx, UpdateTaskParams{
		ID:        task.ID,
		Title:     &title,
		Completed: &completed,
		Progress:  &progress,
		Priority:  &priority,
	})
	s.Require().NoError(err)

	s.Equal("final", updated.Title)
	s.True(updated.Completed)
	s.Equal(70, updated.Progress)
	s.Equal(models.PriorityLow, updated.Priority)
	s.True(task.CreatedAt.Equal(updated.CreatedAt))
	s.Require().NotNil(updated.UpdatedAt)

	stored := s.store.Tasks()
	s.Require().Len(stored, 2)
	s.Equal("final", stored[0].Title)
	s.Equal(other.Title, stored[1].Title)
	s.Nil(stored[1].UpdatedAt)
}

func (s *TaskServiceSuite) TestUpdateTask_DueDate() {
	due := time.Date(2026, 11, 5, 0, 0, 0, 0, time.UTC)
	task, err := s.svc.CreateTask(s.ctx, CreateTaskParams{UserID: "u1", Title: "t", DueDate: &due})
	s.Require().NoError(err)

	category := models.CategoryWork
	updated, err := s.svc.UpdateTask(s.ctx, UpdateTaskParams{ID: task.ID, Category: &category})
	s.Require().NoError(err)
	s.Require().NotNil(updated.DueDate, "untouched due date must survive")

	updated, err = s.svc.UpdateTask(s.ctx, UpdateTaskParams{ID: task.ID, DueDateSet: true})
	s.Require().NoError(err)
	s.Nil(updated.DueDate)
	s.Equal(models.CategoryWork, updated.Category)
}

func (s *TaskServiceSuite) TestUpdateTask_CategoryTrimmedAndDefaulted() {
	task := s.create("u1", "t")

	padded := " Work "
	updated, err := s.svc.UpdateTask(s.ctx, UpdateTaskParams{ID: task.ID, Category: &padded})
	s.Require().NoError(err)
	s.Equal(models.CategoryWork, updated.Category)

	blank := "   "
	updated, err = s.svc.UpdateTask(s.ctx, UpdateTaskParams{ID: task.ID, Category: &blank})
	s.Require().NoError(err)
	s.Equal(models.CategoryOther, updated.Category)
	s.Equal(models.CategoryOther, s.store.Tasks()[0].Category)
}

func (s *TaskServiceSuite) TestUpdateTask_NotFoundLeavesStore() {
	s.create("u1", "keep")
	before := s.store.Tasks()

	title := "x"
	_, err := s.svc.UpdateTask(s.ctx, UpdateTaskParams{ID: "missing", Title: &title})
	s.ErrorIs(err, ErrTaskNotFound)
	s.Equal(before, s.store.Tasks())
}

func (s *TaskServiceSuite) TestUpdateTask_Validation() {
	task := s.create("u1", "t")
	before := s.store.Tasks()

	blank := "  "
	bad := models.Priority("urgent")
	over := 101
	under := -1

	cases := map[string]struct {
		params UpdateTaskParams
		err    error
	}{
		"missing id":     {UpdateTaskParams{}, ErrMissingTaskID},
		"blank title":    {UpdateTaskParams{ID: task.ID, Title: &blank}, ErrInvalidTitle},
		"bad priority":   {UpdateTaskParams{ID: task.ID, Priority: &bad}, ErrInvalidPriority},
		"progress > 100": {UpdateTaskParams{ID: task.ID, Progress: &over}, ErrInvalidProgress},
		"progress < 0":   {UpdateTaskParams{ID: task.ID, Progress: &under}, ErrInvalidProgress},
	}
	for name, tc := range cases {
		s.Run(name, func() {
			_, err := s.svc.UpdateTask(s.ctx, tc.params)
			s.ErrorIs(err, tc.err)
			s.Equal(before, s.store.Tasks())
		})
	}
}

func (s *TaskServiceSuite) TestDeleteTask() {
	first := s.create("u1", "first")
	second := s.create("u1", "second")
	third := s.create("u1", "third")

	s.Require().NoError(s.svc.DeleteTask(s.ctx, second.ID))

	stored := s.store.Tasks()
	s.Require().Len(stored, 2)
	s.Equal(first.ID, stored[0].ID)
	s.Equal(third.ID, stored[1].ID)
}

func (s *TaskServiceSuite) TestDeleteTask_NotFound() {
	s.create("u1", "keep")
	before := s.store.Tasks()

	s.ErrorIs(s.svc.DeleteTask(s.ctx, "missing"), ErrTaskNotFound)
	s.ErrorIs(s.svc.DeleteTask(s.ctx, ""), ErrMissingTaskID)
	s.Equal(before, s.store.Tasks())
}

func (s *TaskServiceSuite) TestLatency_HonorsContext() {
	svc := NewTaskService(zerolog.Nop(), s.store, time.Minute)

	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	_, err := svc.CreateTask(ctx, CreateTaskParams{UserID: "u1", Title: "slow"})
	s.ErrorIs(err, context.Canceled)
	s.Empty(s.store.Tasks())
}
