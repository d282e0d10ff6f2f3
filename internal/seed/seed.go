// Package seed fills an empty store with demo data and mirrors the
// store's collections to plain JSON files.
package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-todo-board/internal/models"
	"github.com/adanyl0v/go-todo-board/internal/storage"
)

//go:embed sample.toml
var sampleData string

const (
	DemoEmail    = "demo@example.com"
	DemoPassword = "password123"
)

type fixture struct {
	Users []fixtureUser `toml:"users"`
	Tasks []fixtureTask `toml:"tasks"`
}

type fixtureUser struct {
	ID       string `toml:"id"`
	Username string `toml:"username"`
	Email    string `toml:"email"`
	Password string `toml:"password"`
}

type fixtureTask struct {
	ID          string `toml:"id"`
	Title       string `toml:"title"`
	Description string `toml:"description"`
	Completed   bool   `toml:"completed"`
	UserID      string `toml:"user_id"`
	Priority    string `toml:"priority"`
	DueInDays   *int   `toml:"due_in_days"`
	Category    string `toml:"category"`
	Progress    int    `toml:"progress"`
}

// Sample decodes the embedded fixture. Timestamps are taken from now and
// due dates are relative to it.
func Sample(now time.Time) ([]models.User, []models.Task, error) {
	var f fixture
	_, err := toml.Decode(sampleData, &f)
	if err != nil {
		return nil, nil, fmt.Errorf("decode sample data: %w", err)
	}

	now = now.UTC()
	users := make([]models.User, 0, len(f.Users))
	for _, u := range f.Users {
		users = append(users, models.User{
			ID:        u.ID,
			Username:  u.Username,
			Email:     u.Email,
			Password:  u.Password,
			CreatedAt: now,
		})
	}

	tasks := make([]models.Task, 0, len(f.Tasks))
	for _, t := range f.Tasks {
		task := models.Task{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Completed:   t.Completed,
			UserID:      t.UserID,
			CreatedAt:   now,
			Priority:    models.Priority(t.Priority),
			Category:    t.Category,
			Progress:    t.Progress,
		}
		if t.DueInDays != nil {
			due := now.AddDate(0, 0, *t.DueInDays)
			task.DueDate = &due
		}
		tasks = append(tasks, task)
	}
	return users, tasks, nil
}

type Result struct {
	UsersSeeded bool
	TasksSeeded bool
}

// Seed writes the sample users and tasks into the collections that are
// empty. With force both collections are overwritten.
func Seed(logger zerolog.Logger, store *storage.Store, force bool) (Result, error) {
	var result Result

	users, tasks, err := Sample(time.Now())
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to decode sample data")
		return result, err
	}

	err = store.UpdateUsers(func(existing []models.User) ([]models.User, error) {
		if len(existing) > 0 && !force {
			logger.Info().
				Int("count", len(existing)).
				Msg("found existing users, skipping")
			return existing, nil
		}
		result.UsersSeeded = true
		return users, nil
	})
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to seed users")
		return result, err
	}

	err = store.UpdateTasks(func(existing []models.Task) ([]models.Task, error) {
		if len(existing) > 0 && !force {
			logger.Info().
				Int("count", len(existing)).
				Msg("found existing tasks, skipping")
			return existing, nil
		}
		result.TasksSeeded = true
		return tasks, nil
	})
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to seed tasks")
		return result, err
	}

	logger.Info().
		Bool("users_seeded", result.UsersSeeded).
		Bool("tasks_seeded", result.TasksSeeded).
		Msg("seeded sample data")
	return result, nil
}

// Export mirrors the users and tasks collections to users.json and
// tasks.json in dir.
func Export(store *storage.Store, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	if err := writeJSON(filepath.Join(dir, "users.json"), store.Users()); err != nil {
		return err
	}
	return writeJSON(filepath.Join(dir, "tasks.json"), store.Tasks())
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
