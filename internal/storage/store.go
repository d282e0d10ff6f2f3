// Package storage keeps users, tasks and the session token in a single
// local key-value blob.
package storage

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-todo-board/internal/models"
)

const (
	KeyUsers = "users"
	KeyTasks = "tasks"
	KeyToken = "token"
)

// Store is the handle every service works through. It never returns an
// error from a read: missing or malformed collections come back empty.
type Store struct {
	logger   zerolog.Logger
	backend  Backend
	validate bool

	// mu serializes read-modify-write cycles.
	mu sync.Mutex
}

func New(logger zerolog.Logger, backend Backend, validateSchema bool) *Store {
	return &Store{
		logger:   logger,
		backend:  backend,
		validate: validateSchema,
	}
}

func (s *Store) Backend() Backend {
	return s.backend
}

func (s *Store) Users() []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return load[models.User](s, KeyUsers)
}

func (s *Store) SaveUsers(users []models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return save(s, KeyUsers, users)
}

func (s *Store) Tasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return load[models.Task](s, KeyTasks)
}

func (s *Store) SaveTasks(tasks []models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return save(s, KeyTasks, tasks)
}

// UpdateUsers loads the users, hands them to fn and writes back whatever
// fn returns. Nothing is written when fn fails.
func (s *Store) UpdateUsers(fn func(users []models.User) ([]models.User, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := fn(load[models.User](s, KeyUsers))
	if err != nil {
		return err
	}
	return save(s, KeyUsers, users)
}

// UpdateTasks is UpdateUsers for the tasks collection.
func (s *Store) UpdateTasks(fn func(tasks []models.Task) ([]models.Task, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := fn(load[models.Task](s, KeyTasks))
	if err != nil {
		return err
	}
	return save(s, KeyTasks, tasks)
}

// Token returns the persisted session token or "" if there is none.
func (s *Store) Token() string {
	token, ok, err := s.backend.Get(KeyToken)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Msg("failed to read token")
		return ""
	}
	if !ok {
		return ""
	}
	return token
}

func (s *Store) SaveToken(token string) error {
	err := s.backend.Set(KeyToken, token)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to save token")
		return fmt.Errorf("save token: %w", err)
	}
	s.logger.Debug().Msg("saved token")
	return nil
}

func (s *Store) ClearToken() error {
	err := s.backend.Remove(KeyToken)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to clear token")
		return fmt.Errorf("clear token: %w", err)
	}
	s.logger.Debug().Msg("cleared token")
	return nil
}

func load[T any](s *Store, key string) []T {
	raw, ok, err := s.backend.Get(key)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("key", key).
			Msg("failed to read collection, returning empty")
		return []T{}
	}
	if !ok || raw == "" {
		s.logger.Debug().
			Str("key", key).
			Msg("collection not found, returning empty")
		return []T{}
	}

	var doc any
	err = json.Unmarshal([]byte(raw), &doc)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("key", key).
			Msg("malformed collection, returning empty")
		return []T{}
	}
	if _, isArray := doc.([]any); !isArray {
		s.logger.Warn().
			Str("key", key).
			Msg("collection is not an array, returning empty")
		return []T{}
	}

	if s.validate {
		if schema, ok := collectionSchemas[key]; ok {
			if err := schema.Validate(doc); err != nil {
				s.logger.Warn().
					Strs("violations", schemaViolations(err)).
					Str("key", key).
					Msg("collection does not match schema, returning empty")
				return []T{}
			}
		}
	}

	var items []T
	err = json.Unmarshal([]byte(raw), &items)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("key", key).
			Msg("failed to decode collection, returning empty")
		return []T{}
	}
	s.logger.Debug().
		Str("key", key).
		Int("count", len(items)).
		Msg("loaded collection")
	return items
}

func save[T any](s *Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("key", key).
			Msg("failed to encode collection")
		return fmt.Errorf("encode %s: %w", key, err)
	}

	err = s.backend.Set(key, string(data))
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("key", key).
			Msg("failed to save collection")
		return fmt.Errorf("save %s: %w", key, err)
	}
	s.logger.Debug().
		Str("key", key).
		Int("count", len(items)).
		Msg("saved collection")
	return nil
}
