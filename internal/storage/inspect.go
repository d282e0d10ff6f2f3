package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/adanyl0v/go-todo-board/internal/models"
)

// Report describes what is currently in the store.
type Report struct {
	UsersInitialized bool     `json:"usersInitialized"`
	TasksInitialized bool     `json:"tasksInitialized"`
	UserCount        int      `json:"userCount"`
	TaskCount        int      `json:"taskCount"`
	Errors           []string `json:"errors"`
}

// Verify checks both collections without the silent recovery Users and
// Tasks apply, so broken data shows up as errors.
func (s *Store) Verify() Report {
	report := Report{Errors: []string{}}

	report.UserCount, report.Errors = s.verifyCollection(KeyUsers, report.Errors)
	report.UsersInitialized = report.UserCount > 0

	report.TaskCount, report.Errors = s.verifyCollection(KeyTasks, report.Errors)
	report.TasksInitialized = report.TaskCount > 0

	return report
}

func (s *Store) verifyCollection(key string, errs []string) (int, []string) {
	raw, ok, err := s.backend.Get(key)
	if err != nil {
		return 0, append(errs, fmt.Sprintf("%s: read failed: %v", key, err))
	}
	if !ok {
		return 0, append(errs, fmt.Sprintf("%s data not found", key))
	}

	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return 0, append(errs, fmt.Sprintf("error parsing %s data: %v", key, err))
	}
	items, isArray := doc.([]any)
	if !isArray {
		return 0, append(errs, fmt.Sprintf("%s data is not an array", key))
	}

	if schema, ok := collectionSchemas[key]; ok {
		if err := schema.Validate(doc); err != nil {
			for _, v := range schemaViolations(err) {
				errs = append(errs, fmt.Sprintf("%s %s", key, v))
			}
		}
	}

	if err := decodeCollection(key, raw); err != nil {
		errs = append(errs, fmt.Sprintf("error decoding %s data: %v", key, err))
	}
	return len(items), errs
}

// decodeCollection runs the same typed decode Users and Tasks do.
func decodeCollection(key, raw string) error {
	switch key {
	case KeyUsers:
		var users []models.User
		return json.Unmarshal([]byte(raw), &users)
	case KeyTasks:
		var tasks []models.Task
		return json.Unmarshal([]byte(raw), &tasks)
	}
	return nil
}

// Dump writes every key and its pretty-printed value to w.
func (s *Store) Dump(w io.Writer) error {
	keys, err := s.backend.Keys()
	if err != nil {
		return fmt.Errorf("list keys: %w", err)
	}

	if _, err := fmt.Fprintf(w, "keys: %v\n", keys); err != nil {
		return err
	}
	for _, key := range keys {
		raw, _, err := s.backend.Get(key)
		if err != nil {
			return fmt.Errorf("read %s: %w", key, err)
		}

		var pretty bytes.Buffer
		if err := json.Indent(&pretty, []byte(raw), "", "  "); err != nil {
			// Not JSON (the token, or a broken collection): print as is.
			pretty.Reset()
			pretty.WriteString(raw)
		}
		if _, err := fmt.Fprintf(w, "\n[%s]\n%s\n", key, pretty.String()); err != nil {
			return err
		}
	}
	return nil
}
