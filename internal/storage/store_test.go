package storage

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/go-todo-board/internal/models"
)

func newTestStore(t *testing.T) (*Store, *MemoryBackend) {
	t.Helper()
	backend := NewMemoryBackend()
	return New(zerolog.Nop(), backend, true), backend
}

func TestStore_Load_MissingIsEmpty(t *testing.T) {
	store, _ := newTestStore(t)

	users := store.Users()
	require.NotNil(t, users)
	require.Empty(t, users)

	tasks := store.Tasks()
	require.NotNil(t, tasks)
	require.Empty(t, tasks)
}

func TestStore_Load_MalformedIsEmpty(t *testing.T) {
	cases := map[string]string{
		"bad json":       "{[",
		"not an array":   `{"id":"1"}`,
		"missing title":  `[{"id":"1","userId":"u"}]`,
		"bad priority":   `[{"id":"1","title":"t","userId":"u","priority":"urgent"}]`,
		"progress range": `[{"id":"1","title":"t","userId":"u","progress":150}]`,
		"date only due":  `[{"id":"1","title":"t","userId":"u","dueDate":"2024-05-01"}]`,
		"bad createdAt":  `[{"id":"1","title":"t","userId":"u","createdAt":"yesterday"}]`,
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			store, backend := newTestStore(t)
			require.NoError(t, backend.Set(KeyTasks, raw))

			tasks := store.Tasks()
			require.NotNil(t, tasks)
			require.Empty(t, tasks)
		})
	}
}

func TestStore_Load_SchemaValidationDisabled(t *testing.T) {
	backend := NewMemoryBackend()
	store := New(zerolog.Nop(), backend, false)
	require.NoError(t, backend.Set(KeyTasks, `[{"id":"1","userId":"u","priority":"urgent"}]`))

	tasks := store.Tasks()
	require.Len(t, tasks, 1)
	require.Equal(t, models.Priority("urgent"), tasks[0].Priority)
}

func TestStore_SaveAndLoadTasks(t *testing.T) {
	store, _ := newTestStore(t)
	due := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)

	in := []models.Task{
		{
			ID:        "1",
			Title:     "Buy milk",
			UserID:    "u1",
			CreatedAt: time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC),
			Priority:  models.PriorityHigh,
			DueDate:   &due,
			Category:  models.CategoryShopping,
			Progress:  40,
		},
	}
	require.NoError(t, store.SaveTasks(in))

	out := store.Tasks()
	require.Len(t, out, 1)
	require.Equal(t, "Buy milk", out[0].Title)
	require.Equal(t, models.PriorityHigh, out[0].Priority)
	require.NotNil(t, out[0].DueDate)
	require.True(t, due.Equal(*out[0].DueDate))
	require.Equal(t, 40, out[0].Progress)
}

func TestStore_SaveNilWritesEmptyArray(t *testing.T) {
	store, backend := newTestStore(t)
	require.NoError(t, store.SaveUsers(nil))

	raw, ok, err := backend.Get(KeyUsers)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "[]", raw)
}

func TestStore_UpdateTasks_ErrorWritesNothing(t *testing.T) {
	store, backend := newTestStore(t)
	require.NoError(t, store.SaveTasks([]models.Task{{ID: "1", Title: "a", UserID: "u"}}))
	before, _, _ := backend.Get(KeyTasks)

	errBoom := errors.New("boom")
	err := store.UpdateTasks(func(tasks []models.Task) ([]models.Task, error) {
		return append(tasks, models.Task{ID: "2", Title: "b", UserID: "u"}), errBoom
	})
	require.ErrorIs(t, err, errBoom)

	after, _, _ := backend.Get(KeyTasks)
	require.Equal(t, before, after)
}

func TestStore_UpdateUsers_Appends(t *testing.T) {
	store, _ := newTestStore(t)

	for _, id := range []string{"1", "2"} {
		err := store.UpdateUsers(func(users []models.User) ([]models.User, error) {
			return append(users, models.User{ID: id, Email: id + "@example.com"}), nil
		})
		require.NoError(t, err)
	}

	users := store.Users()
	require.Len(t, users, 2)
	require.Equal(t, "1", users[0].ID)
	require.Equal(t, "2", users[1].ID)
}

func TestStore_Token(t *testing.T) {
	store, _ := newTestStore(t)
	require.Empty(t, store.Token())

	require.NoError(t, store.SaveToken("tok"))
	require.Equal(t, "tok", store.Token())

	require.NoError(t, store.ClearToken())
	require.Empty(t, store.Token())
}

func TestStore_Verify(t *testing.T) {
	store, backend := newTestStore(t)

	report := store.Verify()
	require.False(t, report.UsersInitialized)
	require.False(t, report.TasksInitialized)
	require.Contains(t, report.Errors, "users data not found")
	require.Contains(t, report.Errors, "tasks data not found")

	require.NoError(t, store.SaveUsers([]models.User{{ID: "1", Username: "demo", Email: "demo@example.com"}}))
	require.NoError(t, backend.Set(KeyTasks, `{"oops":true}`))

	report = store.Verify()
	require.True(t, report.UsersInitialized)
	require.Equal(t, 1, report.UserCount)
	require.False(t, report.TasksInitialized)
	require.Equal(t, []string{"tasks data is not an array"}, report.Errors)
}

func TestStore_Verify_SchemaViolations(t *testing.T) {
	store, backend := newTestStore(t)
	require.NoError(t, store.SaveUsers([]models.User{{ID: "1"}}))
	require.NoError(t, backend.Set(KeyTasks, `[{"id":"1","userId":"u"}]`))

	report := store.Verify()
	require.Equal(t, 1, report.TaskCount)
	require.NotEmpty(t, report.Errors)
	for _, e := range report.Errors {
		require.Contains(t, e, "tasks")
	}
}

func TestStore_Verify_FlagsUndecodableDates(t *testing.T) {
	const raw = `[{"id":"1","title":"Keep me","userId":"u","dueDate":"2024-05-01"}]`

	for name, validate := range map[string]bool{"schema": true, "decode only": false} {
		t.Run(name, func(t *testing.T) {
			backend := NewMemoryBackend()
			store := New(zerolog.Nop(), backend, validate)
			require.NoError(t, store.SaveUsers([]models.User{{ID: "u", Email: "u@example.com"}}))
			require.NoError(t, backend.Set(KeyTasks, raw))

			report := store.Verify()
			require.Equal(t, 1, report.TaskCount)
			require.NotEmpty(t, report.Errors)
			require.Empty(t, store.Tasks())
		})
	}
}

func TestStore_Verify_AcceptsSavedTimestamps(t *testing.T) {
	store, _ := newTestStore(t)
	now := time.Date(2026, 10, 18, 9, 30, 15, 123456789, time.FixedZone("CEST", 2*3600))
	require.NoError(t, store.SaveUsers([]models.User{{ID: "u", Email: "u@example.com", CreatedAt: now}}))
	require.NoError(t, store.SaveTasks([]models.Task{{
		ID: "1", Title: "a", UserID: "u",
		CreatedAt: now, UpdatedAt: &now, DueDate: &now,
	}}))

	report := store.Verify()
	require.Empty(t, report.Errors)
	require.Len(t, store.Tasks(), 1)
}

func TestStore_Dump(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.SaveToken("tok"))
	require.NoError(t, store.SaveTasks([]models.Task{{ID: "1", Title: "a", UserID: "u"}}))

	var buf bytes.Buffer
	require.NoError(t, store.Dump(&buf))

	out := buf.String()
	require.Contains(t, out, "keys: [tasks token]")
	require.Contains(t, out, "[token]\ntok")
	require.Contains(t, out, `"title": "a"`)
}
