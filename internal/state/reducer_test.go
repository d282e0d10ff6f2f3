package state

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/go-todo-board/internal/models"
)

func sampleTasks() []models.Task {
	return []models.Task{
		{ID: "1", Title: "Buy milk", Description: "Semi-skimmed", Priority: models.PriorityHigh, Category: models.CategoryShopping},
		{ID: "2", Title: "Walk dog", Description: "Around the park", Priority: models.PriorityLow, Category: models.CategoryPersonal, Completed: true},
		{ID: "3", Title: "Write report", Description: "Quarterly MILK sales", Priority: models.PriorityMedium, Category: models.CategoryWork},
	}
}

func TestReduceAuth_Lifecycle(t *testing.T) {
	s := NewAuthState("")
	require.Equal(t, AuthIdle, s.Status)

	s = ReduceAuth(s, AuthLoading{})
	require.True(t, s.Loading())

	s = ReduceAuth(s, AuthError{Message: "invalid email or password"})
	require.Equal(t, AuthFailed, s.Status)
	require.Equal(t, "invalid email or password", s.Error)

	s = ReduceAuth(s, AuthLoading{})
	require.Empty(t, s.Error)

	s = ReduceAuth(s, LoginSuccess{User: models.User{ID: "u1"}, Token: "tok"})
	require.True(t, s.IsAuthenticated())
	require.Equal(t, "tok", s.Token)
	require.Equal(t, "u1", s.User.ID)

	s = ReduceAuth(s, Logout{})
	require.Equal(t, AuthIdle, s.Status)
	require.Empty(t, s.Token)
	require.Nil(t, s.User)
}

func TestReduceAuth_RegisterAndLoadUser(t *testing.T) {
	s := ReduceAuth(NewAuthState(""), RegisterSuccess{User: models.User{ID: "u1"}, Token: "tok"})
	require.True(t, s.IsAuthenticated())
	require.Equal(t, "tok", s.Token)

	s = ReduceAuth(NewAuthState("persisted"), AuthSuccess{User: models.User{ID: "u2"}})
	require.True(t, s.IsAuthenticated())
	require.Equal(t, "persisted", s.Token)
	require.Equal(t, "u2", s.User.ID)
}

func TestReduceTask_LoadAddUpdateDelete(t *testing.T) {
	s := NewTaskState()
	require.NotNil(t, s.Tasks)
	require.Equal(t, models.CategoryAll, s.Category)
	require.Equal(t, models.DefaultCategories(), s.Categories)

	s = ReduceTask(s, TaskLoading{})
	require.True(t, s.Loading)

	s = ReduceTask(s, TasksLoaded{Tasks: sampleTasks()})
	require.False(t, s.Loading)
	require.Len(t, s.Tasks, 3)

	s = ReduceTask(s, TaskAdded{Task: models.Task{ID: "4", Title: "New"}})
	require.Len(t, s.Tasks, 4)
	require.Equal(t, "4", s.Tasks[0].ID, "added tasks go first")

	s = ReduceTask(s, SetCurrentTask{Task: s.Tasks[1]})
	require.Equal(t, "1", s.Current.ID)

	updated := s.Tasks[1]
	updated.Title = "Buy oat milk"
	s = ReduceTask(s, TaskUpdated{Task: updated})
	require.Equal(t, "Buy oat milk", s.Tasks[1].Title)
	require.Equal(t, "Buy oat milk", s.Current.Title)

	s = ReduceTask(s, TaskDeleted{ID: "1"})
	require.Len(t, s.Tasks, 3)
	require.Nil(t, s.Current)
	for _, task := range s.Tasks {
		require.NotEqual(t, "1", task.ID)
	}
}

func TestReduceTask_InvalidPayloads(t *testing.T) {
	s := ReduceTask(NewTaskState(), TasksLoaded{Tasks: sampleTasks()})

	cases := map[string]Action{
		"add without id":    TaskAdded{Task: models.Task{Title: "x"}},
		"update without id": TaskUpdated{Task: models.Task{Title: "x"}},
		"delete without id": TaskDeleted{},
	}
	for name, action := range cases {
		t.Run(name, func(t *testing.T) {
			next := ReduceTask(s, action)
			require.NotEmpty(t, next.Error)
			require.Equal(t, s.Tasks, next.Tasks)
		})
	}
}

func TestReduceTask_DoesNotMutatePreviousState(t *testing.T) {
	prev := ReduceTask(NewTaskState(), TasksLoaded{Tasks: sampleTasks()})

	updated := prev.Tasks[0]
	updated.Title = "changed"
	_ = ReduceTask(prev, TaskUpdated{Task: updated})
	_ = ReduceTask(prev, TaskDeleted{ID: "2"})

	require.Equal(t, "Buy milk", prev.Tasks[0].Title)
	require.Len(t, prev.Tasks, 3)
}

func TestReduceTask_ErrorAndLogout(t *testing.T) {
	s := ReduceTask(NewTaskState(), TasksLoaded{Tasks: sampleTasks()})
	s = ReduceTask(s, FilterTasks{Text: "milk"})
	s = ReduceTask(s, TaskError{Message: "Failed to get tasks: boom"})
	require.Equal(t, "Failed to get tasks: boom", s.Error)

	s = ReduceTask(s, Logout{})
	require.Equal(t, NewTaskState(), s)
}

func TestFilter_Milk(t *testing.T) {
	tasks := []models.Task{
		{ID: "1", Title: "Buy milk"},
		{ID: "2", Title: "Walk dog"},
	}
	s := ReduceTask(NewTaskState(), TasksLoaded{Tasks: tasks})
	s = ReduceTask(s, FilterTasks{Text: "milk"})

	filtered := s.Filtered()
	require.Len(t, filtered, 1)
	require.Equal(t, "1", filtered[0].ID)
}

func TestFilter_CaseInsensitiveOverTitleAndDescription(t *testing.T) {
	s := ReduceTask(NewTaskState(), TasksLoaded{Tasks: sampleTasks()})
	s = ReduceTask(s, FilterTasks{Text: "MiLk"})

	filtered := s.Filtered()
	require.Len(t, filtered, 2)
	require.Equal(t, "1", filtered[0].ID)
	require.Equal(t, "3", filtered[1].ID)
}

func TestFilter_ClearRestoresExactList(t *testing.T) {
	s := ReduceTask(NewTaskState(), TasksLoaded{Tasks: sampleTasks()})
	full := s.Filtered()

	s = ReduceTask(s, FilterTasks{Text: "dog"})
	require.Len(t, s.Filtered(), 1)

	s = ReduceTask(s, ClearFilter{})
	require.False(t, s.Filtering)
	require.Empty(t, s.Filter)
	require.Equal(t, full, s.Filtered())
	require.Equal(t, sampleTasks(), s.Filtered())
}

func TestVisible_CombinesFilters(t *testing.T) {
	s := ReduceTask(NewTaskState(), TasksLoaded{Tasks: sampleTasks()})

	require.Len(t, s.Visible(ViewAll), 3)
	require.Len(t, s.Visible(ViewActive), 2)
	require.Len(t, s.Visible(ViewCompleted), 1)

	s = ReduceTask(s, SetTaskCategory{Category: models.CategoryWork})
	visible := s.Visible(ViewAll)
	require.Len(t, visible, 1)
	require.Equal(t, "3", visible[0].ID)

	s = ReduceTask(s, FilterTasks{Text: "milk"})
	s = ReduceTask(s, SetTaskCategory{Category: models.CategoryShopping})
	visible = s.Visible(ViewActive)
	require.Len(t, visible, 1)
	require.Equal(t, "1", visible[0].ID)

	s = ReduceTask(s, SetTaskCategory{})
	require.Equal(t, models.CategoryAll, s.Category)
	require.Len(t, s.Visible(ViewAll), 2)
}

func TestParseView(t *testing.T) {
	v, ok := ParseView("completed")
	require.True(t, ok)
	require.Equal(t, ViewCompleted, v)

	_, ok = ParseView("archived")
	require.False(t, ok)
}

func TestComputeStats(t *testing.T) {
	require.Equal(t, Stats{}, ComputeStats(nil))

	st := ComputeStats(sampleTasks())
	require.Equal(t, 3, st.Total)
	require.Equal(t, 1, st.Completed)
	require.Equal(t, 2, st.Pending)
	require.Equal(t, 1, st.HighPriority)
	require.InDelta(t, 33.33, st.CompletionRate, 0.01)
}
