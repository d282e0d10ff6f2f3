package state

import "github.com/adanyl0v/go-todo-board/internal/models"

// Action is anything the reducers understand. The set is closed.
type Action interface {
	action()
}

type (
	AuthLoading struct{}
	AuthSuccess struct{ User models.User }
	AuthError   struct{ Message string }
	Logout      struct{}
)

type LoginSuccess struct {
	User  models.User
	Token string
}

type RegisterSuccess struct {
	User  models.User
	Token string
}

type (
	TaskLoading      struct{}
	TasksLoaded      struct{ Tasks []models.Task }
	TaskAdded        struct{ Task models.Task }
	TaskUpdated      struct{ Task models.Task }
	TaskDeleted      struct{ ID string }
	TaskError        struct{ Message string }
	SetCurrentTask   struct{ Task models.Task }
	ClearCurrentTask struct{}
	FilterTasks      struct{ Text string }
	ClearFilter      struct{}
	SetTaskCategory  struct{ Category string }
)

func (AuthLoading) action()     {}
func (AuthSuccess) action()     {}
func (LoginSuccess) action()    {}
func (RegisterSuccess) action() {}
func (AuthError) action()       {}
func (Logout) action()          {}

func (TaskLoading) action()      {}
func (TasksLoaded) action()      {}
func (TaskAdded) action()        {}
func (TaskUpdated) action()      {}
func (TaskDeleted) action()      {}
func (TaskError) action()        {}
func (SetCurrentTask) action()   {}
func (ClearCurrentTask) action() {}
func (FilterTasks) action()      {}
func (ClearFilter) action()      {}
func (SetTaskCategory) action()  {}
