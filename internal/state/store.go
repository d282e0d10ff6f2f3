// Package state holds the application state in two slices, auth and
// task, changed only by dispatching actions through pure reducers.
package state

import "sync"

type State struct {
	Auth AuthState
	Task TaskState
}

func NewState(token string) State {
	return State{
		Auth: NewAuthState(token),
		Task: NewTaskState(),
	}
}

func Reduce(s State, action Action) State {
	return State{
		Auth: ReduceAuth(s.Auth, action),
		Task: ReduceTask(s.Task, action),
	}
}

type Listener func(State)

type Store struct {
	mu        sync.RWMutex
	state     State
	listeners map[int]Listener
	nextID    int
}

func NewStore(initial State) *Store {
	return &Store{
		state:     initial,
		listeners: make(map[int]Listener),
	}
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch reduces the action into the state and then notifies the
// listeners outside the lock, so a listener may dispatch again.
func (s *Store) Dispatch(action Action) {
	s.mu.Lock()
	s.state = Reduce(s.state, action)
	next := s.state
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(next)
	}
}

// Subscribe registers fn for every dispatch. Call the returned func to
// stop receiving updates.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}
