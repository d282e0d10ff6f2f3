package state

import "github.com/adanyl0v/go-todo-board/internal/models"

type AuthStatus string

const (
	AuthIdle          AuthStatus = "idle"
	AuthLoadingStatus AuthStatus = "loading"
	AuthAuthenticated AuthStatus = "authenticated"
	AuthFailed        AuthStatus = "error"
)

type AuthState struct {
	Status AuthStatus
	Token  string
	User   *models.User
	Error  string
}

// NewAuthState starts idle with whatever token survived the last run.
func NewAuthState(token string) AuthState {
	return AuthState{
		Status: AuthIdle,
		Token:  token,
	}
}

func (s AuthState) IsAuthenticated() bool {
	return s.Status == AuthAuthenticated
}

func (s AuthState) Loading() bool {
	return s.Status == AuthLoadingStatus
}

func ReduceAuth(s AuthState, action Action) AuthState {
	switch a := action.(type) {
	case AuthLoading:
		s.Status = AuthLoadingStatus
		s.Error = ""
	case AuthSuccess:
		user := a.User
		s.Status = AuthAuthenticated
		s.User = &user
	case LoginSuccess:
		user := a.User
		s.Status = AuthAuthenticated
		s.User = &user
		s.Token = a.Token
	case RegisterSuccess:
		user := a.User
		s.Status = AuthAuthenticated
		s.User = &user
		s.Token = a.Token
	case AuthError:
		s.Status = AuthFailed
		s.Error = a.Message
	case Logout:
		s.Status = AuthIdle
		s.Token = ""
		s.User = nil
	}
	return s
}
