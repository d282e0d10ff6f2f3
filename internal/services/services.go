package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/adanyl0v/go-todo-board/internal/models"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoToken            = errors.New("no token provided")
	ErrInvalidToken       = errors.New("invalid token")

	ErrTaskNotFound    = errors.New("task not found")
	ErrMissingTaskID   = errors.New("task id is required")
	ErrMissingUserID   = errors.New("user id is required")
	ErrInvalidTitle    = errors.New("task title must not be empty")
	ErrInvalidPriority = errors.New("invalid task priority")
	ErrInvalidProgress = errors.New("task progress must be between 0 and 100")
)

type AuthService interface {
	// Register a user with the given username, email and password.
	//
	// It generates a unique ID, stores the user, issues a token
	// and persists it as the active session.
	//
	// It returns ErrUserAlreadyExists if a user with the given
	// email already exists. The stored users are left untouched
	// in that case.
	Register(ctx context.Context, params RegisterParams) (*AuthResult, error)

	// Login authenticates the user by email and password, issues a
	// new token and persists it as the active session.
	//
	// It returns ErrInvalidCredentials whether the email is
	// unknown or the password doesn't match.
	Login(ctx context.Context, params LoginParams) (*AuthResult, error)

	// GetCurrentUser resolves the user the token was issued to.
	//
	// It returns ErrNoToken for an empty token, ErrUserNotFound if
	// there are no users or the token's user is gone, and
	// ErrInvalidToken if the token can't be parsed or is expired.
	GetCurrentUser(ctx context.Context, token string) (*models.User, error)

	// Logout discards the persisted session token.
	Logout(ctx context.Context) error

	// ParseToken parses the given token and returns its claims.
	ParseToken(token string) (*jwt.RegisteredClaims, error)
}

type TaskService interface {
	// GetTasksByUserID returns every task owned by the user, in
	// storage order. An empty user ID yields an empty slice.
	GetTasksByUserID(ctx context.Context, userID string) ([]models.Task, error)

	// CreateTask stores a new task filled with defaults for the
	// omitted fields. It returns ErrMissingUserID without an owner.
	CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error)

	// UpdateTask applies the set fields of params to the task and
	// stamps its update time. It returns ErrTaskNotFound if there
	// is no task with params.ID.
	UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error)

	// DeleteTask removes the task. It returns ErrTaskNotFound if
	// there is no task with the given ID.
	DeleteTask(ctx context.Context, taskID string) error
}

type RegisterParams struct {
	Username string
	Email    string
	Password string
}

type LoginParams struct {
	Email    string
	Password string
}

type AuthResult struct {
	User           models.User
	Token          string
	TokenExpiresAt time.Time
}

type CreateTaskParams struct {
	UserID      string
	Title       string
	Description string
	Priority    models.Priority
	DueDate     *time.Time
	Category    string
}

// UpdateTaskParams lists every field an update may touch. Nil pointers
// are left as they are. DueDateSet with a nil DueDate clears the date.
type UpdateTaskParams struct {
	ID          string
	Title       *string
	Description *string
	Completed   *bool
	Priority    *models.Priority
	DueDate     *time.Time
	DueDateSet  bool
	Category    *string
	Progress    *int
}

func (p UpdateTaskParams) empty() bool {
	return p.Title == nil &&
		p.Description == nil &&
		p.Completed == nil &&
		p.Priority == nil &&
		!p.DueDateSet &&
		p.Category == nil &&
		p.Progress == nil
}

// simulateLatency blocks for d, or until ctx is done.
func simulateLatency(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
