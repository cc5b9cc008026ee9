package services

import (
	"context"
	"errors"
	"time"

	"github.com/mkravets/go-task-api/internal/models"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenMalformed     = errors.New("token malformed")
	ErrUnknownSubject     = errors.New("token subject not found")
	ErrInvalidTaskStatus  = errors.New("invalid task status")
)

type AuthService interface {
	// Register creates a user with a hashed password and a fresh ID.
	//
	// It returns ErrEmailTaken if the email is already registered.
	Register(ctx context.Context, params RegisterParams) (*models.User, error)

	// Authenticate looks the user up by email and verifies the password.
	//
	// It returns ErrInvalidCredentials both when no such user exists and
	// when the password does not match, so callers cannot probe for
	// registered emails.
	Authenticate(ctx context.Context, email, password string) (*models.User, error)

	// IssueToken signs a bearer token bound to the given user ID.
	IssueToken(userID string) (token string, expiresAt time.Time, err error)

	// ValidateToken verifies the token signature and expiry and resolves
	// the embedded subject to an existing user.
	//
	// It returns ErrTokenExpired, ErrTokenMalformed or ErrUnknownSubject.
	ValidateToken(ctx context.Context, token string) (userID string, err error)
}

type TaskService interface {
	// CreateTask persists a task for its owner, defaulting status to
	// pending and priority to 1 when unset.
	//
	// It returns ErrInvalidTaskStatus if the status is outside the enum.
	CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error)

	// ListTasks returns the owner's tasks after filtering, sorting and
	// pagination. Results may be served from cache within the cache TTL.
	ListTasks(ctx context.Context, params ListTasksParams) ([]*models.Task, error)

	// TopPriorityTasks returns up to n of the owner's tasks ordered by
	// priority descending, ties broken by insertion order.
	TopPriorityTasks(ctx context.Context, userID string, n int) ([]*models.Task, error)
}

type RegisterParams struct {
	Email    string
	Password string
}

type CreateTaskParams struct {
	UserID      string
	Title       string
	Description string
	Status      string
	Priority    *int
}

type ListTasksParams struct {
	UserID    string
	Skip      int
	Limit     int
	SortBy    string
	SortOrder string
	Search    string
	Status    string
}
