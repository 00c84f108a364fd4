package repository

import (
	"context"
	"errors"

	"github.com/poolmvp/usersvc/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no row matches the requested id.
	ErrNotFound = errors.New("user not found")

	// ErrDuplicateEmail is returned when an insert violates the unique
	// constraint on email. The constraint is the authoritative uniqueness
	// check; EmailExists is only a best-effort pre-check.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository defines the interface for user-related database operations.
// Each operation borrows one pooled connection for its duration and returns
// it before the call completes, on every exit path.
type UserRepository interface {
	List(ctx context.Context) ([]*entity.User, error)
	GetByID(ctx context.Context, id int) (*entity.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, name, email string) (*entity.User, error)
}
