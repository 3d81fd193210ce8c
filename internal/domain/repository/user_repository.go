package repository

import (
	"context"
	"errors"

	"github.com/avenstek/avenstek-api/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned by Create when the email is already taken.
	ErrDuplicateEmail = errors.New("email already exists")
)

// UserRepository defines the interface for user-related database operations.
// Create must enforce email uniqueness atomically and report a clash as
// ErrDuplicateEmail; on success it fills in ID and CreatedAt.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
