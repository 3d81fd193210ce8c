// Package memory holds process-local repositories for development and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/avenstek/avenstek-api/internal/domain/entity"
	"github.com/avenstek/avenstek-api/internal/domain/repository"
)

// UserRepository keeps users in a map keyed by email. Create checks and
// inserts under one lock, so uniqueness holds under concurrent registration.
type UserRepository struct {
	mu      sync.RWMutex
	byEmail map[string]entity.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{byEmail: make(map[string]entity.User)}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[u.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now().UTC()
	if u.Role == "" {
		u.Role = entity.RoleUser
	}
	r.byEmail[u.Email] = *u
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

// Len returns the number of stored users.
func (r *UserRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byEmail)
}

var _ repository.UserRepository = (*UserRepository)(nil)
