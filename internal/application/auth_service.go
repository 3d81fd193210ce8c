package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/avenstek/avenstek-api/internal/domain/entity"
	repo "github.com/avenstek/avenstek-api/internal/domain/repository"
	"github.com/avenstek/avenstek-api/pkg/helpers"
)

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// TokenIssuer signs session tokens bound to a user.
type TokenIssuer interface {
	Issue(userID, email string) (string, time.Time, error)
}

// AuthService runs registration and login against the user store.
type AuthService struct {
	Repo   repo.UserRepository
	Hasher PasswordHasher
	Tokens TokenIssuer
	Logger *logrus.Logger

	dummyOnce sync.Once
	dummyHash string
}

// AuthResult is what a successful register or login hands back.
type AuthResult struct {
	User      *entity.User
	Token     string
	ExpiresAt time.Time
}

func NewAuthService(repo repo.UserRepository, hasher PasswordHasher, tokens TokenIssuer, logger *logrus.Logger) *AuthService {
	return &AuthService{
		Repo:   repo,
		Hasher: hasher,
		Tokens: tokens,
		Logger: logger,
	}
}

func validateCredentials(email, password string) error {
	if email == "" || password == "" {
		return errMissingCredentials
	}
	return nil
}

// Register creates a user with role "user" and issues a token for it.
func (s *AuthService) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}
	if len(password) > helpers.MaxPasswordBytes {
		return nil, errPasswordTooLong
	}

	existing, err := s.Repo.GetByEmail(ctx, email)
	switch {
	case err == nil && existing != nil:
		return nil, ErrUserExists
	case err != nil && !errors.Is(err, repo.ErrNotFound):
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &entity.User{
		Email:        email,
		PasswordHash: hash,
		Role:         entity.RoleUser,
	}
	// The lookup above is only a fast path; a concurrent register can still
	// win the insert, which the store reports as a duplicate.
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	res, err := s.issue(u)
	if err != nil {
		return nil, err
	}
	helpers.LogInfo(s.Logger, "user registered", logrus.Fields{"user_id": u.ID, "email": u.Email})
	return res, nil
}

// Login checks credentials and issues a token. Unknown email and wrong
// password both return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}
	// bcrypt only compares the first 72 bytes, so a longer input could match
	// a stored 72-byte password it merely starts with.
	if len(password) > helpers.MaxPasswordBytes {
		s.burnVerify(password[:helpers.MaxPasswordBytes])
		return nil, ErrInvalidCredentials
	}

	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			s.burnVerify(password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if !s.Hasher.Verify(password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return s.issue(u)
}

// Logout acknowledges the request. Tokens are not tracked server side, so
// there is nothing to invalidate.
func (s *AuthService) Logout(ctx context.Context) error {
	return nil
}

func (s *AuthService) issue(u *entity.User) (*AuthResult, error) {
	token, exp, err := s.Tokens.Issue(u.ID, u.Email)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("issue token failed")
		}
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{User: u, Token: token, ExpiresAt: exp}, nil
}

// burnVerify runs a comparison against a throwaway hash so a miss on the
// email lookup takes about as long as a wrong password.
func (s *AuthService) burnVerify(password string) {
	s.dummyOnce.Do(func() {
		h, err := s.Hasher.Hash("avenstek-dummy-password")
		if err == nil {
			s.dummyHash = h
		}
	})
	if s.dummyHash != "" {
		_ = s.Hasher.Verify(password, s.dummyHash)
	}
}
