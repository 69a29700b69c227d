// Package service provides the business logic of the directory service,
// delegating persistence to repository interfaces.
package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/atinyakov/peerdex/internal/apperr"
	"github.com/atinyakov/peerdex/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository defines the persistence operations
// required by the account service.
type UserRepository interface {
	// CreateUser stores a new user and returns the assigned user_id.
	// Returns apperr.ErrUsernameTaken when the username is already present.
	CreateUser(ctx context.Context, username, passwordHash string) (int64, error)
	// GetByUsername fetches a user by login name, or sql.ErrNoRows if absent.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// AccountService implements account registration and login.
type AccountService struct {
	// repo performs the data-layer operations.
	repo UserRepository
	// cost is the bcrypt work factor applied to new passwords.
	cost int
}

// NewAccountService constructs an AccountService using the provided
// repository and bcrypt cost. Costs below bcrypt.MinCost fall back to
// bcrypt.DefaultCost.
func NewAccountService(repo UserRepository, cost int) *AccountService {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &AccountService{repo: repo, cost: cost}
}

// Register hashes the password with a randomized per-call salt and creates
// a new user. Returns the assigned user_id.
func (s *AccountService) Register(ctx context.Context, username, password string) (int64, error) {
	if username == "" || password == "" {
		return 0, apperr.ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return 0, err
	}

	return s.repo.CreateUser(ctx, username, string(hash))
}

// Login verifies the supplied credentials against the stored hash and
// returns the matched user_id. An unknown username and a wrong password
// both yield apperr.ErrInvalidCredentials.
func (s *AccountService) Login(ctx context.Context, username, password string) (int64, error) {
	if username == "" || password == "" {
		return 0, apperr.ErrValidation
	}

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, apperr.ErrInvalidCredentials
		}
		return 0, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return 0, apperr.ErrInvalidCredentials
	}

	return user.ID, nil
}
