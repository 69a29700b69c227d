// Package repository provides persistence implementations for the directory
// service against a PostgreSQL database.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atinyakov/peerdex/internal/apperr"
	"github.com/atinyakov/peerdex/internal/db"
	"github.com/atinyakov/peerdex/internal/models"
	"github.com/lib/pq"
)

// uniqueViolation is the PostgreSQL error code for a unique constraint breach.
const uniqueViolation = "23505"

// PostgresUserRepository implements user persistence operations.
type PostgresUserRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
	// Gate serializes every store round-trip.
	Gate *db.Gate
}

// NewPostgresUserRepository creates a new PostgresUserRepository with the
// given database connection and serialization gate.
func NewPostgresUserRepository(database *sql.DB, gate *db.Gate) *PostgresUserRepository {
	return &PostgresUserRepository{DB: database, Gate: gate}
}

// CreateUser inserts a new user row and returns the assigned user_id.
// A duplicate username is rejected by the UNIQUE constraint and reported
// as apperr.ErrUsernameTaken; no partial row persists.
func (r *PostgresUserRepository) CreateUser(ctx context.Context, username, passwordHash string) (int64, error) {
	var id int64
	err := r.Gate.Do(func() error {
		return r.DB.QueryRowContext(
			ctx,
			`INSERT INTO users (username, password_hash) VALUES ($1, $2) RETURNING user_id`,
			username, passwordHash,
		).Scan(&id)
	})
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return 0, apperr.ErrUsernameTaken
		}
		return 0, fmt.Errorf("create user: %w", err)
	}
	return id, nil
}

// GetByUsername fetches a user by login name. Returns sql.ErrNoRows when
// no such user exists.
func (r *PostgresUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.Gate.Do(func() error {
		return r.DB.QueryRowContext(
			ctx,
			`SELECT user_id, username, password_hash, registration_date FROM users WHERE username = $1`,
			username,
		).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.RegisteredAt)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return &user, nil
}

// UserExists checks whether a user with the specified id exists in the database.
func (r *PostgresUserRepository) UserExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.Gate.Do(func() error {
		return r.DB.QueryRowContext(
			ctx,
			`SELECT EXISTS(SELECT 1 FROM users WHERE user_id = $1)`,
			id,
		).Scan(&exists)
	})
	return exists, err
}
