package repository

import (
	"context"
	"database/sql"
	"strings"
	"sync"
	"time"

	"github.com/atinyakov/peerdex/internal/apperr"
	"github.com/atinyakov/peerdex/internal/models"
)

// MemoryRepository is an in-memory implementation of the user and file
// repositories, used by tests. Ids are monotonic and never reused.
type MemoryRepository struct {
	mu     sync.Mutex
	users  []models.User
	files  []models.File
	nextID int64
}

// NewMemoryRepository returns an empty MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{nextID: 1}
}

// CreateUser stores a new user, enforcing username uniqueness.
func (m *MemoryRepository) CreateUser(_ context.Context, username, passwordHash string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == username {
			return 0, apperr.ErrUsernameTaken
		}
	}

	id := m.nextID
	m.nextID++
	m.users = append(m.users, models.User{
		ID:           id,
		Username:     username,
		PasswordHash: passwordHash,
		RegisteredAt: time.Now(),
	})
	return id, nil
}

// GetByUsername fetches a user by login name. Returns sql.ErrNoRows when
// no such user exists, matching the Postgres repository.
func (m *MemoryRepository) GetByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == username {
			user := u
			return &user, nil
		}
	}
	return nil, sql.ErrNoRows
}

// UserExists reports whether a user with the given id exists.
func (m *MemoryRepository) UserExists(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.ID == id {
			return true, nil
		}
	}
	return false, nil
}

// CreateFile stores a new advertisement and assigns its id.
func (m *MemoryRepository) CreateFile(_ context.Context, file *models.File) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	file.ID = m.nextID
	m.nextID++
	file.UploadedAt = time.Now()
	m.files = append(m.files, *file)
	return nil
}

// Search filters advertisements by substring name match and optional exact
// type match, joined with the advertiser's username. Advertisements whose
// shared_by matches no user are skipped, mirroring the SQL inner join.
func (m *MemoryRepository) Search(_ context.Context, query, fileType string) ([]models.SearchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	results := []models.SearchResult{}
	for _, f := range m.files {
		if !strings.Contains(f.Name, query) {
			continue
		}
		if fileType != "" && f.Type != fileType {
			continue
		}
		var username string
		for _, u := range m.users {
			if u.ID == f.SharedBy {
				username = u.Username
				break
			}
		}
		if username == "" {
			continue
		}
		results = append(results, models.SearchResult{
			FileID:   f.ID,
			FileName: f.Name,
			FileSize: f.Size,
			FileType: f.Type,
			SharedBy: username,
			Address:  f.Address,
			Port:     f.Port,
		})
	}
	return results, nil
}
