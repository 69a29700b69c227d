package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/atinyakov/peerdex/internal/apperr"
	"github.com/atinyakov/peerdex/internal/models"
)

func TestMemoryRepository_UserLifecycle(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	id1, err := repo.CreateUser(ctx, "alice", "hash1")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	id2, err := repo.CreateUser(ctx, "bob", "hash2")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if id2 <= id1 {
		t.Errorf("ids not strictly increasing: %d then %d", id1, id2)
	}

	if _, err := repo.CreateUser(ctx, "alice", "other"); !errors.Is(err, apperr.ErrUsernameTaken) {
		t.Errorf("duplicate CreateUser error = %v; want ErrUsernameTaken", err)
	}

	user, err := repo.GetByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if user.ID != id1 || user.PasswordHash != "hash1" {
		t.Errorf("unexpected user: %+v", user)
	}

	if _, err := repo.GetByUsername(ctx, "ghost"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("GetByUsername(ghost) error = %v; want sql.ErrNoRows", err)
	}

	exists, err := repo.UserExists(ctx, id1)
	if err != nil || !exists {
		t.Errorf("UserExists(%d) = %v, %v; want true, nil", id1, exists, err)
	}
	exists, _ = repo.UserExists(ctx, 999)
	if exists {
		t.Error("UserExists(999) = true; want false")
	}
}

func TestMemoryRepository_SearchJoinsAdvertiser(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	aliceID, _ := repo.CreateUser(ctx, "alice", "h")

	if err := repo.CreateFile(ctx, &models.File{Name: "movie.mp4", Type: "mp4", SharedBy: aliceID, Address: "10.0.0.5", Port: 6000}); err != nil {
		t.Fatalf("CreateFile: %v", err)
	}
	// Advertisement from an unknown user is stored but never surfaces,
	// mirroring the SQL inner join.
	if err := repo.CreateFile(ctx, &models.File{Name: "movie.avi", Type: "avi", SharedBy: 42, Address: "10.0.0.9", Port: 7000}); err != nil {
		t.Fatalf("CreateFile: %v", err)
	}

	results, err := repo.Search(ctx, "movie", "")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results; want 1", len(results))
	}
	if results[0].SharedBy != "alice" || results[0].FileName != "movie.mp4" {
		t.Errorf("unexpected result: %+v", results[0])
	}

	byType, err := repo.Search(ctx, "", "avi")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(byType) != 0 {
		t.Errorf("type filter surfaced orphan advertisement: %v", byType)
	}

	none, err := repo.Search(ctx, "nomatch", "")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Errorf("Search(nomatch) = %v; want empty non-nil slice", none)
	}
}
