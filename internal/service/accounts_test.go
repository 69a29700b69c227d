package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"

	"github.com/atinyakov/peerdex/internal/apperr"
	"github.com/atinyakov/peerdex/internal/models"
	"golang.org/x/crypto/bcrypt"
)

type mockUserRepo struct {
	CreateUserFunc    func(ctx context.Context, username, passwordHash string) (int64, error)
	GetByUsernameFunc func(ctx context.Context, username string) (*models.User, error)
}

func (m *mockUserRepo) CreateUser(ctx context.Context, username, passwordHash string) (int64, error) {
	return m.CreateUserFunc(ctx, username, passwordHash)
}
func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.GetByUsernameFunc(ctx, username)
}

func TestRegister_HashesPassword(t *testing.T) {
	var storedHash string
	repo := &mockUserRepo{
		CreateUserFunc: func(ctx context.Context, username, passwordHash string) (int64, error) {
			if username != "alice" {
				t.Errorf("CreateUser received username = %q; want %q", username, "alice")
			}
			storedHash = passwordHash
			return 1, nil
		},
	}
	svc := NewAccountService(repo, bcrypt.MinCost)

	id, err := svc.Register(context.Background(), "alice", "pw123")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if id != 1 {
		t.Errorf("Register id = %d; want 1", id)
	}
	if storedHash == "pw123" || storedHash == "" {
		t.Fatal("password was not hashed before storage")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte("pw123")); err != nil {
		t.Errorf("stored hash does not verify against the password: %v", err)
	}
}

func TestRegister_SaltIsPerCall(t *testing.T) {
	var hashes []string
	repo := &mockUserRepo{
		CreateUserFunc: func(ctx context.Context, username, passwordHash string) (int64, error) {
			hashes = append(hashes, passwordHash)
			return int64(len(hashes)), nil
		},
	}
	svc := NewAccountService(repo, bcrypt.MinCost)

	if _, err := svc.Register(context.Background(), "alice", "pw123"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Register(context.Background(), "bob", "pw123"); err != nil {
		t.Fatal(err)
	}
	if hashes[0] == hashes[1] {
		t.Error("identical passwords produced identical hashes; salt is not per-call")
	}
}

func TestRegister_Validation(t *testing.T) {
	repo := &mockUserRepo{
		CreateUserFunc: func(ctx context.Context, username, passwordHash string) (int64, error) {
			t.Fatal("store must not be touched on validation failure")
			return 0, nil
		},
	}
	svc := NewAccountService(repo, bcrypt.MinCost)

	for _, tc := range []struct{ username, password string }{
		{"", "pw"},
		{"alice", ""},
		{"", ""},
	} {
		if _, err := svc.Register(context.Background(), tc.username, tc.password); !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("Register(%q, %q) error = %v; want ErrValidation", tc.username, tc.password, err)
		}
	}
}

func TestRegister_UsernameTaken(t *testing.T) {
	repo := &mockUserRepo{
		CreateUserFunc: func(ctx context.Context, username, passwordHash string) (int64, error) {
			return 0, apperr.ErrUsernameTaken
		},
	}
	svc := NewAccountService(repo, bcrypt.MinCost)

	if _, err := svc.Register(context.Background(), "alice", "pw123"); !errors.Is(err, apperr.ErrUsernameTaken) {
		t.Errorf("Register error = %v; want ErrUsernameTaken", err)
	}
}

func TestLogin_Success(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("pw123"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	repo := &mockUserRepo{
		GetByUsernameFunc: func(ctx context.Context, username string) (*models.User, error) {
			return &models.User{ID: 1, Username: "alice", PasswordHash: string(hash)}, nil
		},
	}
	svc := NewAccountService(repo, bcrypt.MinCost)

	id, err := svc.Login(context.Background(), "alice", "pw123")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if id != 1 {
		t.Errorf("Login id = %d; want 1", id)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("pw123"), bcrypt.MinCost)
	repo := &mockUserRepo{
		GetByUsernameFunc: func(ctx context.Context, username string) (*models.User, error) {
			return &models.User{ID: 1, Username: "alice", PasswordHash: string(hash)}, nil
		},
	}
	svc := NewAccountService(repo, bcrypt.MinCost)

	if _, err := svc.Login(context.Background(), "alice", "wrong"); !errors.Is(err, apperr.ErrInvalidCredentials) {
		t.Errorf("Login error = %v; want ErrInvalidCredentials", err)
	}
}

// Unknown usernames yield the same error class as a wrong password so that
// responses cannot be used to enumerate accounts.
func TestLogin_UnknownUser(t *testing.T) {
	repo := &mockUserRepo{
		GetByUsernameFunc: func(ctx context.Context, username string) (*models.User, error) {
			return nil, sql.ErrNoRows
		},
	}
	svc := NewAccountService(repo, bcrypt.MinCost)

	if _, err := svc.Login(context.Background(), "ghost", "pw"); !errors.Is(err, apperr.ErrInvalidCredentials) {
		t.Errorf("Login error = %v; want ErrInvalidCredentials", err)
	}
}

func TestLogin_StoreFailure(t *testing.T) {
	wantErr := errors.New("db down")
	repo := &mockUserRepo{
		GetByUsernameFunc: func(ctx context.Context, username string) (*models.User, error) {
			return nil, wantErr
		},
	}
	svc := NewAccountService(repo, bcrypt.MinCost)

	if _, err := svc.Login(context.Background(), "alice", "pw"); !errors.Is(err, wantErr) {
		t.Errorf("Login error = %v; want %v", err, wantErr)
	}
}

// uniqueRepo enforces username uniqueness under its own lock, standing in
// for the database constraint behind the serialization gate.
type uniqueRepo struct {
	mu    sync.Mutex
	seen  map[string]bool
	next  int64
	users map[string]string
}

func (r *uniqueRepo) CreateUser(_ context.Context, username, passwordHash string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.seen[username] {
		return 0, apperr.ErrUsernameTaken
	}
	r.seen[username] = true
	r.users[username] = passwordHash
	r.next++
	return r.next, nil
}

func (r *uniqueRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	hash, ok := r.users[username]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &models.User{ID: r.next, Username: username, PasswordHash: hash}, nil
}

func TestRegister_ConcurrentDuplicates(t *testing.T) {
	repo := &uniqueRepo{seen: map[string]bool{}, users: map[string]string{}}
	svc := NewAccountService(repo, bcrypt.MinCost)

	const n = 16
	var wg sync.WaitGroup
	errs := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Register(context.Background(), "alice", "pw123")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, conflicts int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, apperr.ErrUsernameTaken):
			conflicts++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if ok != 1 || conflicts != n-1 {
		t.Errorf("got %d successes and %d conflicts; want 1 and %d", ok, conflicts, n-1)
	}
}
