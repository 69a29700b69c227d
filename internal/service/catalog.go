package service

import (
	"context"

	"github.com/atinyakov/peerdex/internal/apperr"
	"github.com/atinyakov/peerdex/internal/models"
)

// FileRepository defines the persistence operations needed by the CatalogService.
type FileRepository interface {
	// CreateFile stores one advertisement and fills in its assigned file_id.
	CreateFile(ctx context.Context, file *models.File) error
	// Search filters advertisements by substring name match and optional
	// exact type match, joined with the advertiser's username.
	Search(ctx context.Context, query, fileType string) ([]models.SearchResult, error)
}

// OwnerChecker reports whether a user id exists. Used only when owner
// enforcement is enabled.
type OwnerChecker interface {
	UserExists(ctx context.Context, id int64) (bool, error)
}

// CatalogService implements file advertisement registration and search.
type CatalogService struct {
	files  FileRepository
	owners OwnerChecker
	// enforceOwners rejects advertisements whose shared_by references no
	// existing user. Off by default: the original service trusted clients
	// and accepted any shared_by.
	enforceOwners bool
}

// NewCatalogService constructs a CatalogService with the provided
// repositories. When enforceOwners is true, RegisterFile verifies that
// shared_by references an existing user before inserting.
func NewCatalogService(files FileRepository, owners OwnerChecker, enforceOwners bool) *CatalogService {
	return &CatalogService{files: files, owners: owners, enforceOwners: enforceOwners}
}

// RegisterFile records one advertisement. Name, shared_by, address and port
// are required; size and type are advisory and may be zero.
func (s *CatalogService) RegisterFile(ctx context.Context, file *models.File) error {
	if file.Name == "" || file.SharedBy == 0 || file.Address == "" || file.Port == 0 {
		return apperr.ErrValidation
	}

	if s.enforceOwners {
		exists, err := s.owners.UserExists(ctx, file.SharedBy)
		if err != nil {
			return err
		}
		if !exists {
			return apperr.ErrUnknownUser
		}
	}

	return s.files.CreateFile(ctx, file)
}

// Search returns every advertisement matching the query substring and,
// when fileType is non-empty, the exact file type. An empty result set is
// a success, not an error.
func (s *CatalogService) Search(ctx context.Context, query, fileType string) ([]models.SearchResult, error) {
	return s.files.Search(ctx, query, fileType)
}
