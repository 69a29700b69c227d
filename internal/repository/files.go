package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/atinyakov/peerdex/internal/db"
	"github.com/atinyakov/peerdex/internal/models"
)

// PostgresFileRepository implements file advertisement persistence operations.
type PostgresFileRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
	// Gate serializes every store round-trip.
	Gate *db.Gate
}

// NewPostgresFileRepository creates a new PostgresFileRepository with the
// given database connection and serialization gate.
func NewPostgresFileRepository(database *sql.DB, gate *db.Gate) *PostgresFileRepository {
	return &PostgresFileRepository{DB: database, Gate: gate}
}

// CreateFile inserts one advertisement row, timestamped by the store, and
// fills in the assigned file_id. Duplicate advertisements are accepted and
// coexist as distinct rows.
func (r *PostgresFileRepository) CreateFile(ctx context.Context, file *models.File) error {
	err := r.Gate.Do(func() error {
		return r.DB.QueryRowContext(
			ctx,
			`INSERT INTO files (file_name, file_size, file_type, shared_by, ip_address, port)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 RETURNING file_id, upload_date`,
			file.Name, file.Size, file.Type, file.SharedBy, file.Address, file.Port,
		).Scan(&file.ID, &file.UploadedAt)
	})
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	return nil
}

// Search returns every advertisement whose file_name contains query as a
// substring (case-sensitive, as stored), optionally narrowed to an exact
// file_type match, joined with the advertiser's username. An empty query
// matches everything. No row order is guaranteed.
func (r *PostgresFileRepository) Search(ctx context.Context, query, fileType string) ([]models.SearchResult, error) {
	sqlText := `
		SELECT f.file_id, f.file_name, f.file_size, f.file_type, u.username, f.ip_address, f.port
		FROM files f
		JOIN users u ON f.shared_by = u.user_id
		WHERE f.file_name LIKE '%' || $1 || '%'`
	args := []any{query}

	if fileType != "" {
		sqlText += ` AND f.file_type = $2`
		args = append(args, fileType)
	}

	// Non-nil so an empty catalog serializes as [] rather than null.
	results := []models.SearchResult{}

	err := r.Gate.Do(func() error {
		rows, err := r.DB.QueryContext(ctx, sqlText, args...)
		if err != nil {
			return fmt.Errorf("search files: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var res models.SearchResult
			if err := rows.Scan(&res.FileID, &res.FileName, &res.FileSize, &res.FileType, &res.SharedBy, &res.Address, &res.Port); err != nil {
				return fmt.Errorf("scan: %w", err)
			}
			results = append(results, res)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}
