package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/DmitryKarasov/FileService/internal/common"
	"github.com/DmitryKarasov/FileService/internal/dbx"
	"github.com/DmitryKarasov/FileService/internal/server/models"
)

// uniqueViolation is the PostgreSQL error code raised when an insert or
// update breaks a unique constraint.
const uniqueViolation = "23505"

// PostgresRepository implements the file record store over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Exists reports whether a record with the given name is present.
func (r *PostgresRepository) Exists(ctx context.Context, name string) (bool, error) {
	query :=
		`SELECT EXISTS (SELECT 1 FROM files WHERE name = $1)
		 `

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return exists, nil
}

// Create inserts a new record. The primary key on name turns a concurrent
// duplicate into common.ErrAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, file *models.File) error {
	query :=
		`INSERT INTO files (name, content, size)
		 VALUES ($1, $2, $3)
		 `

	if _, err := r.db.ExecContext(ctx, query, file.Name, file.Content, file.Size); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return common.ErrAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

// GetByName returns the full record for name, or common.ErrNotFound.
func (r *PostgresRepository) GetByName(ctx context.Context, name string) (*models.File, error) {
	query :=
		`SELECT name, content, size FROM files
		 WHERE name = $1
		 `

	file := &models.File{}
	err := r.db.QueryRowContext(ctx, query, name).Scan(&file.Name, &file.Content, &file.Size)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return file, nil
}

// DeleteByName removes the record for name. Deleting an absent name is a
// no-op at this layer; the service checks presence first.
func (r *PostgresRepository) DeleteByName(ctx context.Context, name string) error {
	query := `DELETE FROM files WHERE name = $1`

	if _, err := r.db.ExecContext(ctx, query, name); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

// Rename changes the record's primary key, preserving content and size.
// There is no pre-check on newName: a collision comes back as the driver's
// constraint error.
func (r *PostgresRepository) Rename(ctx context.Context, oldName, newName string) error {
	query := `UPDATE files SET name = $2 WHERE name = $1`

	if _, err := r.db.ExecContext(ctx, query, oldName, newName); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

// List returns (name, size) for every record, in storage order.
func (r *PostgresRepository) List(ctx context.Context) ([]models.FileInfo, error) {
	query := `SELECT name, size FROM files`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select files: %w", err)
	}
	defer rows.Close()

	var result []models.FileInfo
	for rows.Next() {
		var item models.FileInfo
		if err := rows.Scan(&item.Name, &item.Size); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
