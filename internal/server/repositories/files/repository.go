package files

import (
	"context"

	"github.com/DmitryKarasov/FileService/internal/server/models"
)

// Repository is the file record store. Name uniqueness is enforced by the
// primary key; no two records share a name at any observable instant.
type Repository interface {
	Exists(ctx context.Context, name string) (bool, error)
	// Create persists a new record. A name collision yields
	// common.ErrAlreadyExists.
	Create(ctx context.Context, file *models.File) error
	// GetByName returns the full record or common.ErrNotFound.
	GetByName(ctx context.Context, name string) (*models.File, error)
	DeleteByName(ctx context.Context, name string) error
	// Rename changes the primary key in place. The caller is expected to
	// have checked oldName exists; a collision on newName surfaces as a
	// plain database error, not a clean rejection.
	Rename(ctx context.Context, oldName, newName string) error
	// List returns every record's (name, size) in storage order. Callers
	// apply any display cap themselves.
	List(ctx context.Context) ([]models.FileInfo, error)
}
