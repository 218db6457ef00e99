package services

import (
	"bytes"
	"context"
	"database/sql"
	"io"

	"github.com/DmitryKarasov/FileService/internal/common"
	"github.com/DmitryKarasov/FileService/internal/dbx"
	"github.com/DmitryKarasov/FileService/internal/server/models"
	"github.com/DmitryKarasov/FileService/internal/server/repositories/repomanager"
)

// FileService is the facade over the file record store. Each operation
// reports one of three outcomes through its error value: nil (succeeded),
// common.ErrNotFound / common.ErrAlreadyExists (rejected, caller can
// correct), or any other error (fault).
type FileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewFileService constructs a FileService over the given repositories.
func NewFileService(db *sql.DB, m repomanager.RepositoryManager) *FileService {
	return &FileService{db: db, repomanager: m}
}

// Upload stores a new file record. A record with the same name already
// present rejects the upload and leaves the existing record untouched.
// The declared size is persisted as given; it is not checked against
// len(content).
func (s *FileService) Upload(ctx context.Context, name string, content []byte, size int64) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Files(tx)

		exists, err := repo.Exists(ctx, name)
		if err != nil {
			return err
		}
		if exists {
			return common.ErrAlreadyExists
		}

		return repo.Create(ctx, &models.File{Name: name, Content: content, Size: size})
	})
}

// Download returns the stored content as a sequential byte source, or
// common.ErrNotFound when no record has that name. Reading twice from an
// unmodified record yields byte-identical content.
func (s *FileService) Download(ctx context.Context, name string) (io.ReadCloser, error) {
	repo := s.repomanager.Files(s.db)

	file, err := repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}

	return io.NopCloser(bytes.NewReader(file.Content)), nil
}

// Remove deletes the record for name, rejecting with common.ErrNotFound
// when it is absent so callers can tell "deleted" from "never existed".
func (s *FileService) Remove(ctx context.Context, name string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Files(tx)

		exists, err := repo.Exists(ctx, name)
		if err != nil {
			return err
		}
		if !exists {
			return common.ErrNotFound
		}

		return repo.DeleteByName(ctx, name)
	})
}

// Rename moves the record from oldName to newName, rejecting when oldName
// is absent. newName is not checked first: if it is already taken, the
// store's uniqueness constraint fails the rename and the error surfaces
// as a fault rather than a clean rejection.
func (s *FileService) Rename(ctx context.Context, oldName, newName string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Files(tx)

		exists, err := repo.Exists(ctx, oldName)
		if err != nil {
			return err
		}
		if !exists {
			return common.ErrNotFound
		}

		return repo.Rename(ctx, oldName, newName)
	})
}

// List returns at most limit (name, size) entries in storage order. The
// full set is fetched first; limit is a display cap, not a pagination
// cursor.
func (s *FileService) List(ctx context.Context, limit int) ([]models.FileInfo, error) {
	repo := s.repomanager.Files(s.db)

	list, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if limit >= 0 && len(list) > limit {
		list = list[:limit]
	}

	return list, nil
}
