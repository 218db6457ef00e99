package services

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/DmitryKarasov/FileService/internal/common"
	"github.com/DmitryKarasov/FileService/internal/dbx"
	"github.com/DmitryKarasov/FileService/internal/server/models"
	filesrepo "github.com/DmitryKarasov/FileService/internal/server/repositories/files"
	usersrepo "github.com/DmitryKarasov/FileService/internal/server/repositories/users"
)

// --- fakes shared by the service tests ---

type fakeUsersRepo struct {
	getOut *models.User
	getErr error
}

func (f *fakeUsersRepo) FindByIdentity(ctx context.Context, identity string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

type fakeFilesRepo struct {
	existsOut bool
	existsErr error

	createErr error
	created   *models.File

	getOut *models.File
	getErr error

	delErr  error
	deleted string

	renameErr error
	renamedTo string

	listOut []models.FileInfo
	listErr error
}

func (f *fakeFilesRepo) Exists(ctx context.Context, name string) (bool, error) {
	return f.existsOut, f.existsErr
}

func (f *fakeFilesRepo) Create(ctx context.Context, file *models.File) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = file
	return nil
}

func (f *fakeFilesRepo) GetByName(ctx context.Context, name string) (*models.File, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeFilesRepo) DeleteByName(ctx context.Context, name string) error {
	if f.delErr != nil {
		return f.delErr
	}
	f.deleted = name
	return nil
}

func (f *fakeFilesRepo) Rename(ctx context.Context, oldName, newName string) error {
	if f.renameErr != nil {
		return f.renameErr
	}
	f.renamedTo = newName
	return nil
}

func (f *fakeFilesRepo) List(ctx context.Context) ([]models.FileInfo, error) {
	return f.listOut, f.listErr
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	f *fakeFilesRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository      { return m.u }
func (m *fakeRepoManager) Files(db dbx.DBTX) filesrepo.Repository      { return m.f }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

// --- tests ---

func TestUpload_Success(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := &fakeFilesRepo{existsOut: false}
	s := NewFileService(db, &fakeRepoManager{f: repo})

	if err := s.Upload(context.Background(), "a.txt", []byte{1, 2, 3}, 3); err != nil {
		t.Fatalf("Upload error: %v", err)
	}
	if repo.created == nil || repo.created.Name != "a.txt" || repo.created.Size != 3 {
		t.Fatalf("unexpected created record: %+v", repo.created)
	}
}

func TestUpload_DuplicateRejected(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := &fakeFilesRepo{existsOut: true}
	s := NewFileService(db, &fakeRepoManager{f: repo})

	err := s.Upload(context.Background(), "a.txt", []byte{9}, 1)
	if !errors.Is(err, common.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	if repo.created != nil {
		t.Fatal("Create must not run when the name is taken")
	}
}

func TestUpload_SizeTrusted(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := &fakeFilesRepo{}
	s := NewFileService(db, &fakeRepoManager{f: repo})

	// Declared size disagrees with the content; the facade stores it as-is.
	if err := s.Upload(context.Background(), "a.txt", []byte{1, 2, 3}, 99); err != nil {
		t.Fatalf("Upload error: %v", err)
	}
	if repo.created.Size != 99 {
		t.Fatalf("declared size must be persisted unchanged, got %d", repo.created.Size)
	}
}

func TestDownload_Success(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeFilesRepo{getOut: &models.File{Name: "a.txt", Content: []byte("file content"), Size: 12}}
	s := NewFileService(db, &fakeRepoManager{f: repo})

	rc, err := s.Download(context.Background(), "a.txt")
	if err != nil {
		t.Fatalf("Download error: %v", err)
	}
	defer rc.Close()

	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read error: %v", err)
	}
	if string(got) != "file content" {
		t.Fatalf("content mismatch: %q", got)
	}
}

func TestDownload_Idempotent(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeFilesRepo{getOut: &models.File{Name: "a.txt", Content: []byte{1, 2, 3}, Size: 3}}
	s := NewFileService(db, &fakeRepoManager{f: repo})

	read := func() []byte {
		rc, err := s.Download(context.Background(), "a.txt")
		if err != nil {
			t.Fatalf("Download error: %v", err)
		}
		defer rc.Close()
		b, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read error: %v", err)
		}
		return b
	}

	first := read()
	second := read()
	if string(first) != string(second) {
		t.Fatalf("two downloads of an unmodified record must match: %v vs %v", first, second)
	}
}

func TestDownload_NotFound(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeFilesRepo{getErr: common.ErrNotFound}
	s := NewFileService(db, &fakeRepoManager{f: repo})

	_, err := s.Download(context.Background(), "missing.txt")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRemove_Success(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := &fakeFilesRepo{existsOut: true}
	s := NewFileService(db, &fakeRepoManager{f: repo})

	if err := s.Remove(context.Background(), "a.txt"); err != nil {
		t.Fatalf("Remove error: %v", err)
	}
	if repo.deleted != "a.txt" {
		t.Fatalf("unexpected deleted name: %q", repo.deleted)
	}
}

func TestRemove_MissingRejectedNotFault(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := &fakeFilesRepo{existsOut: false}
	s := NewFileService(db, &fakeRepoManager{f: repo})

	err := s.Remove(context.Background(), "missing.txt")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected clean ErrNotFound rejection, got %v", err)
	}
	if repo.deleted != "" {
		t.Fatal("DeleteByName must not run for a missing record")
	}
}

func TestRename_Success(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := &fakeFilesRepo{existsOut: true}
	s := NewFileService(db, &fakeRepoManager{f: repo})

	if err := s.Rename(context.Background(), "a.txt", "b.txt"); err != nil {
		t.Fatalf("Rename error: %v", err)
	}
	if repo.renamedTo != "b.txt" {
		t.Fatalf("unexpected rename target: %q", repo.renamedTo)
	}
}

func TestRename_MissingSourceRejected(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := &fakeFilesRepo{existsOut: false}
	s := NewFileService(db, &fakeRepoManager{f: repo})

	err := s.Rename(context.Background(), "missing.txt", "b.txt")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRename_TargetTakenSurfacesAsFault(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	// The facade never pre-checks the target name: a collision comes back
	// as the store's own error, not as a clean rejection.
	storeErr := errors.New("db error: duplicate key value violates unique constraint")
	repo := &fakeFilesRepo{existsOut: true, renameErr: storeErr}
	s := NewFileService(db, &fakeRepoManager{f: repo})

	err := s.Rename(context.Background(), "a.txt", "taken.txt")
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected store fault to propagate, got %v", err)
	}
	if errors.Is(err, common.ErrAlreadyExists) {
		t.Fatal("rename collision must not be reported as a rejection")
	}
}

func TestList_CapsAtLimit(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeFilesRepo{listOut: []models.FileInfo{
		{Name: "f1.txt", Size: 1},
		{Name: "f2.txt", Size: 2},
		{Name: "f3.txt", Size: 3},
		{Name: "f4.txt", Size: 4},
		{Name: "f5.txt", Size: 5},
	}}
	s := NewFileService(db, &fakeRepoManager{f: repo})

	got, err := s.List(context.Background(), 2)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Name != "f1.txt" || got[0].Size != 1 || got[1].Name != "f2.txt" || got[1].Size != 2 {
		t.Fatalf("unexpected entries: %+v", got)
	}
}

func TestList_LimitLargerThanStore(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeFilesRepo{listOut: []models.FileInfo{{Name: "only.txt", Size: 42}}}
	s := NewFileService(db, &fakeRepoManager{f: repo})

	got, err := s.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "only.txt" {
		t.Fatalf("unexpected entries: %+v", got)
	}
}
