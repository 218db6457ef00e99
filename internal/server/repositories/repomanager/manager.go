package repomanager

import (
	"context"
	"database/sql"

	"github.com/DmitryKarasov/FileService/internal/dbx"
	"github.com/DmitryKarasov/FileService/internal/server/repositories/files"
	"github.com/DmitryKarasov/FileService/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a particular handle, so a
// service can run the same repository code on *sql.DB or inside a
// transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Files(db dbx.DBTX) files.Repository
}
