package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/DmitryKarasov/FileService/internal/common"
	"github.com/DmitryKarasov/FileService/internal/dbx"
	"github.com/DmitryKarasov/FileService/internal/server/models"
)

// PostgresRepository implements the credential store over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// FindByIdentity returns the account for the given email, or
// common.ErrNotFound when no such account exists.
func (r *PostgresRepository) FindByIdentity(ctx context.Context, identity string) (*models.User, error) {
	query :=
		`SELECT email, password FROM users
		 WHERE email = $1
		 `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, identity).Scan(&user.Email, &user.PasswordHash)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}
