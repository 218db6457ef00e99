// Package services contains the server-side business logic: authentication
// and the file operations facade consumed by the transport layer.
package services

import (
	"context"
	"database/sql"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/DmitryKarasov/FileService/internal/common"
	"github.com/DmitryKarasov/FileService/internal/server/auth"
	"github.com/DmitryKarasov/FileService/internal/server/repositories/repomanager"
)

// AuthService verifies login credentials and mints session tokens.
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      *auth.JWTService
}

// NewAuthService constructs an AuthService over the given repositories and
// token service.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, tokens *auth.JWTService) *AuthService {
	return &AuthService{db: db, repomanager: m, tokens: tokens}
}

// Authenticate checks login/password against the credential store and, on
// success, returns a signed session token. Unknown logins and wrong
// passwords both come back as common.ErrUnauthorized; the password check
// is the only place the stored bcrypt hash is ever compared.
func (s *AuthService) Authenticate(ctx context.Context, login, password string) (string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.FindByIdentity(ctx, login)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrUnauthorized
		}
		return "", common.ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", common.ErrUnauthorized
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return "", common.ErrInternal
	}

	return token, nil
}

// Logout is deliberately a no-op: tokens are stateless and stay valid
// until their natural expiry. There is no revocation list.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return nil
}
