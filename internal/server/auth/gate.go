package auth

import (
	"context"
	"errors"

	"github.com/DmitryKarasov/FileService/internal/common"
	"github.com/DmitryKarasov/FileService/internal/server/models"
)

// TokenValidator resolves a token string to its subject.
type TokenValidator interface {
	Validate(tokenString string) (string, error)
}

// CredentialSource looks up an account by its identity. Implementations
// return common.ErrNotFound when the identity is unknown.
type CredentialSource interface {
	FindByIdentity(ctx context.Context, identity string) (*models.User, error)
}

// Gate is the per-request authentication policy: it resolves a token to an
// identity or rejects the request. It holds only read-only configuration
// and is safe to call concurrently.
type Gate struct {
	tokens      TokenValidator
	credentials CredentialSource
	publicPaths map[string]struct{}
}

func NewGate(tokens TokenValidator, credentials CredentialSource, publicPaths []string) *Gate {
	public := make(map[string]struct{}, len(publicPaths))
	for _, p := range publicPaths {
		public[p] = struct{}{}
	}
	return &Gate{tokens: tokens, credentials: credentials, publicPaths: public}
}

// Public reports whether path is on the allow-list and skips authentication.
func (g *Gate) Public(path string) bool {
	_, ok := g.publicPaths[path]
	return ok
}

// Authorize resolves tokenString to an identity for a request on path.
// Public paths pass without any token inspection. Everything else needs a
// token that validates and whose subject still exists in the credential
// store; a valid token for a deleted account is rejected like any other.
func (g *Gate) Authorize(ctx context.Context, tokenString, path string) (string, error) {
	if g.Public(path) {
		return "", nil
	}

	if tokenString == "" {
		return "", common.ErrUnauthorized
	}

	subject, err := g.tokens.Validate(tokenString)
	if err != nil {
		return "", common.ErrUnauthorized
	}

	user, err := g.credentials.FindByIdentity(ctx, subject)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrUnauthorized
		}
		return "", err
	}

	return user.Email, nil
}
