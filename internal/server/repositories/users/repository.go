package users

import (
	"context"

	"github.com/DmitryKarasov/FileService/internal/server/models"
)

// Repository is the credential store: a read-only lookup of provisioned
// accounts. Accounts are created by an external process, never by this
// service.
type Repository interface {
	FindByIdentity(ctx context.Context, identity string) (*models.User, error)
}
