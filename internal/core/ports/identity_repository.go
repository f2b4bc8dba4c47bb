package ports

import (
	"context"

	"github.com/appointly/identity-service/internal/core/domain"
)

// IdentityRepository defines the persistence contract for identities. The
// store enforces username/email uniqueness at the storage boundary and
// surfaces violations as domain.ErrIdentityExists.
type IdentityRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.Identity, error)
	FindByID(ctx context.Context, id string) (*domain.Identity, error)
	Create(ctx context.Context, identity *domain.Identity) (*domain.Identity, error)
	UpdatePasswordHash(ctx context.Context, id, passwordHash string) error
	List(ctx context.Context) ([]domain.Identity, error)
	Delete(ctx context.Context, id string) error
}
