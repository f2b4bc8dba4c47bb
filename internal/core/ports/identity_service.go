package ports

import (
	"context"

	"github.com/appointly/identity-service/internal/core/domain"
)

// CreateIdentityInput carries the attributes for a new identity. Password is
// the plaintext secret; it is hashed before anything is persisted and is
// never logged.
type CreateIdentityInput struct {
	Username string
	Email    string
	Password string
	Roles    []domain.Role
}

type IdentityService interface {
	Create(ctx context.Context, in CreateIdentityInput) (*domain.Identity, error)
	Get(ctx context.Context, id string) (*domain.Identity, error)
	List(ctx context.Context) ([]domain.Identity, error)
	// ChangePassword rotates the stored hash. The new hash goes through the
	// same salted derivation as creation.
	ChangePassword(ctx context.Context, id, newPassword string) error
	Delete(ctx context.Context, id string) error
	// SeedAdmin creates the bootstrap admin identity when credentials are
	// configured and no identity with that username exists yet.
	SeedAdmin(ctx context.Context, username, password string) error
}
