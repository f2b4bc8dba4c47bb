package ports

import (
	"context"

	"github.com/appointly/identity-service/internal/core/domain"
)

// LoginResult is the outcome of a successful credential authentication.
// Identity is stripped of password material.
type LoginResult struct {
	Token    string
	Claims   *domain.TokenClaims
	Identity *domain.Identity
}

type AuthService interface {
	// Login verifies the credentials and mints a token. Unknown username,
	// wrong password, and suspended account all return
	// domain.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	// Logout revokes the token behind the given claims until its expiry.
	Logout(ctx context.Context, claims *domain.TokenClaims) error
	// Profile returns the stored identity for an authenticated subject.
	Profile(ctx context.Context, id string) (*domain.Identity, error)
}
