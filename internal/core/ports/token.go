package ports

import (
	"context"
	"time"

	"github.com/appointly/identity-service/internal/core/domain"
)

// PasswordHasher produces and verifies one-way salted password hashes.
type PasswordHasher interface {
	// Hash derives a self-describing hash from the plaintext with a fresh
	// random salt. Hashing the same input twice yields different strings.
	Hash(plaintext string) (string, error)
	// Verify recomputes the digest using the salt embedded in passwordHash
	// and compares in constant time. A mismatch is (false, nil); a hash the
	// hasher cannot parse is a hard error, never a silent false.
	Verify(plaintext, passwordHash string) (bool, error)
}

// TokenService issues and validates signed, time-bounded identity tokens.
// Validation is stateless: no storage lookup is performed.
type TokenService interface {
	Issue(identity *domain.Identity) (signed string, claims *domain.TokenClaims, err error)
	Validate(token string) (*domain.TokenClaims, error)
}

// TokenDenylist is the optional revocation extension: tokens whose id has
// been revoked are rejected until their natural expiry.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
