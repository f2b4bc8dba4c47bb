package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/appointly/identity-service/internal/core/domain"
	"github.com/appointly/identity-service/internal/core/ports"
)

// AuthService implements credential authentication, token lifecycle, and
// profile lookup. It is stateless: all mutable state lives in the repository
// and the optional denylist.
type AuthService struct {
	repo     ports.IdentityRepository
	hasher   ports.PasswordHasher
	tokens   ports.TokenService
	denylist ports.TokenDenylist // nil disables revocation
	audit    ports.AuditSink     // nil disables the audit trail
	log      zerolog.Logger
}

func NewAuthService(
	repo ports.IdentityRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenService,
	denylist ports.TokenDenylist,
	audit ports.AuditSink,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		repo:     repo,
		hasher:   hasher,
		tokens:   tokens,
		denylist: denylist,
		audit:    audit,
		log:      log,
	}
}

// Login looks up the identity by username and verifies the password. Unknown
// username, wrong password, and suspended account all collapse into
// ErrInvalidCredentials so callers cannot enumerate accounts. Storage errors
// propagate unmodified.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	identity, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrIdentityNotFound) {
			s.record(domain.AuthEvent{Username: username, Kind: domain.AuthLoginFailed})
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := s.hasher.Verify(password, identity.PasswordHash)
	if err != nil {
		// Unreadable stored hash: a real fault, not a wrong password.
		return nil, fmt.Errorf("login %q: %w", username, err)
	}
	if !ok || !identity.Active() {
		s.record(domain.AuthEvent{Username: username, Kind: domain.AuthLoginFailed})
		return nil, domain.ErrInvalidCredentials
	}

	safe := identity.WithoutSecrets()
	token, claims, err := s.tokens.Issue(safe)
	if err != nil {
		return nil, fmt.Errorf("issue token for %q: %w", username, err)
	}

	s.record(domain.AuthEvent{Username: username, Kind: domain.AuthLoginSucceeded})
	return &ports.LoginResult{Token: token, Claims: claims, Identity: safe}, nil
}

// Logout places the token id on the denylist until the token's natural
// expiry. Without a configured denylist this is a no-op: the token simply
// dies at exp.
func (s *AuthService) Logout(ctx context.Context, claims *domain.TokenClaims) error {
	if s.denylist == nil {
		return nil
	}
	if err := s.denylist.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	s.record(domain.AuthEvent{Username: claims.Username, Kind: domain.AuthLogout})
	return nil
}

// Profile returns the stored identity for the subject, stripped of password
// material.
func (s *AuthService) Profile(ctx context.Context, id string) (*domain.Identity, error) {
	identity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return identity.WithoutSecrets(), nil
}

func (s *AuthService) record(event domain.AuthEvent) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(event)
}
