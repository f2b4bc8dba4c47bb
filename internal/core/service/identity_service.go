package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/appointly/identity-service/internal/core/domain"
	"github.com/appointly/identity-service/internal/core/ports"
)

// IdentityService manages the minimal identity surface: creation, lookup,
// password rotation, and deletion. Uniqueness of username/email is enforced
// by the repository at the storage boundary.
type IdentityService struct {
	repo   ports.IdentityRepository
	hasher ports.PasswordHasher
	log    zerolog.Logger
}

func NewIdentityService(repo ports.IdentityRepository, hasher ports.PasswordHasher, log zerolog.Logger) *IdentityService {
	return &IdentityService{repo: repo, hasher: hasher, log: log}
}

// Create hashes the password and persists a new active identity. Roles
// default to {user} and are deduplicated; unknown roles are rejected.
func (s *IdentityService) Create(ctx context.Context, in ports.CreateIdentityInput) (*domain.Identity, error) {
	if in.Username == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	}

	roles := domain.NormalizeRoles(in.Roles)
	if len(roles) == 0 {
		roles = []domain.Role{domain.RoleUser}
	}
	for _, r := range roles {
		if !domain.ValidRole(r) {
			return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, r)
		}
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.Identity{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Roles:        roles,
		Status:       domain.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}
	return created.WithoutSecrets(), nil
}

func (s *IdentityService) Get(ctx context.Context, id string) (*domain.Identity, error) {
	identity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return identity.WithoutSecrets(), nil
}

func (s *IdentityService) List(ctx context.Context) ([]domain.Identity, error) {
	identities, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range identities {
		identities[i].PasswordHash = ""
	}
	return identities, nil
}

// ChangePassword rotates the stored hash. The replacement goes through the
// same salted derivation as creation; there is no shortcut path.
func (s *IdentityService) ChangePassword(ctx context.Context, id, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("%w: password is required", domain.ErrInvalidInput)
	}
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	return s.repo.UpdatePasswordHash(ctx, id, hash)
}

func (s *IdentityService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// SeedAdmin bootstraps the admin identity at startup. Missing credentials
// log a warning and skip; an existing identity with that username is left
// untouched.
func (s *IdentityService) SeedAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		s.log.Warn().Msg("admin credentials not configured, skipping seed")
		return nil
	}

	_, err := s.repo.FindByUsername(ctx, username)
	if err == nil {
		s.log.Info().Str("username", username).Msg("admin identity already exists")
		return nil
	}
	if !errors.Is(err, domain.ErrIdentityNotFound) {
		return err
	}

	if _, err := s.Create(ctx, ports.CreateIdentityInput{
		Username: username,
		Email:    username + "@example.com",
		Password: password,
		Roles:    []domain.Role{domain.RoleAdmin},
	}); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	s.log.Info().Str("username", username).Msg("admin identity created")
	return nil
}
