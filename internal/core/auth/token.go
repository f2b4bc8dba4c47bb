package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/appointly/identity-service/internal/core/domain"
)

// accessClaims is the wire shape of the token payload.
type accessClaims struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies HS256 bearer tokens. It is stateless:
// validity is determined purely by signature and expiry, with zero clock
// skew tolerance.
type TokenService struct {
	secret []byte
	ttl    time.Duration

	// now is swapped in tests to exercise expiry.
	now func() time.Time
}

// NewTokenService returns a TokenService signing with the given secret.
// TTL <= 0 defaults to 24h.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue mints a token for the identity: sub, username, roles, iat, exp, and
// a random jti for revocation. The roles claim is the identity's
// deduplicated role set.
func (s *TokenService) Issue(identity *domain.Identity) (string, *domain.TokenClaims, error) {
	tokenID, err := randomTokenID()
	if err != nil {
		return "", nil, fmt.Errorf("token id: %w", err)
	}

	now := s.now().UTC().Truncate(time.Second)
	roles := domain.NormalizeRoles(identity.Roles)

	claims := accessClaims{
		Username: identity.Username,
		Roles:    roleStrings(roles),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			ID:        tokenID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	return signed, &domain.TokenClaims{
		Subject:   identity.ID,
		Username:  identity.Username,
		Roles:     roles,
		TokenID:   tokenID,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.ttl),
	}, nil
}

// Validate verifies signature and expiry and returns the embedded claims
// without any storage lookup. Expired tokens map to domain.ErrTokenExpired;
// every other failure maps to domain.ErrTokenMalformed.
func (s *TokenService) Validate(token string) (*domain.TokenClaims, error) {
	var claims accessClaims
	parsed, err := jwt.ParseWithClaims(token, &claims,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenMalformed
	}
	if !parsed.Valid || claims.Subject == "" || claims.Username == "" {
		return nil, domain.ErrTokenMalformed
	}

	out := &domain.TokenClaims{
		Subject:  claims.Subject,
		Username: claims.Username,
		Roles:    parseRoles(claims.Roles),
		TokenID:  claims.ID,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

func roleStrings(roles []domain.Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}

func parseRoles(raw []string) []domain.Role {
	roles := make([]domain.Role, len(raw))
	for i, r := range raw {
		roles[i] = domain.Role(r)
	}
	return domain.NormalizeRoles(roles)
}

// randomTokenID returns 16 bytes of hex-encoded cryptographic randomness.
func randomTokenID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
