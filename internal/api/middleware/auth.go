package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/appointly/identity-service/internal/api/metrics"
	"github.com/appointly/identity-service/internal/core/domain"
	"github.com/appointly/identity-service/internal/core/ports"
)

// claimsKey is the echo context key under which validated token claims are
// stored for downstream middleware and handlers.
const claimsKey = "auth_claims"

// Auth authenticates the request from its Authorization header: the header
// must be exactly "Bearer <token>", the token must validate, and when a
// denylist is configured the token id must not be revoked. Any failure
// short-circuits with a 401-class error before role checks or handlers run.
// A nil denylist disables revocation checks.
func Auth(tokens ports.TokenService, denylist ports.TokenDenylist) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				metrics.TokenValidationsTotal.WithLabelValues("malformed").Inc()
				return domain.ErrTokenMalformed
			}

			claims, err := tokens.Validate(token)
			if err != nil {
				if errors.Is(err, domain.ErrTokenExpired) {
					metrics.TokenValidationsTotal.WithLabelValues("expired").Inc()
				} else {
					metrics.TokenValidationsTotal.WithLabelValues("malformed").Inc()
				}
				return err
			}

			if denylist != nil {
				revoked, err := denylist.IsRevoked(c.Request().Context(), claims.TokenID)
				if err != nil {
					return err
				}
				if revoked {
					metrics.TokenValidationsTotal.WithLabelValues("revoked").Inc()
					return domain.ErrTokenRevoked
				}
			}

			metrics.TokenValidationsTotal.WithLabelValues("valid").Inc()
			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// bearerToken extracts the token from an Authorization header value. Any
// form other than "Bearer <token>" is treated as an absent token.
func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// CallerClaims returns the claims stored by Auth, or nil when the request
// did not pass through it.
func CallerClaims(c echo.Context) *domain.TokenClaims {
	claims, _ := c.Get(claimsKey).(*domain.TokenClaims)
	return claims
}
