package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/appointly/identity-service/internal/api/middleware"
	"github.com/appointly/identity-service/internal/core/domain"
)

// callerClaims extracts the claims injected by the Auth middleware and
// performs a fast-fail check before any service call: a missing subject
// means the guard did not run, so the request must not proceed.
func callerClaims(c echo.Context) (*domain.TokenClaims, error) {
	claims := middleware.CallerClaims(c)
	if claims == nil || claims.Subject == "" {
		return nil, domain.ErrTokenMalformed
	}
	return claims, nil
}

// selfOrAdmin authorizes operations an identity may perform on its own
// record and admins may perform on anyone's.
func selfOrAdmin(claims *domain.TokenClaims, id string) error {
	if claims.Subject == id || claims.HasAnyRole(domain.RoleAdmin) {
		return nil
	}
	return domain.ErrInsufficientRole
}
