package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/appointly/identity-service/internal/api/metrics"
	"github.com/appointly/identity-service/internal/core/domain"
	"github.com/appointly/identity-service/internal/core/ports"
)

// RBAC enforces role-based access control on a route. Semantics are
// "any-of": one matching role between the caller's set and the required set
// is sufficient. An empty required set admits any authenticated caller.
// Must run after Auth. The optional sink receives an audit event for every
// denial; pass nil to disable.
func RBAC(audit ports.AuditSink, required ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := CallerClaims(c)
			if claims == nil {
				// Route misconfiguration: the guard ran without Auth.
				return domain.ErrTokenMalformed
			}

			if !claims.HasAnyRole(required...) {
				metrics.AuthzDecisionsTotal.WithLabelValues("denied").Inc()
				if audit != nil {
					audit.Enqueue(domain.AuthEvent{
						Username:  claims.Username,
						Kind:      domain.AuthAccessDenied,
						RequestID: c.Response().Header().Get(echo.HeaderXRequestID),
					})
				}
				return domain.ErrInsufficientRole
			}

			metrics.AuthzDecisionsTotal.WithLabelValues("allowed").Inc()
			return next(c)
		}
	}
}
