package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/appointly/identity-service/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Collapses every 401-class cause (bad credentials, malformed token,
//     expired token, revoked token) into one indistinguishable message so
//     responses leak nothing about which check failed.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors map to deterministic HTTP codes. The
	// unauthorized causes share one message on purpose.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrTokenMalformed),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenRevoked):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInsufficientRole):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, domain.ErrIdentityNotFound):
		return http.StatusNotFound, "identity not found"
	case errors.Is(err, domain.ErrIdentityExists):
		return http.StatusConflict, "identity already exists"
	case errors.Is(err, domain.ErrStorageUnavailable):
		log.Error().Err(err).Str("path", c.Path()).Msg("storage unavailable")
		return http.StatusServiceUnavailable, "storage unavailable"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
