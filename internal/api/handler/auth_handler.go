package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/appointly/identity-service/internal/api/metrics"
	"github.com/appointly/identity-service/internal/core/domain"
	"github.com/appointly/identity-service/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string           `json:"token"`
	TokenType string           `json:"token_type"`
	ExpiresIn int64            `json:"expires_in"`
	User      *domain.Identity `json:"user"`
}

// Login authenticates credentials and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{
		Token:     result.Token,
		TokenType: "Bearer",
		ExpiresIn: int64(result.Claims.ExpiresAt.Sub(result.Claims.IssuedAt).Seconds()),
		User:      result.Identity,
	})
}

// Logout revokes the caller's token until its natural expiry.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	claims, err := callerClaims(c)
	if err != nil {
		return err
	}
	if err := h.authService.Logout(c.Request().Context(), claims); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Profile returns the caller's stored identity.
//
// @Summary      Current identity
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Identity
// @Failure      401  {object}  map[string]string
// @Router       /auth/profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	claims, err := callerClaims(c)
	if err != nil {
		return err
	}
	identity, err := h.authService.Profile(c.Request().Context(), claims.Subject)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, identity)
}
