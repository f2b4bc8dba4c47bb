package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/appointly/identity-service/internal/core/ports"
)

// UserHandler exposes the minimal identity-management surface. Route-level
// RBAC gates creation, listing, and deletion to admins; read and password
// rotation additionally allow the identity itself.
type UserHandler struct {
	identityService ports.IdentityService
}

func NewUserHandler(identityService ports.IdentityService) *UserHandler {
	return &UserHandler{identityService: identityService}
}

// Create registers a new identity.
//
// @Summary      Create identity
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "Identity attributes"
// @Success      201   {object}  domain.Identity
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	identity, err := h.identityService.Create(c.Request().Context(), ports.CreateIdentityInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Roles:    req.roleSet(),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, identity)
}

// List returns all identities, without password material.
//
// @Summary      List identities
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Identity
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	identities, err := h.identityService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, identities)
}

// Get returns a single identity. Admins may read anyone; others only
// themselves.
//
// @Summary      Get identity
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Identity ID"
// @Success      200  {object}  domain.Identity
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	claims, err := callerClaims(c)
	if err != nil {
		return err
	}
	id := c.Param("id")
	if err := selfOrAdmin(claims, id); err != nil {
		return err
	}

	identity, err := h.identityService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, identity)
}

// ChangePassword rotates an identity's password hash.
//
// @Summary      Rotate password
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                 true  "Identity ID"
// @Param        body  body  changePasswordRequest  true  "New password"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /users/{id}/password [patch]
func (h *UserHandler) ChangePassword(c echo.Context) error {
	claims, err := callerClaims(c)
	if err != nil {
		return err
	}
	id := c.Param("id")
	if err := selfOrAdmin(claims, id); err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.identityService.ChangePassword(c.Request().Context(), id, req.Password); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete removes an identity.
//
// @Summary      Delete identity
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Identity ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.identityService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
