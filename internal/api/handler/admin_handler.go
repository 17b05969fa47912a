package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/content-system/internal/core/domain"
	"github.com/inkwell/content-system/internal/core/ports"
)

// AdminHandler exposes role and ban management. Routes must sit behind
// middleware.RBAC(domain.RoleAdmin).
type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

// SetRole changes a user's role.
//
// @Summary      Change a user's role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "User ID"
// @Param        body  body      setRoleRequest  true  "Role"
// @Success      200   {object}  domain.User
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/admin/users/{id}/role [put]
func (h *AdminHandler) SetRole(c echo.Context) error {
	var req setRoleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return err
	}

	user, err := h.service.SetRole(c.Request().Context(), ctxActor(c), c.Param("id"), role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// SetBan sets or clears a user's posting ban.
//
// @Summary      Ban or unban a user from posting
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "User ID"
// @Param        body  body      setBanRequest  true  "Ban state"
// @Success      200   {object}  domain.User
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/admin/users/{id}/ban [put]
func (h *AdminHandler) SetBan(c echo.Context) error {
	var req setBanRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.service.SetBanned(c.Request().Context(), ctxActor(c), c.Param("id"), *req.Banned)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
