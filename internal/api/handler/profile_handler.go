package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/content-system/internal/core/ports"
)

// ProfileHandler serves the caller's own profile and the public directory.
type ProfileHandler struct {
	service ports.ProfileService
}

func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// Me returns the caller's full profile and what they may author.
//
// @Summary      Current user
// @Tags         profiles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  meResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/me [get]
func (h *ProfileHandler) Me(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	user, caps, err := h.service.Me(ctx, actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, meResponse{
		User:              user,
		Capabilities:      toCapabilitiesResponse(caps),
		AcceptedMarketing: h.service.AcceptsMarketing(ctx, actor),
	})
}

// UpdateMe replaces the caller's profile fields.
//
// @Summary      Update current user's profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Profile"
// @Success      200   {object}  domain.User
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/me [put]
func (h *ProfileHandler) UpdateMe(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	var req updateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.service.UpdateProfile(c.Request().Context(), actor, toProfileInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Directory lists public profiles.
//
// @Summary      User directory
// @Tags         profiles
// @Produce      json
// @Param        limit  query     int  false  "Maximum number of users"
// @Success      200    {object}  directoryResponse
// @Router       /v1/users [get]
func (h *ProfileHandler) Directory(c echo.Context) error {
	limit, err := queryLimit(c)
	if err != nil {
		return err
	}
	users, err := h.service.Directory(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	items := make([]publicProfileResponse, 0, len(users))
	for _, u := range users {
		items = append(items, toPublicProfile(u))
	}
	return c.JSON(http.StatusOK, directoryResponse{Items: items, Count: len(items)})
}

// PublicProfile returns one public profile. Private profiles are 404.
//
// @Summary      Public profile
// @Tags         profiles
// @Produce      json
// @Param        handle  path      string  true  "Public handle"
// @Success      200     {object}  publicProfileResponse
// @Failure      404     {object}  errorResponse
// @Router       /v1/users/{handle} [get]
func (h *ProfileHandler) PublicProfile(c echo.Context) error {
	user, err := h.service.PublicProfile(c.Request().Context(), c.Param("handle"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPublicProfile(user))
}
