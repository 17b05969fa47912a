package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/content-system/internal/core/ports"
)

// PageHandler handles HTTP requests for static pages.
type PageHandler struct {
	service ports.PageService
}

func NewPageHandler(service ports.PageService) *PageHandler {
	return &PageHandler{service: service}
}

// List returns published pages.
//
// @Summary      List published pages
// @Tags         pages
// @Produce      json
// @Param        limit  query     int  false  "Maximum number of pages"
// @Success      200    {object}  pageListResponse
// @Router       /v1/pages [get]
func (h *PageHandler) List(c echo.Context) error {
	limit, err := queryLimit(c)
	if err != nil {
		return err
	}
	pages, err := h.service.ListPublished(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pageListResponse{Items: pages, Count: len(pages)})
}

// Get returns a single page. Hidden drafts are reported as 404.
//
// @Summary      Get a page by slug
// @Tags         pages
// @Produce      json
// @Param        slug  path      string  true  "Page slug"
// @Success      200   {object}  domain.Page
// @Failure      404   {object}  errorResponse
// @Router       /v1/pages/{slug} [get]
func (h *PageHandler) Get(c echo.Context) error {
	page, err := h.service.Get(c.Request().Context(), ctxActor(c), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Create writes a new draft page.
//
// @Summary      Create a page
// @Tags         pages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string                false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      createContentRequest  true   "Page"
// @Success      201              {object}  domain.Page
// @Failure      403              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /v1/pages [post]
func (h *PageHandler) Create(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	var req createContentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.service.Create(c.Request().Context(), actor, toCreateInput(req, c.Request().Header.Get(headerIdempotencyKey)))
	if err != nil {
		return err
	}
	if res.AlreadyExisted {
		return c.JSON(http.StatusOK, res.Item)
	}
	return c.JSON(http.StatusCreated, res.Item)
}

// Update replaces a page's editable fields.
//
// @Summary      Update a page
// @Tags         pages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        slug  path      string                true  "Page slug"
// @Param        body  body      updateContentRequest  true  "Page"
// @Success      200   {object}  domain.Page
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/pages/{slug} [put]
func (h *PageHandler) Update(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	var req updateContentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	page, err := h.service.Update(c.Request().Context(), actor, toUpdateInput(c.Param("slug"), req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// TogglePublished flips a page between draft and published.
//
// @Summary      Toggle a page's published state
// @Tags         pages
// @Produce      json
// @Security     BearerAuth
// @Param        slug  path      string  true  "Page slug"
// @Success      200   {object}  domain.Page
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/pages/{slug}/toggle-published [post]
func (h *PageHandler) TogglePublished(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	page, err := h.service.TogglePublished(c.Request().Context(), actor, c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Delete removes a page.
//
// @Summary      Delete a page
// @Tags         pages
// @Security     BearerAuth
// @Param        slug  path  string  true  "Page slug"
// @Success      204
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/pages/{slug} [delete]
func (h *PageHandler) Delete(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), actor, c.Param("slug")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
