package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/content-system/internal/core/ports"
)

// BlogHandler handles HTTP requests for blog posts.
type BlogHandler struct {
	service ports.BlogService
}

func NewBlogHandler(service ports.BlogService) *BlogHandler {
	return &BlogHandler{service: service}
}

// List returns published posts, newest first.
//
// @Summary      List published posts
// @Tags         posts
// @Produce      json
// @Param        limit  query     int  false  "Maximum number of posts (default 20, max 100)"
// @Success      200    {object}  postListResponse
// @Failure      400    {object}  errorResponse
// @Router       /v1/posts [get]
func (h *BlogHandler) List(c echo.Context) error {
	limit, err := queryLimit(c)
	if err != nil {
		return err
	}
	posts, err := h.service.ListPublished(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, postListResponse{Items: posts, Count: len(posts)})
}

// ListByHandle returns a public author's published personal posts.
//
// @Summary      List a user's published posts
// @Tags         posts
// @Produce      json
// @Param        handle  path      string  true   "Public handle"
// @Param        limit   query     int     false  "Maximum number of posts"
// @Success      200     {object}  postListResponse
// @Failure      404     {object}  errorResponse
// @Router       /v1/users/{handle}/posts [get]
func (h *BlogHandler) ListByHandle(c echo.Context) error {
	limit, err := queryLimit(c)
	if err != nil {
		return err
	}
	posts, err := h.service.ListByHandle(c.Request().Context(), c.Param("handle"), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, postListResponse{Items: posts, Count: len(posts)})
}

// ListMine returns every post the caller wrote and can still see, drafts included.
//
// @Summary      List my posts
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  postListResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/me/posts [get]
func (h *BlogHandler) ListMine(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	posts, err := h.service.ListMine(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, postListResponse{Items: posts, Count: len(posts)})
}

// Get returns a single post. Drafts the caller may not see are reported as 404.
//
// @Summary      Get a post by slug
// @Tags         posts
// @Produce      json
// @Param        slug  path      string  true  "Post slug"
// @Success      200   {object}  domain.BlogPost
// @Failure      404   {object}  errorResponse
// @Router       /v1/posts/{slug} [get]
func (h *BlogHandler) Get(c echo.Context) error {
	post, err := h.service.Get(c.Request().Context(), ctxActor(c), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// Create writes a new draft post.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string                false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      createContentRequest  true   "Post"
// @Success      201              {object}  domain.BlogPost
// @Success      200              {object}  domain.BlogPost  "replayed idempotent request"
// @Failure      401              {object}  errorResponse
// @Failure      403              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /v1/posts [post]
func (h *BlogHandler) Create(c echo.Context) error {
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

// Update replaces a post's editable fields.
//
// @Summary      Update a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        slug  path      string                true  "Post slug"
// @Param        body  body      updateContentRequest  true  "Post"
// @Success      200   {object}  domain.BlogPost
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/posts/{slug} [put]
func (h *BlogHandler) Update(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	var req updateContentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.service.Update(c.Request().Context(), actor, toUpdateInput(c.Param("slug"), req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// TogglePublished flips a post between draft and published.
//
// @Summary      Toggle a post's published state
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        slug  path      string  true  "Post slug"
// @Success      200   {object}  domain.BlogPost
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/posts/{slug}/toggle-published [post]
func (h *BlogHandler) TogglePublished(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	post, err := h.service.TogglePublished(c.Request().Context(), actor, c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// Delete removes a post.
//
// @Summary      Delete a post
// @Tags         posts
// @Security     BearerAuth
// @Param        slug  path  string  true  "Post slug"
// @Success      204
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/posts/{slug} [delete]
func (h *BlogHandler) Delete(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), actor, c.Param("slug")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
