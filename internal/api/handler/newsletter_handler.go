package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/content-system/internal/core/ports"
)

// NewsletterHandler serves the public newsletter sign-up flow.
type NewsletterHandler struct {
	service ports.NewsletterService
}

func NewNewsletterHandler(service ports.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{service: service}
}

// Subscribe adds an address pending confirmation. The subscription id is
// never returned here; it only reaches the address owner.
//
// @Summary      Sign up for the newsletter
// @Tags         newsletter
// @Accept       json
// @Produce      json
// @Param        body  body      newsletterSignupRequest  true  "Address"
// @Success      202   {object}  newsletterResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/newsletter [post]
func (h *NewsletterHandler) Subscribe(c echo.Context) error {
	var req newsletterSignupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	sub, err := h.service.Subscribe(c.Request().Context(), req.Email)
	if err != nil {
		return err
	}
	resp := newsletterResponse{Email: sub.Email, Confirmed: sub.Confirmed}
	if !sub.Confirmed {
		resp.Message = "check your email for a confirmation link"
	}
	return c.JSON(http.StatusAccepted, resp)
}

// Confirm activates a pending subscription.
//
// @Summary      Confirm a newsletter subscription
// @Tags         newsletter
// @Accept       json
// @Produce      json
// @Param        body  body      newsletterTokenRequest  true  "Confirmation link values"
// @Success      200   {object}  newsletterResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/newsletter/confirm [post]
func (h *NewsletterHandler) Confirm(c echo.Context) error {
	var req newsletterTokenRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	sub, err := h.service.Confirm(c.Request().Context(), req.ID, req.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newsletterResponse{Email: sub.Email, Confirmed: sub.Confirmed})
}

// Unsubscribe withdraws consent for an address.
//
// @Summary      Leave the newsletter
// @Tags         newsletter
// @Accept       json
// @Param        body  body  newsletterTokenRequest  true  "Unsubscribe link values"
// @Success      204
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/newsletter/unsubscribe [post]
func (h *NewsletterHandler) Unsubscribe(c echo.Context) error {
	var req newsletterTokenRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.service.Unsubscribe(c.Request().Context(), req.ID, req.Email); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
