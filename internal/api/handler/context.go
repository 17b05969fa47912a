package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/content-system/internal/api/middleware"
	"github.com/inkwell/content-system/internal/core/policy"
)

const headerIdempotencyKey = "Idempotency-Key"

// ctxActor returns the actor loaded by middleware.LoadActor, or nil for an
// anonymous request.
func ctxActor(c echo.Context) *policy.Actor {
	return middleware.ActorFrom(c)
}

// requireActor fails fast with 401 on routes that make no sense anonymously.
func requireActor(c echo.Context) (*policy.Actor, error) {
	actor := ctxActor(c)
	if actor == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return actor, nil
}

// queryLimit reads the optional ?limit= parameter. Zero means "service default".
func queryLimit(c echo.Context) (int, error) {
	var limit int
	if err := echo.QueryParamsBinder(c).Int("limit", &limit).BindError(); err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "limit must be an integer")
	}
	return limit, nil
}

// bindAndValidate decodes the request body into req and runs the validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return nil
}
