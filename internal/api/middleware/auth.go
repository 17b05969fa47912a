package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/inkwell/content-system/internal/core/domain"
	"github.com/inkwell/content-system/internal/core/policy"
	"github.com/inkwell/content-system/internal/core/ports"
)

// Context keys set by this package.
const (
	ContextUserID = "user_id"
	ContextActor  = "actor"
)

var errMissingHeader = errors.New("missing authorization header")

// Auth requires a valid bearer token and stores its subject under ContextUserID.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return authenticate(jwtSecret, true)
}

// OptionalAuth accepts anonymous requests. A header that is present but
// malformed or invalid is still rejected.
func OptionalAuth(jwtSecret string) echo.MiddlewareFunc {
	return authenticate(jwtSecret, false)
}

func authenticate(jwtSecret string, required bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			subject, err := parseBearer(c.Request().Header.Get("Authorization"), jwtSecret)
			switch {
			case errors.Is(err, errMissingHeader) && !required:
				return next(c)
			case err != nil:
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}

			c.Set(ContextUserID, subject)
			return next(c)
		}
	}
}

func parseBearer(header, jwtSecret string) (string, error) {
	if header == "" {
		return "", errMissingHeader
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", errors.New("invalid authorization header")
	}

	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (any, error) {
		return []byte(jwtSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !tkn.Valid || claims.Subject == "" {
		return "", errors.New("invalid token")
	}
	return claims.Subject, nil
}

// LoadActor resolves the authenticated user on every request and stores the
// resulting *policy.Actor under ContextActor. Anonymous requests pass through
// with no actor. A token whose user no longer exists is rejected.
func LoadActor(users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, _ := c.Get(ContextUserID).(string)
			if userID == "" {
				return next(c)
			}

			user, err := users.FindByID(c.Request().Context(), userID)
			if errors.Is(err, domain.ErrUserNotFound) {
				return echo.NewHTTPError(http.StatusUnauthorized, "unknown user")
			}
			if err != nil {
				return err
			}

			c.Set(ContextActor, policy.ActorFromUser(user))
			return next(c)
		}
	}
}

// ActorFrom returns the actor loaded by LoadActor, or nil for anonymous requests.
func ActorFrom(c echo.Context) *policy.Actor {
	actor, _ := c.Get(ContextActor).(*policy.Actor)
	return actor
}
