package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/inkwell/content-system/internal/core/domain"
)

func signToken(t *testing.T, secret, subject string, ttl time.Duration) string {
	t.Helper()
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func runMiddleware(e *echo.Echo, mw echo.MiddlewareFunc, header string, next echo.HandlerFunc) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := mw(next)(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func mustNotCall(t *testing.T) echo.HandlerFunc {
	return func(echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	}
}

// ── Auth ──────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	called := false

	rec := runMiddleware(e, Auth("secret"), "Bearer "+signToken(t, "secret", "u1", time.Hour), func(c echo.Context) error {
		called = true
		if c.Get(ContextUserID) != "u1" {
			t.Fatalf("user_id not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	cases := map[string]string{
		"missing header":  "",
		"wrong scheme":    "Token abc",
		"garbage token":   "Bearer not-a-token",
		"wrong secret":    "Bearer " + signToken(t, "other", "u1", time.Hour),
		"expired token":   "Bearer " + signToken(t, "secret", "u1", -time.Minute),
		"missing subject": "Bearer " + signToken(t, "secret", "", time.Hour),
	}

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			rec := runMiddleware(echo.New(), Auth("secret"), header, mustNotCall(t))
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

// ── OptionalAuth ──────────────────────────────────────────────────────────────

func TestOptionalAuth_AnonymousPassesThrough(t *testing.T) {
	called := false
	rec := runMiddleware(echo.New(), OptionalAuth("secret"), "", func(c echo.Context) error {
		called = true
		if c.Get(ContextUserID) != nil {
			t.Fatalf("user_id must not be set for anonymous requests")
		}
		return c.NoContent(http.StatusOK)
	})

	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected anonymous request to pass, got %d", rec.Code)
	}
}

func TestOptionalAuth_InvalidTokenRejected(t *testing.T) {
	rec := runMiddleware(echo.New(), OptionalAuth("secret"), "Bearer nope", mustNotCall(t))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

// ── LoadActor ─────────────────────────────────────────────────────────────────

type stubUsers struct {
	users map[string]*domain.User
	err   error
}

func (s *stubUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (s *stubUsers) Create(context.Context, *domain.User) error { return nil }
func (s *stubUsers) FindByEmail(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (s *stubUsers) FindByHandle(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (s *stubUsers) Update(context.Context, *domain.User) error { return nil }
func (s *stubUsers) ListDiscoverable(context.Context, int) ([]*domain.User, error) {
	return nil, nil
}

func withUserID(id string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if id != "" {
				c.Set(ContextUserID, id)
			}
			return next(c)
		}
	}
}

func chain(mws ...echo.MiddlewareFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		for i := len(mws) - 1; i >= 0; i-- {
			next = mws[i](next)
		}
		return next
	}
}

func TestLoadActor_ReadsCurrentUserState(t *testing.T) {
	users := &stubUsers{users: map[string]*domain.User{
		"u1": {ID: "u1", Role: domain.RoleUser, BannedFromPosting: true, Public: true, Handle: "alice"},
	}}

	rec := runMiddleware(echo.New(), chain(withUserID("u1"), LoadActor(users)), "", func(c echo.Context) error {
		actor := ActorFrom(c)
		if actor == nil {
			t.Fatalf("actor not loaded")
		}
		if actor.ID != "u1" || actor.Role != domain.RoleUser || !actor.BannedFromPosting || actor.Handle != "alice" {
			t.Fatalf("unexpected actor: %+v", actor)
		}
		return c.NoContent(http.StatusOK)
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestLoadActor_Anonymous(t *testing.T) {
	users := &stubUsers{}
	rec := runMiddleware(echo.New(), chain(withUserID(""), LoadActor(users)), "", func(c echo.Context) error {
		if ActorFrom(c) != nil {
			t.Fatalf("anonymous request must not carry an actor")
		}
		return c.NoContent(http.StatusOK)
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestLoadActor_DeletedUser(t *testing.T) {
	users := &stubUsers{users: map[string]*domain.User{}}
	rec := runMiddleware(echo.New(), chain(withUserID("gone"), LoadActor(users)), "", mustNotCall(t))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestLoadActor_RepositoryError(t *testing.T) {
	users := &stubUsers{err: errors.New("mongo down")}
	rec := runMiddleware(echo.New(), chain(withUserID("u1"), LoadActor(users)), "", mustNotCall(t))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
