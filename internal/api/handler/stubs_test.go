package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/content-system/internal/api/middleware"
	"github.com/inkwell/content-system/internal/core/domain"
	"github.com/inkwell/content-system/internal/core/policy"
	"github.com/inkwell/content-system/internal/core/ports"
)

// newTestContext builds an echo context with the production validator.
// A non-nil actor is stored the way middleware.LoadActor would.
func newTestContext(method, target, body string, actor *policy.Actor) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if actor != nil {
		c.Set(middleware.ContextActor, actor)
	}
	return c, rec
}

// ── Auth ──────────────────────────────────────────────────────────────────────

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

// ── Blog ──────────────────────────────────────────────────────────────────────

type stubBlogService struct {
	ports.BlogService

	listPublishedFn func(ctx context.Context, limit int) ([]*domain.BlogPost, error)
	getFn           func(ctx context.Context, actor *policy.Actor, slug string) (*domain.BlogPost, error)
	createFn        func(ctx context.Context, actor *policy.Actor, in ports.CreateContentInput) (*ports.CreateResult[*domain.BlogPost], error)
	updateFn        func(ctx context.Context, actor *policy.Actor, in ports.UpdateContentInput) (*domain.BlogPost, error)
	deleteFn        func(ctx context.Context, actor *policy.Actor, slug string) error
}

func (s *stubBlogService) ListPublished(ctx context.Context, limit int) ([]*domain.BlogPost, error) {
	return s.listPublishedFn(ctx, limit)
}

func (s *stubBlogService) Get(ctx context.Context, actor *policy.Actor, slug string) (*domain.BlogPost, error) {
	return s.getFn(ctx, actor, slug)
}

func (s *stubBlogService) Create(ctx context.Context, actor *policy.Actor, in ports.CreateContentInput) (*ports.CreateResult[*domain.BlogPost], error) {
	return s.createFn(ctx, actor, in)
}

func (s *stubBlogService) Update(ctx context.Context, actor *policy.Actor, in ports.UpdateContentInput) (*domain.BlogPost, error) {
	return s.updateFn(ctx, actor, in)
}

func (s *stubBlogService) Delete(ctx context.Context, actor *policy.Actor, slug string) error {
	return s.deleteFn(ctx, actor, slug)
}

// ── Pages ─────────────────────────────────────────────────────────────────────

type stubPageService struct {
	ports.PageService

	listPublishedFn func(ctx context.Context, limit int) ([]*domain.Page, error)
	getFn           func(ctx context.Context, actor *policy.Actor, slug string) (*domain.Page, error)
	createFn        func(ctx context.Context, actor *policy.Actor, in ports.CreateContentInput) (*ports.CreateResult[*domain.Page], error)
	updateFn        func(ctx context.Context, actor *policy.Actor, in ports.UpdateContentInput) (*domain.Page, error)
	toggleFn        func(ctx context.Context, actor *policy.Actor, slug string) (*domain.Page, error)
	deleteFn        func(ctx context.Context, actor *policy.Actor, slug string) error
}

func (s *stubPageService) ListPublished(ctx context.Context, limit int) ([]*domain.Page, error) {
	return s.listPublishedFn(ctx, limit)
}

func (s *stubPageService) Get(ctx context.Context, actor *policy.Actor, slug string) (*domain.Page, error) {
	return s.getFn(ctx, actor, slug)
}

func (s *stubPageService) Create(ctx context.Context, actor *policy.Actor, in ports.CreateContentInput) (*ports.CreateResult[*domain.Page], error) {
	return s.createFn(ctx, actor, in)
}

func (s *stubPageService) Update(ctx context.Context, actor *policy.Actor, in ports.UpdateContentInput) (*domain.Page, error) {
	return s.updateFn(ctx, actor, in)
}

func (s *stubPageService) TogglePublished(ctx context.Context, actor *policy.Actor, slug string) (*domain.Page, error) {
	return s.toggleFn(ctx, actor, slug)
}

func (s *stubPageService) Delete(ctx context.Context, actor *policy.Actor, slug string) error {
	return s.deleteFn(ctx, actor, slug)
}

// ── Profiles ──────────────────────────────────────────────────────────────────

type stubProfileService struct {
	ports.ProfileService

	meFn        func(ctx context.Context, actor *policy.Actor) (*domain.User, ports.Capabilities, error)
	updateFn    func(ctx context.Context, actor *policy.Actor, in ports.UpdateProfileInput) (*domain.User, error)
	directoryFn func(ctx context.Context, limit int) ([]*domain.User, error)
	publicFn    func(ctx context.Context, handle string) (*domain.User, error)
	marketing   bool
}

func (s *stubProfileService) AcceptsMarketing(context.Context, *policy.Actor) bool {
	return s.marketing
}

func (s *stubProfileService) Me(ctx context.Context, actor *policy.Actor) (*domain.User, ports.Capabilities, error) {
	return s.meFn(ctx, actor)
}

func (s *stubProfileService) UpdateProfile(ctx context.Context, actor *policy.Actor, in ports.UpdateProfileInput) (*domain.User, error) {
	return s.updateFn(ctx, actor, in)
}

func (s *stubProfileService) Directory(ctx context.Context, limit int) ([]*domain.User, error) {
	return s.directoryFn(ctx, limit)
}

func (s *stubProfileService) PublicProfile(ctx context.Context, handle string) (*domain.User, error) {
	return s.publicFn(ctx, handle)
}

// ── Newsletter and contact ────────────────────────────────────────────────────

type stubNewsletterService struct {
	subscribeFn   func(ctx context.Context, email string) (*domain.NewsletterSubscription, error)
	confirmFn     func(ctx context.Context, id, email string) (*domain.NewsletterSubscription, error)
	unsubscribeFn func(ctx context.Context, id, email string) error
}

func (s *stubNewsletterService) Subscribe(ctx context.Context, email string) (*domain.NewsletterSubscription, error) {
	return s.subscribeFn(ctx, email)
}

func (s *stubNewsletterService) Confirm(ctx context.Context, id, email string) (*domain.NewsletterSubscription, error) {
	return s.confirmFn(ctx, id, email)
}

func (s *stubNewsletterService) Unsubscribe(ctx context.Context, id, email string) error {
	return s.unsubscribeFn(ctx, id, email)
}

type stubContactService struct {
	submitFn func(ctx context.Context, in ports.ContactInput) (*domain.ContactMessage, error)
}

func (s *stubContactService) Submit(ctx context.Context, in ports.ContactInput) (*domain.ContactMessage, error) {
	return s.submitFn(ctx, in)
}

// ── Admin ─────────────────────────────────────────────────────────────────────

type stubAdminService struct {
	setRoleFn   func(ctx context.Context, actor *policy.Actor, userID string, role domain.Role) (*domain.User, error)
	setBannedFn func(ctx context.Context, actor *policy.Actor, userID string, banned bool) (*domain.User, error)
}

func (s *stubAdminService) SetRole(ctx context.Context, actor *policy.Actor, userID string, role domain.Role) (*domain.User, error) {
	return s.setRoleFn(ctx, actor, userID, role)
}

func (s *stubAdminService) SetBanned(ctx context.Context, actor *policy.Actor, userID string, banned bool) (*domain.User, error) {
	return s.setBannedFn(ctx, actor, userID, banned)
}
