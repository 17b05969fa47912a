package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/inkwell/content-system/docs"
	"github.com/inkwell/content-system/internal/api/handler"
	"github.com/inkwell/content-system/internal/api/middleware"
	"github.com/inkwell/content-system/internal/core/domain"
	"github.com/inkwell/content-system/internal/core/ports"
)

// Dependencies are the collaborators the HTTP layer needs. They are built
// once in main.
type Dependencies struct {
	JWTSecret string
	Users     ports.UserRepository

	Auth       ports.AuthService
	Blog       ports.BlogService
	Pages      ports.PageService
	Profiles   ports.ProfileService
	Admin      ports.AdminService
	Newsletter ports.NewsletterService
	Contact    ports.ContactService

	// HealthChecks are pinged by /health/ready, keyed by dependency name.
	HealthChecks map[string]handler.Pinger
	Log          zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddleware("inkwell"))

	// --- Ops (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.HealthChecks)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- API v1 ---
	// Every /v1 route accepts anonymous callers; handlers that need an
	// actor reject nil with 401.
	v1 := e.Group("/v1", middleware.OptionalAuth(deps.JWTSecret), middleware.LoadActor(deps.Users))

	blog := handler.NewBlogHandler(deps.Blog)
	v1.GET("/posts", blog.List)
	v1.POST("/posts", blog.Create)
	v1.GET("/posts/:slug", blog.Get)
	v1.PUT("/posts/:slug", blog.Update)
	v1.POST("/posts/:slug/toggle-published", blog.TogglePublished)
	v1.DELETE("/posts/:slug", blog.Delete)
	v1.GET("/users/:handle/posts", blog.ListByHandle)
	v1.GET("/me/posts", blog.ListMine)

	pages := handler.NewPageHandler(deps.Pages)
	v1.GET("/pages", pages.List)
	v1.POST("/pages", pages.Create)
	v1.GET("/pages/:slug", pages.Get)
	v1.PUT("/pages/:slug", pages.Update)
	v1.POST("/pages/:slug/toggle-published", pages.TogglePublished)
	v1.DELETE("/pages/:slug", pages.Delete)

	profiles := handler.NewProfileHandler(deps.Profiles)
	v1.GET("/me", profiles.Me)
	v1.PUT("/me", profiles.UpdateMe)
	v1.GET("/users", profiles.Directory)
	v1.GET("/users/:handle", profiles.PublicProfile)

	newsletter := handler.NewNewsletterHandler(deps.Newsletter)
	v1.POST("/newsletter", newsletter.Subscribe)
	v1.POST("/newsletter/confirm", newsletter.Confirm)
	v1.POST("/newsletter/unsubscribe", newsletter.Unsubscribe)

	contact := handler.NewContactHandler(deps.Contact)
	v1.POST("/contact", contact.Submit)

	admin := handler.NewAdminHandler(deps.Admin)
	adminGroup := v1.Group("/admin", middleware.RBAC(domain.RoleAdmin))
	adminGroup.PUT("/users/:id/role", admin.SetRole)
	adminGroup.PUT("/users/:id/ban", admin.SetBan)

	return e
}

// requestLogger emits one structured line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Status >= 500 {
				evt = log.Error().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
