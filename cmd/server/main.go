// Command server runs the Inkwell content API.
//
// @title                       Inkwell content API
// @version                     1.0
// @description                 Blog posts, pages, public profiles, newsletter and contact intake with role-based authorship.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/inkwell/content-system/internal/api"
	"github.com/inkwell/content-system/internal/api/handler"
	"github.com/inkwell/content-system/internal/core/policy"
	"github.com/inkwell/content-system/internal/core/ports"
	"github.com/inkwell/content-system/internal/core/service"
	"github.com/inkwell/content-system/internal/infrastructure/captcha"
	"github.com/inkwell/content-system/internal/infrastructure/config"
	"github.com/inkwell/content-system/internal/infrastructure/db/mongo"
	"github.com/inkwell/content-system/internal/infrastructure/db/redis"
	"github.com/inkwell/content-system/internal/infrastructure/queue"
	"github.com/inkwell/content-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		l := logger.Init(logger.Options{Service: "inkwell"})
		l.Error().Err(err).Msg("load config")
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "inkwell",
	})

	policyCfg, err := cfg.PolicyConfig()
	if err != nil {
		log.Error().Err(err).Msg("invalid policy configuration")
		return err
	}
	eval := policy.New(policyCfg)

	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Error().Err(err).Msg("connect mongo")
		return err
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		log.Error().Err(err).Msg("ensure indexes")
		return err
	}

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Error().Err(err).Msg("connect redis")
		return err
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close")
		}
	}()

	// --- Repositories ---
	users := mongo.NewUserRepository(db)
	posts := mongo.NewPostRepository(db)
	pages := mongo.NewPageRepository(db)
	events := mongo.NewEventRepository(db)
	subscriptions := mongo.NewNewsletterRepository(db)
	contactMessages := mongo.NewContactRepository(db)
	idem := redis.NewIdempotencyStore(rdb)

	var spam ports.SpamChecker = captcha.AllowAll{}
	if cfg.Captcha.Secret != "" {
		spam = captcha.NewRecaptcha(captcha.Config{
			Secret:    cfg.Captcha.Secret,
			VerifyURL: cfg.Captcha.VerifyURL,
			Timeout:   cfg.Captcha.Timeout,
		})
	} else {
		log.Warn().Msg("RECAPTCHA_SECRET not set, contact form accepts every submission")
	}

	dispatcher := queue.NewDispatcher(cfg.EventWorkers, events, logger.Component("dispatcher"))
	dispatcher.Start(ctx)

	// --- Services ---
	newsletter := service.NewNewsletterService(subscriptions, logger.Component("newsletter"))
	profiles := service.NewProfileService(users, eval, newsletter, logger.Component("profiles"))

	e := api.NewRouter(api.Dependencies{
		JWTSecret:  cfg.JWTSecret,
		Users:      users,
		Auth:       service.NewAuthService(users, cfg.JWTSecret, cfg.TokenTTL, cfg.BootstrapAdmins, logger.Component("auth")),
		Blog:       service.NewBlogService(posts, users, eval, dispatcher, idem, logger.Component("blog")),
		Pages:      service.NewPageService(pages, eval, dispatcher, idem, logger.Component("pages")),
		Profiles:   profiles,
		Admin:      profiles,
		Newsletter: newsletter,
		Contact:    service.NewContactService(contactMessages, spam, logger.Component("contact")),
		HealthChecks: map[string]handler.Pinger{
			"mongodb": func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) },
			"redis":   func(ctx context.Context) error { return redis.Ping(ctx, rdb) },
		},
		Log: logger.Component("http"),
	})

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().
			Str("port", cfg.Port).
			Strs("owner_entity_roles", roleNames(policyCfg.OwnerEntityAuthors)).
			Strs("page_author_roles", roleNames(policyCfg.PageAuthors)).
			Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http shutdown")
		}
		return dispatcher.Stop(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}

func roleNames(s policy.RoleSet) []string {
	roles := s.Roles()
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}
