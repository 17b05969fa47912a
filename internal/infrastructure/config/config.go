package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/inkwell/content-system/internal/core/domain"
	"github.com/inkwell/content-system/internal/core/policy"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	// BootstrapAdmins are emails that receive the admin role on registration.
	BootstrapAdmins []string `env:"BOOTSTRAP_ADMIN_EMAILS"`
	EventWorkers    int      `env:"EVENT_WORKERS, default=4"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Policy  PolicyConfig
	Captcha CaptchaConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=inkwell"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// CaptchaConfig configures contact form verification. An empty secret
// disables the check.
type CaptchaConfig struct {
	Secret    string        `env:"RECAPTCHA_SECRET"`
	VerifyURL string        `env:"RECAPTCHA_VERIFY_URL, default=https://www.google.com/recaptcha/api/siteverify"`
	Timeout   time.Duration `env:"RECAPTCHA_TIMEOUT,    default=5s"`
}

// PolicyConfig names the roles allowed to author each kind of content.
type PolicyConfig struct {
	AuthorRoles      []string `env:"POLICY_AUTHOR_ROLES,       default=admin,user"`
	OwnerEntityRoles []string `env:"POLICY_OWNER_ENTITY_ROLES, default=admin"`
	PageAuthorRoles  []string `env:"POLICY_PAGE_AUTHOR_ROLES,  default=admin"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("config: JWT_SECRET is required")
	}
	return &cfg, nil
}

// IsDevelopment reports whether human-friendly logging should be used.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// PolicyConfig builds the immutable authorization config. An unknown role
// name is an error so that typos fail at startup.
func (c *Config) PolicyConfig() (policy.Config, error) {
	authors, err := roleSet(c.Policy.AuthorRoles)
	if err != nil {
		return policy.Config{}, fmt.Errorf("POLICY_AUTHOR_ROLES: %w", err)
	}
	owners, err := roleSet(c.Policy.OwnerEntityRoles)
	if err != nil {
		return policy.Config{}, fmt.Errorf("POLICY_OWNER_ENTITY_ROLES: %w", err)
	}
	pages, err := roleSet(c.Policy.PageAuthorRoles)
	if err != nil {
		return policy.Config{}, fmt.Errorf("POLICY_PAGE_AUTHOR_ROLES: %w", err)
	}
	return policy.Config{Authors: authors, OwnerEntityAuthors: owners, PageAuthors: pages}, nil
}

func roleSet(names []string) (policy.RoleSet, error) {
	roles := make([]domain.Role, 0, len(names))
	for _, n := range names {
		r, err := domain.ParseRole(n)
		if err != nil {
			return policy.RoleSet{}, fmt.Errorf("%w: %q", err, n)
		}
		roles = append(roles, r)
	}
	return policy.NewRoleSet(roles...)
}
