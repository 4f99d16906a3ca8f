package lawsite

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// SiteConfig holds all configuration for the firm's site.
type SiteConfig struct {
	Name        string `env:"SITE_NAME" envDefault:"Harbor Law"`
	URL         string `env:"SITE_URL" envDefault:"http://localhost:3000"`
	Description string `env:"SITE_DESCRIPTION"`

	Addr         string `env:"ADDR" envDefault:":3000"`
	DatabasePath string `env:"DATABASE_PATH" envDefault:"data/site.db"`

	SessionSecret string `env:"SESSION_SECRET"`
	CookieSecure  bool   `env:"COOKIE_SECURE"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"` // "console" or "json"
	LogFile   string `env:"LOG_FILE"`

	LoginMaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS" envDefault:"5"`
	LoginWindow      time.Duration `env:"LOGIN_WINDOW" envDefault:"1m"`

	PageSize int `env:"BLOG_PAGE_SIZE" envDefault:"3"`
}

// LoadConfig reads SiteConfig from the environment and validates it.
func LoadConfig() (SiteConfig, error) {
	var cfg SiteConfig
	if err := env.Parse(&cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("config: parse env: %w", err)
	}
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return SiteConfig{}, fmt.Errorf("config: validate: %w", err)
	}
	return cfg, nil
}

// Validate checks the fields the server cannot start without.
func (c SiteConfig) Validate() error {
	if c.SessionSecret == "" {
		return errors.New("SESSION_SECRET is required")
	}
	if len(c.SessionSecret) < 32 {
		return errors.New("SESSION_SECRET must be at least 32 bytes")
	}
	return nil
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Harbor Law"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/site.db"
	}
	if c.LoginMaxAttempts <= 0 {
		c.LoginMaxAttempts = 5
	}
	if c.LoginWindow <= 0 {
		c.LoginWindow = time.Minute
	}
	if c.PageSize <= 0 {
		c.PageSize = defaultPageSize
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for static assets and uploads (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithLogger replaces the logger built from LogLevel/LogFormat.
func WithLogger(l zerolog.Logger) Option {
	return func(a *App) {
		a.Log = l
		a.customLogger = true
	}
}

// WithClock overrides the time source used for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}
