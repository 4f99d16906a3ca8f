// Package lawsite is the backend of a law firm's marketing site: a public
// blog, a contact form, and a small admin panel for managing posts and
// reading contact queries. It is built with Go, Echo, and templ.
//
// Callers may provide their own templ templates via the ViewFuncs struct;
// lawsite handles the handler logic, middleware, authorization and storage.
package lawsite

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// App is the central application. It wires together the store, service,
// handlers, middleware, and user-provided templates.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Store   *Store
	Service *Service
	Views   ViewFuncs
	Log     zerolog.Logger

	loginLimiter   *RateLimiter
	contactLimiter *RateLimiter
	customRoutes   []func(*App)
	customLogger   bool
	staticDir      string
	now            func() time.Time
}

// New creates an App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "public",
		now:       time.Now,
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}
	if !a.customLogger {
		a.Log = NewLogger(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	}

	return a
}

// Init opens the store and registers middleware and routes. Start calls it;
// tests call it directly and drive a.Echo with httptest.
func (a *App) Init() error {
	if err := a.Config.Validate(); err != nil {
		return fmt.Errorf("lawsite: %w", err)
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("lawsite: init store: %w", err)
	}
	a.Store = store
	a.Service = NewService(store, a.Log, a.now, a.Config.PageSize)

	a.loginLimiter = NewRateLimiter(a.Config.LoginMaxAttempts, a.Config.LoginWindow)
	a.contactLimiter = NewRateLimiter(10, time.Hour)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start initializes the app and serves until ctx is cancelled.
func (a *App) Start(ctx context.Context) error {
	if err := a.Init(); err != nil {
		return err
	}
	defer a.Close()

	errCh := make(chan error, 1)
	go func() {
		a.Log.Info().Str("addr", a.Config.Addr).Msg("listening")
		if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return a.Echo.Shutdown(shutdownCtx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	// Public pages
	e.GET("/", a.handleHome)
	e.GET("/blog", handleBlogRedirect)
	e.GET("/blog/:slug/", a.handlePost)

	// Public API
	api := e.Group("/api")
	api.GET("/blogs", a.handleListBlogs)
	api.GET("/blogs/page", a.handleBlogPage)
	api.GET("/blog", a.handleGetBlog)
	api.POST("/contact", a.handleContact)

	// Admin pages
	e.GET("/admin/", a.handleAdmin)
	e.GET("/admin/login/", a.handleAdminLoginPage)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", a.handleAdminLogout)
	e.GET("/admin/images/", a.handleImageList)
	e.POST("/admin/images/upload/", a.handleImageUpload)
	e.DELETE("/admin/images/:filename/", a.handleImageDelete)

	// Admin API
	admin := api.Group("/admin")
	admin.POST("/blogs", a.handleCreateBlog)
	admin.PATCH("/blogs/:id", a.handleEditBlog)
	admin.DELETE("/blogs/:id", a.handleDeleteBlog)
	admin.GET("/queries", a.handleListQueries)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.loginLimiter != nil {
		a.loginLimiter.Stop()
	}
	if a.contactLimiter != nil {
		a.contactLimiter.Stop()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
