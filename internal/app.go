package internal

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/plinth/pkg/config"
	"github.com/dmitrymomot/plinth/pkg/cookie"
	"github.com/dmitrymomot/plinth/pkg/logger"
)

// Default server timeouts (hardcoded, opinionated).
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 30 * time.Second
)

// defaultSubdomainOffset is the number of trailing host labels that are
// not counted as subdomains ("example.com" = 2).
const defaultSubdomainOffset = 2

// App orchestrates the application lifecycle.
// It manages HTTP routing, middleware, and graceful shutdown.
// App is immutable after creation - all configuration is done via New().
type App struct {
	router                  chi.Router
	logger                  *slog.Logger
	config                  *config.Config
	cookieManager           *cookie.Manager
	cookieCodec             cookie.Codec
	sessionManager          *SessionManager
	errorHandler            ErrorHandler
	notFoundHandler         HandlerFunc
	methodNotAllowedHandler HandlerFunc
	middlewares             []Middleware
	handlers                []Handler
	staticRoutes            []staticRoute
	trustProxy              bool
	subdomainOffset         int
}

// staticRoute represents a static file handler mount point.
type staticRoute struct {
	handler http.Handler
	pattern string
}

// New creates a new application with the given options.
// The App is immutable after creation.
//
// Configuration keys read during construction:
//
//	app.key               cookie encryption secret (min 32 bytes)
//	http.trust_proxy      trust X-Forwarded-* headers
//	http.subdomain_offset trailing host labels excluded from Subdomains()
//
// Example:
//
//	app := plinth.New(
//	    plinth.WithConfig(cfg),
//	    plinth.WithHandlers(
//	        handlers.NewAuth(repo),
//	        handlers.NewPages(repo),
//	    ),
//	)
func New(opts ...Option) *App {
	a := &App{
		router: chi.NewRouter(),
		logger: logger.NewNope(), // Default: noop logger (before options)
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.config == nil {
		a.config = config.FromMap(nil)
	}

	// The cookie manager falls back to the configured app key; WithSecret
	// ignores keys shorter than 32 bytes, leaving cookies plaintext.
	if a.cookieManager == nil {
		a.cookieManager = cookie.New(cookie.WithSecret(a.config.String("app.key")))
	}
	if a.cookieCodec == nil {
		a.cookieCodec = a.cookieManager
	}

	a.trustProxy = a.config.Bool("http.trust_proxy")
	a.subdomainOffset = a.config.Int("http.subdomain_offset")
	if a.subdomainOffset <= 0 {
		a.subdomainOffset = defaultSubdomainOffset
	}

	// Inject app's logger and proxy trust into the session manager
	if a.sessionManager != nil {
		a.sessionManager.setLogger(a.logger)
		a.sessionManager.setTrustProxy(a.trustProxy)
	}

	a.setupRoutes()
	return a
}

// Router returns the underlying chi.Router for the App.
// This is used internally for composing multi-app routing.
func (a *App) Router() chi.Router {
	return a.router
}

// Run starts the HTTP server and blocks until shutdown.
//
// Example:
//
//	app := plinth.New(
//	    plinth.WithHandlers(handlers.NewLandingHandler()),
//	)
//	err := app.Run(":8080", plinth.Logger(slog))
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := buildRunConfig(opts...)

	return runServer(runtimeConfig{
		handler:         a.router,
		address:         addr,
		logger:          cfg.logger,
		shutdownTimeout: cfg.shutdownTimeout,
		startupHooks:    cfg.startupHooks,
		shutdownHooks:   cfg.shutdownHooks,
		baseCtx:         cfg.baseCtx,
	})
}

// setupRoutes configures the router with middleware and handlers.
func (a *App) setupRoutes() {
	// Set custom error handlers on chi router
	if a.notFoundHandler != nil {
		a.router.NotFound(a.wrapHandler(a.notFoundHandler))
	}
	if a.methodNotAllowedHandler != nil {
		a.router.MethodNotAllowed(a.wrapHandler(a.methodNotAllowedHandler))
	}

	// Apply global middleware
	for _, mw := range a.middlewares {
		a.router.Use(a.adaptMiddleware(mw))
	}

	// Mount static file handlers
	for _, sr := range a.staticRoutes {
		a.router.Mount(sr.pattern, sr.handler)
	}

	// Register handlers
	r := &routerAdapter{router: a.router, app: a}
	for _, h := range a.handlers {
		h.Routes(r)
	}
}

// wrapHandler converts a HandlerFunc to http.HandlerFunc using the app's error handler.
func (a *App) wrapHandler(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := newContext(w, r, a)
		if err := c.parseBody(); err != nil {
			a.handleError(c, ErrBadRequest("malformed request body", WithError(err)))
			return
		}
		if err := h(c); err != nil {
			a.handleError(c, err)
		}
	}
}

// handleError handles errors from handlers using the configured error handler.
func (a *App) handleError(c Context, err error) {
	// Check if response has already been written
	if c.Written() {
		return
	}
	if a.errorHandler != nil {
		_ = a.errorHandler(c, err)
		return
	}

	httpErr := AsHTTPError(err)
	if httpErr == nil {
		a.logger.ErrorContext(c, "unhandled handler error", slog.Any("error", err))
		http.Error(c.Response(), "Internal Server Error", http.StatusInternalServerError)
		return
	}
	http.Error(c.Response(), httpErr.StatusText(), httpErr.Code)
}
