package plinth

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/plinth/internal"
	"github.com/dmitrymomot/plinth/pkg/config"
	"github.com/dmitrymomot/plinth/pkg/cookie"
	"github.com/dmitrymomot/plinth/pkg/logger"
	"github.com/dmitrymomot/plinth/pkg/session"
)

// Type aliases - public API
type (
	// App orchestrates the application lifecycle.
	// It manages HTTP routing, middleware, and graceful shutdown.
	App = internal.App

	// Router is the interface handlers use to declare routes.
	Router = internal.Router

	// Context is the request facade handlers receive. It provides
	// memoized access to input, cookies, sessions, and flash data.
	Context = internal.Context

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is the signature for route handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc to add cross-cutting concerns.
	Middleware = internal.Middleware

	// ErrorHandler handles errors returned from handlers.
	ErrorHandler = internal.ErrorHandler

	// MacroFunc is a named extension dispatched through c.Call.
	MacroFunc = internal.MacroFunc

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// HTTPError is a status-coded error for returning from handlers.
	HTTPError = internal.HTTPError

	// HTTPErrorOption configures an HTTPError.
	HTTPErrorOption = internal.HTTPErrorOption

	// Config provides read access to application configuration.
	Config = config.Config

	// ContextExtractor extracts a slog attribute from context.
	// Used with WithLogger to add request-scoped values to logs.
	ContextExtractor = logger.ContextExtractor

	// CookieOption configures the cookie manager.
	CookieOption = cookie.Option

	// CookieCodec decodes the full request cookie set.
	CookieCodec = cookie.Codec

	// SessionOption configures the session manager.
	SessionOption = internal.SessionOption

	// Session represents a user session.
	Session = session.Session

	// SessionStore defines the interface for session persistence.
	SessionStore = session.Store

	// ResponseWriter wraps http.ResponseWriter with write hooks.
	ResponseWriter = internal.ResponseWriter
)

// Constructors

// New creates a new application with the given options.
// The App is immutable after creation.
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
//
//	err := app.Run(":8080", plinth.Logger(slog))
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// App options

// WithConfig sets the application configuration.
// The app reads app.key, http.trust_proxy and http.subdomain_offset
// from it during construction.
func WithConfig(cfg *Config) Option {
	return internal.WithConfig(cfg)
}

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithHandlers registers handlers that declare routes.
// Each handler's Routes method is called during setup.
func WithHandlers(h ...Handler) Option {
	return internal.WithHandlers(h...)
}

// WithStaticFiles mounts a static file handler at the given pattern.
// Directory listings are disabled. Files are served with default cache headers.
//
// Example:
//
//	//go:embed public
//	var assets embed.FS
//
//	plinth.New(
//	    plinth.WithStaticFiles("/static/", assets, "public"),
//	)
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return internal.WithStaticFiles(pattern, fsys, subDir)
}

// WithErrorHandler sets a custom error handler for handler errors.
// Called when a handler returns a non-nil error.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithNotFoundHandler sets a custom 404 handler.
func WithNotFoundHandler(h HandlerFunc) Option {
	return internal.WithNotFoundHandler(h)
}

// WithMethodNotAllowedHandler sets a custom 405 handler.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return internal.WithMethodNotAllowedHandler(h)
}

// WithLogger creates a logger with a component name and optional extractors.
// The component name is added to every log entry for easy filtering.
// Extractors pull values from context (e.g., request_id, user_id).
//
// Example:
//
//	plinth.New(
//	    plinth.WithLogger("api", middlewares.RequestIDExtractor()),
//	)
func WithLogger(component string, extractors ...ContextExtractor) Option {
	return internal.WithLogger(component, extractors...)
}

// WithCustomLogger sets a fully custom logger.
// Use this when you need complete control over logging configuration.
//
// Example:
//
//	customLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
//	plinth.New(
//	    plinth.WithCustomLogger(customLogger),
//	)
func WithCustomLogger(l *slog.Logger) Option {
	return internal.WithCustomLogger(l)
}

// WithCookieOptions configures the cookie manager.
// Without this option the manager derives its secret from the app.key
// config value.
//
// Example:
//
//	plinth.New(
//	    plinth.WithCookieOptions(
//	        plinth.WithCookieSecret(os.Getenv("COOKIE_SECRET")),
//	        plinth.WithCookieSecure(true),
//	    ),
//	)
func WithCookieOptions(opts ...CookieOption) Option {
	return internal.WithCookieOptions(opts...)
}

// WithCookieCodec overrides the codec used to decode request cookies.
func WithCookieCodec(codec CookieCodec) Option {
	return internal.WithCookieCodec(codec)
}

// WithMacros registers named request macros during app construction.
func WithMacros(macros map[string]MacroFunc) Option {
	return internal.WithMacros(macros)
}

// RegisterMacro adds a named macro to the process-wide registry.
// Macros registered before the server starts are available through
// c.Call on every request.
//
// Example:
//
//	plinth.RegisterMacro("tenant", func(c plinth.Context, args ...any) (any, error) {
//	    return c.Subdomains(), nil
//	})
func RegisterMacro(name string, fn MacroFunc) {
	internal.RegisterMacro(name, fn)
}

// Run options

// Address sets the HTTP server address.
// Defaults to ":8080".
func Address(addr string) RunOption {
	return internal.Address(addr)
}

// Logger sets the runtime logger.
// If nil, logging is disabled.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout sets the timeout for graceful shutdown.
// This applies to both the HTTP server and shutdown hooks.
// Defaults to 30 seconds.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// StartupHook registers a function to run before the server accepts
// traffic. If any hook fails, the server stops and returns the error.
//
// Example:
//
//	plinth.StartupHook(func(ctx context.Context) error {
//	    return db.Migrate(ctx, pool, session.Migrations, "goose_db_version", log)
//	})
func StartupHook(fn func(context.Context) error) RunOption {
	return internal.StartupHook(fn)
}

// ShutdownHook registers a cleanup function to run during shutdown.
// Hooks are called in the order they were registered.
// Each hook receives a context with the shutdown timeout.
//
// Example:
//
//	plinth.ShutdownHook(db.Shutdown(pool))
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// WithContext sets a custom base context for signal handling.
// Useful for testing or when integrating with existing context hierarchies.
// Defaults to context.Background() if not set.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// Error helpers

// NewHTTPError creates an HTTPError with the given status code and message.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

// AsHTTPError extracts an HTTPError from an error chain, or nil.
func AsHTTPError(err error) *HTTPError {
	return internal.AsHTTPError(err)
}

// Errors for checking return values.
var (
	ErrInvalidArgument = internal.ErrInvalidArgument
	ErrMacroNotFound   = internal.ErrMacroNotFound
)

// Context helpers

// ContextValue retrieves a typed value from the context.
// Returns the zero value of T if the key is not found or type assertion fails.
//
// Example:
//
//	type tenantKey struct{}
//
//	tenant := plinth.ContextValue[string](c, tenantKey{})
func ContextValue[T any](c Context, key any) T {
	if v, ok := c.Value(key).(T); ok {
		return v
	}
	var zero T
	return zero
}

// Cookie options

// WithCookieSecret sets the secret for signing and encryption.
// Must be at least 32 bytes.
func WithCookieSecret(secret string) CookieOption {
	return cookie.WithSecret(secret)
}

// WithCookieDomain sets the cookie domain.
func WithCookieDomain(domain string) CookieOption {
	return cookie.WithDomain(domain)
}

// WithCookiePath sets the cookie path.
func WithCookiePath(path string) CookieOption {
	return cookie.WithPath(path)
}

// WithCookieSecure sets the Secure flag.
func WithCookieSecure(secure bool) CookieOption {
	return cookie.WithSecure(secure)
}

// WithCookieHTTPOnly sets the HttpOnly flag.
func WithCookieHTTPOnly(httpOnly bool) CookieOption {
	return cookie.WithHTTPOnly(httpOnly)
}

// WithCookieSameSite sets the SameSite attribute.
func WithCookieSameSite(ss http.SameSite) CookieOption {
	return cookie.WithSameSite(ss)
}

// Cookie errors for checking return values.
var (
	ErrCookieNotFound  = cookie.ErrNotFound
	ErrCookieNoSecret  = cookie.ErrNoSecret
	ErrCookieBadSecret = cookie.ErrBadSecret
	ErrCookieBadSig    = cookie.ErrBadSig
	ErrCookieDecrypt   = cookie.ErrDecrypt
)

// Session options

// WithSession enables server-side session management.
// A SessionStore implementation must be provided (e.g., RedisStore).
// Sessions are loaded lazily and saved automatically before the response is written.
//
// Example:
//
//	store := session.NewRedisStore(client)
//	plinth.New(
//	    plinth.WithSession(store,
//	        plinth.WithSessionCookieName("__sid"),
//	        plinth.WithSessionMaxAge(86400 * 30),
//	    ),
//	)
func WithSession(store SessionStore, opts ...SessionOption) Option {
	return internal.WithSession(store, opts...)
}

// WithSessionCookieName sets the session cookie name.
// Defaults to "__sid".
func WithSessionCookieName(name string) SessionOption {
	return internal.WithSessionCookieName(name)
}

// WithSessionMaxAge sets the session max age in seconds.
// Defaults to 30 days.
func WithSessionMaxAge(seconds int) SessionOption {
	return internal.WithSessionMaxAge(seconds)
}

// WithSessionDomain sets the session cookie domain.
func WithSessionDomain(domain string) SessionOption {
	return internal.WithSessionDomain(domain)
}

// WithSessionPath sets the session cookie path.
// Defaults to "/".
func WithSessionPath(path string) SessionOption {
	return internal.WithSessionPath(path)
}

// WithSessionSecure sets the session cookie Secure flag.
// Defaults to false (should be true in production with HTTPS).
func WithSessionSecure(secure bool) SessionOption {
	return internal.WithSessionSecure(secure)
}

// WithSessionHTTPOnly sets the session cookie HttpOnly flag.
// Defaults to true (recommended for security).
func WithSessionHTTPOnly(httpOnly bool) SessionOption {
	return internal.WithSessionHTTPOnly(httpOnly)
}

// WithSessionSameSite sets the session cookie SameSite attribute.
// Defaults to SameSiteLaxMode.
func WithSessionSameSite(sameSite http.SameSite) SessionOption {
	return internal.WithSessionSameSite(sameSite)
}

// Session errors for checking return values.
var (
	ErrSessionNotConfigured = session.ErrNotConfigured
	ErrSessionNotFound      = session.ErrNotFound
	ErrSessionExpired       = session.ErrExpired
	ErrSessionInvalidToken  = session.ErrInvalidToken
)

// SessionValue is a typed helper to retrieve session values with type safety.
// Returns an error if the key doesn't exist or type assertion fails.
//
// Example:
//
//	theme, err := plinth.SessionValue[string](sess, "theme")
func SessionValue[T any](sess *Session, key string) (T, error) {
	return session.Value[T](sess, key)
}

// SessionValueOr is a typed helper that returns a default value if the key
// doesn't exist or type assertion fails.
//
// Example:
//
//	theme := plinth.SessionValueOr(sess, "theme", "light")
func SessionValueOr[T any](sess *Session, key string, defaultVal T) T {
	return session.ValueOr(sess, key, defaultVal)
}
