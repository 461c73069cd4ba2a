package internal

import (
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/plinth/pkg/config"
	"github.com/dmitrymomot/plinth/pkg/cookie"
	"github.com/dmitrymomot/plinth/pkg/logger"
	"github.com/dmitrymomot/plinth/pkg/session"
)

// Option configures the application.
type Option func(*App)

// WithConfig sets the application configuration.
// The app reads app.key, http.trust_proxy and http.subdomain_offset
// from it during construction; handlers can access any key via the
// config accessors.
//
// Example:
//
//	cfg, err := config.New(
//	    config.WithFile("config.yml"),
//	    config.WithEnvPrefix("APP_"),
//	)
//	plinth.New(plinth.WithConfig(cfg))
func WithConfig(cfg *config.Config) Option {
	return func(a *App) {
		if cfg != nil {
			a.config = cfg
		}
	}
}

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithHandlers registers handlers that declare routes.
// Each handler's Routes method is called during setup.
func WithHandlers(h ...Handler) Option {
	return func(a *App) {
		a.handlers = append(a.handlers, h...)
	}
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
	return func(a *App) {
		subFS, err := fs.Sub(fsys, subDir)
		if err != nil {
			panic(err)
		}

		fileServer := http.FileServer(http.FS(subFS))

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Block directory listings
			if strings.HasSuffix(r.URL.Path, "/") {
				http.NotFound(w, r)
				return
			}

			w.Header().Set("Cache-Control", "public, max-age=3600")
			w.Header().Set("X-Content-Type-Options", "nosniff")

			fileServer.ServeHTTP(w, r)
		})

		a.staticRoutes = append(a.staticRoutes, staticRoute{handler, pattern})
	}
}

// WithErrorHandler sets a custom error handler for handler errors.
// Called when a handler returns a non-nil error.
//
// Example:
//
//	plinth.WithErrorHandler(func(c plinth.Context, err error) error {
//	    return c.JSON(http.StatusInternalServerError, map[string]string{
//	        "error": err.Error(),
//	    })
//	})
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		a.errorHandler = h
	}
}

// WithNotFoundHandler sets a custom 404 handler.
func WithNotFoundHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.notFoundHandler = h
	}
}

// WithMethodNotAllowedHandler sets a custom 405 handler.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.methodNotAllowedHandler = h
	}
}

// WithLogger creates a logger with a component name and optional extractors.
// The component name is added to every log entry for easy filtering.
// Extractors pull values from context (e.g., request_id, user_id).
//
// Example:
//
//	plinth.New(
//	    plinth.WithLogger("api", requestIDExtractor),
//	)
func WithLogger(component string, extractors ...logger.ContextExtractor) Option {
	return func(a *App) {
		a.logger = logger.New(logger.WithExtractors(extractors...)).With("component", component)
	}
}

// WithCustomLogger sets a fully custom logger.
// Use this when you need complete control over logging configuration.
func WithCustomLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithCookieOptions configures the cookie manager.
// Without this option the manager is built from the app.key config value.
//
// Example:
//
//	plinth.New(
//	    plinth.WithCookieOptions(
//	        cookie.WithSecret(os.Getenv("COOKIE_SECRET")),
//	        cookie.WithSecure(true),
//	    ),
//	)
func WithCookieOptions(opts ...cookie.Option) Option {
	return func(a *App) {
		a.cookieManager = cookie.New(opts...)
	}
}

// WithCookieCodec overrides the codec used to decode request cookies.
// The cookie manager remains in use for writing response cookies.
func WithCookieCodec(codec cookie.Codec) Option {
	return func(a *App) {
		if codec != nil {
			a.cookieCodec = codec
		}
	}
}

// WithSession enables server-side session management.
// A session.Store implementation must be provided (e.g., RedisStore).
// Sessions are loaded lazily and saved automatically before the response
// is written.
//
// Example:
//
//	store := session.NewRedisStore(client)
//	plinth.New(
//	    plinth.WithSession(store,
//	        plinth.WithSessionCookieName("__sid"),
//	        plinth.WithSessionMaxAge(86400 * 30),
//	        plinth.WithSessionSecure(true),
//	    ),
//	)
func WithSession(store session.Store, opts ...SessionOption) Option {
	return func(a *App) {
		a.sessionManager = NewSessionManager(store, opts...)
	}
}

// WithMacros registers named request macros during app construction.
// Macros registered here are available through c.Call on every app in
// the process.
//
// Example:
//
//	plinth.New(
//	    plinth.WithMacros(map[string]plinth.MacroFunc{
//	        "tenant": func(c plinth.Context, args ...any) (any, error) {
//	            return c.Param("tenant"), nil
//	        },
//	    }),
//	)
func WithMacros(macros map[string]MacroFunc) Option {
	return func(a *App) {
		for name, fn := range macros {
			RegisterMacro(name, fn)
		}
	}
}
