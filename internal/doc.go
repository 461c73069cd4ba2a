// Package internal provides the core types and implementation for the Plinth framework.
//
// This package is internal and should not be used directly. Import "github.com/dmitrymomot/plinth"
// instead, which re-exports the public API.
//
// # Core Types
//
// The package defines the fundamental types that users interact with:
//
//   - App: Orchestrates the application lifecycle, HTTP routing, and graceful shutdown
//   - Context: Request facade with memoized input, cookie, and session accessors
//   - Router: Interface handlers use to declare routes with HTTP methods and grouping
//   - Handler: Interface implemented by types that declare routes on a router
//   - HandlerFunc: Signature for individual route handlers that return errors
//   - Middleware: Wraps handlers to add cross-cutting concerns like auth or logging
//   - ErrorHandler: Custom error handling function for handler errors
//   - MacroFunc: Named extension functions dispatched through c.Call
//
// # Context as context.Context
//
// Context embeds context.Context, so it can be passed directly to any function
// that expects a standard library context. The Deadline, Done, Err, and Value
// methods delegate to the underlying request context:
//
//	func (h *Handler) getUser(c plinth.Context) error {
//	    user, err := h.repo.GetUser(c, c.Param("id"))
//	    if err != nil {
//	        return err
//	    }
//	    return c.JSON(200, user)
//	}
//
// # Request Input
//
// Input values resolve with a fixed precedence: route parameters are read
// with Param, while Input consults the merged map of query string over
// parsed body. The merged map is rebuilt per call so handlers can mutate
// the returned copies freely:
//
//	name := c.Input("user.name", "anonymous")
//	creds := c.Only("email", "password")
//
// Present-but-zero values ("", 0, false) are returned verbatim; defaults
// apply only when a key is absent or nil.
//
// # Cookies
//
// Request cookies decode at most once per exchange. When an app.key is
// configured the decode decrypts every cookie, silently skipping those
// that fail authentication:
//
//	theme := c.Cookie("theme", "light")
//	all, err := c.Cookies()
//
// # Flash Messages
//
// Flash persists values into the session store before the response is
// written, so a redirect landing on another process still sees them. The
// flash middleware moves stored values into the next request, where Old
// reads them:
//
//	// POST handler
//	if err := c.FlashAll(map[string]any{"email": email}); err != nil { ... }
//	return c.Redirect(303, "/signup")
//
//	// GET handler after redirect
//	email := c.Old("email", "")
//
// # Application Structure
//
// Create an application with New() and configure it using options:
//
//	app := internal.New(
//	    internal.WithConfig(cfg),
//	    internal.WithHandlers(authHandler, pageHandler),
//	    internal.WithMiddleware(requestIDMiddleware, recoverMiddleware),
//	)
//
// # Handler Pattern
//
// Handlers implement the Handler interface and declare routes:
//
//	type AuthHandler struct {
//	    repo *repository.Queries
//	}
//
//	func (h *AuthHandler) Routes(r internal.Router) {
//	    r.GET("/login", h.showLogin)
//	    r.POST("/login", h.handleLogin)
//	}
//
// Handlers receive dependencies via constructor injection, not context helpers.
// This keeps handler logic explicit and testable.
//
// # Middleware
//
// Middleware wraps handlers to add cross-cutting concerns:
//
//	func LoggingMiddleware(next internal.HandlerFunc) internal.HandlerFunc {
//	    return func(c internal.Context) error {
//	        start := time.Now()
//	        err := next(c)
//	        c.Logger().Info("request processed", "duration", time.Since(start))
//	        return err
//	    }
//	}
//
// # Error Handling
//
// Errors returned from handlers trigger the ErrorHandler:
//
//	func customErrorHandler(c internal.Context, err error) error {
//	    if httpErr := internal.AsHTTPError(err); httpErr != nil {
//	        return c.Error(httpErr.Code, httpErr.Message)
//	    }
//	    return c.Error(http.StatusInternalServerError, "internal server error")
//	}
//
// # Design Principles
//
//   - No magic: Explicit code, no reflection, no service containers
//   - Flat handlers: Business logic in handlers, extract to services only when shared
//   - Constructor injection: All dependencies visible in main.go
//   - Memoize once: Expensive request work (body parse, cookie decode, session
//     load) happens at most once per exchange
//
// See the plinth package documentation for the public API and usage examples.
package internal
