// Package middlewares provides HTTP middleware for Plinth applications.
//
// # Request ID
//
// RequestID middleware assigns a unique ID to each request for tracing and debugging.
// It checks incoming headers for existing IDs or generates new UUIDs.
//
//	app := plinth.New(
//	    plinth.WithMiddleware(
//	        middlewares.RequestID(),
//	    ),
//	)
//
// Use RequestIDExtractor() with WithLogger for automatic request_id in all logs:
//
//	app := plinth.New(
//	    plinth.WithLogger("api", middlewares.RequestIDExtractor()),
//	    plinth.WithMiddleware(
//	        middlewares.RequestID(),
//	    ),
//	)
//
// # Recover
//
// Recover middleware catches panics and converts them to typed errors.
// The PanicError can be handled by the global ErrorHandler.
//
//	app := plinth.New(
//	    plinth.WithMiddleware(
//	        middlewares.Recover(),
//	    ),
//	    plinth.WithErrorHandler(func(c plinth.Context, err error) error {
//	        if middlewares.IsPanicError(err) {
//	            return c.Error(500, "Internal Server Error")
//	        }
//	        return c.Error(500, err.Error())
//	    }),
//	)
//
// # Flash
//
// Flash middleware moves flash data stored by a previous request from
// the session into the current request, clearing it from the session so
// each flash is visible exactly once. Handlers read the data with
// c.Old():
//
//	app := plinth.New(
//	    plinth.WithSession(store),
//	    plinth.WithMiddleware(
//	        middlewares.Flash(),
//	    ),
//	)
//
//	func (h *Handler) showSignup(c plinth.Context) error {
//	    email := c.Old("email", "")
//	    ...
//	}
//
// # Recommended Middleware Order
//
//	plinth.WithMiddleware(
//	    middlewares.RequestID(), // First: assign ID for all subsequent logging
//	    middlewares.Recover(),   // Second: catch panics from handlers
//	    middlewares.Flash(),     // Third: needs the session, runs per request
//	)
package middlewares
