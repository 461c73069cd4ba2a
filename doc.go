// Package plinth provides a thin, opinionated web framework built
// around a memoizing request facade.
//
// Plinth is designed around the principle of "no magic" - explicit,
// readable code that you own and can modify. The framework provides a
// request Context with lazy, memoized accessors over query, body,
// header, cookie, and route-parameter data, plus server-side sessions
// with durable flash messaging.
//
// # Quick Start
//
// Create a new application with plinth.New(), configure it with
// options, and call Run() to start the HTTP server:
//
//	cfg, err := config.New(
//	    config.WithFile("config.yml"),
//	    config.WithEnvPrefix("APP_"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	app := plinth.New(
//	    plinth.WithConfig(cfg),
//	    plinth.WithLogger("web"),
//	    plinth.WithSession(session.NewMemoryStore()),
//	    plinth.WithMiddleware(middlewares.RequestID(), middlewares.Flash()),
//	    plinth.WithHandlers(
//	        handlers.NewAuth(repo),
//	        handlers.NewPages(repo),
//	    ),
//	)
//
//	if err := app.Run(":8080"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Handlers
//
// Handlers implement the [Handler] interface to declare routes:
//
//	type AuthHandler struct {
//	    repo *repository.Queries
//	}
//
//	func NewAuth(repo *repository.Queries) *AuthHandler {
//	    return &AuthHandler{repo: repo}
//	}
//
//	func (h *AuthHandler) Routes(r plinth.Router) {
//	    r.GET("/login", h.showLogin)
//	    r.POST("/login", h.handleLogin)
//	}
//
// Each handler receives a [Context] and returns an error. The Context
// merges query-string and body input with a fixed precedence (query
// wins), decodes cookies at most once per exchange, and loads the
// session lazily:
//
//	func (h *AuthHandler) handleLogin(c plinth.Context) error {
//	    email, ok := c.Input("email").(string)
//	    if !ok || email == "" {
//	        if err := c.FlashOnly("email"); err != nil {
//	            return err
//	        }
//	        return c.Redirect(303, "/login")
//	    }
//	    // authenticate...
//	    if err := c.AuthenticateSession(userID); err != nil {
//	        return err
//	    }
//	    return c.Redirect(303, "/dashboard")
//	}
//
// # Configuration
//
// Plinth reads a small set of keys from the configuration passed via
// WithConfig:
//
//	app.key               cookie encryption secret (min 32 bytes)
//	http.trust_proxy      trust X-Forwarded-* headers
//	http.subdomain_offset host labels excluded from Subdomains()
//
// When app.key is set, every request cookie is transparently decrypted
// and every SetCookieEncrypted call round-trips through AES-GCM.
//
// # Sessions and Flash
//
// Sessions are stored server side behind the [SessionStore] interface
// with memory, Redis, and Postgres implementations. Flash writes
// persist into the store before the response is committed, so a
// redirect landing on another process still observes the data. The
// Flash middleware moves stored values into the next request, where
// handlers read them with c.Old().
//
// See the internal package documentation for the full Context API.
package plinth
