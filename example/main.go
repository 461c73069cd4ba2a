// Package main demonstrates core Plinth features in a single-file example.
// No external dependencies required (no database, no Redis).
package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/dmitrymomot/plinth"
	"github.com/dmitrymomot/plinth/middlewares"
	"github.com/dmitrymomot/plinth/pkg/config"
	"github.com/dmitrymomot/plinth/pkg/logger"
	"github.com/dmitrymomot/plinth/pkg/session"
)

func main() {
	slog := logger.New().With("app", "example")

	cfg, err := config.New(
		config.WithDefaults(map[string]any{
			"app.key":          "0123456789abcdef0123456789abcdef",
			"http.trust_proxy": false,
		}),
		config.WithFile("config.yml"),
		config.WithEnvPrefix("APP_"),
	)
	if err != nil {
		slog.Error("config error", "error", err)
		os.Exit(1)
	}

	plinth.RegisterMacro("greeting", func(c plinth.Context, args ...any) (any, error) {
		if len(args) > 0 {
			return fmt.Sprintf("Hello, %v!", args[0]), nil
		}
		return "Hello!", nil
	})

	app := plinth.New(
		plinth.WithConfig(cfg),
		plinth.WithCustomLogger(slog),
		plinth.WithSession(session.NewMemoryStore()),
		plinth.WithMiddleware(
			middlewares.RequestID(),
			middlewares.Recover(),
			middlewares.Flash(),
		),
		plinth.WithHandlers(
			&greetingHandler{},
			&signupHandler{},
		),
		plinth.WithNotFoundHandler(handleNotFound),
	)

	slog.Info("starting server", "addr", ":8080")

	if err := app.Run(
		":8080",
		plinth.Logger(slog),
		plinth.ShutdownTimeout(10*time.Second),
	); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

// --- Greeting Handler ---

// greetingHandler demonstrates input resolution and macros.
type greetingHandler struct{}

func (h *greetingHandler) Routes(r plinth.Router) {
	r.GET("/", h.home)
	r.GET("/hello/{name}", h.helloName)
	r.GET("/greet", h.greetQuery)
	r.GET("/report{format}", h.report)
}

func (h *greetingHandler) home(c plinth.Context) error {
	return c.String(http.StatusOK, "Welcome to Plinth!")
}

// helloName greets using a URL path parameter via a macro.
func (h *greetingHandler) helloName(c plinth.Context) error {
	msg, err := c.Call("greeting", c.Param("name"))
	if err != nil {
		return err
	}
	return c.String(http.StatusOK, fmt.Sprint(msg))
}

// greetQuery greets using merged request input.
func (h *greetingHandler) greetQuery(c plinth.Context) error {
	name := c.Input("name", "Guest")
	return c.String(http.StatusOK, fmt.Sprintf("Hello, %v!", name))
}

// report negotiates the response format from the route suffix.
func (h *greetingHandler) report(c plinth.Context) error {
	format, ok := c.Format()
	if !ok || format == "json" {
		return c.JSON(http.StatusOK, map[string]any{"report": "ok"})
	}
	return c.String(http.StatusOK, "report: ok")
}

// --- Signup Handler ---

// signupHandler demonstrates flash messaging across a redirect.
type signupHandler struct{}

func (h *signupHandler) Routes(r plinth.Router) {
	r.GET("/signup", h.show)
	r.POST("/signup", h.submit)
}

func (h *signupHandler) show(c plinth.Context) error {
	email := c.Old("email", "")
	return c.String(http.StatusOK, fmt.Sprintf("signup form, email=%v", email))
}

func (h *signupHandler) submit(c plinth.Context) error {
	email, _ := c.Input("email", "").(string)
	if email == "" {
		// Repopulate the form on the next request.
		if err := c.FlashExcept("password"); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/signup")
	}
	return c.String(http.StatusOK, fmt.Sprintf("registered %s", email))
}

func handleNotFound(c plinth.Context) error {
	return c.String(http.StatusNotFound, "nothing here")
}
