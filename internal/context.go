package internal

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/plinth/pkg/config"
	"github.com/dmitrymomot/plinth/pkg/cookie"
	"github.com/dmitrymomot/plinth/pkg/session"
	"github.com/dmitrymomot/plinth/pkg/upload"
)

// Context wraps one inbound HTTP exchange. It exposes lazily-evaluated,
// memoized accessors over query, body, header, cookie, and route-param
// data, and defines the precedence rules when the same logical key
// exists in more than one source.
//
// A Context is exchange-scoped: one instance per request, never shared
// across goroutines, discarded when the exchange completes. It also
// implements context.Context by delegating to the request's context.
type Context interface {
	context.Context

	// Request returns the underlying *http.Request.
	Request() *http.Request

	// Response returns the underlying http.ResponseWriter.
	Response() http.ResponseWriter

	// Context returns the request's context.Context.
	Context() context.Context

	// Get returns the parsed query-string map.
	Get() map[string]any

	// Post returns the parsed request body map, empty if no body was
	// parsed.
	Post() map[string]any

	// All returns the deep merge of Get over Post: query keys win on
	// conflict, nested maps merge recursively, non-map values are
	// overwritten wholesale.
	All() map[string]any

	// Input resolves a dotted-path key (e.g. "profile.name") against
	// All. The optional default is returned only when the key is absent
	// or nil; empty string, 0, and false are present values and are
	// returned verbatim.
	Input(key string, def ...any) any

	// Only returns the sub-map of All restricted to the given keys.
	// Absent keys are omitted, never null-filled.
	Only(keys ...string) map[string]any

	// Except returns All with the given keys removed.
	Except(keys ...string) map[string]any

	// Header returns the named request header, or the optional default
	// when the header is absent.
	Header(name string, def ...string) string

	// Headers returns the full request header map.
	Headers() http.Header

	// Fresh reports whether the client's cached representation is still
	// fresh per the conditional request headers.
	Fresh() bool

	// Stale is the negation of Fresh.
	Stale() bool

	// IP returns the client address. Forwarding headers are consulted
	// only when http.trust_proxy is enabled.
	IP() string

	// IPs returns the forwarding chain ordered most-to-least trusted,
	// collapsing to the socket address when the proxy is not trusted.
	IPs() []string

	// Secure reports whether the exchange arrived over TLS, directly or
	// via a trusted proxy's X-Forwarded-Proto.
	Secure() bool

	// Subdomains returns the host's subdomain labels in reverse order,
	// excluding the trailing http.subdomain_offset labels.
	Subdomains() []string

	// Ajax reports whether X-Requested-With is XMLHttpRequest.
	Ajax() bool

	// Pjax reports whether the request carries an X-PJAX header.
	Pjax() bool

	// Hostname returns the request host without port. With a trusted
	// proxy, X-Forwarded-Host takes precedence.
	Hostname() string

	// Path returns the request path without the query string.
	Path() string

	// OriginalURL returns the path plus the query string.
	OriginalURL() string

	// Is reports whether the request's declared content type matches
	// any of the given types ("json", "application/json", "text/*").
	Is(types ...string) bool

	// Accepts negotiates the best of the offered types against the
	// Accept header. The second return is false when nothing matches.
	Accepts(offers ...string) (string, bool)

	// Method returns the HTTP method.
	Method() string

	// HasBody reports whether the request declares a body.
	HasBody() bool

	// Cookies decodes all request cookies, decrypting them when app.key
	// is configured. The decode runs at most once per exchange; later
	// calls return the memoized map.
	Cookies() (map[string]string, error)

	// Cookie looks up a decoded cookie value. The optional default is
	// returned when the cookie is absent or the decode failed.
	Cookie(name string, def ...string) string

	// SetCookie sets a plain response cookie.
	SetCookie(name, value string, maxAge int)

	// SetCookieEncrypted sets an AES-GCM encrypted response cookie.
	// Returns cookie.ErrNoSecret when app.key is not configured.
	SetCookieEncrypted(name, value string, maxAge int) error

	// DeleteCookie removes a cookie.
	DeleteCookie(name string)

	// Params returns the route parameters extracted by the router.
	Params() map[string]string

	// Param looks up a route parameter with existy defaulting.
	Param(name string, def ...string) string

	// Format returns the "format" route param with one leading dot
	// stripped. The second return is false when the param is absent.
	Format() (string, bool)

	// File returns the first upload for the given form field. Never
	// nil: a missing field yields an empty wrapper whose methods are
	// safe to call.
	File(name string) *upload.File

	// Files returns every uploaded field with its wrappers in upload
	// order.
	Files() map[string][]*upload.File

	// Match reports whether the request path matches any of the given
	// route patterns. Patterns support :name parameter segments.
	Match(patterns ...string) bool

	// Flash writes values under the "flash_messages" session key. The
	// write is durable when Flash returns. Returns ErrInvalidArgument
	// when values is not a string-keyed map; the session stays
	// untouched in that case.
	Flash(values any) error

	// FlashAll is Flash(All()).
	FlashAll() error

	// FlashOnly is Flash(Only(keys...)).
	FlashOnly(keys ...string) error

	// FlashExcept is Flash(Except(keys...)).
	FlashExcept(keys ...string) error

	// Old looks up a key in the flash data loaded by the Flash
	// middleware, with existy defaulting. When the middleware never
	// ran, Old logs a warning once and treats the data as empty.
	Old(key string, def ...any) any

	// Call dispatches a macro registered via RegisterMacro.
	// Returns ErrMacroNotFound for unknown names.
	Call(name string, args ...any) (any, error)

	// Session returns the current session, loading it lazily.
	// Returns session.ErrNotConfigured if no store was wired.
	Session() (*session.Session, error)

	// InitSession creates a fresh session for this exchange.
	InitSession() error

	// AuthenticateSession binds a user to the session and rotates the
	// token. Creates a session when none exists.
	AuthenticateSession(userID string) error

	// DestroySession removes the session and clears its cookie.
	DestroySession() error

	// SessionStore returns the configured session store, or nil.
	SessionStore() session.Store

	// JSON writes a JSON response with the given status code.
	JSON(code int, v any) error

	// String writes a plain text response with the given status code.
	String(code int, s string) error

	// NoContent writes a response with no body.
	NoContent(code int) error

	// Redirect redirects to the given URL.
	Redirect(code int, url string) error

	// Error creates an HTTPError to return from a handler.
	Error(code int, message string, opts ...HTTPErrorOption) *HTTPError

	// Written reports whether a response has been committed.
	Written() bool

	// Logger returns the request logger.
	Logger() *slog.Logger

	// Set stores a value in the request context, retrievable via Value.
	Set(key, value any)

	// ResponseWriter returns the wrapped writer for advanced usage.
	ResponseWriter() *ResponseWriter
}

// requestContext implements Context.
type requestContext struct {
	response       http.ResponseWriter
	request        *http.Request
	responseWriter *ResponseWriter
	logger         *slog.Logger
	config         *config.Config
	cookieManager  *cookie.Manager
	codec          cookie.Codec

	// Exchange-scoped resolved configuration.
	trustProxy      bool
	subdomainOffset int

	// Body and uploads, populated by the body parser before the handler
	// runs. Nil means no body was parsed.
	body  map[string]any
	files map[string][]*upload.File

	// Lazily memoized cookie decode.
	cookieCache  map[string]string
	cookieErr    error
	cookieLoaded bool

	// Session management.
	sessionManager *SessionManager
	session        *session.Session
	sessionLoaded  bool
	sessionHooked  bool

	// Old() warns only once per exchange.
	flashWarned bool
}

// newContext creates a context for one exchange.
func newContext(w http.ResponseWriter, r *http.Request, app *App) *requestContext {
	rw := NewResponseWriter(w)

	return &requestContext{
		request:         r,
		response:        rw,
		responseWriter:  rw,
		logger:          app.logger,
		config:          app.config,
		cookieManager:   app.cookieManager,
		codec:           app.cookieCodec,
		trustProxy:      app.trustProxy,
		subdomainOffset: app.subdomainOffset,
		sessionManager:  app.sessionManager,
	}
}

func (c *requestContext) Request() *http.Request {
	return c.request
}

func (c *requestContext) Response() http.ResponseWriter {
	return c.response
}

func (c *requestContext) Context() context.Context {
	return c.request.Context()
}

func (c *requestContext) Deadline() (time.Time, bool) {
	return c.request.Context().Deadline()
}

func (c *requestContext) Done() <-chan struct{} {
	return c.request.Context().Done()
}

func (c *requestContext) Err() error {
	return c.request.Context().Err()
}

func (c *requestContext) Value(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) Set(key, value any) {
	ctx := context.WithValue(c.request.Context(), key, value)
	c.request = c.request.WithContext(ctx)
}

func (c *requestContext) JSON(code int, v any) error {
	c.response.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.response.WriteHeader(code)
	return json.NewEncoder(c.response).Encode(v)
}

func (c *requestContext) String(code int, s string) error {
	c.response.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.response.WriteHeader(code)
	_, err := c.response.Write([]byte(s))
	return err
}

func (c *requestContext) NoContent(code int) error {
	c.response.WriteHeader(code)
	return nil
}

func (c *requestContext) Redirect(code int, url string) error {
	http.Redirect(c.response, c.request, url, code)
	return nil
}

func (c *requestContext) Error(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(code, message, opts...)
}

func (c *requestContext) Written() bool {
	return c.responseWriter.Written()
}

func (c *requestContext) Logger() *slog.Logger {
	return c.logger
}

func (c *requestContext) ResponseWriter() *ResponseWriter {
	return c.responseWriter
}

// registerSessionHook flushes a dirty session right before the response
// is committed. Registered lazily, once.
func (c *requestContext) registerSessionHook() {
	if c.sessionHooked || c.sessionManager == nil || c.responseWriter == nil {
		return
	}
	c.sessionHooked = true
	c.responseWriter.OnBeforeWrite(func() {
		if c.session != nil && c.session.IsDirty() {
			// Best-effort: the response is already being rendered, so
			// failures are logged rather than propagated. Flash writes
			// do not rely on this hook; they persist synchronously.
			if err := c.sessionManager.Store().Update(c.Context(), c.session); err != nil {
				c.logger.ErrorContext(c.Context(), "failed to save session", slog.Any("error", err))
				return
			}
			c.session.ClearDirty()
		}
	})
}

func (c *requestContext) Session() (*session.Session, error) {
	if c.sessionManager == nil {
		return nil, session.ErrNotConfigured
	}

	c.registerSessionHook()

	if c.sessionLoaded {
		return c.session, nil
	}

	sess, err := c.sessionManager.LoadSession(c.Context(), c.request)
	if err != nil {
		return nil, err
	}

	c.session = sess
	c.sessionLoaded = true
	return c.session, nil
}

func (c *requestContext) InitSession() error {
	if c.sessionManager == nil {
		return session.ErrNotConfigured
	}

	c.registerSessionHook()

	sess, err := c.sessionManager.CreateSession(c.Context(), c.request)
	if err != nil {
		return err
	}

	c.session = sess
	c.sessionLoaded = true
	c.sessionManager.SaveSession(c.response, sess)
	return nil
}

func (c *requestContext) AuthenticateSession(userID string) error {
	if c.sessionManager == nil {
		return session.ErrNotConfigured
	}

	sess, err := c.Session()
	if err != nil {
		c.logger.WarnContext(c.Context(), "failed to load session", slog.Any("error", err))
	}
	if sess == nil {
		if err := c.InitSession(); err != nil {
			return err
		}
		sess = c.session
	}

	sess.UserID = &userID
	sess.MarkDirty()

	// Token rotation prevents session fixation.
	if err := c.sessionManager.RotateToken(c.Context(), sess); err != nil {
		return err
	}

	c.sessionManager.SaveSession(c.response, sess)
	return nil
}

func (c *requestContext) DestroySession() error {
	if c.sessionManager == nil {
		return session.ErrNotConfigured
	}

	if c.session != nil {
		if err := c.sessionManager.Store().Delete(c.Context(), c.session.ID); err != nil {
			return err
		}
	}

	c.sessionManager.DeleteSession(c.response)

	c.session = nil
	c.sessionLoaded = true // loaded-as-nil, prevents a reload
	return nil
}

func (c *requestContext) SessionStore() session.Store {
	if c.sessionManager == nil {
		return nil
	}
	return c.sessionManager.Store()
}
