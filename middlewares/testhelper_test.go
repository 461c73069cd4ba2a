package middlewares_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/plinth/internal"
	"github.com/dmitrymomot/plinth/pkg/session"
	"github.com/dmitrymomot/plinth/pkg/upload"
)

// testContext is a minimal Context implementation for exercising
// middleware in isolation. Only the methods middleware touch carry real
// behavior; the rest return zero values.
type testContext struct {
	response http.ResponseWriter
	request  *http.Request
	sess     *session.Session
	store    session.Store
	logger   *slog.Logger
}

func newTestContext(w http.ResponseWriter, r *http.Request) *testContext {
	return &testContext{
		response: w,
		request:  r,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func (c *testContext) Request() *http.Request        { return c.request }
func (c *testContext) Response() http.ResponseWriter { return c.response }
func (c *testContext) Context() context.Context      { return c.request.Context() }

func (c *testContext) Get() map[string]any  { return map[string]any{} }
func (c *testContext) Post() map[string]any { return map[string]any{} }
func (c *testContext) All() map[string]any  { return map[string]any{} }
func (c *testContext) Input(key string, def ...any) any {
	if len(def) > 0 {
		return def[0]
	}
	return nil
}
func (c *testContext) Only(keys ...string) map[string]any   { return map[string]any{} }
func (c *testContext) Except(keys ...string) map[string]any { return map[string]any{} }

func (c *testContext) Header(name string, def ...string) string {
	if v := c.request.Header.Get(name); v != "" {
		return v
	}
	if len(def) > 0 {
		return def[0]
	}
	return ""
}
func (c *testContext) Headers() http.Header { return c.request.Header }

func (c *testContext) Fresh() bool          { return false }
func (c *testContext) Stale() bool          { return true }
func (c *testContext) IP() string           { return c.request.RemoteAddr }
func (c *testContext) IPs() []string        { return nil }
func (c *testContext) Secure() bool         { return false }
func (c *testContext) Subdomains() []string { return nil }
func (c *testContext) Ajax() bool           { return false }
func (c *testContext) Pjax() bool           { return false }
func (c *testContext) Hostname() string     { return c.request.Host }
func (c *testContext) Path() string         { return c.request.URL.Path }
func (c *testContext) OriginalURL() string  { return c.request.URL.RequestURI() }
func (c *testContext) Is(types ...string) bool {
	return false
}
func (c *testContext) Accepts(offers ...string) (string, bool) { return "", false }
func (c *testContext) Method() string                          { return c.request.Method }
func (c *testContext) HasBody() bool                           { return c.request.ContentLength > 0 }

func (c *testContext) Cookies() (map[string]string, error) { return map[string]string{}, nil }
func (c *testContext) Cookie(name string, def ...string) string {
	if len(def) > 0 {
		return def[0]
	}
	return ""
}
func (c *testContext) SetCookie(name, value string, maxAge int)                {}
func (c *testContext) SetCookieEncrypted(name, value string, maxAge int) error { return nil }
func (c *testContext) DeleteCookie(name string)                                {}

func (c *testContext) Params() map[string]string             { return map[string]string{} }
func (c *testContext) Param(name string, def ...string) string {
	if len(def) > 0 {
		return def[0]
	}
	return ""
}
func (c *testContext) Format() (string, bool)              { return "", false }
func (c *testContext) File(name string) *upload.File       { return upload.Empty() }
func (c *testContext) Files() map[string][]*upload.File    { return map[string][]*upload.File{} }
func (c *testContext) Match(patterns ...string) bool       { return false }
func (c *testContext) Flash(values any) error              { return nil }
func (c *testContext) FlashAll() error                     { return nil }
func (c *testContext) FlashOnly(keys ...string) error      { return nil }
func (c *testContext) FlashExcept(keys ...string) error    { return nil }
func (c *testContext) Call(name string, args ...any) (any, error) {
	return nil, internal.ErrMacroNotFound
}

func (c *testContext) Old(key string, def ...any) any {
	if data, ok := c.Value(internal.FlashDataKey{}).(map[string]any); ok {
		if v, exists := data[key]; exists && v != nil {
			return v
		}
	}
	if len(def) > 0 {
		return def[0]
	}
	return nil
}

func (c *testContext) Session() (*session.Session, error) {
	if c.store == nil {
		return nil, session.ErrNotConfigured
	}
	return c.sess, nil
}
func (c *testContext) InitSession() error                      { return nil }
func (c *testContext) AuthenticateSession(userID string) error { return nil }
func (c *testContext) DestroySession() error                   { return nil }
func (c *testContext) SessionStore() session.Store             { return c.store }

func (c *testContext) JSON(code int, v any) error { c.response.WriteHeader(code); return nil }
func (c *testContext) String(code int, s string) error {
	c.response.WriteHeader(code)
	_, err := c.response.Write([]byte(s))
	return err
}
func (c *testContext) NoContent(code int) error { c.response.WriteHeader(code); return nil }
func (c *testContext) Redirect(code int, url string) error {
	http.Redirect(c.response, c.request, url, code)
	return nil
}

func (c *testContext) Error(code int, message string, opts ...internal.HTTPErrorOption) *internal.HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

func (c *testContext) Written() bool        { return false }
func (c *testContext) Logger() *slog.Logger { return c.logger }

func (c *testContext) Set(key, value any) {
	ctx := context.WithValue(c.request.Context(), key, value)
	c.request = c.request.WithContext(ctx)
}

func (c *testContext) ResponseWriter() *internal.ResponseWriter { return nil }

func (c *testContext) Deadline() (time.Time, bool) { return c.request.Context().Deadline() }
func (c *testContext) Done() <-chan struct{}       { return c.request.Context().Done() }
func (c *testContext) Err() error                  { return c.request.Context().Err() }
func (c *testContext) Value(key any) any           { return c.request.Context().Value(key) }
