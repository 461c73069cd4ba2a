package internal

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

var matchStub = func(http.ResponseWriter, *http.Request) {}

// Match reports whether the current request path matches any of the
// given route patterns. Patterns use :name parameter segments
// ("/user/:id") and are compiled through the router, so matching is
// exact: no trailing-slash or case normalization is applied.
func (c *requestContext) Match(patterns ...string) bool {
	path := c.Path()
	for _, pattern := range patterns {
		mux := chi.NewRouter()
		mux.Get(translatePattern(pattern), matchStub)
		if mux.Match(chi.NewRouteContext(), http.MethodGet, path) {
			return true
		}
	}
	return false
}

// translatePattern rewrites :name parameter segments into the router's
// {name} syntax.
func translatePattern(pattern string) string {
	if pattern == "" {
		return "/"
	}
	if !strings.HasPrefix(pattern, "/") {
		pattern = "/" + pattern
	}

	segments := strings.Split(pattern, "/")
	for i, seg := range segments {
		if len(seg) > 1 && seg[0] == ':' {
			segments[i] = "{" + seg[1:] + "}"
		}
	}
	return strings.Join(segments, "/")
}
