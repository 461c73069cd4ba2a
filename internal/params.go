package internal

import (
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/plinth/pkg/upload"
)

// Params returns the route parameters extracted by the router, empty
// when the route carried none.
func (c *requestContext) Params() map[string]string {
	rctx := chi.RouteContext(c.request.Context())
	if rctx == nil {
		return map[string]string{}
	}

	params := rctx.URLParams
	out := make(map[string]string, len(params.Keys))
	for i, key := range params.Keys {
		if key == "*" {
			continue
		}
		out[key] = params.Values[i]
	}
	return out
}

// Param looks up a route parameter. Missing params never fail: the
// optional default (or "") is returned instead.
func (c *requestContext) Param(name string, def ...string) string {
	if rctx := chi.RouteContext(c.request.Context()); rctx != nil {
		for i, key := range rctx.URLParams.Keys {
			if key == name {
				return rctx.URLParams.Values[i]
			}
		}
	}
	if len(def) > 0 {
		return def[0]
	}
	return ""
}

// Format returns the "format" route param with a single leading dot
// stripped: a captured ".json" yields "json". ok is false when the
// param is absent.
func (c *requestContext) Format() (string, bool) {
	rctx := chi.RouteContext(c.request.Context())
	if rctx == nil {
		return "", false
	}
	for i, key := range rctx.URLParams.Keys {
		if key == "format" {
			return strings.TrimPrefix(rctx.URLParams.Values[i], "."), true
		}
	}
	return "", false
}

// File returns the first upload for the given form field. The result is
// never nil; a missing field yields an empty wrapper whose accessors
// are safe to call.
func (c *requestContext) File(name string) *upload.File {
	if files, ok := c.files[name]; ok && len(files) > 0 {
		return files[0]
	}
	return upload.Empty()
}

// Files returns every uploaded field with its wrappers in upload order.
func (c *requestContext) Files() map[string][]*upload.File {
	if c.files == nil {
		return map[string][]*upload.File{}
	}
	return c.files
}
