package internal

import (
	"net"
	"net/http"
	"strings"

	"github.com/elnormous/contenttype"
	"github.com/go-http-utils/fresh"

	"github.com/dmitrymomot/plinth/pkg/clientip"
)

// Shorthand content-type names accepted by Is and Accepts.
var mediaShorthands = map[string]string{
	"json": "application/json",
	"html": "text/html",
	"text": "text/plain",
	"xml":  "application/xml",
	"form": "application/x-www-form-urlencoded",
}

func (c *requestContext) Header(name string, def ...string) string {
	if values, ok := c.request.Header[http.CanonicalHeaderKey(name)]; ok && len(values) > 0 {
		return values[0]
	}
	if len(def) > 0 {
		return def[0]
	}
	return ""
}

func (c *requestContext) Headers() http.Header {
	return c.request.Header
}

// Fresh reports whether the client cache is still valid per the
// conditional request headers, checked against the response headers
// written so far. Only GET and HEAD exchanges can be fresh.
func (c *requestContext) Fresh() bool {
	method := c.request.Method
	if method != http.MethodGet && method != http.MethodHead {
		return false
	}

	status := c.responseWriter.Status()
	if (status < 200 || status >= 300) && status != http.StatusNotModified {
		return false
	}

	return fresh.IsFresh(c.request.Header, c.response.Header())
}

func (c *requestContext) Stale() bool {
	return !c.Fresh()
}

func (c *requestContext) IP() string {
	return clientip.GetIP(c.request, c.trustProxy)
}

func (c *requestContext) IPs() []string {
	return clientip.Chain(c.request, c.trustProxy)
}

func (c *requestContext) Secure() bool {
	if c.request.TLS != nil {
		return true
	}
	if !c.trustProxy {
		return false
	}
	proto := c.request.Header.Get("X-Forwarded-Proto")
	// Only the first value counts when proxies stack.
	if i := strings.IndexByte(proto, ','); i >= 0 {
		proto = proto[:i]
	}
	return strings.EqualFold(strings.TrimSpace(proto), "https")
}

// Subdomains returns the host's subdomain labels in reverse order. The
// trailing subdomainOffset labels (default 2, e.g. "example.com") are
// excluded: "tobi.ferrets.example.com" yields ["ferrets", "tobi"].
func (c *requestContext) Subdomains() []string {
	host := c.Hostname()
	if host == "" || net.ParseIP(host) != nil {
		return nil
	}

	labels := strings.Split(host, ".")
	if len(labels) <= c.subdomainOffset {
		return nil
	}

	subs := labels[:len(labels)-c.subdomainOffset]
	out := make([]string, len(subs))
	for i, label := range subs {
		out[len(subs)-1-i] = label
	}
	return out
}

func (c *requestContext) Ajax() bool {
	return strings.EqualFold(c.request.Header.Get("X-Requested-With"), "XMLHttpRequest")
}

func (c *requestContext) Pjax() bool {
	return c.request.Header.Get("X-PJAX") != ""
}

// Hostname returns the request host without the port. With a trusted
// proxy, the first X-Forwarded-Host value takes precedence.
func (c *requestContext) Hostname() string {
	host := c.request.Host
	if c.trustProxy {
		if forwarded := c.request.Header.Get("X-Forwarded-Host"); forwarded != "" {
			if i := strings.IndexByte(forwarded, ','); i >= 0 {
				forwarded = forwarded[:i]
			}
			host = strings.TrimSpace(forwarded)
		}
	}

	if stripped, _, err := net.SplitHostPort(host); err == nil {
		host = stripped
	}
	return strings.ToLower(strings.Trim(host, "[]"))
}

func (c *requestContext) Path() string {
	return c.request.URL.Path
}

func (c *requestContext) OriginalURL() string {
	if c.request.URL.RawQuery == "" {
		return c.request.URL.Path
	}
	return c.request.URL.Path + "?" + c.request.URL.RawQuery
}

// Is matches the request's declared content type against the given
// types. Shorthands ("json") and wildcards ("text/*") are supported.
func (c *requestContext) Is(types ...string) bool {
	declared, err := contenttype.GetMediaType(c.request)
	if err != nil {
		return false
	}

	for _, t := range types {
		want := normalizeMediaType(t)
		slash := strings.IndexByte(want, '/')
		if slash < 0 {
			continue
		}
		wantType, wantSub := want[:slash], want[slash+1:]
		if (wantType == "*" || wantType == declared.Type) &&
			(wantSub == "*" || wantSub == declared.Subtype) {
			return true
		}
	}
	return false
}

// Accepts negotiates the best of the offered types against the Accept
// header using standard precedence rules. Returns the winning offer as
// the caller spelled it; ok is false when nothing is acceptable.
func (c *requestContext) Accepts(offers ...string) (string, bool) {
	if len(offers) == 0 {
		return "", false
	}

	available := make([]contenttype.MediaType, len(offers))
	for i, offer := range offers {
		available[i] = contenttype.NewMediaType(normalizeMediaType(offer))
	}

	accepted, _, err := contenttype.GetAcceptableMediaType(c.request, available)
	if err != nil {
		return "", false
	}

	for i, mt := range available {
		if mt.Type == accepted.Type && mt.Subtype == accepted.Subtype {
			return offers[i], true
		}
	}
	return accepted.String(), true
}

func (c *requestContext) Method() string {
	return c.request.Method
}

// HasBody reports whether the request declares a body via
// Content-Length or a transfer encoding.
func (c *requestContext) HasBody() bool {
	return c.request.ContentLength > 0 || len(c.request.TransferEncoding) > 0
}

func normalizeMediaType(t string) string {
	if full, ok := mediaShorthands[strings.ToLower(t)]; ok {
		return full
	}
	return strings.ToLower(t)
}
