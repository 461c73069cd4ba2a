package clientip

import (
	"net"
	"net/http"
	"strings"
)

// GetIP returns the client's IP address from an HTTP request.
//
// When trustProxy is true, forwarding headers are consulted in priority
// order before falling back to the socket address:
//  1. X-Forwarded-For (standard proxy header, first valid IP)
//  2. X-Real-IP (Nginx reverse proxy)
//
// When trustProxy is false, forwarding headers are ignored entirely and
// the socket address is authoritative. Spoofed headers from untrusted
// clients must never influence the result.
func GetIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			// X-Forwarded-For can contain multiple IPs, find the first valid one
			for _, ip := range strings.Split(forwarded, ",") {
				if parsed := parseIP(strings.TrimSpace(ip)); parsed != "" {
					return parsed
				}
			}
		}

		if ip := r.Header.Get("X-Real-IP"); ip != "" {
			if parsed := parseIP(ip); parsed != "" {
				return parsed
			}
		}
	}

	return remoteIP(r)
}

// Chain returns the full forwarding chain, client first.
//
// With trustProxy enabled the chain is every valid address from
// X-Forwarded-For followed by the socket address. Without it the chain
// collapses to just the socket address.
func Chain(r *http.Request, trustProxy bool) []string {
	var chain []string
	if trustProxy {
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			for _, ip := range strings.Split(forwarded, ",") {
				if parsed := parseIP(strings.TrimSpace(ip)); parsed != "" {
					chain = append(chain, parsed)
				}
			}
		}
	}
	if remote := remoteIP(r); remote != "" {
		chain = append(chain, remote)
	}
	return chain
}

func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// If SplitHostPort fails, assume it's already just an IP
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

// parseIP validates and normalizes an IP address string.
// Returns empty string if the IP is invalid.
func parseIP(ipStr string) string {
	ipStr = strings.TrimSpace(ipStr)
	if ipStr == "" {
		return ""
	}

	ip := net.ParseIP(ipStr)
	if ip == nil {
		return ""
	}

	return ip.String()
}
