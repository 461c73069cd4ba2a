package clientip_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrymomot/plinth/pkg/clientip"
)

func TestGetIP(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		trustProxy bool
		expected   string
	}{
		{
			name: "X-Forwarded-For first IP when trusted",
			headers: map[string]string{
				"X-Forwarded-For": "198.51.100.178, 203.0.113.195",
				"X-Real-IP":       "192.168.1.1",
			},
			remoteAddr: "10.0.0.1:54321",
			trustProxy: true,
			expected:   "198.51.100.178",
		},
		{
			name: "X-Real-IP when no X-Forwarded-For",
			headers: map[string]string{
				"X-Real-IP": "192.168.1.1",
			},
			remoteAddr: "10.0.0.1:54321",
			trustProxy: true,
			expected:   "192.168.1.1",
		},
		{
			name: "headers ignored when proxy not trusted",
			headers: map[string]string{
				"X-Forwarded-For": "198.51.100.178",
				"X-Real-IP":       "192.168.1.1",
			},
			remoteAddr: "10.0.0.1:54321",
			trustProxy: false,
			expected:   "10.0.0.1",
		},
		{
			name:       "RemoteAddr fallback",
			headers:    map[string]string{},
			remoteAddr: "172.16.0.5:54321",
			trustProxy: true,
			expected:   "172.16.0.5",
		},
		{
			name: "invalid forwarded entries skipped",
			headers: map[string]string{
				"X-Forwarded-For": "not-an-ip, 203.0.113.195",
			},
			remoteAddr: "10.0.0.1:54321",
			trustProxy: true,
			expected:   "203.0.113.195",
		},
		{
			name: "IPv6 normalized",
			headers: map[string]string{
				"X-Forwarded-For": "2001:0db8:0000:0000:0000:0000:0000:0001",
			},
			remoteAddr: "10.0.0.1:54321",
			trustProxy: true,
			expected:   "2001:db8::1",
		},
		{
			name:       "RemoteAddr without port",
			headers:    map[string]string{},
			remoteAddr: "192.0.2.7",
			trustProxy: false,
			expected:   "192.0.2.7",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}

			if got := clientip.GetIP(r, tt.trustProxy); got != tt.expected {
				t.Errorf("GetIP() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestChain(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.1:54321"
	r.Header.Set("X-Forwarded-For", "198.51.100.178, 203.0.113.195")

	got := clientip.Chain(r, true)
	want := []string{"198.51.100.178", "203.0.113.195", "10.0.0.1"}
	if len(got) != len(want) {
		t.Fatalf("Chain() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Chain()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	got = clientip.Chain(r, false)
	if len(got) != 1 || got[0] != "10.0.0.1" {
		t.Errorf("Chain() untrusted = %v, want [10.0.0.1]", got)
	}
}
