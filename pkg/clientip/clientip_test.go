package clientip_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axolutions/linkbio-dashboard/pkg/clientip"
)

func TestGetIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{name: "remote addr", remoteAddr: "203.0.113.7:4711", want: "203.0.113.7"},
		{name: "remote addr without port", remoteAddr: "203.0.113.7", want: "203.0.113.7"},
		{name: "ipv6 remote addr", remoteAddr: "[2001:db8::1]:443", want: "2001:db8::1"},
		{
			name:       "cloudflare wins",
			headers:    map[string]string{"CF-Connecting-IP": "198.51.100.1", "X-Forwarded-For": "198.51.100.2"},
			remoteAddr: "10.0.0.1:1",
			want:       "198.51.100.1",
		},
		{
			name:       "first valid forwarded entry",
			headers:    map[string]string{"X-Forwarded-For": "garbage, 198.51.100.3, 10.0.0.2"},
			remoteAddr: "10.0.0.1:1",
			want:       "198.51.100.3",
		},
		{
			name:       "invalid header falls through",
			headers:    map[string]string{"CF-Connecting-IP": "not-an-ip", "X-Real-IP": "198.51.100.4"},
			remoteAddr: "10.0.0.1:1",
			want:       "198.51.100.4",
		},
		{
			name:       "mapped ipv4 is unmapped",
			headers:    map[string]string{"X-Real-IP": "::ffff:198.51.100.5"},
			remoteAddr: "10.0.0.1:1",
			want:       "198.51.100.5",
		},
		{name: "nothing valid", remoteAddr: "pipe", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientip.GetIP(r))
		})
	}
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var seen, key string
	h := clientip.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = clientip.FromContext(r.Context())
		key = clientip.Key(r)
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Forwarded-For", "198.51.100.9")
	h.ServeHTTP(httptest.NewRecorder(), r)

	assert.Equal(t, "198.51.100.9", seen)
	assert.Equal(t, "198.51.100.9", key)
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	extract := clientip.LoggerExtractor()

	_, ok := extract(context.Background())
	assert.False(t, ok)

	attr, ok := extract(clientip.WithContext(context.Background(), "198.51.100.10"))
	require.True(t, ok)
	assert.Equal(t, "client_ip", attr.Key)
	assert.Equal(t, "198.51.100.10", attr.Value.String())
}
