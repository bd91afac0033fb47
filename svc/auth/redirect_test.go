package auth

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeRedirect(t *testing.T) {
	t.Parallel()

	base, err := parseBaseURL("http://localhost:3002/")
	require.NoError(t, err)

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", "http://localhost:3002"},
		{"root", "/", "http://localhost:3002/"},
		{"relative path", "/campaigns", "http://localhost:3002/campaigns"},
		{"relative with query", "/campaigns?tab=1#top", "http://localhost:3002/campaigns?tab=1#top"},
		{"same origin", "http://localhost:3002/design_system", "http://localhost:3002/design_system"},
		{"scheme relative", "//evil.example/x", "http://localhost:3002"},
		{"backslash trick", "/\\evil.example", "http://localhost:3002"},
		{"other origin", "https://evil.example/campaigns", "http://localhost:3002"},
		{"prefix lookalike", "http://localhost:3002.evil.example/", "http://localhost:3002"},
		{"other port", "http://localhost:3003/", "http://localhost:3002"},
		{"scheme downgrade", "https://localhost:3002/", "http://localhost:3002"},
		{"javascript", "javascript:alert(1)", "http://localhost:3002"},
		{"userinfo", "http://user@localhost:3002/", "http://localhost:3002"},
		{"bare word", "campaigns", "http://localhost:3002"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, SanitizeRedirect(tt.raw, base))
		})
	}
}

func TestParseBaseURL(t *testing.T) {
	t.Parallel()

	u, err := parseBaseURL("https://dash.example.com/?x=1#y")
	require.NoError(t, err)
	assert.Equal(t, &url.URL{Scheme: "https", Host: "dash.example.com"}, u)

	_, err = parseBaseURL("dash.example.com")
	assert.ErrorIs(t, err, ErrInvalidBaseURL)
}
