package auth

import (
	"net/url"
	"strings"
)

// SanitizeRedirect resolves a post-sign-in destination against base.
// Relative paths are joined to base, absolute URLs are kept only when they
// share base's origin, and everything else falls back to base.
func SanitizeRedirect(raw string, base *url.URL) string {
	fallback := base.String()
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}

	if strings.HasPrefix(raw, "/") {
		// "//host" and "/\host" are scheme-relative in browsers.
		if strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
			return fallback
		}
		u, err := url.Parse(fallback + raw)
		if err != nil {
			return fallback
		}
		return u.String()
	}

	u, err := url.Parse(raw)
	if err != nil || u.User != nil {
		return fallback
	}
	if !strings.EqualFold(u.Scheme, base.Scheme) || !strings.EqualFold(u.Host, base.Host) {
		return fallback
	}
	return u.String()
}

func parseBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, ErrInvalidBaseURL
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath, u.RawQuery, u.Fragment = "", "", ""
	return u, nil
}
