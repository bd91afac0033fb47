package session

import (
	"net/http"
	"time"

	"github.com/axolutions/linkbio-dashboard/pkg/cookie"
)

// CookieTransport stores the session ID in an encrypted, HttpOnly cookie.
type CookieTransport struct {
	cookieMgr  *cookie.Manager
	cookieName string
	secure     bool
	options    []cookie.Option
}

// NewCookieTransport creates the transport. Extra options are applied last.
func NewCookieTransport(cookieMgr *cookie.Manager, cookieName string, secure bool, opts ...cookie.Option) *CookieTransport {
	return &CookieTransport{
		cookieMgr:  cookieMgr,
		cookieName: cookieName,
		secure:     secure,
		options:    opts,
	}
}

func (t *CookieTransport) GetID(r *http.Request) (string, error) {
	id, err := t.cookieMgr.GetEncrypted(r, t.cookieName)
	if err != nil || id == "" {
		return "", ErrSessionNotFound
	}
	return id, nil
}

func (t *CookieTransport) SetID(w http.ResponseWriter, id string, ttl time.Duration) error {
	return t.cookieMgr.SetEncrypted(w, t.cookieName, id, t.cookieOptions(int(ttl.Seconds()))...)
}

func (t *CookieTransport) ClearID(w http.ResponseWriter) error {
	t.cookieMgr.Delete(w, t.cookieName, t.cookieOptions(-1)...)
	return nil
}

func (t *CookieTransport) cookieOptions(maxAge int) []cookie.Option {
	opts := []cookie.Option{
		cookie.WithMaxAge(maxAge),
		cookie.WithPath("/"),
		cookie.WithHTTPOnly(true),
		cookie.WithSameSite(http.SameSiteLaxMode),
		cookie.WithSecure(t.secure),
	}
	return append(opts, t.options...)
}

var _ Transport = (*CookieTransport)(nil)
