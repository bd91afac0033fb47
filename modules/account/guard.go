package account

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/axolutions/linkbio-dashboard/handler"
	"github.com/axolutions/linkbio-dashboard/pkg/permission"
	"github.com/axolutions/linkbio-dashboard/pkg/session"
)

var publicPrefixes = []string{
	"/auth/signin",
	"/auth/error",
	"/auth/callback",
	"/auth/signout",
	"/api/auth",
	"/healthz",
	"/readyz",
}

var reservedPrefixes = []string{
	"/api",
	"/auth",
	"/_next",
	"/campaigns",
	"/design_system",
}

// IsSlugRoute reports whether path is a public link-bio page: exactly one
// segment, not under a reserved prefix.
func IsSlugRoute(path string) bool {
	if path == "/" || strings.Count(path, "/") != 1 {
		return false
	}
	for _, p := range reservedPrefixes {
		if strings.HasPrefix(path, p) {
			return false
		}
	}
	return true
}

// IsPublic reports whether path is reachable without a session.
func IsPublic(path string) bool {
	for _, p := range publicPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return IsSlugRoute(path)
}

type guardConfig struct {
	mocked  bool
	baseURL *url.URL
	errors  handler.ErrorHandler[handler.Context]
}

type GuardOption func(*guardConfig)

// WithMockedAuth lets every request through.
func WithMockedAuth(enabled bool) GuardOption {
	return func(c *guardConfig) { c.mocked = enabled }
}

// WithBaseURL makes sign-in callback URLs absolute.
func WithBaseURL(u *url.URL) GuardOption {
	return func(c *guardConfig) { c.baseURL = u }
}

func WithGuardErrorHandler(eh handler.ErrorHandler[handler.Context]) GuardOption {
	return func(c *guardConfig) {
		if eh != nil {
			c.errors = eh
		}
	}
}

// Guard protects every non-public route. Unauthenticated API requests get
// 401; browsers are sent to the sign-in page with the original URL as
// callbackUrl. A session whose refresh failed still passes.
func Guard(opts ...GuardOption) func(http.Handler) http.Handler {
	cfg := &guardConfig{errors: ErrorHandler(nil)}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.mocked || IsPublic(r.URL.Path) || session.ViewFromContext(r.Context()).IsAuthenticated() {
				next.ServeHTTP(w, r)
				return
			}

			if strings.HasPrefix(r.URL.Path, "/api/") || r.URL.Path == "/api" {
				cfg.errors(handler.NewContext(w, r), handler.ErrUnauthorized)
				return
			}

			callback := r.URL.RequestURI()
			if cfg.baseURL != nil {
				callback = strings.TrimSuffix(cfg.baseURL.String(), "/") + callback
			}
			http.Redirect(w, r, signInURL(callback), http.StatusSeeOther)
		})
	}
}

// RequirePermission rejects requests whose identity lacks permission on
// product: 401 without an identity, 403 otherwise.
func RequirePermission(product, perm string, eh handler.ErrorHandler[handler.Context]) func(http.Handler) http.Handler {
	return require(eh, func(v session.View) error {
		return permission.RequirePermission(v.Identity, product, perm)
	})
}

// RequireRole is RequirePermission for a role.
func RequireRole(product, role string, eh handler.ErrorHandler[handler.Context]) func(http.Handler) http.Handler {
	return require(eh, func(v session.View) error {
		return permission.RequireRole(v.Identity, product, role)
	})
}

func require(eh handler.ErrorHandler[handler.Context], check func(session.View) error) func(http.Handler) http.Handler {
	if eh == nil {
		eh = ErrorHandler(nil)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			err := check(session.ViewFromContext(r.Context()))
			switch {
			case err == nil:
				next.ServeHTTP(w, r)
			case errors.Is(err, permission.ErrAuthenticationRequired):
				eh(handler.NewContext(w, r), errors.Join(handler.ErrUnauthorized, err))
			default:
				eh(handler.NewContext(w, r), errors.Join(handler.ErrForbidden, err))
			}
		})
	}
}
