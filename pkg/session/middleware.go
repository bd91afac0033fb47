package session

import "net/http"

// Middleware resolves the session once per request and attaches the View to
// the request context.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v := m.Resolve(r.Context(), r)
		next.ServeHTTP(w, r.WithContext(WithView(r.Context(), v)))
	})
}
