// Package account serves the dashboard's authentication surface: the
// sign-in, callback, sign-out and error pages, the session endpoint, and
// the middleware guarding every other route.
//
//	r := chi.NewRouter()
//	r.Use(sessions.Middleware)
//	r.Use(account.Guard(account.WithBaseURL(svc.BaseURL())))
//	r.Mount("/", account.Router(account.RouterOptions{Service: svc}))
//
// RequirePermission and RequireRole check the request identity's product
// grants on individual routes.
package account
