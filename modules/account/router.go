package account

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/axolutions/linkbio-dashboard/handler"
	"github.com/axolutions/linkbio-dashboard/pkg/audit"
	"github.com/axolutions/linkbio-dashboard/pkg/binder"
	"github.com/axolutions/linkbio-dashboard/pkg/clientip"
	"github.com/axolutions/linkbio-dashboard/pkg/logger"
	"github.com/axolutions/linkbio-dashboard/pkg/ratelimiter"
	"github.com/axolutions/linkbio-dashboard/svc/auth"
)

// RouterOptions configures the account routes. Only Service is required.
type RouterOptions struct {
	Service *auth.Service

	// Limiter throttles sign-in and callback requests per client address.
	Limiter ratelimiter.RateLimiter

	// Audit records sign-in and sign-out outcomes.
	Audit *audit.Logger

	Logger *slog.Logger
}

// Router mounts the authentication routes:
//
//	GET  /auth/signin        start a sign-in, or show the retry page after a failure
//	GET  /auth/callback      finish a sign-in
//	POST /auth/signout       end the session
//	GET  /auth/error         sign-in failure page
//	GET  /api/auth/session   current session as JSON
//
// It expects session.Manager.Middleware to run first.
func Router(opts RouterOptions) chi.Router {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	h := &handlers{svc: opts.Service, audit: opts.Audit, logger: log}
	eh := ErrorHandler(log)

	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		if opts.Limiter != nil {
			r.Use(ratelimiter.Middleware(opts.Limiter, clientip.Key,
				ratelimiter.WithLogger(log),
				ratelimiter.WithLimitedHandler(tooManyRequests(eh)),
			))
		}
		r.Get("/auth/signin", handler.Wrap(h.signIn,
			handler.WithBinders[handler.Context, signInRequest](binder.Query()),
			handler.WithErrorHandler[handler.Context, signInRequest](eh),
		))
		r.Get(auth.CallbackPath, handler.Wrap(h.callback,
			handler.WithBinders[handler.Context, callbackRequest](binder.Query()),
			handler.WithErrorHandler[handler.Context, callbackRequest](eh),
		))
	})

	r.Post("/auth/signout", handler.Wrap(h.signOut,
		handler.WithBinders[handler.Context, signOutRequest](binder.Form()),
		handler.WithErrorHandler[handler.Context, signOutRequest](eh),
	))
	r.Get("/auth/error", handler.Wrap(h.errorPage,
		handler.WithBinders[handler.Context, errorRequest](binder.Query()),
		handler.WithErrorHandler[handler.Context, errorRequest](eh),
	))
	r.Get("/api/auth/session", handler.Wrap(h.session,
		handler.WithErrorHandler[handler.Context, struct{}](eh),
	))

	return r
}

// ErrorHandler renders failures as JSON under /api/ and as an HTML page
// elsewhere.
func ErrorHandler(log *slog.Logger) handler.ErrorHandler[handler.Context] {
	return handler.NewErrorHandler(log, handler.ErrorHandlerConfig{ErrorPage: ErrorPage})
}

func tooManyRequests(eh handler.ErrorHandler[handler.Context]) http.Handler {
	return handler.Wrap(func(ctx handler.Context, _ struct{}) handler.Response {
		return handler.Error(handler.ErrTooManyRequests)
	}, handler.WithErrorHandler[handler.Context, struct{}](eh))
}
