// Package handler turns typed handler functions into http.HandlerFunc values.
//
// A handler receives a Context and a bound request value and returns a
// Response. Binding, rendering and error reporting are handled by Wrap:
//
//	type signInRequest struct {
//		CallbackURL string `query:"callbackUrl"`
//	}
//
//	func signIn(ctx handler.Context, req signInRequest) handler.Response {
//		target, err := svc.Initiate(ctx, ctx.ResponseWriter(), req.CallbackURL)
//		if err != nil {
//			return handler.Error(err)
//		}
//		return handler.Redirect(target)
//	}
//
//	r.Get("/auth/signin", handler.Wrap(signIn,
//		handler.WithBinders[handler.Context, signInRequest](binder.Query()),
//	))
//
// # Responses
//
// JSON and JSONError write the JSONResponse envelope. Templ renders a
// component as a full HTML document. Redirect and Empty cover the
// remaining cases.
//
// # Errors
//
// Errors returned by binders, by Error responses or by a failed Render go to
// the ErrorHandler. NewErrorHandler logs them with the request ID and
// answers API requests with JSON and browser requests with an error page.
// HTTPError values carry the status code to use.
package handler
