package account

import (
	"context"
	"errors"
	"log/slog"
	"net/url"

	"github.com/axolutions/linkbio-dashboard/handler"
	"github.com/axolutions/linkbio-dashboard/pkg/audit"
	"github.com/axolutions/linkbio-dashboard/pkg/logger"
	"github.com/axolutions/linkbio-dashboard/pkg/session"
	"github.com/axolutions/linkbio-dashboard/svc/auth"
)

const (
	ActionSignIn  = "auth.signin"
	ActionSignOut = "auth.signout"
)

type handlers struct {
	svc    *auth.Service
	audit  *audit.Logger
	logger *slog.Logger
}

type signInRequest struct {
	CallbackURL string `query:"callbackUrl"`
	Error       string `query:"error"`
}

type callbackRequest struct {
	Code             string `query:"code"`
	State            string `query:"state"`
	Error            string `query:"error"`
	ErrorDescription string `query:"error_description"`
}

type signOutRequest struct {
	CallbackURL string `form:"callbackUrl"`
}

type errorRequest struct {
	Error string `query:"error"`
}

// errorURL points at the failure page for code.
func errorURL(code string) string {
	return "/auth/error?" + url.Values{"error": {code}}.Encode()
}

func signInURL(callbackURL string) string {
	if callbackURL == "" {
		return "/auth/signin"
	}
	return "/auth/signin?" + url.Values{"callbackUrl": {callbackURL}}.Encode()
}

func (h *handlers) signIn(ctx handler.Context, req signInRequest) handler.Response {
	if session.ViewFromContext(ctx).Status == session.StatusAuthenticated {
		return handler.Redirect(auth.SanitizeRedirect(req.CallbackURL, h.svc.BaseURL()))
	}

	// Failed attempts get the retry page, never an automatic restart.
	if req.Error != "" {
		return handler.Templ(SignInRetryPage(req.Error, signInURL(req.CallbackURL)))
	}

	target, err := h.svc.Initiate(ctx, ctx.ResponseWriter(), req.CallbackURL)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to start sign-in",
			logger.Component("account"),
			logger.Error(err),
		)
		return handler.Redirect(errorURL(auth.CodeOAuthSignin))
	}
	return handler.Redirect(target)
}

func (h *handlers) callback(ctx handler.Context, req callbackRequest) handler.Response {
	res, err := h.svc.Complete(ctx, ctx.ResponseWriter(), ctx.Request(), auth.Callback{
		Code:             req.Code,
		State:            req.State,
		Error:            req.Error,
		ErrorDescription: req.ErrorDescription,
	})
	if err != nil {
		code := auth.ErrorCode(err)
		h.record(ctx, ActionSignIn, err, audit.WithMetadata("code", code))
		return handler.Redirect(errorURL(code))
	}

	h.record(ctx, ActionSignIn, nil,
		audit.WithSubject(res.Session.Identity.Subject),
		audit.WithSessionID(res.Session.ID),
	)
	return handler.Redirect(res.RedirectTo)
}

func (h *handlers) signOut(ctx handler.Context, req signOutRequest) handler.Response {
	view := session.ViewFromContext(ctx)
	if err := h.svc.SignOut(ctx, ctx.ResponseWriter(), ctx.Request()); err != nil {
		h.record(ctx, ActionSignOut, err)
		if errors.Is(err, session.ErrStoreUnavailable) {
			return handler.Error(errors.Join(handler.ErrServiceUnavailable, err))
		}
		return handler.Error(err)
	}

	if view.Identity != nil {
		h.record(ctx, ActionSignOut, nil)
	}
	return handler.Redirect(auth.SanitizeRedirect(req.CallbackURL, h.svc.BaseURL()))
}

func (h *handlers) errorPage(ctx handler.Context, req errorRequest) handler.Response {
	return handler.Templ(AuthErrorPage(req.Error))
}

func (h *handlers) session(ctx handler.Context, _ struct{}) handler.Response {
	return handler.JSONRaw(session.ViewFromContext(ctx))
}

// record writes an audit event. Audit failures are logged and never fail
// the request.
func (h *handlers) record(ctx context.Context, action string, cause error, opts ...audit.EventOption) {
	if h.audit == nil {
		return
	}
	var err error
	if cause != nil {
		err = h.audit.LogError(ctx, action, cause, opts...)
	} else {
		err = h.audit.Log(ctx, action, opts...)
	}
	if err != nil {
		h.logger.WarnContext(ctx, "failed to write audit event",
			logger.Component("account"),
			logger.Event(action),
			logger.Error(err),
		)
	}
}
