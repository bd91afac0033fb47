package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"github.com/axolutions/linkbio-dashboard/pkg/logger"
	"github.com/axolutions/linkbio-dashboard/pkg/requestid"
)

// ErrorPageParams is passed to the configured error page component.
type ErrorPageParams struct {
	Error      string
	StatusCode int
	RequestID  string
}

type ErrorHandlerConfig struct {
	// ErrorPage renders browser-facing failures. A plain-text body is used
	// when nil.
	ErrorPage func(ErrorPageParams) templ.Component

	// APIPrefix marks paths answered with JSON. Defaults to "/api/".
	APIPrefix string
}

func wantsJSON(r *http.Request, prefix string) bool {
	if strings.HasPrefix(r.URL.Path, prefix) {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func logLevel(status int) slog.Level {
	if status < http.StatusInternalServerError {
		return slog.LevelWarn
	}
	return slog.LevelError
}

// NewErrorHandler logs err with the request ID and renders it as JSON for
// API requests or as an error page otherwise.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	if log == nil {
		log = logger.Discard()
	}
	if cfg.APIPrefix == "" {
		cfg.APIPrefix = "/api/"
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		w := ctx.ResponseWriter()
		status := StatusCode(err)
		reqID := requestid.FromContext(r.Context())

		log.LogAttrs(r.Context(), logLevel(status), "request error",
			logger.RequestID(reqID),
			logger.Error(err),
			logger.StatusCode(status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		)

		if wantsJSON(r, cfg.APIPrefix) {
			if rerr := JSONError(err).Render(w, r); rerr != nil {
				log.ErrorContext(r.Context(), "failed to render error response",
					logger.RequestID(reqID),
					logger.Error(rerr),
				)
			}
			return
		}

		if cfg.ErrorPage == nil {
			http.Error(w, http.StatusText(status), status)
			return
		}

		page := cfg.ErrorPage(ErrorPageParams{
			Error:      http.StatusText(status),
			StatusCode: status,
			RequestID:  reqID,
		})
		if rerr := TemplWithStatus(page, status).Render(w, r); rerr != nil {
			log.ErrorContext(r.Context(), "failed to render error page",
				logger.RequestID(reqID),
				logger.Error(rerr),
				logger.Event("render_error_page"),
			)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}
}
