package session

import (
	"context"
	"log/slog"

	"github.com/axolutions/linkbio-dashboard/pkg/logger"
)

type viewContextKey struct{}

// WithView attaches the request's projection to ctx.
func WithView(ctx context.Context, v View) context.Context {
	return context.WithValue(ctx, viewContextKey{}, v)
}

// ViewFromContext returns the projection, or an UNAUTHENTICATED view when
// none was attached.
func ViewFromContext(ctx context.Context) View {
	if v, ok := ctx.Value(viewContextKey{}).(View); ok {
		return v
	}
	return Unauthenticated()
}

// LoggerExtractor returns a ContextExtractor adding the session ID.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if v := ViewFromContext(ctx); v.SessionID != "" {
			return logger.SessionID(v.SessionID), true
		}
		return slog.Attr{}, false
	}
}
