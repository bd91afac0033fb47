package identity

import "context"

type identityContextKey struct{}

// WithContext stores the resolved identity for the current request.
func WithContext(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// FromContext returns the identity stored by WithContext, or nil.
func FromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityContextKey{}).(*Identity)
	return id
}
