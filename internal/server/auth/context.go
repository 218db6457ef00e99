package auth

import "context"

type ctxKey string

const identityKey ctxKey = "identity"

// WithIdentity attaches the authenticated identity to the context for
// downstream handlers.
func WithIdentity(ctx context.Context, identity string) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext returns the authenticated identity, if any.
func IdentityFromContext(ctx context.Context) (string, bool) {
	identity, ok := ctx.Value(identityKey).(string)
	return identity, ok && identity != ""
}
