package domain

import "context"

type identityKey struct{}

// WithIdentity stores the authenticated Identity in the context.
func WithIdentity(ctx context.Context, ident *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, ident)
}

// IdentityFromContext extracts the authenticated Identity from the context.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	ident, ok := ctx.Value(identityKey{}).(*Identity)
	return ident, ok
}
