package auth

import "context"

// principalContextKey is the key used to store a validated Principal in the
// request context. An empty struct prevents collisions with other
// packages' context keys, since each struct type is distinct even if
// named identically elsewhere.
type principalContextKey struct{}

// bearerContextKey stores the raw bearer token alongside the Principal so
// downstream tool handlers can re-present it to the upstream API without a
// second extraction.
type bearerContextKey struct{}

// WithPrincipal attaches a validated Principal to ctx.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

// PrincipalFromContext retrieves the Principal attached by the Auth Gate.
// Returns ok=false if no principal was attached, which handlers should
// treat as a setup error — the gated route should never have been reached
// without one.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalContextKey{}).(Principal)
	return p, ok
}

// WithBearerToken attaches the raw bearer token to ctx for pass-through to
// the upstream REST client. The gateway never inspects or reissues it.
func WithBearerToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, bearerContextKey{}, token)
}

// BearerTokenFromContext retrieves the raw bearer token attached by the
// Auth Gate.
func BearerTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(bearerContextKey{}).(string)
	return token, ok
}
