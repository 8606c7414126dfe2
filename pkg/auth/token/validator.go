package token

import (
	"context"
	"net/http"
	"time"

	"github.com/oauthgw/prgateway/pkg/auth"
)

// Validator is the Token Validator + Cache component (§4.C). It never
// inspects token structure — every token is opaque, a cache key and an
// introspection argument only.
type Validator struct {
	cache        *Cache
	introspector *Introspector
}

// Config configures a Validator.
type Config struct {
	// IntrospectURL is the upstream introspection endpoint.
	IntrospectURL string

	// IntrospectTimeout bounds a single introspection HTTP call.
	IntrospectTimeout time.Duration

	// CacheCapacity is the bounded number of entries kept (C).
	CacheCapacity int

	// CacheTTL is the per-entry freshness window (T).
	CacheTTL time.Duration
}

// NewValidator builds a Validator from cfg. The HTTP client it creates for
// introspection reuses connections (Go's default transport keep-alive) to
// keep cache-miss latency in the ~100-300ms range the spec targets.
func NewValidator(cfg Config) (*Validator, error) {
	cache, err := NewCache(cfg.CacheCapacity, cfg.CacheTTL)
	if err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: cfg.IntrospectTimeout}
	introspector := NewIntrospector(cfg.IntrospectURL, client)

	return &Validator{cache: cache, introspector: introspector}, nil
}

// Validate implements the §4.C read path:
//  1. Lock, look up token.
//  2. Hit if fresh → return Principal.
//  3. Otherwise unlock and introspect upstream (no lock held across IO).
//  4. On success, lock, insert/replace, unlock, return Principal.
//  5. On 401 or unparseable body → InvalidToken, never cached.
//  6. On any other failure → TransportFailure, never cached.
func (v *Validator) Validate(ctx context.Context, token string) (auth.Principal, Outcome) {
	principal, outcome, _ := v.ValidateDetailed(ctx, token)
	return principal, outcome
}

// ValidateDetailed is Validate plus a cacheHit flag, so callers that care
// about cache-hit/miss ratios (e.g. metrics) don't need a second lookup.
func (v *Validator) ValidateDetailed(ctx context.Context, token string) (auth.Principal, Outcome, bool) {
	if principal, ok := v.cache.Get(token); ok {
		return principal, Valid, true
	}

	principal, outcome := v.introspector.Introspect(ctx, token)
	if outcome != Valid {
		return auth.Principal{}, outcome, false
	}

	v.cache.Set(token, principal)
	return principal, Valid, false
}

// CacheStats exposes the cache's size/capacity side-channel (§4.C
// Observable state).
func (v *Validator) CacheStats() Stats {
	return v.cache.CacheStats()
}
