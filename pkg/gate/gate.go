// Package gate implements the Auth Gate (§4.E): the request interceptor
// that composes bearer extraction, token validation, and challenge
// emission, attaching a validated principal to the request context on
// success.
package gate

import (
	"context"
	"net/http"
	"time"

	"github.com/oauthgw/prgateway/pkg/auth"
	"github.com/oauthgw/prgateway/pkg/auth/token"
	"github.com/oauthgw/prgateway/pkg/challenge"
	"github.com/oauthgw/prgateway/pkg/logger"
	"github.com/oauthgw/prgateway/pkg/metrics"
)

// Validator is the subset of *token.Validator the gate depends on, so
// tests can substitute a fake without standing up a real HTTP upstream.
type Validator interface {
	ValidateDetailed(ctx context.Context, token string) (auth.Principal, token.Outcome, bool)
	CacheStats() token.Stats
}

// Gate is the §4.E request interceptor. It is stateless beyond its
// collaborators: every field is itself concurrency-safe, so a single Gate
// instance is shared across all requests.
type Gate struct {
	validator Validator
	emitter   *challenge.Emitter
	metrics   *metrics.Auth
}

// New builds a Gate from its collaborators. metrics may be nil, in which
// case observability is skipped but auth behavior is unaffected.
func New(validator Validator, emitter *challenge.Emitter, m *metrics.Auth) *Gate {
	return &Gate{validator: validator, emitter: emitter, metrics: m}
}

// Middleware returns a chi-compatible middleware implementing §4.E steps
// 1-4. On any failure it writes the response itself and does not call
// next; on success it attaches the Principal and raw bearer to the
// request context before forwarding.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok, failure, ok := auth.ExtractBearerToken(r)
		if !ok {
			g.reject(w, failure)
			return
		}

		start := time.Now()
		principal, outcome, cacheHit := g.validator.ValidateDetailed(r.Context(), tok)
		g.observe(outcome, cacheHit, start)

		switch outcome {
		case token.Valid:
			ctx := auth.WithPrincipal(r.Context(), principal)
			ctx = auth.WithBearerToken(ctx, tok)
			next.ServeHTTP(w, r.WithContext(ctx))
		case token.InvalidToken:
			g.emitter.Write(w, challenge.CodeInvalidToken, "token rejected by provider")
		case token.TransportFailure:
			logger.Warn("gate: introspection transport failure")
			challenge.Unavailable(w)
		default:
			logger.Errorf("gate: unrecognized validator outcome %v", outcome)
			challenge.Unavailable(w)
		}
	})
}

// reject emits the appropriate challenge for a Bearer Extractor failure
// (§4.E step 1, §7 taxonomy). NoHeader gets no error code; the other two
// kinds get invalid_request.
func (g *Gate) reject(w http.ResponseWriter, failure auth.BearerFailure) {
	if g.metrics != nil {
		g.metrics.OutcomesTotal.WithLabelValues(metrics.OutcomeInvalidRequest).Inc()
	}
	if failure == auth.NoHeader {
		g.emitter.Write(w, challenge.CodeNone, failure.String())
		return
	}
	g.emitter.Write(w, challenge.CodeInvalidRequest, failure.String())
}

// observe records outcome metrics and cache occupancy. Called after every
// validation attempt, success or failure.
func (g *Gate) observe(outcome token.Outcome, cacheHit bool, start time.Time) {
	if g.metrics == nil {
		return
	}
	switch {
	case outcome == token.Valid && cacheHit:
		g.metrics.OutcomesTotal.WithLabelValues(metrics.OutcomeCacheHit).Inc()
	case outcome == token.Valid:
		g.metrics.OutcomesTotal.WithLabelValues(metrics.OutcomeIntrospected).Inc()
		g.metrics.ObserveIntrospectDuration(start)
	}
	switch outcome {
	case token.InvalidToken:
		g.metrics.OutcomesTotal.WithLabelValues(metrics.OutcomeInvalidToken).Inc()
	case token.TransportFailure:
		g.metrics.OutcomesTotal.WithLabelValues(metrics.OutcomeTransportFailure).Inc()
	}
	stats := g.validator.CacheStats()
	g.metrics.SetCacheStats(stats.Size, stats.Capacity)
}
