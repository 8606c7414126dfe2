package gate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oauthgw/prgateway/pkg/auth"
	"github.com/oauthgw/prgateway/pkg/auth/token"
	"github.com/oauthgw/prgateway/pkg/challenge"
)

// fakeValidator lets tests drive every §4.E branch without a real
// upstream introspection endpoint.
type fakeValidator struct {
	outcome  token.Outcome
	cacheHit bool
	stats    token.Stats
}

func (f *fakeValidator) ValidateDetailed(context.Context, string) (auth.Principal, token.Outcome, bool) {
	if f.outcome == token.Valid {
		return auth.NewPrincipal("u1", "t1", []string{"read"}), token.Valid, f.cacheHit
	}
	return auth.Principal{}, f.outcome, false
}

func (f *fakeValidator) CacheStats() token.Stats {
	return f.stats
}

func newTestGate(outcome token.Outcome) *Gate {
	emitter := challenge.NewEmitter("https://svc.example.com", "https://svc.example.com/.well-known/oauth-protected-resource")
	return New(&fakeValidator{outcome: outcome}, emitter, nil)
}

func newInnerHandler(t *testing.T, called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		p, ok := auth.PrincipalFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, "u1", p.UserID)

		bearer, ok := auth.BearerTokenFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, "goodtoken", bearer)

		w.WriteHeader(http.StatusOK)
	})
}

func TestGateMissingHeaderNeverReachesHandler(t *testing.T) {
	g := newTestGate(token.Valid)
	called := false

	req := httptest.NewRequest(http.MethodPost, "/tools/list", nil)
	rec := httptest.NewRecorder()

	g.Middleware(newInnerHandler(t, &called)).ServeHTTP(rec, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotContains(t, rec.Header().Get("WWW-Authenticate"), "error=")
}

func TestGateValidTokenAttachesPrincipalAndForwards(t *testing.T) {
	g := newTestGate(token.Valid)
	called := false

	req := httptest.NewRequest(http.MethodPost, "/tools/list", nil)
	req.Header.Set("Authorization", "Bearer goodtoken")
	rec := httptest.NewRecorder()

	g.Middleware(newInnerHandler(t, &called)).ServeHTTP(rec, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGateInvalidTokenChallenges(t *testing.T) {
	g := newTestGate(token.InvalidToken)
	called := false

	req := httptest.NewRequest(http.MethodPost, "/tools/list", nil)
	req.Header.Set("Authorization", "Bearer badtoken")
	rec := httptest.NewRecorder()

	g.Middleware(newInnerHandler(t, &called)).ServeHTTP(rec, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Header().Get("WWW-Authenticate"), `error="invalid_token"`)
}

func TestGateTransportFailureReturns503(t *testing.T) {
	g := newTestGate(token.TransportFailure)
	called := false

	req := httptest.NewRequest(http.MethodPost, "/tools/list", nil)
	req.Header.Set("Authorization", "Bearer anytoken")
	rec := httptest.NewRecorder()

	g.Middleware(newInnerHandler(t, &called)).ServeHTTP(rec, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.Empty(t, rec.Header().Get("WWW-Authenticate"))
}

func TestGateMalformedHeaderGetsInvalidRequestCode(t *testing.T) {
	g := newTestGate(token.Valid)
	called := false

	req := httptest.NewRequest(http.MethodPost, "/tools/list", nil)
	req.Header.Set("Authorization", "Bearer ")
	rec := httptest.NewRecorder()

	g.Middleware(newInnerHandler(t, &called)).ServeHTTP(rec, req)

	assert.False(t, called)
	assert.Contains(t, rec.Header().Get("WWW-Authenticate"), `error="invalid_request"`)
}

func TestGateNeverLeaksTokenOnFailure(t *testing.T) {
	g := newTestGate(token.InvalidToken)
	called := false

	const secretToken = "super-secret-token-value"
	req := httptest.NewRequest(http.MethodPost, "/tools/list", nil)
	req.Header.Set("Authorization", "Bearer "+secretToken)
	rec := httptest.NewRecorder()

	g.Middleware(newInnerHandler(t, &called)).ServeHTTP(rec, req)

	assert.NotContains(t, rec.Body.String(), secretToken)
	assert.NotContains(t, rec.Header().Get("WWW-Authenticate"), secretToken)
}
