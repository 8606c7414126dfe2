package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithPrincipalRoundTrip(t *testing.T) {
	p := NewPrincipal("u1", "t1", []string{"read"})
	ctx := WithPrincipal(context.Background(), p)

	got, ok := PrincipalFromContext(ctx)
	assert.True(t, ok)
	assert.True(t, got.Equal(p))
}

func TestPrincipalFromContextMissing(t *testing.T) {
	_, ok := PrincipalFromContext(context.Background())
	assert.False(t, ok)
}

func TestWithBearerTokenRoundTrip(t *testing.T) {
	ctx := WithBearerToken(context.Background(), "secret-token")

	got, ok := BearerTokenFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "secret-token", got)
}

func TestBearerTokenFromContextMissing(t *testing.T) {
	_, ok := BearerTokenFromContext(context.Background())
	assert.False(t, ok)
}
