package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		PublicBaseURL:         "https://svc.example.com",
		UpstreamAuthzURL:      "https://example.com/oauth",
		UpstreamIntrospectURL: "https://example.com/introspect",
		UpstreamResource:      "https://api.example.com",
		CacheCapacity:         100,
		CacheTTL:              300 * time.Second,
		IntrospectTimeout:     5 * time.Second,
		ListenPort:            8080,
	}
}

func TestValidateAcceptsWellFormedConfig(t *testing.T) {
	require.NoError(t, Validate(validConfig()))
}

func TestValidateRejectsMissingURLs(t *testing.T) {
	for _, key := range []string{"PublicBaseURL", "UpstreamAuthzURL", "UpstreamIntrospectURL", "UpstreamResource"} {
		cfg := validConfig()
		switch key {
		case "PublicBaseURL":
			cfg.PublicBaseURL = ""
		case "UpstreamAuthzURL":
			cfg.UpstreamAuthzURL = ""
		case "UpstreamIntrospectURL":
			cfg.UpstreamIntrospectURL = ""
		case "UpstreamResource":
			cfg.UpstreamResource = ""
		}
		assert.Error(t, Validate(cfg), "expected error with empty %s", key)
	}
}

func TestValidateRejectsMalformedURL(t *testing.T) {
	cfg := validConfig()
	cfg.PublicBaseURL = "not a url"
	assert.Error(t, Validate(cfg))
}

func TestValidateRejectsNonPositiveCache(t *testing.T) {
	cfg := validConfig()
	cfg.CacheCapacity = 0
	assert.Error(t, Validate(cfg))

	cfg = validConfig()
	cfg.CacheTTL = 0
	assert.Error(t, Validate(cfg))
}

func TestValidateRejectsBadPort(t *testing.T) {
	cfg := validConfig()
	cfg.ListenPort = 70000
	assert.Error(t, Validate(cfg))
}

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("PUBLIC_BASE_URL", "https://svc.example.com")
	t.Setenv("UPSTREAM_AUTHZ_URL", "https://example.com/oauth")
	t.Setenv("UPSTREAM_INTROSPECT_URL", "https://example.com/introspect")
	t.Setenv("UPSTREAM_RESOURCE", "https://api.example.com")
	t.Setenv("CACHE_CAPACITY", "")
	t.Setenv("CACHE_TTL_SECONDS", "")
	t.Setenv("INTROSPECT_TIMEOUT_MS", "")
	t.Setenv("LISTEN_PORT", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.CacheCapacity)
	assert.Equal(t, 300*time.Second, cfg.CacheTTL)
	assert.Equal(t, 5*time.Second, cfg.IntrospectTimeout)
	assert.Equal(t, 8080, cfg.ListenPort)
}

func TestLoadFailsOnMissingRequiredKey(t *testing.T) {
	t.Setenv("PUBLIC_BASE_URL", "")
	t.Setenv("UPSTREAM_AUTHZ_URL", "")
	t.Setenv("UPSTREAM_INTROSPECT_URL", "")
	t.Setenv("UPSTREAM_RESOURCE", "")

	_, err := Load()
	assert.Error(t, err)
}
