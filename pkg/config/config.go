// Package config loads gateway configuration from the environment.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the complete gateway configuration in a flat structure.
type Config struct {
	// PublicBaseURL is advertised in the WWW-Authenticate `realm`
	// parameter and is the base of the public metadata URL named in its
	// `resource_metadata` parameter.
	PublicBaseURL string

	// UpstreamAuthzURL is the sole entry of `authorization_servers` in the
	// metadata document.
	UpstreamAuthzURL string

	// UpstreamIntrospectURL is the target of the token-validation GET.
	UpstreamIntrospectURL string

	// UpstreamResource is the metadata document's `resource` value.
	UpstreamResource string

	// CacheCapacity is the bounded number of validated-token entries kept.
	CacheCapacity int

	// CacheTTL is the freshness window for a cache entry.
	CacheTTL time.Duration

	// IntrospectTimeout bounds a single introspection HTTP call.
	IntrospectTimeout time.Duration

	// ListenPort is the HTTP bind port.
	ListenPort int
}

// Load reads configuration from the environment and validates it. No
// config file is read.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("")
	v.AutomaticEnv()

	v.SetDefault("CACHE_CAPACITY", 100)
	v.SetDefault("CACHE_TTL_SECONDS", 300)
	v.SetDefault("INTROSPECT_TIMEOUT_MS", 5000)
	v.SetDefault("LISTEN_PORT", 8080)

	cfg := &Config{
		PublicBaseURL:         v.GetString("PUBLIC_BASE_URL"),
		UpstreamAuthzURL:      v.GetString("UPSTREAM_AUTHZ_URL"),
		UpstreamIntrospectURL: v.GetString("UPSTREAM_INTROSPECT_URL"),
		UpstreamResource:      v.GetString("UPSTREAM_RESOURCE"),
		CacheCapacity:         v.GetInt("CACHE_CAPACITY"),
		CacheTTL:              time.Duration(v.GetInt64("CACHE_TTL_SECONDS")) * time.Second,
		IntrospectTimeout:     time.Duration(v.GetInt64("INTROSPECT_TIMEOUT_MS")) * time.Millisecond,
		ListenPort:            v.GetInt("LISTEN_PORT"),
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// String returns a representation safe for logging; it prints every field
// unredacted, since configuration values here are all non-secret URLs and
// numbers. The method is kept
// for parity with the rest of the stack's pattern of never Printf-ing a
// struct directly.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{PublicBaseURL:%s, UpstreamAuthzURL:%s, UpstreamIntrospectURL:%s, UpstreamResource:%s, "+
			"CacheCapacity:%d, CacheTTL:%v, IntrospectTimeout:%v, ListenPort:%d}",
		c.PublicBaseURL, c.UpstreamAuthzURL, c.UpstreamIntrospectURL, c.UpstreamResource,
		c.CacheCapacity, c.CacheTTL, c.IntrospectTimeout, c.ListenPort,
	)
}

// requireURL validates that value is a non-empty, parseable absolute URL.
func requireURL(key, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", key)
	}
	u, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", key, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s must be an absolute URL, got %q", key, value)
	}
	return nil
}
