package config

import "fmt"

// Validate checks that cfg is complete and internally consistent. It is
// split into focused sub-validators so a failure names exactly the field
// at fault.
func Validate(cfg *Config) error {
	if err := validateURLs(cfg); err != nil {
		return err
	}
	if err := validateCache(cfg); err != nil {
		return err
	}
	if err := validateServer(cfg); err != nil {
		return err
	}
	return nil
}

func validateURLs(cfg *Config) error {
	if err := requireURL("PUBLIC_BASE_URL", cfg.PublicBaseURL); err != nil {
		return err
	}
	if err := requireURL("UPSTREAM_AUTHZ_URL", cfg.UpstreamAuthzURL); err != nil {
		return err
	}
	if err := requireURL("UPSTREAM_INTROSPECT_URL", cfg.UpstreamIntrospectURL); err != nil {
		return err
	}
	if err := requireURL("UPSTREAM_RESOURCE", cfg.UpstreamResource); err != nil {
		return err
	}
	return nil
}

func validateCache(cfg *Config) error {
	if cfg.CacheCapacity <= 0 {
		return fmt.Errorf("CACHE_CAPACITY must be positive, got %d", cfg.CacheCapacity)
	}
	if cfg.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL_SECONDS must be positive, got %v", cfg.CacheTTL)
	}
	return nil
}

func validateServer(cfg *Config) error {
	if cfg.IntrospectTimeout <= 0 {
		return fmt.Errorf("INTROSPECT_TIMEOUT_MS must be positive, got %v", cfg.IntrospectTimeout)
	}
	if cfg.ListenPort <= 0 || cfg.ListenPort > 65535 {
		return fmt.Errorf("LISTEN_PORT must be in 1..65535, got %d", cfg.ListenPort)
	}
	return nil
}
