package config

import "time"

// CacheConfig defines settings for the floor image cache middleware.
// Floor images never change after import, so they are the one response
// worth caching.  When Enabled is false or no Redis client is configured,
// caching is disabled.  Prefix namespaces the keys, usually per store.
type CacheConfig struct {
	Enabled      bool
	TTL          time.Duration
	Prefix       string
	MaxBodyBytes int
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults are used when variables are not set.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", false),
		TTL:          envDur("CACHE_TTL", time.Hour),
		Prefix:       envStr("CACHE_PREFIX", "seatplan"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 16<<20),
	}
}
