package cache

import (
	"errors"
)

// Sentinel errors for caching operations.
var (
	// ErrCacheMiss is the sentinel for a cache miss. Cache.Get reports misses
	// through its boolean result and does not return this error.
	ErrCacheMiss = errors.New("cache miss")
)
