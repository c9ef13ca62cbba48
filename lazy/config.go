package lazy

// CacheConfig configures GCCache's size-bounded eviction, following
// the plain struct + Default + With* fluent-setter idiom used throughout
// this module's config types (e.g. determinize.Config).
type CacheConfig struct {
	// Limit is the approximate byte budget the cache tries to stay under.
	// Zero means unbounded (GC never runs).
	Limit int
}

// DefaultCacheConfig returns a 1<<20 byte (1 MiB) budget.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{Limit: 1 << 20}
}

func (c CacheConfig) WithLimit(n int) CacheConfig { c.Limit = n; return c }
