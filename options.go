package boundcache

import (
	"log/slog"
	"time"

	"github.com/OrlovEvgeny/go-boundcache/internal/clock"
)

// config holds the configuration for a Cache instance.
type config[K comparable, V any] struct {
	// Size accounting
	SizeFunc func(value V) int64 // Size of a value (default 1)

	// Callbacks
	OnEvict  func(key K, value V, size int64) // Called when the policy evicts an entry
	OnExpire func(key K, value V)             // Called when an entry is dropped after its TTL

	// Sources
	Now  func() time.Time // Clock for TTL caches
	IntN func(n int) int  // Random source for RR caches

	// TTL
	DefaultTTL time.Duration // Lifetime of entries set without an explicit TTL

	Logger *slog.Logger
}

// Option is a function that configures a Cache.
type Option[K comparable, V any] func(*config[K, V])

// defaultConfig returns the default configuration.
func defaultConfig[K comparable, V any]() *config[K, V] {
	return &config[K, V]{
		Logger: slog.New(slog.DiscardHandler),
	}
}

func newConfig[K comparable, V any](opts []Option[K, V]) *config[K, V] {
	cfg := defaultConfig[K, V]()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithSizeFunc sets the function that computes the size of a value.
// It is called once per Set and must be deterministic.
// If not set, every entry has a size of 1 and capacity is an entry count.
func WithSizeFunc[K comparable, V any](fn func(V) int64) Option[K, V] {
	return func(c *config[K, V]) {
		c.SizeFunc = fn
	}
}

// WithOnEvict sets a callback function that is called when an entry is evicted.
// The callback receives the key, value, and size of the evicted entry.
// It must not call back into the cache.
func WithOnEvict[K comparable, V any](fn func(K, V, int64)) Option[K, V] {
	return func(c *config[K, V]) {
		c.OnEvict = fn
	}
}

// WithOnExpire sets a callback function that is called when a TTL cache
// drops an expired entry.
func WithOnExpire[K comparable, V any](fn func(K, V)) Option[K, V] {
	return func(c *config[K, V]) {
		c.OnExpire = fn
	}
}

// WithClock sets the time source used by TTL caches.
// Default is time.Now.
func WithClock[K comparable, V any](now func() time.Time) Option[K, V] {
	return func(c *config[K, V]) {
		c.Now = now
	}
}

// WithCoarseClock makes a TTL cache read time from a shared clock refreshed
// every millisecond instead of calling time.Now on every operation.
// The refreshing goroutine starts on first use and never stops.
func WithCoarseClock[K comparable, V any]() Option[K, V] {
	return WithClock[K, V](clock.Coarse)
}

// WithRand sets the random source used by random replacement caches.
// fn must return a value in [0, n).
func WithRand[K comparable, V any](fn func(n int) int) Option[K, V] {
	return func(c *config[K, V]) {
		c.IntN = fn
	}
}

// WithDefaultTTL sets the lifetime of entries stored with Set on a TTL cache.
// It overrides the ttl passed to NewTTL.
func WithDefaultTTL[K comparable, V any](ttl time.Duration) Option[K, V] {
	return func(c *config[K, V]) {
		c.DefaultTTL = ttl
	}
}

// WithLogger sets the logger used for eviction and invariant reports.
// Default discards all output.
func WithLogger[K comparable, V any](logger *slog.Logger) Option[K, V] {
	return func(c *config[K, V]) {
		if logger != nil {
			c.Logger = logger
		}
	}
}
