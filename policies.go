package boundcache

import "github.com/OrlovEvgeny/go-boundcache/internal/policy"

// NewLFU creates a cache that evicts the least frequently used entry.
// Each Set and each successful Get counts as one reference; entries with
// equal counts are evicted in the order they were first inserted.
func NewLFU[K comparable, V any](capacity int64, opts ...Option[K, V]) *Cache[K, V] {
	return New(capacity, policy.NewLFU[K](), opts...)
}

// NewLFUDA creates a cache using LFU with dynamic aging. Every Get and Set
// charges the key's score with a global age factor and advances it; every
// removal rebases the age factor to the removed key's score. The entry with
// the lowest score is evicted, ties going to the entry inserted first.
func NewLFUDA[K comparable, V any](capacity int64, opts ...Option[K, V]) *Cache[K, V] {
	return New(capacity, policy.NewLFUDA[K](), opts...)
}

// NewLRU creates a cache that evicts the least recently used entry.
func NewLRU[K comparable, V any](capacity int64, opts ...Option[K, V]) *Cache[K, V] {
	return New(capacity, policy.NewLRU[K](), opts...)
}

// NewRR creates a cache that evicts a random entry. See WithRand.
func NewRR[K comparable, V any](capacity int64, opts ...Option[K, V]) *Cache[K, V] {
	cfg := newConfig(opts)
	return newCache(capacity, policy.NewRandom[K](cfg.IntN), cfg)
}
