// Package boundcache provides in-memory key/value caches bounded by a
// capacity, each evicting entries according to a pluggable Policy.
//
// Caches are not safe for concurrent use. Callers that share a cache between
// goroutines must hold their own lock around every call.
package boundcache

import (
	"fmt"
	"log/slog"
)

// entry is a cached value together with the size charged for it.
type entry[V any] struct {
	value V
	size  int64
}

// Cache is a generic capacity-bounded map. The sum of entry sizes never
// exceeds the capacity after a successful Set; room is made by evicting the
// victims chosen by the policy.
type Cache[K comparable, V any] struct {
	entries  map[K]entry[V]
	policy   Policy[K]
	capacity int64
	size     int64
	metrics  *Metrics
	config   *config[K, V]
	logger   *slog.Logger

	// expired reports whether a victim is being dropped for its age rather
	// than for room. Nil for caches without expiry.
	expired func(key K) bool
}

// New creates a Cache holding at most capacity units of size, evicting with p.
func New[K comparable, V any](capacity int64, p Policy[K], opts ...Option[K, V]) *Cache[K, V] {
	return newCache(capacity, p, newConfig(opts))
}

func newCache[K comparable, V any](capacity int64, p Policy[K], cfg *config[K, V]) *Cache[K, V] {
	if capacity < 0 {
		capacity = 0
	}
	return &Cache[K, V]{
		entries:  make(map[K]entry[V]),
		policy:   p,
		capacity: capacity,
		metrics:  newMetrics(),
		config:   cfg,
		logger:   cfg.Logger,
	}
}

// Get returns the value stored for key and records the access with the policy.
// It returns ErrKeyNotFound if the key is not cached.
func (c *Cache[K, V]) Get(key K) (V, error) {
	e, ok := c.entries[key]
	if !ok {
		c.metrics.incMiss()
		var zero V
		return zero, ErrKeyNotFound
	}

	c.policy.Accessed(key)
	c.metrics.incHit()
	return e.value, nil
}

// Peek returns the value stored for key without touching the policy.
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	e, ok := c.entries[key]
	return e.value, ok
}

// Set stores value under key, evicting entries until it fits.
// If the value alone is larger than the capacity, Set returns ErrValueTooLarge
// and leaves the cache unchanged.
func (c *Cache[K, V]) Set(key K, value V) error {
	size := c.sizeOf(value)
	if size > c.capacity {
		c.metrics.incRejection()
		return fmt.Errorf("%w: size %d exceeds capacity %d", ErrValueTooLarge, size, c.capacity)
	}

	// The old value of key is released by the write, so it does not count
	// against the room needed. The policy may still pick key itself as a
	// victim, in which case the write becomes a fresh insert.
	for c.projected(key, size) > c.capacity {
		if _, _, err := c.popVictim("set"); err != nil {
			return err
		}
	}

	old, replaced := c.entries[key]
	if replaced {
		c.size -= old.size
	}
	c.entries[key] = entry[V]{value: value, size: size}
	c.size += size
	c.policy.Inserted(key, replaced)

	c.metrics.incSet()
	c.metrics.addSize(size)
	return nil
}

// projected returns the total size after storing size bytes under key.
func (c *Cache[K, V]) projected(key K, size int64) int64 {
	used := c.size
	if old, ok := c.entries[key]; ok {
		used -= old.size
	}
	return used + size
}

func (c *Cache[K, V]) sizeOf(value V) int64 {
	if c.config.SizeFunc == nil {
		return 1
	}
	if size := c.config.SizeFunc(value); size > 0 {
		return size
	}
	return 0
}

// Delete removes key regardless of the eviction order.
// It returns ErrKeyNotFound if the key is not cached.
func (c *Cache[K, V]) Delete(key K) error {
	e, ok := c.entries[key]
	if !ok {
		return ErrKeyNotFound
	}
	if err := c.remove("delete", key, e); err != nil {
		return err
	}
	c.metrics.incDelete()
	return nil
}

// remove drops key from the entry map and from the policy.
func (c *Cache[K, V]) remove(op string, key K, e entry[V]) error {
	delete(c.entries, key)
	c.size -= e.size
	if !c.policy.Removed(key) {
		return c.violation(op, key, "key cached but not tracked by policy")
	}
	return nil
}

// PopVictim evicts and returns the entry the policy ranks lowest.
// It returns ErrCacheEmpty if the cache has no entries.
func (c *Cache[K, V]) PopVictim() (K, V, error) {
	return c.popVictim("pop")
}

func (c *Cache[K, V]) popVictim(op string) (K, V, error) {
	var zero V
	key, ok := c.policy.Victim()
	if !ok {
		if len(c.entries) > 0 {
			return key, zero, c.violation(op, key, "policy has no victim for a non-empty cache")
		}
		return key, zero, ErrCacheEmpty
	}

	e, ok := c.entries[key]
	if !ok {
		return key, zero, c.violation(op, key, "victim is not cached")
	}
	expired := c.expired != nil && c.expired(key)
	if err := c.remove(op, key, e); err != nil {
		return key, zero, err
	}
	if expired {
		c.dropped(key, e)
		return key, e.value, nil
	}

	c.metrics.incEviction()
	c.metrics.addEvictedSize(e.size)
	c.logger.Debug("evicted entry", "key", key, "size", e.size, "current_size", c.size)

	if c.config.OnEvict != nil {
		c.config.OnEvict(key, e.value, e.size)
	}
	return key, e.value, nil
}

// dropped records the removal of an entry whose time to live ran out.
func (c *Cache[K, V]) dropped(key K, e entry[V]) {
	c.metrics.incExpiration()
	c.logger.Debug("expired entry", "key", key, "size", e.size, "current_size", c.size)
	if c.config.OnExpire != nil {
		c.config.OnExpire(key, e.value)
	}
}

func (c *Cache[K, V]) violation(op string, key K, reason string) error {
	err := &InvariantError{Op: op, Key: key, Reason: reason}
	c.logger.Error("cache invariant violated", "op", op, "key", key, "reason", reason)
	return err
}

// Contains reports whether key is cached without touching the policy.
func (c *Cache[K, V]) Contains(key K) bool {
	_, ok := c.entries[key]
	return ok
}

// Len returns the number of entries in the cache.
func (c *Cache[K, V]) Len() int {
	return len(c.entries)
}

// CurrentSize returns the sum of the sizes of all entries.
func (c *Cache[K, V]) CurrentSize() int64 {
	return c.size
}

// Capacity returns the maximum total size.
func (c *Cache[K, V]) Capacity() int64 {
	return c.capacity
}

// Keys returns all cached keys in no particular order.
func (c *Cache[K, V]) Keys() []K {
	keys := make([]K, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	return keys
}

// Range calls fn for every entry until fn returns false.
// fn must not modify the cache.
func (c *Cache[K, V]) Range(fn func(key K, value V) bool) {
	for k, e := range c.entries {
		if !fn(k, e.value) {
			return
		}
	}
}

// Metrics returns the cache metrics.
func (c *Cache[K, V]) Metrics() MetricsSnapshot {
	return c.metrics.Snapshot()
}

// Clear removes all entries from the cache and resets the policy and metrics.
func (c *Cache[K, V]) Clear() {
	c.entries = make(map[K]entry[V])
	c.size = 0
	c.policy.Reset()
	c.metrics.Reset()
}
