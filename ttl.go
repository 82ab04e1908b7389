package boundcache

import (
	"time"

	"github.com/OrlovEvgeny/go-boundcache/internal/policy"
)

// TTLCache is a Cache whose entries expire after a time to live.
// Expired entries read as absent. When room is needed expired entries are
// evicted first, earliest deadline first, then the least recently used entry.
//
// Len, Keys and Range still include expired entries until Expire removes them
// or they are read.
type TTLCache[K comparable, V any] struct {
	*Cache[K, V]
	ttl *policy.TTL[K]
	now func() time.Time
}

// NewTTL creates a TTL cache. Entries stored with Set live for ttl; a
// non-positive ttl means they never expire. WithDefaultTTL overrides ttl.
func NewTTL[K comparable, V any](capacity int64, ttl time.Duration, opts ...Option[K, V]) *TTLCache[K, V] {
	cfg := newConfig(opts)
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.DefaultTTL > 0 {
		ttl = cfg.DefaultTTL
	}

	p := policy.NewTTL[K](ttl, cfg.Now)
	c := &TTLCache[K, V]{
		Cache: newCache(capacity, p, cfg),
		ttl:   p,
		now:   cfg.Now,
	}
	c.expired = p.Expired
	return c
}

// Get returns the value for key if it is cached and not expired.
// An expired entry is removed and reported as ErrKeyNotFound.
func (c *TTLCache[K, V]) Get(key K) (V, error) {
	if c.ttl.Expired(key) {
		var zero V
		c.metrics.incMiss()
		if err := c.expire(key); err != nil {
			return zero, err
		}
		return zero, ErrKeyNotFound
	}
	return c.Cache.Get(key)
}

// Peek returns the value for key without touching the recency order.
func (c *TTLCache[K, V]) Peek(key K) (V, bool) {
	if c.ttl.Expired(key) {
		var zero V
		return zero, false
	}
	return c.Cache.Peek(key)
}

// Contains reports whether key is cached and not expired.
func (c *TTLCache[K, V]) Contains(key K) bool {
	return !c.ttl.Expired(key) && c.Cache.Contains(key)
}

// Delete removes key. An expired key is dropped as expired and reported as
// ErrKeyNotFound, the same way Get treats it.
func (c *TTLCache[K, V]) Delete(key K) error {
	if c.ttl.Expired(key) {
		if err := c.expire(key); err != nil {
			return err
		}
		return ErrKeyNotFound
	}
	return c.Cache.Delete(key)
}

// Set stores value with the cache's default time to live.
func (c *TTLCache[K, V]) Set(key K, value V) error {
	if _, err := c.Expire(); err != nil {
		return err
	}
	return c.Cache.Set(key, value)
}

// SetWithTTL stores value with its own time to live.
// A non-positive ttl means the entry never expires.
func (c *TTLCache[K, V]) SetWithTTL(key K, value V, ttl time.Duration) error {
	if _, err := c.Expire(); err != nil {
		return err
	}

	var deadline time.Time
	if ttl > 0 {
		deadline = c.now().Add(ttl)
	}
	c.ttl.Stage(deadline)
	defer c.ttl.Unstage()

	return c.Cache.Set(key, value)
}

// Expire removes every expired entry and returns how many were removed.
func (c *TTLCache[K, V]) Expire() (int, error) {
	n := 0
	for {
		key, ok := c.ttl.NextExpired()
		if !ok {
			return n, nil
		}
		if err := c.expire(key); err != nil {
			return n, err
		}
		n++
	}
}

func (c *TTLCache[K, V]) expire(key K) error {
	e, ok := c.entries[key]
	if !ok {
		c.ttl.Removed(key)
		return c.violation("expire", key, "deadline tracked for a key that is not cached")
	}
	if err := c.remove("expire", key, e); err != nil {
		return err
	}
	c.dropped(key, e)
	return nil
}

// Deadline returns when key expires, or false if it is not cached or never expires.
func (c *TTLCache[K, V]) Deadline(key K) (time.Time, bool) {
	if !c.Cache.Contains(key) {
		return time.Time{}, false
	}
	return c.ttl.Deadline(key)
}

// TTL returns the default time to live.
func (c *TTLCache[K, V]) TTL() time.Duration {
	return c.ttl.TTL()
}
