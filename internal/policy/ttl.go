package policy

import (
	"time"

	"github.com/OrlovEvgeny/go-boundcache/internal/pqueue"
)

// TTL layers per-key deadlines over an LRU fallback.
// Expired keys are always chosen as victims first, earliest deadline first;
// when nothing has expired the least recently used key is chosen.
type TTL[K comparable] struct {
	deadlines *pqueue.Queue[K, time.Time] // only keys that can expire
	recency   *LRU[K]
	ttl       time.Duration
	now       func() time.Time

	staged    time.Time
	hasStaged bool
}

// NewTTL creates a TTL policy. Keys inserted without a staged deadline live
// for ttl; a non-positive ttl means they never expire.
func NewTTL[K comparable](ttl time.Duration, now func() time.Time) *TTL[K] {
	if now == nil {
		now = time.Now
	}
	return &TTL[K]{
		deadlines: pqueue.NewFunc[K](time.Time.Compare),
		recency:   NewLRU[K](),
		ttl:       ttl,
		now:       now,
	}
}

// Stage sets the deadline applied by the next Inserted call.
// A zero deadline means the next key never expires.
func (p *TTL[K]) Stage(deadline time.Time) {
	p.staged, p.hasStaged = deadline, true
}

// Unstage drops a staged deadline that no insertion consumed.
func (p *TTL[K]) Unstage() {
	p.staged, p.hasStaged = time.Time{}, false
}

func (p *TTL[K]) Accessed(key K) {
	p.recency.Accessed(key)
}

// Inserted records key with the staged deadline, or now+ttl when none is staged.
// Replacing a key resets its deadline.
func (p *TTL[K]) Inserted(key K, replaced bool) {
	deadline := p.staged
	if !p.hasStaged && p.ttl > 0 {
		deadline = p.now().Add(p.ttl)
	}
	p.Unstage()

	p.recency.Inserted(key, replaced)
	if !deadline.IsZero() {
		p.deadlines.Push(key, deadline)
	} else {
		p.deadlines.Remove(key)
	}
}

func (p *TTL[K]) Removed(key K) bool {
	p.deadlines.Remove(key)
	return p.recency.Removed(key)
}

// Victim prefers the earliest expired key over the least recently used one.
func (p *TTL[K]) Victim() (K, bool) {
	if key, ok := p.NextExpired(); ok {
		return key, true
	}
	return p.recency.Victim()
}

// NextExpired returns the expired key with the earliest deadline.
func (p *TTL[K]) NextExpired() (K, bool) {
	key, deadline, ok := p.deadlines.Min()
	if !ok || deadline.After(p.now()) {
		var zero K
		return zero, false
	}
	return key, true
}

// Expired reports whether key has a deadline that has passed.
func (p *TTL[K]) Expired(key K) bool {
	deadline, ok := p.deadlines.Priority(key)
	return ok && !deadline.After(p.now())
}

// Deadline returns the expiry time of key, or false when it never expires.
func (p *TTL[K]) Deadline(key K) (time.Time, bool) {
	return p.deadlines.Priority(key)
}

// TTL returns the default time to live.
func (p *TTL[K]) TTL() time.Duration {
	return p.ttl
}

func (p *TTL[K]) Len() int {
	return p.recency.Len()
}

func (p *TTL[K]) Reset() {
	p.deadlines.Reset()
	p.recency.Reset()
	p.Unstage()
}
