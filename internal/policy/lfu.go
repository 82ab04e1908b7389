// Package policy implements the eviction policies used by boundcache.
// Policies track keys only; none of them is safe for concurrent use.
package policy

import "github.com/OrlovEvgeny/go-boundcache/internal/pqueue"

// LFU evicts the key with the lowest reference count.
// Every insertion and every successful read counts as one reference.
// Keys with equal counts are evicted in insertion order.
type LFU[K comparable] struct {
	refs *pqueue.Queue[K, int64]
}

// NewLFU creates an empty LFU policy.
func NewLFU[K comparable]() *LFU[K] {
	return &LFU[K]{refs: pqueue.New[K, int64]()}
}

// Accessed bumps the reference count of a tracked key.
func (p *LFU[K]) Accessed(key K) {
	p.refs.Update(key, ref)
}

// Inserted registers a new key with one reference, or bumps an existing one.
func (p *LFU[K]) Inserted(key K, _ bool) {
	if _, ok := p.refs.Update(key, ref); !ok {
		p.refs.Push(key, 1)
	}
}

func ref(n int64) int64 { return n + 1 }

// Removed forgets key.
func (p *LFU[K]) Removed(key K) bool {
	return p.refs.Remove(key)
}

// Victim returns the least frequently used key.
func (p *LFU[K]) Victim() (K, bool) {
	key, _, ok := p.refs.Min()
	return key, ok
}

// RefCount returns the reference count of key.
func (p *LFU[K]) RefCount(key K) (int64, bool) {
	return p.refs.Priority(key)
}

func (p *LFU[K]) Len() int {
	return p.refs.Len()
}

func (p *LFU[K]) Reset() {
	p.refs.Reset()
}
