package policy

import (
	"math"

	"github.com/hashicorp/golang-lru/v2/simplelru"
)

// LRU evicts the least recently touched key. Reads and writes both count as a touch.
//
// The recency list is a simplelru.LRU sized so that it never evicts on its own;
// the cache decides when to evict and asks for the oldest key.
type LRU[K comparable] struct {
	order *simplelru.LRU[K, struct{}]
}

// NewLRU creates an empty LRU policy.
func NewLRU[K comparable]() *LRU[K] {
	order, err := simplelru.NewLRU[K, struct{}](math.MaxInt, nil)
	if err != nil {
		// only returned for a non-positive size
		panic(err)
	}
	return &LRU[K]{order: order}
}

// Accessed moves key to the most recent position.
func (p *LRU[K]) Accessed(key K) {
	p.order.Get(key)
}

// Inserted adds key, or moves it to the most recent position.
func (p *LRU[K]) Inserted(key K, _ bool) {
	p.order.Add(key, struct{}{})
}

func (p *LRU[K]) Removed(key K) bool {
	return p.order.Remove(key)
}

// Victim returns the least recently used key.
func (p *LRU[K]) Victim() (K, bool) {
	key, _, ok := p.order.GetOldest()
	return key, ok
}

func (p *LRU[K]) Len() int {
	return p.order.Len()
}

func (p *LRU[K]) Reset() {
	p.order.Purge()
}
