package boundcache

import (
	"testing"

	"github.com/OrlovEvgeny/go-boundcache/internal/policy"
)

// checkInvariants verifies size accounting and that the policy tracks exactly
// the cached keys.
func checkInvariants[K comparable, V any](t *testing.T, c *Cache[K, V]) {
	t.Helper()

	var total int64
	for _, e := range c.entries {
		total += e.size
	}
	if total != c.size {
		t.Fatalf("size accounting drifted: entries sum to %d, cache reports %d", total, c.size)
	}
	if c.size > c.capacity {
		t.Fatalf("current size %d exceeds capacity %d", c.size, c.capacity)
	}
	if c.policy.Len() != len(c.entries) {
		t.Fatalf("policy tracks %d keys, cache holds %d", c.policy.Len(), len(c.entries))
	}

	switch p := c.policy.(type) {
	case *policy.LFU[K]:
		for k := range c.entries {
			if _, ok := p.RefCount(k); !ok {
				t.Fatalf("key %v has no reference count", k)
			}
		}
	case *policy.LFUDA[K]:
		for k := range c.entries {
			if _, ok := p.Score(k); !ok {
				t.Fatalf("key %v has no aging score", k)
			}
		}
	}
}

// brokenPolicy names a victim that was never cached.
type brokenPolicy struct {
	*policy.LRU[string]
	victim string
}

func (p *brokenPolicy) Victim() (string, bool) {
	return p.victim, true
}

// forgetfulPolicy never tracks anything.
type forgetfulPolicy struct{}

func (forgetfulPolicy) Accessed(string)        {}
func (forgetfulPolicy) Inserted(string, bool)  {}
func (forgetfulPolicy) Removed(string) bool    { return false }
func (forgetfulPolicy) Victim() (string, bool) { return "", false }
func (forgetfulPolicy) Len() int               { return 0 }
func (forgetfulPolicy) Reset()                 {}
