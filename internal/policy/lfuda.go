package policy

import (
	"math/big"

	"github.com/OrlovEvgeny/go-boundcache/internal/pqueue"
)

// LFUDA is LFU with dynamic aging.
//
// Each touch of a key charges its score with the current age factor and then
// advances the age factor by one. Removing a key, whether by eviction or by an
// explicit delete, rebases the age factor to the removed key's score. Keys that
// were popular long ago therefore lose their advantage over newer entries.
//
// Every removal roughly doubles the magnitude of the age factor, so scores are
// arbitrary precision and never wrap.
type LFUDA[K comparable] struct {
	scores *pqueue.Queue[K, *big.Int]
	age    *big.Int
}

// NewLFUDA creates an empty LFUDA policy with an age factor of zero.
func NewLFUDA[K comparable]() *LFUDA[K] {
	return &LFUDA[K]{
		scores: pqueue.NewFunc[K]((*big.Int).Cmp),
		age:    new(big.Int),
	}
}

var one = big.NewInt(1)

func (p *LFUDA[K]) touch(key K) {
	charge := func(score *big.Int) *big.Int { return score.Sub(score, p.age) }
	if _, ok := p.scores.Update(key, charge); !ok {
		p.scores.Push(key, new(big.Int).Neg(p.age))
	}
	p.age.Add(p.age, one)
}

// Accessed charges a tracked key and advances the age factor.
func (p *LFUDA[K]) Accessed(key K) {
	if !p.scores.Contains(key) {
		return
	}
	p.touch(key)
}

// Inserted charges key, creating its score at zero first if needed.
func (p *LFUDA[K]) Inserted(key K, _ bool) {
	p.touch(key)
}

// Removed forgets key and rebases the age factor to its score.
func (p *LFUDA[K]) Removed(key K) bool {
	score, ok := p.scores.Priority(key)
	if !ok {
		return false
	}
	p.scores.Remove(key)
	p.age.Set(score)
	return true
}

// Victim returns the key with the lowest score. Ties go to the key inserted first.
func (p *LFUDA[K]) Victim() (K, bool) {
	key, _, ok := p.scores.Min()
	return key, ok
}

// AgeFactor returns a copy of the current age factor.
func (p *LFUDA[K]) AgeFactor() *big.Int {
	return new(big.Int).Set(p.age)
}

// Score returns a copy of the aging score of key.
func (p *LFUDA[K]) Score(key K) (*big.Int, bool) {
	score, ok := p.scores.Priority(key)
	if !ok {
		return nil, false
	}
	return new(big.Int).Set(score), true
}

func (p *LFUDA[K]) Len() int {
	return p.scores.Len()
}

// Reset forgets every key and zeroes the age factor.
func (p *LFUDA[K]) Reset() {
	p.scores.Reset()
	p.age.SetInt64(0)
}
