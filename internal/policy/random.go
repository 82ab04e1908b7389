package policy

import "math/rand/v2"

// Random evicts a uniformly chosen live key.
type Random[K comparable] struct {
	keys []K
	pos  map[K]int
	intn func(n int) int
}

// NewRandom creates a random replacement policy. intn must return a value in
// [0, n); nil selects math/rand/v2.IntN.
func NewRandom[K comparable](intn func(n int) int) *Random[K] {
	if intn == nil {
		intn = rand.IntN
	}
	return &Random[K]{
		pos:  make(map[K]int),
		intn: intn,
	}
}

// Accessed is a no-op: reads do not affect random replacement.
func (p *Random[K]) Accessed(K) {}

func (p *Random[K]) Inserted(key K, _ bool) {
	if _, ok := p.pos[key]; ok {
		return
	}
	p.pos[key] = len(p.keys)
	p.keys = append(p.keys, key)
}

// Removed swaps the last key into the freed slot.
func (p *Random[K]) Removed(key K) bool {
	i, ok := p.pos[key]
	if !ok {
		return false
	}
	last := len(p.keys) - 1
	if i != last {
		moved := p.keys[last]
		p.keys[i] = moved
		p.pos[moved] = i
	}
	var zero K
	p.keys[last] = zero
	p.keys = p.keys[:last]
	delete(p.pos, key)
	return true
}

func (p *Random[K]) Victim() (K, bool) {
	if len(p.keys) == 0 {
		var zero K
		return zero, false
	}
	return p.keys[p.intn(len(p.keys))], true
}

func (p *Random[K]) Len() int {
	return len(p.keys)
}

func (p *Random[K]) Reset() {
	clear(p.keys)
	p.keys = p.keys[:0]
	p.pos = make(map[K]int)
}
