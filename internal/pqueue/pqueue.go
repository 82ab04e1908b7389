// Package pqueue implements an indexed binary min-heap over comparable keys.
//
// Every key owns exactly one node and the queue keeps a key -> node index, so a
// priority can be changed in place and restored with heap.Fix, and an arbitrary
// key can be removed in O(log n) instead of scanning the backing slice.
// Equal priorities are ordered by first insertion, which makes Min deterministic.
package pqueue

import (
	"cmp"
	"container/heap"
)

type node[K comparable, P any] struct {
	key      K
	priority P
	seq      uint64 // insertion order, tie-break for equal priorities
	index    int    // position in the heap slice, -1 once removed
}

// nodes implements heap.Interface.
type nodes[K comparable, P any] struct {
	items   []*node[K, P]
	compare func(a, b P) int
}

func (n *nodes[K, P]) Len() int { return len(n.items) }

func (n *nodes[K, P]) Less(i, j int) bool {
	if c := n.compare(n.items[i].priority, n.items[j].priority); c != 0 {
		return c < 0
	}
	return n.items[i].seq < n.items[j].seq
}

func (n *nodes[K, P]) Swap(i, j int) {
	n.items[i], n.items[j] = n.items[j], n.items[i]
	n.items[i].index = i
	n.items[j].index = j
}

func (n *nodes[K, P]) Push(x any) {
	nd := x.(*node[K, P])
	nd.index = len(n.items)
	n.items = append(n.items, nd)
}

func (n *nodes[K, P]) Pop() any {
	old := n.items
	last := len(old) - 1
	nd := old[last]
	old[last] = nil // avoid memory leak
	nd.index = -1
	n.items = old[:last]
	return nd
}

// Queue is a min-priority queue keyed by K. It is not safe for concurrent use.
type Queue[K comparable, P any] struct {
	heap  nodes[K, P]
	index map[K]*node[K, P]
	seq   uint64
}

// New creates an empty queue ordered by the natural order of P.
func New[K comparable, P cmp.Ordered]() *Queue[K, P] {
	return NewFunc[K](cmp.Compare[P])
}

// NewFunc creates an empty queue ordered by compare, which returns a negative
// number when a sorts before b, zero when they are equal and a positive number
// otherwise.
func NewFunc[K comparable, P any](compare func(a, b P) int) *Queue[K, P] {
	return &Queue[K, P]{
		heap:  nodes[K, P]{compare: compare},
		index: make(map[K]*node[K, P]),
	}
}

// Push inserts key with the given priority. If the key is already queued its
// priority is replaced instead and Push returns false.
func (q *Queue[K, P]) Push(key K, priority P) bool {
	if nd, ok := q.index[key]; ok {
		q.fix(nd, priority)
		return false
	}

	nd := &node[K, P]{key: key, priority: priority, seq: q.seq}
	q.seq++
	q.index[key] = nd
	heap.Push(&q.heap, nd)
	return true
}

// Update replaces the priority of a queued key with fn(priority) and returns
// the new priority. fn may modify a pointer priority in place.
// Returns false if the key is not queued.
func (q *Queue[K, P]) Update(key K, fn func(P) P) (P, bool) {
	nd, ok := q.index[key]
	if !ok {
		var zero P
		return zero, false
	}
	q.fix(nd, fn(nd.priority))
	return nd.priority, true
}

// fix is the single place where heap order is restored after a priority change.
func (q *Queue[K, P]) fix(nd *node[K, P], priority P) {
	nd.priority = priority
	heap.Fix(&q.heap, nd.index)
}

// Remove deletes key from the queue. Returns false if it was not queued.
func (q *Queue[K, P]) Remove(key K) bool {
	nd, ok := q.index[key]
	if !ok {
		return false
	}
	heap.Remove(&q.heap, nd.index)
	delete(q.index, key)
	return true
}

// Min returns the key with the lowest priority without removing it.
func (q *Queue[K, P]) Min() (key K, priority P, ok bool) {
	if len(q.heap.items) == 0 {
		return key, priority, false
	}
	nd := q.heap.items[0]
	return nd.key, nd.priority, true
}

// PopMin removes and returns the key with the lowest priority.
func (q *Queue[K, P]) PopMin() (key K, priority P, ok bool) {
	if len(q.heap.items) == 0 {
		return key, priority, false
	}
	nd := heap.Pop(&q.heap).(*node[K, P])
	delete(q.index, nd.key)
	return nd.key, nd.priority, true
}

// Priority returns the current priority of key.
func (q *Queue[K, P]) Priority(key K) (P, bool) {
	nd, ok := q.index[key]
	if !ok {
		var zero P
		return zero, false
	}
	return nd.priority, true
}

// Contains reports whether key is queued.
func (q *Queue[K, P]) Contains(key K) bool {
	_, ok := q.index[key]
	return ok
}

// Len returns the number of queued keys.
func (q *Queue[K, P]) Len() int {
	return len(q.heap.items)
}

// Reset removes every key. Insertion order restarts from zero.
func (q *Queue[K, P]) Reset() {
	clear(q.heap.items)
	q.heap.items = q.heap.items[:0]
	q.index = make(map[K]*node[K, P])
	q.seq = 0
}
