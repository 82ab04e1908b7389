package pqueue

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// verify checks the heap property and that every index entry points at its node.
func verify[K comparable, P any](t *testing.T, q *Queue[K, P]) {
	t.Helper()

	require.Equal(t, len(q.heap.items), len(q.index), "heap and index sizes differ")
	for i, nd := range q.heap.items {
		require.Equal(t, i, nd.index, "stale index for %v", nd.key)
		require.Same(t, nd, q.index[nd.key])
		if i > 0 {
			parent := (i - 1) / 2
			require.False(t, q.heap.Less(i, parent), "heap order broken at %d", i)
		}
	}
}

func inc(p int64) int64 { return p + 1 }

func TestQueuePushMin(t *testing.T) {
	q := New[string, int64]()

	assert.True(t, q.Push("a", 3))
	assert.True(t, q.Push("b", 1))
	assert.True(t, q.Push("c", 2))

	key, prio, ok := q.Min()
	require.True(t, ok)
	assert.Equal(t, "b", key)
	assert.Equal(t, int64(1), prio)
	assert.Equal(t, 3, q.Len())
	verify(t, q)
}

func TestQueuePushExistingReplacesPriority(t *testing.T) {
	q := New[string, int64]()
	q.Push("a", 1)
	q.Push("b", 2)

	assert.False(t, q.Push("a", 5))
	assert.Equal(t, 2, q.Len())

	key, _, _ := q.Min()
	assert.Equal(t, "b", key)
	verify(t, q)
}

func TestQueueTiesBreakByInsertionOrder(t *testing.T) {
	q := New[int, int64]()
	for i := 0; i < 10; i++ {
		q.Push(i, 7)
	}

	for want := 0; want < 10; want++ {
		key, _, ok := q.PopMin()
		require.True(t, ok)
		assert.Equal(t, want, key)
	}

	_, _, ok := q.PopMin()
	assert.False(t, ok)
}

func TestQueueUpdatedKeyKeepsInsertionRank(t *testing.T) {
	q := New[string, int64]()
	q.Push("old", 1)
	q.Push("new", 1)

	q.Update("old", inc)
	q.Update("new", inc)

	key, _, _ := q.Min()
	assert.Equal(t, "old", key)
}

func TestQueueUpdate(t *testing.T) {
	q := New[string, int64]()
	q.Push("a", 1)
	q.Push("b", 2)

	prio, ok := q.Update("a", func(p int64) int64 { return p + 5 })
	require.True(t, ok)
	assert.Equal(t, int64(6), prio)

	key, _, _ := q.Min()
	assert.Equal(t, "b", key)

	_, ok = q.Update("a", func(int64) int64 { return -1 })
	require.True(t, ok)
	key, _, _ = q.Min()
	assert.Equal(t, "a", key)

	_, ok = q.Update("missing", inc)
	assert.False(t, ok)
	verify(t, q)
}

func TestQueueCustomOrderWithPointerPriorities(t *testing.T) {
	q := NewFunc[string](func(a, b *big.Int) int { return a.Cmp(b) })
	huge := new(big.Int).Lsh(big.NewInt(1), 100)

	q.Push("huge", huge)
	q.Push("small", big.NewInt(-3))
	q.Push("neg-huge", new(big.Int).Neg(huge))

	key, _, _ := q.Min()
	assert.Equal(t, "neg-huge", key)

	// In-place changes still restore the heap order.
	_, ok := q.Update("neg-huge", func(p *big.Int) *big.Int { return p.Add(p, new(big.Int).Lsh(huge, 1)) })
	require.True(t, ok)
	key, prio, _ := q.Min()
	assert.Equal(t, "small", key)
	assert.Equal(t, int64(-3), prio.Int64())

	key, _, _ = q.PopMin()
	assert.Equal(t, "small", key)
	key, _, _ = q.PopMin()
	assert.Equal(t, "huge", key)
	verify(t, q)
}

func TestQueueRemove(t *testing.T) {
	q := New[string, int64]()
	q.Push("a", 1)
	q.Push("b", 2)
	q.Push("c", 3)

	assert.True(t, q.Remove("a"))
	assert.False(t, q.Remove("a"))
	assert.False(t, q.Contains("a"))

	_, ok := q.Priority("a")
	assert.False(t, ok)

	key, _, _ := q.Min()
	assert.Equal(t, "b", key)
	verify(t, q)
}

func TestQueueEmpty(t *testing.T) {
	q := New[string, int64]()

	_, _, ok := q.Min()
	assert.False(t, ok)
	_, _, ok = q.PopMin()
	assert.False(t, ok)
	assert.Equal(t, 0, q.Len())
}

func TestQueueReset(t *testing.T) {
	q := New[int, int64]()
	for i := 0; i < 5; i++ {
		q.Push(i, int64(i))
	}

	q.Reset()
	assert.Equal(t, 0, q.Len())
	assert.False(t, q.Contains(3))

	q.Push(9, 1)
	key, _, ok := q.Min()
	require.True(t, ok)
	assert.Equal(t, 9, key)
	verify(t, q)
}

// TestQueueRandomOperations checks Min against a brute-force scan after every
// mutation of a random workload.
func TestQueueRandomOperations(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	q := New[int, int64]()
	model := make(map[int]int64)
	order := make(map[int]int)
	next := 0

	for i := 0; i < 5000; i++ {
		key := rng.Intn(64)
		switch op := rng.Intn(4); op {
		case 0:
			prio := int64(rng.Intn(20))
			if q.Push(key, prio) {
				order[key] = next
				next++
			}
			model[key] = prio
		case 1:
			delta := int64(rng.Intn(7) - 3)
			if p, ok := q.Update(key, func(p int64) int64 { return p + delta }); ok {
				model[key] += delta
				require.Equal(t, model[key], p)
			}
		case 2:
			removed := q.Remove(key)
			_, inModel := model[key]
			require.Equal(t, inModel, removed)
			delete(model, key)
			delete(order, key)
		case 3:
			if _, ok := model[key]; ok {
				prio := int64(rng.Intn(20))
				_, ok := q.Update(key, func(int64) int64 { return prio })
				require.True(t, ok)
				model[key] = prio
			}
		}

		key, prio, ok := q.Min()
		require.Equal(t, len(model) > 0, ok)
		if !ok {
			continue
		}

		wantKey, wantPrio := -1, int64(0)
		for k, p := range model {
			if wantKey == -1 || p < wantPrio || (p == wantPrio && order[k] < order[wantKey]) {
				wantKey, wantPrio = k, p
			}
		}
		require.Equal(t, wantKey, key, "step %d", i)
		require.Equal(t, wantPrio, prio)
	}
	verify(t, q)
}

func BenchmarkQueueUpdate(b *testing.B) {
	q := New[int, int64]()
	for i := 0; i < 10000; i++ {
		q.Push(i, 0)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		q.Update(i%10000, inc)
	}
}
