package boundcache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRRUsesRandomSource(t *testing.T) {
	c := NewRR[string, int](3, WithRand[string, int](func(n int) int { return 0 }))

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)
	require.NoError(t, c.Set("d", 4))

	assert.False(t, c.Contains("a"))
	assert.Equal(t, 3, c.Len())
	checkInvariants(t, c)
}

func TestRRReadsDoNotProtect(t *testing.T) {
	c := NewRR[string, int](2, WithRand[string, int](func(n int) int { return n - 1 }))

	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("b")
	c.Get("b")

	key, _, err := c.PopVictim()
	require.NoError(t, err)
	assert.Equal(t, "b", key)
}

func TestRRDefaultSource(t *testing.T) {
	c := NewRR[int, int](10)
	for i := 0; i < 100; i++ {
		require.NoError(t, c.Set(i, i))
		checkInvariants(t, c)
	}
	assert.Equal(t, 10, c.Len())
	assert.Equal(t, int64(90), c.Metrics().Evictions)
}
