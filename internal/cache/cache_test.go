package cache

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type released struct {
	mu   sync.Mutex
	keys []string
}

func (r *released) fn(k string, _ int) {
	r.mu.Lock()
	r.keys = append(r.keys, k)
	r.mu.Unlock()
}

func TestGetSet(t *testing.T) {
	c := New[string, int](0, nil)
	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Set("a", 1)
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, Stats{Len: 1, Hits: 1, Misses: 1}, c.Stats())
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	var r released
	c := New[string, int](2, r.fn)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a")
	c.Set("c", 3)

	assert.Equal(t, []string{"c", "a"}, c.Keys())
	assert.Equal(t, []string{"b"}, r.keys)
	assert.Equal(t, uint64(1), c.Stats().Evictions)
}

func TestSetReplaceReleasesOld(t *testing.T) {
	var got []int
	c := New(0, func(_ string, v int) { got = append(got, v) })
	c.Set("a", 1)
	c.Set("a", 2)

	assert.Equal(t, []int{1}, got)
	assert.Equal(t, 1, c.Len())
	v, _ := c.Get("a")
	assert.Equal(t, 2, v)
}

func TestGetOrLoad(t *testing.T) {
	c := New[string, int](0, nil)
	loads := 0
	load := func() (int, error) { loads++; return 7, nil }

	for i := 0; i < 3; i++ {
		v, err := c.GetOrLoad("k", load)
		require.NoError(t, err)
		assert.Equal(t, 7, v)
	}
	assert.Equal(t, 1, loads)
}

func TestGetOrLoadErrorNotCached(t *testing.T) {
	c := New[string, int](0, nil)
	boom := errors.New("boom")

	_, err := c.GetOrLoad("k", func() (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, c.Len())
}

func TestDeleteAndClear(t *testing.T) {
	var r released
	c := New[string, int](0, r.fn)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	assert.True(t, c.Delete("b"))
	assert.False(t, c.Delete("b"))
	c.Clear()

	assert.Equal(t, []string{"b", "a", "c"}, r.keys, "clear releases oldest first")
	assert.Zero(t, c.Len())
	assert.Empty(t, c.Keys())
}

func TestConcurrentGetOrLoad(t *testing.T) {
	c := New[int, int](8, nil)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				_, _ = c.GetOrLoad(i%16, func() (int, error) { return i, nil })
			}
		}()
	}
	wg.Wait()
	assert.LessOrEqual(t, c.Len(), 8)
}
