// Package cache provides a size-bounded LRU map for GPU-backed resources.
//
// Evicted and cleared values are passed to the release callback so the
// owner can free what they hold (textures, programs). The cache is safe
// for concurrent lookups, but release runs under the cache lock and must
// not call back into the cache.
package cache

import "sync"

// node is an entry in the recency ring. root.next is the most recently
// used entry and root.prev the least.
type node[K comparable, V any] struct {
	key        K
	value      V
	prev, next *node[K, V]
}

// LRU is a least-recently-used cache with a hard entry limit.
type LRU[K comparable, V any] struct {
	mu      sync.Mutex
	limit   int
	entries map[K]*node[K, V]
	root    node[K, V]
	release func(K, V)

	hits, misses, evictions uint64
}

// New creates a cache holding at most limit entries. A limit <= 0 means
// unbounded. release may be nil.
func New[K comparable, V any](limit int, release func(K, V)) *LRU[K, V] {
	c := &LRU[K, V]{
		limit:   limit,
		entries: make(map[K]*node[K, V]),
		release: release,
	}
	c.root.next = &c.root
	c.root.prev = &c.root
	return c
}

// Get returns the cached value and marks it most recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.entries[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	c.touch(n)
	return n.value, true
}

// Set stores value under key, releasing any value it replaces.
func (c *LRU[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.set(key, value)
}

// GetOrLoad returns the cached value or stores the result of load.
// Errors are not cached. load runs under the lock, so concurrent callers
// for the same key load once.
func (c *LRU[K, V]) GetOrLoad(key K, load func() (V, error)) (V, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.entries[key]; ok {
		c.hits++
		c.touch(n)
		return n.value, nil
	}
	c.misses++
	v, err := load()
	if err != nil {
		return v, err
	}
	c.set(key, v)
	return v, nil
}

// Delete removes and releases the entry for key.
func (c *LRU[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.entries[key]
	if !ok {
		return false
	}
	c.remove(n)
	return true
}

// Clear releases every entry, least recently used first.
func (c *LRU[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for c.root.prev != &c.root {
		c.remove(c.root.prev)
	}
}

// Len returns the number of entries.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Keys returns the keys from most to least recently used.
func (c *LRU[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]K, 0, len(c.entries))
	for n := c.root.next; n != &c.root; n = n.next {
		keys = append(keys, n.key)
	}
	return keys
}

// Stats reports cache counters.
type Stats struct {
	Len       int
	Limit     int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// Stats returns a snapshot of the counters.
func (c *LRU[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Len:       len(c.entries),
		Limit:     c.limit,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
}

// Caller must hold c.mu.
func (c *LRU[K, V]) set(key K, value V) {
	if n, ok := c.entries[key]; ok {
		old := n.value
		n.value = value
		c.touch(n)
		if c.release != nil {
			c.release(key, old)
		}
		return
	}

	n := &node[K, V]{key: key, value: value}
	c.entries[key] = n
	c.link(n)

	for c.limit > 0 && len(c.entries) > c.limit {
		c.evictions++
		c.remove(c.root.prev)
	}
}

func (c *LRU[K, V]) link(n *node[K, V]) {
	n.prev = &c.root
	n.next = c.root.next
	c.root.next.prev = n
	c.root.next = n
}

func (c *LRU[K, V]) unlink(n *node[K, V]) {
	n.prev.next = n.next
	n.next.prev = n.prev
	n.prev, n.next = nil, nil
}

func (c *LRU[K, V]) touch(n *node[K, V]) {
	if c.root.next == n {
		return
	}
	c.unlink(n)
	c.link(n)
}

func (c *LRU[K, V]) remove(n *node[K, V]) {
	c.unlink(n)
	delete(c.entries, n.key)
	if c.release != nil {
		c.release(n.key, n.value)
	}
}
