// Package cache provides a generic, size-bounded LRU cache.
//
// Evicted values are handed to an optional callback so owners can release
// resources (close a toast manager, stop timers) when an entry falls out.
// Callbacks run after the cache lock is released and may safely call back
// into the cache.
package cache

import (
	"container/list"
	"sync"
)

type lruEntry[K comparable, V any] struct {
	key   K
	value V
}

// LRUCache is a thread-safe LRU cache.
// When the cache reaches its capacity, the least recently used item is evicted.
type LRUCache[K comparable, V any] struct {
	capacity int
	items    map[K]*list.Element
	order    *list.List
	onEvict  func(key K, value V)
	mu       sync.Mutex
}

// NewLRUCache creates a new LRU cache with the specified capacity.
// The capacity must be positive, otherwise it panics.
func NewLRUCache[K comparable, V any](capacity int) *LRUCache[K, V] {
	if capacity <= 0 {
		panic("LRU cache capacity must be positive")
	}
	return &LRUCache[K, V]{
		capacity: capacity,
		items:    make(map[K]*list.Element),
		order:    list.New(),
	}
}

// SetEvictCallback sets a function called for every entry that leaves the
// cache through eviction, Remove or Clear.
func (c *LRUCache[K, V]) SetEvictCallback(fn func(key K, value V)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onEvict = fn
}

// Peek retrieves a value without touching its recency.
func (c *LRUCache[K, V]) Peek(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		return elem.Value.(*lruEntry[K, V]).value, true
	}

	var zero V
	return zero, false
}

// GetOrCreate returns the cached value for key, or stores and returns the
// result of create. The lookup and insert happen atomically; create runs
// under the cache lock and must not call back into the cache.
func (c *LRUCache[K, V]) GetOrCreate(key K, create func() V) (V, bool) {
	c.mu.Lock()

	if elem, ok := c.items[key]; ok {
		c.order.MoveToFront(elem)
		v := elem.Value.(*lruEntry[K, V]).value
		c.mu.Unlock()
		return v, true
	}

	value := create()
	evicted := c.insert(key, value)
	fn := c.onEvict
	c.mu.Unlock()

	c.notify(fn, evicted)
	return value, false
}

// Remove drops key from the cache, invoking the evict callback if it existed.
func (c *LRUCache[K, V]) Remove(key K) (V, bool) {
	c.mu.Lock()

	elem, ok := c.items[key]
	if !ok {
		c.mu.Unlock()
		var zero V
		return zero, false
	}

	c.order.Remove(elem)
	delete(c.items, key)
	entry := elem.Value.(*lruEntry[K, V])
	fn := c.onEvict
	c.mu.Unlock()

	c.notify(fn, []*lruEntry[K, V]{entry})
	return entry.value, true
}

func (c *LRUCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Clear removes all items, invoking the evict callback for each.
func (c *LRUCache[K, V]) Clear() {
	c.mu.Lock()

	evicted := make([]*lruEntry[K, V], 0, c.order.Len())
	for e := c.order.Front(); e != nil; e = e.Next() {
		evicted = append(evicted, e.Value.(*lruEntry[K, V]))
	}
	c.items = make(map[K]*list.Element)
	c.order.Init()
	fn := c.onEvict
	c.mu.Unlock()

	c.notify(fn, evicted)
}

// Must be called with lock held. Returns entries pushed out by capacity.
func (c *LRUCache[K, V]) insert(key K, value V) []*lruEntry[K, V] {
	c.items[key] = c.order.PushFront(&lruEntry[K, V]{key: key, value: value})

	var evicted []*lruEntry[K, V]
	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		entry := oldest.Value.(*lruEntry[K, V])
		delete(c.items, entry.key)
		evicted = append(evicted, entry)
	}
	return evicted
}

func (c *LRUCache[K, V]) notify(fn func(K, V), entries []*lruEntry[K, V]) {
	if fn == nil {
		return
	}
	for _, e := range entries {
		fn(e.key, e.value)
	}
}
