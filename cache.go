package curves

import (
	"container/list"
	"log/slog"
	"sync"
	"sync/atomic"
)

// DefaultCacheCapacity is the capacity used by NewCache for non-positive
// capacities.
const DefaultCacheCapacity = 200

// entry is a cache entry stored in the doubly-linked list.
type entry struct {
	key  string
	expr *Expr
}

// Cache is an LRU cache of compiled expressions keyed by canonical text. Once
// the capacity is reached, the least recently used entry is evicted. Entries
// never expire otherwise.
//
// A Cache is safe for concurrent use by multiple goroutines.
type Cache struct {
	mu       sync.RWMutex
	capacity int
	ll       *list.List
	items    map[string]*list.Element

	hits, misses, evictions atomic.Uint64
}

// CacheStats counts cache operations.
type CacheStats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// NewCache creates a cache holding at most capacity expressions. If capacity
// is not positive, the cache uses DefaultCacheCapacity.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &Cache{
		capacity: capacity,
		ll:       list.New(),
		items:    make(map[string]*list.Element, capacity),
	}
}

// Get retrieves an expression and marks it most recently used.
func (c *Cache) Get(key string) (*Expr, bool) {
	var e *Expr
	c.mu.RLock()
	el, ok := c.items[key]
	front := ok && c.ll.Front() == el
	if ok {
		e = el.Value.(*entry).expr
	}
	c.mu.RUnlock()
	if ok && !front {
		// Promote under the write lock. The entry may have been evicted or
		// replaced in between.
		c.mu.Lock()
		el, ok = c.items[key]
		if ok {
			c.ll.MoveToFront(el)
			e = el.Value.(*entry).expr
		}
		c.mu.Unlock()
	}
	if !ok {
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return e, true
}

// Set inserts or replaces an expression. If the cache is full, the least
// recently used entry is evicted first.
func (c *Cache) Set(key string, expr *Expr) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		el.Value.(*entry).expr = expr
		c.ll.MoveToFront(el)
		return
	}
	if c.ll.Len() >= c.capacity {
		c.evictLocked()
	}
	c.items[key] = c.ll.PushFront(&entry{key: key, expr: expr})
}

// GetOrCompile returns the expression for key, calling compile to create and
// insert it if it is missing. Errors are not cached. Concurrent calls with the
// same missing key may each call compile; the last to finish wins.
func (c *Cache) GetOrCompile(key string, compile func() (*Expr, error)) (*Expr, error) {
	if e, ok := c.Get(key); ok {
		return e, nil
	}
	e, err := compile()
	if err != nil {
		return nil, err
	}
	c.Set(key, e)
	return e, nil
}

// Len returns the number of cached expressions.
func (c *Cache) Len() int {
	c.mu.RLock()
	n := len(c.items)
	c.mu.RUnlock()
	return n
}

// Capacity returns the maximum number of cached expressions.
func (c *Cache) Capacity() int {
	return c.capacity
}

// Stats returns the cache's operation counts.
func (c *Cache) Stats() CacheStats {
	return CacheStats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}

// Invalidate removes a single entry.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		c.ll.Remove(el)
		delete(c.items, key)
	}
}

// Clear removes all entries. It does not reset the counters.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ll.Init()
	c.items = make(map[string]*list.Element, c.capacity)
}

// evictLocked removes the least recently used entry.
// Must be called with c.mu held for writing.
func (c *Cache) evictLocked() {
	el := c.ll.Back()
	if el == nil {
		return
	}
	c.ll.Remove(el)
	key := el.Value.(*entry).key
	delete(c.items, key)
	c.evictions.Add(1)
	Logger().Debug("evicted expression", slog.String("key", key), slog.Int("capacity", c.capacity))
}
