// internal/cache/lru.go
//
// Tiny LRU cache used by the view engine to store parsed
// *template.Template sets.  No external deps; good for a few thousand
// entries.
package cache

import (
	"container/list"
	"sync"
)

// LRU is a least-recently-used cache with string keys.  Safe for
// concurrent use.
type LRU struct {
	mu   sync.Mutex
	cap  int
	ll   *list.List
	dict map[string]*list.Element
}

type pair struct {
	key string
	val any
}

// New returns an LRU holding at most capacity entries.
func New(capacity int) *LRU {
	if capacity <= 0 {
		capacity = 128
	}
	return &LRU{
		cap:  capacity,
		ll:   list.New(),
		dict: make(map[string]*list.Element, capacity),
	}
}

// Get returns the cached value and marks it most-recently used.
func (c *LRU) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.dict[key]
	if !ok {
		return nil, false
	}
	c.ll.MoveToFront(el)
	return el.Value.(pair).val, true
}

// Add inserts or refreshes key, evicting the oldest entry when full.
func (c *LRU) Add(key string, val any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.dict[key]; ok {
		el.Value = pair{key, val}
		c.ll.MoveToFront(el)
		return
	}

	el := c.ll.PushFront(pair{key, val})
	c.dict[key] = el

	if c.ll.Len() > c.cap {
		oldest := c.ll.Back()
		if oldest != nil {
			c.ll.Remove(oldest)
			delete(c.dict, oldest.Value.(pair).key)
		}
	}
}

// Len reports the number of cached entries.
func (c *LRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}
