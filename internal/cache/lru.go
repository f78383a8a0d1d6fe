package cache

import (
	"container/list"
	"sync"
	"time"
)

// LRUCache holds at most capacity keys, each valid for ttl after its last
// Set. Reads refresh recency but not the deadline. A capacity of zero or
// less disables size eviction.
type LRUCache[T any] struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	index    map[string]*list.Element
	order    *list.List // front is most recently used
	clock    func() time.Time
}

var _ Cache[int] = (*LRUCache[int])(nil)

type slot[T any] struct {
	key      string
	value    T
	deadline time.Time
}

func NewLRUCache[T any](capacity int, ttl time.Duration) *LRUCache[T] {
	return &LRUCache[T]{
		capacity: capacity,
		ttl:      ttl,
		index:    make(map[string]*list.Element),
		order:    list.New(),
		clock:    time.Now,
	}
}

func (c *LRUCache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.index[key]
	if !ok || c.staleLocked(el, c.clock()) {
		var zero T
		return zero, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*slot[T]).value, true
}

// Set inserts or overwrites key and restarts its ttl. When the cache is full
// the least recently used key is dropped.
func (c *LRUCache[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := &slot[T]{key: key, value: value, deadline: c.clock().Add(c.ttl)}
	if el, ok := c.index[key]; ok {
		el.Value = s
		c.order.MoveToFront(el)
		return
	}
	c.index[key] = c.order.PushFront(s)
	for c.capacity > 0 && c.order.Len() > c.capacity {
		c.dropLocked(c.order.Back())
	}
}

func (c *LRUCache[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.index[key]; ok {
		c.dropLocked(el)
	}
}

func (c *LRUCache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.index)
	c.order.Init()
}

// CleanExpired drops every key past its deadline and reports how many went.
func (c *LRUCache[T]) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock()
	dropped := 0
	for el := c.order.Back(); el != nil; {
		prev := el.Prev()
		if c.staleLocked(el, now) {
			dropped++
		}
		el = prev
	}
	return dropped
}

func (c *LRUCache[T]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// staleLocked drops el if its deadline has passed.
func (c *LRUCache[T]) staleLocked(el *list.Element, now time.Time) bool {
	if !now.After(el.Value.(*slot[T]).deadline) {
		return false
	}
	c.dropLocked(el)
	return true
}

func (c *LRUCache[T]) dropLocked(el *list.Element) {
	delete(c.index, el.Value.(*slot[T]).key)
	c.order.Remove(el)
}
