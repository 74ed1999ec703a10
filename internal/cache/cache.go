package cache

import (
	"container/list"
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	// DefaultCapacity is the entry limit used when none is configured.
	DefaultCapacity = 100
	// DefaultTTL is applied by Put.
	DefaultTTL = time.Minute
)

// Config controls cache capacity and the TTL used by Put.
//
//   - Capacity must be positive; New rejects anything else.
//   - DefaultTTL <= 0 falls back to DefaultTTL.
type Config struct {
	Capacity   int           `env:"CACHE_CAPACITY" envDefault:"100"`
	DefaultTTL time.Duration `env:"CACHE_DEFAULT_TTL" envDefault:"60s"`
}

// Cache is a concurrency-safe key-value cache bounded by entry count, where
// every entry carries its own deadline.
//
// A map gives O(1) key lookup and a doubly-linked list records insertion
// order. Overflow removes the list front (oldest inserted). Reads never
// reorder the list, so eviction is FIFO rather than LRU.
//
// Expired entries are removed only when Get observes them. Nothing sweeps in
// the background, so Len may count entries that are already dead.
type Cache[K comparable, V any] struct {
	mu sync.Mutex

	capacity   int
	defaultTTL time.Duration
	items      map[K]*list.Element
	order      *list.List // Front = oldest inserted, Back = newest

	clock   Clock
	logger  *slog.Logger
	onEvict func(key K, value V, reason EvictReason)
}

// entry is the value stored in the order list elements.
// The key is kept here because eviction starts from list nodes.
type entry[K comparable, V any] struct {
	key       K
	value     V
	expiresAt time.Time
}

// New constructs a cache. It fails with ErrInvalidCapacity when
// cfg.Capacity is not positive.
func New[K comparable, V any](cfg Config, opts ...Option[K, V]) (*Cache[K, V], error) {
	if cfg.Capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if cfg.DefaultTTL <= 0 {
		cfg.DefaultTTL = DefaultTTL
	}

	c := &Cache[K, V]{
		capacity:   cfg.Capacity,
		defaultTTL: cfg.DefaultTTL,
		items:      make(map[K]*list.Element, cfg.Capacity),
		order:      list.New(),
		clock:      systemClock{},
		logger:     slog.New(discardHandler{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// MustNew works like New but panics on an invalid configuration.
func MustNew[K comparable, V any](cfg Config, opts ...Option[K, V]) *Cache[K, V] {
	c, err := New(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Capacity returns the maximum number of stored entries.
func (c *Cache[K, V]) Capacity() int {
	return c.capacity
}

// Put stores value under key with the configured default TTL.
func (c *Cache[K, V]) Put(key K, value V) {
	c.PutWithTTL(key, value, c.defaultTTL)
}

// PutWithTTL stores value under key, expiring ttl from now.
//
// ttl semantics:
//   - ttl <= 0 stores an entry that is already expired for the next Get
//
// Overwriting an existing key updates it in place: its insertion position is
// kept and nothing is evicted. A new key arriving at full capacity evicts the
// oldest inserted entry first, whatever its remaining TTL.
func (c *Cache[K, V]) PutWithTTL(key K, value V, ttl time.Duration) {
	if ttl < 0 {
		ttl = 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.clock.Now().Add(ttl)

	if el, ok := c.items[key]; ok {
		e := el.Value.(*entry[K, V])
		e.value = value
		e.expiresAt = expiresAt
		return
	}

	if len(c.items) >= c.capacity {
		c.evictOldestLocked()
	}

	el := c.order.PushBack(&entry[K, V]{
		key:       key,
		value:     value,
		expiresAt: expiresAt,
	})
	c.items[key] = el
}

// Get reads a key.
//
// An entry whose deadline is at or before now is deleted and reported
// missing.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	el, ok := c.items[key]
	if !ok {
		return zero, false
	}

	e := el.Value.(*entry[K, V])
	if !e.expiresAt.After(c.clock.Now()) {
		c.removeLocked(el, Expired)
		return zero, false
	}
	return e.value, true
}

// Delete removes a key and reports whether it was stored.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return false
	}
	c.removeLocked(el, Deleted)
	return true
}

// Clear removes every entry.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.onEvict != nil {
		for el := c.order.Front(); el != nil; el = el.Next() {
			e := el.Value.(*entry[K, V])
			c.onEvict(e.key, e.value, Cleared)
		}
	}

	n := len(c.items)
	c.items = make(map[K]*list.Element, c.capacity)
	c.order.Init()
	c.logger.Debug("cache cleared", slog.Int("removed", n))
}

// Len returns the number of stored entries.
//
// Len includes entries that have expired but have not been read since.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Keys returns stored keys, oldest inserted first. It does not expire
// anything.
func (c *Cache[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]K, 0, c.order.Len())
	for el := c.order.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value.(*entry[K, V]).key)
	}
	return out
}

func (c *Cache[K, V]) evictOldestLocked() {
	el := c.order.Front()
	if el == nil {
		return
	}
	c.removeLocked(el, Evicted)
}

func (c *Cache[K, V]) removeLocked(el *list.Element, reason EvictReason) {
	e := el.Value.(*entry[K, V])
	c.order.Remove(el)
	delete(c.items, e.key)

	if reason != Deleted {
		c.logger.Debug("cache entry removed",
			slog.Any("key", e.key),
			slog.String("reason", reason.String()),
		)
	}
	if c.onEvict != nil {
		c.onEvict(e.key, e.value, reason)
	}
}

// discardHandler drops every record. It stands in for slog.DiscardHandler,
// which needs Go 1.24.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }
