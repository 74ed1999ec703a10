package cache

import (
	"log/slog"
	"time"
)

// Clock supplies the current time. Tests inject a fake one to move time
// without sleeping.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// EvictReason says why an entry left the cache.
type EvictReason int

const (
	// Evicted means the entry was the oldest when a new key needed room.
	Evicted EvictReason = iota + 1
	// Expired means Get found the entry past its deadline.
	Expired
	// Deleted means the entry was removed with Delete.
	Deleted
	// Cleared means the entry was removed by Clear.
	Cleared
)

func (r EvictReason) String() string {
	switch r {
	case Evicted:
		return "evicted"
	case Expired:
		return "expired"
	case Deleted:
		return "deleted"
	case Cleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// Option configures a Cache.
type Option[K comparable, V any] func(*Cache[K, V])

// WithClock sets the time source. Nil is ignored.
func WithClock[K comparable, V any](clock Clock) Option[K, V] {
	return func(c *Cache[K, V]) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithLogger sets the logger used for debug output on removals.
// Nil is ignored.
func WithLogger[K comparable, V any](l *slog.Logger) Option[K, V] {
	return func(c *Cache[K, V]) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithEvictCallback registers fn, called for every entry that leaves the
// cache. fn runs with the cache lock held and must not call back into the
// cache.
func WithEvictCallback[K comparable, V any](fn func(key K, value V, reason EvictReason)) Option[K, V] {
	return func(c *Cache[K, V]) {
		c.onEvict = fn
	}
}
