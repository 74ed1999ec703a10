// Package cache implements a single-process, in-memory key-value cache with a
// fixed entry limit and a per-entry TTL.
//
// Behavior in short:
//   - Overflow evicts the oldest inserted entry (FIFO, not LRU)
//   - Overwriting a key keeps its place in the eviction order
//   - Expired entries are removed lazily, when Get finds them
//   - Every operation runs under one mutex, so each is atomic to callers
//
// Each Cache owns its state; independent instances never interfere.
package cache
