// Copyright (C) markbookd authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package cache is a thread-safe, in-memory LRU cache with TTL support and
// size-based eviction, adapted from cc-lib's lrucache package. markbookd
// uses it to front the workspace store's per-class configuration blob
// reads (internal/store's CachedReader): mode_levels/roff lookups happen
// on every calc.markSetSummary request (spec §4.5) but the underlying
// blobs change rarely, so a short TTL avoids a round trip to sqlite on
// every request without risking a stale read surviving more than a few
// seconds. The HTTP-response-caching middleware from the teacher package
// is dropped — see DESIGN.md for why.
package cache

import (
	"sync"
	"time"
)

// ComputeValue is the closure passed to Get to compute a value when it is
// not cached or has expired. It returns the value, its TTL, and a
// user-defined size estimate used for eviction accounting.
type ComputeValue func() (value any, ttl time.Duration, size int)

type cacheEntry struct {
	key   string
	value any

	// expiration is the time this entry expires. A zero value means the
	// computation of this value is still in flight.
	expiration time.Time

	size                  int
	waitingForComputation int
	next, prev            *cacheEntry
}

// Cache is a thread-safe LRU cache with TTL support. If multiple callers
// request the same missing key concurrently, only one computes the value
// while the others wait for the result, rather than racing duplicate
// computations (duplicate sqlite round trips, in markbookd's case).
type Cache struct {
	mutex                 sync.Mutex
	cond                  *sync.Cond
	maxmemory, usedmemory int
	entries               map[string]*cacheEntry
	head, tail            *cacheEntry
}

// New creates a cache that evicts least-recently-used entries once the
// sum of their size estimates exceeds maxmemory. Entry count (size=1 per
// entry) is a common strategy when a byte-accurate estimate isn't worth
// computing, as with the small JSON config blobs markbookd caches.
func New(maxmemory int) *Cache {
	c := &Cache{
		maxmemory: maxmemory,
		entries:   map[string]*cacheEntry{},
	}
	c.cond = sync.NewCond(&c.mutex)
	return c
}

// Get retrieves the cached value for key, computing it via computeValue if
// absent or expired. A nil computeValue makes this a lookup-only call that
// returns nil on a miss instead of computing anything.
//
// computeValue must not call methods on the same Cache instance — doing so
// deadlocks.
func (c *Cache) Get(key string, computeValue ComputeValue) any {
	now := time.Now()

	c.mutex.Lock()
	if entry, ok := c.entries[key]; ok {
		for entry.expiration.IsZero() {
			entry.waitingForComputation++
			c.cond.Wait()
			entry.waitingForComputation--
		}

		if now.After(entry.expiration) {
			if !c.evictEntry(entry) {
				if entry.expiration.IsZero() {
					panic("cache: entry that should have been waited for could not be evicted")
				}
				c.mutex.Unlock()
				return entry.value
			}
		} else {
			if entry != c.head {
				c.unlinkEntry(entry)
				c.insertFront(entry)
			}
			c.mutex.Unlock()
			return entry.value
		}
	}

	if computeValue == nil {
		c.mutex.Unlock()
		return nil
	}

	entry := &cacheEntry{key: key, waitingForComputation: 1}
	c.entries[key] = entry

	hasPaniced := true
	defer func() {
		if hasPaniced {
			c.mutex.Lock()
			delete(c.entries, key)
			entry.expiration = now
			entry.waitingForComputation--
		}
		c.mutex.Unlock()
	}()

	c.mutex.Unlock()
	value, ttl, size := computeValue()
	c.mutex.Lock()
	hasPaniced = false

	entry.value = value
	entry.expiration = now.Add(ttl)
	entry.size = size
	entry.waitingForComputation--

	if entry.waitingForComputation > 0 {
		c.cond.Broadcast()
	}

	c.usedmemory += size
	c.insertFront(entry)

	evictionCandidate := c.tail
	for c.usedmemory > c.maxmemory && evictionCandidate != nil {
		next := evictionCandidate.prev
		if (evictionCandidate.size > 0 || now.After(evictionCandidate.expiration)) &&
			evictionCandidate.waitingForComputation == 0 {
			c.evictEntry(evictionCandidate)
		}
		evictionCandidate = next
	}

	return value
}

// Put unconditionally stores value under key, overwriting any cached or
// in-flight entry (an in-flight computation is waited for first), so the
// new value replaces a stale one without waiting out its TTL.
func (c *Cache) Put(key string, value any, size int, ttl time.Duration) {
	now := time.Now()
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if entry, ok := c.entries[key]; ok {
		for entry.expiration.IsZero() {
			entry.waitingForComputation++
			c.cond.Wait()
			entry.waitingForComputation--
		}

		c.usedmemory -= entry.size
		entry.expiration = now.Add(ttl)
		entry.size = size
		entry.value = value
		c.usedmemory += entry.size

		c.unlinkEntry(entry)
		c.insertFront(entry)
		return
	}

	entry := &cacheEntry{key: key, value: value, expiration: now.Add(ttl)}
	c.entries[key] = entry
	c.insertFront(entry)
}

// Del removes key's entry, if any, and reports whether it was present.
func (c *Cache) Del(key string) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if entry, ok := c.entries[key]; ok {
		return c.evictEntry(entry)
	}
	return false
}

// Keys calls f for every live entry, evicting expired ones along the way.
// The cache is held locked for the whole call; keep f fast.
func (c *Cache) Keys(f func(key string, val any)) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := time.Now()
	for key, e := range c.entries {
		if key != e.key {
			panic("cache: key mismatch")
		}
		if now.After(e.expiration) {
			if c.evictEntry(e) {
				continue
			}
		}
		f(key, e.value)
	}
}

func (c *Cache) insertFront(e *cacheEntry) {
	e.next = c.head
	c.head = e
	e.prev = nil
	if e.next != nil {
		e.next.prev = e
	}
	if c.tail == nil {
		c.tail = e
	}
}

func (c *Cache) unlinkEntry(e *cacheEntry) {
	if e == c.head {
		c.head = e.next
	}
	if e.prev != nil {
		e.prev.next = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	}
	if e == c.tail {
		c.tail = e.prev
	}
}

func (c *Cache) evictEntry(e *cacheEntry) bool {
	if e.waitingForComputation != 0 {
		return false
	}
	c.unlinkEntry(e)
	c.usedmemory -= e.size
	delete(c.entries, e.key)
	return true
}
