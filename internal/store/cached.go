// Copyright (C) markbookd authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package store

import (
	"fmt"
	"time"

	"github.com/markbookdev/markbookd/internal/cache"
)

// configCacheTTL bounds how stale a cached config blob may be. It is
// short relative to a human editing session: long enough to absorb the
// repeated user_cfg.mode_levels/user_cfg.roff lookups LoadModeConfig
// issues on every calc.markSetSummary request (spec §4.5), short enough
// that an admin changing a workspace's mode thresholds sees the change
// within a handful of seconds without an explicit invalidation path.
const configCacheTTL = 15 * time.Second

// CachedReader wraps a Reader, caching GetConfigValue lookups per
// (classID, key) in an internal/cache.Cache. It does not cache
// ListStudents/ListCategories/ListAssessments/BulkLoadScores: those are
// already a single bulk round trip per summary request (spec §4.8 steps
// 3-4), so caching them would only risk serving a stale gradebook after a
// score edit. Config blobs are cached because LoadModeConfig re-reads the
// same two keys on every request in spec §4.5's lookup order, and
// workspace configuration changes far less often than scores do.
type CachedReader struct {
	Reader
	cache *cache.Cache
}

// NewCachedReader wraps r with an LRU cache sized to maxEntries config
// blobs (size=1 per entry, per internal/cache's entry-count strategy).
func NewCachedReader(r Reader, maxEntries int) *CachedReader {
	return &CachedReader{Reader: r, cache: cache.New(maxEntries)}
}

func configCacheKey(classID, key string) string {
	return fmt.Sprintf("%s\x00%s", classID, key)
}

// GetConfigValue serves from cache when present and unexpired, else
// delegates to the wrapped Reader and caches the result (including a
// negative "not set" result, so a repeatedly-missing key doesn't cost a
// query on every request).
type cachedConfigValue struct {
	raw []byte
	ok  bool
	err error
}

func (c *CachedReader) GetConfigValue(classID, key string) ([]byte, bool, error) {
	cacheKey := configCacheKey(classID, key)

	v := c.cache.Get(cacheKey, func() (any, time.Duration, int) {
		raw, ok, err := c.Reader.GetConfigValue(classID, key)
		if err != nil {
			// A zero TTL means the entry reads as already-expired on the
			// very next Get, so a transient store failure is never pinned
			// for configCacheTTL.
			return cachedConfigValue{err: err}, 0, 0
		}
		return cachedConfigValue{raw: raw, ok: ok}, configCacheTTL, 1
	})

	result := v.(cachedConfigValue)
	if result.err != nil {
		c.cache.Del(cacheKey)
	}
	return result.raw, result.ok, result.err
}

// InvalidateConfigValue evicts a cached (classID, key) pair immediately,
// for callers that write a config blob through a path CachedReader isn't
// aware of (store.SetConfigValue is on the concrete *SQLiteStore, not the
// Reader interface CachedReader wraps).
func (c *CachedReader) InvalidateConfigValue(classID, key string) {
	c.cache.Del(configCacheKey(classID, key))
}
