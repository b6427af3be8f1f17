// Copyright (C) markbookd authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cache

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestBasics(t *testing.T) {
	c := New(123)

	value1 := c.Get("foo", func() (any, time.Duration, int) {
		return "bar", 1 * time.Second, 0
	})
	if value1.(string) != "bar" {
		t.Error("cache returned wrong value")
	}

	value2 := c.Get("foo", func() (any, time.Duration, int) {
		t.Error("value should be cached")
		return "", 0, 0
	})
	if value2.(string) != "bar" {
		t.Error("cache returned wrong value")
	}

	if !c.Del("foo") {
		t.Error("delete did not work as expected")
	}

	value3 := c.Get("foo", func() (any, time.Duration, int) {
		return "baz", 1 * time.Second, 0
	})
	if value3.(string) != "baz" {
		t.Error("cache returned wrong value")
	}

	c.Keys(func(key string, value any) {
		if key != "foo" || value.(string) != "baz" {
			t.Error("cache corrupted")
		}
	})
}

func TestExpiration(t *testing.T) {
	c := New(123)

	c.Get("mode_levels", func() (any, time.Duration, int) {
		return 1, 10 * time.Millisecond, 0
	})

	time.Sleep(20 * time.Millisecond)

	recomputed := false
	value := c.Get("mode_levels", func() (any, time.Duration, int) {
		recomputed = true
		return 2, time.Minute, 0
	})
	if !recomputed {
		t.Error("expired entry was served from cache")
	}
	if value.(int) != 2 {
		t.Error("cache returned wrong value after expiration")
	}
}

func TestLookupOnlyMiss(t *testing.T) {
	c := New(123)
	if v := c.Get("missing", nil); v != nil {
		t.Error("expected nil for lookup-only miss")
	}
}

func TestPutOverwritesAndInvalidatesTTL(t *testing.T) {
	c := New(123)

	c.Get("roff", func() (any, time.Duration, int) { return true, time.Minute, 0 })
	c.Put("roff", false, 0, time.Minute)

	value := c.Get("roff", func() (any, time.Duration, int) {
		t.Error("Put should have refreshed the entry without recomputation")
		return nil, 0, 0
	})
	if value.(bool) != false {
		t.Error("Put did not overwrite the cached value")
	}
}

func TestEvictionByMaxMemory(t *testing.T) {
	c := New(2)

	c.Get("a", func() (any, time.Duration, int) { return "a", time.Minute, 1 })
	c.Get("b", func() (any, time.Duration, int) { return "b", time.Minute, 1 })
	c.Get("c", func() (any, time.Duration, int) { return "c", time.Minute, 1 })

	seen := map[string]bool{}
	c.Keys(func(key string, val any) { seen[key] = true })

	if seen["a"] {
		t.Error("expected least-recently-used entry 'a' to be evicted")
	}
	if !seen["b"] || !seen["c"] {
		t.Error("expected 'b' and 'c' to remain cached")
	}
}

// TestConcurrentComputeOnce verifies that concurrent Get calls for the
// same missing key compute the value exactly once and every caller
// observes the same result — the property that matters for sharing one
// sqlite round trip across concurrent config-blob reads.
func TestConcurrentComputeOnce(t *testing.T) {
	c := New(123)

	var computeCount int64
	var wg sync.WaitGroup
	results := make([]any, 16)

	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = c.Get("shared", func() (any, time.Duration, int) {
				atomic.AddInt64(&computeCount, 1)
				time.Sleep(5 * time.Millisecond)
				return "computed", time.Minute, 0
			})
		}(i)
	}
	wg.Wait()

	if computeCount != 1 {
		t.Errorf("expected exactly 1 computation, got %d", computeCount)
	}
	for i, r := range results {
		if r.(string) != "computed" {
			t.Errorf("result[%d] = %v, want %q", i, r, "computed")
		}
	}
}
