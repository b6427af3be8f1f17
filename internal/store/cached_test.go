// Copyright (C) markbookd authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package store

import (
	"errors"
	"testing"
)

type countingReader struct {
	Reader
	configCalls int
	nextRaw     []byte
	nextOK      bool
	nextErr     error
}

func (r *countingReader) GetConfigValue(classID, key string) ([]byte, bool, error) {
	r.configCalls++
	return r.nextRaw, r.nextOK, r.nextErr
}

func TestCachedReaderServesRepeatLookupsFromCache(t *testing.T) {
	base := &countingReader{nextRaw: []byte(`{"roff":true}`), nextOK: true}
	r := NewCachedReader(base, 16)

	for i := 0; i < 5; i++ {
		raw, ok, err := r.GetConfigValue("class-1", "user_cfg.roff")
		if err != nil || !ok || string(raw) != `{"roff":true}` {
			t.Fatalf("GetConfigValue() = %q, %v, %v", raw, ok, err)
		}
	}

	if base.configCalls != 1 {
		t.Errorf("expected 1 underlying query, got %d", base.configCalls)
	}
}

func TestCachedReaderDistinguishesKeysAndClasses(t *testing.T) {
	base := &countingReader{nextRaw: []byte("1"), nextOK: true}
	r := NewCachedReader(base, 16)

	r.GetConfigValue("class-1", "user_cfg.roff")
	r.GetConfigValue("class-1", "user_cfg.mode_levels")
	r.GetConfigValue("class-2", "user_cfg.roff")

	if base.configCalls != 3 {
		t.Errorf("expected 3 underlying queries for 3 distinct (class,key) pairs, got %d", base.configCalls)
	}
}

func TestCachedReaderDoesNotCacheErrors(t *testing.T) {
	base := &countingReader{nextErr: errors.New("boom")}
	r := NewCachedReader(base, 16)

	if _, _, err := r.GetConfigValue("class-1", "user_cfg.roff"); err == nil {
		t.Fatal("expected error to propagate")
	}
	if _, _, err := r.GetConfigValue("class-1", "user_cfg.roff"); err == nil {
		t.Fatal("expected error to propagate again, not be cached")
	}
	if base.configCalls != 2 {
		t.Errorf("expected the errored lookup to be retried, got %d calls", base.configCalls)
	}
}

func TestCachedReaderInvalidate(t *testing.T) {
	base := &countingReader{nextRaw: []byte("1"), nextOK: true}
	r := NewCachedReader(base, 16)

	r.GetConfigValue("class-1", "user_cfg.roff")
	r.InvalidateConfigValue("class-1", "user_cfg.roff")
	r.GetConfigValue("class-1", "user_cfg.roff")

	if base.configCalls != 2 {
		t.Errorf("expected invalidation to force a re-query, got %d calls", base.configCalls)
	}
}

func TestCachedReaderSatisfiesReader(t *testing.T) {
	base := &countingReader{}
	r := NewCachedReader(base, 16)

	var _ Reader = r
}
