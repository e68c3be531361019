package repo

import (
	"errors"
	"testing"
	"time"

	"commitmetrics/internal/platform/store"
	"commitmetrics/internal/services/analysis/domain"
)

func testResult(id string) domain.AnalysisResult {
	return domain.AnalysisResult{
		RepositoryID: id,
		Commits: []domain.Commit{
			{Hash: "abc1234", Author: "alice", Date: time.Date(2025, 5, 14, 10, 0, 0, 0, time.UTC), Message: "feat: x"},
		},
		Languages: map[string]int64{"Go": 100},
		Authors:   []string{"alice"},
	}
}

func TestCacheRoundtrip(t *testing.T) {
	c := NewCache(store.NewMemoryKV())

	if _, ok := c.Read(); ok {
		t.Fatal("empty cache should read as a miss")
	}

	if err := c.Write("https://github.com/octo/demo", testResult("https://github.com/octo/demo")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	entry, ok := c.Read()
	if !ok {
		t.Fatal("expected a hit after write")
	}
	if entry.RepositoryID != "https://github.com/octo/demo" {
		t.Errorf("repository id = %q", entry.RepositoryID)
	}
	if len(entry.Result.Commits) != 1 || entry.Result.Commits[0].Hash != "abc1234" {
		t.Errorf("result did not survive the roundtrip: %+v", entry.Result)
	}
	if entry.FetchedAt.IsZero() {
		t.Error("FetchedAt must be stamped on write")
	}
}

func TestCacheWriteReplacesSlot(t *testing.T) {
	c := NewCache(store.NewMemoryKV())

	if err := c.Write("https://github.com/octo/old", testResult("https://github.com/octo/old")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := c.Write("https://github.com/octo/new", testResult("https://github.com/octo/new")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	entry, ok := c.Read()
	if !ok || entry.RepositoryID != "https://github.com/octo/new" {
		t.Fatalf("slot should hold the latest write, got %+v ok=%v", entry, ok)
	}
}

func TestCacheInvalidate(t *testing.T) {
	c := NewCache(store.NewMemoryKV())
	if err := c.Write("https://github.com/octo/demo", testResult("https://github.com/octo/demo")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	c.Invalidate()
	if _, ok := c.Read(); ok {
		t.Fatal("invalidate should clear the slot")
	}
}

func TestCacheValidityBoundary(t *testing.T) {
	c := NewCache(store.NewMemoryKV())

	base := time.Date(2025, 5, 14, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }
	if err := c.Write("https://github.com/octo/demo", testResult("https://github.com/octo/demo")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	maxAge := time.Hour

	c.now = func() time.Time { return base.Add(time.Hour) }
	if !c.IsValid(maxAge) {
		t.Error("an entry aged exactly maxAge is still valid")
	}

	c.now = func() time.Time { return base.Add(time.Hour + time.Nanosecond) }
	if c.IsValid(maxAge) {
		t.Error("an entry older than maxAge is expired")
	}
}

func TestCacheIsValidOnEmptySlot(t *testing.T) {
	c := NewCache(store.NewMemoryKV())
	if c.IsValid(time.Hour) {
		t.Fatal("an empty slot is never valid")
	}
}

func TestCacheCorruptEntryReadsAsMiss(t *testing.T) {
	kv := store.NewMemoryKV()
	if err := kv.Set(cacheKey, "{not json"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	c := NewCache(kv)
	if _, ok := c.Read(); ok {
		t.Fatal("corrupt slot must read as a miss")
	}
	if _, ok, _ := kv.Get(cacheKey); ok {
		t.Fatal("corrupt slot must be dropped")
	}
}

func TestCacheWriteFailureIsReported(t *testing.T) {
	kv := store.NewMemoryKV()
	kv.FailWrites = errors.New("disk full")

	c := NewCache(kv)
	if err := c.Write("https://github.com/octo/demo", testResult("https://github.com/octo/demo")); err == nil {
		t.Fatal("write failures must surface to the caller")
	}
}
