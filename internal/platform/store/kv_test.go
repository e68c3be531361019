package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"commitmetrics/internal/platform/store"
)

func openTempSQLite(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(context.Background(), store.Config{
		KV: store.KVConfig{Backend: "sqlite", Path: filepath.Join(t.TempDir(), "kv.db")},
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(context.Background()) })
	return st
}

func TestSQLiteKVRoundTrip(t *testing.T) {
	st := openTempSQLite(t)

	if _, ok, err := st.KV.Get("missing"); err != nil || ok {
		t.Fatalf("absent key: ok=%v err=%v", ok, err)
	}

	if err := st.KV.Set("k", "v1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if v, ok, _ := st.KV.Get("k"); !ok || v != "v1" {
		t.Fatalf("get after set: %q %v", v, ok)
	}

	// overwrite replaces wholesale
	if err := st.KV.Set("k", "v2"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if v, _, _ := st.KV.Get("k"); v != "v2" {
		t.Fatalf("get after overwrite: %q", v)
	}

	if err := st.KV.Remove("k"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok, _ := st.KV.Get("k"); ok {
		t.Fatalf("key should be gone")
	}
	// removing again is not an error
	if err := st.KV.Remove("k"); err != nil {
		t.Fatalf("remove absent: %v", err)
	}
}

func TestMemoryBackend(t *testing.T) {
	st, err := store.Open(context.Background(), store.Config{KV: store.KVConfig{Backend: "memory"}})
	if err != nil {
		t.Fatalf("open memory: %v", err)
	}
	if err := st.KV.Set("a", "b"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if v, ok, _ := st.KV.Get("a"); !ok || v != "b" {
		t.Fatalf("get: %q %v", v, ok)
	}
}
