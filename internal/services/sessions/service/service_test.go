package service

import (
	"context"
	"testing"
	"time"

	perr "commitmetrics/internal/platform/errors"
	"commitmetrics/internal/platform/store"
)

func TestSessionRoundtrip(t *testing.T) {
	s := New(store.NewMemoryKV())
	s.now = func() time.Time { return time.Date(2025, 5, 14, 12, 0, 0, 0, time.UTC) }
	s.id = func() string { return "fixed-id" }

	saved, err := s.Save(context.Background(), "https://github.com/octo/demo", "week")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.ID != "fixed-id" || saved.CreatedAt.IsZero() {
		t.Fatalf("saved = %+v", saved)
	}

	got, err := s.Get(context.Background(), "fixed-id")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != saved {
		t.Fatalf("Get = %+v, want %+v", got, saved)
	}
}

func TestSessionGetMissing(t *testing.T) {
	s := New(store.NewMemoryKV())
	if _, err := s.Get(context.Background(), "nope"); perr.CodeOf(err) != perr.ErrorCodeNotFound {
		t.Fatalf("code = %v, want not found", perr.CodeOf(err))
	}
}

func TestSessionDelete(t *testing.T) {
	s := New(store.NewMemoryKV())
	saved, err := s.Save(context.Background(), "https://github.com/octo/demo", "all")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := s.Delete(context.Background(), saved.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(context.Background(), saved.ID); perr.CodeOf(err) != perr.ErrorCodeNotFound {
		t.Fatal("deleted sessions must not be readable")
	}

	if err := s.Delete(context.Background(), "already-gone"); err != nil {
		t.Fatalf("deleting an absent session should be a no-op, got %v", err)
	}
}
