// Package store opens and owns the process-wide persistence handles.
// Today that is a single key-value store used for the analysis result
// cache and saved sessions
package store

import (
	"context"

	"commitmetrics/internal/platform/logger"
)

// Config selects and configures the KV backend
type Config struct {
	KV KVConfig
}

// KVConfig configures the key-value store
type KVConfig struct {
	// Backend is "sqlite" or "memory"
	Backend string
	// Path is the sqlite database file; ignored for memory
	Path string
}

// Store bundles the opened handles
type Store struct {
	KV  KV
	log logger.Logger
}

// Option mutates the store during Open
type Option func(*Store)

// WithLogger attaches a logger used for storage diagnostics
func WithLogger(l logger.Logger) Option {
	return func(s *Store) { s.log = l }
}

// Open builds the configured backends and verifies they are usable
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{log: *logger.Named("store")}
	for _, o := range opts {
		o(s)
	}

	switch cfg.KV.Backend {
	case "", "sqlite":
		kv, err := openSQLiteKV(ctx, cfg.KV.Path)
		if err != nil {
			return nil, err
		}
		s.KV = kv
	case "memory":
		s.KV = NewMemoryKV()
	default:
		s.log.Panic().Str("backend", cfg.KV.Backend).Msg("unsupported kv backend")
	}
	return s, nil
}

// Close releases the underlying handles
func (s *Store) Close(ctx context.Context) error {
	if c, ok := s.KV.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
