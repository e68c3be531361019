package store

import (
	"context"
	"database/sql"

	perr "commitmetrics/internal/platform/errors"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// sqliteKV stores keys and values in a single sqlite table
type sqliteKV struct {
	db *sql.DB
}

func openSQLiteKV(ctx context.Context, path string) (*sqliteKV, error) {
	if path == "" {
		path = "commitmetrics.db"
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeStorage, "open sqlite kv at %q", path)
	}
	// single connection avoids "database is locked" under concurrent writers
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, perr.Wrapf(err, perr.ErrorCodeStorage, "ping sqlite kv at %q", path)
	}

	const schema = `
create table if not exists kv (
	k text primary key,
	v text not null
)
`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, perr.Wrap(err, perr.ErrorCodeStorage, "create kv table")
	}
	return &sqliteKV{db: db}, nil
}

// Get implements KV
func (s *sqliteKV) Get(key string) (string, bool, error) {
	var v string
	err := s.db.QueryRow(`select v from kv where k = ?`, key).Scan(&v)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, perr.Wrapf(err, perr.ErrorCodeStorage, "kv get %q", key)
	}
	return v, true, nil
}

// Set implements KV
func (s *sqliteKV) Set(key, value string) error {
	_, err := s.db.Exec(`insert into kv (k, v) values (?, ?) on conflict (k) do update set v = excluded.v`, key, value)
	return perr.WrapIf(err, perr.ErrorCodeStorage, "kv set")
}

// Remove implements KV
func (s *sqliteKV) Remove(key string) error {
	_, err := s.db.Exec(`delete from kv where k = ?`, key)
	return perr.WrapIf(err, perr.ErrorCodeStorage, "kv remove")
}

// Close releases the database handle
func (s *sqliteKV) Close() error { return s.db.Close() }
