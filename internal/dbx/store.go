package dbx

import (
	"context"
	"database/sql"
	"sync"
)

// Store serializes access to a single database handle. At most one
// operation runs against the handle at a time, so a check-then-write
// sequence executed inside Do or Tx cannot interleave with another one.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// NewStore wraps db. The caller keeps ownership of db until Close.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// DB exposes the raw handle for schema migrations.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Do runs fn with exclusive access to the handle, outside a transaction.
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context, db DBTX) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(ctx, s.db)
}

// Tx runs fn inside one transaction while holding the handle lock.
// All statements issued through tx commit together or not at all.
func (s *Store) Tx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return WithTx(ctx, s.db, nil, fn)
}

// Close closes the underlying handle.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
