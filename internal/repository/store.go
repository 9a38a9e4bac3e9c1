package repository

import (
    "context"
    "database/sql"
    "fmt"
)

// Store owns the connection pool and runs multi-step mutations inside
// one transaction.  Repositories expose *Tx methods that operate on the
// transaction handed to the callback.
type Store struct {
    db *sql.DB
}

// NewStore wraps an open database handle.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// WithTx executes fn inside a transaction.  If fn returns an error or
// panics the transaction rolls back, otherwise it commits.
func (s *Store) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
    tx, err := s.db.BeginTx(ctx, nil)
    if err != nil {
        return fmt.Errorf("begin tx: %w", err)
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()
    if err := fn(tx); err != nil {
        return err
    }
    if err := tx.Commit(); err != nil {
        return fmt.Errorf("commit tx: %w", err)
    }
    committed = true
    return nil
}

// Ping verifies the store is reachable.
func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }
