package storage

import (
	"context"
	"database/sql"

	"github.com/hpungsan/ideabox/internal/db"
)

// SQLiteStore is the host store: a kv table in the ideabox database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore wraps an initialized database (see db.Init).
func NewSQLiteStore(database *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: database}
}

// Get implements Adapter.
func (s *SQLiteStore) Get(ctx context.Context, keys []string) (Values, error) {
	for _, key := range keys {
		if err := validateKey(key); err != nil {
			return nil, err
		}
	}
	values, err := db.GetValues(ctx, s.db, keys)
	if err != nil {
		return nil, err
	}
	return Values(values), nil
}

// Set implements Adapter. All items are written in one transaction.
func (s *SQLiteStore) Set(ctx context.Context, items map[string]any) error {
	encoded, err := encodeItems(items)
	if err != nil {
		return err
	}
	return db.PutValues(ctx, s.db, encoded)
}

// Authoritative implements Adapter.
func (s *SQLiteStore) Authoritative() bool { return true }

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
