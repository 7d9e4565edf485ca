package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hpungsan/ideabox/internal/errors"
)

// GetValues returns the stored JSON documents for the requested keys.
// Keys with no row are omitted from the result.
func GetValues(ctx context.Context, db *sql.DB, keys []string) (map[string]json.RawMessage, error) {
	result := make(map[string]json.RawMessage, len(keys))
	if len(keys) == 0 {
		return result, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(keys)), ",")
	args := make([]any, len(keys))
	for i, k := range keys {
		args[i] = k
	}

	query := fmt.Sprintf(`SELECT key, value FROM kv WHERE key IN (%s)`, placeholders)
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			key   string
			value string
		)
		if err := rows.Scan(&key, &value); err != nil {
			return nil, errors.NewInternal(err)
		}
		result[key] = json.RawMessage(value)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}

	return result, nil
}

// PutValues upserts every key in one transaction.
// Values must already be valid JSON; sqlite's json() stores them minified.
func PutValues(ctx context.Context, db *sql.DB, items map[string]json.RawMessage) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewInternal(err)
	}
	defer tx.Rollback()

	now := time.Now().UnixMilli()
	query := `
		INSERT INTO kv (key, value, updated_at) VALUES (?, json(?), ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	for key, value := range items {
		if _, err := tx.ExecContext(ctx, query, key, string(value), now); err != nil {
			return errors.NewInternal(fmt.Errorf("put %q: %w", key, err))
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}
