// Package storage provides the key-value adapter the idea repository persists through.
//
// Two interchangeable backends satisfy Adapter: the SQLite host store, which is
// authoritative, and a JSON-file fallback used when the database cannot be opened.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hpungsan/ideabox/internal/errors"
)

// Values maps keys to their stored JSON documents. Absent keys are omitted.
type Values map[string]json.RawMessage

// Adapter is a uniform get/set interface over a key-value store.
type Adapter interface {
	// Get returns the values stored under keys. Missing keys are not an error.
	Get(ctx context.Context, keys []string) (Values, error)

	// Set stores every item, replacing any previous value.
	Set(ctx context.Context, items map[string]any) error

	// Authoritative reports whether results come from the host store.
	Authoritative() bool
}

// Decode unmarshals values[key] into dst.
// Returns false without touching dst when the key is absent or holds JSON null.
func (v Values) Decode(key string, dst any) (bool, error) {
	raw, ok := v[key]
	if !ok || len(raw) == 0 || string(raw) == "null" {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, errors.NewInternal(fmt.Errorf("decode %q: %w", key, err))
	}
	return true, nil
}

// encodeItems serializes every item to JSON.
func encodeItems(items map[string]any) (map[string]json.RawMessage, error) {
	encoded := make(map[string]json.RawMessage, len(items))
	for key, value := range items {
		if err := validateKey(key); err != nil {
			return nil, err
		}
		data, err := json.Marshal(value)
		if err != nil {
			return nil, errors.NewInternal(fmt.Errorf("encode %q: %w", key, err))
		}
		encoded[key] = data
	}
	return encoded, nil
}

// validateKey rejects keys that cannot double as a file name.
func validateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.NewInvalidRequest("storage key must not be empty")
	}
	if strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") || strings.ContainsRune(key, 0) {
		return errors.NewInvalidRequest(fmt.Sprintf("invalid storage key %q", key))
	}
	return nil
}
