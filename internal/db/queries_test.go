package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestGetValues_MissingKeysOmitted(t *testing.T) {
	db := setupDB(t)

	values, err := GetValues(context.Background(), db, []string{"ideas", "other"})
	if err != nil {
		t.Fatalf("GetValues() error = %v", err)
	}
	if len(values) != 0 {
		t.Errorf("GetValues() = %v, want empty map", values)
	}
}

func TestGetValues_NoKeys(t *testing.T) {
	db := setupDB(t)

	values, err := GetValues(context.Background(), db, nil)
	if err != nil {
		t.Fatalf("GetValues() error = %v", err)
	}
	if values == nil || len(values) != 0 {
		t.Errorf("GetValues(nil) = %v, want empty non-nil map", values)
	}
}

func TestPutValues_RoundTrip(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	err := PutValues(ctx, db, map[string]json.RawMessage{
		"ideas": json.RawMessage(`[ {"id": 1, "text": "A", "date": "D1"} ]`),
		"theme": json.RawMessage(`"dark"`),
	})
	if err != nil {
		t.Fatalf("PutValues() error = %v", err)
	}

	values, err := GetValues(ctx, db, []string{"ideas", "theme", "missing"})
	if err != nil {
		t.Fatalf("GetValues() error = %v", err)
	}
	if len(values) != 2 {
		t.Fatalf("GetValues() returned %d keys, want 2", len(values))
	}
	// json() minifies on write
	if got := string(values["ideas"]); got != `[{"id":1,"text":"A","date":"D1"}]` {
		t.Errorf("ideas = %s", got)
	}
	if got := string(values["theme"]); got != `"dark"` {
		t.Errorf("theme = %s", got)
	}
	if _, ok := values["missing"]; ok {
		t.Error("missing key should be omitted")
	}
}

func TestPutValues_Overwrites(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	if err := PutValues(ctx, db, map[string]json.RawMessage{"ideas": json.RawMessage(`[1,2,3]`)}); err != nil {
		t.Fatalf("PutValues() error = %v", err)
	}
	if err := PutValues(ctx, db, map[string]json.RawMessage{"ideas": json.RawMessage(`[]`)}); err != nil {
		t.Fatalf("PutValues() error = %v", err)
	}

	values, err := GetValues(ctx, db, []string{"ideas"})
	if err != nil {
		t.Fatalf("GetValues() error = %v", err)
	}
	if got := string(values["ideas"]); got != `[]` {
		t.Errorf("ideas = %s, want []", got)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM kv`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("row count = %d, want 1", count)
	}
}

func TestPutValues_RejectsInvalidJSON(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	err := PutValues(ctx, db, map[string]json.RawMessage{"ideas": json.RawMessage(`{not json`)})
	if err == nil {
		t.Fatal("PutValues() expected error for invalid JSON")
	}

	values, err := GetValues(ctx, db, []string{"ideas"})
	if err != nil {
		t.Fatalf("GetValues() error = %v", err)
	}
	if len(values) != 0 {
		t.Errorf("failed transaction left data behind: %v", values)
	}
}

func TestPutValues_Empty(t *testing.T) {
	db := setupDB(t)
	if err := PutValues(context.Background(), db, nil); err != nil {
		t.Fatalf("PutValues(nil) error = %v", err)
	}
}
