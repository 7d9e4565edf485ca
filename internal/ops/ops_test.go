package ops

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/hpungsan/ideabox/internal/config"
	"github.com/hpungsan/ideabox/internal/db"
	"github.com/hpungsan/ideabox/internal/storage"
)

// countingStore records how often the wrapped adapter is read and written.
type countingStore struct {
	storage.Adapter

	mu   sync.Mutex
	gets int
	sets int
}

func (c *countingStore) Get(ctx context.Context, keys []string) (storage.Values, error) {
	c.mu.Lock()
	c.gets++
	c.mu.Unlock()
	return c.Adapter.Get(ctx, keys)
}

func (c *countingStore) Set(ctx context.Context, items map[string]any) error {
	c.mu.Lock()
	c.sets++
	c.mu.Unlock()
	return c.Adapter.Set(ctx, items)
}

func (c *countingStore) counts() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gets, c.sets
}

// stepClock returns a clock that advances by step on every call.
func stepClock(start time.Time, step time.Duration) func() time.Time {
	var mu sync.Mutex
	current := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := current
		current = current.Add(step)
		return t
	}
}

// fixedClock always returns t.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var testStart = time.Date(2024, time.March, 5, 9, 30, 0, 0, time.Local)

// setupRepo creates a repository over a fresh SQLite host store.
func setupRepo(t *testing.T, opts ...Option) (*Repository, *countingStore) {
	t.Helper()

	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("db.Init() error = %v", err)
	}
	t.Cleanup(func() { database.Close() })

	store := &countingStore{Adapter: storage.NewSQLiteStore(database)}
	opts = append([]Option{WithClock(stepClock(testStart, time.Second))}, opts...)
	return NewRepository(store, config.DefaultConfig(), opts...), store
}

// setupFileRepo creates a repository over the fallback file store.
func setupFileRepo(t *testing.T) *Repository {
	t.Helper()

	store, err := storage.NewFileStore(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	return NewRepository(store, config.DefaultConfig(), WithClock(stepClock(testStart, time.Second)))
}
