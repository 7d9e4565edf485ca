package ops

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/hpungsan/ideabox/internal/config"
	"github.com/hpungsan/ideabox/internal/idea"
	"github.com/hpungsan/ideabox/internal/storage"
)

// Repository performs list operations over the single "ideas" key.
// Every mutation reads the whole list, computes a full replacement, and writes it back.
type Repository struct {
	store      storage.Adapter
	dateLayout string
	now        func() time.Time
	logger     *zap.Logger
}

// Option configures a Repository.
type Option func(*Repository)

// WithClock overrides time.Now (used by tests).
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// WithLogger sets the logger used for debug traces.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Repository) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRepository creates a Repository over store. cfg supplies the date layout.
func NewRepository(store storage.Adapter, cfg *config.Config, opts ...Option) *Repository {
	r := &Repository{
		store:      store,
		dateLayout: config.DefaultDateLayout,
		now:        time.Now,
		logger:     zap.NewNop(),
	}
	if cfg != nil && cfg.DateLayout != "" {
		r.dateLayout = cfg.DateLayout
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Authoritative reports whether the repository is backed by the host store.
func (r *Repository) Authoritative() bool {
	return r.store.Authoritative()
}

// load reads the stored list; a missing value is an empty list.
func (r *Repository) load(ctx context.Context) ([]idea.Idea, error) {
	values, err := r.store.Get(ctx, []string{idea.StorageKey})
	if err != nil {
		return nil, err
	}
	var list []idea.Idea
	if _, err := values.Decode(idea.StorageKey, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []idea.Idea{}
	}
	return list, nil
}

// save replaces the stored list.
func (r *Repository) save(ctx context.Context, list []idea.Idea) error {
	if list == nil {
		list = []idea.Idea{}
	}
	return r.store.Set(ctx, map[string]any{idea.StorageKey: list})
}
