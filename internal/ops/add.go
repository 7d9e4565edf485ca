package ops

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/hpungsan/ideabox/internal/errors"
	"github.com/hpungsan/ideabox/internal/idea"
)

// Add prepends a new idea built from rawText.
// Blank text returns EMPTY_INPUT without touching storage.
func (r *Repository) Add(ctx context.Context, rawText string) (*idea.Idea, error) {
	text := strings.TrimSpace(rawText)
	if text == "" {
		return nil, errors.NewEmptyInput()
	}

	list, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	now := r.now()
	created := idea.Idea{
		ID:   idea.NextID(now, list),
		Text: text,
		Date: idea.FormatDate(now, r.dateLayout),
	}

	next := make([]idea.Idea, 0, len(list)+1)
	next = append(next, created)
	next = append(next, list...)

	if err := r.save(ctx, next); err != nil {
		return nil, err
	}

	r.logger.Debug("idea added", zap.Int64("id", created.ID), zap.Int("count", len(next)))
	return &created, nil
}
