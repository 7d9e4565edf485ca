package ops

import (
	"context"

	"go.uber.org/zap"

	"github.com/hpungsan/ideabox/internal/idea"
)

// DeleteOutput contains the result of the DeleteByID operation.
type DeleteOutput struct {
	ID      int64 `json:"id"`
	Removed int   `json:"removed"`
}

// DeleteByID removes every idea with the given id and rewrites the list.
// An unknown id is a no-op: the list is written back unchanged and Removed is 0.
func (r *Repository) DeleteByID(ctx context.Context, id int64) (*DeleteOutput, error) {
	list, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	kept := make([]idea.Idea, 0, len(list))
	for _, it := range list {
		if it.ID != id {
			kept = append(kept, it)
		}
	}

	if err := r.save(ctx, kept); err != nil {
		return nil, err
	}

	removed := len(list) - len(kept)
	r.logger.Debug("idea delete", zap.Int64("id", id), zap.Int("removed", removed))
	return &DeleteOutput{ID: id, Removed: removed}, nil
}
