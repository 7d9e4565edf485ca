package ops

import (
	"context"

	"github.com/hpungsan/ideabox/internal/idea"
)

// ClearOutput contains the result of the Clear operation.
type ClearOutput struct {
	Cleared bool `json:"cleared"`
}

// Clear stores an empty list unconditionally.
// Callers are responsible for confirming with the user first.
func (r *Repository) Clear(ctx context.Context) (*ClearOutput, error) {
	if err := r.save(ctx, []idea.Idea{}); err != nil {
		return nil, err
	}
	r.logger.Debug("ideas cleared")
	return &ClearOutput{Cleared: true}, nil
}
