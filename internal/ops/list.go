package ops

import (
	"context"

	"github.com/hpungsan/ideabox/internal/idea"
)

// ListOutput contains the result of the List operation.
type ListOutput struct {
	Items []idea.Idea `json:"items"`
	Count int         `json:"count"`
}

// List returns the stored ideas, newest first. Never nil.
func (r *Repository) List(ctx context.Context) ([]idea.Idea, error) {
	return r.load(ctx)
}

// ListWithCount wraps List for JSON surfaces.
func (r *Repository) ListWithCount(ctx context.Context) (*ListOutput, error) {
	items, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return &ListOutput{Items: items, Count: len(items)}, nil
}
