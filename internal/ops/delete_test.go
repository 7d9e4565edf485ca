package ops

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeleteByID_RemovesEntry(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	a, err := repo.Add(ctx, "a")
	require.NoError(t, err)
	b, err := repo.Add(ctx, "b")
	require.NoError(t, err)
	c, err := repo.Add(ctx, "c")
	require.NoError(t, err)

	out, err := repo.DeleteByID(ctx, b.ID)
	require.NoError(t, err)
	require.Equal(t, 1, out.Removed)
	require.Equal(t, b.ID, out.ID)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, it := range list {
		require.NotEqual(t, b.ID, it.ID)
	}
	// Order of the survivors is preserved
	require.Equal(t, c.ID, list[0].ID)
	require.Equal(t, a.ID, list[1].ID)
}

func TestDeleteByID_UnknownIDIsNoOp(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	_, err := repo.Add(ctx, "a")
	require.NoError(t, err)
	_, err = repo.Add(ctx, "b")
	require.NoError(t, err)

	before, err := repo.List(ctx)
	require.NoError(t, err)

	out, err := repo.DeleteByID(ctx, 12345)
	require.NoError(t, err)
	require.Equal(t, 0, out.Removed)

	after, err := repo.List(ctx)
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestDeleteByID_EmptyList(t *testing.T) {
	repo, store := setupRepo(t)
	ctx := context.Background()

	out, err := repo.DeleteByID(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 0, out.Removed)

	// The full-list rewrite still happens
	_, sets := store.counts()
	require.Equal(t, 1, sets)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)
}
