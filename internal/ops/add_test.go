package ops

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hpungsan/ideabox/internal/errors"
	"github.com/hpungsan/ideabox/internal/idea"
)

func TestAdd_PrependsNewest(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	texts := []string{"first", "second", "third"}
	for _, text := range texts {
		_, err := repo.Add(ctx, text)
		require.NoError(t, err)
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "third", list[0].Text)
	require.Equal(t, "second", list[1].Text)
	require.Equal(t, "first", list[2].Text)

	// Reverse-chronological by issuance
	for i := 1; i < len(list); i++ {
		require.Greater(t, list[i-1].ID, list[i].ID)
	}
}

func TestAdd_BuildsIdea(t *testing.T) {
	repo, _ := setupRepo(t)

	created, err := repo.Add(context.Background(), "  Build a kite \n")
	require.NoError(t, err)

	require.Equal(t, "Build a kite", created.Text)
	require.Equal(t, testStart.UnixMilli(), created.ID)
	require.Equal(t, idea.FormatDate(testStart, "1/2/2006, 3:04:05 PM"), created.Date)
	require.Equal(t, "3/5/2024, 9:30:00 AM", created.Date)
}

func TestAdd_WhitespaceOnlyIsNoOp(t *testing.T) {
	repo, store := setupRepo(t)
	ctx := context.Background()

	_, err := repo.Add(ctx, "keep me")
	require.NoError(t, err)
	getsBefore, setsBefore := store.counts()

	for _, blank := range []string{"", "  ", "\t\n "} {
		created, err := repo.Add(ctx, blank)
		require.Nil(t, created)
		require.True(t, errors.Is(err, errors.ErrEmptyInput), "Add(%q) error = %v", blank, err)
	}

	getsAfter, setsAfter := store.counts()
	require.Equal(t, getsBefore, getsAfter, "blank add must not read storage")
	require.Equal(t, setsBefore, setsAfter, "blank add must not write storage")

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestAdd_CountMatchesNonEmptyAdds(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	inputs := []string{"a", " ", "b", "", "c", "\t", "d"}
	nonEmpty := 0
	for _, in := range inputs {
		if _, err := repo.Add(ctx, in); err == nil {
			nonEmpty++
		}
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Equal(t, 4, nonEmpty)
	require.Len(t, list, nonEmpty)
}

func TestAdd_SameMillisecondGetsUniqueIDs(t *testing.T) {
	repo, _ := setupRepo(t, WithClock(fixedClock(testStart)))
	ctx := context.Background()

	a, err := repo.Add(ctx, "a")
	require.NoError(t, err)
	b, err := repo.Add(ctx, "b")
	require.NoError(t, err)

	require.Equal(t, testStart.UnixMilli(), a.ID)
	require.Equal(t, a.ID+1, b.ID)
}

func TestAdd_DateNeverRecomputed(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	first, err := repo.Add(ctx, "first")
	require.NoError(t, err)
	_, err = repo.Add(ctx, "second")
	require.NoError(t, err)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Equal(t, first.Date, list[1].Date)
}

func TestAdd_CustomDateLayout(t *testing.T) {
	repo, _ := setupRepo(t)
	repo.dateLayout = time.RFC3339

	created, err := repo.Add(context.Background(), "x")
	require.NoError(t, err)
	require.Equal(t, testStart.Format(time.RFC3339), created.Date)
}
