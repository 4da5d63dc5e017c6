package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/storage"
)

func seedRepo(t *testing.T, store storage.Store) Repository {
	t.Helper()
	repo, err := NewRepository(context.Background(), store)
	require.NoError(t, err)
	return repo
}

func TestMutationsSurviveRestart(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	repo := seedRepo(t, store)
	require.NoError(t, repo.Create(ctx, &model.Book{
		ID: "1", Title: "Les Misérables", AuthorID: "1",
		TotalCopies: 5, AvailableCopies: 3,
	}))
	require.NoError(t, repo.Create(ctx, &model.Book{
		ID: "2", Title: "Mémoires d'Hadrien", AuthorID: "2",
		TotalCopies: 3, AvailableCopies: 2,
	}))
	_, err := repo.AdjustAvailability(ctx, "1", -1)
	require.NoError(t, err)

	// a fresh repository over the same store sees the committed state,
	// in insertion order
	reloaded := seedRepo(t, store)
	books := reloaded.List(ctx)
	require.Len(t, books, 2)
	assert.Equal(t, "1", books[0].ID)
	assert.Equal(t, 2, books[0].AvailableCopies)
	assert.Equal(t, "2", books[1].ID)
}

func TestMalformedRecordStartsEmpty(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, storage.KeyBooks, []byte("{not json]")))

	repo := seedRepo(t, store)
	assert.Empty(t, repo.List(ctx))
}

func TestAdjustAvailability(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	repo := seedRepo(t, store)
	require.NoError(t, repo.Create(ctx, &model.Book{
		ID: "1", Title: "Les Misérables", TotalCopies: 2, AvailableCopies: 1,
	}))

	b, err := repo.AdjustAvailability(ctx, "1", -1)
	require.NoError(t, err)
	assert.Equal(t, 0, b.AvailableCopies)

	// borrowing past zero is refused
	_, err = repo.AdjustAvailability(ctx, "1", -1)
	assert.ErrorIs(t, err, model.ErrBookUnavailable)

	// returns clamp at totalCopies
	_, err = repo.AdjustAvailability(ctx, "1", +1)
	require.NoError(t, err)
	b, err = repo.AdjustAvailability(ctx, "1", +5)
	require.NoError(t, err)
	assert.Equal(t, 2, b.AvailableCopies)

	_, err = repo.AdjustAvailability(ctx, "missing", -1)
	assert.ErrorIs(t, err, model.ErrBookNotFound)
}

func TestDeleteMissing(t *testing.T) {
	repo := seedRepo(t, storage.NewMemoryStore())
	assert.ErrorIs(t, repo.Delete(context.Background(), "nope"), model.ErrBookNotFound)
}
