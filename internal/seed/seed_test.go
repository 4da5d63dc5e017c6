package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	authorRepo "library-backend/internal/domains/author/repository"
	bookRepo "library-backend/internal/domains/book/repository"
	userModel "library-backend/internal/domains/user/model"
	userRepo "library-backend/internal/domains/user/repository"
	"library-backend/internal/storage"
)

func TestRunSeedsEmptyInstallation(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()

	users, err := userRepo.NewRepository(ctx, store)
	require.NoError(t, err)
	authors, err := authorRepo.NewRepository(ctx, store)
	require.NoError(t, err)
	books, err := bookRepo.NewRepository(ctx, store)
	require.NoError(t, err)

	require.NoError(t, Run(ctx, users, authors, books, "admin@example.com", "admin123"))

	admin, err := users.FindByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, userModel.RoleAdmin, admin.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("admin123")))

	allBooks := books.List(ctx)
	require.Len(t, allBooks, 2)
	assert.Equal(t, "Les Misérables", allBooks[0].Title)
	assert.Equal(t, 5, allBooks[0].TotalCopies)
	assert.Equal(t, 3, allBooks[0].AvailableCopies)

	hugo, err := authors.FindByFullName(ctx, "Victor Hugo")
	require.NoError(t, err)
	assert.Equal(t, "1", hugo.ID)
}

func TestRunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()

	users, err := userRepo.NewRepository(ctx, store)
	require.NoError(t, err)
	authors, err := authorRepo.NewRepository(ctx, store)
	require.NoError(t, err)
	books, err := bookRepo.NewRepository(ctx, store)
	require.NoError(t, err)

	require.NoError(t, Run(ctx, users, authors, books, "admin@example.com", "admin123"))
	require.NoError(t, Run(ctx, users, authors, books, "admin@example.com", "admin123"))

	assert.Equal(t, 1, users.Count(ctx))
	assert.Len(t, authors.List(ctx), 2)
	assert.Len(t, books.List(ctx), 2)
}
