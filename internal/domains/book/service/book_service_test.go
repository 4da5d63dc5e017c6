package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authorModel "library-backend/internal/domains/author/model"
	authorRepo "library-backend/internal/domains/author/repository"
	"library-backend/internal/domains/book/model"
	bookRepo "library-backend/internal/domains/book/repository"
	loanModel "library-backend/internal/domains/loan/model"
	loanRepo "library-backend/internal/domains/loan/repository"
	"library-backend/internal/storage"
)

type fixture struct {
	svc     Service
	books   bookRepo.Repository
	authors authorRepo.Repository
	loans   loanRepo.Repository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := storage.NewMemoryStore()

	books, err := bookRepo.NewRepository(ctx, store)
	require.NoError(t, err)
	authors, err := authorRepo.NewRepository(ctx, store)
	require.NoError(t, err)
	loans, err := loanRepo.NewRepository(ctx, store)
	require.NoError(t, err)

	require.NoError(t, authors.Create(ctx, &authorModel.Author{
		ID: "a1", FirstName: "Victor", LastName: "Hugo",
	}))
	require.NoError(t, authors.Create(ctx, &authorModel.Author{
		ID: "a2", FirstName: "Marguerite", LastName: "Yourcenar",
	}))
	require.NoError(t, books.Create(ctx, &model.Book{
		ID: "b1", Title: "Les Misérables", AuthorID: "a1", Genre: "Roman",
		PublishDate: "1862-01-01", TotalCopies: 5, AvailableCopies: 3,
	}))
	require.NoError(t, books.Create(ctx, &model.Book{
		ID: "b2", Title: "Mémoires d'Hadrien", AuthorID: "a2", Genre: "Roman historique",
		PublishDate: "1951-01-01", TotalCopies: 3, AvailableCopies: 0,
	}))

	return &fixture{
		svc:     NewBookService(books, authors, loans),
		books:   books,
		authors: authors,
		loans:   loans,
	}
}

func TestSearchByAuthorName(t *testing.T) {
	f := newFixture(t)

	out, err := f.svc.Search(context.Background(), model.SearchRequest{Query: "hugo"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Les Misérables", out[0].Title)
	assert.Equal(t, "Victor Hugo", out[0].AuthorName)
}

func TestSearchByTitle(t *testing.T) {
	f := newFixture(t)

	out, err := f.svc.Search(context.Background(), model.SearchRequest{Query: "MÉMOIRES"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "b2", out[0].ID)
}

func TestSearchFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out, err := f.svc.Search(ctx, model.SearchRequest{Genre: "Roman"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "b1", out[0].ID)

	out, err = f.svc.Search(ctx, model.SearchRequest{Availability: model.AvailabilityAvailable})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "b1", out[0].ID)

	out, err = f.svc.Search(ctx, model.SearchRequest{Availability: model.AvailabilityBorrowed})
	require.NoError(t, err)
	require.Len(t, out, 2) // both books have copies out

	out, err = f.svc.Search(ctx, model.SearchRequest{})
	require.NoError(t, err)
	assert.Len(t, out, 2)

	_, err = f.svc.Search(ctx, model.SearchRequest{Availability: "bogus"})
	assert.Error(t, err)
}

func TestCreateBook(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Create(context.Background(), &model.CreateBookRequest{
		Title:       "Notre-Dame de Paris",
		AuthorID:    "a1",
		Genre:       "Roman",
		PublishDate: "1831-03-16",
		TotalCopies: 4,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 4, created.AvailableCopies) // defaults to totalCopies
	assert.Equal(t, "Victor Hugo", created.AuthorName)
	assert.WithinDuration(t, time.Now().UTC(), created.CreatedAt, time.Minute)
}

func TestCreateBookUnknownAuthor(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), &model.CreateBookRequest{
		Title:       "Orphan",
		AuthorID:    "missing",
		Genre:       "Roman",
		PublishDate: "2000-01-01",
		TotalCopies: 1,
	})
	assert.ErrorIs(t, err, model.ErrAuthorNotFound)
}

func TestCreateBookInvalidRequest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, &model.CreateBookRequest{
		AuthorID: "a1", Genre: "Roman", PublishDate: "2000-01-01", TotalCopies: 1,
	})
	assert.Error(t, err, "missing title")

	_, err = f.svc.Create(ctx, &model.CreateBookRequest{
		Title: "X", AuthorID: "a1", Genre: "Roman", PublishDate: "not-a-date", TotalCopies: 1,
	})
	assert.Error(t, err, "bad publishDate")
}

func TestUpdateBookClampsAvailability(t *testing.T) {
	f := newFixture(t)

	total := 2
	updated, err := f.svc.Update(context.Background(), "b1", &model.UpdateBookRequest{
		TotalCopies: &total,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.TotalCopies)
	assert.Equal(t, 2, updated.AvailableCopies) // clamped down from 3
}

func TestDeleteBookWithOpenLoans(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	now := time.Now().UTC()
	require.NoError(t, f.loans.Create(ctx, &loanModel.Loan{
		ID: "l1", BookID: "b1", UserID: "u1",
		LoanDate: now, DueDate: now.Add(loanModel.LoanPeriod),
		Status: loanModel.StatusActive,
	}))

	err := f.svc.Delete(ctx, "b1")
	assert.ErrorIs(t, err, model.ErrBookHasActiveLoans)

	// returning the copy releases the guard
	returned := *mustFind(t, f, "l1")
	returned.Status = loanModel.StatusReturned
	require.NoError(t, f.loans.Update(ctx, &returned))

	assert.NoError(t, f.svc.Delete(ctx, "b1"))
	_, err = f.books.FindByID(ctx, "b1")
	assert.ErrorIs(t, err, model.ErrBookNotFound)
}

func mustFind(t *testing.T, f *fixture, loanID string) *loanModel.Loan {
	t.Helper()
	l, err := f.loans.FindByID(context.Background(), loanID)
	require.NoError(t, err)
	return l
}

func TestDeleteUnknownBook(t *testing.T) {
	f := newFixture(t)
	assert.ErrorIs(t, f.svc.Delete(context.Background(), "missing"), model.ErrBookNotFound)
}

func TestGenres(t *testing.T) {
	f := newFixture(t)

	genres := f.svc.Genres(context.Background())
	assert.Equal(t, []string{"Roman", "Roman historique"}, genres)
}
