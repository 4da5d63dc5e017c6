package repository

import (
	"context"

	"library-backend/internal/domains/book/model"
)

// Repository owns the canonical in-memory book collection and mirrors
// every mutation to persistent storage.
type Repository interface {
	List(ctx context.Context) []model.Book
	FindByID(ctx context.Context, id string) (*model.Book, error)
	Create(ctx context.Context, b *model.Book) error
	Update(ctx context.Context, b *model.Book) error
	Delete(ctx context.Context, id string) error

	CountByAuthor(ctx context.Context, authorID string) int
	ListByAuthor(ctx context.Context, authorID string) []model.Book

	// AdjustAvailability moves availableCopies by delta. A negative
	// delta on a book with no available copies fails with
	// ErrBookUnavailable; the result is clamped to [0, totalCopies] so
	// corrupted state can never push the count out of range.
	AdjustAvailability(ctx context.Context, id string, delta int) (*model.Book, error)
}
