package repository

import (
	"context"

	"library-backend/internal/domains/loan/model"
)

// Repository owns the canonical in-memory loan collection and mirrors
// every mutation to persistent storage. Loans are never deleted through
// the API; Delete exists only as the compensation for a failed
// cross-collection mutation.
type Repository interface {
	// Reload replaces the in-memory collection with the persisted one.
	// Long-lived background processes call it before a write pass so
	// they do not persist a boot-time snapshot over newer records.
	Reload(ctx context.Context) error
	List(ctx context.Context) []model.Loan
	FindByID(ctx context.Context, id string) (*model.Loan, error)
	ListByUser(ctx context.Context, userID string) []model.Loan
	CountOpenByBook(ctx context.Context, bookID string) int
	Create(ctx context.Context, l *model.Loan) error
	Update(ctx context.Context, l *model.Loan) error
	Delete(ctx context.Context, id string) error
}
