package repository

import (
	"context"

	"library-backend/internal/domains/notification/model"
)

// Repository owns the canonical in-memory notification collection and
// mirrors every mutation to persistent storage.
type Repository interface {
	// Reload replaces the in-memory collection with the persisted one.
	// Long-lived background processes call it before a write pass so
	// they do not persist a boot-time snapshot over newer records.
	Reload(ctx context.Context) error
	ListByUser(ctx context.Context, userID string, unreadOnly bool) []model.Notification
	FindByID(ctx context.Context, id string) (*model.Notification, error)
	Create(ctx context.Context, n *model.Notification) error
	Update(ctx context.Context, n *model.Notification) error
	// MarkAllRead flips every unread notification of the user; returns
	// how many changed.
	MarkAllRead(ctx context.Context, userID string) (int, error)
	// ExistsForLoan reports whether a notification of the given type
	// already references the loan. Used for exactly-once reminders.
	ExistsForLoan(ctx context.Context, loanID, notificationType string) bool
}
