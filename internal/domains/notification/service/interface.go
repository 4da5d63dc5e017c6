package service

import (
	"context"

	"library-backend/internal/domains/notification/model"
)

type Service interface {
	// ListMine returns the user's notifications, newest first.
	ListMine(ctx context.Context, userID string, unreadOnly bool) ([]model.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	// MarkRead flips one notification. A notification belonging to
	// someone else reads as not found.
	MarkRead(ctx context.Context, userID, notificationID string) (*model.Notification, error)
	// MarkAllRead flips every unread notification of the user and
	// returns how many changed.
	MarkAllRead(ctx context.Context, userID string) (int, error)
}
