package service

import (
	"context"
	"sort"

	"library-backend/internal/domains/notification/model"
	"library-backend/internal/domains/notification/repository"
)

type notificationService struct {
	repo repository.Repository
}

func NewNotificationService(repo repository.Repository) Service {
	return &notificationService{repo: repo}
}

func (s *notificationService) ListMine(ctx context.Context, userID string, unreadOnly bool) ([]model.Notification, error) {
	out := s.repo.ListByUser(ctx, userID, unreadOnly)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	return len(s.repo.ListByUser(ctx, userID, true)), nil
}

func (s *notificationService) MarkRead(ctx context.Context, userID, notificationID string) (*model.Notification, error) {
	n, err := s.repo.FindByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	// Foreign notifications read as not found so ids are not probeable.
	if n.UserID != userID {
		return nil, model.ErrNotificationNotFound
	}
	if n.Read {
		return n, nil
	}

	updated := *n
	updated.Read = true
	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) (int, error) {
	return s.repo.MarkAllRead(ctx, userID)
}
