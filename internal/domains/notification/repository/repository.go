package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"library-backend/internal/domains/notification/model"
	"library-backend/internal/storage"
	"library-backend/pkg/logger"
)

type notificationRepository struct {
	mu            sync.RWMutex
	notifications []model.Notification
	store         storage.Store
}

// NewRepository loads the persisted collection. A missing or malformed
// record starts the collection empty rather than failing the boot.
func NewRepository(ctx context.Context, store storage.Store) (Repository, error) {
	repo := &notificationRepository{store: store}

	data, err := store.Load(ctx, storage.KeyNotifications)
	if err != nil {
		return nil, fmt.Errorf("load notifications: %w", err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &repo.notifications); err != nil {
			logger.Warn("notifications record unreadable, starting empty", err)
			repo.notifications = nil
		}
	}

	return repo, nil
}

func (r *notificationRepository) Reload(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := r.store.Load(ctx, storage.KeyNotifications)
	if err != nil {
		return fmt.Errorf("reload notifications: %w", err)
	}

	var notifications []model.Notification
	if len(data) > 0 {
		if err := json.Unmarshal(data, &notifications); err != nil {
			return fmt.Errorf("reload notifications: %w", err)
		}
	}
	r.notifications = notifications
	return nil
}

func (r *notificationRepository) persist(ctx context.Context, notifications []model.Notification) error {
	data, err := json.Marshal(notifications)
	if err != nil {
		return fmt.Errorf("marshal notifications: %w", err)
	}
	if err := r.store.Save(ctx, storage.KeyNotifications, data); err != nil {
		return fmt.Errorf("save notifications: %w", err)
	}
	return nil
}

func (r *notificationRepository) ListByUser(_ context.Context, userID string, unreadOnly bool) []model.Notification {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// non-nil so an empty inbox renders as [] rather than null
	out := []model.Notification{}
	for i := range r.notifications {
		n := r.notifications[i]
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.Read {
			continue
		}
		out = append(out, n)
	}
	return out
}

func (r *notificationRepository) FindByID(_ context.Context, id string) (*model.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.notifications {
		if r.notifications[i].ID == id {
			n := r.notifications[i]
			return &n, nil
		}
	}
	return nil, model.ErrNotificationNotFound
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := append(append([]model.Notification{}, r.notifications...), *n)
	if err := r.persist(ctx, next); err != nil {
		return err
	}
	r.notifications = next
	return nil
}

func (r *notificationRepository) Update(ctx context.Context, n *model.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := append([]model.Notification{}, r.notifications...)
	for i := range next {
		if next[i].ID == n.ID {
			next[i] = *n
			if err := r.persist(ctx, next); err != nil {
				return err
			}
			r.notifications = next
			return nil
		}
	}
	return model.ErrNotificationNotFound
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := append([]model.Notification{}, r.notifications...)
	changed := 0
	for i := range next {
		if next[i].UserID == userID && !next[i].Read {
			next[i].Read = true
			changed++
		}
	}
	if changed == 0 {
		return 0, nil
	}

	if err := r.persist(ctx, next); err != nil {
		return 0, err
	}
	r.notifications = next
	return changed, nil
}

func (r *notificationRepository) ExistsForLoan(_ context.Context, loanID, notificationType string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.notifications {
		n := r.notifications[i]
		if n.Type == notificationType && n.LoanID != nil && *n.LoanID == loanID {
			return true
		}
	}
	return false
}
