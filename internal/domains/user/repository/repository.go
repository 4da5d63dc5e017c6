package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"library-backend/internal/domains/user/model"
	"library-backend/internal/storage"
	"library-backend/pkg/logger"
)

type userRepository struct {
	mu    sync.RWMutex
	users []model.User
	store storage.Store
}

// NewRepository loads the persisted collection. A missing or malformed
// record starts the collection empty rather than failing the boot.
func NewRepository(ctx context.Context, store storage.Store) (Repository, error) {
	repo := &userRepository{store: store}

	data, err := store.Load(ctx, storage.KeyUsers)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &repo.users); err != nil {
			logger.Warn("users record unreadable, starting empty", err)
			repo.users = nil
		}
	}

	return repo, nil
}

func (r *userRepository) persist(ctx context.Context, users []model.User) error {
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("marshal users: %w", err)
	}
	if err := r.store.Save(ctx, storage.KeyUsers, data); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

func (r *userRepository) List(_ context.Context) []model.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.User, len(r.users))
	copy(out, r.users)
	return out
}

func (r *userRepository) Count(_ context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

func (r *userRepository) FindByID(_ context.Context, id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.users {
		if r.users[i].ID == id {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (r *userRepository) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for i := range r.users {
		if strings.ToLower(r.users[i].Email) == email {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) bool {
	_, err := r.FindByEmail(ctx, email)
	return err == nil
}

func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Uniqueness has to hold under the same lock as the insert. The
	// service-level ExistsByEmail check is only a fast path and two
	// concurrent registrations can both pass it.
	email := strings.ToLower(strings.TrimSpace(u.Email))
	for i := range r.users {
		if strings.ToLower(r.users[i].Email) == email {
			return model.ErrEmailAlreadyExists
		}
	}

	next := append(append([]model.User{}, r.users...), *u)
	if err := r.persist(ctx, next); err != nil {
		return err
	}
	r.users = next
	return nil
}
