package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"library-backend/internal/domains/author/model"
	"library-backend/internal/storage"
	"library-backend/pkg/logger"
)

type authorRepository struct {
	mu      sync.RWMutex
	authors []model.Author
	store   storage.Store
}

// NewRepository loads the persisted collection. A missing or malformed
// record starts the collection empty rather than failing the boot.
func NewRepository(ctx context.Context, store storage.Store) (Repository, error) {
	repo := &authorRepository{store: store}

	data, err := store.Load(ctx, storage.KeyAuthors)
	if err != nil {
		return nil, fmt.Errorf("load authors: %w", err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &repo.authors); err != nil {
			logger.Warn("authors record unreadable, starting empty", err)
			repo.authors = nil
		}
	}

	return repo, nil
}

func (r *authorRepository) persist(ctx context.Context, authors []model.Author) error {
	data, err := json.Marshal(authors)
	if err != nil {
		return fmt.Errorf("marshal authors: %w", err)
	}
	if err := r.store.Save(ctx, storage.KeyAuthors, data); err != nil {
		return fmt.Errorf("save authors: %w", err)
	}
	return nil
}

func (r *authorRepository) List(_ context.Context) []model.Author {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Author, len(r.authors))
	copy(out, r.authors)
	return out
}

func (r *authorRepository) FindByID(_ context.Context, id string) (*model.Author, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.authors {
		if r.authors[i].ID == id {
			a := r.authors[i]
			return &a, nil
		}
	}
	return nil, model.ErrAuthorNotFound
}

func (r *authorRepository) FindByFullName(_ context.Context, name string) (*model.Author, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name = strings.ToLower(strings.TrimSpace(name))
	for i := range r.authors {
		if strings.ToLower(r.authors[i].FullName()) == name {
			a := r.authors[i]
			return &a, nil
		}
	}
	return nil, model.ErrAuthorNotFound
}

func (r *authorRepository) Create(ctx context.Context, a *model.Author) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := append(append([]model.Author{}, r.authors...), *a)
	if err := r.persist(ctx, next); err != nil {
		return err
	}
	r.authors = next
	return nil
}

func (r *authorRepository) Update(ctx context.Context, a *model.Author) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := append([]model.Author{}, r.authors...)
	for i := range next {
		if next[i].ID == a.ID {
			next[i] = *a
			if err := r.persist(ctx, next); err != nil {
				return err
			}
			r.authors = next
			return nil
		}
	}
	return model.ErrAuthorNotFound
}

func (r *authorRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]model.Author, 0, len(r.authors))
	found := false
	for _, a := range r.authors {
		if a.ID == id {
			found = true
			continue
		}
		next = append(next, a)
	}
	if !found {
		return model.ErrAuthorNotFound
	}

	if err := r.persist(ctx, next); err != nil {
		return err
	}
	r.authors = next
	return nil
}
