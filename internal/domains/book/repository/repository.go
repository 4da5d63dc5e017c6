package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/storage"
	"library-backend/pkg/logger"
)

type bookRepository struct {
	mu    sync.RWMutex
	books []model.Book
	store storage.Store
}

// NewRepository loads the persisted collection. A missing or malformed
// record starts the collection empty rather than failing the boot.
func NewRepository(ctx context.Context, store storage.Store) (Repository, error) {
	repo := &bookRepository{store: store}

	data, err := store.Load(ctx, storage.KeyBooks)
	if err != nil {
		return nil, fmt.Errorf("load books: %w", err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &repo.books); err != nil {
			logger.Warn("books record unreadable, starting empty", err)
			repo.books = nil
		}
	}

	return repo, nil
}

// persist writes the whole collection. Called with the lock held.
func (r *bookRepository) persist(ctx context.Context, books []model.Book) error {
	data, err := json.Marshal(books)
	if err != nil {
		return fmt.Errorf("marshal books: %w", err)
	}
	if err := r.store.Save(ctx, storage.KeyBooks, data); err != nil {
		return fmt.Errorf("save books: %w", err)
	}
	return nil
}

func (r *bookRepository) List(_ context.Context) []model.Book {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Book, len(r.books))
	copy(out, r.books)
	return out
}

func (r *bookRepository) FindByID(_ context.Context, id string) (*model.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.books {
		if r.books[i].ID == id {
			b := r.books[i]
			return &b, nil
		}
	}
	return nil, model.ErrBookNotFound
}

func (r *bookRepository) Create(ctx context.Context, b *model.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := append(append([]model.Book{}, r.books...), *b)
	if err := r.persist(ctx, next); err != nil {
		return err
	}
	r.books = next
	return nil
}

func (r *bookRepository) Update(ctx context.Context, b *model.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := append([]model.Book{}, r.books...)
	for i := range next {
		if next[i].ID == b.ID {
			next[i] = *b
			if err := r.persist(ctx, next); err != nil {
				return err
			}
			r.books = next
			return nil
		}
	}
	return model.ErrBookNotFound
}

func (r *bookRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]model.Book, 0, len(r.books))
	found := false
	for _, b := range r.books {
		if b.ID == id {
			found = true
			continue
		}
		next = append(next, b)
	}
	if !found {
		return model.ErrBookNotFound
	}

	if err := r.persist(ctx, next); err != nil {
		return err
	}
	r.books = next
	return nil
}

func (r *bookRepository) CountByAuthor(_ context.Context, authorID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for i := range r.books {
		if r.books[i].AuthorID == authorID {
			count++
		}
	}
	return count
}

func (r *bookRepository) ListByAuthor(_ context.Context, authorID string) []model.Book {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.Book
	for i := range r.books {
		if r.books[i].AuthorID == authorID {
			out = append(out, r.books[i])
		}
	}
	return out
}

func (r *bookRepository) AdjustAvailability(ctx context.Context, id string, delta int) (*model.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := append([]model.Book{}, r.books...)
	for i := range next {
		if next[i].ID != id {
			continue
		}

		if delta < 0 && next[i].AvailableCopies <= 0 {
			return nil, model.ErrBookUnavailable
		}

		avail := next[i].AvailableCopies + delta
		if avail < 0 {
			avail = 0
		}
		if avail > next[i].TotalCopies {
			avail = next[i].TotalCopies
		}
		next[i].AvailableCopies = avail

		if err := r.persist(ctx, next); err != nil {
			return nil, err
		}
		r.books = next
		b := next[i]
		return &b, nil
	}

	return nil, model.ErrBookNotFound
}
