package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"library-backend/internal/domains/loan/model"
	"library-backend/internal/storage"
	"library-backend/pkg/logger"
)

type loanRepository struct {
	mu    sync.RWMutex
	loans []model.Loan
	store storage.Store
}

// NewRepository loads the persisted collection. A missing or malformed
// record starts the collection empty rather than failing the boot.
func NewRepository(ctx context.Context, store storage.Store) (Repository, error) {
	repo := &loanRepository{store: store}

	data, err := store.Load(ctx, storage.KeyLoans)
	if err != nil {
		return nil, fmt.Errorf("load loans: %w", err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &repo.loans); err != nil {
			logger.Warn("loans record unreadable, starting empty", err)
			repo.loans = nil
		}
	}

	return repo, nil
}

func (r *loanRepository) Reload(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := r.store.Load(ctx, storage.KeyLoans)
	if err != nil {
		return fmt.Errorf("reload loans: %w", err)
	}

	var loans []model.Loan
	if len(data) > 0 {
		if err := json.Unmarshal(data, &loans); err != nil {
			return fmt.Errorf("reload loans: %w", err)
		}
	}
	r.loans = loans
	return nil
}

func (r *loanRepository) persist(ctx context.Context, loans []model.Loan) error {
	data, err := json.Marshal(loans)
	if err != nil {
		return fmt.Errorf("marshal loans: %w", err)
	}
	if err := r.store.Save(ctx, storage.KeyLoans, data); err != nil {
		return fmt.Errorf("save loans: %w", err)
	}
	return nil
}

func (r *loanRepository) List(_ context.Context) []model.Loan {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Loan, len(r.loans))
	copy(out, r.loans)
	return out
}

func (r *loanRepository) FindByID(_ context.Context, id string) (*model.Loan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.loans {
		if r.loans[i].ID == id {
			l := r.loans[i]
			return &l, nil
		}
	}
	return nil, model.ErrLoanNotFound
}

func (r *loanRepository) ListByUser(_ context.Context, userID string) []model.Loan {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.Loan
	for i := range r.loans {
		if r.loans[i].UserID == userID {
			out = append(out, r.loans[i])
		}
	}
	return out
}

func (r *loanRepository) CountOpenByBook(_ context.Context, bookID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for i := range r.loans {
		if r.loans[i].BookID == bookID && r.loans[i].Open() {
			count++
		}
	}
	return count
}

func (r *loanRepository) Create(ctx context.Context, l *model.Loan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := append(append([]model.Loan{}, r.loans...), *l)
	if err := r.persist(ctx, next); err != nil {
		return err
	}
	r.loans = next
	return nil
}

func (r *loanRepository) Update(ctx context.Context, l *model.Loan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := append([]model.Loan{}, r.loans...)
	for i := range next {
		if next[i].ID == l.ID {
			next[i] = *l
			if err := r.persist(ctx, next); err != nil {
				return err
			}
			r.loans = next
			return nil
		}
	}
	return model.ErrLoanNotFound
}

func (r *loanRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]model.Loan, 0, len(r.loans))
	found := false
	for _, l := range r.loans {
		if l.ID == id {
			found = true
			continue
		}
		next = append(next, l)
	}
	if !found {
		return model.ErrLoanNotFound
	}

	if err := r.persist(ctx, next); err != nil {
		return err
	}
	r.loans = next
	return nil
}
