package service

import (
	"context"
	"time"

	authorRepo "library-backend/internal/domains/author/repository"
	bookRepo "library-backend/internal/domains/book/repository"
	"library-backend/internal/domains/dashboard/model"
	loanModel "library-backend/internal/domains/loan/model"
	loanRepo "library-backend/internal/domains/loan/repository"
)

type Service interface {
	// AdminStats covers the whole library.
	AdminStats(ctx context.Context) (*model.Stats, error)
	// UserStats covers one patron's loans plus the catalog counts they
	// can see.
	UserStats(ctx context.Context, userID string) (*model.Stats, error)
}

type dashboardService struct {
	books   bookRepo.Repository
	authors authorRepo.Repository
	loans   loanRepo.Repository
}

func NewDashboardService(books bookRepo.Repository, authors authorRepo.Repository, loans loanRepo.Repository) Service {
	return &dashboardService{books: books, authors: authors, loans: loans}
}

func (s *dashboardService) AdminStats(ctx context.Context) (*model.Stats, error) {
	stats := s.catalogStats(ctx)

	now := time.Now().UTC()
	for _, l := range s.loans.List(ctx) {
		s.countLoan(stats, l, now)
	}
	return stats, nil
}

func (s *dashboardService) UserStats(ctx context.Context, userID string) (*model.Stats, error) {
	stats := s.catalogStats(ctx)

	now := time.Now().UTC()
	for _, l := range s.loans.ListByUser(ctx, userID) {
		s.countLoan(stats, l, now)
	}
	return stats, nil
}

func (s *dashboardService) catalogStats(ctx context.Context) *model.Stats {
	stats := &model.Stats{}
	for _, b := range s.books.List(ctx) {
		stats.TotalBooks++
		stats.AvailableCopies += b.AvailableCopies
	}
	stats.TotalAuthors = len(s.authors.List(ctx))
	return stats
}

func (s *dashboardService) countLoan(stats *model.Stats, l loanModel.Loan, now time.Time) {
	switch l.EffectiveStatus(now) {
	case loanModel.StatusActive:
		stats.ActiveLoans++
	case loanModel.StatusOverdue:
		stats.OverdueLoans++
	}
}
