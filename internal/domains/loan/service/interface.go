package service

import (
	"context"

	"library-backend/internal/domains/loan/model"
)

type Service interface {
	// Create lends one copy. actorRole admin may lend on behalf of the
	// user named in the request; everyone else borrows for themselves.
	Create(ctx context.Context, actorID, actorRole string, req *model.CreateLoanRequest) (*model.LoanResponse, error)
	Return(ctx context.Context, actorID, actorRole, loanID string) (*model.LoanResponse, error)
	Renew(ctx context.Context, actorID, actorRole, loanID string) (*model.LoanResponse, error)

	List(ctx context.Context, status string) ([]model.LoanResponse, error)
	ListByUser(ctx context.Context, userID string) ([]model.LoanResponse, error)

	// SweepOverdue persists active→overdue transitions and notifies
	// each affected patron once. Returns how many loans moved.
	SweepOverdue(ctx context.Context) (int, error)
	// SendDueSoonReminders notifies patrons whose active loans are due
	// within the reminder window, once per loan. Returns how many
	// reminders went out.
	SendDueSoonReminders(ctx context.Context) (int, error)
}
