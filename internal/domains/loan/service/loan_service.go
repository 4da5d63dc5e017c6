package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	bookModel "library-backend/internal/domains/book/model"
	bookRepo "library-backend/internal/domains/book/repository"
	"library-backend/internal/domains/loan/model"
	"library-backend/internal/domains/loan/repository"
	notificationModel "library-backend/internal/domains/notification/model"
	notificationRepo "library-backend/internal/domains/notification/repository"
	userModel "library-backend/internal/domains/user/model"
	userRepo "library-backend/internal/domains/user/repository"
	"library-backend/pkg/logger"
	"library-backend/pkg/txn"
)

type loanService struct {
	repo          repository.Repository
	books         bookRepo.Repository
	users         userRepo.Repository
	notifications notificationRepo.Repository
}

// NewLoanService wires the loan lifecycle. Book availability moves in
// the same request as the loan record, users resolve display names and
// on-behalf-of lending, notifications record lifecycle events.
func NewLoanService(
	repo repository.Repository,
	books bookRepo.Repository,
	users userRepo.Repository,
	notifications notificationRepo.Repository,
) Service {
	return &loanService{
		repo:          repo,
		books:         books,
		users:         users,
		notifications: notifications,
	}
}

func (s *loanService) toResponse(ctx context.Context, l model.Loan, now time.Time) model.LoanResponse {
	resp := model.LoanResponse{
		ID:           l.ID,
		BookID:       l.BookID,
		UserID:       l.UserID,
		LoanDate:     l.LoanDate,
		DueDate:      l.DueDate,
		ReturnDate:   l.ReturnDate,
		Status:       l.EffectiveStatus(now),
		RenewalCount: l.RenewalCount,
	}
	if b, err := s.books.FindByID(ctx, l.BookID); err == nil {
		resp.BookTitle = b.Title
	}
	if u, err := s.users.FindByID(ctx, l.UserID); err == nil {
		resp.UserName = u.FullName()
	}
	return resp
}

func (s *loanService) Create(ctx context.Context, actorID, actorRole string, req *model.CreateLoanRequest) (*model.LoanResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	userID := actorID
	if req.UserID != "" && req.UserID != actorID {
		if actorRole != userModel.RoleAdmin {
			return nil, model.ErrNotPermitted
		}
		if _, err := s.users.FindByID(ctx, req.UserID); err != nil {
			return nil, err
		}
		userID = req.UserID
	}

	book, err := s.books.FindByID(ctx, req.BookID)
	if err != nil {
		return nil, err
	}
	if book.AvailableCopies <= 0 {
		return nil, fmt.Errorf("%w: %q", bookModel.ErrBookUnavailable, book.Title)
	}

	now := time.Now().UTC()
	loan := &model.Loan{
		ID:           uuid.NewString(),
		BookID:       book.ID,
		UserID:       userID,
		LoanDate:     now,
		DueDate:      now.Add(model.LoanPeriod),
		Status:       model.StatusActive,
		RenewalCount: 0,
	}

	// Two collections move here. If the availability update fails the
	// appended loan is removed again, so the stores never disagree.
	err = txn.Run(ctx,
		txn.Step{
			Apply: func(ctx context.Context) error {
				return s.repo.Create(ctx, loan)
			},
			Compensate: func(ctx context.Context) {
				if err := s.repo.Delete(ctx, loan.ID); err != nil {
					logger.Error("compensate loan create", err)
				}
			},
		},
		txn.Step{
			Apply: func(ctx context.Context) error {
				_, err := s.books.AdjustAvailability(ctx, book.ID, -1)
				return err
			},
		},
	)
	if err != nil {
		return nil, err
	}

	resp := s.toResponse(ctx, *loan, now)
	return &resp, nil
}

func (s *loanService) Return(ctx context.Context, actorID, actorRole, loanID string) (*model.LoanResponse, error) {
	loan, err := s.findFor(ctx, actorID, actorRole, loanID)
	if err != nil {
		return nil, err
	}
	if !loan.Open() {
		return nil, model.ErrLoanNotActive
	}

	now := time.Now().UTC()
	previous := *loan

	updated := *loan
	updated.Status = model.StatusReturned
	updated.ReturnDate = &now

	err = txn.Run(ctx,
		txn.Step{
			Apply: func(ctx context.Context) error {
				return s.repo.Update(ctx, &updated)
			},
			Compensate: func(ctx context.Context) {
				if err := s.repo.Update(ctx, &previous); err != nil {
					logger.Error("compensate loan return", err)
				}
			},
		},
		txn.Step{
			Apply: func(ctx context.Context) error {
				// AdjustAvailability clamps at totalCopies, so a
				// corrupted count cannot overshoot through a return.
				_, err := s.books.AdjustAvailability(ctx, updated.BookID, +1)
				return err
			},
		},
	)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, &updated, notificationModel.TypeReturned,
		fmt.Sprintf("You returned %q.", s.bookTitle(ctx, updated.BookID)))

	resp := s.toResponse(ctx, updated, now)
	return &resp, nil
}

func (s *loanService) Renew(ctx context.Context, actorID, actorRole, loanID string) (*model.LoanResponse, error) {
	loan, err := s.findFor(ctx, actorID, actorRole, loanID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	// Renewals are for loans still inside their window; an overdue loan
	// has to come back to the desk.
	if loan.EffectiveStatus(now) != model.StatusActive {
		return nil, model.ErrLoanNotActive
	}
	if loan.RenewalCount >= model.MaxRenewals {
		return nil, model.ErrRenewalLimit
	}

	updated := *loan
	updated.DueDate = updated.DueDate.Add(model.LoanPeriod)
	updated.RenewalCount++

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("renew loan: %w", err)
	}

	s.notify(ctx, &updated, notificationModel.TypeRenewal,
		fmt.Sprintf("Your loan of %q was renewed until %s.",
			s.bookTitle(ctx, updated.BookID), updated.DueDate.Format("2006-01-02")))

	resp := s.toResponse(ctx, updated, now)
	return &resp, nil
}

func (s *loanService) List(ctx context.Context, status string) ([]model.LoanResponse, error) {
	switch status {
	case "", "all", model.StatusActive, model.StatusReturned, model.StatusOverdue:
	default:
		return nil, model.ErrInvalidStatus
	}

	now := time.Now().UTC()
	out := []model.LoanResponse{}
	for _, l := range s.repo.List(ctx) {
		resp := s.toResponse(ctx, l, now)
		if status != "" && status != "all" && resp.Status != status {
			continue
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *loanService) ListByUser(ctx context.Context, userID string) ([]model.LoanResponse, error) {
	now := time.Now().UTC()
	out := []model.LoanResponse{}
	for _, l := range s.repo.ListByUser(ctx, userID) {
		out = append(out, s.toResponse(ctx, l, now))
	}
	return out, nil
}

func (s *loanService) SweepOverdue(ctx context.Context) (int, error) {
	// The sweep runs in a long-lived worker process. Refresh both
	// collections first so marking a loan overdue does not persist a
	// boot-time snapshot over records written since.
	if err := s.refreshSweepState(ctx); err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	moved := 0

	for _, l := range s.repo.List(ctx) {
		if l.Status != model.StatusActive || !now.After(l.DueDate) {
			continue
		}

		updated := l
		updated.Status = model.StatusOverdue
		if err := s.repo.Update(ctx, &updated); err != nil {
			return moved, fmt.Errorf("mark loan %s overdue: %w", l.ID, err)
		}
		moved++

		if !s.notifications.ExistsForLoan(ctx, l.ID, notificationModel.TypeOverdue) {
			s.notify(ctx, &updated, notificationModel.TypeOverdue,
				fmt.Sprintf("%q is overdue, it was due on %s.",
					s.bookTitle(ctx, l.BookID), l.DueDate.Format("2006-01-02")))
		}
	}

	return moved, nil
}

func (s *loanService) SendDueSoonReminders(ctx context.Context) (int, error) {
	if err := s.refreshSweepState(ctx); err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	sent := 0

	for _, l := range s.repo.List(ctx) {
		if l.Status != model.StatusActive {
			continue
		}
		until := l.DueDate.Sub(now)
		if until <= 0 || until > model.DueSoonWindow {
			continue
		}
		if s.notifications.ExistsForLoan(ctx, l.ID, notificationModel.TypeDueSoon) {
			continue
		}

		s.notify(ctx, &l, notificationModel.TypeDueSoon,
			fmt.Sprintf("%q is due on %s.",
				s.bookTitle(ctx, l.BookID), l.DueDate.Format("2006-01-02")))
		sent++
	}

	return sent, nil
}

func (s *loanService) refreshSweepState(ctx context.Context) error {
	if err := s.repo.Reload(ctx); err != nil {
		return fmt.Errorf("refresh loans: %w", err)
	}
	if err := s.notifications.Reload(ctx); err != nil {
		return fmt.Errorf("refresh notifications: %w", err)
	}
	return nil
}

// findFor loads the loan and applies ownership: non-admins only see
// their own loans, and a foreign loan reads as not found rather than
// forbidden so loan ids are not probeable.
func (s *loanService) findFor(ctx context.Context, actorID, actorRole, loanID string) (*model.Loan, error) {
	loan, err := s.repo.FindByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if actorRole != userModel.RoleAdmin && loan.UserID != actorID {
		return nil, model.ErrLoanNotFound
	}
	return loan, nil
}

func (s *loanService) bookTitle(ctx context.Context, bookID string) string {
	if b, err := s.books.FindByID(ctx, bookID); err == nil {
		return b.Title
	}
	return "your book"
}

// notify records a lifecycle notification. Failure to write it never
// fails the lifecycle operation itself.
func (s *loanService) notify(ctx context.Context, l *model.Loan, notificationType, message string) {
	loanID := l.ID
	n := &notificationModel.Notification{
		ID:        uuid.NewString(),
		UserID:    l.UserID,
		Type:      notificationType,
		Message:   message,
		Read:      false,
		CreatedAt: time.Now().UTC(),
		LoanID:    &loanID,
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		logger.Warn("write loan notification", err)
	}
}
