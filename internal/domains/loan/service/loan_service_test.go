package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookModel "library-backend/internal/domains/book/model"
	bookRepo "library-backend/internal/domains/book/repository"
	"library-backend/internal/domains/loan/model"
	loanRepo "library-backend/internal/domains/loan/repository"
	notificationModel "library-backend/internal/domains/notification/model"
	notificationRepo "library-backend/internal/domains/notification/repository"
	userModel "library-backend/internal/domains/user/model"
	userRepo "library-backend/internal/domains/user/repository"
	"library-backend/internal/storage"
)

type fixture struct {
	svc           Service
	store         storage.Store
	books         bookRepo.Repository
	loans         loanRepo.Repository
	users         userRepo.Repository
	notifications notificationRepo.Repository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := storage.NewMemoryStore()

	books, err := bookRepo.NewRepository(ctx, store)
	require.NoError(t, err)
	loans, err := loanRepo.NewRepository(ctx, store)
	require.NoError(t, err)
	users, err := userRepo.NewRepository(ctx, store)
	require.NoError(t, err)
	notifications, err := notificationRepo.NewRepository(ctx, store)
	require.NoError(t, err)

	require.NoError(t, books.Create(ctx, &bookModel.Book{
		ID:              "b1",
		Title:           "Les Misérables",
		AuthorID:        "a1",
		Genre:           "Roman",
		PublishDate:     "1862-01-01",
		TotalCopies:     5,
		AvailableCopies: 3,
	}))
	require.NoError(t, users.Create(ctx, &userModel.User{
		ID:        "u1",
		Email:     "patron@example.com",
		FirstName: "Jean",
		LastName:  "Valjean",
		Role:      userModel.RoleUser,
	}))
	require.NoError(t, users.Create(ctx, &userModel.User{
		ID:        "u2",
		Email:     "patron2@example.com",
		FirstName: "Cosette",
		LastName:  "Fauchelevent",
		Role:      userModel.RoleUser,
	}))

	return &fixture{
		svc:           NewLoanService(loans, books, users, notifications),
		store:         store,
		books:         books,
		loans:         loans,
		users:         users,
		notifications: notifications,
	}
}

func availableCopies(t *testing.T, f *fixture, bookID string) int {
	t.Helper()
	b, err := f.books.FindByID(context.Background(), bookID)
	require.NoError(t, err)
	return b.AvailableCopies
}

func TestCreateLoan(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	loan, err := f.svc.Create(ctx, "u1", userModel.RoleUser, &model.CreateLoanRequest{BookID: "b1"})
	require.NoError(t, err)

	assert.Equal(t, "u1", loan.UserID)
	assert.Equal(t, model.StatusActive, loan.Status)
	assert.Equal(t, 0, loan.RenewalCount)
	assert.Equal(t, loan.LoanDate.Add(model.LoanPeriod), loan.DueDate)
	assert.Equal(t, "Les Misérables", loan.BookTitle)
	assert.Equal(t, "Jean Valjean", loan.UserName)
	assert.Equal(t, 2, availableCopies(t, f, "b1"))
}

func TestCreateLoanNoCopiesAvailable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := f.svc.Create(ctx, "u1", userModel.RoleUser, &model.CreateLoanRequest{BookID: "b1"})
		require.NoError(t, err)
	}
	require.Equal(t, 0, availableCopies(t, f, "b1"))

	_, err := f.svc.Create(ctx, "u2", userModel.RoleUser, &model.CreateLoanRequest{BookID: "b1"})
	assert.ErrorIs(t, err, bookModel.ErrBookUnavailable)

	// the failed request must not leave a loan behind
	assert.Len(t, f.loans.List(ctx), 3)
	assert.Equal(t, 0, availableCopies(t, f, "b1"))
}

func TestCreateLoanUnknownBook(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), "u1", userModel.RoleUser, &model.CreateLoanRequest{BookID: "missing"})
	assert.ErrorIs(t, err, bookModel.ErrBookNotFound)
}

func TestCreateLoanOnBehalf(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	loan, err := f.svc.Create(ctx, "admin-id", userModel.RoleAdmin, &model.CreateLoanRequest{BookID: "b1", UserID: "u2"})
	require.NoError(t, err)
	assert.Equal(t, "u2", loan.UserID)

	_, err = f.svc.Create(ctx, "u1", userModel.RoleUser, &model.CreateLoanRequest{BookID: "b1", UserID: "u2"})
	assert.ErrorIs(t, err, model.ErrNotPermitted)
}

func TestReturnLoan(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	loan, err := f.svc.Create(ctx, "u1", userModel.RoleUser, &model.CreateLoanRequest{BookID: "b1"})
	require.NoError(t, err)
	require.Equal(t, 2, availableCopies(t, f, "b1"))

	returned, err := f.svc.Return(ctx, "u1", userModel.RoleUser, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusReturned, returned.Status)
	require.NotNil(t, returned.ReturnDate)
	assert.Equal(t, 3, availableCopies(t, f, "b1"))

	// a returned notification is recorded for the patron
	notifications := f.notifications.ListByUser(ctx, "u1", false)
	require.Len(t, notifications, 1)
	assert.Equal(t, notificationModel.TypeReturned, notifications[0].Type)
}

func TestReturnLoanTwice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	loan, err := f.svc.Create(ctx, "u1", userModel.RoleUser, &model.CreateLoanRequest{BookID: "b1"})
	require.NoError(t, err)

	_, err = f.svc.Return(ctx, "u1", userModel.RoleUser, loan.ID)
	require.NoError(t, err)

	_, err = f.svc.Return(ctx, "u1", userModel.RoleUser, loan.ID)
	assert.ErrorIs(t, err, model.ErrLoanNotActive)

	// availability must not move a second time
	assert.Equal(t, 3, availableCopies(t, f, "b1"))
}

func TestReturnForeignLoan(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	loan, err := f.svc.Create(ctx, "u1", userModel.RoleUser, &model.CreateLoanRequest{BookID: "b1"})
	require.NoError(t, err)

	_, err = f.svc.Return(ctx, "u2", userModel.RoleUser, loan.ID)
	assert.ErrorIs(t, err, model.ErrLoanNotFound)

	// an admin can return any loan
	_, err = f.svc.Return(ctx, "admin-id", userModel.RoleAdmin, loan.ID)
	assert.NoError(t, err)
}

func TestReturnOverdueLoan(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	past := time.Now().UTC().Add(-20 * 24 * time.Hour)
	require.NoError(t, f.loans.Create(ctx, &model.Loan{
		ID:       "l-overdue",
		BookID:   "b1",
		UserID:   "u1",
		LoanDate: past,
		DueDate:  past.Add(model.LoanPeriod),
		Status:   model.StatusActive,
	}))

	returned, err := f.svc.Return(ctx, "u1", userModel.RoleUser, "l-overdue")
	require.NoError(t, err)
	assert.Equal(t, model.StatusReturned, returned.Status)
}

func TestRenewLoan(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	loan, err := f.svc.Create(ctx, "u1", userModel.RoleUser, &model.CreateLoanRequest{BookID: "b1"})
	require.NoError(t, err)

	first, err := f.svc.Renew(ctx, "u1", userModel.RoleUser, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, first.RenewalCount)
	assert.Equal(t, loan.DueDate.Add(model.LoanPeriod), first.DueDate)

	second, err := f.svc.Renew(ctx, "u1", userModel.RoleUser, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, second.RenewalCount)

	_, err = f.svc.Renew(ctx, "u1", userModel.RoleUser, loan.ID)
	assert.ErrorIs(t, err, model.ErrRenewalLimit)
}

func TestRenewOverdueLoan(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	past := time.Now().UTC().Add(-20 * 24 * time.Hour)
	require.NoError(t, f.loans.Create(ctx, &model.Loan{
		ID:       "l-overdue",
		BookID:   "b1",
		UserID:   "u1",
		LoanDate: past,
		DueDate:  past.Add(model.LoanPeriod),
		Status:   model.StatusActive,
	}))

	_, err := f.svc.Renew(ctx, "u1", userModel.RoleUser, "l-overdue")
	assert.ErrorIs(t, err, model.ErrLoanNotActive)
}

func TestListDerivesOverdue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	past := time.Now().UTC().Add(-20 * 24 * time.Hour)
	require.NoError(t, f.loans.Create(ctx, &model.Loan{
		ID:       "l-overdue",
		BookID:   "b1",
		UserID:   "u1",
		LoanDate: past,
		DueDate:  past.Add(model.LoanPeriod),
		Status:   model.StatusActive,
	}))
	_, err := f.svc.Create(ctx, "u2", userModel.RoleUser, &model.CreateLoanRequest{BookID: "b1"})
	require.NoError(t, err)

	overdue, err := f.svc.List(ctx, model.StatusOverdue)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, "l-overdue", overdue[0].ID)

	active, err := f.svc.List(ctx, model.StatusActive)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	all, err := f.svc.List(ctx, "all")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = f.svc.List(ctx, "bogus")
	assert.ErrorIs(t, err, model.ErrInvalidStatus)
}

func TestSweepOverdue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	past := time.Now().UTC().Add(-20 * 24 * time.Hour)
	require.NoError(t, f.loans.Create(ctx, &model.Loan{
		ID:       "l-overdue",
		BookID:   "b1",
		UserID:   "u1",
		LoanDate: past,
		DueDate:  past.Add(model.LoanPeriod),
		Status:   model.StatusActive,
	}))
	_, err := f.svc.Create(ctx, "u2", userModel.RoleUser, &model.CreateLoanRequest{BookID: "b1"})
	require.NoError(t, err)

	moved, err := f.svc.SweepOverdue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, moved)

	stored, err := f.loans.FindByID(ctx, "l-overdue")
	require.NoError(t, err)
	assert.Equal(t, model.StatusOverdue, stored.Status)

	notifications := f.notifications.ListByUser(ctx, "u1", false)
	require.Len(t, notifications, 1)
	assert.Equal(t, notificationModel.TypeOverdue, notifications[0].Type)

	// a second sweep moves nothing and sends nothing
	moved, err = f.svc.SweepOverdue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, moved)
	assert.Len(t, f.notifications.ListByUser(ctx, "u1", false), 1)
}

func TestSweepOverduePreservesLoansFromOtherProcess(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	past := time.Now().UTC().Add(-20 * 24 * time.Hour)
	require.NoError(t, f.loans.Create(ctx, &model.Loan{
		ID:       "l-overdue",
		BookID:   "b1",
		UserID:   "u1",
		LoanDate: past,
		DueDate:  past.Add(model.LoanPeriod),
		Status:   model.StatusActive,
	}))

	// a worker process boots over the same store and snapshots the
	// collections
	workerLoans, err := loanRepo.NewRepository(ctx, f.store)
	require.NoError(t, err)
	workerNotifications, err := notificationRepo.NewRepository(ctx, f.store)
	require.NoError(t, err)
	worker := NewLoanService(workerLoans, f.books, f.users, workerNotifications)

	// the serving process lends out another copy after the worker booted
	created, err := f.svc.Create(ctx, "u2", userModel.RoleUser, &model.CreateLoanRequest{BookID: "b1"})
	require.NoError(t, err)

	moved, err := worker.SweepOverdue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, moved)

	// the sweep's persist must not wipe the newer loan
	require.NoError(t, f.loans.Reload(ctx))
	assert.Len(t, f.loans.List(ctx), 2)

	stored, err := f.loans.FindByID(ctx, "l-overdue")
	require.NoError(t, err)
	assert.Equal(t, model.StatusOverdue, stored.Status)

	survivor, err := f.loans.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusActive, survivor.Status)
}

func TestSendDueSoonReminders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	soon := time.Now().UTC().Add(2 * 24 * time.Hour)
	require.NoError(t, f.loans.Create(ctx, &model.Loan{
		ID:       "l-soon",
		BookID:   "b1",
		UserID:   "u1",
		LoanDate: soon.Add(-model.LoanPeriod),
		DueDate:  soon,
		Status:   model.StatusActive,
	}))
	// far from due, no reminder
	_, err := f.svc.Create(ctx, "u2", userModel.RoleUser, &model.CreateLoanRequest{BookID: "b1"})
	require.NoError(t, err)

	sent, err := f.svc.SendDueSoonReminders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	notifications := f.notifications.ListByUser(ctx, "u1", false)
	require.Len(t, notifications, 1)
	assert.Equal(t, notificationModel.TypeDueSoon, notifications[0].Type)

	sent, err = f.svc.SendDueSoonReminders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, sent)
}

func TestListByUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, "u1", userModel.RoleUser, &model.CreateLoanRequest{BookID: "b1"})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, "u2", userModel.RoleUser, &model.CreateLoanRequest{BookID: "b1"})
	require.NoError(t, err)

	mine, err := f.svc.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "u1", mine[0].UserID)
}
