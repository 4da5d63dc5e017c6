package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type CreateLoanRequest struct {
	BookID string `json:"bookId" binding:"required"`
	// UserID may only be set by an admin lending on a patron's behalf;
	// everyone else borrows for themselves.
	UserID string `json:"userId,omitempty"`
}

func (r CreateLoanRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BookID, validation.Required.Error("bookId is required")),
	)
}

// LoanResponse is the API shape: the loan with its status derived for
// the read time, plus resolved display names.
type LoanResponse struct {
	ID           string     `json:"id"`
	BookID       string     `json:"bookId"`
	UserID       string     `json:"userId"`
	LoanDate     time.Time  `json:"loanDate"`
	DueDate      time.Time  `json:"dueDate"`
	ReturnDate   *time.Time `json:"returnDate,omitempty"`
	Status       string     `json:"status"`
	RenewalCount int        `json:"renewalCount"`
	BookTitle    string     `json:"bookTitle,omitempty"`
	UserName     string     `json:"userName,omitempty"`
}
