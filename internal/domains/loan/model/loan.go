package model

import "time"

// Loan statuses. The stored value only ever moves active → returned or
// active → overdue (worker sweep); reads derive overdue from the due
// date so a loan never displays as active past it.
const (
	StatusActive   = "active"
	StatusReturned = "returned"
	StatusOverdue  = "overdue"
)

const (
	// LoanPeriod is the borrowing window, and also the extension added
	// by a renewal.
	LoanPeriod = 14 * 24 * time.Hour

	// MaxRenewals bounds how often a loan can be extended.
	MaxRenewals = 2

	// DueSoonWindow is how close to the due date the reminder fires.
	DueSoonWindow = 3 * 24 * time.Hour
)

// Loan field names follow the persisted JSON layout.
type Loan struct {
	ID           string     `json:"id"`
	BookID       string     `json:"bookId"`
	UserID       string     `json:"userId"`
	LoanDate     time.Time  `json:"loanDate"`
	DueDate      time.Time  `json:"dueDate"`
	ReturnDate   *time.Time `json:"returnDate,omitempty"`
	Status       string     `json:"status"`
	RenewalCount int        `json:"renewalCount"`
}

// EffectiveStatus derives overdue at read time for loans still marked
// active whose due date has passed.
func (l *Loan) EffectiveStatus(now time.Time) string {
	if l.Status == StatusActive && now.After(l.DueDate) {
		return StatusOverdue
	}
	return l.Status
}

// Open reports whether the book copy is still out (active or overdue).
func (l *Loan) Open() bool {
	return l.Status == StatusActive || l.Status == StatusOverdue
}
