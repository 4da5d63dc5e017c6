package model

import (
	"errors"
	"time"
)

// Notification types.
const (
	TypeDueSoon  = "due_soon"
	TypeOverdue  = "overdue"
	TypeReturned = "returned"
	TypeRenewal  = "renewal"
)

// Notification field names follow the persisted JSON layout. LoanID is
// newer than the original records; it lets the sweep send each reminder
// once. Older records simply lack it.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
	LoanID    *string   `json:"loanId,omitempty"`
}

var ErrNotificationNotFound = errors.New("notification not found")

// ToErrorCode converts error to API error code
func ToErrorCode(err error) string {
	if errors.Is(err, ErrNotificationNotFound) {
		return "NOTIFICATION_NOT_FOUND"
	}
	return "INTERNAL_ERROR"
}

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	if errors.Is(err, ErrNotificationNotFound) {
		return 404
	}
	return 500
}
