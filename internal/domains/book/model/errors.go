package model

import "errors"

var (
	// Validation Errors
	ErrInvalidTitle  = errors.New("book title is invalid")
	ErrInvalidCopies = errors.New("copy counts are invalid")

	// Business Rule Errors
	ErrBookNotFound       = errors.New("book not found")
	ErrBookUnavailable    = errors.New("no copies of this book are available")
	ErrBookHasActiveLoans = errors.New("cannot delete book with active loans")
	ErrAuthorNotFound     = errors.New("referenced author not found")
)

// ToErrorCode converts error to API error code
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrBookNotFound):
		return "BOOK_NOT_FOUND"
	case errors.Is(err, ErrBookUnavailable):
		return "BOOK_UNAVAILABLE"
	case errors.Is(err, ErrBookHasActiveLoans):
		return "BOOK_HAS_ACTIVE_LOANS"
	case errors.Is(err, ErrAuthorNotFound):
		return "AUTHOR_NOT_FOUND"
	case errors.Is(err, ErrInvalidTitle), errors.Is(err, ErrInvalidCopies):
		return "INVALID_INPUT"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrBookNotFound):
		return 404
	case errors.Is(err, ErrBookUnavailable), errors.Is(err, ErrBookHasActiveLoans):
		return 409
	case errors.Is(err, ErrAuthorNotFound), errors.Is(err, ErrInvalidTitle), errors.Is(err, ErrInvalidCopies):
		return 400
	default:
		return 500
	}
}
