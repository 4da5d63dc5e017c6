package model

import "errors"

var (
	ErrLoanNotFound  = errors.New("loan not found")
	ErrLoanNotActive = errors.New("loan is not active")
	ErrRenewalLimit  = errors.New("loan has reached the renewal limit")
	ErrInvalidStatus = errors.New("invalid loan status filter")
	ErrNotPermitted  = errors.New("not permitted to lend on behalf of another user")
)

// ToErrorCode converts error to API error code
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrLoanNotFound):
		return "LOAN_NOT_FOUND"
	case errors.Is(err, ErrLoanNotActive):
		return "LOAN_NOT_ACTIVE"
	case errors.Is(err, ErrRenewalLimit):
		return "RENEWAL_LIMIT_REACHED"
	case errors.Is(err, ErrInvalidStatus):
		return "INVALID_STATUS"
	case errors.Is(err, ErrNotPermitted):
		return "FORBIDDEN"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrLoanNotFound):
		return 404
	case errors.Is(err, ErrLoanNotActive), errors.Is(err, ErrRenewalLimit):
		return 409
	case errors.Is(err, ErrInvalidStatus):
		return 400
	case errors.Is(err, ErrNotPermitted):
		return 403
	default:
		return 500
	}
}
