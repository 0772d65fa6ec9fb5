package errors

import "errors"

var (
	// ErrNotFound is the sentinel for an unresolved entity id.
	ErrNotFound = errors.New("not found")
	// ErrValidation is the sentinel for malformed or missing required input.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidState is the sentinel for an operation attempted from a
	// disallowed status, e.g. approving an already approved commission.
	ErrInvalidState = errors.New("invalid state")
	// ErrBlockedDeletion is the integrity-guard refusal to delete a loan whose
	// commission chain has financial impact.
	ErrBlockedDeletion = errors.New("deletion blocked: financial impact present, reverse the payment in the financial module first")
	// ErrBlockedCancellation is the refusal to cancel a commission whose
	// transaction has already been paid.
	ErrBlockedCancellation = errors.New("cancellation blocked: transaction already paid, reverse it in the financial module first")
	// ErrUnauthorized is a generic sentinel for auth failures.
	ErrUnauthorized = errors.New("unauthorized")
)
