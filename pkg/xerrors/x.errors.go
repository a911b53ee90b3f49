package xerrors

import "errors"

// Generic
var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrInternalServer = errors.New("internal server error")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not found")
)

// Wizard / draft
var (
	ErrInvalidLine      = errors.New("invalid insurance line")
	ErrLineMismatch     = errors.New("step data does not belong to this insurance line")
	ErrSessionSubmitted = errors.New("wizard session already submitted")
	ErrSessionNotFound  = errors.New("wizard session not found")
	ErrQuoteAbsent      = errors.New("no usable quote seed")
)

// Submission / backend
var (
	ErrSubmissionRejected = errors.New("application submission rejected")
	ErrBackendUnavailable = errors.New("backend service unavailable")
)

// Payments
var (
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrPaymentFailed        = errors.New("payment failed")
)

// Manager decisions
var (
	ErrInvalidDecision      = errors.New("invalid decision: must be 'Approved' or 'Rejected'")
	ErrReviewNotesRequired  = errors.New("review notes are required when rejecting an application")
	ErrDecisionFailed       = errors.New("failed to record decision")
)
