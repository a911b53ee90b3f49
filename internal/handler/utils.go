package handler

import (
	"errors"
	"net/http"

	"portal-service/pkg/xerrors"
)

// statusFor maps service errors onto HTTP status codes. Anything unmapped
// is an internal error; the raw message never reaches the client.
func statusFor(err error) int {
	switch {
	case errors.Is(err, xerrors.ErrSessionNotFound), errors.Is(err, xerrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, xerrors.ErrInvalidLine),
		errors.Is(err, xerrors.ErrLineMismatch),
		errors.Is(err, xerrors.ErrInvalidPaymentMethod),
		errors.Is(err, xerrors.ErrInvalidDecision),
		errors.Is(err, xerrors.ErrReviewNotesRequired),
		errors.Is(err, xerrors.ErrQuoteAbsent),
		errors.Is(err, xerrors.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, xerrors.ErrSessionSubmitted):
		return http.StatusConflict
	case errors.Is(err, xerrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, xerrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, xerrors.ErrBackendUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// clientMessage picks what the client is told for an error.
func clientMessage(err error, fallback string) string {
	if statusFor(err) != http.StatusInternalServerError {
		return err.Error()
	}
	return fallback
}
