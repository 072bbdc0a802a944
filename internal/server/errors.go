package server

import (
	"errors"
	"net/http"

	"github.com/rajkumarptv/ChitLedger/internal/auth"
	"github.com/rajkumarptv/ChitLedger/internal/models"
)

// mapDomainError translates a domain error into an HTTP status, a stable
// machine code, and a client-facing message.
func mapDomainError(err error) (int, string, string) {
	switch {
	case errors.Is(err, models.ErrUnauthorized),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidPIN):
		return http.StatusUnauthorized, "UNAUTHORIZED", err.Error()
	case errors.Is(err, models.ErrInvalidTransition):
		return http.StatusConflict, "INVALID_TRANSITION", err.Error()
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", err.Error()
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest, "VALIDATION_ERROR", err.Error()
	default:
		return http.StatusInternalServerError, "INTERNAL", "internal server error"
	}
}

func writeMappedError(w http.ResponseWriter, err error) {
	status, code, msg := mapDomainError(err)
	writeError(w, status, code, msg)
}
