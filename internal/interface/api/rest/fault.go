package rest

import (
	"errors"
	"net/http"

	"filestore-api/internal/domain/account"
	"filestore-api/internal/domain/file"
	"filestore-api/internal/domain/link"
)

// statusFromError maps domain failures to HTTP statuses. Anything
// unmapped is a 500 and the real error stays in the server log.
func statusFromError(err error) (int, string) {
	switch {
	case errors.Is(err, file.ErrNotFound),
		errors.Is(err, link.ErrNotFound),
		errors.Is(err, account.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, account.ErrInactive),
		errors.Is(err, account.ErrTagNotPermitted):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, account.ErrQuotaExceeded):
		return http.StatusRequestEntityTooLarge, err.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
