package handlers

import (
	"errors"
	"net/http"

	"bank-site/models"
	"bank-site/storeclient"
)

// statusForError maps repository failures onto response codes: local
// validation stops at 400 before any network call, store rejections surface
// as 502 with the store's context, and transport failures as 503 so clients
// know a retry is reasonable.
func statusForError(err error) int {
	var se *storeclient.StoreError
	switch {
	case isValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, storeclient.ErrTransport):
		return http.StatusServiceUnavailable
	case errors.As(err, &se):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func isValidationError(err error) bool {
	return errors.Is(err, models.ErrTitleRequired) ||
		errors.Is(err, models.ErrContentRequired) ||
		errors.Is(err, models.ErrSlugRequired) ||
		errors.Is(err, models.ErrSlugInvalid)
}
