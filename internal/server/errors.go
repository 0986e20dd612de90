// Package server provides the HTTP API that scans and fills job application
// pages submitted as HTML or fetched by URL.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/job-autofill/internal/fetch"
	"github.com/jonathan/job-autofill/internal/pipeline"
	"github.com/jonathan/job-autofill/internal/profile"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		importErr     *profile.ImportError
		fetchErr      *fetch.Error
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validationErr), errors.Is(err, pipeline.ErrNoProfile):
		return http.StatusBadRequest
	case errors.As(err, &importErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &fetchErr):
		if fetch.IsRestrictedURL(fetchErr.URL) {
			return http.StatusForbidden
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
