package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/job-autofill/internal/fetch"
	"github.com/jonathan/job-autofill/internal/pipeline"
	"github.com/jonathan/job-autofill/internal/profile"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "html", Message: "html or url is required"}
	assert.Equal(t, "validation error: html - html or url is required", err.Error())
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"validation", &ErrValidation{Field: "url"}, http.StatusBadRequest},
		{"no profile", pipeline.ErrNoProfile, http.StatusBadRequest},
		{"wrapped no profile", fmt.Errorf("fill: %w", pipeline.ErrNoProfile), http.StatusBadRequest},
		{"bad profile", &profile.ImportError{Source: "request", Message: "invalid"}, http.StatusUnprocessableEntity},
		{"restricted page", &fetch.Error{URL: "chrome://settings", Message: "cannot autofill restricted pages"}, http.StatusForbidden},
		{"upstream failure", &fetch.Error{URL: "https://jobs.example.com", Message: "HTTP 500"}, http.StatusBadGateway},
		{"cycle failure", &pipeline.CycleError{Op: "fill", Message: "locate failed"}, http.StatusInternalServerError},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
