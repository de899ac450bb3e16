// Package server provides the copydesk website and its JSON API.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/copydesk/internal/billing"
	"github.com/jonathan/copydesk/internal/brief"
	"github.com/jonathan/copydesk/internal/voice"
)

// ErrValidation indicates a request body that could not be read
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return "validation error: " + e.Message
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		briefErr      *brief.ValidationError
		requestErr    *billing.RequestError
		signatureErr  *billing.SignatureError
		providerErr   *billing.ProviderError
	)

	switch {
	case errors.As(err, &validationErr),
		errors.As(err, &briefErr),
		errors.As(err, &requestErr),
		errors.As(err, &signatureErr):
		return http.StatusBadRequest
	case errors.Is(err, billing.ErrNotConfigured), errors.Is(err, billing.ErrNoPrice):
		return http.StatusServiceUnavailable
	case errors.As(err, &providerErr):
		return http.StatusBadGateway
	}

	// Analysis errors; anything unrecognized is a 500
	return voice.HTTPStatus(err)
}
