// Package billing is the glue between the portal and the payment provider:
// hosted checkout, the customer portal and webhook events.
package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/copydesk/internal/types"
)

var (
	// ErrNotConfigured is returned when no payment provider credentials are set.
	ErrNotConfigured = errors.New("billing is not configured")
	// ErrUnknownPlan is returned for a plan id outside the catalog.
	ErrUnknownPlan = errors.New("unknown plan")
	// ErrNoPrice is returned for a known plan with no provider price configured.
	ErrNoPrice = errors.New("plan has no configured price")
)

// CheckoutRequest is the body of POST /api/checkout
type CheckoutRequest struct {
	Plan              types.PlanID `json:"plan" validate:"required"`
	Email             string       `json:"email,omitempty" validate:"omitempty,email"`
	ClientReferenceID string       `json:"clientReferenceId,omitempty" validate:"max=200"`
}

// Validate checks the request shape and that the plan exists.
func (r *CheckoutRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return &RequestError{Message: "Invalid checkout request", Cause: err}
	}
	if _, ok := LookupPlan(r.Plan); !ok {
		return &RequestError{Message: fmt.Sprintf("Unknown plan %q", r.Plan), Cause: ErrUnknownPlan}
	}
	return nil
}

// PortalRequest is the body of POST /api/portal
type PortalRequest struct {
	CustomerID string `json:"customerId" validate:"required"`
}

// Validate checks the request shape.
func (r *PortalRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return &RequestError{Message: "customerId is required", Cause: err}
	}
	return nil
}

// RequestError is a checkout or portal request the caller got wrong.
type RequestError struct {
	Message string
	Cause   error
}

func (e *RequestError) Error() string {
	return e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

// ProviderError wraps a failure reported by the payment provider.
type ProviderError struct {
	Op    string
	Cause error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("payment provider %s failed: %v", e.Op, e.Cause)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// SignatureError is a webhook whose signature does not verify.
type SignatureError struct {
	Cause error
}

func (e *SignatureError) Error() string {
	return fmt.Sprintf("invalid webhook signature: %v", e.Cause)
}

func (e *SignatureError) Unwrap() error {
	return e.Cause
}

// Event is a verified webhook event.
type Event struct {
	ID   string
	Type string
	Data []byte // the raw event data object
}

// Provider is the payment provider the handlers talk to.
type Provider interface {
	// CreateCheckoutSession returns the hosted checkout URL for a subscription.
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (string, error)
	// CreatePortalSession returns the hosted customer portal URL.
	CreatePortalSession(ctx context.Context, customerID string) (string, error)
	// ConstructEvent verifies the signature header and parses the payload.
	ConstructEvent(payload []byte, signature string) (Event, error)
}
