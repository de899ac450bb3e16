package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"

	"github.com/jonathan/copydesk/internal/types"
)

// StripeConfig holds the Stripe account settings.
type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	// Prices maps each plan to its recurring Stripe price id.
	Prices map[types.PlanID]string
	// SuccessURL may contain {CHECKOUT_SESSION_ID}, which Stripe fills in.
	SuccessURL      string
	CancelURL       string
	PortalReturnURL string
}

// Stripe implements Provider with stripe-go.
type Stripe struct {
	api *client.API
	cfg StripeConfig
}

// NewStripe creates a Stripe provider. It returns ErrNotConfigured when no
// secret key is set.
func NewStripe(cfg StripeConfig) (*Stripe, error) {
	return newStripe(cfg, nil)
}

func newStripe(cfg StripeConfig, backends *stripe.Backends) (*Stripe, error) {
	if cfg.SecretKey == "" {
		return nil, ErrNotConfigured
	}
	return &Stripe{api: client.New(cfg.SecretKey, backends), cfg: cfg}, nil
}

// CreateCheckoutSession starts a subscription checkout for the requested plan.
func (s *Stripe) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (string, error) {
	if _, ok := LookupPlan(req.Plan); !ok {
		return "", &RequestError{Message: fmt.Sprintf("Unknown plan %q", req.Plan), Cause: ErrUnknownPlan}
	}
	price := s.cfg.Prices[req.Plan]
	if price == "" {
		return "", fmt.Errorf("%w: %s", ErrNoPrice, req.Plan)
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(price), Quantity: stripe.Int64(1)},
		},
		SuccessURL:          stripe.String(s.cfg.SuccessURL),
		CancelURL:           stripe.String(s.cfg.CancelURL),
		AllowPromotionCodes: stripe.Bool(true),
	}
	if req.Email != "" {
		params.CustomerEmail = stripe.String(req.Email)
	}
	if req.ClientReferenceID != "" {
		params.ClientReferenceID = stripe.String(req.ClientReferenceID)
	}
	params.AddMetadata("plan", string(req.Plan))
	params.Context = ctx

	session, err := s.api.CheckoutSessions.New(params)
	if err != nil {
		return "", wrapStripeError("checkout", err)
	}
	return session.URL, nil
}

// CreatePortalSession opens the billing portal for an existing customer.
func (s *Stripe) CreatePortalSession(ctx context.Context, customerID string) (string, error) {
	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(s.cfg.PortalReturnURL),
	}
	params.Context = ctx

	session, err := s.api.BillingPortalSessions.New(params)
	if err != nil {
		return "", wrapStripeError("portal", err)
	}
	return session.URL, nil
}

// ConstructEvent verifies a Stripe-Signature header and parses the event.
// Events from other API versions are accepted; handlers read only stable fields.
func (s *Stripe) ConstructEvent(payload []byte, signature string) (Event, error) {
	if s.cfg.WebhookSecret == "" {
		return Event{}, ErrNotConfigured
	}

	evt, err := webhook.ConstructEventWithOptions(payload, signature, s.cfg.WebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return Event{}, &SignatureError{Cause: err}
	}

	out := Event{ID: evt.ID, Type: string(evt.Type)}
	if evt.Data != nil {
		out.Data = evt.Data.Raw
	}
	return out, nil
}

// wrapStripeError turns invalid-request errors (bad customer id and the like)
// into RequestError and everything else into ProviderError.
func wrapStripeError(op string, err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.Type == stripe.ErrorTypeInvalidRequest {
		return &RequestError{Message: "Payment provider rejected the request", Cause: err}
	}
	return &ProviderError{Op: op, Cause: err}
}
