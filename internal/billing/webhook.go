package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/stripe/stripe-go/v76"
)

// Webhook event types with handlers.
const (
	EventCheckoutCompleted    = "checkout.session.completed"
	EventSubscriptionCreated  = "customer.subscription.created"
	EventSubscriptionUpdated  = "customer.subscription.updated"
	EventSubscriptionDeleted  = "customer.subscription.deleted"
	EventInvoicePaid          = "invoice.paid"
	EventInvoicePaymentFailed = "invoice.payment_failed"
)

// HandlerFunc reacts to one verified event.
type HandlerFunc func(ctx context.Context, evt Event) error

// WebhookHandler verifies incoming webhooks and dispatches them by type.
type WebhookHandler struct {
	provider Provider
	handlers map[string]HandlerFunc
}

// NewWebhookHandler creates a dispatcher with a logging handler for every
// event type the portal cares about.
func NewWebhookHandler(provider Provider) *WebhookHandler {
	h := &WebhookHandler{provider: provider, handlers: make(map[string]HandlerFunc)}
	h.On(EventCheckoutCompleted, logCheckoutCompleted)
	h.On(EventSubscriptionCreated, logSubscription)
	h.On(EventSubscriptionUpdated, logSubscription)
	h.On(EventSubscriptionDeleted, logSubscription)
	h.On(EventInvoicePaid, logInvoice)
	h.On(EventInvoicePaymentFailed, logInvoice)
	return h
}

// On registers fn for eventType, replacing any previous handler.
func (h *WebhookHandler) On(eventType string, fn HandlerFunc) {
	h.handlers[eventType] = fn
}

// Handle verifies payload and runs its handler. It reports whether a handler
// existed; unhandled types are logged and are not an error.
func (h *WebhookHandler) Handle(ctx context.Context, payload []byte, signature string) (bool, error) {
	evt, err := h.provider.ConstructEvent(payload, signature)
	if err != nil {
		return false, err
	}

	fn, ok := h.handlers[evt.Type]
	if !ok {
		log.Printf("[webhook] Ignoring unhandled event %s (%s)", evt.Type, evt.ID)
		return false, nil
	}
	if err := fn(ctx, evt); err != nil {
		return true, fmt.Errorf("handling %s %s: %w", evt.Type, evt.ID, err)
	}
	return true, nil
}

func logCheckoutCompleted(_ context.Context, evt Event) error {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(evt.Data, &session); err != nil {
		return fmt.Errorf("decoding checkout session: %w", err)
	}
	log.Printf("[webhook] Checkout completed: session=%s customer=%s subscription=%s plan=%s ref=%s",
		session.ID, customerID(session.Customer), subscriptionID(session.Subscription),
		session.Metadata["plan"], session.ClientReferenceID)
	return nil
}

func logSubscription(_ context.Context, evt Event) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(evt.Data, &sub); err != nil {
		return fmt.Errorf("decoding subscription: %w", err)
	}
	log.Printf("[webhook] %s: subscription=%s customer=%s status=%s",
		evt.Type, sub.ID, customerID(sub.Customer), sub.Status)
	return nil
}

func logInvoice(_ context.Context, evt Event) error {
	var inv stripe.Invoice
	if err := json.Unmarshal(evt.Data, &inv); err != nil {
		return fmt.Errorf("decoding invoice: %w", err)
	}
	log.Printf("[webhook] %s: invoice=%s customer=%s paid=%d due=%d %s",
		evt.Type, inv.ID, customerID(inv.Customer), inv.AmountPaid, inv.AmountDue, inv.Currency)
	return nil
}

func customerID(c *stripe.Customer) string {
	if c == nil {
		return "-"
	}
	return c.ID
}

func subscriptionID(s *stripe.Subscription) string {
	if s == nil {
		return "-"
	}
	return s.ID
}
