package server

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/jonathan/copydesk/internal/billing"
	"github.com/jonathan/copydesk/internal/types"
)

// Stripe sends events well under this size.
const maxWebhookBody = 64 << 10

const msgBillingUnavailable = "Payments are not available right now. Please try again later."

// billingError maps a checkout or portal failure to a response.
func (s *Server) billingError(w http.ResponseWriter, op string, err error) {
	status := HTTPStatus(err)

	var requestErr *billing.RequestError
	switch {
	case errors.As(err, &requestErr):
		s.errorResponse(w, status, requestErr.Message)
	case status == http.StatusServiceUnavailable:
		log.Printf("[billing] %s unavailable: %v", op, err)
		s.errorResponse(w, status, msgBillingUnavailable)
	default:
		log.Printf("[billing] %s failed: %v", op, err)
		s.errorResponse(w, status, "Payment provider error. Please try again.")
	}
}

// redirectOrURL sends browsers posting a form straight to url and API
// callers a JSON body carrying it.
func (s *Server) redirectOrURL(w http.ResponseWriter, r *http.Request, form bool, url string) {
	if form {
		http.Redirect(w, r, url, http.StatusSeeOther)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"url": url})
}

// handleCheckout creates a hosted checkout session for a plan.
func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	form := isFormPost(r)

	var req billing.CheckoutRequest
	if form {
		r.Body = http.MaxBytesReader(w, r.Body, maxFormBody)
		if err := r.ParseForm(); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid form")
			return
		}
		req = billing.CheckoutRequest{
			Plan:              types.PlanID(r.PostForm.Get("plan")),
			Email:             r.PostForm.Get("email"),
			ClientReferenceID: r.PostForm.Get("clientReferenceId"),
		}
	} else if err := decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		s.billingError(w, "checkout", err)
		return
	}
	if s.billing == nil {
		s.billingError(w, "checkout", billing.ErrNotConfigured)
		return
	}

	url, err := s.billing.CreateCheckoutSession(r.Context(), req)
	if err != nil {
		s.billingError(w, "checkout", err)
		return
	}
	log.Printf("[billing] Checkout session created for plan %s", req.Plan)
	s.redirectOrURL(w, r, form, url)
}

// handlePortal opens the customer billing portal.
func (s *Server) handlePortal(w http.ResponseWriter, r *http.Request) {
	form := isFormPost(r)

	var req billing.PortalRequest
	if form {
		r.Body = http.MaxBytesReader(w, r.Body, maxFormBody)
		if err := r.ParseForm(); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid form")
			return
		}
		req.CustomerID = r.PostForm.Get("customerId")
	} else if err := decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		s.billingError(w, "portal", err)
		return
	}
	if s.billing == nil {
		s.billingError(w, "portal", billing.ErrNotConfigured)
		return
	}

	url, err := s.billing.CreatePortalSession(r.Context(), req.CustomerID)
	if err != nil {
		s.billingError(w, "portal", err)
		return
	}
	s.redirectOrURL(w, r, form, url)
}

// handleStripeWebhook verifies and dispatches a Stripe event. Handler
// failures answer 500 so that Stripe redelivers the event.
func (s *Server) handleStripeWebhook(w http.ResponseWriter, r *http.Request) {
	if s.webhooks == nil {
		log.Printf("[webhook] Received event but billing is not configured")
		s.errorResponse(w, http.StatusServiceUnavailable, "Webhooks are not configured")
		return
	}

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	handled, err := s.webhooks.Handle(r.Context(), payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		var sigErr *billing.SignatureError
		switch {
		case errors.As(err, &sigErr):
			log.Printf("[webhook] Rejected event: %v", err)
			s.errorResponse(w, http.StatusBadRequest, "Invalid signature")
		case errors.Is(err, billing.ErrNotConfigured):
			log.Printf("[webhook] No signing secret configured")
			s.errorResponse(w, http.StatusServiceUnavailable, "Webhooks are not configured")
		default:
			log.Printf("[webhook] Handler failed: %v", err)
			s.errorResponse(w, http.StatusInternalServerError, "Webhook handler failed")
		}
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]bool{"received": true, "handled": handled})
}
