package server

import (
	"encoding/json"
	"errors"
	"log"
	"mime"
	"net/http"

	"github.com/jonathan/copydesk/internal/brief"
	"github.com/jonathan/copydesk/internal/types"
	"github.com/jonathan/copydesk/internal/web"
)

const maxFormBody = 64 << 10

// fieldErrorResponse is the error body for requests with per-field problems
type fieldErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// isFormPost reports whether r carries an HTML form rather than JSON.
func isFormPost(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == "application/x-www-form-urlencoded" || mediaType == "multipart/form-data"
}

// decodeJSON reads a JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFormBody)).Decode(dst); err != nil {
		return &ErrValidation{Message: "invalid request body"}
	}
	return nil
}

// handleSubmitBrief accepts a completed brief.
func (s *Server) handleSubmitBrief(w http.ResponseWriter, r *http.Request) {
	var b types.Brief
	if err := decodeJSON(w, r, &b); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := brief.Validate(b); err != nil {
		s.fieldErrors(w, "Invalid brief", err)
		return
	}

	receipt, err := s.briefs.Submit(r.Context(), b)
	if err != nil {
		log.Printf("[brief] Submission failed: %v", err)
		s.errorResponse(w, HTTPStatus(err), "Failed to submit brief")
		return
	}
	s.jsonResponse(w, http.StatusCreated, receipt)
}

// fieldErrors sends validation failures with their per-field messages.
func (s *Server) fieldErrors(w http.ResponseWriter, message string, err error) {
	var verr *brief.ValidationError
	if !errors.As(err, &verr) {
		s.errorResponse(w, HTTPStatus(err), message)
		return
	}
	s.jsonResponse(w, http.StatusBadRequest, fieldErrorResponse{Error: message, Fields: verr.Fields})
}

// handleContact accepts the contact form either as JSON or as a plain HTML
// form post, in which case the page is rendered again with the outcome.
func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	form := isFormPost(r)

	var req types.ContactRequest
	if form {
		r.Body = http.MaxBytesReader(w, r.Body, maxFormBody)
		if err := r.ParseForm(); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid form")
			return
		}
		req = types.ContactRequest{
			Name:    r.PostForm.Get("name"),
			Email:   r.PostForm.Get("email"),
			Company: r.PostForm.Get("company"),
			Message: r.PostForm.Get("message"),
		}
	} else if err := decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := brief.ValidateContact(req); err != nil {
		if !form {
			s.fieldErrors(w, "Invalid contact request", err)
			return
		}
		var verr *brief.ValidationError
		errors.As(err, &verr)
		s.page(w, r, web.Page{
			Title:      "Contact",
			StatusCode: http.StatusBadRequest,
			Body:       web.Contact(web.ContactForm{Values: req, Errors: fieldsOf(verr)}),
		})
		return
	}

	log.Printf("[contact] Message from %s <%s> (%d chars)", req.Name, req.Email, len(req.Message))

	if form {
		s.page(w, r, web.Page{Title: "Contact", Body: web.Contact(web.ContactForm{Sent: true})})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": brief.StatusReceived})
}

func fieldsOf(verr *brief.ValidationError) map[string]string {
	if verr == nil {
		return nil
	}
	return verr.Fields
}
