package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/jonathan/copydesk/internal/voice"
)

// maxAnalyzeBody bounds five long samples with room to spare.
const maxAnalyzeBody = 1 << 20

// handleAnalyzeVoice runs brand-voice analysis. A successful model reply is
// written through unchanged.
func (s *Server) handleAnalyzeVoice(w http.ResponseWriter, r *http.Request) {
	var req voice.AnalyzeRequest
	body := http.MaxBytesReader(w, r.Body, maxAnalyzeBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		// An unreadable body has no samples array; the service reports it.
		req = voice.AnalyzeRequest{}
	}

	analysis, err := s.voice.Analyze(r.Context(), req)
	if err != nil {
		s.analysisError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(analysis.Raw); err != nil {
		log.Printf("[analyze-voice] Error writing response: %v", err)
	}
}

// analysisError logs err with full detail and sends only the stable message.
func (s *Server) analysisError(w http.ResponseWriter, err error) {
	status := voice.HTTPStatus(err)
	resp := voice.ErrorBody{Error: voice.PublicMessage(err)}

	var rateErr *voice.RateLimitError
	if errors.As(err, &rateErr) {
		if secs := retryAfterSeconds(rateErr.RetryAfter); secs > 0 {
			resp.RetryAfter = secs
			w.Header().Set("Retry-After", strconv.Itoa(secs))
		}
	}

	if status != http.StatusBadRequest {
		log.Printf("[analyze-voice] %d: %v", status, err)
	}
	s.jsonResponse(w, status, resp)
}
