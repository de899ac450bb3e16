package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/copydesk/internal/billing"
	"github.com/jonathan/copydesk/internal/brief"
	"github.com/jonathan/copydesk/internal/server/ratelimit"
	"github.com/jonathan/copydesk/internal/types"
	"github.com/jonathan/copydesk/internal/voice"
)

const msgRateLimited = "Too many requests. Please try again later."

// Server represents the HTTP server
type Server struct {
	httpServer      *http.Server
	handler         http.Handler
	voice           *voice.Service
	billing         billing.Provider
	webhooks        *billing.WebhookHandler
	briefs          brief.Submitter
	rateLimiter     *ratelimit.Limiter
	allowedOrigins  map[string]bool
	customerID      string
	plan            types.Plan
	shutdownTimeout time.Duration
}

// Config holds server configuration
type Config struct {
	Port int
	// AllowedOrigins lists CORS origins; empty or "*" allows any origin.
	AllowedOrigins []string
	// CustomerID and Plan describe the demo account shown on the dashboard.
	CustomerID      string
	Plan            types.PlanID
	ShutdownTimeout time.Duration
}

// Deps are the services behind the API routes. Nil fields get defaults:
// analysis without an LLM fails as not configured, billing routes answer 503,
// briefs are logged and rate limits come from the environment.
type Deps struct {
	Voice    *voice.Service
	Billing  billing.Provider
	Webhooks *billing.WebhookHandler
	Briefs   brief.Submitter
	Limiter  *ratelimit.Limiter
}

// New creates a new server instance
func New(cfg Config, deps Deps) (*Server, error) {
	if cfg.Plan == "" {
		cfg.Plan = types.PlanProfessional
	}
	plan, ok := billing.LookupPlan(cfg.Plan)
	if !ok {
		return nil, fmt.Errorf("unknown dashboard plan %q", cfg.Plan)
	}
	if cfg.CustomerID == "" {
		cfg.CustomerID = "cus_demo"
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}

	s := &Server{
		voice:           deps.Voice,
		billing:         deps.Billing,
		webhooks:        deps.Webhooks,
		briefs:          deps.Briefs,
		rateLimiter:     deps.Limiter,
		allowedOrigins:  make(map[string]bool),
		customerID:      cfg.CustomerID,
		plan:            plan,
		shutdownTimeout: cfg.ShutdownTimeout,
	}
	if s.voice == nil {
		s.voice = voice.NewService(nil)
	}
	if s.webhooks == nil && s.billing != nil {
		s.webhooks = billing.NewWebhookHandler(s.billing)
	}
	if s.briefs == nil {
		s.briefs = brief.NewLogSubmitter()
	}
	if s.rateLimiter == nil {
		s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())
	}
	for _, o := range cfg.AllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			s.allowedOrigins[o] = true
		}
	}

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Marketing pages
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /pricing", s.handlePricing)
	mux.HandleFunc("GET /case-studies", s.handleCaseStudies)
	mux.HandleFunc("GET /about", s.handleAbout)
	mux.HandleFunc("GET /contact", s.handleContactPage)
	mux.HandleFunc("GET /", s.handleNotFound)

	// Client dashboard (mocked data)
	mux.HandleFunc("GET /dashboard", s.handleDashboard)
	mux.HandleFunc("GET /dashboard/projects", s.handleProjects)
	mux.HandleFunc("GET /dashboard/briefs", s.handleBriefs)
	mux.HandleFunc("GET /dashboard/billing", s.handleBilling)

	// API
	mux.HandleFunc("POST "+voice.AnalyzePath, s.handleAnalyzeVoice)
	mux.HandleFunc("POST "+brief.SubmitPath, s.handleSubmitBrief)
	mux.HandleFunc("POST /api/contact", s.handleContact)
	mux.HandleFunc("POST /api/checkout", s.handleCheckout)
	mux.HandleFunc("POST /api/portal", s.handlePortal)
	mux.HandleFunc("POST /api/webhooks/stripe", s.handleStripeWebhook)

	s.handler = otelhttp.NewHandler(s.withRateLimit(s.withLogging(s.withCORS(mux))), "copydesk",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}))

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      120 * time.Second, // analysis waits on the LLM
		IdleTimeout:       60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start listens on the configured port and serves until ctx is done or the
// process receives SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.httpServer.Addr, err)
	}
	return s.serve(ctx, ln)
}

func (s *Server) serve(ctx context.Context, ln net.Listener) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Server starting on %s", ln.Addr())
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		log.Println("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		defer s.rateLimiter.Stop()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		log.Println("Server stopped")
		return nil
	})

	return g.Wait()
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		switch {
		case len(s.allowedOrigins) == 0 || s.allowedOrigins["*"]:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case s.allowedOrigins[origin]:
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Stripe-Signature")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)
		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)

		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("[%s] %s %d in %v", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// Only RemoteAddr is trusted; forwarding headers can be spoofed.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response. The body
// matches the analysis endpoint's error shape so clients handle both alike.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     msgRateLimited,
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["resetAt"] = info.ResetTime.UTC().Format(time.RFC3339)
	}

	if secs := retryAfterSeconds(info.RetryAfter); secs > 0 {
		response["retryAfter"] = secs
		w.Header().Set("Retry-After", strconv.Itoa(secs))
	}

	log.Printf("[rate-limit] %s %s from %s: limit=%d retry_after=%v",
		r.Method, r.URL.Path, s.extractClientID(r), info.Limit, info.RetryAfter)

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

// retryAfterSeconds rounds d up to whole seconds.
func retryAfterSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}
