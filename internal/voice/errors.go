package voice

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jonathan/copydesk/internal/llm"
)

// Validation messages shown to the user verbatim.
const (
	MsgSampleTooShort     = "Sample must be at least 100 characters"
	MsgTooManySamples     = "Maximum 5 samples allowed"
	MsgNeedMoreSamples    = "Please add at least 2 samples"
	MsgSamplesRequired    = "samples array is required"
	MsgAtLeastTwoSamples  = "At least 2 samples are required for accurate analysis"
	MsgEachSampleTooShort = "Each sample must be at least 100 characters"
)

// Messages returned by the analysis endpoint for upstream failures.
const (
	MsgNotConfigured  = "AI service is not configured. Please try again later."
	MsgRateLimited    = "AI service is busy. Please wait a moment and try again."
	MsgQuotaExhausted = "AI service quota exceeded. Please contact support."
	MsgAnalysisFailed = "Failed to analyze voice samples. Please try again."
)

// MsgAnalysisRetry is what the wizard shows for failures outside the known classes.
const MsgAnalysisRetry = "Something went wrong while analyzing your samples. Please try again."

// ValidationError is a malformed or out-of-bounds request. Always the caller's mistake.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConfigError means the model provider credentials are missing or rejected.
type ConfigError struct {
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("LLM configuration error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("LLM configuration error: %s", e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// RateLimitError is a transient upstream throttle.
type RateLimitError struct {
	RetryAfter time.Duration // zero when the provider gave no hint
	Cause      error
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry after %s", e.RetryAfter)
	}
	return "rate limited"
}

func (e *RateLimitError) Unwrap() error {
	return e.Cause
}

// QuotaError means the provider account is out of quota. Waiting will not help.
type QuotaError struct {
	Cause error
}

func (e *QuotaError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("quota exhausted: %v", e.Cause)
	}
	return "quota exhausted"
}

func (e *QuotaError) Unwrap() error {
	return e.Cause
}

// ResponseError is a model response that is not JSON or lacks required fields.
type ResponseError struct {
	Message string
	Cause   error
}

func (e *ResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed model response: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed model response: %s", e.Message)
}

func (e *ResponseError) Unwrap() error {
	return e.Cause
}

// ServiceError is any other failure, including an unexpected status seen by Analyzer.
type ServiceError struct {
	StatusCode int
	Message    string
	Cause      error
}

func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("analysis failed (status %d): %s: %v", e.StatusCode, e.Message, e.Cause)
	}
	return fmt.Sprintf("analysis failed (status %d): %s", e.StatusCode, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the response status for an analysis error
func HTTPStatus(err error) int {
	var (
		validationErr *ValidationError
		rateErr       *RateLimitError
		quotaErr      *QuotaError
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &rateErr):
		return http.StatusTooManyRequests
	case errors.As(err, &quotaErr):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the message the endpoint sends for err. Only
// validation messages carry request detail; everything else is generic.
func PublicMessage(err error) string {
	var (
		validationErr *ValidationError
		configErr     *ConfigError
		rateErr       *RateLimitError
		quotaErr      *QuotaError
	)
	switch {
	case errors.As(err, &validationErr):
		return validationErr.Message
	case errors.As(err, &configErr):
		return MsgNotConfigured
	case errors.As(err, &rateErr):
		return MsgRateLimited
	case errors.As(err, &quotaErr):
		return MsgQuotaExhausted
	default:
		return MsgAnalysisFailed
	}
}

// UserMessage chooses what the wizard shows after a failed Analyze call.
func UserMessage(err error) string {
	var (
		validationErr *ValidationError
		rateErr       *RateLimitError
		quotaErr      *QuotaError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &validationErr):
		return validationErr.Message
	case errors.As(err, &rateErr):
		if secs := int(rateErr.RetryAfter.Round(time.Second).Seconds()); secs > 0 {
			return fmt.Sprintf("Too many requests. Please wait %d seconds and try again.", secs)
		}
		return "Too many requests. Please wait a moment and try again."
	case errors.As(err, &quotaErr):
		return "Our AI service has reached its usage limit. Please contact support."
	default:
		return MsgAnalysisRetry
	}
}

// classifyUpstream maps an LLM client failure onto the error taxonomy.
// Structured provider signals win; the "429 mentioning quota" text match is
// only consulted when the provider sent no error code.
func classifyUpstream(err error) error {
	if errors.Is(err, llm.ErrMissingAPIKey) {
		return &ConfigError{Message: "API key is not set", Cause: err}
	}

	var apiErr *llm.APIError
	if !errors.As(err, &apiErr) {
		return &ServiceError{StatusCode: http.StatusInternalServerError, Message: "LLM request failed", Cause: err}
	}

	switch apiErr.Kind {
	case llm.KindAuth:
		return &ConfigError{Message: "credentials rejected by provider", Cause: err}
	case llm.KindQuota:
		return &QuotaError{Cause: err}
	case llm.KindRateLimit:
		return &RateLimitError{RetryAfter: apiErr.RetryAfter, Cause: err}
	}

	switch {
	case apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden:
		return &ConfigError{Message: "credentials rejected by provider", Cause: err}
	case apiErr.StatusCode == http.StatusTooManyRequests && strings.Contains(strings.ToLower(apiErr.Message), "quota"):
		return &QuotaError{Cause: err}
	case apiErr.StatusCode == http.StatusTooManyRequests:
		return &RateLimitError{RetryAfter: apiErr.RetryAfter, Cause: err}
	}

	return &ServiceError{StatusCode: http.StatusInternalServerError, Message: "LLM request failed", Cause: err}
}
