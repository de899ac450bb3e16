package llm

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/googleapis/gax-go/v2/apierror"
	"github.com/openai/openai-go"
	"google.golang.org/grpc/codes"
)

// ErrorKind is a provider-neutral classification derived from structured error data.
// KindUnknown means the provider gave no structured signal.
type ErrorKind string

const (
	KindUnknown   ErrorKind = ""
	KindAuth      ErrorKind = "auth"
	KindRateLimit ErrorKind = "rate_limit"
	KindQuota     ErrorKind = "quota"
)

// ErrMissingAPIKey is returned when a client is constructed without credentials.
var ErrMissingAPIKey = errors.New("API key is required")

// APIError is a normalized error returned by a provider API.
type APIError struct {
	Provider   Provider
	StatusCode int
	Kind       ErrorKind
	Code       string // provider error code, e.g. "insufficient_quota"
	Message    string
	RetryAfter time.Duration
	Cause      error
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s API error (status %d, code %s): %s", e.Provider, e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// normalizeGeminiError converts a Gemini SDK error into an *APIError when it
// carries a Google API status. Transport errors are returned wrapped as-is.
func normalizeGeminiError(err error) error {
	apiErr, ok := apierror.FromError(err)
	if !ok {
		return fmt.Errorf("failed to generate content: %w", err)
	}

	out := &APIError{
		Provider:   ProviderGemini,
		StatusCode: apiErr.HTTPCode(),
		Message:    apiErr.Error(),
		Cause:      err,
	}
	if st := apiErr.GRPCStatus(); st != nil {
		out.Message = st.Message()
		if out.StatusCode <= 0 {
			out.StatusCode = httpStatusFromCode(st.Code())
		}
	}
	out.Code = apiErr.Reason()

	details := apiErr.Details()
	if details.RetryInfo != nil && details.RetryInfo.GetRetryDelay() != nil {
		out.RetryAfter = details.RetryInfo.GetRetryDelay().AsDuration()
	}

	switch {
	case out.StatusCode == http.StatusUnauthorized || out.StatusCode == http.StatusForbidden,
		out.Code == "API_KEY_INVALID":
		out.Kind = KindAuth
	case out.StatusCode == http.StatusTooManyRequests && details.QuotaFailure != nil:
		out.Kind = KindRateLimit
		for _, v := range details.QuotaFailure.GetViolations() {
			// Daily and billing quotas do not recover by waiting a minute.
			if strings.Contains(v.GetQuotaId(), "PerDay") || strings.Contains(v.GetQuotaMetric(), "billing") {
				out.Kind = KindQuota
				break
			}
		}
	case out.StatusCode == http.StatusTooManyRequests && details.RetryInfo != nil:
		out.Kind = KindRateLimit
	}

	return out
}

// normalizeOpenAIError converts an OpenAI SDK error into an *APIError.
func normalizeOpenAIError(err error) error {
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("failed to generate content: %w", err)
	}

	out := &APIError{
		Provider:   ProviderOpenAI,
		StatusCode: apiErr.StatusCode,
		Code:       apiErr.Code,
		Message:    apiErr.Message,
		Cause:      err,
	}
	if apiErr.Response != nil {
		out.RetryAfter = ParseRetryAfter(apiErr.Response.Header, time.Now())
	}

	switch {
	case apiErr.Code == "insufficient_quota":
		out.Kind = KindQuota
	case apiErr.Code == "rate_limit_exceeded":
		out.Kind = KindRateLimit
	case apiErr.Code == "invalid_api_key", apiErr.StatusCode == http.StatusUnauthorized:
		out.Kind = KindAuth
	}

	return out
}

// ParseRetryAfter reads a retry hint from response headers.
// It understands Retry-After (seconds or HTTP date) and retry-after-ms.
func ParseRetryAfter(h http.Header, now time.Time) time.Duration {
	if h == nil {
		return 0
	}
	if ms := h.Get("retry-after-ms"); ms != "" {
		if v, err := strconv.ParseFloat(ms, 64); err == nil && v > 0 {
			return time.Duration(v * float64(time.Millisecond))
		}
	}
	value := strings.TrimSpace(h.Get("Retry-After"))
	if value == "" {
		return 0
	}
	if secs, err := strconv.Atoi(value); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if when, err := http.ParseTime(value); err == nil {
		if d := when.Sub(now); d > 0 {
			return d
		}
	}
	return 0
}

func httpStatusFromCode(c codes.Code) int {
	switch c {
	case codes.OK:
		return http.StatusOK
	case codes.InvalidArgument, codes.FailedPrecondition, codes.OutOfRange:
		return http.StatusBadRequest
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.NotFound:
		return http.StatusNotFound
	case codes.ResourceExhausted:
		return http.StatusTooManyRequests
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	case codes.DeadlineExceeded:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
