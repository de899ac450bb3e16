package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jonathan/copydesk/internal/types"
)

// AnalyzePath is where the analysis endpoint is mounted.
const AnalyzePath = "/api/analyze-voice"

// ErrorBody is the JSON error payload of the analysis endpoint.
type ErrorBody struct {
	Error      string `json:"error"`
	RetryAfter int    `json:"retryAfter,omitempty"` // seconds, rate limits only
}

// Analyzer submits samples to a running analysis endpoint and maps the
// response onto the error taxonomy.
type Analyzer struct {
	endpoint   string
	httpClient *http.Client
}

// NewAnalyzer creates an Analyzer for the server at baseURL.
// httpClient may be nil, in which case http.DefaultClient is used.
func NewAnalyzer(baseURL string, httpClient *http.Client) *Analyzer {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Analyzer{
		endpoint:   strings.TrimRight(baseURL, "/") + AnalyzePath,
		httpClient: httpClient,
	}
}

// Analyze sends samples in a single request. There is no retry; the call
// blocks until the server answers or ctx is done.
func (a *Analyzer) Analyze(ctx context.Context, samples []string) (*types.AnalysisResult, error) {
	body, err := json.Marshal(map[string][]string{"samples": samples})
	if err != nil {
		return nil, fmt.Errorf("encoding samples: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, &ServiceError{Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ServiceError{StatusCode: resp.StatusCode, Message: "reading response", Cause: err}
	}

	if resp.StatusCode == http.StatusOK {
		var result types.AnalysisResult
		if err := json.Unmarshal(payload, &result); err != nil {
			return nil, &ServiceError{StatusCode: resp.StatusCode, Message: "decoding analysis", Cause: err}
		}
		return &result, nil
	}

	var errBody ErrorBody
	if err := json.Unmarshal(payload, &errBody); err != nil || errBody.Error == "" {
		errBody.Error = http.StatusText(resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusBadRequest:
		return nil, &ValidationError{Message: errBody.Error}
	case http.StatusTooManyRequests:
		return nil, &RateLimitError{RetryAfter: time.Duration(errBody.RetryAfter) * time.Second}
	case http.StatusServiceUnavailable:
		return nil, &QuotaError{}
	default:
		return nil, &ServiceError{StatusCode: resp.StatusCode, Message: errBody.Error}
	}
}
