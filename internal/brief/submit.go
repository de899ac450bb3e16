package brief

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/copydesk/internal/types"
)

// SubmitPath is where the brief endpoint is mounted.
const SubmitPath = "/api/briefs"

// StatusReceived is the status of a brief that has been accepted but not yet triaged.
const StatusReceived = "received"

// Submitter hands a completed brief to whoever fulfils it.
type Submitter interface {
	Submit(ctx context.Context, b types.Brief) (*types.BriefReceipt, error)
}

// LogSubmitter accepts every brief and only logs it. There is no fulfilment
// backend yet; the receipt id is generated locally.
type LogSubmitter struct {
	now func() time.Time
}

// NewLogSubmitter creates a LogSubmitter.
func NewLogSubmitter() *LogSubmitter {
	return &LogSubmitter{now: time.Now}
}

// Submit logs the brief and returns a receipt.
func (s *LogSubmitter) Submit(_ context.Context, b types.Brief) (*types.BriefReceipt, error) {
	receipt := &types.BriefReceipt{
		ID:          uuid.New(),
		Status:      StatusReceived,
		SubmittedAt: s.now().UTC(),
	}
	log.Printf("[brief] Received brief %s: %q (%s) for %s, %d words, deadline %q",
		receipt.ID, b.ProjectTitle, b.ContentType, b.ContactEmail, b.WordCount, b.Deadline)
	return receipt, nil
}

// HTTPSubmitter posts briefs to a running copydesk server.
type HTTPSubmitter struct {
	endpoint   string
	httpClient *http.Client
}

// NewHTTPSubmitter creates an HTTPSubmitter for the server at baseURL.
func NewHTTPSubmitter(baseURL string, httpClient *http.Client) *HTTPSubmitter {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPSubmitter{
		endpoint:   strings.TrimRight(baseURL, "/") + SubmitPath,
		httpClient: httpClient,
	}
}

// Submit posts the brief and decodes the receipt.
func (s *HTTPSubmitter) Submit(ctx context.Context, b types.Brief) (*types.BriefReceipt, error) {
	body, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("encoding brief: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("posting brief: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		var errBody struct {
			Error  string            `json:"error"`
			Fields map[string]string `json:"fields"`
		}
		if json.Unmarshal(payload, &errBody) == nil && len(errBody.Fields) > 0 {
			return nil, &ValidationError{Fields: errBody.Fields}
		}
		if errBody.Error == "" {
			errBody.Error = http.StatusText(resp.StatusCode)
		}
		return nil, fmt.Errorf("brief rejected (status %d): %s", resp.StatusCode, errBody.Error)
	}

	var receipt types.BriefReceipt
	if err := json.Unmarshal(payload, &receipt); err != nil {
		return nil, fmt.Errorf("decoding receipt: %w", err)
	}
	return &receipt, nil
}
