package voice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analyzerServer(t *testing.T, status int, body string) (*httptest.Server, *[]string) {
	t.Helper()
	var got []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, AnalyzePath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req struct {
			Samples []string `json:"samples"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		got = req.Samples

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func TestAnalyzer_Success(t *testing.T) {
	srv, got := analyzerServer(t, http.StatusOK, analysisJSON)

	result, err := NewAnalyzer(srv.URL+"/", nil).Analyze(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, "Confident Mentor", result.Profile.Name)
	assert.Equal(t, 82.0, result.Confidence)
	assert.Equal(t, 9.0, result.Profile.Tone.Confidence)
	assert.Equal(t, []string{"a", "b"}, *got)
}

func TestAnalyzer_FractionalScores(t *testing.T) {
	srv, _ := analyzerServer(t, http.StatusOK, fractionalAnalysisJSON)

	result, err := NewAnalyzer(srv.URL, nil).Analyze(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, 7.5, result.Profile.Tone.Formality)
	assert.Equal(t, 87.5, result.Confidence)
}

func TestAnalyzer_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "validation",
			status: http.StatusBadRequest,
			body:   `{"error":"Maximum 5 samples allowed"}`,
			check: func(t *testing.T, err error) {
				var validationErr *ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Equal(t, "Maximum 5 samples allowed", validationErr.Message)
			},
		},
		{
			name:   "rate limit",
			status: http.StatusTooManyRequests,
			body:   `{"error":"AI service is busy. Please wait a moment and try again.","retryAfter":20}`,
			check: func(t *testing.T, err error) {
				var rateErr *RateLimitError
				require.ErrorAs(t, err, &rateErr)
				assert.Equal(t, 20*time.Second, rateErr.RetryAfter)
			},
		},
		{
			name:   "quota",
			status: http.StatusServiceUnavailable,
			body:   `{"error":"AI service quota exceeded. Please contact support."}`,
			check: func(t *testing.T, err error) {
				var quotaErr *QuotaError
				assert.ErrorAs(t, err, &quotaErr)
			},
		},
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			body:   `{"error":"AI service is not configured. Please try again later."}`,
			check: func(t *testing.T, err error) {
				var svcErr *ServiceError
				require.ErrorAs(t, err, &svcErr)
				assert.Equal(t, http.StatusInternalServerError, svcErr.StatusCode)
				assert.Equal(t, MsgNotConfigured, svcErr.Message)
			},
		},
		{
			name:   "non-json error body",
			status: http.StatusBadGateway,
			body:   `<html>bad gateway</html>`,
			check: func(t *testing.T, err error) {
				var svcErr *ServiceError
				require.ErrorAs(t, err, &svcErr)
				assert.Equal(t, "Bad Gateway", svcErr.Message)
			},
		},
		{
			name:   "undecodable success",
			status: http.StatusOK,
			body:   `not json`,
			check: func(t *testing.T, err error) {
				var svcErr *ServiceError
				assert.ErrorAs(t, err, &svcErr)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := analyzerServer(t, tt.status, tt.body)
			_, err := NewAnalyzer(srv.URL, srv.Client()).Analyze(context.Background(), []string{"a", "b"})
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestAnalyzer_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewAnalyzer(url, nil).Analyze(context.Background(), []string{"a", "b"})
	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 0, svcErr.StatusCode)
}
