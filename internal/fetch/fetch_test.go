package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPage_Success(t *testing.T) {
	var gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body><h1>Test</h1></body></html>"))
	}))
	defer server.Close()

	result, err := Page(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, server.URL, result.URL)
	assert.Contains(t, string(result.HTML), "<h1>Test</h1>")
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, DefaultUserAgent, gotAgent)
}

func TestPage_InvalidURL(t *testing.T) {
	for _, raw := range []string{"not-a-valid-url", "ftp://example.com/file", "https://"} {
		_, err := Page(context.Background(), raw, nil)
		require.Error(t, err, raw)

		var fetchErr *Error
		assert.ErrorAs(t, err, &fetchErr)
		assert.Contains(t, err.Error(), "invalid URL")
	}
}

func TestPage_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	result, err := Page(context.Background(), server.URL, nil)
	require.Error(t, err)
	assert.NotNil(t, result) // Result is returned even on error
	assert.Equal(t, http.StatusNotFound, result.StatusCode)
	assert.Contains(t, err.Error(), "unexpected status 404")
}

func TestPage_RejectsNonHTML(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.7"))
	}))
	defer server.Close()

	_, err := Page(context.Background(), server.URL, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not an HTML page")
}

func TestPage_TruncatesLargeBodies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(strings.Repeat("a", 4096)))
	}))
	defer server.Close()

	result, err := Page(context.Background(), server.URL, &Options{MaxBytes: 1024, Client: server.Client()})
	require.NoError(t, err)
	assert.Len(t, result.HTML, 1024)
}

func TestIsHTML(t *testing.T) {
	assert.True(t, isHTML(""))
	assert.True(t, isHTML("text/html"))
	assert.True(t, isHTML("TEXT/HTML; charset=ISO-8859-1"))
	assert.True(t, isHTML("application/xhtml+xml"))
	assert.False(t, isHTML("application/json"))
	assert.False(t, isHTML(";;;"))
}
