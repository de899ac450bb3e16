package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/copydesk/internal/fetch"
	"github.com/jonathan/copydesk/internal/voice"
)

func longText(seed string) string {
	return strings.Repeat(seed+" ", 200/len(seed)+1)
}

func TestCollectSamples_FilesAndPages(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><nav>Home</nav><main><p>" + longText("Shipping software is a team sport.") + "</p></main></body></html>"))
	}))
	defer page.Close()

	path := filepath.Join(t.TempDir(), "post.md")
	require.NoError(t, os.WriteFile(path, []byte(longText("We write the way we talk.")), 0644))

	samples, err := collectSamples(context.Background(), []string{path}, []string{page.URL}, nil)
	require.NoError(t, err)
	require.Len(t, samples, 2)
	assert.Empty(t, samples[0].Source)
	assert.Equal(t, page.URL, samples[1].Source)
	assert.Contains(t, samples[1].Content, "team sport")
	assert.NotContains(t, samples[1].Content, "Home")
}

func TestCollectSamples_BrowserFallback(t *testing.T) {
	shell := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><div id="app"></div><script src="/bundle.js"></script></body></html>`))
	}))
	defer shell.Close()

	path := filepath.Join(t.TempDir(), "post.md")
	require.NoError(t, os.WriteFile(path, []byte(longText("We write the way we talk.")), 0644))

	browser := fetch.RendererFunc(func(context.Context, string) ([]byte, error) {
		return []byte("<html><body><main><p>" + longText("Rendered copy reads like us.") + "</p></main></body></html>"), nil
	})

	_, err := collectSamples(context.Background(), []string{path}, []string{shell.URL}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), voice.MsgSampleTooShort)

	samples, err := collectSamples(context.Background(), []string{path}, []string{shell.URL}, browser)
	require.NoError(t, err)
	require.Len(t, samples, 2)
	assert.Contains(t, samples[1].Content, "Rendered copy")
}

func TestCollectSamples_TooFew(t *testing.T) {
	_, err := collectSamples(context.Background(), []string{"only.md"}, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), voice.MsgAtLeastTwoSamples)
}

func TestCollectSamples_ShortFile(t *testing.T) {
	dir := t.TempDir()
	short := filepath.Join(dir, "short.md")
	long := filepath.Join(dir, "long.md")
	require.NoError(t, os.WriteFile(short, []byte("Too short."), 0644))
	require.NoError(t, os.WriteFile(long, []byte(longText("Plenty of words here.")), 0644))

	_, err := collectSamples(context.Background(), []string{long, short}, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "short.md")
	assert.Contains(t, err.Error(), voice.MsgSampleTooShort)
}

func TestWriteOutput_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "analysis.json")

	require.NoError(t, writeOutput(path, []byte(`{"confidence":82}`)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"confidence":82}`, string(data))
}

func TestLoadSettings_ConfigFileOverridesEnv(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "gm-key")
	t.Setenv("OPENAI_API_KEY", "oa-key")
	t.Setenv("COPYDESK_DATA_DIR", "/env/dir")

	path := filepath.Join(t.TempDir(), "copydesk.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"provider":"openai","server_url":"http://localhost:9000"}`), 0644))

	configPath = path
	t.Cleanup(func() { configPath = "" })

	s, err := loadSettings()
	require.NoError(t, err)
	assert.Equal(t, "openai", s.Provider)
	assert.Equal(t, "oa-key", s.APIKey)
	assert.Equal(t, "/env/dir", s.DataDir)
	assert.Equal(t, "http://localhost:9000", s.ServerURL)
}

func TestLoadSettings_InvalidConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "copydesk.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"provider":"mystery"}`), 0644))

	configPath = path
	t.Cleanup(func() { configPath = "" })

	_, err := loadSettings()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported LLM provider")
}

func TestAnalyzer_RequiresKeyWithoutServer(t *testing.T) {
	s := &settings{}
	_, _, err := s.analyzer(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key is required")
}

func TestAnalyzer_UsesServer(t *testing.T) {
	s := &settings{}
	s.ServerURL = "http://localhost:8080"

	a, closeFn, err := s.analyzer(context.Background())
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &voice.Analyzer{}, a)
}
