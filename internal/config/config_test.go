package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"samples": ["post.md", "newsletter.txt"],
		"urls": ["https://example.com/blog/launch"],
		"provider": "openai",
		"model": "gpt-4o",
		"server_url": "http://localhost:8080",
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, []string{"post.md", "newsletter.txt"}, cfg.Samples)
	assert.Equal(t, []string{"https://example.com/blog/launch"}, cfg.URLs)
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "gpt-4o", cfg.Model)
	assert.Equal(t, "http://localhost:8080", cfg.ServerURL)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate_UnknownProvider(t *testing.T) {
	cfg := &Config{Provider: "claude"}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported LLM provider")
}

func TestValidate_TooManySamples(t *testing.T) {
	cfg := &Config{
		URLs: []string{
			"https://example.com/1", "https://example.com/2", "https://example.com/3",
			"https://example.com/4", "https://example.com/5", "https://example.com/6",
		},
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "at most 5")
}

func TestValidate_MissingSampleFile(t *testing.T) {
	cfg := &Config{Samples: []string{filepath.Join(t.TempDir(), "missing.md")}}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "sample file not found")
}

func TestValidate_BadURL(t *testing.T) {
	for _, raw := range []string{"ftp://example.com/a", "example.com/post", "https://"} {
		cfg := &Config{URLs: []string{raw}}
		assert.Error(t, cfg.Validate(), raw)
	}

	cfg := &Config{ServerURL: "localhost:8080"}
	assert.Error(t, cfg.Validate())
}

func TestValidate_ValidConfig(t *testing.T) {
	sample := filepath.Join(t.TempDir(), "post.md")
	require.NoError(t, os.WriteFile(sample, []byte("We ship on Fridays."), 0644))

	cfg := &Config{
		Samples:   []string{sample},
		URLs:      []string{"https://example.com/blog"},
		Provider:  "gemini",
		ServerURL: "https://copydesk.example.com",
	}

	err := cfg.Validate()
	assert.NoError(t, err)
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		Provider:  "gemini",
		Model:     "gemini-1.5-pro",
		DataDir:   "/var/lib/copydesk",
		ServerURL: "http://localhost:8080",
		Samples:   []string{"default.md"},
	}

	partial := Config{
		Provider: "openai",
		Samples:  []string{"mine.md", "yours.md"},
	}

	merged := partial.MergeWithDefaults(defaults)

	// Custom values should be preserved
	assert.Equal(t, "openai", merged.Provider)
	assert.Equal(t, []string{"mine.md", "yours.md"}, merged.Samples)

	// Default values should fill in empty fields
	assert.Equal(t, "gemini-1.5-pro", merged.Model)
	assert.Equal(t, "/var/lib/copydesk", merged.DataDir)
	assert.Equal(t, "http://localhost:8080", merged.ServerURL)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{
		Provider: "openai",
		URLs:     []string{"https://example.com"},
	}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "openai", merged.Provider)
	assert.Equal(t, []string{"https://example.com"}, merged.URLs)
	assert.Empty(t, merged.Samples)
}
