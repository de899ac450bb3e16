package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get("voice.json", "analyze-samples")
	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.Samples}}")
	assert.Contains(t, prompt, "\"profile\"")
	assert.Contains(t, prompt, "\"vocabulary\"")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get("voice.json", "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestFormat(t *testing.T) {
	template := "Analyze {{.Count}} samples:\n{{.Samples}}\n{{.Unknown}}"
	result := Format(template, map[string]string{
		"Count":   "2",
		"Samples": "SAMPLE 1:\nhello",
	})

	assert.Equal(t, "Analyze 2 samples:\nSAMPLE 1:\nhello\n{{.Unknown}}", result)
}

func TestFormat_ValueContainingPlaceholder(t *testing.T) {
	result := Format("{{.A}} {{.B}}", map[string]string{
		"A": "{{.B}}",
		"B": "b",
	})

	// Substituted text is not rescanned
	assert.Equal(t, "{{.B}} b", result)
}
