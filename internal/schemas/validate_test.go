package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_VoiceAnalysis_Valid(t *testing.T) {
	doc := `{
		"profile": {
			"name": "Calm Expert",
			"tone": {"formality": 7},
			"vocabulary": {"complexity": "moderate"}
		},
		"confidence": 82,
		"suggestions": []
	}`

	assert.NoError(t, Validate(VoiceAnalysis, []byte(doc)))
}

func TestValidate_VoiceAnalysis_MinimalShape(t *testing.T) {
	// Only profile, tone and vocabulary are structurally required
	doc := `{"profile": {"tone": {}, "vocabulary": {}}}`
	assert.NoError(t, Validate(VoiceAnalysis, []byte(doc)))
}

func TestValidate_VoiceAnalysis_MissingFields(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		missing string
	}{
		{"no profile", `{"confidence": 80}`, "profile"},
		{"no tone", `{"profile": {"vocabulary": {}}}`, "tone"},
		{"no vocabulary", `{"profile": {"tone": {}}}`, "vocabulary"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(VoiceAnalysis, []byte(tt.doc))
			require.Error(t, err)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			require.NotEmpty(t, validationErr.Errors)
			assert.Contains(t, validationErr.Error(), tt.missing)
		})
	}
}

func TestValidate_VoiceAnalysis_WrongType(t *testing.T) {
	err := Validate(VoiceAnalysis, []byte(`{"profile": {"tone": "warm", "vocabulary": {}}}`))

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Len(t, validationErr.Fields(), 1)
}

func TestValidate_InvalidDocument(t *testing.T) {
	err := Validate(VoiceAnalysis, []byte(`{not json`))

	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("missing.schema.json", []byte(`{}`))

	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, err.Error(), "schema not embedded")
}
