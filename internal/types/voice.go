// Package types provides type definitions for structured data shared across copydesk.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// Sample is one block of brand writing collected for voice analysis
type Sample struct {
	ID         uuid.UUID `json:"id"`
	Content    string    `json:"content"`
	WordCount  int       `json:"wordCount"`
	CapturedAt time.Time `json:"capturedAt"`
	Source     string    `json:"source,omitempty"` // page URL when imported from the web
}

// ToneScores rates the voice on five axes, each 1-10
type ToneScores struct {
	Formality  float64 `json:"formality"`
	Enthusiasm float64 `json:"enthusiasm"`
	Confidence float64 `json:"confidence"`
	Warmth     float64 `json:"warmth"`
	Humor      float64 `json:"humor"`
}

// Vocabulary describes word choice
type Vocabulary struct {
	Complexity     string   `json:"complexity"`  // simple | moderate | advanced
	JargonLevel    string   `json:"jargonLevel"` // none | light | moderate | heavy
	SignatureWords []string `json:"signatureWords"`
	AvoidWords     []string `json:"avoidWords"`
	IndustryTerms  []string `json:"industryTerms"`
}

// SentenceStructure describes rhythm and paragraphing
type SentenceStructure struct {
	AverageLength     string   `json:"averageLength"`  // short | medium | long | varied
	ParagraphStyle    string   `json:"paragraphStyle"` // concise | moderate | detailed
	PreferredOpenings []string `json:"preferredOpenings"`
	TransitionStyle   string   `json:"transitionStyle"`
}

// ContentPatterns flags recurring rhetorical devices
type ContentPatterns struct {
	UsesQuestions     bool   `json:"usesQuestions"`
	UsesLists         bool   `json:"usesLists"`
	UsesAnecdotes     bool   `json:"usesAnecdotes"`
	UsesData          bool   `json:"usesData"`
	UsesMetaphors     bool   `json:"usesMetaphors"`
	CallToActionStyle string `json:"callToActionStyle"`
}

// VoiceProfile is the structured description of a brand's writing voice.
// It is produced once per analysis and never modified afterwards.
type VoiceProfile struct {
	Name              string            `json:"name"`
	Description       string            `json:"description"`
	Tone              ToneScores        `json:"tone"`
	Vocabulary        Vocabulary        `json:"vocabulary"`
	SentenceStructure SentenceStructure `json:"sentenceStructure"`
	ContentPatterns   ContentPatterns   `json:"contentPatterns"`
	ExampleExcerpts   []string          `json:"exampleExcerpts"`
}

// AnalysisResult is the response body of a successful voice analysis
type AnalysisResult struct {
	Profile     VoiceProfile `json:"profile"`
	Confidence  float64      `json:"confidence"` // 0-100
	Suggestions []string     `json:"suggestions"`
}

// SavedProfile is a completed analysis kept in the local store
type SavedProfile struct {
	Result  AnalysisResult `json:"result"`
	Samples []Sample       `json:"samples"`
	SavedAt time.Time      `json:"savedAt"`
}
