// Package voice implements brand-voice analysis: collecting writing samples,
// asking an LLM for a structured voice profile, and the wizard that drives it.
package voice

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jonathan/copydesk/internal/types"
)

const (
	// MinSampleLength is the minimum trimmed length, in characters, of a usable sample.
	MinSampleLength = 100
	// MinSamples is how many samples an analysis needs.
	MinSamples = 2
	// MaxSamples is how many samples may be held or submitted at once.
	MaxSamples = 5
)

// CountWords returns the number of whitespace-delimited tokens in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// meetsMinLength reports whether trimmed text is long enough to analyze.
func meetsMinLength(text string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(text)) >= MinSampleLength
}

// buildSample validates text and returns a new sample for it.
func buildSample(id uuid.UUID, text, source string, at time.Time) (types.Sample, error) {
	if !meetsMinLength(text) {
		return types.Sample{}, &ValidationError{Message: MsgSampleTooShort}
	}
	content := strings.TrimSpace(text)
	return types.Sample{
		ID:         id,
		Content:    content,
		WordCount:  CountWords(content),
		CapturedAt: at,
		Source:     source,
	}, nil
}

// appendSample returns a new slice with the sample added; samples is never modified.
// Capacity is checked before content, so a sixth sample is refused even when valid.
func appendSample(samples []types.Sample, id uuid.UUID, text, source string, at time.Time) ([]types.Sample, types.Sample, error) {
	if len(samples) >= MaxSamples {
		return samples, types.Sample{}, &ValidationError{Message: MsgTooManySamples}
	}
	sample, err := buildSample(id, text, source, at)
	if err != nil {
		return samples, types.Sample{}, err
	}

	out := make([]types.Sample, 0, len(samples)+1)
	out = append(out, samples...)
	out = append(out, sample)
	return out, sample, nil
}

// removeSample returns a new slice without id, preserving order.
func removeSample(samples []types.Sample, id uuid.UUID) ([]types.Sample, bool) {
	out := make([]types.Sample, 0, len(samples))
	found := false
	for _, s := range samples {
		if s.ID == id {
			found = true
			continue
		}
		out = append(out, s)
	}
	if !found {
		return samples, false
	}
	return out, true
}

func contents(samples []types.Sample) []string {
	out := make([]string, len(samples))
	for i, s := range samples {
		out[i] = s.Content
	}
	return out
}

// Collector holds the ordered samples a user has entered. It is not safe for
// concurrent use; one collector belongs to one wizard session.
type Collector struct {
	samples []types.Sample
	now     func() time.Time
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{now: time.Now}
}

// Add accepts text as a new sample. On rejection the collection is unchanged.
func (c *Collector) Add(text string) (types.Sample, error) {
	return c.AddFrom(text, "")
}

// AddFrom is Add for text imported from source, usually a page URL.
func (c *Collector) AddFrom(text, source string) (types.Sample, error) {
	samples, sample, err := appendSample(c.samples, uuid.New(), text, source, c.now())
	if err != nil {
		return types.Sample{}, err
	}
	c.samples = samples
	return sample, nil
}

// Remove drops the sample with id and reports whether it existed.
func (c *Collector) Remove(id uuid.UUID) bool {
	samples, ok := removeSample(c.samples, id)
	c.samples = samples
	return ok
}

// Reset discards all samples.
func (c *Collector) Reset() {
	c.samples = nil
}

// Len returns the number of accepted samples.
func (c *Collector) Len() int {
	return len(c.samples)
}

// Samples returns a copy of the accepted samples in the order they were added.
func (c *Collector) Samples() []types.Sample {
	return append([]types.Sample(nil), c.samples...)
}

// Contents returns the sample texts in order, as sent to the analysis endpoint.
func (c *Collector) Contents() []string {
	return contents(c.samples)
}

// Ready returns an error while there are too few samples to analyze.
func (c *Collector) Ready() error {
	if len(c.samples) < MinSamples {
		return &ValidationError{Message: MsgNeedMoreSamples}
	}
	return nil
}
