package voice

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// prose returns marketing-style text of exactly n characters with no
// surrounding whitespace.
func prose(n int) string {
	const base = "We build tools that help small teams ship faster without burning out. "
	return strings.Repeat(base, n/len(base)+1)[:n-1] + "."
}

func TestProseHelper(t *testing.T) {
	for _, n := range []int{50, 100, 140, 150, 200} {
		assert.Len(t, prose(n), n)
		assert.Equal(t, prose(n), strings.TrimSpace(prose(n)))
	}
}

func TestCountWords(t *testing.T) {
	assert.Equal(t, 0, CountWords(""))
	assert.Equal(t, 0, CountWords("   \n\t"))
	assert.Equal(t, 3, CountWords("  one two\nthree  "))
}

func TestCollector_Add(t *testing.T) {
	c := NewCollector()

	sample, err := c.Add("  " + prose(120) + "\n")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, sample.ID)
	assert.Equal(t, prose(120), sample.Content)
	assert.Equal(t, CountWords(prose(120)), sample.WordCount)
	assert.False(t, sample.CapturedAt.IsZero())
	assert.Equal(t, 1, c.Len())
}

func TestCollector_RejectsShortSample(t *testing.T) {
	c := NewCollector()
	_, err := c.Add(prose(150))
	require.NoError(t, err)
	before := c.Samples()

	tests := []string{
		"",
		prose(99),
		"   " + prose(99) + "          ",
	}
	for _, text := range tests {
		_, err := c.Add(text)
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, MsgSampleTooShort, validationErr.Message)
		assert.Equal(t, before, c.Samples())
	}
}

func TestCollector_CountsCharactersNotBytes(t *testing.T) {
	c := NewCollector()
	_, err := c.Add(strings.Repeat("é", 100))
	assert.NoError(t, err)
}

func TestCollector_RejectsSixthSample(t *testing.T) {
	c := NewCollector()
	for i := 0; i < MaxSamples; i++ {
		_, err := c.Add(prose(100 + i))
		require.NoError(t, err)
	}

	// Capacity is checked first, so even a too-short sample gets the capacity message.
	for _, text := range []string{prose(200), "short"} {
		_, err := c.Add(text)
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, MsgTooManySamples, validationErr.Message)
		assert.Equal(t, MaxSamples, c.Len())
	}
}

func TestCollector_RemoveKeepsOrder(t *testing.T) {
	c := NewCollector()
	a, _ := c.Add(prose(110))
	b, _ := c.Add(prose(120))
	d, _ := c.Add(prose(130))

	assert.True(t, c.Remove(b.ID))
	assert.False(t, c.Remove(b.ID))
	assert.Equal(t, []string{a.Content, d.Content}, c.Contents())
}

func TestCollector_ReadyAndReset(t *testing.T) {
	c := NewCollector()
	_, _ = c.Add(prose(110))

	err := c.Ready()
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, MsgNeedMoreSamples, validationErr.Message)

	_, _ = c.Add(prose(120))
	assert.NoError(t, c.Ready())

	c.Reset()
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Contents())
}

func TestCollector_SamplesIsACopy(t *testing.T) {
	c := NewCollector()
	_, _ = c.AddFrom(prose(110), "https://example.com/blog")

	got := c.Samples()
	got[0].Content = "changed"
	assert.Equal(t, prose(110), c.Samples()[0].Content)
	assert.Equal(t, "https://example.com/blog", c.Samples()[0].Source)
}
