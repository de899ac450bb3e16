// Package observability provides tracing setup and formatted output for
// verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"github.com/jonathan/copydesk/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most n runes, ending with "..." when cut.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// writeList appends up to limit items under a heading.
func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	for _, item := range items[:min(len(items), limit)] {
		fmt.Fprintf(sb, "  • %s\n", truncate(item, 50))
	}
	if len(items) > limit {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-limit)
	}
	sb.WriteString("\n")
}

// meter renders a 1-10 score as a ten-cell bar, rounding to whole cells.
func meter(score float64) string {
	cells := max(0, min(int(math.Round(score)), 10))
	return strings.Repeat("█", cells) + strings.Repeat("░", 10-cells)
}

// number prints f the way it arrived, without padding zeros.
func number(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// PrintSamples outputs the collected writing samples with their word counts.
func (p *Printer) PrintSamples(samples []types.Sample) {
	if len(samples) == 0 {
		return
	}

	var sb strings.Builder
	total := 0
	for i, s := range samples {
		total += s.WordCount
		fmt.Fprintf(&sb, "#%d  %s words", i+1, humanize.Comma(int64(s.WordCount)))
		if s.Source != "" {
			fmt.Fprintf(&sb, "  (%s)", s.Source)
		}
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "    %s\n", truncate(strings.Join(strings.Fields(s.Content), " "), 50))
	}
	fmt.Fprintf(&sb, "\nTotal: %s words", humanize.Comma(int64(total)))

	p.printBox(fmt.Sprintf("WRITING SAMPLES (%d)", len(samples)), sb.String())
}

// PrintAnalysis outputs a human-readable summary of a voice analysis.
func (p *Printer) PrintAnalysis(result *types.AnalysisResult) {
	if result == nil {
		return
	}
	profile := result.Profile

	var sb strings.Builder
	fmt.Fprintf(&sb, "Voice:       %s\n", profile.Name)
	fmt.Fprintf(&sb, "Confidence:  %s%%\n", number(result.Confidence))
	if profile.Description != "" {
		fmt.Fprintf(&sb, "\n%s\n", profile.Description)
	}
	sb.WriteString("\n")

	tone := profile.Tone
	for _, axis := range []struct {
		name  string
		score float64
	}{
		{"Formality", tone.Formality},
		{"Enthusiasm", tone.Enthusiasm},
		{"Confidence", tone.Confidence},
		{"Warmth", tone.Warmth},
		{"Humor", tone.Humor},
	} {
		fmt.Fprintf(&sb, "%-11s %s %2s\n", axis.name, meter(axis.score), number(axis.score))
	}
	sb.WriteString("\n")

	vocab := profile.Vocabulary
	fmt.Fprintf(&sb, "Vocabulary:  %s, %s jargon\n", vocab.Complexity, vocab.JargonLevel)
	fmt.Fprintf(&sb, "Sentences:   %s, %s paragraphs\n\n",
		profile.SentenceStructure.AverageLength, profile.SentenceStructure.ParagraphStyle)

	writeList(&sb, "Signature words", vocab.SignatureWords, maxItemsToShow)
	writeList(&sb, "Avoid", vocab.AvoidWords, 3)
	writeList(&sb, "Suggestions", result.Suggestions, 3)

	p.printBox("BRAND VOICE PROFILE", strings.TrimSuffix(sb.String(), "\n\n"))
}

// PrintBriefReceipt outputs the acknowledgement for a submitted brief.
func (p *Printer) PrintBriefReceipt(brief *types.Brief, receipt *types.BriefReceipt) {
	if receipt == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "ID:       %s\n", receipt.ID)
	fmt.Fprintf(&sb, "Status:   %s\n", receipt.Status)
	fmt.Fprintf(&sb, "Received: %s", receipt.SubmittedAt.Format("2006-01-02 15:04 MST"))
	if brief != nil {
		fmt.Fprintf(&sb, "\n\nProject:  %s\n", brief.ProjectTitle)
		fmt.Fprintf(&sb, "Type:     %s", strings.ReplaceAll(brief.ContentType, "_", " "))
		if brief.WordCount > 0 {
			fmt.Fprintf(&sb, "\nLength:   %s words", humanize.Comma(int64(brief.WordCount)))
		}
	}

	p.printBox("BRIEF SUBMITTED", sb.String())
}
