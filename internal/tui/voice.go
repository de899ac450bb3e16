package tui

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/jonathan/copydesk/internal/types"
	"github.com/jonathan/copydesk/internal/voice"
)

// Analyzer runs a voice analysis. *voice.Analyzer satisfies it.
type Analyzer interface {
	Analyze(ctx context.Context, samples []string) (*types.AnalysisResult, error)
}

// AnalyzerFunc adapts a function to Analyzer.
type AnalyzerFunc func(ctx context.Context, samples []string) (*types.AnalysisResult, error)

// Analyze calls f.
func (f AnalyzerFunc) Analyze(ctx context.Context, samples []string) (*types.AnalysisResult, error) {
	return f(ctx, samples)
}

// ProfileSaver keeps an accepted profile.
type ProfileSaver interface {
	SaveState(ctx context.Context, s voice.State) (*types.SavedProfile, error)
}

// analysisDone reports the outcome of an analysis request.
type analysisDone struct {
	result *types.AnalysisResult
	err    error
}

// profileSaved reports the outcome of saving an accepted profile.
type profileSaved struct {
	saved *types.SavedProfile
	err   error
}

// VoiceModel is the bubbletea model for the brand-voice wizard.
type VoiceModel struct {
	ctx      context.Context
	styles   *Styles
	analyzer Analyzer
	saver    ProfileSaver

	state voice.State
	err   error // last rejected event, cleared on the next accepted one

	editor    textarea.Model
	spinner   spinner.Model
	listFocus bool
	selected  int

	saved *types.SavedProfile
	width int
}

// NewVoiceModel creates the wizard on its intro screen. saver may be nil.
func NewVoiceModel(ctx context.Context, analyzer Analyzer, saver ProfileSaver, s *Styles) *VoiceModel {
	if s == nil {
		s = DefaultStyles()
	}

	editor := textarea.New()
	editor.Placeholder = "Paste a blog post, newsletter or landing page (100+ characters)"
	editor.ShowLineNumbers = false
	editor.CharLimit = 0
	editor.SetWidth(72)
	editor.SetHeight(8)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Subtitle

	return &VoiceModel{
		ctx:      ctx,
		styles:   s,
		analyzer: analyzer,
		saver:    saver,
		state:    voice.InitialState(),
		editor:   editor,
		spinner:  sp,
		width:    80,
	}
}

// State returns the current wizard state.
func (m *VoiceModel) State() voice.State {
	return m.state
}

// Saved returns the stored profile once the user has accepted one.
func (m *VoiceModel) Saved() *types.SavedProfile {
	return m.saved
}

// Init implements tea.Model.
func (m *VoiceModel) Init() tea.Cmd {
	return nil
}

// apply runs an event through the wizard and records a rejection.
func (m *VoiceModel) apply(e voice.Event) bool {
	next, err := voice.Transition(m.state, e)
	if err != nil {
		m.err = err
		return false
	}
	m.state = next
	m.err = nil
	if m.selected >= len(m.state.Samples) {
		m.selected = max(0, len(m.state.Samples)-1)
	}
	return true
}

// Update implements tea.Model.
func (m *VoiceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.editor.SetWidth(min(72, max(20, msg.Width-4)))
		return m, nil

	case analysisDone:
		if msg.err != nil {
			m.apply(voice.AnalysisFailed{Err: msg.err})
			return m, m.editor.Focus()
		}
		m.apply(voice.AnalysisSucceeded{Result: *msg.result})
		return m, nil

	case profileSaved:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.saved = msg.saved
		return m, nil

	case spinner.TickMsg:
		if m.state.Step != voice.StepAnalyzing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m.handleKey(msg)
	}

	if m.state.Step == voice.StepSamples && !m.listFocus {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *VoiceModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state.Step {
	case voice.StepIntro:
		switch msg.String() {
		case "enter":
			m.apply(voice.Start{})
			return m, m.editor.Focus()
		case "q", "esc":
			return m, tea.Quit
		}

	case voice.StepSamples:
		return m.handleSamplesKey(msg)

	case voice.StepReview:
		switch msg.String() {
		case "enter", "a":
			if m.apply(voice.Accept{}) {
				return m, m.save()
			}
		case "r":
			if m.apply(voice.Retake{}) {
				m.listFocus = false
				return m, m.editor.Focus()
			}
		}

	case voice.StepComplete:
		switch msg.String() {
		case "enter", "q", "esc":
			return m, tea.Quit
		case "n":
			m.apply(voice.Restart{})
			m.saved = nil
		}
	}
	return m, nil
}

func (m *VoiceModel) handleSamplesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		text := m.editor.Value()
		if m.apply(voice.NewAddSample(text, "")) {
			m.editor.Reset()
			m.selected = len(m.state.Samples) - 1
		}
		return m, nil

	case "ctrl+r":
		if !m.apply(voice.Analyze{}) {
			return m, nil
		}
		m.editor.Blur()
		return m, tea.Batch(m.spinner.Tick, m.analyze())

	case "tab":
		m.listFocus = !m.listFocus && len(m.state.Samples) > 0
		if m.listFocus {
			m.editor.Blur()
			return m, nil
		}
		return m, m.editor.Focus()

	case "esc":
		return m, tea.Quit
	}

	if m.listFocus {
		switch msg.String() {
		case "up", "k":
			m.selected = max(0, m.selected-1)
		case "down", "j":
			m.selected = min(len(m.state.Samples)-1, m.selected+1)
		case "d", "delete", "backspace":
			if m.selected < len(m.state.Samples) {
				m.apply(voice.RemoveSample{ID: m.state.Samples[m.selected].ID})
			}
			if len(m.state.Samples) == 0 {
				m.listFocus = false
				return m, m.editor.Focus()
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

// analyze returns a command that runs the analysis for the current samples.
func (m *VoiceModel) analyze() tea.Cmd {
	samples := m.state.Contents()
	return func() tea.Msg {
		result, err := m.analyzer.Analyze(m.ctx, samples)
		return analysisDone{result: result, err: err}
	}
}

// save returns a command that stores the accepted profile.
func (m *VoiceModel) save() tea.Cmd {
	if m.saver == nil {
		return nil
	}
	state := m.state
	return func() tea.Msg {
		saved, err := m.saver.SaveState(m.ctx, state)
		return profileSaved{saved: saved, err: err}
	}
}

// View implements tea.Model.
func (m *VoiceModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Brand Voice"))
	b.WriteString("\n\n")
	b.WriteString(m.renderProgress())
	b.WriteString("\n\n")

	if m.state.Error != "" {
		b.WriteString(m.styles.Error.Render(m.state.Error))
		b.WriteString("\n\n")
	}
	if m.err != nil {
		b.WriteString(m.styles.Error.Render(m.err.Error()))
		b.WriteString("\n\n")
	}

	switch m.state.Step {
	case voice.StepIntro:
		b.WriteString("Teach Copydesk how your brand sounds.\n")
		b.WriteString(fmt.Sprintf("Add %d to %d samples of your writing, each at least %d characters.\n\n",
			voice.MinSamples, voice.MaxSamples, voice.MinSampleLength))
		b.WriteString(m.styles.Help.Render("enter: start • q: quit"))
	case voice.StepSamples:
		b.WriteString(m.renderSamples())
	case voice.StepAnalyzing:
		b.WriteString(m.spinner.View())
		b.WriteString(" Analyzing your writing...")
	case voice.StepReview:
		b.WriteString(m.renderResult())
		b.WriteString("\n")
		b.WriteString(m.styles.Help.Render("enter: accept • r: retake with different samples • ctrl+c: quit"))
	case voice.StepComplete:
		b.WriteString(m.styles.Success.Render("Voice profile saved."))
		if m.saved != nil {
			b.WriteString(m.styles.Muted.Render(" " + humanize.Time(m.saved.SavedAt)))
		}
		b.WriteString("\n\n")
		b.WriteString(m.renderResult())
		b.WriteString("\n")
		b.WriteString(m.styles.Help.Render("enter: done • n: start over"))
	}

	return b.String()
}

func (m *VoiceModel) renderProgress() string {
	current := 0
	switch m.state.Step {
	case voice.StepSamples:
		current = 1
	case voice.StepAnalyzing:
		current = 2
	case voice.StepReview:
		current = 3
	case voice.StepComplete:
		current = 4
	}
	return m.styles.progress([]string{"Intro", "Samples", "Analyze", "Review", "Done"}, current)
}

func (m *VoiceModel) renderSamples() string {
	var b strings.Builder

	b.WriteString(m.styles.Subtitle.Render(fmt.Sprintf("Samples (%d/%d)", len(m.state.Samples), voice.MaxSamples)))
	b.WriteString("\n")
	if len(m.state.Samples) == 0 {
		b.WriteString(m.styles.Muted.Render("No samples yet."))
		b.WriteString("\n")
	}
	for i, s := range m.state.Samples {
		indicator := "  "
		if m.listFocus && i == m.selected {
			indicator = "> "
		}
		line := fmt.Sprintf("%s%d. %s (%s words)", indicator, i+1, preview(s.Content, 48), humanize.Comma(int64(s.WordCount)))
		if m.listFocus && i == m.selected {
			line = m.styles.Selected.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(m.styles.Box.Render(m.editor.View()))
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(fmt.Sprintf("%d characters", len([]rune(strings.TrimSpace(m.editor.Value()))))))
	b.WriteString("\n\n")

	help := "ctrl+s: add sample • ctrl+r: analyze • tab: manage samples • esc: quit"
	if m.listFocus {
		help = "↑/↓: select • d: remove • tab: back to editor • ctrl+r: analyze"
	}
	b.WriteString(m.styles.Help.Render(help))
	return b.String()
}

func (m *VoiceModel) renderResult() string {
	r := m.state.Result
	if r == nil {
		return ""
	}
	p := r.Profile

	var b strings.Builder
	b.WriteString(m.styles.Subtitle.Render(p.Name))
	b.WriteString(m.styles.Muted.Render("  " + formatScore(r.Confidence) + "% confidence"))
	b.WriteString("\n")
	if p.Description != "" {
		b.WriteString(p.Description)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for _, axis := range []struct {
		name  string
		score float64
	}{
		{"Formality", p.Tone.Formality},
		{"Enthusiasm", p.Tone.Enthusiasm},
		{"Confidence", p.Tone.Confidence},
		{"Warmth", p.Tone.Warmth},
		{"Humor", p.Tone.Humor},
	} {
		cells := max(0, min(int(math.Round(axis.score)), 10))
		b.WriteString(fmt.Sprintf("%-11s %s%s %s/10\n", axis.name,
			m.styles.Selected.Render(strings.Repeat("■", cells)),
			m.styles.Muted.Render(strings.Repeat("□", 10-cells)), formatScore(axis.score)))
	}

	if words := p.Vocabulary.SignatureWords; len(words) > 0 {
		b.WriteString("\nSignature words: ")
		b.WriteString(strings.Join(words, ", "))
		b.WriteString("\n")
	}
	if len(r.Suggestions) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.Subtitle.Render("Suggestions"))
		b.WriteString("\n")
		for _, s := range r.Suggestions {
			b.WriteString("• " + s + "\n")
		}
	}
	return b.String()
}

// preview flattens whitespace and shortens text to n runes.
func preview(text string, n int) string {
	text = strings.Join(strings.Fields(text), " ")
	r := []rune(text)
	if len(r) <= n {
		return text
	}
	return string(r[:n-1]) + "…"
}

// formatScore prints a score exactly as the analysis returned it.
func formatScore(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
