package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/copydesk/internal/brief"
	"github.com/jonathan/copydesk/internal/kvstore"
	"github.com/jonathan/copydesk/internal/types"
	"github.com/jonathan/copydesk/internal/voice"
)

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// run executes cmd and feeds the wizard's own result messages back into m.
// Timer-driven messages such as spinner ticks are dropped.
func run(m tea.Model, cmd tea.Cmd) tea.Model {
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			m = run(m, c)
		}
	case analysisDone, profileSaved, briefSubmitted:
		m, _ = m.Update(msg)
	}
	return m
}

func sampleText(n int) string {
	const text = "Our team writes plainly and ships often, and we like to show our work. "
	return strings.Repeat(text, n/len(text)+1)[:n]
}

var analysis = &types.AnalysisResult{
	Profile: types.VoiceProfile{
		Name:       "Confident Mentor",
		Tone:       types.ToneScores{Formality: 4, Confidence: 9},
		Vocabulary: types.Vocabulary{SignatureWords: []string{"ship", "clarity"}},
	},
	Confidence:  82,
	Suggestions: []string{"Add a customer story"},
}

func okAnalyzer(got *[]string) Analyzer {
	return AnalyzerFunc(func(_ context.Context, samples []string) (*types.AnalysisResult, error) {
		*got = samples
		return analysis, nil
	})
}

func addSample(t *testing.T, m *VoiceModel, text string) {
	t.Helper()
	m.editor.SetValue(text)
	m.Update(key(tea.KeyCtrlS))
}

func TestVoiceModel_HappyPath(t *testing.T) {
	var sent []string
	store := voice.NewProfileStore(kvstore.NewMemory())
	m := NewVoiceModel(context.Background(), okAnalyzer(&sent), store, nil)

	assert.Contains(t, m.View(), "Brand Voice")
	m.Update(key(tea.KeyEnter))
	require.Equal(t, voice.StepSamples, m.State().Step)

	addSample(t, m, sampleText(150))
	addSample(t, m, sampleText(220))
	require.Len(t, m.State().Samples, 2)
	assert.Empty(t, m.editor.Value())

	_, cmd := m.Update(key(tea.KeyCtrlR))
	assert.Equal(t, voice.StepAnalyzing, m.State().Step)
	assert.Contains(t, m.View(), "Analyzing")

	run(m, cmd)
	require.Equal(t, voice.StepReview, m.State().Step)
	assert.Equal(t, []string{sampleText(150), sampleText(220)}, sent)
	view := m.View()
	assert.Contains(t, view, "Confident Mentor")
	assert.Contains(t, view, "82% confidence")
	assert.Contains(t, view, "Add a customer story")

	_, cmd = m.Update(key(tea.KeyEnter))
	run(m, cmd)
	assert.Equal(t, voice.StepComplete, m.State().Step)
	require.NotNil(t, m.Saved())

	saved, err := store.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "Confident Mentor", saved.Result.Profile.Name)
	assert.Contains(t, m.View(), "Voice profile saved.")
}

func TestVoiceModel_ReviewShowsScoresAsReturned(t *testing.T) {
	fractional := AnalyzerFunc(func(context.Context, []string) (*types.AnalysisResult, error) {
		return &types.AnalysisResult{
			Profile:    types.VoiceProfile{Name: "Warm Guide", Tone: types.ToneScores{Formality: 7.5}},
			Confidence: 87.5,
		}, nil
	})
	m := NewVoiceModel(context.Background(), fractional, nil, nil)
	m.Update(key(tea.KeyEnter))
	addSample(t, m, sampleText(150))
	addSample(t, m, sampleText(180))

	_, cmd := m.Update(key(tea.KeyCtrlR))
	run(m, cmd)

	require.Equal(t, voice.StepReview, m.State().Step)
	view := m.View()
	assert.Contains(t, view, "87.5% confidence")
	assert.NotContains(t, view, "88%")
	assert.Contains(t, view, "7.5/10")
}

func TestVoiceModel_RejectsShortSample(t *testing.T) {
	m := NewVoiceModel(context.Background(), okAnalyzer(new([]string)), nil, nil)
	m.Update(key(tea.KeyEnter))

	addSample(t, m, "too short")

	assert.Empty(t, m.State().Samples)
	assert.Contains(t, m.View(), voice.MsgSampleTooShort)
	assert.Equal(t, "too short", m.editor.Value())
}

func TestVoiceModel_AnalyzeNeedsTwoSamples(t *testing.T) {
	m := NewVoiceModel(context.Background(), okAnalyzer(new([]string)), nil, nil)
	m.Update(key(tea.KeyEnter))
	addSample(t, m, sampleText(150))

	_, cmd := m.Update(key(tea.KeyCtrlR))

	assert.Nil(t, cmd)
	assert.Equal(t, voice.StepSamples, m.State().Step)
	assert.Contains(t, m.View(), voice.MsgNeedMoreSamples)
}

func TestVoiceModel_FailureKeepsSamples(t *testing.T) {
	failing := AnalyzerFunc(func(context.Context, []string) (*types.AnalysisResult, error) {
		return nil, &voice.QuotaError{Cause: errors.New("quota")}
	})
	m := NewVoiceModel(context.Background(), failing, nil, nil)
	m.Update(key(tea.KeyEnter))
	addSample(t, m, sampleText(150))
	addSample(t, m, sampleText(180))

	_, cmd := m.Update(key(tea.KeyCtrlR))
	run(m, cmd)

	assert.Equal(t, voice.StepSamples, m.State().Step)
	assert.Len(t, m.State().Samples, 2)
	assert.Contains(t, m.View(), "contact support")
}

func TestVoiceModel_RemoveSample(t *testing.T) {
	m := NewVoiceModel(context.Background(), okAnalyzer(new([]string)), nil, nil)
	m.Update(key(tea.KeyEnter))
	addSample(t, m, sampleText(150))
	addSample(t, m, sampleText(180))

	m.Update(key(tea.KeyTab))
	require.True(t, m.listFocus)
	m.Update(key(tea.KeyUp))
	m.Update(runes("d"))

	require.Len(t, m.State().Samples, 1)
	assert.Equal(t, sampleText(180), m.State().Samples[0].Content)
}

func TestVoiceModel_RetakeAndRestart(t *testing.T) {
	m := NewVoiceModel(context.Background(), okAnalyzer(new([]string)), nil, nil)
	m.Update(key(tea.KeyEnter))
	addSample(t, m, sampleText(150))
	addSample(t, m, sampleText(180))
	_, cmd := m.Update(key(tea.KeyCtrlR))
	run(m, cmd)
	require.Equal(t, voice.StepReview, m.State().Step)

	m.Update(runes("r"))
	assert.Equal(t, voice.StepSamples, m.State().Step)
	assert.Len(t, m.State().Samples, 2)

	_, cmd = m.Update(key(tea.KeyCtrlR))
	run(m, cmd)
	m.Update(key(tea.KeyEnter))
	require.Equal(t, voice.StepComplete, m.State().Step)

	m.Update(runes("n"))
	assert.Equal(t, voice.StepIntro, m.State().Step)
}

func TestVoiceModel_CtrlCQuits(t *testing.T) {
	m := NewVoiceModel(context.Background(), okAnalyzer(new([]string)), nil, nil)

	_, cmd := m.Update(key(tea.KeyCtrlC))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func newBriefModel(t *testing.T, store brief.DraftStore) *BriefModel {
	t.Helper()
	w, err := brief.NewWizard(context.Background(), store, brief.NewLogSubmitter())
	require.NoError(t, err)
	return NewBriefModel(context.Background(), w, nil)
}

// fill sets the inputs of the current step and presses enter on the last one.
func fill(m *BriefModel, values map[string]string) {
	for i, field := range m.fields {
		m.inputs[i].SetValue(values[field])
	}
	m.setFocus(len(m.inputs) - 1)
	m.Update(key(tea.KeyEnter))
}

func TestBriefModel_SubmitsBrief(t *testing.T) {
	m := newBriefModel(t, brief.NewDraftStore(kvstore.NewMemory()))
	assert.Contains(t, m.View(), "New Content Brief")

	fill(m, map[string]string{"projectTitle": "Launch post", "contentType": "blog_post"})
	require.Equal(t, brief.StepAudience, m.Draft().Step)

	fill(m, map[string]string{"targetAudience": "Ops leads", "goals": "Beta sign-ups"})
	require.Equal(t, brief.StepDetails, m.Draft().Step)

	fill(m, map[string]string{"keywords": "freight, ai", "wordCount": "1200", "contactEmail": "pm@example.com"})
	require.Equal(t, brief.StepReview, m.Draft().Step)
	view := m.View()
	assert.Contains(t, view, "Launch post")
	assert.Contains(t, view, "freight, ai")

	_, cmd := m.Update(key(tea.KeyEnter))
	assert.Contains(t, m.View(), "Submitting...")
	run(m, cmd)

	assert.Equal(t, brief.StepSubmitted, m.Draft().Step)
	assert.Contains(t, m.View(), "Brief received.")
	assert.Contains(t, m.View(), brief.StatusReceived)
}

func TestBriefModel_StepValidation(t *testing.T) {
	m := newBriefModel(t, brief.NewDraftStore(kvstore.NewMemory()))

	fill(m, map[string]string{"projectTitle": "", "contentType": "poem"})

	assert.Equal(t, brief.StepProject, m.Draft().Step)
	assert.Equal(t, "Project title is required", m.fieldErrs["projectTitle"])
	assert.Contains(t, m.fieldErrs["contentType"], "Choose one of")
	assert.Contains(t, m.View(), "Project title is required")
}

func TestBriefModel_WordCountMustBeNumber(t *testing.T) {
	m := newBriefModel(t, brief.NewDraftStore(kvstore.NewMemory()))
	fill(m, map[string]string{"projectTitle": "Launch post", "contentType": "blog_post"})
	fill(m, map[string]string{"targetAudience": "Ops leads", "goals": "Beta sign-ups"})

	fill(m, map[string]string{"wordCount": "lots", "contactEmail": "pm@example.com"})

	assert.Equal(t, brief.StepDetails, m.Draft().Step)
	assert.Equal(t, "Enter a whole number", m.fieldErrs["wordCount"])
}

func TestBriefModel_ResumesDraft(t *testing.T) {
	store := brief.NewDraftStore(kvstore.NewMemory())
	m := newBriefModel(t, store)
	fill(m, map[string]string{"projectTitle": "Launch post", "contentType": "blog_post"})
	m.inputs[0].SetValue("Ops leads")
	m.Update(key(tea.KeyEsc))
	require.Equal(t, brief.StepProject, m.Draft().Step)

	resumed := newBriefModel(t, store)

	assert.Equal(t, brief.StepProject, resumed.Draft().Step)
	assert.Equal(t, "Launch post", resumed.inputs[0].Value())
	assert.Equal(t, "Ops leads", resumed.Draft().Brief.TargetAudience)
	assert.Contains(t, resumed.View(), "draft saved")
}

func TestBriefModel_Discard(t *testing.T) {
	store := brief.NewDraftStore(kvstore.NewMemory())
	m := newBriefModel(t, store)
	fill(m, map[string]string{"projectTitle": "Launch post", "contentType": "blog_post"})

	m.Update(key(tea.KeyCtrlX))

	assert.Equal(t, brief.StepProject, m.Draft().Step)
	assert.Empty(t, m.inputs[0].Value())
	saved, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, saved)
}

func TestStyles_Progress(t *testing.T) {
	s := DefaultStyles()
	out := s.progress([]string{"One", "Two", "Three"}, 1)
	assert.Contains(t, out, "One")
	assert.Contains(t, out, "Two")
	assert.Equal(t, 2, strings.Count(out, " > "))
}
