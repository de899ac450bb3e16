package voice

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/copydesk/internal/types"
)

var fixedTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func addEvent(text string) AddSample {
	return AddSample{ID: uuid.New(), Text: text, At: fixedTime}
}

// run applies events in order and fails the test on the first error.
func run(t *testing.T, events ...Event) State {
	t.Helper()
	s := InitialState()
	for _, e := range events {
		var err error
		s, err = Transition(s, e)
		require.NoError(t, err, "event %T", e)
	}
	return s
}

func TestWizard_HappyPath(t *testing.T) {
	result := types.AnalysisResult{
		Profile:    types.VoiceProfile{Name: "Confident Mentor"},
		Confidence: 82,
	}

	s := run(t, Start{}, addEvent(prose(140)), addEvent(prose(200)))
	assert.Equal(t, StepSamples, s.Step)
	assert.Equal(t, []string{prose(140), prose(200)}, s.Contents())

	s = run(t, Start{}, addEvent(prose(140)), addEvent(prose(200)), Analyze{})
	assert.Equal(t, StepAnalyzing, s.Step)

	s, err := Transition(s, AnalysisSucceeded{Result: result})
	require.NoError(t, err)
	assert.Equal(t, StepReview, s.Step)
	require.NotNil(t, s.Result)
	assert.Equal(t, "Confident Mentor", s.Result.Profile.Name)
	assert.Equal(t, 82.0, s.Result.Confidence)

	s, err = Transition(s, Accept{})
	require.NoError(t, err)
	assert.Equal(t, StepComplete, s.Step)
	assert.Len(t, s.Samples, 2)
}

func TestWizard_FailureReturnsToSamples(t *testing.T) {
	s := run(t, Start{}, addEvent(prose(140)), addEvent(prose(200)), Analyze{})
	before := s.Samples

	s, err := Transition(s, AnalysisFailed{Err: &QuotaError{}})
	require.NoError(t, err)
	assert.Equal(t, StepSamples, s.Step)
	assert.Equal(t, before, s.Samples)
	assert.Equal(t, UserMessage(&QuotaError{}), s.Error)

	// Adding a sample clears the error
	s, err = Transition(s, addEvent(prose(160)))
	require.NoError(t, err)
	assert.Empty(t, s.Error)
	assert.Len(t, s.Samples, 3)
}

func TestWizard_FailureWithUnknownError(t *testing.T) {
	s := run(t, Start{}, addEvent(prose(140)), addEvent(prose(200)), Analyze{})
	s, err := Transition(s, AnalysisFailed{Err: errors.New("eof")})
	require.NoError(t, err)
	assert.Equal(t, MsgAnalysisRetry, s.Error)

	s = run(t, Start{}, addEvent(prose(140)), addEvent(prose(200)), Analyze{})
	s, err = Transition(s, AnalysisFailed{})
	require.NoError(t, err)
	assert.Equal(t, MsgAnalysisRetry, s.Error)
}

func TestWizard_AnalyzeNeedsTwoSamples(t *testing.T) {
	s := run(t, Start{}, addEvent(prose(140)))

	next, err := Transition(s, Analyze{})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, MsgNeedMoreSamples, validationErr.Message)
	assert.Equal(t, s, next)
}

func TestWizard_DuplicateAnalyzeRejected(t *testing.T) {
	s := run(t, Start{}, addEvent(prose(140)), addEvent(prose(200)), Analyze{})

	next, err := Transition(s, Analyze{})
	var transErr *TransitionError
	require.ErrorAs(t, err, &transErr)
	assert.Equal(t, StepAnalyzing, transErr.From)
	assert.Equal(t, "analyze", transErr.Event)
	assert.Equal(t, s, next)
}

func TestWizard_SampleRulesApply(t *testing.T) {
	s := run(t, Start{})

	next, err := Transition(s, addEvent("too short"))
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, MsgSampleTooShort, validationErr.Message)
	assert.Equal(t, s, next)

	for i := 0; i < MaxSamples; i++ {
		s, err = Transition(s, addEvent(prose(100+i)))
		require.NoError(t, err)
	}
	_, err = Transition(s, addEvent(prose(300)))
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, MsgTooManySamples, validationErr.Message)
}

func TestWizard_TransitionDoesNotMutateInput(t *testing.T) {
	a, b := addEvent(prose(140)), addEvent(prose(200))
	s := run(t, Start{}, a, b)
	snapshot := append([]types.Sample(nil), s.Samples...)

	_, err := Transition(s, RemoveSample{ID: a.ID})
	require.NoError(t, err)
	_, err = Transition(s, addEvent(prose(150)))
	require.NoError(t, err)

	assert.Equal(t, snapshot, s.Samples)
}

func TestWizard_RemoveSample(t *testing.T) {
	a, b := addEvent(prose(140)), addEvent(prose(200))
	s := run(t, Start{}, a, b, RemoveSample{ID: a.ID})
	require.Len(t, s.Samples, 1)
	assert.Equal(t, b.ID, s.Samples[0].ID)
	assert.Equal(t, fixedTime, s.Samples[0].CapturedAt)
}

func TestWizard_RetakeAndRestart(t *testing.T) {
	s := run(t, Start{}, addEvent(prose(140)), addEvent(prose(200)), Analyze{},
		AnalysisSucceeded{Result: types.AnalysisResult{Confidence: 50}}, Retake{})
	assert.Equal(t, StepSamples, s.Step)
	assert.Nil(t, s.Result)
	assert.Len(t, s.Samples, 2)

	s, err := Transition(s, Restart{})
	require.NoError(t, err)
	assert.Equal(t, InitialState(), s)
}

func TestWizard_InvalidTransitions(t *testing.T) {
	tests := []struct {
		name  string
		state State
		event Event
	}{
		{"start twice", State{Step: StepSamples}, Start{}},
		{"add before start", InitialState(), addEvent(prose(140))},
		{"accept from samples", State{Step: StepSamples}, Accept{}},
		{"success without analyzing", State{Step: StepSamples}, AnalysisSucceeded{}},
		{"failure from review", State{Step: StepReview}, AnalysisFailed{}},
		{"remove while analyzing", State{Step: StepAnalyzing}, RemoveSample{}},
		{"retake from complete", State{Step: StepComplete}, Retake{}},
		{"nil event", InitialState(), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := Transition(tt.state, tt.event)
			var transErr *TransitionError
			require.ErrorAs(t, err, &transErr)
			assert.Equal(t, tt.state, next)
		})
	}
}
