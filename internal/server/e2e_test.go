package server

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/copydesk/internal/llm"
	"github.com/jonathan/copydesk/internal/voice"
)

func newHTTPTestServer(t *testing.T, s *Server) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

// runWizard drives the voice wizard through an analysis against a live server.
func runWizard(t *testing.T, analyzer *voice.Analyzer, samples ...string) voice.State {
	t.Helper()
	state, err := voice.Transition(voice.InitialState(), voice.Start{})
	require.NoError(t, err)
	for _, text := range samples {
		state, err = voice.Transition(state, voice.NewAddSample(text, ""))
		require.NoError(t, err)
	}

	state, err = voice.Transition(state, voice.Analyze{})
	require.NoError(t, err)
	require.Equal(t, voice.StepAnalyzing, state.Step)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	result, err := analyzer.Analyze(ctx, state.Contents())
	if err != nil {
		state, err = voice.Transition(state, voice.AnalysisFailed{Err: err})
	} else {
		state, err = voice.Transition(state, voice.AnalysisSucceeded{Result: *result})
	}
	require.NoError(t, err)
	return state
}

func TestEndToEnd_VoiceWizardReachesReview(t *testing.T) {
	model := &fakeLLM{response: analysisJSON}
	s := newTestServer(t, Deps{Voice: voice.NewService(model)})
	ts := newHTTPTestServer(t, s)

	state := runWizard(t, voice.NewAnalyzer(ts.URL, ts.Client()), prose(140), prose(200))

	require.Equal(t, voice.StepReview, state.Step)
	require.NotNil(t, state.Result)
	assert.Equal(t, "Confident Mentor", state.Result.Profile.Name)
	assert.Equal(t, 82.0, state.Result.Confidence)
	assert.Len(t, state.Samples, 2)
	assert.Empty(t, state.Error)
}

func TestEndToEnd_QuotaFailureKeepsSamples(t *testing.T) {
	model := &fakeLLM{err: &llm.APIError{Provider: llm.ProviderOpenAI, StatusCode: 429, Kind: llm.KindQuota}}
	s := newTestServer(t, Deps{Voice: voice.NewService(model)})
	ts := newHTTPTestServer(t, s)

	state := runWizard(t, voice.NewAnalyzer(ts.URL, ts.Client()), prose(140), prose(200))

	assert.Equal(t, voice.StepSamples, state.Step)
	assert.Len(t, state.Samples, 2)
	assert.Contains(t, state.Error, "contact support")
}

func TestEndToEnd_RateLimitHintReachesWizard(t *testing.T) {
	model := &fakeLLM{err: &llm.APIError{Provider: llm.ProviderGemini, StatusCode: 429, Kind: llm.KindRateLimit, RetryAfter: 30 * time.Second}}
	s := newTestServer(t, Deps{Voice: voice.NewService(model)})
	ts := newHTTPTestServer(t, s)

	state := runWizard(t, voice.NewAnalyzer(ts.URL, ts.Client()), prose(140), prose(200))

	assert.Equal(t, voice.StepSamples, state.Step)
	assert.Equal(t, "Too many requests. Please wait 30 seconds and try again.", state.Error)
}
