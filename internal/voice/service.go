package voice

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/jonathan/copydesk/internal/llm"
	"github.com/jonathan/copydesk/internal/prompts"
	"github.com/jonathan/copydesk/internal/schemas"
	"github.com/jonathan/copydesk/internal/types"
)

var tracer = otel.Tracer("github.com/jonathan/copydesk/internal/voice")

// AnalyzeRequest is the body of POST /api/analyze-voice.
// Samples stays raw so that non-array and mixed-type payloads can be judged
// in the same order the endpoint reports them.
type AnalyzeRequest struct {
	Samples json.RawMessage `json:"samples"`
}

// NewAnalyzeRequest builds a request body for the given sample texts.
func NewAnalyzeRequest(samples []string) AnalyzeRequest {
	if samples == nil {
		samples = []string{}
	}
	raw, _ := json.Marshal(samples)
	return AnalyzeRequest{Samples: raw}
}

// ValidateRequest applies the endpoint checks in order and returns the
// samples that will be analyzed. Entries that are not strings or are shorter
// than MinSampleLength after trimming are dropped; at least MinSamples must
// survive.
func ValidateRequest(req AnalyzeRequest) ([]string, error) {
	var entries []any
	trimmed := strings.TrimSpace(string(req.Samples))
	if trimmed == "" || trimmed == "null" || !strings.HasPrefix(trimmed, "[") {
		return nil, &ValidationError{Message: MsgSamplesRequired}
	}
	if err := json.Unmarshal(req.Samples, &entries); err != nil {
		return nil, &ValidationError{Message: MsgSamplesRequired}
	}

	if len(entries) < MinSamples {
		return nil, &ValidationError{Message: MsgAtLeastTwoSamples}
	}
	if len(entries) > MaxSamples {
		return nil, &ValidationError{Message: MsgTooManySamples}
	}

	samples := make([]string, 0, len(entries))
	for _, entry := range entries {
		text, ok := entry.(string)
		if !ok || !meetsMinLength(text) {
			continue
		}
		samples = append(samples, text)
	}
	if len(samples) < MinSamples {
		return nil, &ValidationError{Message: MsgEachSampleTooShort}
	}
	return samples, nil
}

// Analysis is a successful model response. Raw is the cleaned model output,
// passed through to the caller byte for byte.
type Analysis struct {
	Raw json.RawMessage
}

// Result decodes Raw into an AnalysisResult.
func (a *Analysis) Result() (*types.AnalysisResult, error) {
	var result types.AnalysisResult
	if err := json.Unmarshal(a.Raw, &result); err != nil {
		return nil, fmt.Errorf("decoding analysis: %w", err)
	}
	return &result, nil
}

// Service runs voice analysis against an LLM. A nil client means the
// service has no credentials; every valid request then fails as ConfigError.
type Service struct {
	client llm.Client
	tier   llm.ModelTier
}

// NewService creates a Service using the advanced model tier.
func NewService(client llm.Client) *Service {
	return &Service{client: client, tier: llm.TierAdvanced}
}

// Analyze validates req, asks the model for a voice profile and checks that
// the reply has the profile, tone and vocabulary objects the wizard renders.
// The call is not retried and has no deadline beyond ctx.
func (s *Service) Analyze(ctx context.Context, req AnalyzeRequest) (*Analysis, error) {
	samples, err := ValidateRequest(req)
	if err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "voice.Analyze")
	defer span.End()
	span.SetAttributes(attribute.Int("voice.sample_count", len(samples)))

	analysis, err := s.analyze(ctx, samples)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, PublicMessage(err))
		return nil, err
	}
	return analysis, nil
}

// AnalyzeSamples runs Analyze for in-process callers and decodes the result.
func (s *Service) AnalyzeSamples(ctx context.Context, samples []string) (*types.AnalysisResult, error) {
	analysis, err := s.Analyze(ctx, NewAnalyzeRequest(samples))
	if err != nil {
		return nil, err
	}
	return analysis.Result()
}

func (s *Service) analyze(ctx context.Context, samples []string) (*Analysis, error) {
	if s.client == nil {
		return nil, &ConfigError{Message: "no LLM client configured"}
	}

	prompt, err := BuildPrompt(samples)
	if err != nil {
		return nil, err
	}

	text, err := s.client.GenerateJSON(ctx, prompt, s.tier)
	if err != nil {
		return nil, classifyUpstream(err)
	}

	cleaned := llm.CleanJSONBlock(text)
	if !json.Valid([]byte(cleaned)) {
		return nil, &ResponseError{Message: "model output is not valid JSON"}
	}
	if err := schemas.Validate(schemas.VoiceAnalysis, []byte(cleaned)); err != nil {
		return nil, &ResponseError{Message: "model output is missing required fields", Cause: err}
	}

	return &Analysis{Raw: json.RawMessage(cleaned)}, nil
}

// BuildPrompt embeds the samples, numbered from 1, into the analysis prompt.
func BuildPrompt(samples []string) (string, error) {
	template, err := prompts.Get("voice.json", "analyze-samples")
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for i, sample := range samples {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "SAMPLE %d:\n%s", i+1, strings.TrimSpace(sample))
	}

	return prompts.Format(template, map[string]string{
		"SampleCount": strconv.Itoa(len(samples)),
		"Samples":     sb.String(),
	}), nil
}
