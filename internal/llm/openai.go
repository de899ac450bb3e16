package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// OpenAIClient implements Client for OpenAI chat completions
type OpenAIClient struct {
	client openai.Client
	config *Config
}

// NewOpenAIClient creates a new OpenAI client. The SDK's automatic retries are
// disabled: a failed generation is reported to the caller as-is.
func NewOpenAIClient(config *Config, apiKey string, opts ...option.RequestOption) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if config == nil {
		config = DefaultOpenAIConfig()
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	reqOpts = append(reqOpts, opts...)

	return &OpenAIClient{
		client: openai.NewClient(reqOpts...),
		config: config,
	}, nil
}

// GenerateContent generates text content using the specified model tier
func (c *OpenAIClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return c.complete(ctx, prompt, tier, false)
}

// GenerateJSON generates a JSON object using the specified model tier
func (c *OpenAIClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	text, err := c.complete(ctx, prompt, tier, true)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

func (c *OpenAIClient) complete(ctx context.Context, prompt string, tier ModelTier, jsonMode bool) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(modelName),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature:         openai.Float(float64(c.config.temperature())),
		MaxCompletionTokens: openai.Int(int64(c.config.maxOutputTokens())),
	}
	if jsonMode {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", normalizeOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("no content in response")
	}
	return content, nil
}

// GetModel returns the model name for a tier
func (c *OpenAIClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close is a no-op; the HTTP transport is shared.
func (c *OpenAIClient) Close() error {
	return nil
}
