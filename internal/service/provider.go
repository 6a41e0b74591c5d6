package service

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/diacare/backend/config"
)

// Mode selects how the provider is asked to answer.
type Mode int

const (
	// ModeText asks for free text.
	ModeText Mode = iota
	// ModeJSON constrains the reply to a single JSON object.
	ModeJSON
)

func (m Mode) String() string {
	if m == ModeJSON {
		return "json"
	}
	return "text"
}

// Provider sends one system/user conversation to a text generation model and
// returns the completion text.
type Provider interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, mode Mode) (string, error)
}

// OpenAIProvider talks to any OpenAI compatible chat completions endpoint.
// It is immutable after construction and safe for concurrent use.
type OpenAIProvider struct {
	client      openai.Client
	model       string
	temperature float64
	maxTokens   int64
}

// NewOpenAIProvider builds a provider from the LLM configuration. Retries are
// disabled: every call is a single round trip.
func NewOpenAIProvider(cfg config.LLMConfig) *OpenAIProvider {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	for k, v := range cfg.Headers {
		opts = append(opts, option.WithHeader(k, v))
	}

	return &OpenAIProvider{
		client:      openai.NewClient(opts...),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}
}

// Complete implements Provider. An empty string is returned when the model
// produced no choices.
func (p *OpenAIProvider) Complete(ctx context.Context, systemPrompt, userPrompt string, mode Mode) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		Temperature: openai.Float(p.temperature),
	}
	if p.maxTokens > 0 {
		params.MaxTokens = openai.Int(p.maxTokens)
	}
	if mode == ModeJSON {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
