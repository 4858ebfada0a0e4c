package llm

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	defaultOpenRouterModel   = "deepseek/deepseek-r1:free"
)

// openRouterFinishReasons maps the OpenAI-compatible finish-reason
// vocabulary onto the shared one.
var openRouterFinishReasons = map[openai.FinishReason]FinishReason{
	openai.FinishReasonStop:          FinishStop,
	openai.FinishReasonLength:        FinishLength,
	openai.FinishReasonContentFilter: FinishSafety,
}

// OpenRouterProvider implements Provider against the OpenRouter API.
// OpenRouter is OpenAI-compatible, so the OpenAI SDK is reused with a
// custom base URL.
type OpenRouterProvider struct {
	client *openai.Client
	model  string
}

// NewOpenRouterProvider creates an OpenRouter provider. Fails at
// construction when no API key is configured.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter: %w", ErrUnauthenticated)
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = defaultOpenRouterBaseURL
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = defaultOpenRouterModel
	}

	return &OpenRouterProvider{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
	}, nil
}

func (p *OpenRouterProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	chatReq := openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
		Temperature:      float32(req.Temperature),
		MaxTokens:        req.MaxTokens,
		TopP:             0.9,
		FrequencyPenalty: 0.2,
		PresencePenalty:  0.2,
	}

	// OpenRouter routes to many models with uneven json_schema support,
	// so the weaker JSON-object mode is the most that can be asked for.
	if req.Schema != nil {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, mapOpenRouterError(err)
	}

	if len(resp.Choices) == 0 {
		return &Response{Text: "", FinishReason: FinishUnknown, Model: resp.Model}, nil
	}

	choice := resp.Choices[0]
	finish, ok := openRouterFinishReasons[choice.FinishReason]
	if !ok {
		finish = FinishUnknown
	}

	return &Response{
		Text:         choice.Message.Content,
		FinishReason: finish,
		Model:        resp.Model,
		Usage: Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

func (p *OpenRouterProvider) ModelID() string {
	return p.model
}

func mapOpenRouterError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &ErrUpstream{
			StatusCode: apiErr.HTTPStatusCode,
			Body:       apiErr.Message,
			Err:        err,
		}
	}
	return &ErrUpstream{Body: err.Error(), Err: err}
}
