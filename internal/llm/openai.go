package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

var openaiModels = map[string]string{
	"gpt-mini": "gpt-4o-mini",
	"gpt":      "gpt-4o",
}

var openaiRoles = map[Role]string{
	RoleUser:      openai.ChatMessageRoleUser,
	RoleAssistant: openai.ChatMessageRoleAssistant,
}

// OpenAIProvider speaks the chat completions API. Groq and OpenRouter
// embed it with their own base URLs.
type OpenAIProvider struct {
	client *openai.Client
	model  string
	// strictSchema sends schemas as json_schema. Without it schema
	// requests go out as json_object and are only validated locally.
	strictSchema bool
}

func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("missing OpenAI API key")
	}
	return newCompatProvider(cfg.APIKey, cfg.BaseURL, resolveModel(cfg.Model, openaiModels), true), nil
}

// newCompatProvider targets any OpenAI-compatible endpoint. An empty
// baseURL means api.openai.com.
func newCompatProvider(apiKey, baseURL, model string, strict bool) *OpenAIProvider {
	cc := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cc.BaseURL = baseURL
	}
	return &OpenAIProvider{client: openai.NewClientWithConfig(cc), model: model, strictSchema: strict}
}

func (p *OpenAIProvider) ModelID() string { return p.model }

func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	format, err := p.responseFormat(req)
	if err != nil {
		return nil, err
	}

	msgs := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.System})
	}
	for _, m := range req.Messages {
		role, ok := openaiRoles[m.Role]
		if !ok {
			role = openai.ChatMessageRoleUser
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:               p.model,
		Messages:            msgs,
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         float32(req.Temperature),
		ResponseFormat:      format,
	})
	if err != nil {
		return nil, mapOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, &ErrInvalidResponse{Err: errors.New("completion has no choices")}
	}

	choice := resp.Choices[0]
	if refusal := choice.Message.Refusal; refusal != "" {
		return nil, &ErrInvalidResponse{Content: json.RawMessage(refusal), Err: errors.New("model refused the request")}
	}

	stop := StopEnd
	if choice.FinishReason == openai.FinishReasonLength {
		stop = StopMaxTokens
	}
	usage := Usage{
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
		TotalTokens:  resp.Usage.TotalTokens,
	}
	model := resp.Model
	if model == "" {
		model = p.model
	}
	return complete(req, choice.Message.Content, usage, model, stop)
}

// responseFormat is nil for free-form text.
func (p *OpenAIProvider) responseFormat(req Request) (*openai.ChatCompletionResponseFormat, error) {
	if req.Schema == nil && !req.JSON {
		return nil, nil
	}
	if req.Schema == nil || !p.strictSchema {
		return &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject}, nil
	}

	def, err := json.Marshal(req.Schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema %s: %w", req.Schema.Name, err)
	}
	return &openai.ChatCompletionResponseFormat{
		Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
		JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
			Name:   req.Schema.Name,
			Schema: json.RawMessage(def),
			Strict: true,
		},
	}, nil
}

func mapOpenAIError(err error) error {
	var (
		apiErr *openai.APIError
		reqErr *openai.RequestError
	)
	switch {
	case errors.As(err, &apiErr):
		return mapStatus(apiErr.HTTPStatusCode, err)
	case errors.As(err, &reqErr):
		return mapStatus(reqErr.HTTPStatusCode, err)
	}
	return &ErrProviderUnavailable{Err: err}
}

// mapStatus sorts an HTTP failure from any vendor SDK into ErrRateLimit
// or ErrProviderUnavailable.
func mapStatus(status int, err error) error {
	if status == http.StatusTooManyRequests {
		return &ErrRateLimit{Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}
