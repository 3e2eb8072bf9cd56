package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnthropicProvider(t *testing.T, handler http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := anthropic.NewClient(
		option.WithAPIKey("test-key"),
		option.WithBaseURL(server.URL),
		option.WithMaxRetries(0),
	)
	return &AnthropicProvider{client: &client, model: anthropicModels["claude-haiku"]}
}

func anthropicMessage(stop string, texts ...string) map[string]any {
	blocks := make([]map[string]any, len(texts))
	for i, text := range texts {
		blocks[i] = map[string]any{"type": "text", "text": text}
	}
	return map[string]any{
		"id":          "msg_test",
		"type":        "message",
		"role":        "assistant",
		"content":     blocks,
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
	}
}

func TestAnthropicProvider_JoinsTextBlocks(t *testing.T) {
	var got map[string]any
	p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		replyWith(http.StatusOK, anthropicMessage("end_turn", `{"concepts":[],`, `"quiz":[]}`))(w, r)
	})

	resp, err := p.Generate(context.Background(), Request{
		System:   "You are an autonomous knowledge extractor and quiz builder.",
		Messages: []Message{{Role: RoleUser, Content: "EDUCATIONAL_TEXT: glaciers"}},
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{"concepts":[],"quiz":[]}`, string(resp.Content))
	assert.Equal(t, Usage{InputTokens: 50, OutputTokens: 30, TotalTokens: 80}, resp.Usage)
	assert.Equal(t, StopEnd, resp.StopReason)
	assert.Equal(t, "claude-haiku-4-5-20251001", resp.Model)
	assert.EqualValues(t, defaultAnthropicMaxTokens, got["max_tokens"], "unset MaxTokens gets a default")
}

func TestAnthropicProvider_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		check   func(t *testing.T, err error)
	}{
		{
			name: "rate limited",
			handler: replyWith(http.StatusTooManyRequests, map[string]any{
				"type":  "error",
				"error": map[string]any{"type": "rate_limit_error", "message": "Rate limit exceeded"},
			}),
			check: func(t *testing.T, err error) {
				var rl *ErrRateLimit
				assert.ErrorAs(t, err, &rl)
			},
		},
		{
			name: "overloaded",
			handler: replyWith(http.StatusInternalServerError, map[string]any{
				"type":  "error",
				"error": map[string]any{"type": "api_error", "message": "Internal server error"},
			}),
			check: func(t *testing.T, err error) {
				var unavail *ErrProviderUnavailable
				assert.ErrorAs(t, err, &unavail)
			},
		},
		{
			name:    "max tokens",
			handler: replyWith(http.StatusOK, anthropicMessage("max_tokens", `{"concepts":[`)),
			check: func(t *testing.T, err error) {
				var maxTok *ErrMaxTokensExceeded
				require.ErrorAs(t, err, &maxTok)
				assert.Equal(t, `{"concepts":[`, string(maxTok.Content))
			},
		},
		{
			name:    "no text blocks",
			handler: replyWith(http.StatusOK, anthropicMessage("end_turn")),
			check: func(t *testing.T, err error) {
				var inv *ErrInvalidResponse
				assert.ErrorAs(t, err, &inv)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestAnthropicProvider(t, tt.handler)
			_, err := p.Generate(context.Background(), Request{
				Messages:  []Message{{Role: RoleUser, Content: "EDUCATIONAL_TEXT: glaciers"}},
				MaxTokens: 100,
			})
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestAnthropicModelMapping(t *testing.T) {
	assert.Equal(t, "claude-sonnet-4-20250514", resolveModel("claude-sonnet", anthropicModels))
	assert.Equal(t, "claude-haiku-4-5-20251001", resolveModel("claude-haiku", anthropicModels))
	assert.Equal(t, "claude-opus-4-1", resolveModel("claude-opus-4-1", anthropicModels))
}
