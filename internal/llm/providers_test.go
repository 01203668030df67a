package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// replyServer answers every request with status and body and keeps the last
// request body.
func replyServer(t *testing.T, status int, body any) (*httptest.Server, *[]byte) {
	t.Helper()
	var last []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		last, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv, &last
}

func openAIReply(content, finish string) map[string]any {
	return map[string]any{
		"id":     "chatcmpl-1",
		"object": "chat.completion",
		"model":  "gpt-4o-mini",
		"choices": []any{map[string]any{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 20, "completion_tokens": 8, "total_tokens": 28},
	}
}

func anthropicReply(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_1",
		"type":        "message",
		"role":        "assistant",
		"model":       "claude-haiku-4-5-20251001",
		"content":     []any{map[string]any{"type": "text", "text": text}},
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 30, "output_tokens": 9},
	}
}

var explainReq = UserPrompt("Be kind.", "Explain 3 + 4", testSchema, 200)

func TestOpenAIProvider_Generate(t *testing.T) {
	srv, sent := replyServer(t, http.StatusOK, openAIReply(`{"explanation":"3 and 4 make 7"}`, "stop"))
	p, err := NewOpenAIProvider(ProviderConfig{APIKey: "k", Model: "gpt-4o-mini", BaseURL: srv.URL + "/v1"})
	require.NoError(t, err)

	resp, err := p.Generate(context.Background(), explainReq)
	require.NoError(t, err)
	assert.JSONEq(t, `{"explanation":"3 and 4 make 7"}`, string(resp.Content))
	assert.Equal(t, usage(20, 8), resp.Usage)
	assert.Equal(t, StopEnd, resp.StopReason)

	var body struct {
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
		ResponseFormat struct {
			Type string `json:"type"`
		} `json:"response_format"`
	}
	require.NoError(t, json.Unmarshal(*sent, &body))
	require.Len(t, body.Messages, 2)
	assert.Equal(t, "system", body.Messages[0].Role)
	assert.Equal(t, "json_schema", body.ResponseFormat.Type)
}

func TestOpenAIProvider_Errors(t *testing.T) {
	apiErr := map[string]any{"error": map[string]any{"message": "slow down", "type": "rate_limit"}}

	t.Run("rate limit", func(t *testing.T) {
		srv, _ := replyServer(t, http.StatusTooManyRequests, apiErr)
		p, _ := NewOpenAIProvider(ProviderConfig{APIKey: "k", Model: "m", BaseURL: srv.URL + "/v1"})
		_, err := p.Generate(context.Background(), explainReq)
		var rl *ErrRateLimit
		assert.ErrorAs(t, err, &rl)
	})

	t.Run("server error", func(t *testing.T) {
		srv, _ := replyServer(t, http.StatusInternalServerError, apiErr)
		p, _ := NewOpenAIProvider(ProviderConfig{APIKey: "k", Model: "m", BaseURL: srv.URL + "/v1"})
		_, err := p.Generate(context.Background(), explainReq)
		var unavailable *ErrProviderUnavailable
		assert.ErrorAs(t, err, &unavailable)
	})

	t.Run("truncated", func(t *testing.T) {
		srv, _ := replyServer(t, http.StatusOK, openAIReply(`{"explanation":"3 and`, "length"))
		p, _ := NewOpenAIProvider(ProviderConfig{APIKey: "k", Model: "m", BaseURL: srv.URL + "/v1"})
		_, err := p.Generate(context.Background(), explainReq)
		var mt *ErrMaxTokensExceeded
		assert.ErrorAs(t, err, &mt)
	})

	t.Run("schema mismatch", func(t *testing.T) {
		srv, _ := replyServer(t, http.StatusOK, openAIReply(`{"stars":3}`, "stop"))
		p, _ := NewOpenAIProvider(ProviderConfig{APIKey: "k", Model: "m", BaseURL: srv.URL + "/v1"})
		_, err := p.Generate(context.Background(), explainReq)
		var invalid *ErrInvalidResponse
		assert.ErrorAs(t, err, &invalid)
	})
}

func TestOpenRouterProvider_DefaultsBaseURL(t *testing.T) {
	p, err := NewOpenRouterProvider(ProviderConfig{APIKey: "k", Model: "google/gemini-2.0-flash-001"})
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenRouter, p.Name())

	_, err = NewOpenAIProvider(ProviderConfig{})
	assert.Error(t, err)
}

func TestAnthropicProvider_Generate(t *testing.T) {
	srv, sent := replyServer(t, http.StatusOK, anthropicReply(`{"explanation":"count on from 4"}`, "end_turn"))
	p, err := NewAnthropicProvider(ProviderConfig{APIKey: "k", Model: "claude-haiku", BaseURL: srv.URL})
	require.NoError(t, err)
	assert.Equal(t, "claude-haiku-4-5-20251001", p.ModelID())

	resp, err := p.Generate(context.Background(), explainReq)
	require.NoError(t, err)
	assert.JSONEq(t, `{"explanation":"count on from 4"}`, string(resp.Content))
	assert.Equal(t, usage(30, 9), resp.Usage)

	var body struct {
		Model     string `json:"model"`
		MaxTokens int    `json:"max_tokens"`
	}
	require.NoError(t, json.Unmarshal(*sent, &body))
	assert.Equal(t, "claude-haiku-4-5-20251001", body.Model)
	assert.Equal(t, 200, body.MaxTokens)
}

func TestAnthropicProvider_Errors(t *testing.T) {
	apiErr := map[string]any{"type": "error", "error": map[string]any{"type": "rate_limit_error", "message": "slow down"}}

	srv, _ := replyServer(t, http.StatusTooManyRequests, apiErr)
	p, _ := NewAnthropicProvider(ProviderConfig{APIKey: "k", Model: "m", BaseURL: srv.URL})
	_, err := p.Generate(context.Background(), explainReq)
	var rl *ErrRateLimit
	assert.ErrorAs(t, err, &rl)

	srv, _ = replyServer(t, http.StatusOK, anthropicReply(`{"expl`, "max_tokens"))
	p, _ = NewAnthropicProvider(ProviderConfig{APIKey: "k", Model: "m", BaseURL: srv.URL})
	_, err = p.Generate(context.Background(), explainReq)
	var mt *ErrMaxTokensExceeded
	assert.ErrorAs(t, err, &mt)

	_, err = NewAnthropicProvider(ProviderConfig{})
	assert.Error(t, err)
}

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(testSchema.Definition)
	assert.Equal(t, geminiType("object"), s.Type)
	assert.Equal(t, []string{"explanation"}, s.Required)
	require.Contains(t, s.Properties, "stars")
	assert.Equal(t, geminiType("integer"), s.Properties["stars"].Type)

	assert.Equal(t, []string{"a", "b"}, stringList([]any{"a", 1, "b"}))
	assert.Nil(t, stringList(42))
}

func TestResolveModel(t *testing.T) {
	assert.Equal(t, "gemini-2.5-flash", resolveModel("gemini-flash", geminiAliases))
	assert.Equal(t, "gemini-2.0-flash", resolveModel("gemini-2.0-flash", geminiAliases))
}

func TestClassifyStatus(t *testing.T) {
	base := errors.New("x")
	var rl *ErrRateLimit
	assert.ErrorAs(t, classifyStatus(http.StatusTooManyRequests, base), &rl)
	var unavailable *ErrProviderUnavailable
	assert.ErrorAs(t, classifyStatus(http.StatusBadGateway, base), &unavailable)
	assert.ErrorIs(t, classifyStatus(http.StatusBadGateway, base), base)
}
