package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

var anthropicAliases = map[string]string{
	"claude-haiku":  "claude-haiku-4-5-20251001",
	"claude-sonnet": "claude-sonnet-4-5-20250929",
}

// AnthropicProvider calls the Messages API.
type AnthropicProvider struct {
	client anthropic.Client
	model  string
}

// NewAnthropicProvider builds a provider from cfg. BaseURL is optional.
func NewAnthropicProvider(cfg ProviderConfig) (*AnthropicProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("anthropic API key is required")
	}
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		// Retries are handled by RetryProvider.
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &AnthropicProvider{
		client: anthropic.NewClient(opts...),
		model:  resolveModel(cfg.Model, anthropicAliases),
	}, nil
}

func (p *AnthropicProvider) Name() string    { return ProviderAnthropic }
func (p *AnthropicProvider) ModelID() string { return p.model }

func (p *AnthropicProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: int64(req.MaxTokens),
	}
	for _, m := range req.Messages {
		block := anthropic.NewTextBlock(m.Content)
		if m.Role == RoleAssistant {
			params.Messages = append(params.Messages, anthropic.NewAssistantMessage(block))
		} else {
			params.Messages = append(params.Messages, anthropic.NewUserMessage(block))
		}
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}
	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(req.Temperature)
	}
	if req.Schema != nil {
		params.OutputConfig = anthropic.OutputConfigParam{
			Format: anthropic.JSONOutputFormatParam{Schema: req.Schema.Definition},
		}
	}

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return nil, classifyStatus(apiErr.StatusCode, err)
		}
		return nil, &ErrProviderUnavailable{Err: err}
	}

	var text string
	found := false
	for _, block := range msg.Content {
		if block.Type == "text" {
			text, found = block.Text, true
			break
		}
	}
	if !found {
		return nil, &ErrInvalidResponse{Err: fmt.Errorf("no text block in response")}
	}

	return finish(req, &Response{
		Content:    json.RawMessage(text),
		Usage:      usage(int(msg.Usage.InputTokens), int(msg.Usage.OutputTokens)),
		Model:      string(msg.Model),
		StopReason: stopReason(string(msg.StopReason) == "max_tokens"),
	})
}

func stopReason(truncated bool) StopReason {
	if truncated {
		return StopMaxTokens
	}
	return StopEnd
}

// finish applies the checks shared by every provider: truncation and
// schema validation.
func finish(req Request, resp *Response) (*Response, error) {
	if resp.StopReason == StopMaxTokens {
		return nil, &ErrMaxTokensExceeded{Content: resp.Content}
	}
	if err := validateResponse(req.Schema, resp.Content); err != nil {
		return nil, err
	}
	return resp, nil
}
