// Package llm talks to hosted language models. Every provider returns
// JSON that has been checked against the request's schema.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates a response for a request.
type Provider interface {
	// Generate sends req and returns the model's output. When req.Schema is
	// set the returned Content is JSON that validates against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model the provider sends requests to.
	ModelID() string
}

// Named is implemented by providers that report their vendor name.
type Named interface {
	Name() string
}

// Request is a single-turn or multi-turn prompt.
type Request struct {
	System      string
	Messages    []Message
	Schema      *Schema
	MaxTokens   int
	Temperature float64
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// UserPrompt builds a request with one user message.
func UserPrompt(system, prompt string, schema *Schema, maxTokens int) Request {
	return Request{
		System:    system,
		Messages:  []Message{{Role: RoleUser, Content: prompt}},
		Schema:    schema,
		MaxTokens: maxTokens,
	}
}

// Schema describes the JSON object a response must contain.
type Schema struct {
	// Name is a kebab-case identifier, also the validator cache key.
	Name        string
	Description string
	Definition  map[string]any
}

// StopReason says why generation ended.
type StopReason string

const (
	StopEnd       StopReason = "end"
	StopMaxTokens StopReason = "max_tokens"
)

// Response is a provider's output.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason StopReason
}

// Decode unmarshals Content into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Content, v); err != nil {
		return &ErrInvalidResponse{Content: r.Content, Err: err}
	}
	return nil
}

// Usage is the token count of one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

func usage(in, out int) Usage {
	return Usage{InputTokens: in, OutputTokens: out, TotalTokens: in + out}
}

// resolveModel maps a short alias to a full model ID. Unknown names pass
// through unchanged.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
