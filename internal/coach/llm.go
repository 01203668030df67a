package coach

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/kidboard/internal/llm"
)

// Config holds generation settings for the LLM explainer.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the settings used by the quiz.
func DefaultConfig() Config {
	return Config{MaxTokens: 300, Temperature: 0.4}
}

// ExplanationSchema is the JSON shape requested from the model.
var ExplanationSchema = &llm.Schema{
	Name:        "addition-explanation",
	Description: "A short explanation of an addition mistake for a young child",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"explanation": map[string]any{"type": "string", "minLength": 1, "maxLength": 400},
			"tip":         map[string]any{"type": "string", "maxLength": 200},
			"cheer":       map[string]any{"type": "string", "maxLength": 120},
		},
		"required":             []string{"explanation", "tip", "cheer"},
		"additionalProperties": false,
	},
}

const systemPrompt = `You are a warm, patient math buddy for children aged 6 to 9. You explain addition mistakes in one or two short sentences using simple words. Never make the child feel bad.`

func userPrompt(in Input) string {
	return fmt.Sprintf(`The child was asked: What is %d + %d?
They answered %d. The correct answer is %d.

Explain how to find the right answer, give one short tip, and one cheerful sentence.
Use plain text digits only. No emoji.`, in.A, in.B, in.Submitted, in.Answer)
}

type explanationOutput struct {
	Explanation string `json:"explanation"`
	Tip         string `json:"tip"`
	Cheer       string `json:"cheer"`
}

// LLM asks a provider for the explanation and falls back to Local when the
// provider fails.
type LLM struct {
	provider llm.Provider
	cfg      Config
	fallback Explainer
	logger   *zap.Logger
}

// NewLLM creates an LLM explainer. logger may be nil.
func NewLLM(provider llm.Provider, cfg Config, logger *zap.Logger) *LLM {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LLM{provider: provider, cfg: cfg, fallback: Local{}, logger: logger}
}

func (e *LLM) Explain(ctx context.Context, in Input) (*Explanation, error) {
	out, err := e.generate(ctx, in)
	if err != nil {
		e.logger.Debug("llm explanation failed, using local", zap.Error(err))
		return e.fallback.Explain(ctx, in)
	}
	return out, nil
}

func (e *LLM) generate(ctx context.Context, in Input) (*Explanation, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeExplain)
	ctx = llm.WithSubject(ctx, llm.Subject{
		SessionID: in.SessionID,
		Question:  fmt.Sprintf("%d + %d", in.A, in.B),
		Answer:    in.Answer,
		Submitted: in.Submitted,
	})
	req := llm.UserPrompt(systemPrompt, userPrompt(in), ExplanationSchema, e.cfg.MaxTokens)
	req.Temperature = e.cfg.Temperature

	resp, err := e.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("explanation generation: %w", err)
	}

	var out explanationOutput
	if err := resp.Decode(&out); err != nil {
		return nil, err
	}
	return &Explanation{
		Text:   out.Explanation,
		Tip:    out.Tip,
		Cheer:  out.Cheer,
		Source: SourceLLM,
	}, nil
}
