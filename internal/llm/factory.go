package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// New builds the configured provider wrapped as
// retry -> logging -> vendor, so every attempt is recorded.
func New(ctx context.Context, cfg Config, sink EventSink, logger *zap.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderMock:
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithRetry(WithLogging(base, sink, logger), cfg.Retry), nil
}
