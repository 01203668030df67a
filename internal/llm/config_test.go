package llm

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFrom_Explicit(t *testing.T) {
	cfg, err := ConfigFrom(map[string]string{
		"KIDBOARD_LLM_PROVIDER":       "openai",
		"KIDBOARD_OPENAI_API_KEY":     "sk-test",
		"KIDBOARD_OPENAI_BASE_URL":    "http://localhost:8080/v1",
		"KIDBOARD_LLM_RETRY_ATTEMPTS": "5",
	})
	require.NoError(t, err)

	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, ProviderConfig{APIKey: "sk-test", Model: "gpt-4o-mini", BaseURL: "http://localhost:8080/v1"}, cfg.Selected())
	assert.Equal(t, 5, cfg.Retry.MaxAttempts)
	assert.Equal(t, time.Second, cfg.Retry.InitialWait)
	assert.Equal(t, 20*time.Second, cfg.Timeout)
	assert.NoError(t, cfg.Validate())
}

func TestConfigFrom_Discovers(t *testing.T) {
	cfg, err := ConfigFrom(map[string]string{
		"ANTHROPIC_API_KEY": "a-key",
		"OPENAI_API_KEY":    "o-key",
	})
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, cfg.Provider, "OpenAI is checked before Anthropic")
	assert.Equal(t, "o-key", cfg.OpenAI.APIKey)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
}

func TestConfigFrom_NothingConfigured(t *testing.T) {
	cfg, err := ConfigFrom(map[string]string{})
	require.NoError(t, err)
	assert.False(t, cfg.Enabled())
	assert.True(t, errors.Is(cfg.Validate(), ErrNotConfigured))
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"mock needs no key", Config{Provider: ProviderMock}, false},
		{"anthropic missing key", Config{Provider: ProviderAnthropic}, true},
		{"gemini with key", Config{Provider: ProviderGemini, Gemini: ProviderConfig{APIKey: "k"}}, false},
		{"unknown", Config{Provider: "carrier-pigeon"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDiscoverConfig_None(t *testing.T) {
	_, ok := DiscoverConfig(map[string]string{"PATH": "/bin"})
	assert.False(t, ok)
}
