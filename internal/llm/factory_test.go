package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/BerylCAtieno/startup-pack-agent/internal/apierr"
	"github.com/BerylCAtieno/startup-pack-agent/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReportsMissingCredentials(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.LLMConfig
		setting string
	}{
		{"gemini", config.LLMConfig{Provider: config.ProviderGemini}, "GEMINI_API_KEY"},
		{"genai", config.LLMConfig{Provider: config.ProviderGenAI}, "GOOGLE_API_KEY"},
		{"vertex", config.LLMConfig{Provider: config.ProviderGenAI, UseVertexAI: true}, "GOOGLE_CLOUD_PROJECT"},
		{"openai", config.LLMConfig{Provider: config.ProviderOpenAI}, "OPENAI_API_KEY"},
		{"unknown", config.LLMConfig{Provider: "bard"}, "LLM_PROVIDER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(context.Background(), tt.cfg)

			assert.Nil(t, c)
			require.Error(t, err)
			assert.True(t, errors.Is(err, apierr.ErrConfiguration))
			assert.Contains(t, err.Error(), tt.setting)
		})
	}
}

func TestNewBuildsOpenAIClient(t *testing.T) {
	c, err := New(context.Background(), config.LLMConfig{
		Provider:      config.ProviderOpenAI,
		OpenAIAPIKey:  "sk-test",
		OpenAIBaseURL: "https://api.openai.com/v1",
	})
	require.NoError(t, err)

	assert.Equal(t, "openai:gpt-4o-mini", c.Name())
}

func TestUnavailableReturnsConstructionError(t *testing.T) {
	cause := apierr.Configuration("GEMINI_API_KEY", nil)
	u := Unavailable{Provider: config.ProviderGemini, Err: cause}

	_, err := u.GenerateJSON(context.Background(), "s", "p")

	assert.Same(t, cause, err)
	assert.Equal(t, "unavailable:gemini", u.Name())
}

func TestNewIgnoresOpenAIModelForGemini(t *testing.T) {
	c, err := New(context.Background(), config.LLMConfig{
		Provider:     config.ProviderGemini,
		GeminiAPIKey: "k",
		OpenAIModel:  "gpt-4o-mini",
	})
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, "gemini:"+DefaultGeminiModel, c.Name())
}

func TestNewOpenAIModelSelection(t *testing.T) {
	base := config.LLMConfig{Provider: config.ProviderOpenAI, OpenAIAPIKey: "sk-test", OpenAIBaseURL: "https://api.openai.com/v1"}

	fromOpenAIModel := base
	fromOpenAIModel.OpenAIModel = "gpt-4.1-mini"
	c, err := New(context.Background(), fromOpenAIModel)
	require.NoError(t, err)
	assert.Equal(t, "openai:gpt-4.1-mini", c.Name())

	generic := fromOpenAIModel
	generic.Model = "gpt-4o"
	c, err = New(context.Background(), generic)
	require.NoError(t, err)
	assert.Equal(t, "openai:gpt-4o", c.Name())
}
