package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/BerylCAtieno/startup-pack-agent/internal/apierr"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const DefaultGeminiModel = "gemini-2.5-flash-lite"

type GeminiClient struct {
	client    *genai.Client
	modelName string
}

func NewGeminiClient(ctx context.Context, apiKey, modelName string, opts ...option.ClientOption) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	return &GeminiClient{client: client, modelName: modelName}, nil
}

func (g *GeminiClient) Name() string { return "gemini:" + g.modelName }

func (g *GeminiClient) Close() error {
	return g.client.Close()
}

// GenerateJSON builds a fresh model handle per call so no configuration is
// shared between concurrent requests.
func (g *GeminiClient) GenerateJSON(ctx context.Context, system, prompt string) (string, error) {
	model := g.client.GenerativeModel(g.modelName)
	model.SetTemperature(DefaultTemperature)
	model.ResponseMIMEType = jsonMIMEType
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", apierr.Upstream("failed to generate content", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", apierr.Upstream("gemini returned no candidates", ErrNoContent)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", apierr.Upstream("gemini returned empty content", ErrNoContent)
	}
	return sb.String(), nil
}
