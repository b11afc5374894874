package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/BerylCAtieno/startup-pack-agent/internal/apierr"
	"google.golang.org/genai"
)

const DefaultGenAIModel = "gemini-2.5-flash"

type GenAIConfig struct {
	APIKey      string
	Model       string
	UseVertexAI bool
	Project     string
	Location    string

	// BaseURL and HTTPClient override the SDK defaults when set.
	BaseURL    string
	HTTPClient *http.Client
}

// GenAIClient talks to Gemini through google.golang.org/genai, which also
// covers Vertex AI deployments.
type GenAIClient struct {
	cli   *genai.Client
	model string
}

func NewGenAIClient(ctx context.Context, cfg GenAIConfig) (*GenAIClient, error) {
	cc := &genai.ClientConfig{APIKey: cfg.APIKey, Backend: genai.BackendGeminiAPI}
	if cfg.UseVertexAI {
		cc = &genai.ClientConfig{
			Project:  cfg.Project,
			Location: cfg.Location,
			Backend:  genai.BackendVertexAI,
		}
	}
	cc.HTTPOptions.BaseURL = cfg.BaseURL
	cc.HTTPClient = cfg.HTTPClient
	cli, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	model := cfg.Model
	if model == "" {
		model = DefaultGenAIModel
	}
	return &GenAIClient{cli: cli, model: model}, nil
}

func (g *GenAIClient) Name() string { return "genai:" + g.model }
func (g *GenAIClient) Close() error { return nil }

func (g *GenAIClient) GenerateJSON(ctx context.Context, system, prompt string) (string, error) {
	temperature := DefaultTemperature
	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
			Temperature:       &temperature,
			ResponseMIMEType:  jsonMIMEType,
		},
	)
	if err != nil {
		return "", apierr.Upstream("failed to generate content", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", apierr.Upstream("genai returned no candidates", ErrNoContent)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", apierr.Upstream("genai returned empty content", ErrNoContent)
	}
	return sb.String(), nil
}
