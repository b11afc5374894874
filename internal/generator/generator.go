// Package generator runs one generation request end to end: prompt, model
// call, normalization, in that order.
package generator

import (
	"context"
	"strings"
	"time"

	"github.com/BerylCAtieno/startup-pack-agent/internal/apierr"
	"github.com/BerylCAtieno/startup-pack-agent/internal/llm"
	"github.com/BerylCAtieno/startup-pack-agent/internal/logger"
	"github.com/BerylCAtieno/startup-pack-agent/internal/models"
	"github.com/BerylCAtieno/startup-pack-agent/internal/normalizer"
	"github.com/BerylCAtieno/startup-pack-agent/internal/prompt"
)

type Service struct {
	client  llm.Client
	builder *prompt.Builder
	log     *logger.Logger
}

func NewService(client llm.Client, builder *prompt.Builder, log *logger.Logger) *Service {
	return &Service{client: client, builder: builder, log: log}
}

// Generate produces a fresh pack for req. Errors are always *apierr.Error.
func (s *Service) Generate(ctx context.Context, req models.GenerationRequest) (*models.StartupPack, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}
	if s.client == nil {
		return nil, apierr.Configuration("LLM_PROVIDER", nil)
	}

	text := s.builder.Build(req.Idea, req.Description)

	start := time.Now()
	raw, err := s.client.GenerateJSON(ctx, prompt.SystemInstruction, text)
	if err != nil {
		s.log.Error("generation call failed", "provider", s.client.Name(), "error", err)
		if _, ok := apierr.KindOf(err); ok {
			return nil, err
		}
		return nil, apierr.Upstream("failed to generate startup pack", err)
	}
	s.log.Info("generation call finished",
		"provider", s.client.Name(),
		"prompt_chars", len(text),
		"response_chars", len(raw),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	pack, err := normalizer.Normalize(raw)
	if err != nil {
		s.log.Error("model response could not be parsed", "provider", s.client.Name(), "error", err, "response_head", logger.Truncate(raw, 200))
		return nil, err
	}
	return pack, nil
}

// Validate checks that both request fields are non-empty after trimming.
func Validate(req models.GenerationRequest) error {
	if strings.TrimSpace(req.Idea) == "" || strings.TrimSpace(req.Description) == "" {
		return apierr.Validation("Idea and description are required")
	}
	return nil
}
