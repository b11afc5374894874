// Package app wires configuration, the generation pipeline, the feedback
// relay and the HTTP router together.
package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/BerylCAtieno/startup-pack-agent/internal/config"
	"github.com/BerylCAtieno/startup-pack-agent/internal/feedback"
	"github.com/BerylCAtieno/startup-pack-agent/internal/generator"
	"github.com/BerylCAtieno/startup-pack-agent/internal/llm"
	"github.com/BerylCAtieno/startup-pack-agent/internal/logger"
	"github.com/BerylCAtieno/startup-pack-agent/internal/prompt"
)

type App struct {
	Log       *logger.Logger
	Cfg       *config.Config
	LLM       llm.Client
	Generator *generator.Service
	Relay     *feedback.Relay
	Router    *gin.Engine
}

// New builds the application. A missing model credential does not stop
// startup: the client is replaced by llm.Unavailable and each generation
// request reports the configuration error. An unreadable market profile
// does stop startup.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	profile, err := prompt.LoadProfile(cfg.MarketProfileFile)
	if err != nil {
		return nil, fmt.Errorf("load market profile: %w", err)
	}
	log.Info("market profile loaded", "region", profile.Region, "language", profile.Language, "currency", profile.Currency)

	client, err := llm.New(ctx, cfg.LLM)
	if err != nil {
		log.Error("LLM client unavailable; generation requests will fail", "provider", cfg.LLM.Provider, "error", err)
		client = llm.Unavailable{Provider: cfg.LLM.Provider, Err: err}
	} else {
		log.Info("LLM client ready", "provider", client.Name())
	}

	if cfg.FeedbackURL == "" {
		log.Warn("GAS_FEEDBACK_URL is not set; feedback requests will fail")
	}

	a := &App{
		Log:       log,
		Cfg:       cfg,
		LLM:       client,
		Generator: generator.NewService(client, prompt.NewBuilder(profile), log),
		Relay:     feedback.NewRelay(cfg.FeedbackURL, nil, log),
	}
	a.Router = a.newRouter()
	return a, nil
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.LLM != nil {
		if err := a.LLM.Close(); err != nil {
			a.Log.Warn("failed to close LLM client", "error", err)
		}
	}
	a.Log.Sync()
}
