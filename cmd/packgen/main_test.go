package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/startup-pack-agent/internal/app"
	"github.com/BerylCAtieno/startup-pack-agent/internal/config"
	"github.com/BerylCAtieno/startup-pack-agent/internal/logger"
	"github.com/BerylCAtieno/startup-pack-agent/internal/models"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{Env: "test", LLM: config.LLMConfig{Provider: config.ProviderOpenAI}}
	application, err := app.New(context.Background(), cfg, logger.NewNop())
	require.NoError(t, err)
	srv := httptest.NewServer(application.Router)
	t.Cleanup(func() {
		srv.Close()
		application.Close()
	})
	return srv
}

func TestRootRegistersSubcommands(t *testing.T) {
	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"generate", "feedback", "smoke"})
}

func TestSmokePassesAgainstServerWithoutCredentials(t *testing.T) {
	srv := newTestServer(t)
	var out bytes.Buffer

	err := NewSmokeClient(srv.URL, &out, 5*time.Second).runAll(false)

	require.NoError(t, err, out.String())
	assert.Contains(t, out.String(), "Passed: 5")
	assert.Contains(t, out.String(), "Task state is 'input-required'")
}

func TestSmokeFailsGenerationWithoutCredentials(t *testing.T) {
	srv := newTestServer(t)
	var out bytes.Buffer

	err := NewSmokeClient(srv.URL, &out, 5*time.Second).runAll(true)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 smoke check(s) failed")
	assert.Contains(t, out.String(), "Expected state 'completed', got 'failed'")
}

func TestSmokeReportsUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	var out bytes.Buffer

	err := NewSmokeClient(url, &out, time.Second).runAll(false)

	require.Error(t, err)
	assert.Contains(t, out.String(), "Request failed")
}

func TestGenerateRejectsUnknownFormat(t *testing.T) {
	cmd := newGenerateCmd()
	cmd.SetArgs([]string{"--idea", "a", "--description", "b", "--format", "yaml"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown format "yaml"`)
}

func TestGenerateRequiresFlags(t *testing.T) {
	cmd := newGenerateCmd()
	cmd.SetArgs([]string{"--idea", "a"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "description")
}

func TestWritePack(t *testing.T) {
	pack := &models.StartupPack{
		BusinessModel: models.BusinessModel{Kind: models.BusinessModelNarrative},
		MVP:           "[Book]",
		Competitors:   []models.Competitor{},
		Hypothesis:    models.Hypothesis{Kind: models.HypothesisLegacy, Text: "h"},
	}

	var asJSON bytes.Buffer
	require.NoError(t, writePack(&asJSON, pack, &generateOptions{format: formatJSON}))
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(asJSON.Bytes(), &decoded))
	assert.Equal(t, "[Book]", decoded["mvp"])

	var raw bytes.Buffer
	require.NoError(t, writePack(&raw, pack, &generateOptions{idea: "Dogs", format: formatMarkdown, raw: true}))
	assert.True(t, strings.HasPrefix(raw.String(), "# Startup Pack: Dogs\n"))
}

func TestStyleMarkdownKeepsContent(t *testing.T) {
	out := styleMarkdown("# Title\n\nSome **bold** text\n")

	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "bold")
}
