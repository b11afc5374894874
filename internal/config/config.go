package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	ProviderGemini = "gemini"
	ProviderGenAI  = "genai"
	ProviderOpenAI = "openai"
)

type Config struct {
	Port              string
	Env               string
	LLM               LLMConfig
	FeedbackURL       string
	MarketProfileFile string
	AllowedOrigins    []string
}

type LLMConfig struct {
	Provider string
	Model    string

	GeminiAPIKey string

	// google.golang.org/genai settings.
	GoogleAPIKey   string
	UseVertexAI    bool
	GoogleProject  string
	GoogleLocation string

	OpenAIAPIKey  string
	OpenAIBaseURL string

	// OpenAIModel applies only to the openai provider. LLM_MODEL wins over it.
	OpenAIModel string
}

// Load reads .env when present and then the process environment. Missing
// optional values fall back to defaults; required ones are checked where
// they are used so the server can still start and report them per request.
func Load() *Config {
	_ = godotenv.Load()

	port := strings.TrimPrefix(strings.TrimSpace(os.Getenv("PORT")), ":")
	if port == "" {
		port = "8080"
	}

	return &Config{
		Port:              port,
		Env:               firstNonEmpty(os.Getenv("APP_ENV"), "development"),
		LLM:               loadLLMConfig(),
		FeedbackURL:       strings.TrimSpace(os.Getenv("GAS_FEEDBACK_URL")),
		MarketProfileFile: strings.TrimSpace(os.Getenv("MARKET_PROFILE_FILE")),
		AllowedOrigins:    splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
	}
}

func loadLLMConfig() LLMConfig {
	return LLMConfig{
		Provider:       strings.ToLower(firstNonEmpty(os.Getenv("LLM_PROVIDER"), ProviderGemini)),
		Model:          strings.TrimSpace(os.Getenv("LLM_MODEL")),
		GeminiAPIKey:   strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GoogleAPIKey:   firstNonEmpty(os.Getenv("GOOGLE_API_KEY"), os.Getenv("GEMINI_API_KEY")),
		UseVertexAI:    boolEnv("GOOGLE_GENAI_USE_VERTEXAI", false),
		GoogleProject:  strings.TrimSpace(os.Getenv("GOOGLE_CLOUD_PROJECT")),
		GoogleLocation: firstNonEmpty(os.Getenv("GOOGLE_CLOUD_LOCATION"), "us-central1"),
		OpenAIAPIKey:   strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIBaseURL:  firstNonEmpty(os.Getenv("OPENAI_BASE_URL"), "https://api.openai.com/v1"),
		OpenAIModel:    strings.TrimSpace(os.Getenv("OPENAI_MODEL")),
	}
}

func (c *Config) IsProduction() bool {
	switch strings.ToLower(c.Env) {
	case "prod", "production":
		return true
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func boolEnv(name string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
