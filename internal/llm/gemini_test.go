package llm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/BerylCAtieno/startup-pack-agent/internal/apierr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

// geminiServer answers every generateContent call with body.
func geminiServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, ":generateContent"), r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestGeminiClient(t *testing.T, srv *httptest.Server) *GeminiClient {
	t.Helper()
	c, err := NewGeminiClient(context.Background(), "k", "m", option.WithEndpoint(srv.URL))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestGeminiClientReturnsCandidateText(t *testing.T) {
	srv := geminiServer(t, `{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"mvp\":"},{"text":"\"plan\"}"}]},"finishReason":"STOP"}]}`)

	out, err := newTestGeminiClient(t, srv).GenerateJSON(context.Background(), "s", "p")
	require.NoError(t, err)

	assert.Equal(t, `{"mvp":"plan"}`, out)
}

func TestGeminiClientEmptyResponseIsUpstreamError(t *testing.T) {
	for name, body := range map[string]string{
		"no candidates": `{"candidates":[]}`,
		"blank text":    `{"candidates":[{"content":{"role":"model","parts":[{"text":"  "}]},"finishReason":"STOP"}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			srv := geminiServer(t, body)

			_, err := newTestGeminiClient(t, srv).GenerateJSON(context.Background(), "s", "p")

			assert.True(t, errors.Is(err, apierr.ErrUpstream))
			assert.True(t, errors.Is(err, ErrNoContent))
		})
	}
}
