package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("idea is required"), http.StatusBadRequest},
		{"configuration", Configuration("GAS_FEEDBACK_URL", nil), http.StatusInternalServerError},
		{"upstream", Upstream("llm call failed", errors.New("dial tcp")), http.StatusInternalServerError},
		{"malformed", MalformedResponse(errors.New("invalid character")), http.StatusInternalServerError},
		{"relay failure", New(KindRelayFailure, "webhook declined", nil), http.StatusBadGateway},
		{"wrapped", fmt.Errorf("handler: %w", Validation("bad email")), http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.err))
		})
	}
}

func TestIsMatchesByKind(t *testing.T) {
	err := fmt.Errorf("generate: %w", Upstream("no content", nil))

	assert.True(t, errors.Is(err, ErrUpstream))
	assert.False(t, errors.Is(err, ErrMalformedResponse))
}

func TestPublicMessageHidesInternalDetail(t *testing.T) {
	assert.Equal(t, "Invalid email format", PublicMessage(Validation("Invalid email format"), "generic"))
	assert.Equal(t, "generic", PublicMessage(Upstream("provider said: quota exceeded", nil), "generic"))
	assert.Equal(t, "generic", PublicMessage(errors.New("raw"), "generic"))
}

func TestConfigurationNamesSetting(t *testing.T) {
	err := Configuration("GAS_FEEDBACK_URL", nil)

	assert.Contains(t, err.Error(), "GAS_FEEDBACK_URL")
}
