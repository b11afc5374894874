package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSanitizeKVsRedactsSensitiveKeys(t *testing.T) {
	out := sanitizeKVs([]interface{}{"email", "a@b.com", "OPENAI_API_KEY", "sk-123", "status", 502})

	assert.Equal(t, []interface{}{"email", "[REDACTED]", "OPENAI_API_KEY", "[REDACTED]", "status", 502}, out)
}

func TestSanitizeKVsKeepsDanglingKey(t *testing.T) {
	out := sanitizeKVs([]interface{}{"path", "/api/generate", "orphan"})

	assert.Equal(t, []interface{}{"path", "/api/generate", "orphan"}, out)
}

func TestLoggerWritesRedactedFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log := &Logger{SugaredLogger: zap.New(core).Sugar()}

	log.Info("feedback relayed", "email", "someone@example.com", "status", 200)

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "[REDACTED]", fields["email"])
		assert.EqualValues(t, 200, fields["status"])
	}
}
