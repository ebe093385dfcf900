package security

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "j***@example.com", MaskEmail("john@example.com"))
	assert.Equal(t, "***@x.com", MaskEmail("a@x.com"))
	assert.Equal(t, "***", MaskEmail("no-at-sign"))
	assert.Equal(t, "***", MaskEmail(""))
}

func TestLoginFailedIsMaskedAndWarned(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sl := NewSecurityLogger(zap.New(core), "jobboard-api", "test")

	sl.LogLoginFailed(context.Background(), "carol@x.com", "10.0.0.1", "curl", "req-1")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, string(EventLoginFailed), entries[0].Message)

	fields := entries[0].ContextMap()
	assert.Equal(t, "c***@x.com", fields["subject_value"])
	assert.Equal(t, "req-1", fields["request_id"])
}

func TestForbiddenIsError(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sl := NewSecurityLogger(zap.New(core), "jobboard-api", "test")

	sl.LogForbidden(context.Background(), "user-1", "10.0.0.1", "", "/v1/jobs")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.ErrorLevel, logs.All()[0].Level)
}
