package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved() (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &Logger{SugaredLogger: zap.New(core).Sugar()}, logs
}

func TestLogger_RedactsSecretKeys(t *testing.T) {
	log, logs := newObserved()

	log.With("component", "test").Info("connected", "dsn", "root:pw@tcp(db)/bakery", "owner_id", 7, "jwt_token", "abc")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "[REDACTED]", fields["dsn"])
	assert.Equal(t, "[REDACTED]", fields["jwt_token"])
	assert.EqualValues(t, 7, fields["owner_id"])
	assert.Equal(t, "test", fields["component"])
}
