package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger_Development(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")

	logger := NewLogger("development")
	require.NotNil(t, logger)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNewLogger_Production(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")

	logger := NewLogger("production")
	require.NotNil(t, logger)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNewLogger_WithLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")

	logger := NewLogger("development")
	require.NotNil(t, logger)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
}

func TestNewLogger_WithInvalidLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "invalid_level")

	// 無効なレベルは無視される
	logger := NewLogger("development")
	require.NotNil(t, logger)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNewCLILogger(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")

	quiet := NewCLILogger(false)
	assert.False(t, quiet.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, quiet.Core().Enabled(zapcore.WarnLevel))

	verbose := NewCLILogger(true)
	assert.True(t, verbose.Core().Enabled(zapcore.DebugLevel))
}

func TestSet(t *testing.T) {
	originalLogger := Get()
	defer Set(originalLogger)

	newLogger := zap.NewNop()
	Set(newLogger)

	assert.Equal(t, newLogger, Get())
}

func TestPackageFunctions_WriteToCurrentLogger(t *testing.T) {
	originalLogger := Get()
	defer Set(originalLogger)

	core, logs := observer.New(zapcore.DebugLevel)
	Set(zap.New(core))

	Debug("debug")
	Info("予約を確定しました", CustomerID(1), CruiseID(10), ReservationID(100))
	Warn("warn")
	Error("error")
	With(zap.String("component", "test")).Info("with")

	require.Equal(t, 5, logs.Len())
	booked := logs.FilterMessage("予約を確定しました").All()
	require.Len(t, booked, 1)
	fields := booked[0].ContextMap()
	assert.Equal(t, int64(1), fields["customer_id"])
	assert.Equal(t, int64(10), fields["cruise_id"])
	assert.Equal(t, int64(100), fields["reservation_id"])
	assert.Equal(t, "test", logs.FilterMessage("with").All()[0].ContextMap()["component"])
}

func TestSync(t *testing.T) {
	originalLogger := Get()
	defer Set(originalLogger)
	Set(zap.NewNop())

	assert.NoError(t, Sync())
}
