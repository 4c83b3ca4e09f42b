package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

func TestNew(t *testing.T) {
	t.Run("creates console logger", func(t *testing.T) {
		logger, err := New(DefaultConfig())
		require.NoError(t, err)
		assert.NotNil(t, logger)
	})

	t.Run("creates json logger", func(t *testing.T) {
		logger, err := New(ProductionConfig())
		require.NoError(t, err)
		assert.NotNil(t, logger)
	})
}

func TestNewForEnvironment(t *testing.T) {
	t.Run("production uses json", func(t *testing.T) {
		logger, err := NewForEnvironment("production")
		require.NoError(t, err)
		assert.NotNil(t, logger)
	})

	t.Run("development uses console", func(t *testing.T) {
		logger, err := NewForEnvironment("development")
		require.NoError(t, err)
		assert.NotNil(t, logger)
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"fatal", zapcore.FatalLevel},
		{"unknown", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}

func TestContext(t *testing.T) {
	t.Run("round trips logger through context", func(t *testing.T) {
		logger, err := New(DefaultConfig())
		require.NoError(t, err)

		ctx := WithContext(context.Background(), logger)
		assert.Equal(t, logger, FromContext(ctx))
	})

	t.Run("returns no-op logger for empty context", func(t *testing.T) {
		assert.NotNil(t, FromContext(context.Background()))
	})

	t.Run("enriches with request id", func(t *testing.T) {
		logger, err := New(DefaultConfig())
		require.NoError(t, err)

		ctx, enriched := WithRequestID(context.Background(), logger, "req-123")
		assert.NotNil(t, enriched)
		assert.Equal(t, "req-123", GetRequestID(ctx))
	})

	t.Run("enriches with actor", func(t *testing.T) {
		logger, err := New(DefaultConfig())
		require.NoError(t, err)

		ctx, enriched := WithActor(context.Background(), logger, "cashier")
		assert.NotNil(t, enriched)
		assert.Equal(t, "cashier", GetActor(ctx))
	})
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Error, MapGormLogLevel("error"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("warn"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("info"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("anything"))
}
