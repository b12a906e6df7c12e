package logger_test

import (
	"testing"

	"catalog/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, logger.ParseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, logger.ParseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, logger.ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, logger.ParseLevel("verbose"))
}

func TestNew(t *testing.T) {
	for _, env := range []string{"production", "development"} {
		log, err := logger.New("warn", env)
		require.NoError(t, err)
		assert.False(t, log.Core().Enabled(zapcore.InfoLevel), env)
		assert.True(t, log.Core().Enabled(zapcore.ErrorLevel), env)
	}
}
