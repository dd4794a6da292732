package logger

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestZerolog() (zerolog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return zerolog.New(&buf).With().Timestamp().Logger(), &buf
}

func TestZerologLogger_LogMode(t *testing.T) {
	zerologLogger, _ := setupTestZerolog()
	logger := NewZerologLogger(zerologLogger, Config{LogLevel: Error})

	infoLogger := logger.LogMode(Info)
	assert.Equal(t, Info, infoLogger.(*ZerologLogger).LogLevel)
	assert.Equal(t, Error, logger.(*ZerologLogger).LogLevel)
}

func TestZerologLogger_LogLevels(t *testing.T) {
	ctx := context.Background()
	zerologLogger, buf := setupTestZerolog()
	logger := NewZerologLogger(zerologLogger, Config{LogLevel: Warn})

	logger.Info(ctx, "info is filtered")
	assert.Empty(t, buf.String())

	logger.Warn(ctx, "column has no field", "NAME")
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), "zerolog_test.go")

	buf.Reset()
	logger.Error(ctx, "close failed")
	assert.Contains(t, buf.String(), `"level":"error"`)
}

func TestZerologLogger_Trace(t *testing.T) {
	ctx := context.Background()
	zerologLogger, buf := setupTestZerolog()
	logger := NewZerologLogger(zerologLogger, Config{LogLevel: Info, SlowThreshold: 100 * time.Millisecond})

	t.Run("Normal trace", func(t *testing.T) {
		buf.Reset()
		logger.Trace(ctx, time.Now(), func() (string, int64) {
			return "SELECT * FROM people", 3
		}, nil)

		assert.Contains(t, buf.String(), "statement executed")
		assert.Contains(t, buf.String(), `"rows":3`)
	})

	t.Run("Slow statement", func(t *testing.T) {
		buf.Reset()
		logger.Trace(ctx, time.Now().Add(-time.Second), func() (string, int64) {
			return "SELECT * FROM large_table", -1
		}, nil)

		assert.Contains(t, buf.String(), "slow statement")
		assert.NotContains(t, buf.String(), `"rows"`)
	})

	t.Run("Error trace", func(t *testing.T) {
		buf.Reset()
		logger.Trace(ctx, time.Now(), func() (string, int64) {
			return "SELECT * FROM missing", 0
		}, assert.AnError)

		assert.Contains(t, buf.String(), "statement failed")
		assert.Contains(t, buf.String(), assert.AnError.Error())
	})

	t.Run("Silent skips the callback", func(t *testing.T) {
		called := false
		logger.LogMode(Silent).Trace(ctx, time.Now(), func() (string, int64) {
			called = true
			return "", 0
		}, nil)
		assert.False(t, called)
	})
}

func TestNewZerologConsole(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologConsole(&buf, Config{LogLevel: Info})
	require.NotNil(t, logger)

	logger.Info(context.Background(), "connected")
	assert.Contains(t, buf.String(), "connected")
}

func TestZerologLevel(t *testing.T) {
	assert.Equal(t, zerolog.Disabled, ZerologLevel(Silent))
	assert.Equal(t, zerolog.ErrorLevel, ZerologLevel(Error))
	assert.Equal(t, zerolog.WarnLevel, ZerologLevel(Warn))
	assert.Equal(t, zerolog.InfoLevel, ZerologLevel(Info))
}
