package logger

import (
	"bytes"
	"context"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]LogLevel{"silent": Silent, "ERROR": Error, " warn ": Warn, "warning": Warn, "Info": Info} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
		assert.NotEmpty(t, got.String())
	}

	_, err := ParseLevel("debug")
	assert.Error(t, err)
}

func TestLoggerTrace(t *testing.T) {
	var buf bytes.Buffer
	l := New(log.New(&buf, "", 0), Config{LogLevel: Info, SlowThreshold: 100 * time.Millisecond})

	l.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT 1 FROM dual", -1
	}, nil)
	assert.Contains(t, buf.String(), "[rows:-]")
	assert.Contains(t, buf.String(), "SELECT 1 FROM dual")
	assert.Contains(t, buf.String(), "logger_test.go")

	buf.Reset()
	l.Trace(context.Background(), time.Now().Add(-time.Second), func() (string, int64) {
		return "SELECT * FROM people", 4
	}, nil)
	assert.Contains(t, buf.String(), "SLOW SQL >= 100ms")
	assert.Contains(t, buf.String(), "[rows:4]")

	buf.Reset()
	l.LogMode(Error).Info(context.Background(), "hidden")
	assert.Empty(t, buf.String())
}

func TestLoggerParamsFilter(t *testing.T) {
	l := New(log.New(&bytes.Buffer{}, "", 0), Config{ParameterizedQueries: true})
	_, params := l.(ParamsFilter).ParamsFilter(context.Background(), "SELECT :a", 1)
	assert.Nil(t, params)
}
