package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestParseZapLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		"Warn":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"verbose": zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
	}

	for in, want := range tests {
		assert.Equal(t, want, parseZapLevel(in), "level %q", in)
	}
}

func TestIsText(t *testing.T) {
	assert.True(t, isText(Config{Env: "development", Format: "json"}))
	assert.True(t, isText(Config{Env: "production", Format: "TEXT"}))
	assert.False(t, isText(Config{Env: "production", Format: "json"}))
}

func TestNew_RespectsLevel(t *testing.T) {
	log := New(Config{Level: "warn", Format: "json", Env: "test"})

	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))
}
