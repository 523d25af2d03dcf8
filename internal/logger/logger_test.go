package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	testCases := []struct {
		name string
		cfg  Config
	}{
		{name: "defaults", cfg: Config{}},
		{name: "console format", cfg: Config{Level: "debug", Format: "console"}},
		{name: "development", cfg: Config{Level: "warn", Development: true}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			log, err := New(tc.cfg)
			require.NoError(t, err)
			require.NotNil(t, log)

			child := log.With(String("component", "test"))
			assert.NotNil(t, child)
		})
	}
}

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		input string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"ERROR", zapcore.ErrorLevel},
		{"unknown", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, parseLevel(tc.input), "level %q", tc.input)
	}
}

func TestNopLogger(t *testing.T) {
	log := NewNop()

	log.Info("ignored")
	log.Error("ignored", String("key", "value"))
	assert.NoError(t, log.Sync())
	assert.NotNil(t, log.With(Int("n", 1)))
}
