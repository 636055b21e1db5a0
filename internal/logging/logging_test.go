package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		level     string
		logDebug  bool
		logWarn   bool
		wantError bool
	}{
		"none":     {level: "none"},
		"empty":    {level: ""},
		"debug":    {level: "debug", logDebug: true, logWarn: true},
		"warn":     {level: "WARN", logWarn: true},
		"error":    {level: "error"},
		"invalid":  {level: "loud", wantError: true},
		"zap only": {level: "fatal", wantError: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger, err := New(tt.level, &buf)
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			logger.Debug("debug message")
			logger.Warn("warn message")
			require.NoError(t, logger.Sync())

			assert.Equal(t, tt.logDebug, bytes.Contains(buf.Bytes(), []byte("debug message")))
			assert.Equal(t, tt.logWarn, bytes.Contains(buf.Bytes(), []byte("warn message")))
		})
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		configured string
		debug      bool
		verbose    bool
		want       string
	}{
		"defaults to none":      {want: LevelNone},
		"configured":            {configured: LevelWarn, want: LevelWarn},
		"verbose over config":   {configured: LevelWarn, verbose: true, want: LevelInfo},
		"debug over everything": {configured: LevelWarn, verbose: true, debug: true, want: LevelDebug},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, Resolve(tt.configured, tt.debug, tt.verbose))
		})
	}
}

func TestValidLevel(t *testing.T) {
	t.Parallel()

	for _, l := range Levels() {
		assert.True(t, ValidLevel(l), l)
	}
	assert.True(t, ValidLevel("DEBUG"))
	assert.False(t, ValidLevel("trace"))
}
