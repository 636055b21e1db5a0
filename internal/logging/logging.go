// Package logging builds the zap logger shared by the CLI.
package logging

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// LevelNone disables logging.
	LevelNone = "none"
	// LevelError logs errors only.
	LevelError = "error"
	// LevelWarn logs warnings and errors.
	LevelWarn = "warn"
	// LevelInfo logs informational messages.
	LevelInfo = "info"
	// LevelDebug logs everything.
	LevelDebug = "debug"
)

// Levels lists the accepted level names.
func Levels() []string {
	return []string{LevelNone, LevelError, LevelWarn, LevelInfo, LevelDebug}
}

// ValidLevel reports whether level is an accepted level name.
func ValidLevel(level string) bool {
	for _, l := range Levels() {
		if strings.EqualFold(level, l) {
			return true
		}
	}
	return false
}

// New returns a console logger writing to w at level. "none" and the empty
// string return a no-op logger.
func New(level string, w io.Writer) (*zap.Logger, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" || level == LevelNone {
		return zap.NewNop(), nil
	}
	if !ValidLevel(level) {
		return nil, fmt.Errorf("invalid log level %q (valid: %s)", level, strings.Join(Levels(), ", "))
	}

	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.CallerKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(zapcore.AddSync(w)),
		zap.NewAtomicLevelAt(lvl),
	)
	return zap.New(core), nil
}

// Resolve picks the effective level: --debug wins over --verbose, which wins
// over the configured level.
func Resolve(configured string, debug, verbose bool) string {
	switch {
	case debug:
		return LevelDebug
	case verbose:
		return LevelInfo
	case configured == "":
		return LevelNone
	default:
		return configured
	}
}
