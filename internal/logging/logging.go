// Package logging builds the zap loggers used by the command line tools.
package logging

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is a textual log level: debug, info, warn or error.
type Level string

// Style selects the encoder.
type Style string

const (
	StyleJSON    Style = "json"
	StyleConsole Style = "console"
	StyleNoop    Style = "noop"
)

// Config controls logger construction. The zero value logs info and above
// as console text.
type Config struct {
	Level Level
	Style Style
}

// NewLogger builds a logger writing to stderr. Unknown levels fall back to
// info and unknown styles to console.
func NewLogger(cfg *Config) *zap.Logger {
	if cfg == nil {
		cfg = &Config{}
	}

	var encoder zapcore.Encoder
	switch Style(strings.ToLower(string(cfg.Style))) {
	case StyleNoop:
		return zap.NewNop()
	case StyleJSON:
		encCfg := zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encCfg)
	default:
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), ParseLevel(cfg.Level))
	return zap.New(core)
}

// ParseLevel converts l to a zap level, defaulting to info.
func ParseLevel(l Level) zapcore.Level {
	lvl, err := zapcore.ParseLevel(strings.ToLower(string(l)))
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}
