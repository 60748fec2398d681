package logging

import (
	"fmt"
	"strings"

	"github.com/Cyclone1070/salvage/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options adjusts logger construction beyond the config file.
type Options struct {
	// Verbose forces debug level.
	Verbose bool
	// Output receives encoded log lines. Nil discards them, which the TUI uses
	// so log output does not corrupt the screen.
	Output zapcore.WriteSyncer
	// Sink, when set, receives every info-or-higher entry.
	Sink Sink
}

// New builds the application logger from the log section of the config.
func New(cfg config.LogConfig, opts Options) (*zap.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if opts.Verbose {
		level = zapcore.DebugLevel
	}

	var encoder zapcore.Encoder
	if cfg.Development {
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}

	out := opts.Output
	if out == nil {
		out = zapcore.AddSync(discard{})
	}

	core := zapcore.NewCore(encoder, out, zap.NewAtomicLevelAt(level))
	if opts.Sink != nil {
		core = zapcore.NewTee(core, NewSinkCore(opts.Sink, zapcore.InfoLevel))
	}
	return zap.New(core), nil
}

// ParseLevel maps a config level name to a zap level. It accepts exactly
// config.SupportedLogLevels.
func ParseLevel(name string) (zapcore.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", name)
	}
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
