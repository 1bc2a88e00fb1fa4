// Package alog wraps a *zap.SugaredLogger for the interpreter's and CLI's
// own diagnostic logging. Script output (print/println) never goes through
// this package — that writes straight to the engine's configured
// io.Writer, per the host embedding contract.
package alog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the structured logger used by the CLI's verbose/trace mode and
// as the sink of the std.log package.
type Logger struct {
	s *zap.SugaredLogger
}

// New builds a Logger at the given level. debug=true selects a human
// readable console encoder; otherwise JSON (suited to piping CLI output
// into another tool).
func New(debug bool) *Logger {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.DisableStacktrace = true
	logger, err := cfg.Build()
	if err != nil {
		// Fall back to a no-op core rather than panic on a logging
		// misconfiguration; the interpreter must still run.
		logger = zap.NewNop()
	}
	return &Logger{s: logger.Sugar()}
}

// Noop returns a Logger that discards everything, used when the host never
// asked for diagnostics.
func Noop() *Logger { return &Logger{s: zap.NewNop().Sugar()} }

func (l *Logger) Debugf(format string, args ...interface{}) { l.s.Debugf(format, args...) }
func (l *Logger) Infof(format string, args ...interface{})  { l.s.Infof(format, args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.s.Warnf(format, args...) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.s.Errorf(format, args...) }

// With returns a child logger with the given structured key/value pairs
// attached to every subsequent entry (e.g. module path, event-loop task id).
func (l *Logger) With(kv ...interface{}) *Logger {
	return &Logger{s: l.s.With(kv...)}
}

// Sync flushes any buffered log entries; callers should defer this from
// CLI main.
func (l *Logger) Sync() error { return l.s.Sync() }
