// Package obs is the thin observability seam between the sieve's hot
// loops and the concrete logging/metrics libraries: internal/sieve,
// internal/parallel, and internal/nthprime depend only on the Logger
// interface and the Metrics struct defined here, never on zap or
// prometheus directly.
package obs

import "go.uber.org/zap"

// Logger is the structured logging interface the sieve packages
// consume. NopLogger satisfies it with every method a no-op, which is
// the default so library callers never get unsolicited output.
type Logger interface {
	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debugw(string, ...interface{}) {}
func (nopLogger) Infow(string, ...interface{})  {}
func (nopLogger) Warnw(string, ...interface{})  {}
func (nopLogger) Errorw(string, ...interface{}) {}

// NopLogger returns a Logger that discards everything.
func NopLogger() Logger { return nopLogger{} }

// zapLogger adapts *zap.SugaredLogger to Logger.
type zapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger wraps a zap logger for use by the sieve packages.
func NewZapLogger(l *zap.Logger) Logger {
	return zapLogger{sugar: l.Sugar()}
}

func (z zapLogger) Debugw(msg string, kv ...interface{}) { z.sugar.Debugw(msg, kv...) }
func (z zapLogger) Infow(msg string, kv ...interface{})  { z.sugar.Infow(msg, kv...) }
func (z zapLogger) Warnw(msg string, kv ...interface{})  { z.sugar.Warnw(msg, kv...) }
func (z zapLogger) Errorw(msg string, kv ...interface{}) { z.sugar.Errorw(msg, kv...) }
