// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gecon

import "log/slog"

// Logger is the minimal structured logging interface used by policies.
// Arguments are alternating key/value pairs as in log/slog.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// slogLogger adapts *slog.Logger to Logger.
type slogLogger struct {
	*slog.Logger
}

// NewSlogLogger returns a Logger writing to l, or to slog.Default() if l is nil.
func NewSlogLogger(l *slog.Logger) Logger {
	if l == nil {
		l = slog.Default()
	}
	return slogLogger{Logger: l}
}

// NoOpLogger discards all records. It is the default Logger.
type NoOpLogger struct{}

func (NoOpLogger) Debug(string, ...any) {}
func (NoOpLogger) Info(string, ...any)  {}
func (NoOpLogger) Warn(string, ...any)  {}
func (NoOpLogger) Error(string, ...any) {}
