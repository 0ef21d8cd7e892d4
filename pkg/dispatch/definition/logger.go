// Package definition holds the default, swappable implementations of
// the dispatch core's external collaborator interfaces: logging,
// metrics, wire codec and the in-memory transports used by tests and
// the cmd/dispatchsim demo.
package definition

import (
	"github.com/sirupsen/logrus"

	"github.com/merlincluster/dispatch/pkg/dispatch/types"
)

var _ types.Logger = (*Logger)(nil)

// Logger is the default types.Logger implementation, backed by logrus
// the same way the teacher repo's own DefaultLogger wraps the standard
// library's log.Logger: one small adapter type satisfying the shared
// interface, constructed once and handed to every collaborator that
// needs to log.
type Logger struct {
	entry *logrus.Entry
	level *logrus.Logger
}

// NewLogger builds a Logger writing structured fields through logrus at
// its default text formatter; callers that want JSON output or a
// different writer should build their own *logrus.Logger and pass it to
// NewLoggerFrom instead.
func NewLogger() *Logger {
	l := logrus.New()
	return NewLoggerFrom(l)
}

// NewLoggerFrom adapts an already-configured *logrus.Logger.
func NewLoggerFrom(l *logrus.Logger) *Logger {
	return &Logger{entry: logrus.NewEntry(l), level: l}
}

func (l *Logger) Info(v ...interface{})                   { l.entry.Info(v...) }
func (l *Logger) Infof(format string, v ...interface{})   { l.entry.Infof(format, v...) }
func (l *Logger) Warn(v ...interface{})                   { l.entry.Warn(v...) }
func (l *Logger) Warnf(format string, v ...interface{})   { l.entry.Warnf(format, v...) }
func (l *Logger) Error(v ...interface{})                  { l.entry.Error(v...) }
func (l *Logger) Errorf(format string, v ...interface{})  { l.entry.Errorf(format, v...) }
func (l *Logger) Debug(v ...interface{})                  { l.entry.Debug(v...) }
func (l *Logger) Debugf(format string, v ...interface{})  { l.entry.Debugf(format, v...) }

// ToggleDebug flips between logrus.InfoLevel and logrus.DebugLevel and
// returns the new state, mirroring the teacher's own boolean-toggle
// Logger.ToggleDebug contract.
func (l *Logger) ToggleDebug(value bool) bool {
	if value {
		l.level.SetLevel(logrus.DebugLevel)
	} else {
		l.level.SetLevel(logrus.InfoLevel)
	}
	return value
}
