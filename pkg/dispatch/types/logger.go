package types

// Logger is the small logging surface every package in this module
// takes as a dependency rather than reaching for a global. Shaped after
// go-mcast's own Logger interface so a default implementation can wrap
// any structured logging backend.
type Logger interface {
	Info(v ...interface{})
	Infof(format string, v ...interface{})
	Warn(v ...interface{})
	Warnf(format string, v ...interface{})
	Error(v ...interface{})
	Errorf(format string, v ...interface{})
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})
	ToggleDebug(value bool) bool
}
