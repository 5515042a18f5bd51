// Package logging provides the structured logger used throughout this
// module: a small zap-backed Logger interface, a process-wide default
// instance, and a test constructor. It is deliberately narrower than a
// full logging subsystem — no per-logger registry, no dynamic level
// patterns, no cloud log forwarding — because nothing in this module
// needs more than Debugw/Infow/Warnw/Errorw plus a default instance.
package logging

import "sync"

// Logger is the structured logging interface every component in this
// module accepts. Each *w method takes a message and an even-length list
// of alternating keys and values, matching zap's SugaredLogger
// convention.
type Logger interface {
	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
}

var (
	globalMu     sync.RWMutex
	globalLogger = NewLogger("startup")
)

// ReplaceGlobal replaces the global logger.
func ReplaceGlobal(logger Logger) {
	globalMu.Lock()
	globalLogger = logger
	globalMu.Unlock()
}

// Global returns the global logger, used as the fallback wherever a
// component is constructed without an explicit logger.
func Global() Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}
