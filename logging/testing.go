package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// NewTestLogger returns a Logger that writes Debug+ logs through t via
// zaptest, so log output is attributed to the failing test.
func NewTestLogger(tb testing.TB) Logger {
	zl := zaptest.NewLogger(tb, zaptest.Level(zap.DebugLevel))
	return &zapLogger{sugar: zl.Sugar()}
}
