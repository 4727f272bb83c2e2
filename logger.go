package varlet

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called while the render goroutine is logging.
var loggerPtr atomic.Pointer[zap.Logger]

func init() {
	loggerPtr.Store(zap.NewNop())
}

// SetLogger configures the logger for varlet and all its sub-packages.
// By default, varlet produces no log output. Call SetLogger to enable logging.
//
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by varlet:
//   - [zap.DebugLevel]: internal diagnostics (uniform tables, target sizes)
//   - [zap.InfoLevel]: lifecycle events (backend selected, drawables registered)
//   - [zap.WarnLevel]: recoverable resource errors (shader compile/link
//     failures, unreadable shader files, script errors)
//   - [zap.ErrorLevel]: contract violations that were survived
//
// Example:
//
//	logger, _ := zap.NewDevelopment()
//	varlet.SetLogger(logger)
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by varlet.
// Sub-packages call this to share the same logger configuration.
//
// Logger is safe for concurrent use.
func Logger() *zap.Logger {
	return loggerPtr.Load()
}
