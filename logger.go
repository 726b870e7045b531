package raster3d

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

var loggerPtr atomic.Pointer[zerolog.Logger]

func init() {
	SetLogger(zerolog.Nop())
}

// SetLogger sets the logger raster3d (and its sub-packages) log through. By default nothing is logged.
// SetLogger is safe to call concurrently with rendering.
//
// Levels used:
//   - Debug: per-frame statistics
//   - Warn: faces skipped because they can't be triangulated
func SetLogger(l zerolog.Logger) {
	loggerPtr.Store(&l)
}

// Logger returns the current logger.
func Logger() *zerolog.Logger {
	return loggerPtr.Load()
}
