package driver

import (
	"lilit/internal/observ"
)

// Options configure Check.
type Options struct {
	// MaxDiagnostics caps the final bag; <= 0 means unlimited.
	MaxDiagnostics int
	// Jobs limits the parallel index build and resolution; <= 0 means GOMAXPROCS.
	Jobs int
	// Parallel resolves unit bodies concurrently.
	Parallel bool
	// NoPrelude skips the built-in prelude.
	NoPrelude bool
	// ParseOnly stops after parsing (lilit parse).
	ParseOnly bool
	// SelfCheck runs the testkit invariant checkers; violations are returned as an error.
	SelfCheck bool
	// BaseDir is used for relative path output.
	BaseDir string

	Progress ProgressSink
	Timer    *observ.Timer
}
