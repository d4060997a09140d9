// ============================================================================
// Cellpool Options - Functional Construction Options
// ============================================================================
//
// Package: internal/pool
// File: options.go
// Function: Optional ambient-stack attachments (currently only metrics) that
// never change the two-argument (size, policy) contract the spec defines.
//
// ============================================================================

package pool

type config struct {
	recorder recorder
}

// Option configures optional behavior of New.
type Option func(*config)

// Recorder receives coordinator lifecycle events. internal/metrics.Recorder
// satisfies this interface structurally, so this package never imports
// prometheus, and internal/metrics never imports this package either: only
// internal/cli imports both and wires one into the other.
type Recorder = recorder

// WithMetrics attaches r to the coordinator; every job dispatch, panic,
// respawn, and live-worker-count change is reported to it. Passing a nil
// Recorder is equivalent to omitting the option.
func WithMetrics(r Recorder) Option {
	return func(c *config) { c.recorder = r }
}

func newConfig(opts []Option) config {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
