// Package foreground brings the primary instance's window back in front of
// the user after a handoff. Everything here is advisory: the OS is free to
// refuse a focus claim, and every step degrades to the next one instead of
// failing the caller.
package foreground

import "go.uber.org/zap"

// Activator attempts to surface a window. Activate never reports an error;
// when the focus claim fails the implementation falls back to an
// attention-grabbing, non-focus-stealing signal.
type Activator interface {
	Activate(window uintptr)
}

// New returns the platform activator.
func New(logger *zap.Logger) Activator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return newActivator(logger)
}
