package linkage

import (
	"errors"
	"fmt"
)

// Resolution errors. All of them are fatal to a build.
var (
	// ErrUnsupportedOS indicates a target operating system with no vendored libraries.
	ErrUnsupportedOS = errors.New("linkage: unsupported target operating system")

	// ErrBackendUnsupported indicates a backend requested on a platform that lacks it.
	ErrBackendUnsupported = errors.New("linkage: backend not supported on target")

	// ErrPointerWidth indicates a pointer width the target platform cannot link.
	ErrPointerWidth = errors.New("linkage: unsupported pointer width")

	// ErrMissingValue indicates a required configuration or environment value was not set.
	ErrMissingValue = errors.New("linkage: missing required configuration value")
)

// ResolveError wraps a resolution failure with the configuration that caused it.
type ResolveError struct {
	Config  Config
	Reason  string
	Wrapped error
}

func (e *ResolveError) Error() string {
	if e.Reason == "" {
		return e.Wrapped.Error()
	}
	return fmt.Sprintf("%v: %s", e.Wrapped, e.Reason)
}

func (e *ResolveError) Unwrap() error {
	return e.Wrapped
}

func resolveErr(cfg Config, err error, format string, args ...any) error {
	return &ResolveError{Config: cfg, Reason: fmt.Sprintf(format, args...), Wrapped: err}
}
