package window

import "fmt"

// ConfigError reports an invalid window configuration. It is returned
// before any OS resource is touched; creation fails fast.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("window config: %s %s", e.Field, e.Reason)
}

// PlatformError reports a window-system or OS-level failure. Platform
// errors are fatal: the event loop terminates when one surfaces.
type PlatformError struct {
	Op  string
	Err error
}

func (e *PlatformError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("platform: %s failed", e.Op)
	}
	return fmt.Sprintf("platform: %s: %v", e.Op, e.Err)
}

func (e *PlatformError) Unwrap() error { return e.Err }
