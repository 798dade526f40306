package navigation

import (
	"errors"
	"fmt"
)

// ErrConfiguration is the sentinel matched by every ConfigurationError.
var ErrConfiguration = errors.New("navigation: configuration error")

// ConfigurationError reports an inconsistent route table or a page asking for
// a breadcrumb from a path that was never registered. It is a programming
// error: tests should catch it, handlers should not try to recover from it.
type ConfigurationError struct {
	Path   string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("navigation: %s", e.Reason)
	}
	return fmt.Sprintf("navigation: %s: %q", e.Reason, e.Path)
}

// Is lets errors.Is(err, ErrConfiguration) match.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

func configErr(path, format string, args ...interface{}) error {
	return &ConfigurationError{Path: path, Reason: fmt.Sprintf(format, args...)}
}
