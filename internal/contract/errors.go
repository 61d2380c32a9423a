package contract

import (
	"errors"
	"fmt"
)

// ConfigError is a fatal configuration problem: an invalid or insufficient
// statement pool, a missing calibration or norm version, or unsatisfiable
// design constraints. Nothing is produced once one is raised.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "configuration error: " + e.Reason
}

// NewConfigError creates a ConfigError with a formatted reason.
func NewConfigError(format string, args ...any) error {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}

// IsConfigError reports whether err is (or wraps) a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// IncompleteDataError is a fatal per-session problem: the response set is
// missing blocks the design requires. It names the missing block ids so the
// failure can be diagnosed without re-running.
type IncompleteDataError struct {
	SessionID     string
	MissingBlocks []int
}

func (e *IncompleteDataError) Error() string {
	return fmt.Sprintf("session %s: response set missing required blocks %v", e.SessionID, e.MissingBlocks)
}

// IsIncompleteDataError reports whether err is (or wraps) an IncompleteDataError.
func IsIncompleteDataError(err error) bool {
	var ie *IncompleteDataError
	return errors.As(err, &ie)
}
