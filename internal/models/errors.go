package models

import "errors"

/**
 * Error taxonomy shared by all keeper operations.
 * Callers wrap these with fmt.Errorf("%w ...") and test them with errors.Is.
 * Expected absences (no logs yet, no backups yet, JVM not running) are reported
 * as results rather than as ErrNotFound.
 */
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrIO              = errors.New("io error")
	ErrExternalCommand = errors.New("external command failed")
)

// ErrorCode maps an error onto the dotted code used in API responses
func ErrorCode(scope string, err error) string {
	switch {
	case errors.Is(err, ErrInvalidArgument):
		return scope + ".invalid_argument"
	case errors.Is(err, ErrNotFound):
		return scope + ".not_found"
	case errors.Is(err, ErrExternalCommand):
		return scope + ".command_failed"
	case errors.Is(err, ErrIO):
		return scope + ".io_error"
	default:
		return scope + ".failed"
	}
}
