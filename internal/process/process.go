// Package process terminates headless browser process trees left behind by
// PDF export.
package process

import "errors"

// ErrInvalidPID is returned for PIDs that would target the caller's own
// process group or init.
var ErrInvalidPID = errors.New("invalid process id")

func validatePID(pid int) error {
	if pid <= 1 {
		return ErrInvalidPID
	}
	return nil
}
