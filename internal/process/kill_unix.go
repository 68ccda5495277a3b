//go:build !windows

package process

import (
	"errors"
	"fmt"
	"syscall"
)

// KillTree sends SIGKILL to the process group led by pid (negative PID).
// A group that has already exited is not an error.
func KillTree(pid int) error {
	if err := validatePID(pid); err != nil {
		return err
	}
	if err := syscall.Kill(-pid, syscall.SIGKILL); err != nil && !errors.Is(err, syscall.ESRCH) {
		return fmt.Errorf("killing process group %d: %w", pid, err)
	}
	return nil
}
