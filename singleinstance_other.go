//go:build !windows

package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
)

// ErrAlreadyRunning is returned when another Pester instance holds the lock.
var ErrAlreadyRunning = errors.New("pester is already running")

// ensureSingleInstance checks that no other Pester instance is running.
// Returns a cleanup function to call on exit.
func ensureSingleInstance() (func(), error) {
	return acquireInstanceLock(DataPath("pester.lock"))
}

func acquireInstanceLock(lockPath string) (func(), error) {
	// Check if lock file exists and process is still alive
	if data, err := os.ReadFile(lockPath); err == nil {
		pidStr := strings.TrimSpace(string(data))
		if pid, err := strconv.Atoi(pidStr); err == nil && pid != os.Getpid() {
			process, err := os.FindProcess(pid)
			if err == nil {
				// On Unix, FindProcess always succeeds; check if process is alive
				if err := process.Signal(syscall.Signal(0)); err == nil {
					return nil, ErrAlreadyRunning
				}
			}
		}
	}

	// Write our PID
	if err := os.WriteFile(lockPath, []byte(fmt.Sprintf("%d", os.Getpid())), 0644); err != nil {
		Log.Warn("writing instance lock failed", "path", lockPath, "error", err)
	}

	return func() {
		os.Remove(lockPath)
	}, nil
}
