//go:build windows

package app

import (
	"fmt"
	"os"
)

// shutdownSignals are the OS signals that stop the watcher gracefully.
var shutdownSignals = []os.Signal{os.Interrupt}

// stopDaemon looks up the watch daemon PID and terminates the process.
func stopDaemon() error {
	pid, err := readPID()
	if err != nil {
		return fmt.Errorf("no watch daemon running (could not read PID file: %v)", err)
	}

	if !processExists(pid) {
		// The process died without cleaning up after itself.
		os.Remove(pidFilePath())
		return fmt.Errorf("no watch daemon running (PID %d is gone, removed stale PID file)", pid)
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("failed to find process (PID %d): %w", pid, err)
	}

	// Windows has no SIGTERM equivalent, so this kill is immediate.
	if err := proc.Kill(); err != nil {
		return fmt.Errorf("failed to stop watch daemon (PID %d): %w", pid, err)
	}

	os.Remove(pidFilePath())
	fmt.Printf("Stopped watch daemon (PID %d)\n", pid)
	return nil
}

// processExists reports whether a process with the given PID is alive.
func processExists(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	// FindProcess always succeeds on Windows; probing with a nil signal
	// is what actually detects a dead process.
	err = proc.Signal(os.Signal(nil))
	return err == nil
}
