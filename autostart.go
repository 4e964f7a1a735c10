package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrAutostartUnsupported is returned on platforms without a login-item
// mechanism.
var ErrAutostartUnsupported = errors.New("autostart is not supported on this platform")

// autostartArg is passed to launches made at login.
const autostartArg = "--minimized"

const (
	autostartName  = "Pester"
	autostartLabel = "app.pester.desktop"
)

// EnableAutostart registers the running executable to start at login.
func EnableAutostart() error {
	exe, err := executablePath()
	if err != nil {
		return err
	}
	if err := enableAutostart(exe); err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	Log.Info("autostart enabled", "exe", exe)
	return nil
}

// DisableAutostart removes the login registration. Removing a missing
// registration is not an error.
func DisableAutostart() error {
	if err := disableAutostart(); err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}
	Log.Info("autostart disabled")
	return nil
}

// IsAutostartEnabled reports whether a login registration exists.
func IsAutostartEnabled() (bool, error) {
	return isAutostartEnabled()
}

func executablePath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return exe, nil
}

// windowsRunCommand renders the value stored under the Run key.
func windowsRunCommand(exe string) string {
	return `"` + exe + `" ` + autostartArg
}
