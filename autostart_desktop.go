//go:build linux || darwin

package main

import (
	"errors"
	"os"
	goruntime "runtime"

	"github.com/emersion/go-autostart"
)

// autostartApp describes the login item for exe. Linux gets an XDG
// autostart entry named pester.desktop; macOS gets a LaunchAgent whose
// label is the bundle identifier.
func autostartApp(goos, exe string) *autostart.App {
	name := "pester"
	if goos == "darwin" {
		name = autostartLabel
	}
	return &autostart.App{
		Name:        name,
		DisplayName: autostartName,
		Exec:        []string{exe, autostartArg},
	}
}

func enableAutostart(exe string) error {
	return autostartApp(goruntime.GOOS, exe).Enable()
}

func disableAutostart() error {
	err := autostartApp(goruntime.GOOS, "").Disable()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func isAutostartEnabled() (bool, error) {
	return autostartApp(goruntime.GOOS, "").IsEnabled(), nil
}
