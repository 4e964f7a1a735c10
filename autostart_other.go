//go:build !linux && !darwin && !windows

package main

func enableAutostart(exe string) error { return ErrAutostartUnsupported }
func disableAutostart() error           { return ErrAutostartUnsupported }
func isAutostartEnabled() (bool, error) { return false, ErrAutostartUnsupported }
