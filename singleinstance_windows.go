//go:build windows

package main

import (
	"errors"
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

// ErrAlreadyRunning is returned when another Pester instance holds the mutex.
var ErrAlreadyRunning = errors.New("pester is already running")

var (
	user32          = windows.NewLazySystemDLL("user32.dll")
	procFindWindow  = user32.NewProc("FindWindowW")
	procSetFGWindow = user32.NewProc("SetForegroundWindow")
	procShowWindow  = user32.NewProc("ShowWindow")
)

// ensureSingleInstance checks that no other Pester instance is running.
// A second instance brings the first one's window to front before
// returning ErrAlreadyRunning.
func ensureSingleInstance() (func(), error) {
	mutexName, _ := windows.UTF16PtrFromString("Local\\Pester_SingleInstance")

	handle, err := windows.CreateMutex(nil, false, mutexName)
	if err != nil {
		if errors.Is(err, windows.ERROR_ALREADY_EXISTS) {
			if handle != 0 {
				windows.CloseHandle(handle)
			}
			bringExistingWindowToFront()
			return nil, ErrAlreadyRunning
		}
		return nil, fmt.Errorf("create instance mutex: %w", err)
	}

	return func() {
		windows.CloseHandle(handle)
	}, nil
}

func bringExistingWindowToFront() {
	title, _ := syscall.UTF16PtrFromString(windowTitle)
	hwnd, _, _ := procFindWindow.Call(0, uintptr(unsafe.Pointer(title)))
	if hwnd != 0 {
		const swRestore = 9
		procShowWindow.Call(hwnd, swRestore)
		procSetFGWindow.Call(hwnd)
	}
}
