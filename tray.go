package main

import (
	"errors"
	"fmt"
	"sync"
)

// ErrTrayNotReady is returned when the tray icon has not been created yet
// or has already been torn down.
var ErrTrayNotReady = errors.New("tray not found")

// Tray is the native tray icon the menu is installed on.
type Tray interface {
	// Ready reports whether the tray icon exists.
	Ready() bool
	// SetMenu replaces the whole context menu.
	SetMenu(menu TrayMenu) error
}

// TrayMenuController rebuilds the tray menu from the recent-contact list.
type TrayMenuController struct {
	tray Tray

	mu      sync.Mutex
	current TrayMenu
}

// NewTrayMenuController returns a controller installing menus on tray.
func NewTrayMenuController(tray Tray) *TrayMenuController {
	return &TrayMenuController{tray: tray}
}

// Update builds the menu for contacts and installs it. On error the
// previously installed menu is left in place.
func (c *TrayMenuController) Update(contacts []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	Log.Debug("updating tray menu", "recentUsers", len(contacts))

	if c.tray == nil || !c.tray.Ready() {
		return ErrTrayNotReady
	}

	menu := BuildTrayMenu(contacts)
	if err := c.tray.SetMenu(menu); err != nil {
		return fmt.Errorf("install tray menu: %w", err)
	}
	c.current = menu
	return nil
}

// Current returns the last successfully installed menu.
func (c *TrayMenuController) Current() TrayMenu {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}
