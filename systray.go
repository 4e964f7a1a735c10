package main

import (
	"sync"
	"sync/atomic"

	"github.com/energye/systray"
)

// systrayTray is the Tray backed by the native system tray.
type systrayTray struct {
	onAction func(Action)
	onClick  func()

	ready atomic.Bool
	mu    sync.Mutex
	end   func()
}

func newSystrayTray(onAction func(Action), onClick func()) *systrayTray {
	return &systrayTray{onAction: onAction, onClick: onClick}
}

// Start creates the tray icon with the initial menu. The tray runs its own
// native loop next to the Wails one.
func (t *systrayTray) Start(initial TrayMenu) {
	start, end := systray.RunWithExternalLoop(func() { t.onReady(initial) }, t.onExit)
	t.mu.Lock()
	t.end = end
	t.mu.Unlock()
	go start()
}

func (t *systrayTray) onReady(initial TrayMenu) {
	systray.SetIcon(trayIcon())
	systray.SetTooltip("Pester")

	// Left click reveals the window, right click opens the menu.
	systray.SetOnClick(func(menu systray.IMenu) {
		t.onClick()
	})
	systray.SetOnRClick(func(menu systray.IMenu) {
		if err := menu.ShowMenu(); err != nil {
			Log.Debug("tray menu show failed", "error", err)
		}
	})

	t.mu.Lock()
	t.install(initial)
	t.mu.Unlock()
	t.ready.Store(true)
	Log.Info("tray icon ready")
}

func (t *systrayTray) onExit() {
	t.ready.Store(false)
	Log.Debug("tray loop exited")
}

func (t *systrayTray) Ready() bool {
	return t.ready.Load()
}

func (t *systrayTray) SetMenu(menu TrayMenu) error {
	if !t.Ready() {
		return ErrTrayNotReady
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.install(menu)
	return nil
}

// install swaps the native menu for menu. Callers hold t.mu.
func (t *systrayTray) install(menu TrayMenu) {
	systray.ResetMenu()
	for _, e := range menu.Entries {
		if e.Separator {
			systray.AddSeparator()
			continue
		}
		item := systray.AddMenuItem(e.Label, e.Tooltip)
		action := e.Action
		item.Click(func() {
			t.onAction(action)
		})
	}
}

// Close removes the tray icon.
func (t *systrayTray) Close() {
	t.ready.Store(false)
	t.mu.Lock()
	end := t.end
	t.end = nil
	t.mu.Unlock()
	if end != nil {
		end()
	}
}
