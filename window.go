package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

// ErrWindowNotReady is returned by window operations before the Wails
// runtime is up or after it is gone.
var ErrWindowNotReady = errors.New("main window not available")

// Window is the main application window as seen by placement and the tray
// router. OuterSize, ScreenSize and SetPosition use physical pixels; Size
// is in DPI-independent units, as passed to the window options.
type Window interface {
	Show() error
	Hide() error
	Unminimise() error
	Focus() error
	Center() error
	SetPosition(x, y int) error
	Size() (width, height int, err error)
	OuterSize() (width, height int, err error)
	ScreenSize() (width, height int, err error)
}

// wailsWindow drives the single Wails window. It is usable once bound to
// the Wails startup context.
type wailsWindow struct {
	mu  sync.RWMutex
	ctx context.Context
}

func (w *wailsWindow) bind(ctx context.Context) {
	w.mu.Lock()
	w.ctx = ctx
	w.mu.Unlock()
}

// check returns the bound context, or an error if the window is not usable.
func (w *wailsWindow) check() (context.Context, error) {
	w.mu.RLock()
	ctx := w.ctx
	w.mu.RUnlock()
	if ctx == nil {
		return nil, ErrWindowNotReady
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ctx, nil
}

func (w *wailsWindow) Show() error {
	ctx, err := w.check()
	if err != nil {
		return err
	}
	wailsRuntime.Show(ctx)
	wailsRuntime.WindowShow(ctx)
	return nil
}

func (w *wailsWindow) Hide() error {
	ctx, err := w.check()
	if err != nil {
		return err
	}
	wailsRuntime.WindowHide(ctx)
	return nil
}

func (w *wailsWindow) Unminimise() error {
	ctx, err := w.check()
	if err != nil {
		return err
	}
	if wailsRuntime.WindowIsMinimised(ctx) {
		wailsRuntime.WindowUnminimise(ctx)
	}
	return nil
}

// Focus raises the window above others. Wails v2 has no focus call, so the
// window is pinned on top and released again.
func (w *wailsWindow) Focus() error {
	ctx, err := w.check()
	if err != nil {
		return err
	}
	wailsRuntime.WindowSetAlwaysOnTop(ctx, true)
	wailsRuntime.WindowSetAlwaysOnTop(ctx, false)
	return nil
}

func (w *wailsWindow) Center() error {
	ctx, err := w.check()
	if err != nil {
		return err
	}
	wailsRuntime.WindowCenter(ctx)
	return nil
}

func (w *wailsWindow) SetPosition(x, y int) error {
	ctx, err := w.check()
	if err != nil {
		return err
	}
	wailsRuntime.WindowSetPosition(ctx, x, y)
	return nil
}

func (w *wailsWindow) Size() (int, int, error) {
	ctx, err := w.check()
	if err != nil {
		return 0, 0, err
	}
	return logicalSize(ctx)
}

func logicalSize(ctx context.Context) (int, int, error) {
	width, height := wailsRuntime.WindowGetSize(ctx)
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("window reported size %dx%d", width, height)
	}
	return width, height, nil
}

// OuterSize returns the window size in physical pixels of the monitor the
// window is on.
func (w *wailsWindow) OuterSize() (int, int, error) {
	ctx, err := w.check()
	if err != nil {
		return 0, 0, err
	}
	width, height, err := logicalSize(ctx)
	if err != nil {
		return 0, 0, err
	}
	screen, err := currentScreen(ctx)
	if err != nil {
		return 0, 0, err
	}
	width, height = toPhysical(width, height, screen)
	return width, height, nil
}

// ScreenSize returns the physical size of the monitor the window is on,
// falling back to the primary monitor.
func (w *wailsWindow) ScreenSize() (int, int, error) {
	ctx, err := w.check()
	if err != nil {
		return 0, 0, err
	}
	screen, err := currentScreen(ctx)
	if err != nil {
		return 0, 0, err
	}
	size := screen.PhysicalSize
	if size.Width <= 0 || size.Height <= 0 {
		size = screen.Size
	}
	return size.Width, size.Height, nil
}

func currentScreen(ctx context.Context) (wailsRuntime.Screen, error) {
	screens, err := wailsRuntime.ScreenGetAll(ctx)
	if err != nil {
		return wailsRuntime.Screen{}, fmt.Errorf("query screens: %w", err)
	}
	screen, ok := pickScreen(screens)
	if !ok {
		return wailsRuntime.Screen{}, errors.New("no monitor found")
	}
	return screen, nil
}

// toPhysical scales a DPI-independent size by the screen's physical to
// logical ratio. Screens without both sizes are taken as unscaled.
func toPhysical(width, height int, screen wailsRuntime.Screen) (int, int) {
	logical, physical := screen.Size, screen.PhysicalSize
	if logical.Width <= 0 || logical.Height <= 0 || physical.Width <= 0 || physical.Height <= 0 {
		return width, height
	}
	sx := float64(physical.Width) / float64(logical.Width)
	sy := float64(physical.Height) / float64(logical.Height)
	return int(math.Round(float64(width) * sx)), int(math.Round(float64(height) * sy))
}

func pickScreen(screens []wailsRuntime.Screen) (wailsRuntime.Screen, bool) {
	for _, s := range screens {
		if s.IsCurrent {
			return s, true
		}
	}
	for _, s := range screens {
		if s.IsPrimary {
			return s, true
		}
	}
	if len(screens) > 0 {
		return screens[0], true
	}
	return wailsRuntime.Screen{}, false
}
