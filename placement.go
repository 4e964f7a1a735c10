package main

import "fmt"

// Insets from the bottom-right corner used on Windows, where the tray sits.
const (
	trayInsetRight  = 10
	trayInsetBottom = 50
)

// placement positions the window before it is first shown.
type placement func(w Window) error

// placements maps GOOS to the initial placement for that platform.
// Unlisted platforms leave the window where the OS puts it.
var placements = map[string]placement{
	"windows": placeBottomRight(trayInsetRight, trayInsetBottom),
	"darwin":  placeCentered,
	"linux":   placeFixed(100, 100),
}

func placementFor(goos string) (placement, bool) {
	p, ok := placements[goos]
	return p, ok
}

// PlaceWindow applies the initial placement for goos to w.
func PlaceWindow(goos string, w Window) error {
	p, ok := placementFor(goos)
	if !ok {
		Log.Debug("no window placement for platform", "goos", goos)
		return nil
	}
	return p(w)
}

func placeBottomRight(insetRight, insetBottom int) placement {
	return func(w Window) error {
		screenW, screenH, err := w.ScreenSize()
		if err != nil {
			return fmt.Errorf("get current monitor: %w", err)
		}
		winW, winH, err := w.OuterSize()
		if err != nil {
			return fmt.Errorf("get window size: %w", err)
		}
		x := screenW - winW - insetRight
		y := screenH - winH - insetBottom
		if err := w.SetPosition(x, y); err != nil {
			return fmt.Errorf("set window position: %w", err)
		}
		return nil
	}
}

func placeCentered(w Window) error {
	if err := w.Center(); err != nil {
		return fmt.Errorf("center window: %w", err)
	}
	return nil
}

func placeFixed(x, y int) placement {
	return func(w Window) error {
		if err := w.SetPosition(x, y); err != nil {
			return fmt.Errorf("set window position: %w", err)
		}
		return nil
	}
}
