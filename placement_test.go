package main

import (
	"errors"
	"testing"
)

func TestPlaceWindowWindowsBottomRight(t *testing.T) {
	tests := []struct {
		name             string
		screenW, screenH int
		winW, winH       int
		scale            float64
		wantX, wantY     int
	}{
		{"full hd", 1920, 1080, 420, 640, 1, 1490, 390},
		{"window fills screen", 800, 600, 800, 600, 1, -10, -50},
		{"4k", 3840, 2160, 1000, 800, 1, 2830, 1310},
		{"full hd at 150%", 1920, 1080, 420, 640, 1.5, 1280, 70},
		{"qhd at 125%", 2560, 1440, 420, 640, 1.25, 2025, 590},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newFakeWindow()
			w.screenW, w.screenH = tt.screenW, tt.screenH
			w.winW, w.winH = tt.winW, tt.winH
			w.scale = tt.scale

			if err := PlaceWindow("windows", w); err != nil {
				t.Fatalf("PlaceWindow: %v", err)
			}
			if w.x != tt.wantX || w.y != tt.wantY {
				t.Errorf("position = (%d,%d), want (%d,%d)", w.x, w.y, tt.wantX, tt.wantY)
			}
			if w.count("Show") != 0 {
				t.Error("placement showed the window")
			}
			winW, _, _ := w.OuterSize()
			if right := w.x + winW; right > tt.screenW {
				t.Errorf("right edge %d is off a %d wide screen", right, tt.screenW)
			}
		})
	}
}

func TestPlaceWindowDarwinCenters(t *testing.T) {
	w := newFakeWindow()
	if err := PlaceWindow("darwin", w); err != nil {
		t.Fatalf("PlaceWindow: %v", err)
	}
	if w.count("Center") != 1 || w.count("SetPosition") != 0 {
		t.Errorf("calls = %v, want one Center", w.Calls())
	}
}

func TestPlaceWindowLinuxFixed(t *testing.T) {
	w := newFakeWindow()
	if err := PlaceWindow("linux", w); err != nil {
		t.Fatalf("PlaceWindow: %v", err)
	}
	if w.x != 100 || w.y != 100 {
		t.Errorf("position = (%d,%d), want (100,100)", w.x, w.y)
	}
	if w.count("ScreenSize") != 0 {
		t.Error("linux placement queried the screen")
	}
}

func TestPlaceWindowUnlistedPlatform(t *testing.T) {
	for _, goos := range []string{"freebsd", "openbsd", ""} {
		w := newFakeWindow()
		if err := PlaceWindow(goos, w); err != nil {
			t.Errorf("PlaceWindow(%q): %v", goos, err)
		}
		if len(w.Calls()) != 0 {
			t.Errorf("PlaceWindow(%q) calls = %v, want none", goos, w.Calls())
		}
	}
}

func TestPlaceWindowErrors(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		goos   string
		failOn string
	}{
		{"windows", "ScreenSize"},
		{"windows", "OuterSize"},
		{"windows", "SetPosition"},
		{"darwin", "Center"},
		{"linux", "SetPosition"},
	}
	for _, tt := range tests {
		t.Run(tt.goos+"/"+tt.failOn, func(t *testing.T) {
			w := newFakeWindow()
			w.errs[tt.failOn] = boom
			err := PlaceWindow(tt.goos, w)
			if !errors.Is(err, boom) {
				t.Errorf("err = %v, want wrapped boom", err)
			}
		})
	}
}

func TestPlaceWindowMissingMonitorSkipsPositioning(t *testing.T) {
	w := newFakeWindow()
	w.errs["ScreenSize"] = errors.New("no monitor found")
	if err := PlaceWindow("windows", w); err == nil {
		t.Fatal("expected error")
	}
	if w.count("SetPosition") != 0 {
		t.Error("window positioned without a monitor")
	}
}
