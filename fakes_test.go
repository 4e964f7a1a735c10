package main

import (
	"math"
	"sync"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

// fakeWindow records window calls. errs maps a method name to the error it
// returns. winW and winH are DPI-independent; scale is the monitor's
// physical to logical ratio (0 means 1).
type fakeWindow struct {
	mu      sync.Mutex
	calls   []string
	errs    map[string]error
	x, y    int
	screenW int
	screenH int
	winW    int
	winH    int
	scale   float64
}

func newFakeWindow() *fakeWindow {
	return &fakeWindow{
		errs:    map[string]error{},
		screenW: 1920, screenH: 1080,
		winW: 420, winH: 640,
	}
}

func (w *fakeWindow) record(name string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls = append(w.calls, name)
	return w.errs[name]
}

func (w *fakeWindow) Calls() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.calls...)
}

func (w *fakeWindow) count(name string) int {
	n := 0
	for _, c := range w.Calls() {
		if c == name {
			n++
		}
	}
	return n
}

func (w *fakeWindow) Show() error       { return w.record("Show") }
func (w *fakeWindow) Hide() error       { return w.record("Hide") }
func (w *fakeWindow) Unminimise() error { return w.record("Unminimise") }
func (w *fakeWindow) Focus() error      { return w.record("Focus") }
func (w *fakeWindow) Center() error     { return w.record("Center") }

func (w *fakeWindow) SetPosition(x, y int) error {
	if err := w.record("SetPosition"); err != nil {
		return err
	}
	w.mu.Lock()
	w.x, w.y = x, y
	w.mu.Unlock()
	return nil
}

func (w *fakeWindow) Size() (int, int, error) {
	if err := w.record("Size"); err != nil {
		return 0, 0, err
	}
	return w.winW, w.winH, nil
}

func (w *fakeWindow) OuterSize() (int, int, error) {
	if err := w.record("OuterSize"); err != nil {
		return 0, 0, err
	}
	width, height := toPhysical(w.winW, w.winH, w.screen())
	return width, height, nil
}

// screen describes the fake monitor the way the Wails runtime does.
func (w *fakeWindow) screen() wailsRuntime.Screen {
	scale := w.scale
	if scale == 0 {
		scale = 1
	}
	var s wailsRuntime.Screen
	s.IsCurrent = true
	s.PhysicalSize.Width, s.PhysicalSize.Height = w.screenW, w.screenH
	s.Size.Width = int(math.Round(float64(w.screenW) / scale))
	s.Size.Height = int(math.Round(float64(w.screenH) / scale))
	return s
}

func (w *fakeWindow) ScreenSize() (int, int, error) {
	if err := w.record("ScreenSize"); err != nil {
		return 0, 0, err
	}
	return w.screenW, w.screenH, nil
}

type emitted struct {
	name string
	data []interface{}
}

// fakeEmitter collects emitted events. It is safe for concurrent use.
type fakeEmitter struct {
	mu     sync.Mutex
	events []emitted
	notify chan struct{}
}

func newFakeEmitter() *fakeEmitter {
	return &fakeEmitter{notify: make(chan struct{}, 64)}
}

func (e *fakeEmitter) Emit(name string, data ...interface{}) {
	e.mu.Lock()
	e.events = append(e.events, emitted{name: name, data: data})
	e.mu.Unlock()
	select {
	case e.notify <- struct{}{}:
	default:
	}
}

func (e *fakeEmitter) Events() []emitted {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]emitted(nil), e.events...)
}

// named returns the events with the given name.
func (e *fakeEmitter) named(name string) []emitted {
	var out []emitted
	for _, ev := range e.Events() {
		if ev.name == name {
			out = append(out, ev)
		}
	}
	return out
}

type fakeQuitter struct {
	mu    sync.Mutex
	count int
}

func (q *fakeQuitter) Quit() {
	q.mu.Lock()
	q.count++
	q.mu.Unlock()
}

func (q *fakeQuitter) Count() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

type fakeTray struct {
	ready     bool
	setErr    error
	installed []TrayMenu
}

func (t *fakeTray) Ready() bool { return t.ready }

func (t *fakeTray) SetMenu(menu TrayMenu) error {
	if t.setErr != nil {
		return t.setErr
	}
	t.installed = append(t.installed, menu)
	return nil
}
