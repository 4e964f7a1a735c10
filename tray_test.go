package main

import (
	"errors"
	"testing"
)

func TestTrayMenuControllerUpdate(t *testing.T) {
	tray := &fakeTray{ready: true}
	c := NewTrayMenuController(tray)

	if err := c.Update([]string{"alice"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(tray.installed) != 1 {
		t.Fatalf("installed %d menus, want 1", len(tray.installed))
	}
	if got := len(c.Current().Items()); got != 4 {
		t.Errorf("current menu has %d items, want 4", got)
	}
}

func TestTrayMenuControllerNotReady(t *testing.T) {
	tray := &fakeTray{ready: true}
	c := NewTrayMenuController(tray)
	if err := c.Update([]string{"alice", "bob"}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	tray.ready = false
	err := c.Update([]string{"carol"})
	if !errors.Is(err, ErrTrayNotReady) {
		t.Fatalf("err = %v, want ErrTrayNotReady", err)
	}
	if err.Error() != "tray not found" {
		t.Errorf("message = %q", err.Error())
	}
	if len(tray.installed) != 1 {
		t.Errorf("installed %d menus, want previous only", len(tray.installed))
	}
	if got := len(c.Current().Items()); got != 5 {
		t.Errorf("current menu has %d items, want previous 5", got)
	}
}

func TestTrayMenuControllerNilTray(t *testing.T) {
	c := NewTrayMenuController(nil)
	if err := c.Update(nil); !errors.Is(err, ErrTrayNotReady) {
		t.Errorf("err = %v, want ErrTrayNotReady", err)
	}
}

func TestTrayMenuControllerSetMenuError(t *testing.T) {
	boom := errors.New("native menu failed")
	tray := &fakeTray{ready: true, setErr: boom}
	c := NewTrayMenuController(tray)

	err := c.Update([]string{"alice"})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped native error", err)
	}
	if len(c.Current().Entries) != 0 {
		t.Error("failed menu recorded as current")
	}
}
