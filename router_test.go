package main

import (
	"errors"
	"testing"
)

func newTestRouter() (*TrayRouter, *fakeWindow, *fakeEmitter, *fakeQuitter) {
	w := newFakeWindow()
	e := newFakeEmitter()
	q := &fakeQuitter{}
	return NewTrayRouter(w, e, q), w, e, q
}

func TestRouterOpenRevealsWindow(t *testing.T) {
	r, w, e, q := newTestRouter()
	r.Dispatch(OpenAction())

	want := []string{"Unminimise", "Show", "Focus"}
	got := w.Calls()
	if len(got) != len(want) {
		t.Fatalf("window calls = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("call %d = %s, want %s", i, got[i], want[i])
		}
	}
	if len(e.Events()) != 0 {
		t.Errorf("open emitted %v", e.Events())
	}
	if q.Count() != 0 {
		t.Error("open quit the app")
	}
}

func TestRouterIconClickRevealsWindow(t *testing.T) {
	r, w, e, _ := newTestRouter()
	r.IconClicked()
	if w.count("Show") != 1 || w.count("Focus") != 1 {
		t.Errorf("window calls = %v", w.Calls())
	}
	if len(e.Events()) != 0 {
		t.Errorf("icon click emitted %v", e.Events())
	}
}

func TestRouterNewContact(t *testing.T) {
	r, w, e, q := newTestRouter()
	r.Dispatch(NewContactAction())

	if w.count("Show") != 1 {
		t.Errorf("window shown %d times", w.count("Show"))
	}
	events := e.named(EventTrayAction)
	if len(events) != 1 {
		t.Fatalf("got %d tray-action events, want 1", len(events))
	}
	if got := events[0].data[0]; got != "new_contact" {
		t.Errorf("payload = %v, want new_contact", got)
	}
	if q.Count() != 0 {
		t.Error("new contact quit the app")
	}
}

func TestRouterChat(t *testing.T) {
	r, w, e, _ := newTestRouter()
	r.Dispatch(ChatAction("alice"))

	if w.count("Show") != 1 {
		t.Errorf("window shown %d times", w.count("Show"))
	}
	events := e.named(EventTrayAction)
	if len(events) != 1 {
		t.Fatalf("got %d tray-action events, want 1", len(events))
	}
	if got := events[0].data[0]; got != "chat:alice" {
		t.Errorf("payload = %v, want chat:alice", got)
	}
}

func TestRouterQuitOnlyOnQuit(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		quits int
	}{
		{"quit", "quit", 1},
		{"open", "open", 0},
		{"new contact", "new_contact", 0},
		{"chat", "chat_bob", 0},
		{"chat with quit id", "chat_quit", 0},
		{"unknown", "settings", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, w, _, q := newTestRouter()
			r.DispatchID(tt.id)
			if q.Count() != tt.quits {
				t.Errorf("quit count = %d, want %d", q.Count(), tt.quits)
			}
			if tt.quits > 0 && len(w.Calls()) != 0 {
				t.Errorf("quit touched the window: %v", w.Calls())
			}
		})
	}
}

func TestRouterDispatchIDChatPrefix(t *testing.T) {
	r, _, e, _ := newTestRouter()
	r.DispatchID("chat_chat_x")

	events := e.named(EventTrayAction)
	if len(events) != 1 || events[0].data[0] != "chat:chat_x" {
		t.Errorf("events = %v, want one chat:chat_x", events)
	}
}

func TestRouterUnknownIgnored(t *testing.T) {
	r, w, e, q := newTestRouter()
	r.DispatchID("not-an-action")
	r.Dispatch(Action{})

	if len(w.Calls()) != 0 || len(e.Events()) != 0 || q.Count() != 0 {
		t.Errorf("unknown action had effects: calls=%v events=%v quits=%d", w.Calls(), e.Events(), q.Count())
	}
}

func TestRouterRevealFailuresAreSwallowed(t *testing.T) {
	r, w, e, _ := newTestRouter()
	w.errs["Unminimise"] = ErrWindowNotReady
	w.errs["Show"] = errors.New("gone")
	w.errs["Focus"] = errors.New("gone")

	r.Dispatch(ChatAction("bob"))

	if w.count("Focus") != 1 {
		t.Errorf("reveal stopped early: %v", w.Calls())
	}
	events := e.named(EventTrayAction)
	if len(events) != 1 || events[0].data[0] != "chat:bob" {
		t.Errorf("events = %v, want chat:bob despite window errors", events)
	}
}

func TestRouterWithoutWindow(t *testing.T) {
	e := newFakeEmitter()
	r := NewTrayRouter(nil, e, &fakeQuitter{})
	r.Dispatch(NewContactAction())
	if len(e.named(EventTrayAction)) != 1 {
		t.Errorf("events = %v", e.Events())
	}
}
