package main

import (
	"context"
	"sync"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

// Event name constants for Wails runtime events
const (
	EventTrayAction      = "tray-action"
	EventLog             = "log"
	EventSocketMessage   = "ws-message"
	EventSocketClosed    = "ws-closed"
	trayActionNewContact = "new_contact"
	trayActionChatPrefix = "chat:"
)

// Emitter sends named events to the UI layer.
type Emitter interface {
	Emit(name string, data ...interface{})
}

// wailsEmitter emits through the Wails runtime. Events emitted before
// it is bound to the startup context are dropped.
type wailsEmitter struct {
	mu  sync.RWMutex
	ctx context.Context
}

func (e *wailsEmitter) bind(ctx context.Context) {
	e.mu.Lock()
	e.ctx = ctx
	e.mu.Unlock()
}

func (e *wailsEmitter) Emit(name string, data ...interface{}) {
	e.mu.RLock()
	ctx := e.ctx
	e.mu.RUnlock()
	if ctx == nil {
		return
	}
	wailsRuntime.EventsEmit(ctx, name, data...)
}

// chatTrayAction is the tray-action payload for opening a chat.
func chatTrayAction(contact string) string {
	return trayActionChatPrefix + contact
}
