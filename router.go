package main

// Quitter ends the application.
type Quitter interface {
	Quit()
}

// TrayRouter turns tray interactions into window actions or tray-action
// events for the UI. It keeps no state between events.
type TrayRouter struct {
	window  Window
	emitter Emitter
	quitter Quitter
}

// NewTrayRouter returns a router acting on window, emitting through
// emitter and quitting through quitter.
func NewTrayRouter(window Window, emitter Emitter, quitter Quitter) *TrayRouter {
	return &TrayRouter{window: window, emitter: emitter, quitter: quitter}
}

// IconClicked handles a single click on the tray icon.
func (r *TrayRouter) IconClicked() {
	r.reveal()
}

// Dispatch handles a menu selection.
func (r *TrayRouter) Dispatch(action Action) {
	Log.Debug("tray menu selected", "action", action.ID())

	switch action.Kind {
	case ActionOpen:
		r.reveal()
	case ActionQuit:
		r.quitter.Quit()
	case ActionNewContact:
		r.reveal()
		r.emitter.Emit(EventTrayAction, trayActionNewContact)
	case ActionChat:
		r.reveal()
		r.emitter.Emit(EventTrayAction, chatTrayAction(action.Contact))
	default:
		Log.Debug("ignoring unknown tray action", "action", action.ID())
	}
}

// DispatchID handles a menu selection given by its string key. Unknown
// keys are ignored.
func (r *TrayRouter) DispatchID(id string) {
	action, ok := ParseAction(id)
	if !ok {
		Log.Debug("ignoring unknown tray action", "action", id)
		return
	}
	r.Dispatch(action)
}

// reveal unminimises, shows and focuses the main window. Failures are not
// fatal; the window may already be gone.
func (r *TrayRouter) reveal() {
	if r.window == nil {
		Log.Debug("reveal window skipped", "error", ErrWindowNotReady)
		return
	}
	if err := r.window.Unminimise(); err != nil {
		Log.Debug("unminimise window failed", "error", err)
	}
	if err := r.window.Show(); err != nil {
		Log.Debug("show window failed", "error", err)
	}
	if err := r.window.Focus(); err != nil {
		Log.Debug("focus window failed", "error", err)
	}
}
