package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	goruntime "runtime"
	"sync/atomic"

	"github.com/gen2brain/beeep"
	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

//go:embed build/appicon.png
var appIconPNG []byte

// windowTitle is also used to find the window of a running instance.
const windowTitle = "Pester"

// launchOptions are the command-line choices that shape a desktop run.
type launchOptions struct {
	Debug     bool
	Minimized bool
}

// DesktopApp is the Wails application binding struct.
// Methods on this struct are exposed to the frontend via window.go.main.DesktopApp.
type DesktopApp struct {
	ctx  context.Context
	cfg  *AppConfig
	opts launchOptions
	goos string

	emitter *wailsEmitter
	window  Window
	tray    *systrayTray
	menu    *TrayMenuController
	router  *TrayRouter
	sockets *SocketManager
	store   *Store

	quitting atomic.Bool
	startErr error
}

// NewDesktopApp creates the application context. Every component is
// created here once and shares the same window and emitter.
func NewDesktopApp(cfg *AppConfig, opts launchOptions) *DesktopApp {
	a := &DesktopApp{
		cfg:     cfg,
		opts:    opts,
		goos:    goruntime.GOOS,
		emitter: &wailsEmitter{},
		window:  &wailsWindow{},
	}
	a.router = NewTrayRouter(a.window, a.emitter, a)
	a.tray = newSystrayTray(a.router.Dispatch, a.router.IconClicked)
	a.menu = NewTrayMenuController(a.tray)
	a.sockets = NewSocketManager(a.emitter)
	return a
}

// startup is called when the Wails app starts.
func (a *DesktopApp) startup(ctx context.Context) {
	Log.Debug("Wails OnStartup", "goos", a.goos)
	a.ctx = ctx
	a.emitter.bind(ctx)
	if w, ok := a.window.(*wailsWindow); ok {
		w.bind(ctx)
	}
	if a.opts.Debug {
		webviewLog.attach(a.emitter)
	}

	beeep.AppName = notifyAppName

	store, err := OpenStore(DataPath("store.db"))
	if err != nil {
		Log.Error("opening store failed", "error", err)
	} else {
		a.store = store
	}

	if !a.openMainWindow() {
		return
	}

	a.tray.Start(BuildTrayMenu(nil))
}

// openMainWindow shows the main window at startup. A fatal placement error
// is recorded as the exit error and quits the app; it reports false then.
func (a *DesktopApp) openMainWindow() bool {
	if err := a.showMainWindow(); err != nil {
		a.startErr = err
		Log.Error("window placement failed", "error", err)
		a.Quit()
		return false
	}
	return true
}

// showMainWindow places the window for the host OS and reveals it, unless
// the app was launched minimized.
func (a *DesktopApp) showMainWindow() error {
	if err := PlaceWindow(a.goos, a.window); err != nil {
		if a.cfg.PlacementStrict {
			return err
		}
		Log.Warn("window placement failed, using default position", "error", err)
	}

	if a.opts.Minimized || a.cfg.StartMinimized {
		Log.Info("starting minimized to tray")
		return nil
	}
	if err := a.window.Show(); err != nil {
		return fmt.Errorf("show window: %w", err)
	}
	return nil
}

// onDomReady is called when the frontend DOM is fully loaded.
func (a *DesktopApp) onDomReady(ctx context.Context) {
	Log.Debug("Wails OnDomReady")
}

// beforeClose keeps the app alive in the tray: a close request hides the
// window. Only Quit lets the close through.
func (a *DesktopApp) beforeClose(ctx context.Context) (prevent bool) {
	if a.quitting.Load() {
		return false
	}
	if err := a.window.Hide(); err != nil {
		Log.Debug("hide window failed", "error", err)
	}
	return true
}

// shutdown is called when the Wails app is closing.
func (a *DesktopApp) shutdown(ctx context.Context) {
	webviewLog.attach(nil)

	w, h, err := a.window.Size()
	if err == nil {
		a.cfg.WindowWidth = w
		a.cfg.WindowHeight = h
	}
	if err := SaveConfig(a.cfg); err != nil {
		Log.Error("saving config failed", "error", err)
	}

	a.sockets.CloseAll()
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			Log.Error("closing store failed", "error", err)
		}
	}
	a.tray.Close()
	Log.Info("shutdown complete")
}

// Quit exits the application, bypassing the hide-on-close behavior.
func (a *DesktopApp) Quit() {
	a.quitting.Store(true)
	if a.ctx == nil {
		os.Exit(0)
	}
	runtimeQuit(a.ctx)
}

var runtimeQuit = wailsRuntime.Quit

// UpdateTrayMenu rebuilds the tray menu from the recent contacts, most
// relevant first.
func (a *DesktopApp) UpdateTrayMenu(recentUsers []string) error {
	if err := a.menu.Update(recentUsers); err != nil {
		Log.Warn("tray menu update failed", "error", err)
		return err
	}
	return nil
}

// ShowNotification sends a system notification.
func (a *DesktopApp) ShowNotification(title, body string) error {
	return showNotification(title, body)
}

// OpenURL opens an http(s) or mailto URL with the default handler.
func (a *DesktopApp) OpenURL(url string) error {
	return openURL(url)
}

// OpenPath opens a local file or folder with its default application.
func (a *DesktopApp) OpenPath(path string) error {
	return openPath(path)
}

// OpenLogDir opens the log directory in the system file explorer.
func (a *DesktopApp) OpenLogDir() error {
	logDir := LogDir()
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}
	return openPath(logDir)
}

// ClipboardGetText returns the clipboard text.
func (a *DesktopApp) ClipboardGetText() (string, error) {
	if a.ctx == nil {
		return "", ErrWindowNotReady
	}
	return wailsRuntime.ClipboardGetText(a.ctx)
}

// ClipboardSetText replaces the clipboard text.
func (a *DesktopApp) ClipboardSetText(text string) error {
	if a.ctx == nil {
		return ErrWindowNotReady
	}
	return wailsRuntime.ClipboardSetText(a.ctx, text)
}

var errStoreUnavailable = errors.New("store unavailable")

func (a *DesktopApp) kv() (*Store, error) {
	if a.store == nil {
		return nil, errStoreUnavailable
	}
	return a.store, nil
}

// StoreGet returns the JSON value under key, or null when absent.
func (a *DesktopApp) StoreGet(key string) (string, error) {
	s, err := a.kv()
	if err != nil {
		return "", err
	}
	v, ok, err := s.Get(key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "null", nil
	}
	return v, nil
}

// StoreSet stores a JSON value under key.
func (a *DesktopApp) StoreSet(key, value string) error {
	s, err := a.kv()
	if err != nil {
		return err
	}
	return s.Set(key, value)
}

// StoreDelete removes key, reporting whether it existed.
func (a *DesktopApp) StoreDelete(key string) (bool, error) {
	s, err := a.kv()
	if err != nil {
		return false, err
	}
	return s.Delete(key)
}

// StoreKeys lists all stored keys.
func (a *DesktopApp) StoreKeys() ([]string, error) {
	s, err := a.kv()
	if err != nil {
		return nil, err
	}
	return s.Keys()
}

// StoreClear removes all stored keys.
func (a *DesktopApp) StoreClear() error {
	s, err := a.kv()
	if err != nil {
		return err
	}
	return s.Clear()
}

// WSConnect opens a websocket and returns its id. Incoming messages arrive
// as ws-message events.
func (a *DesktopApp) WSConnect(url string) (string, error) {
	ctx := a.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return a.sockets.Connect(ctx, url)
}

// WSSend sends a text message on the websocket id.
func (a *DesktopApp) WSSend(id, text string) error {
	return a.sockets.Send(id, text)
}

// WSClose closes the websocket id.
func (a *DesktopApp) WSClose(id string) error {
	return a.sockets.Close(id)
}

// EnableAutostart starts Pester minimized at login.
func (a *DesktopApp) EnableAutostart() error {
	return EnableAutostart()
}

// DisableAutostart stops starting Pester at login.
func (a *DesktopApp) DisableAutostart() error {
	return DisableAutostart()
}

// IsAutostartEnabled reports whether launch at login is on.
func (a *DesktopApp) IsAutostartEnabled() (bool, error) {
	return IsAutostartEnabled()
}

// SetLogLevel changes the log level and remembers it.
func (a *DesktopApp) SetLogLevel(level string) error {
	SetLogLevel(level)
	a.cfg.LogLevel = GetLogLevel()
	return SaveConfig(a.cfg)
}

// GetLogLevel returns the current log level.
func (a *DesktopApp) GetLogLevel() string {
	return GetLogLevel()
}

// GetAppInfo returns application info for the frontend.
func (a *DesktopApp) GetAppInfo() map[string]interface{} {
	return map[string]interface{}{
		"name":    windowTitle,
		"version": AppVersion,
		"os":      a.goos,
		"debug":   a.opts.Debug,
	}
}
