package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Log is the global structured logger instance.
var Log = slog.Default()

// logLevelVar allows changing the log level at runtime.
var logLevelVar slog.LevelVar

// webviewLog forwards records to the UI once the Wails context exists.
var webviewLog = &webviewHandler{level: &logLevelVar, shared: &webviewTarget{}}

// InitLogger initializes the global structured logger.
// In debug mode records go to stdout and to the webview; otherwise to a
// dated file in the log directory.
// level: "error" (default), "warn", "info", or "debug".
// Returns the log file handle (nil in debug mode) and any error.
func InitLogger(level string, debug bool) (*os.File, error) {
	if debug {
		setLogLevelVar("debug")
		Log = slog.New(newFanoutHandler(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: &logLevelVar}),
			webviewLog,
		))
		return nil, nil
	}

	setLogLevelVar(level)

	// Log file: ~/.pester/logs/pester_YYYYMMDD_HHMMSS.log
	logDir := LogDir()
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, err
	}
	logFile := filepath.Join(logDir, "pester_"+time.Now().Format("20060102_150405")+".log")

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	Log = newFileLogger(f)
	return f, nil
}

func newFileLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: &logLevelVar}))
}

// SetLogLevel changes the log level at runtime without restarting.
func SetLogLevel(level string) {
	setLogLevelVar(level)
}

// GetLogLevel returns the current log level as a string.
func GetLogLevel() string {
	switch logLevelVar.Level() {
	case slog.LevelDebug:
		return "debug"
	case slog.LevelInfo:
		return "info"
	case slog.LevelWarn:
		return "warn"
	default:
		return "error"
	}
}

// LogDir returns the path to the log directory.
func LogDir() string {
	return DataPath("logs")
}

func setLogLevelVar(level string) {
	switch strings.ToLower(level) {
	case "debug":
		logLevelVar.Set(slog.LevelDebug)
	case "info":
		logLevelVar.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevelVar.Set(slog.LevelWarn)
	default:
		logLevelVar.Set(slog.LevelError)
	}
}

// logEvent is the payload of the log event sent to the UI.
type logEvent struct {
	Level   string `json:"level"`
	Message string `json:"message"`
	Time    string `json:"time"`
}

type webviewTarget struct {
	mu      sync.RWMutex
	emitter Emitter
}

// webviewHandler is a slog.Handler that emits each record as a log event.
type webviewHandler struct {
	level  slog.Leveler
	attrs  []slog.Attr
	shared *webviewTarget
}

// attach starts forwarding to emitter; nil stops it.
func (h *webviewHandler) attach(emitter Emitter) {
	h.shared.mu.Lock()
	h.shared.emitter = emitter
	h.shared.mu.Unlock()
}

func (h *webviewHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *webviewHandler) Handle(_ context.Context, r slog.Record) error {
	h.shared.mu.RLock()
	emitter := h.shared.emitter
	h.shared.mu.RUnlock()
	if emitter == nil {
		return nil
	}

	var b strings.Builder
	b.WriteString(r.Message)
	writeAttr := func(a slog.Attr) bool {
		b.WriteString(" ")
		b.WriteString(a.Key)
		b.WriteString("=")
		b.WriteString(a.Value.String())
		return true
	}
	for _, a := range h.attrs {
		writeAttr(a)
	}
	r.Attrs(writeAttr)

	emitter.Emit(EventLog, logEvent{
		Level:   strings.ToLower(r.Level.String()),
		Message: b.String(),
		Time:    r.Time.Format(time.RFC3339),
	})
	return nil
}

func (h *webviewHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &webviewHandler{level: h.level, attrs: merged, shared: h.shared}
}

// WithGroup is flattened; the UI only shows the message line.
func (h *webviewHandler) WithGroup(string) slog.Handler {
	return h
}

// fanoutHandler sends each record to every handler that accepts it.
type fanoutHandler struct {
	handlers []slog.Handler
}

func newFanoutHandler(handlers ...slog.Handler) *fanoutHandler {
	return &fanoutHandler{handlers: handlers}
}

func (f *fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f *fanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, h := range f.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (f *fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	hs := make([]slog.Handler, len(f.handlers))
	for i, h := range f.handlers {
		hs[i] = h.WithAttrs(attrs)
	}
	return &fanoutHandler{handlers: hs}
}

func (f *fanoutHandler) WithGroup(name string) slog.Handler {
	hs := make([]slog.Handler, len(f.handlers))
	for i, h := range f.handlers {
		hs[i] = h.WithGroup(name)
	}
	return &fanoutHandler{handlers: hs}
}
