package main

import (
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/gen2brain/beeep"
	"github.com/skratchdot/open-golang/open"
)

// notifyAppName is the application name shown on system notifications.
const notifyAppName = "Pester"

var notifySend = beeep.Notify

// showNotification sends a system notification.
func showNotification(title, body string) error {
	if title == "" && body == "" {
		return errors.New("notification needs a title or a body")
	}
	if err := notifySend(title, body, trayIcon()); err != nil {
		return fmt.Errorf("notify: %w", err)
	}
	return nil
}

var openStart = open.Start

// openURL opens rawURL in the default browser or mail client.
func openURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("open url: %w", err)
	}
	switch u.Scheme {
	case "http", "https", "mailto":
	default:
		return fmt.Errorf("open url: unsupported scheme %q", u.Scheme)
	}
	if err := openStart(u.String()); err != nil {
		return fmt.Errorf("open url: %w", err)
	}
	return nil
}

// openPath opens a local file or directory with its default application.
func openPath(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("open path: %w", err)
	}
	if err := openStart(path); err != nil {
		return fmt.Errorf("open path: %w", err)
	}
	return nil
}
