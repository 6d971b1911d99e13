package main

import (
	"os"
	"runtime"
	"time"

	"github.com/gen2brain/beeep"
	"golang.org/x/time/rate"
)

// Throttled so a held key cannot flood the desktop with toasts.
var notifyLimiter = rate.NewLimiter(rate.Every(3*time.Second), 2)

// notifyUser shows a desktop notification, best-effort and non-fatal.
func notifyUser(title, body string) {
	if body == "" || !gs.Notifications {
		return
	}
	// Skip on headless Linux without DISPLAY; beeep would error.
	if runtime.GOOS == "linux" && os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
		return
	}
	if !notifyLimiter.Allow() {
		return
	}
	go func() {
		_ = beeep.Notify(title, body, "")
	}()
}
