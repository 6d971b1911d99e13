package main

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// saveScreenshot writes the composited frame to the Screenshots directory.
// Called at the end of Draw so the capture includes everything on screen.
func saveScreenshot(frame image.Image) {
	dir := filepath.Join(dataDirPath, "Screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logError("screenshot: create %v: %v", dir, err)
		return
	}

	name := "terraplan"
	if gs.ImagePath != "" {
		base := strings.TrimSuffix(strings.ToLower(filepath.Base(gs.ImagePath)), ".png")
		if len(base) > 16 {
			base = base[:16]
		}
		if base != "" {
			name = base
		}
	}
	ts := time.Now().Format("2006-01-02-15-04-05")
	fn := filepath.Join(dir, fmt.Sprintf("%v__%s.png", name, ts))

	f, err := os.Create(fn)
	if err != nil {
		logError("screenshot: create %v: %v", fn, err)
		return
	}
	defer f.Close()
	if err := png.Encode(f, frame); err != nil {
		logError("screenshot: encode %v: %v", fn, err)
		return
	}
	statusMessage(fmt.Sprintf("screenshot saved: %s", filepath.Base(fn)))
	notifyUser("Screenshot", filepath.Base(fn))
}
