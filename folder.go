package main

import (
	"os"

	"github.com/pkg/browser"
	"github.com/skratchdot/open-golang/open"
)

const projectPageURL = "https://github.com/terraplan/terraplan"

// openOverlayFolder reveals the scanned image directory in the OS file
// manager, creating it first so there is always something to open.
func openOverlayFolder() {
	dir := overlayDirPath()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logError("open folder: create %v: %v", dir, err)
		return
	}
	if err := open.Run(dir); err != nil {
		logWarn("open folder %v: %v", dir, err)
		return
	}
	statusMessage("opened " + dir)
}

func openProjectPage() {
	if err := browser.OpenURL(projectPageURL); err != nil {
		logWarn("open project page: %v", err)
	}
}
