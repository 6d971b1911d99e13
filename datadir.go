package main

import (
	"os"
	"path/filepath"
	"runtime"
)

// dataDirPath holds the absolute path to the directory with settings, overlay
// images and screenshots. On macOS it resolves to the app container so the
// planner works inside the sandbox; elsewhere it sits next to the executable
// so the tool is relocatable regardless of working directory.
var dataDirPath = func() string {
	if runtime.GOOS == "darwin" {
		if home, err := os.UserHomeDir(); err == nil {
			if filepath.Base(home) == "Data" && filepath.Base(filepath.Dir(home)) == "com.terraplan.app" {
				home = filepath.Dir(home)
			} else {
				home = filepath.Join(home, "Library", "Containers", "com.terraplan.app")
			}
			_ = os.MkdirAll(home, 0o755)
			return home
		}
	}
	if exe, err := os.Executable(); err == nil {
		if dir, err := filepath.Abs(filepath.Dir(exe)); err == nil {
			return filepath.Join(dir, "data")
		}
	}
	// Fallback to relative path.
	return "data"
}()

// overlayDirPath returns the directory scanned for overlay images. A -dir
// flag wins for the session, then a saved setting, then data/overlays.
func overlayDirPath() string {
	if overlayDirFlag != "" {
		return overlayDirFlag
	}
	if gs.ImageDir != "" {
		return gs.ImageDir
	}
	return filepath.Join(dataDirPath, "overlays")
}
