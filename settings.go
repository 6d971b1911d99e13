package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/time/rate"
)

const SETTINGS_VERSION = 3

var gs settings = defaultSettings()

var gsdef settings = settings{
	Version: SETTINGS_VERSION,

	OverlaySize:        mapSide,
	OverlayX:           0,
	OverlayY:           0,
	OverlayZ:           0,
	RotationDegrees:    0,
	Alpha:              0,
	ShowThroughTerrain: false,
	OverlayVisible:     false,

	Seed:     1,
	Bindings: map[string]string{},

	ShowFPS:         false,
	ShowThumbnails:  true,
	Notifications:   true,
	AdditiveBlend:   false,
	SmoothFilter:    true,
	TimestampFormat: "3:04PM",

	vsync: true,
}

type settings struct {
	Version int

	ImagePath          string
	OverlaySize        float64
	OverlayX           float64
	OverlayY           float64
	OverlayZ           float64
	RotationDegrees    float64
	Alpha              float64
	ShowThroughTerrain bool
	OverlayVisible     bool
	ElevationSet       bool

	ImageDir string
	Seed     int64
	Bindings map[string]string

	ShowFPS          bool
	ShowThumbnails   bool
	Notifications    bool
	AdditiveBlend    bool
	SmoothFilter     bool
	StatusTimestamps bool
	TimestampFormat  string
	Theme            string
	Fullscreen       bool
	WindowWidth      int
	WindowHeight     int

	vsync bool
}

// defaultSettings copies the defaults without sharing the Bindings map
// header; a plain struct copy of gsdef would alias it, and unmarshalling
// into the copy would write file overrides through into the defaults.
func defaultSettings() settings {
	s := gsdef
	s.Bindings = map[string]string{}
	return s
}

var (
	settingsDirty bool
	// Writes are throttled so a held nudge key does not hammer the disk.
	settingsSaveLimiter = rate.NewLimiter(rate.Every(time.Second), 1)
)

const settingsFile = "settings.json"

func loadSettings() bool {
	path := filepath.Join(dataDirPath, settingsFile)
	data, err := os.ReadFile(path)
	if err != nil {
		gs = defaultSettings()
		return false
	}

	tmp := defaultSettings()
	if err := json.Unmarshal(data, &tmp); err != nil {
		logWarn("settings unreadable, using defaults: %v", err)
		gs = defaultSettings()
		return false
	}
	if tmp.Version != SETTINGS_VERSION {
		gs = defaultSettings()
		return false
	}
	gs = tmp

	if gs.Bindings == nil {
		gs.Bindings = map[string]string{}
	}

	// Clamp hand-edited values back into range.
	if gs.OverlaySize <= 0 {
		gs.OverlaySize = gsdef.OverlaySize
	}
	if gs.Alpha < 0 {
		gs.Alpha = 0
	}
	if gs.Alpha > maxOverlayAlpha {
		gs.Alpha = maxOverlayAlpha
	}
	gs.RotationDegrees = normalizeDegrees(gs.RotationDegrees)
	if gs.TimestampFormat == "" {
		gs.TimestampFormat = gsdef.TimestampFormat
	}

	return true
}

func saveSettings() {
	data, err := json.MarshalIndent(gs, "", "  ")
	if err != nil {
		logError("save settings: %v", err)
		return
	}
	if err := os.MkdirAll(dataDirPath, 0o755); err != nil {
		logError("save settings: %v", err)
		return
	}
	path := filepath.Join(dataDirPath, settingsFile)
	if err := os.WriteFile(path+".tmp", data, 0644); err != nil {
		logError("save settings: %v", err)
		return
	}

	os.Rename(path+".tmp", path)
}

// syncWindowSettings mirrors the live window state into the persisted
// settings and reports whether anything changed.
func syncWindowSettings() bool {
	if isWASM {
		return false
	}
	changed := false
	if fs := ebiten.IsFullscreen(); fs != gs.Fullscreen {
		gs.Fullscreen = fs
		changed = true
	}
	if w, h := ebiten.WindowSize(); w > 0 && h > 0 && (w != gs.WindowWidth || h != gs.WindowHeight) {
		gs.WindowWidth, gs.WindowHeight = w, h
		changed = true
	}
	return changed
}

// syncOverlaySettings copies the live overlay state into the persisted
// settings and reports whether anything changed since the last sync.
func syncOverlaySettings(o *overlayStore) bool {
	st := o.snapshot()
	changed := false
	if gs.ImagePath != st.imagePath {
		gs.ImagePath = st.imagePath
		changed = true
	}
	if gs.OverlaySize != st.size {
		gs.OverlaySize = st.size
		changed = true
	}
	if gs.OverlayX != st.x || gs.OverlayY != st.y || gs.OverlayZ != st.z {
		gs.OverlayX, gs.OverlayY, gs.OverlayZ = st.x, st.y, st.z
		changed = true
	}
	if gs.RotationDegrees != st.rotation {
		gs.RotationDegrees = st.rotation
		changed = true
	}
	if gs.Alpha != st.alpha {
		gs.Alpha = st.alpha
		changed = true
	}
	if gs.ShowThroughTerrain != st.showThrough {
		gs.ShowThroughTerrain = st.showThrough
		changed = true
	}
	if gs.OverlayVisible != st.visible {
		gs.OverlayVisible = st.visible
		changed = true
	}
	return changed
}
