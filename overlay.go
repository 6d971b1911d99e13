package main

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// overlayChange tells the presenter which part of the overlay state moved so
// it can update the scene without polling.
type overlayChange int

const (
	overlayImageChanged overlayChange = iota
	overlayTransformChanged
	overlayAlphaChanged
	overlayDepthChanged
	overlayVisibilityChanged
)

const (
	// Alpha is transparency: rendered opacity is 1-alpha. The cap keeps the
	// overlay from vanishing entirely.
	maxOverlayAlpha = 0.95

	// Smallest footprint the input surface will shrink the overlay to.
	minOverlaySize = 1.0
)

// overlayState is the full set of user-editable overlay parameters. y is the
// elevation in world units; size is the side length of the square footprint.
type overlayState struct {
	imagePath   string
	size        float64
	x, y, z     float64
	rotation    float64
	alpha       float64
	showThrough bool
	visible     bool
}

// overlayStore holds the live overlay parameters and the scanned image list.
// Setters are no-ops when the value does not change; otherwise they update
// the state and notify the observer with the specific change kind. The
// notify callback runs outside the lock so observers may call back in.
type overlayStore struct {
	mu sync.Mutex
	st overlayState

	scanDir     string
	files       []string
	listVersion uint64
	refreshedAt time.Time

	notify func(overlayChange)
}

func newOverlayStore(scanDir string) *overlayStore {
	return &overlayStore{
		scanDir: scanDir,
		st: overlayState{
			size: mapSide,
		},
	}
}

// normalizeDegrees folds any angle into (-180, 180]. Multi-revolution
// inputs reduce in a single step, so the function is idempotent.
func normalizeDegrees(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d <= -180 {
		d += 360
	} else if d > 180 {
		d -= 360
	}
	return d
}

func (o *overlayStore) snapshot() overlayState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.st
}

func (o *overlayStore) setObserver(fn func(overlayChange)) {
	o.mu.Lock()
	o.notify = fn
	o.mu.Unlock()
}

func (o *overlayStore) emit(ch overlayChange) {
	o.mu.Lock()
	fn := o.notify
	o.mu.Unlock()
	if fn != nil {
		fn(ch)
	}
}

func (o *overlayStore) setImagePath(path string) {
	o.mu.Lock()
	if o.st.imagePath == path {
		o.mu.Unlock()
		return
	}
	o.st.imagePath = path
	o.mu.Unlock()
	o.emit(overlayImageChanged)
}

func (o *overlayStore) setSize(size float64) {
	if size < minOverlaySize {
		size = minOverlaySize
	}
	o.mu.Lock()
	if o.st.size == size {
		o.mu.Unlock()
		return
	}
	o.st.size = size
	o.mu.Unlock()
	o.emit(overlayTransformChanged)
}

func (o *overlayStore) nudgeSize(delta float64) {
	o.mu.Lock()
	size := o.st.size + delta
	o.mu.Unlock()
	o.setSize(size)
}

func (o *overlayStore) setPosition(x, z float64) {
	o.mu.Lock()
	if o.st.x == x && o.st.z == z {
		o.mu.Unlock()
		return
	}
	o.st.x, o.st.z = x, z
	o.mu.Unlock()
	o.emit(overlayTransformChanged)
}

func (o *overlayStore) nudgePosition(dx, dz float64) {
	o.mu.Lock()
	x, z := o.st.x+dx, o.st.z+dz
	o.mu.Unlock()
	o.setPosition(x, z)
}

func (o *overlayStore) setElevation(y float64) {
	o.mu.Lock()
	if o.st.y == y {
		o.mu.Unlock()
		return
	}
	o.st.y = y
	o.mu.Unlock()
	o.emit(overlayTransformChanged)
}

func (o *overlayStore) nudgeElevation(delta float64) {
	o.mu.Lock()
	y := o.st.y + delta
	o.mu.Unlock()
	o.setElevation(y)
}

func (o *overlayStore) setRotation(deg float64) {
	deg = normalizeDegrees(deg)
	o.mu.Lock()
	if o.st.rotation == deg {
		o.mu.Unlock()
		return
	}
	o.st.rotation = deg
	o.mu.Unlock()
	o.emit(overlayTransformChanged)
}

func (o *overlayStore) nudgeRotation(delta float64) {
	o.mu.Lock()
	deg := o.st.rotation + delta
	o.mu.Unlock()
	o.setRotation(deg)
}

func (o *overlayStore) setAlpha(a float64) {
	if a < 0 {
		a = 0
	}
	if a > maxOverlayAlpha {
		a = maxOverlayAlpha
	}
	o.mu.Lock()
	if o.st.alpha == a {
		o.mu.Unlock()
		return
	}
	o.st.alpha = a
	o.mu.Unlock()
	o.emit(overlayAlphaChanged)
}

func (o *overlayStore) nudgeAlpha(delta float64) {
	o.mu.Lock()
	a := o.st.alpha + delta
	o.mu.Unlock()
	o.setAlpha(a)
}

func (o *overlayStore) setShowThrough(on bool) {
	o.mu.Lock()
	if o.st.showThrough == on {
		o.mu.Unlock()
		return
	}
	o.st.showThrough = on
	o.mu.Unlock()
	o.emit(overlayDepthChanged)
}

func (o *overlayStore) toggleShowThrough() {
	o.mu.Lock()
	on := !o.st.showThrough
	o.mu.Unlock()
	o.setShowThrough(on)
}

func (o *overlayStore) setVisible(on bool) {
	o.mu.Lock()
	if o.st.visible == on {
		o.mu.Unlock()
		return
	}
	o.st.visible = on
	o.mu.Unlock()
	o.emit(overlayVisibilityChanged)
}

// loadState replaces the whole state without notifying; used once at startup
// before the presenter is attached.
func (o *overlayStore) loadState(st overlayState) {
	st.rotation = normalizeDegrees(st.rotation)
	if st.size < minOverlaySize {
		st.size = minOverlaySize
	}
	if st.alpha < 0 {
		st.alpha = 0
	}
	if st.alpha > maxOverlayAlpha {
		st.alpha = maxOverlayAlpha
	}
	o.mu.Lock()
	o.st = st
	o.mu.Unlock()
}

// refreshImages rescans the overlay directory for PNG files. The directory
// is created on demand. Each call bumps the list version exactly once; if
// the previous selection is gone the first file (or nothing) is selected.
func (o *overlayStore) refreshImages() {
	dir := o.scanDir
	var files []string
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logError("overlay dir %v: %v", dir, err)
	} else {
		entries, err := os.ReadDir(dir)
		if err != nil {
			logError("scan %v: %v", dir, err)
		}
		for _, ent := range entries {
			if ent.IsDir() {
				continue
			}
			if !strings.EqualFold(filepath.Ext(ent.Name()), ".png") {
				continue
			}
			files = append(files, filepath.Join(dir, ent.Name()))
		}
	}

	o.mu.Lock()
	o.files = files
	o.listVersion++
	o.refreshedAt = time.Now()

	sel := o.st.imagePath
	valid := false
	if sel != "" {
		if filepath.Dir(sel) == dir {
			for _, f := range files {
				if f == sel {
					valid = true
					break
				}
			}
		} else if _, err := os.Stat(sel); err == nil {
			// Picked from outside the scan directory; keep while it exists.
			valid = true
		}
	}
	changed := false
	if !valid {
		next := ""
		if len(files) > 0 {
			next = files[0]
		}
		if o.st.imagePath != next {
			o.st.imagePath = next
			changed = true
		}
	}
	o.mu.Unlock()

	if changed {
		o.emit(overlayImageChanged)
	}
}

// imageFiles returns a copy of the scanned list with its version.
func (o *overlayStore) imageFiles() ([]string, uint64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.files...), o.listVersion
}

func (o *overlayStore) lastRefresh() time.Time {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.refreshedAt
}

// selectOffset moves the selection through the scanned list by delta,
// wrapping at either end. A selection from outside the list lands on the
// first entry.
func (o *overlayStore) selectOffset(delta int) {
	o.mu.Lock()
	if len(o.files) == 0 {
		o.mu.Unlock()
		return
	}
	idx := -1
	for i, f := range o.files {
		if f == o.st.imagePath {
			idx = i
			break
		}
	}
	var next string
	if idx < 0 {
		next = o.files[0]
	} else {
		n := len(o.files)
		next = o.files[((idx+delta)%n+n)%n]
	}
	o.mu.Unlock()
	o.setImagePath(next)
}
