package main

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// presenter owns the rendered overlay. It reacts to store changes by
// updating the plane in place where possible and rebuilding the full
// texture/material/plane set when the image itself changes. The previous
// set is always released before a replacement is constructed; a failed
// load leaves the previous set untouched.
type presenter struct {
	store *overlayStore
	scn   *scene
	ter   *terrainMap

	tex *texture
	mat *material
	pln *plane
}

func newPresenter(store *overlayStore, scn *scene, ter *terrainMap) *presenter {
	p := &presenter{store: store, scn: scn, ter: ter}
	store.setObserver(p.apply)
	return p
}

func (p *presenter) apply(ch overlayChange) {
	st := p.store.snapshot()
	switch ch {
	case overlayImageChanged:
		if st.visible {
			if !p.rebuild(st) {
				p.store.setVisible(false)
			}
		} else if p.pln != nil {
			// Hidden with a stale object; drop it so the next show reloads.
			p.releaseAll()
		}
	case overlayTransformChanged:
		if p.pln != nil {
			p.pln.x, p.pln.z = st.x, st.z
			p.pln.side = st.size
			p.pln.rotation = st.rotation
			p.pln.elevation = st.y
		}
	case overlayAlphaChanged:
		if p.mat != nil {
			p.mat.opacity = 1 - st.alpha
		}
	case overlayDepthChanged:
		if p.mat != nil {
			p.mat.showThrough = st.showThrough
		}
	case overlayVisibilityChanged:
		if st.visible {
			p.show(st)
		} else if p.pln != nil {
			p.pln.active = false
		}
	}
}

// show reactivates the existing plane when it was built from the current
// selection and the file is unchanged on disk, otherwise rebuilds. A failed
// rebuild flips visibility back off; the store skips the notification when
// the value is already false, so this cannot recurse.
func (p *presenter) show(st overlayState) {
	if p.pln != nil && p.tex != nil && p.tex.path == st.imagePath && p.textureCurrent() {
		p.pln.active = true
		return
	}
	if !p.rebuild(st) {
		p.store.setVisible(false)
	}
}

// textureCurrent reports whether the loaded texture still matches its file.
func (p *presenter) textureCurrent() bool {
	fi, err := os.Stat(p.tex.path)
	if err != nil {
		return false
	}
	return fi.ModTime().Equal(p.tex.modTime) && fi.Size() == p.tex.fileSize
}

func decodeOverlayImage(path string) (image.Image, os.FileInfo, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, nil, err
	}
	return img, fi, nil
}

// rebuild decodes the selected image, then swaps the full resource set:
// decode first so a failure never disturbs what is already on screen, then
// release the old set, then construct the replacement.
func (p *presenter) rebuild(st overlayState) bool {
	if st.imagePath == "" {
		logWarn("no overlay image selected")
		return false
	}
	img, fi, err := decodeOverlayImage(st.imagePath)
	if err != nil {
		logError("load overlay %v: %v", filepath.Base(st.imagePath), err)
		notifyUser("Overlay", "could not load "+filepath.Base(st.imagePath))
		return false
	}

	p.releaseAll()
	p.tex = p.scn.createTexture(img, st.imagePath, fi.ModTime(), fi.Size())
	p.mat = p.scn.createMaterial(1-st.alpha, gs.AdditiveBlend, gs.SmoothFilter, st.showThrough)
	p.pln = p.scn.createPlane(p.tex, p.mat, st.x, st.z, st.size, st.rotation, st.y)
	p.pln.active = true
	logDebug("overlay rebuilt from %v (%dx%d)", filepath.Base(st.imagePath), p.tex.w, p.tex.h)
	return true
}

func (p *presenter) releaseAll() {
	if p.pln != nil {
		p.scn.destroyPlane(p.pln)
		p.pln = nil
	}
	if p.mat != nil {
		p.scn.destroyMaterial(p.mat)
		p.mat = nil
	}
	if p.tex != nil {
		p.scn.destroyTexture(p.tex)
		p.tex = nil
	}
}

// applyRenderPrefs pushes the blend and filter preferences onto the live
// material; rebuilds pick them up on their own.
func (p *presenter) applyRenderPrefs() {
	if p.mat != nil {
		p.mat.additive = gs.AdditiveBlend
		p.mat.smooth = gs.SmoothFilter
	}
}

// resetElevation samples the terrain or water surface under the overlay and
// places the plane a fixed offset above it.
func (p *presenter) resetElevation() {
	st := p.store.snapshot()
	p.store.setElevation(p.ter.surfaceAt(st.x, st.z) + elevationOffset)
}

// activePlane returns the plane when it should be drawn this frame.
func (p *presenter) activePlane() *plane {
	if p.pln != nil && p.pln.active {
		return p.pln
	}
	return nil
}

// teardown releases everything on shutdown.
func (p *presenter) teardown() {
	p.releaseAll()
}
