package main

import (
	"image"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// sceneStats counts resource lifecycle events. Live counts must return to
// their baseline after any sequence of overlay toggles or reloads; the
// created/destroyed totals only grow.
type sceneStats struct {
	LiveTextures  int
	LiveMaterials int
	LivePlanes    int

	CreatedTextures  int
	CreatedMaterials int
	CreatedPlanes    int

	DestroyedTextures  int
	DestroyedMaterials int
	DestroyedPlanes    int
}

// texture holds a decoded overlay image plus the source metadata used to
// detect on-disk changes. The GPU copy is created on first draw.
type texture struct {
	src      image.Image
	path     string
	modTime  time.Time
	fileSize int64
	w, h     int
	gpu      *ebiten.Image
}

type material struct {
	opacity     float64
	additive    bool
	smooth      bool
	showThrough bool
}

// plane is the overlay quad: a texture stretched over a square footprint in
// world units, rotated about its center and positioned on the map.
type plane struct {
	tex       *texture
	mat       *material
	x, z      float64
	side      float64
	rotation  float64
	elevation float64
	active    bool
}

// scene owns every presenter-created resource and its accounting.
type scene struct {
	stats sceneStats
	plane *plane
}

func newScene() *scene {
	return &scene{}
}

func (s *scene) createTexture(src image.Image, path string, modTime time.Time, fileSize int64) *texture {
	b := src.Bounds()
	s.stats.CreatedTextures++
	s.stats.LiveTextures++
	return &texture{
		src:      src,
		path:     path,
		modTime:  modTime,
		fileSize: fileSize,
		w:        b.Dx(),
		h:        b.Dy(),
	}
}

func (s *scene) destroyTexture(t *texture) {
	if t == nil {
		return
	}
	if t.gpu != nil {
		t.gpu.Deallocate()
		t.gpu = nil
	}
	t.src = nil
	s.stats.DestroyedTextures++
	s.stats.LiveTextures--
}

func (s *scene) createMaterial(opacity float64, additive, smooth, showThrough bool) *material {
	s.stats.CreatedMaterials++
	s.stats.LiveMaterials++
	return &material{
		opacity:     opacity,
		additive:    additive,
		smooth:      smooth,
		showThrough: showThrough,
	}
}

func (s *scene) destroyMaterial(m *material) {
	if m == nil {
		return
	}
	s.stats.DestroyedMaterials++
	s.stats.LiveMaterials--
}

func (s *scene) createPlane(tex *texture, mat *material, x, z, side, rotation, elevation float64) *plane {
	s.stats.CreatedPlanes++
	s.stats.LivePlanes++
	p := &plane{
		tex:       tex,
		mat:       mat,
		x:         x,
		z:         z,
		side:      side,
		rotation:  rotation,
		elevation: elevation,
	}
	s.plane = p
	return p
}

func (s *scene) destroyPlane(p *plane) {
	if p == nil {
		return
	}
	if s.plane == p {
		s.plane = nil
	}
	s.stats.DestroyedPlanes++
	s.stats.LivePlanes--
}

func (s *scene) snapshot() sceneStats {
	return s.stats
}

// planeGeoM maps the plane's texture pixels to screen pixels: center the
// image, stretch it to the square footprint, rotate and place it in world
// space, then let the camera map world to screen.
func planeGeoM(p *plane, cam *camera) ebiten.GeoM {
	g := ebiten.GeoM{}
	g.Translate(-float64(p.tex.w)/2, -float64(p.tex.h)/2)
	g.Scale(p.side/float64(p.tex.w), p.side/float64(p.tex.h))
	g.Rotate(p.rotation * math.Pi / 180)
	g.Translate(p.x, p.z)
	g.Concat(cam.worldGeoM())
	return g
}

// drawPlane renders the overlay quad if one exists and is active.
func (s *scene) drawPlane(screen *ebiten.Image, cam *camera) {
	p := s.plane
	if p == nil || !p.active || p.tex == nil || p.mat == nil {
		return
	}
	if p.tex.gpu == nil {
		p.tex.gpu = ebiten.NewImageFromImage(p.tex.src)
	}

	op := &ebiten.DrawImageOptions{}
	if p.mat.smooth {
		op.Filter = ebiten.FilterLinear
	}
	if p.mat.additive {
		op.Blend = ebiten.BlendLighter
	}
	op.ColorScale.ScaleAlpha(float32(p.mat.opacity))
	op.GeoM = planeGeoM(p, cam)

	screen.DrawImage(p.tex.gpu, op)
}
