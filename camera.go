package main

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/time/rate"
)

const (
	minZoom = 0.01
	maxZoom = 2.0
)

// camera is the top-down world viewport: a center in world units and a zoom
// in screen pixels per world unit.
type camera struct {
	cx, cz       float64
	zoom         float64
	viewW, viewH int

	dragging     bool
	lastX, lastY int

	wheelLimiter *rate.Limiter
}

func newCamera() *camera {
	return &camera{
		zoom:         minZoom,
		wheelLimiter: rate.NewLimiter(rate.Every(time.Millisecond*30), 1),
	}
}

func (c *camera) setViewport(w, h int) {
	if w == c.viewW && h == c.viewH {
		return
	}
	first := c.viewW == 0
	c.viewW, c.viewH = w, h
	if first {
		c.fitMap()
	}
}

// fitMap centers the whole map in the viewport with a small margin.
func (c *camera) fitMap() {
	if c.viewW == 0 || c.viewH == 0 {
		return
	}
	c.cx, c.cz = 0, 0
	z := math.Min(float64(c.viewW), float64(c.viewH)) / mapSide * 0.92
	c.zoom = clampFloat(z, minZoom, maxZoom)
}

func (c *camera) worldToScreen(wx, wz float64) (float64, float64) {
	return (wx-c.cx)*c.zoom + float64(c.viewW)/2,
		(wz-c.cz)*c.zoom + float64(c.viewH)/2
}

func (c *camera) screenToWorld(sx, sy float64) (float64, float64) {
	return (sx-float64(c.viewW)/2)/c.zoom + c.cx,
		(sy-float64(c.viewH)/2)/c.zoom + c.cz
}

// worldGeoM maps world coordinates to screen pixels.
func (c *camera) worldGeoM() ebiten.GeoM {
	g := ebiten.GeoM{}
	g.Scale(c.zoom, c.zoom)
	g.Translate(float64(c.viewW)/2-c.cx*c.zoom, float64(c.viewH)/2-c.cz*c.zoom)
	return g
}

// imageGeoM maps an image anchored top-left at world (wx, wz), with
// worldPerPx world units per image pixel, to screen pixels.
func (c *camera) imageGeoM(wx, wz, worldPerPx float64) ebiten.GeoM {
	g := ebiten.GeoM{}
	g.Scale(worldPerPx, worldPerPx)
	g.Translate(wx, wz)
	g.Concat(c.worldGeoM())
	return g
}

// handleInput applies left-drag panning and wheel zoom about the cursor.
func (c *camera) handleInput() {
	mx, my := ebiten.CursorPosition()

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) ||
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
		if c.dragging {
			c.cx -= float64(mx-c.lastX) / c.zoom
			c.cz -= float64(my-c.lastY) / c.zoom
			c.cx = clampFloat(c.cx, -mapSide, mapSide)
			c.cz = clampFloat(c.cz, -mapSide, mapSide)
		}
		c.dragging = true
		c.lastX, c.lastY = mx, my
	} else {
		c.dragging = false
	}

	if _, wy := ebiten.Wheel(); wy != 0 && c.wheelLimiter.Allow() {
		wx, wz := c.screenToWorld(float64(mx), float64(my))
		c.zoom = clampFloat(c.zoom*math.Pow(1.15, wy), minZoom, maxZoom)
		nx, nz := c.screenToWorld(float64(mx), float64(my))
		c.cx += wx - nx
		c.cz += wz - nz
	}
}
