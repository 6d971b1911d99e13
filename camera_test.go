package main

import (
	"math"
	"testing"
)

func TestCameraFitsMapOnFirstViewport(t *testing.T) {
	c := newCamera()
	c.setViewport(800, 600)

	if c.cx != 0 || c.cz != 0 {
		t.Errorf("camera center = (%v, %v), want origin", c.cx, c.cz)
	}
	want := 600.0 / mapSide * 0.92
	if math.Abs(c.zoom-want) > 1e-12 {
		t.Errorf("zoom = %v, want %v", c.zoom, want)
	}

	sx, sy := c.worldToScreen(0, 0)
	if sx != 400 || sy != 300 {
		t.Errorf("origin maps to (%v, %v), want viewport center", sx, sy)
	}
	for _, corner := range [][2]float64{{-mapSide / 2, -mapSide / 2}, {mapSide / 2, mapSide / 2}} {
		sx, sy := c.worldToScreen(corner[0], corner[1])
		if sx < 0 || sx > 800 || sy < 0 || sy > 600 {
			t.Errorf("map corner (%v, %v) off screen at (%v, %v)", corner[0], corner[1], sx, sy)
		}
	}
}

func TestCameraResizeKeepsPosition(t *testing.T) {
	c := newCamera()
	c.setViewport(800, 600)
	c.cx, c.cz = 500, -250
	zoom := c.zoom

	c.setViewport(1024, 768)
	if c.cx != 500 || c.cz != -250 || c.zoom != zoom {
		t.Errorf("resize moved the camera: (%v, %v) zoom %v", c.cx, c.cz, c.zoom)
	}
}

func TestCameraFitClampsZoom(t *testing.T) {
	c := newCamera()
	c.setViewport(1, 1)
	if c.zoom != minZoom {
		t.Errorf("tiny viewport zoom = %v, want %v", c.zoom, minZoom)
	}

	c = newCamera()
	c.setViewport(int(mapSide*3), int(mapSide*3))
	if c.zoom != maxZoom {
		t.Errorf("huge viewport zoom = %v, want %v", c.zoom, maxZoom)
	}
}

func TestCameraScreenWorldRoundtrip(t *testing.T) {
	c := newCamera()
	c.setViewport(800, 600)
	c.cx, c.cz = -321.5, 1234.25

	for _, p := range [][2]float64{{0, 0}, {400, 300}, {799, 599}, {13, 570}} {
		wx, wz := c.screenToWorld(p[0], p[1])
		sx, sy := c.worldToScreen(wx, wz)
		if math.Abs(sx-p[0]) > 1e-9 || math.Abs(sy-p[1]) > 1e-9 {
			t.Errorf("roundtrip of (%v, %v) gave (%v, %v)", p[0], p[1], sx, sy)
		}
	}
}

func TestWorldGeoMMatchesWorldToScreen(t *testing.T) {
	c := newCamera()
	c.setViewport(800, 600)
	c.cx, c.cz = 77, -9000
	c.zoom = 0.5

	g := c.worldGeoM()
	for _, p := range [][2]float64{{0, 0}, {1234.5, -987.25}, {-mapSide / 2, mapSide / 2}} {
		gx, gy := g.Apply(p[0], p[1])
		wx, wy := c.worldToScreen(p[0], p[1])
		if math.Abs(gx-wx) > 1e-6 || math.Abs(gy-wy) > 1e-6 {
			t.Errorf("GeoM maps (%v, %v) to (%v, %v), worldToScreen says (%v, %v)",
				p[0], p[1], gx, gy, wx, wy)
		}
	}
}

func TestImageGeoMSpansMap(t *testing.T) {
	c := newCamera()
	c.setViewport(800, 600)

	g := c.imageGeoM(-mapSide/2, -mapSide/2, cellWorldSize())

	gx, gy := g.Apply(0, 0)
	wx, wy := c.worldToScreen(-mapSide/2, -mapSide/2)
	if math.Abs(gx-wx) > 1e-6 || math.Abs(gy-wy) > 1e-6 {
		t.Errorf("top-left pixel at (%v, %v), want (%v, %v)", gx, gy, wx, wy)
	}

	gx, gy = g.Apply(terrainGrid, terrainGrid)
	wx, wy = c.worldToScreen(mapSide/2, mapSide/2)
	if math.Abs(gx-wx) > 1e-6 || math.Abs(gy-wy) > 1e-6 {
		t.Errorf("bottom-right pixel at (%v, %v), want (%v, %v)", gx, gy, wx, wy)
	}
}
