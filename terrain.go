package main

import (
	"image"
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	// The map is a square of mapSide world units centered on the origin;
	// the default overlay footprint covers it exactly.
	mapSide = 14336.0

	// Height samples per map side. One cell is mapSide/terrainGrid units.
	terrainGrid = 512

	waterLevel       = 0.0
	minTerrainHeight = -40.0
	maxTerrainHeight = 160.0

	// Offset added above the sampled surface when the overlay elevation is
	// derived from the terrain (first run and explicit reset).
	elevationOffset = 5.0
)

// terrainMap is a seeded, deterministic heightfield with a pre-rendered
// hypsometric base image. The GPU copies are created lazily on first draw
// so height queries and mask generation stay usable without a display.
type terrainMap struct {
	seed    int64
	heights []float64
	version uint64

	base *image.RGBA
	gpu  *ebiten.Image

	maskElev float64
	maskVer  uint64
	maskOK   bool
	mask     *image.RGBA
	maskGPU  *ebiten.Image
}

func newTerrainMap(seed int64) *terrainMap {
	t := &terrainMap{}
	t.regenerate(seed)
	return t
}

// regenerate rebuilds the heightfield and base image for seed and bumps the
// terrain version so cached masks are invalidated.
func (t *terrainMap) regenerate(seed int64) {
	rng := rand.New(rand.NewSource(seed))
	var ph [8]float64
	for i := range ph {
		ph[i] = rng.Float64() * 2 * math.Pi
	}

	heights := make([]float64, terrainGrid*terrainGrid)
	for gy := 0; gy < terrainGrid; gy++ {
		v := float64(gy) / float64(terrainGrid-1)
		for gx := 0; gx < terrainGrid; gx++ {
			u := float64(gx) / float64(terrainGrid-1)
			n := math.Sin(u*17.3+v*7.9+ph[0]) +
				math.Sin(u*6.1-v*19.7+ph[1])*0.9 +
				math.Sin(u*29.5+v*4.3+ph[2])*0.5 +
				math.Sin((u+v)*11.7+ph[3])*0.7 +
				math.Sin(u*53.0-v*47.0+ph[4])*0.2 +
				math.Sin(u*91.0+v*83.0+ph[5])*0.1
			n /= 3.4
			// Bias the rim downward so the map reads as a landmass with
			// water toward the edges.
			ex := 2*u - 1
			ey := 2*v - 1
			n -= (ex*ex + ey*ey) * 0.55
			h := minTerrainHeight + (n*0.5+0.6)*(maxTerrainHeight-minTerrainHeight)
			if h < minTerrainHeight {
				h = minTerrainHeight
			}
			if h > maxTerrainHeight {
				h = maxTerrainHeight
			}
			heights[gy*terrainGrid+gx] = h
		}
	}

	t.seed = seed
	t.heights = heights
	t.version++
	t.maskOK = false
	t.base = t.render()
	if t.gpu != nil {
		t.gpu.Deallocate()
		t.gpu = nil
	}
	if t.maskGPU != nil {
		t.maskGPU.Deallocate()
		t.maskGPU = nil
	}
}

func (t *terrainMap) cellHeight(gx, gy int) float64 {
	if gx < 0 {
		gx = 0
	}
	if gx >= terrainGrid {
		gx = terrainGrid - 1
	}
	if gy < 0 {
		gy = 0
	}
	if gy >= terrainGrid {
		gy = terrainGrid - 1
	}
	return t.heights[gy*terrainGrid+gx]
}

// heightAt bilinearly samples the terrain height at a world position.
// Queries outside the map clamp to the edge.
func (t *terrainMap) heightAt(x, z float64) float64 {
	fx := (x + mapSide/2) / mapSide * float64(terrainGrid-1)
	fz := (z + mapSide/2) / mapSide * float64(terrainGrid-1)
	if fx < 0 {
		fx = 0
	}
	if fz < 0 {
		fz = 0
	}
	if fx > float64(terrainGrid-1) {
		fx = float64(terrainGrid - 1)
	}
	if fz > float64(terrainGrid-1) {
		fz = float64(terrainGrid - 1)
	}
	gx, gz := int(fx), int(fz)
	tx, tz := fx-float64(gx), fz-float64(gz)
	h00 := t.cellHeight(gx, gz)
	h10 := t.cellHeight(gx+1, gz)
	h01 := t.cellHeight(gx, gz+1)
	h11 := t.cellHeight(gx+1, gz+1)
	top := h00*(1-tx) + h10*tx
	bot := h01*(1-tx) + h11*tx
	return top*(1-tz) + bot*tz
}

// surfaceAt is the walkable surface: terrain or water, whichever is higher.
func (t *terrainMap) surfaceAt(x, z float64) float64 {
	h := t.heightAt(x, z)
	if h < waterLevel {
		return waterLevel
	}
	return h
}

func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	t = math.Max(0, math.Min(1, t))
	return color.RGBA{
		R: uint8(float64(a.R)*(1-t) + float64(b.R)*t),
		G: uint8(float64(a.G)*(1-t) + float64(b.G)*t),
		B: uint8(float64(a.B)*(1-t) + float64(b.B)*t),
		A: uint8(float64(a.A)*(1-t) + float64(b.A)*t),
	}
}

var (
	deepWater    = color.RGBA{12, 36, 74, 255}
	shallowWater = color.RGBA{42, 96, 148, 255}
	shoreSand    = color.RGBA{176, 160, 120, 255}
	lowGrass     = color.RGBA{88, 128, 64, 255}
	highGrass    = color.RGBA{56, 96, 52, 255}
	bareRock     = color.RGBA{120, 110, 100, 255}
	peakSnow     = color.RGBA{236, 240, 244, 255}
)

func hypsoColor(h float64) color.RGBA {
	switch {
	case h < waterLevel:
		d := (h - minTerrainHeight) / (waterLevel - minTerrainHeight)
		return lerpColor(deepWater, shallowWater, d)
	case h < 4:
		return lerpColor(shoreSand, lowGrass, h/4)
	case h < 60:
		return lerpColor(lowGrass, highGrass, (h-4)/56)
	case h < 120:
		return lerpColor(highGrass, bareRock, (h-60)/60)
	default:
		return lerpColor(bareRock, peakSnow, (h-120)/(maxTerrainHeight-120))
	}
}

// render paints the hypsometric base image with light hillshading from the
// northwest.
func (t *terrainMap) render() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, terrainGrid, terrainGrid))
	for gy := 0; gy < terrainGrid; gy++ {
		for gx := 0; gx < terrainGrid; gx++ {
			h := t.cellHeight(gx, gy)
			c := hypsoColor(h)
			if h >= waterLevel {
				dx := t.cellHeight(gx+1, gy) - t.cellHeight(gx-1, gy)
				dy := t.cellHeight(gx, gy+1) - t.cellHeight(gx, gy-1)
				shade := 1 + (dx+dy)*0.004
				shade = math.Max(0.72, math.Min(1.18, shade))
				c = color.RGBA{
					R: clampU8(float64(c.R) * shade),
					G: clampU8(float64(c.G) * shade),
					B: clampU8(float64(c.B) * shade),
					A: 255,
				}
			}
			img.SetRGBA(gx, gy, c)
		}
	}
	return img
}

// occlusionImage returns the terrain cells strictly above elev, opaque on a
// transparent background. Composited over the overlay it stands in for the
// depth test that hides the plane behind higher ground. The image is cached
// per elevation and terrain version.
func (t *terrainMap) occlusionImage(elev float64) *image.RGBA {
	if t.maskOK && t.maskElev == elev && t.maskVer == t.version {
		return t.mask
	}
	mask := image.NewRGBA(image.Rect(0, 0, terrainGrid, terrainGrid))
	for gy := 0; gy < terrainGrid; gy++ {
		for gx := 0; gx < terrainGrid; gx++ {
			if t.cellHeight(gx, gy) > elev {
				mask.SetRGBA(gx, gy, t.base.RGBAAt(gx, gy))
			}
		}
	}
	t.mask = mask
	t.maskElev = elev
	t.maskVer = t.version
	t.maskOK = true
	if t.maskGPU != nil {
		t.maskGPU.Deallocate()
		t.maskGPU = nil
	}
	return mask
}

// cellWorldSize is the width of one height cell in world units.
func cellWorldSize() float64 {
	return mapSide / float64(terrainGrid)
}

func (t *terrainMap) draw(screen *ebiten.Image, cam *camera) {
	if t.gpu == nil {
		t.gpu = ebiten.NewImageFromImage(t.base)
	}
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM = cam.imageGeoM(-mapSide/2, -mapSide/2, cellWorldSize())
	screen.DrawImage(t.gpu, op)
}

func (t *terrainMap) drawOcclusion(screen *ebiten.Image, cam *camera, elev float64) {
	img := t.occlusionImage(elev)
	if t.maskGPU == nil {
		t.maskGPU = ebiten.NewImageFromImage(img)
	}
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM = cam.imageGeoM(-mapSide/2, -mapSide/2, cellWorldSize())
	screen.DrawImage(t.maskGPU, op)
}

func clampU8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
