package main

import (
	"math"
	"testing"
)

func TestTerrainDeterministicForSeed(t *testing.T) {
	a := newTerrainMap(42)
	b := newTerrainMap(42)
	if len(a.heights) != len(b.heights) {
		t.Fatalf("height count mismatch: %d vs %d", len(a.heights), len(b.heights))
	}
	for i := range a.heights {
		if a.heights[i] != b.heights[i] {
			t.Fatalf("same seed diverged at cell %d: %v vs %v", i, a.heights[i], b.heights[i])
		}
	}

	c := newTerrainMap(43)
	same := true
	for i := range a.heights {
		if a.heights[i] != c.heights[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds produced identical terrain")
	}
}

func TestTerrainHeightsWithinBounds(t *testing.T) {
	ter := newTerrainMap(7)
	for i, h := range ter.heights {
		if h < minTerrainHeight || h > maxTerrainHeight {
			t.Fatalf("cell %d height %v outside [%v, %v]", i, h, minTerrainHeight, maxTerrainHeight)
		}
	}
}

func TestHeightAtMatchesLattice(t *testing.T) {
	ter := newTerrainMap(7)
	cells := [][2]int{{0, 0}, {terrainGrid - 1, 0}, {0, terrainGrid - 1}, {terrainGrid / 2, terrainGrid / 3}, {100, 400}}
	for _, c := range cells {
		gx, gz := c[0], c[1]
		x := float64(gx)/float64(terrainGrid-1)*mapSide - mapSide/2
		z := float64(gz)/float64(terrainGrid-1)*mapSide - mapSide/2
		want := ter.cellHeight(gx, gz)
		got := ter.heightAt(x, z)
		if math.Abs(got-want) > 1e-6 {
			t.Errorf("heightAt(%v, %v) = %v, cell (%d,%d) = %v", x, z, got, gx, gz, want)
		}
	}
}

func TestHeightAtClampsOutsideMap(t *testing.T) {
	ter := newTerrainMap(7)
	pairs := [][4]float64{
		{-mapSide, 0, -mapSide / 2, 0},
		{mapSide, 0, mapSide / 2, 0},
		{0, -mapSide * 3, 0, -mapSide / 2},
		{mapSide * 2, mapSide * 2, mapSide / 2, mapSide / 2},
	}
	for _, p := range pairs {
		out := ter.heightAt(p[0], p[1])
		edge := ter.heightAt(p[2], p[3])
		if out != edge {
			t.Errorf("heightAt(%v, %v) = %v, want edge value %v", p[0], p[1], out, edge)
		}
	}
}

func TestSurfaceAtFloorsToWaterLevel(t *testing.T) {
	ter := newTerrainMap(7)

	// Find the lowest and highest cells so both sides of the water line are
	// exercised regardless of where the seed put them.
	loIdx, hiIdx := 0, 0
	for i, h := range ter.heights {
		if h < ter.heights[loIdx] {
			loIdx = i
		}
		if h > ter.heights[hiIdx] {
			hiIdx = i
		}
	}
	if ter.heights[loIdx] >= waterLevel {
		t.Fatalf("terrain has no water: min height %v", ter.heights[loIdx])
	}
	if ter.heights[hiIdx] <= waterLevel {
		t.Fatalf("terrain has no land: max height %v", ter.heights[hiIdx])
	}

	worldOf := func(idx int) (float64, float64) {
		gx := idx % terrainGrid
		gz := idx / terrainGrid
		x := float64(gx)/float64(terrainGrid-1)*mapSide - mapSide/2
		z := float64(gz)/float64(terrainGrid-1)*mapSide - mapSide/2
		return x, z
	}

	x, z := worldOf(loIdx)
	if h := ter.heightAt(x, z); h >= waterLevel {
		t.Fatalf("lowest cell not below water after sampling: %v", h)
	}
	if got := ter.surfaceAt(x, z); got != waterLevel {
		t.Errorf("surfaceAt over water = %v, want %v", got, waterLevel)
	}

	x, z = worldOf(hiIdx)
	h := ter.heightAt(x, z)
	if h <= waterLevel {
		t.Fatalf("highest cell not above water after sampling: %v", h)
	}
	if got := ter.surfaceAt(x, z); got != h {
		t.Errorf("surfaceAt over land = %v, want terrain height %v", got, h)
	}
}

func TestOcclusionMaskMatchesElevation(t *testing.T) {
	ter := newTerrainMap(7)
	elev := 30.0
	mask := ter.occlusionImage(elev)

	above, below := 0, 0
	for gy := 0; gy < terrainGrid; gy++ {
		for gx := 0; gx < terrainGrid; gx++ {
			px := mask.RGBAAt(gx, gy)
			if ter.cellHeight(gx, gy) > elev {
				above++
				if px.A != 255 {
					t.Fatalf("cell (%d,%d) above %v not opaque in mask", gx, gy, elev)
				}
				if px != ter.base.RGBAAt(gx, gy) {
					t.Fatalf("cell (%d,%d) mask color differs from base", gx, gy)
				}
			} else {
				below++
				if px.A != 0 {
					t.Fatalf("cell (%d,%d) at or below %v not transparent in mask", gx, gy, elev)
				}
			}
		}
	}
	if above == 0 || below == 0 {
		t.Fatalf("mask not exercised on both sides: %d above, %d below", above, below)
	}
}

func TestOcclusionMaskCaching(t *testing.T) {
	ter := newTerrainMap(7)

	m1 := ter.occlusionImage(25)
	m2 := ter.occlusionImage(25)
	if m1 != m2 {
		t.Error("repeated query for same elevation rebuilt the mask")
	}

	m3 := ter.occlusionImage(80)
	if m3 == m1 {
		t.Error("different elevation returned the cached mask")
	}

	before := ter.version
	ter.regenerate(8)
	if ter.version != before+1 {
		t.Fatalf("regenerate bumped version to %d, want %d", ter.version, before+1)
	}
	m4 := ter.occlusionImage(80)
	if m4 == m3 {
		t.Error("mask survived terrain regeneration")
	}
}
