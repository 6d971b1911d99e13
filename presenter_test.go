package main

import (
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func newTestPresenter(t *testing.T) (*overlayStore, *scene, *presenter, string) {
	t.Helper()
	dir := t.TempDir()
	store := newOverlayStore(dir)
	scn := newScene()
	pres := newPresenter(store, scn, newTerrainMap(1))
	return store, scn, pres, dir
}

func TestToggleCycleNoResourceLeak(t *testing.T) {
	store, scn, pres, dir := newTestPresenter(t)
	img := filepath.Join(dir, "site.png")
	writePNG(t, img, 8, 8)
	store.setImagePath(img)

	store.setVisible(true)
	if pres.activePlane() == nil {
		t.Fatal("no active plane after show")
	}
	store.setVisible(false)
	if pres.activePlane() != nil {
		t.Fatal("plane still active after hide")
	}

	base := scn.snapshot()
	if base.LiveTextures != 1 || base.LiveMaterials != 1 || base.LivePlanes != 1 {
		t.Fatalf("live counts after first cycle = %+v, want one of each", base)
	}

	for i := 0; i < 5; i++ {
		store.setVisible(true)
		store.setVisible(false)
	}
	got := scn.snapshot()
	if got != base {
		t.Fatalf("stats drifted across cycles: %+v, want %+v", got, base)
	}
	if got.CreatedTextures != got.DestroyedTextures+got.LiveTextures {
		t.Fatalf("texture accounting broken: %+v", got)
	}
}

func TestImageChangeSwapsResourceSet(t *testing.T) {
	store, scn, pres, dir := newTestPresenter(t)
	a := filepath.Join(dir, "a.png")
	b := filepath.Join(dir, "b.png")
	writePNG(t, a, 8, 8)
	writePNG(t, b, 16, 4)

	store.setImagePath(a)
	store.setVisible(true)
	store.setImagePath(b)

	st := scn.snapshot()
	if st.CreatedTextures != 2 || st.DestroyedTextures != 1 || st.LiveTextures != 1 {
		t.Fatalf("texture stats = %+v, want second set swapped in", st)
	}
	p := pres.activePlane()
	if p == nil {
		t.Fatal("no active plane after image change")
	}
	if p.tex.path != b {
		t.Fatalf("plane texture = %q, want %q", p.tex.path, b)
	}
	if p.tex.w != 16 || p.tex.h != 4 {
		t.Fatalf("texture dims = %dx%d, want 16x4", p.tex.w, p.tex.h)
	}
}

func TestDecodeFailureRetainsPriorState(t *testing.T) {
	store, scn, pres, dir := newTestPresenter(t)
	good := filepath.Join(dir, "good.png")
	bad := filepath.Join(dir, "bad.png")
	writePNG(t, good, 8, 8)
	if err := os.WriteFile(bad, []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}

	store.setImagePath(good)
	store.setVisible(true)
	before := scn.snapshot()

	store.setImagePath(bad)
	if store.snapshot().visible {
		t.Fatal("still visible after failed load")
	}
	if pres.activePlane() != nil {
		t.Fatal("plane active after failed load")
	}
	after := scn.snapshot()
	if after != before {
		t.Fatalf("failed load disturbed resources: %+v, want %+v", after, before)
	}
	if pres.tex == nil || pres.tex.path != good {
		t.Fatal("prior texture not retained after failed load")
	}

	// Retoggling with the bad selection keeps failing and stays hidden.
	store.setVisible(true)
	if store.snapshot().visible {
		t.Fatal("show with undecodable image should stay hidden")
	}
}

func TestShowRebuildsWhenFileChanged(t *testing.T) {
	store, scn, pres, dir := newTestPresenter(t)
	img := filepath.Join(dir, "plan.png")
	writePNG(t, img, 8, 8)
	store.setImagePath(img)

	store.setVisible(true)
	store.setVisible(false)
	writePNG(t, img, 32, 32)

	store.setVisible(true)
	p := pres.activePlane()
	if p == nil {
		t.Fatal("no active plane after re-show")
	}
	if p.tex.w != 32 {
		t.Fatalf("texture width = %d, want reloaded 32", p.tex.w)
	}
	st := scn.snapshot()
	if st.CreatedTextures != 2 || st.DestroyedTextures != 1 {
		t.Fatalf("texture stats = %+v, want one rebuild", st)
	}
}

func TestShowRebuildsWhenFileDeleted(t *testing.T) {
	store, scn, _, dir := newTestPresenter(t)
	img := filepath.Join(dir, "plan.png")
	writePNG(t, img, 8, 8)
	store.setImagePath(img)

	store.setVisible(true)
	store.setVisible(false)
	if err := os.Remove(img); err != nil {
		t.Fatal(err)
	}

	store.setVisible(true)
	if store.snapshot().visible {
		t.Fatal("show with deleted file should stay hidden")
	}
	st := scn.snapshot()
	if st.LiveTextures != 1 || st.CreatedTextures != 1 {
		t.Fatalf("stats = %+v, want prior set retained", st)
	}
}

func TestShowWithoutSelectionStaysHidden(t *testing.T) {
	store, scn, pres, _ := newTestPresenter(t)

	store.setVisible(true)
	if store.snapshot().visible {
		t.Fatal("show with no selection should stay hidden")
	}
	if pres.activePlane() != nil {
		t.Fatal("plane exists with no selection")
	}
	if st := scn.snapshot(); st.CreatedTextures != 0 {
		t.Fatalf("stats = %+v, want nothing created", st)
	}
}

func TestAlphaMapsToOpacity(t *testing.T) {
	store, _, pres, dir := newTestPresenter(t)
	img := filepath.Join(dir, "a.png")
	writePNG(t, img, 4, 4)
	store.setImagePath(img)
	store.setVisible(true)

	store.setAlpha(0)
	if got := pres.mat.opacity; got != 1 {
		t.Fatalf("opacity = %v at alpha 0, want 1", got)
	}
	store.setAlpha(0.95)
	if got := pres.mat.opacity; math.Abs(got-0.05) > 1e-9 {
		t.Fatalf("opacity = %v at alpha 0.95, want 0.05", got)
	}
	store.setAlpha(2)
	if got := pres.mat.opacity; math.Abs(got-0.05) > 1e-9 {
		t.Fatalf("opacity = %v at clamped alpha, want 0.05", got)
	}
}

func TestTransformChangesApplyInPlace(t *testing.T) {
	store, scn, pres, dir := newTestPresenter(t)
	img := filepath.Join(dir, "a.png")
	writePNG(t, img, 4, 4)
	store.setImagePath(img)
	store.setVisible(true)

	store.setPosition(120, -45)
	store.setRotation(30)
	store.setSize(2000)
	store.nudgeElevation(7)
	store.setShowThrough(true)

	p := pres.activePlane()
	if p == nil {
		t.Fatal("no active plane")
	}
	if p.x != 120 || p.z != -45 {
		t.Fatalf("plane at (%v, %v), want (120, -45)", p.x, p.z)
	}
	if p.rotation != 30 {
		t.Fatalf("rotation = %v, want 30", p.rotation)
	}
	if p.side != 2000 {
		t.Fatalf("side = %v, want 2000", p.side)
	}
	if p.elevation != 7 {
		t.Fatalf("elevation = %v, want 7", p.elevation)
	}
	if !pres.mat.showThrough {
		t.Fatal("show-through not applied to material")
	}
	if st := scn.snapshot(); st.CreatedPlanes != 1 {
		t.Fatalf("transform changes rebuilt the plane: %+v", st)
	}
}

func TestDefaultPlacementCoversMapAtSurfaceOffset(t *testing.T) {
	dir := t.TempDir()
	store := newOverlayStore(dir)
	scn := newScene()
	ter := newTerrainMap(1)
	pres := newPresenter(store, scn, ter)

	img := filepath.Join(dir, "plan.png")
	writePNG(t, img, 4, 4)
	store.setImagePath(img)
	pres.resetElevation()
	store.setVisible(true)

	p := pres.activePlane()
	if p == nil {
		t.Fatal("no active plane")
	}
	if p.side != mapSide {
		t.Fatalf("side = %v, want full map %v", p.side, mapSide)
	}
	if p.x != 0 || p.z != 0 || p.rotation != 0 {
		t.Fatalf("placement = (%v, %v) rot %v, want centered unrotated", p.x, p.z, p.rotation)
	}
	want := ter.surfaceAt(0, 0) + elevationOffset
	if p.elevation != want {
		t.Fatalf("elevation = %v, want surface+%v = %v", p.elevation, elevationOffset, want)
	}
	if pres.mat.opacity != 1 {
		t.Fatalf("opacity = %v, want fully opaque by default", pres.mat.opacity)
	}
}
