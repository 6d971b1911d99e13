package main

import (
	"image"
	"math"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/remeh/sizedwaitgroup"
	xdraw "golang.org/x/image/draw"
)

const thumbSize = 48

// thumbCache holds small previews for the file panel, keyed by path.
// Decodes run on background workers; GPU copies are made lazily on the
// ebiten thread at first draw.
type thumbCache struct {
	mu      sync.Mutex
	ready   map[string]*image.RGBA
	gpu     map[string]*ebiten.Image
	pending map[string]bool
}

func newThumbCache() *thumbCache {
	return &thumbCache{
		ready:   make(map[string]*image.RGBA),
		gpu:     make(map[string]*ebiten.Image),
		pending: make(map[string]bool),
	}
}

// precache decodes thumbnails for any paths not yet cached, bounded to one
// worker per CPU. Call from a goroutine; it blocks until done.
func (tc *thumbCache) precache(paths []string) {
	var todo []string
	tc.mu.Lock()
	for _, p := range paths {
		if tc.ready[p] != nil || tc.pending[p] {
			continue
		}
		tc.pending[p] = true
		todo = append(todo, p)
	}
	tc.mu.Unlock()
	if len(todo) == 0 {
		return
	}

	wg := sizedwaitgroup.New(runtime.NumCPU())
	for _, p := range todo {
		wg.Add()
		go func(path string) {
			defer wg.Done()
			tc.build(path)
		}(p)
	}
	wg.Wait()
	logDebug("thumbnails ready: %d", len(todo))
}

func (tc *thumbCache) build(path string) {
	defer func() {
		tc.mu.Lock()
		delete(tc.pending, path)
		tc.mu.Unlock()
	}()

	src, _, err := decodeOverlayImage(path)
	if err != nil {
		logWarn("thumbnail %v: %v", filepath.Base(path), err)
		return
	}
	b := src.Bounds()
	scale := math.Min(thumbSize/float64(b.Dx()), thumbSize/float64(b.Dy()))
	w := int(math.Max(1, math.Round(float64(b.Dx())*scale)))
	h := int(math.Max(1, math.Round(float64(b.Dy())*scale)))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)

	tc.mu.Lock()
	tc.ready[path] = dst
	tc.mu.Unlock()
}

// image returns the GPU thumbnail for path once its decode has finished.
func (tc *thumbCache) image(path string) *ebiten.Image {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	if img := tc.gpu[path]; img != nil {
		return img
	}
	src := tc.ready[path]
	if src == nil {
		return nil
	}
	img := ebiten.NewImageFromImage(src)
	tc.gpu[path] = img
	return img
}

// drop evicts thumbnails for paths that left the scanned list.
func (tc *thumbCache) drop(keep map[string]bool) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	for p, img := range tc.gpu {
		if !keep[p] {
			img.Deallocate()
			delete(tc.gpu, p)
		}
	}
	for p := range tc.ready {
		if !keep[p] {
			delete(tc.ready, p)
		}
	}
}
