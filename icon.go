package main

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// windowIcon downsamples the terrain base image to the sizes window
// managers commonly ask for.
func windowIcon(ter *terrainMap) []image.Image {
	sizes := []int{16, 32, 48}
	icons := make([]image.Image, 0, len(sizes))
	for _, sz := range sizes {
		dst := image.NewRGBA(image.Rect(0, 0, sz, sz))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), ter.base, ter.base.Bounds(), xdraw.Src, nil)
		icons = append(icons, dst)
	}
	return icons
}
