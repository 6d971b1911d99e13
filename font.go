package main

import (
	"bytes"

	"golang.org/x/image/font/gofont/goregular"

	text "github.com/hajimehoshi/ebiten/v2/text/v2"
)

const (
	mainFontSize  = 14.0
	smallFontSize = 11.0
)

var (
	mainFont  text.Face
	smallFont text.Face
	fontReady bool
)

// initFont parses the bundled face. On failure the HUD goes dark for the
// session; overlay control keeps working.
func initFont() {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		logError("critical: parse font: %v, HUD text disabled", err)
		return
	}
	mainFont = &text.GoTextFace{Source: src, Size: mainFontSize}
	smallFont = &text.GoTextFace{Source: src, Size: smallFontSize}
	fontReady = true
}
