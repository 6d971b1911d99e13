package main

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hajimehoshi/ebiten/v2"
	text "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	dark "github.com/thiagokokada/dark-mode-go"
)

const (
	hudPanelW    = 300.0
	hudPad       = 10.0
	hudLine      = 18.0
	hudSmallLine = 15.0
	hudThumb     = 20.0
	hudMaxFiles  = 10

	msgHold = 5 * time.Second
	msgFade = 3 * time.Second
)

type palette struct {
	panelBG  color.RGBA
	textMain color.RGBA
	textDim  color.RGBA
	accent   color.RGBA
	warn     color.RGBA
	selBG    color.RGBA
}

var paletteDark = palette{
	panelBG:  color.RGBA{16, 20, 26, 216},
	textMain: color.RGBA{230, 233, 238, 255},
	textDim:  color.RGBA{140, 148, 160, 255},
	accent:   color.RGBA{120, 200, 255, 255},
	warn:     color.RGBA{255, 190, 90, 255},
	selBG:    color.RGBA{52, 72, 96, 216},
}

var paletteLight = palette{
	panelBG:  color.RGBA{244, 245, 248, 224},
	textMain: color.RGBA{24, 28, 34, 255},
	textDim:  color.RGBA{110, 116, 126, 255},
	accent:   color.RGBA{0, 102, 180, 255},
	warn:     color.RGBA{176, 108, 0, 255},
	selBG:    color.RGBA{196, 214, 232, 224},
}

// pickPalette honors an explicit theme setting, otherwise follows the OS.
func pickPalette() palette {
	switch gs.Theme {
	case "dark":
		return paletteDark
	case "light":
		return paletteLight
	}
	darkMode, err := dark.IsDarkMode()
	if err == nil && !darkMode {
		return paletteLight
	}
	return paletteDark
}

// hud draws the parameter panel, file list, message feed and help overlay
// directly onto the frame.
type hud struct {
	pal  palette
	help bool

	sizes    map[string]int64
	sizesVer uint64
}

func newHUD() *hud {
	return &hud{pal: pickPalette(), sizes: make(map[string]int64)}
}

func (h *hud) text(dst *ebiten.Image, s string, x, y float64, face text.Face, col color.RGBA) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	text.Draw(dst, s, face, op)
}

// fileSize stats lazily and caches per list version so the draw loop does
// not hit the filesystem every frame.
func (h *hud) fileSize(path string, ver uint64) int64 {
	if ver != h.sizesVer {
		h.sizes = make(map[string]int64)
		h.sizesVer = ver
	}
	if sz, ok := h.sizes[path]; ok {
		return sz
	}
	var sz int64
	if fi, err := os.Stat(path); err == nil {
		sz = fi.Size()
	}
	h.sizes[path] = sz
	return sz
}

func (h *hud) draw(screen *ebiten.Image, g *Game) {
	if !fontReady {
		return
	}
	h.drawPanel(screen, g)
	h.drawMessages(screen)
	if gs.ShowFPS {
		h.text(screen, fmt.Sprintf("%4.0f fps", ebiten.ActualFPS()),
			float64(screen.Bounds().Dx())-70, 8, smallFont, h.pal.textDim)
	}
	if h.help {
		h.drawHelp(screen, g)
	}
}

func (h *hud) drawPanel(screen *ebiten.Image, g *Game) {
	st := g.store.snapshot()
	files, ver := g.store.imageFiles()
	shown := len(files)
	if shown > hudMaxFiles {
		shown = hudMaxFiles
	}

	rows := 9 + shown + 2
	if debugLogger != nil {
		rows++
	}
	panelH := hudPad*2 + float64(rows)*hudLine
	vector.DrawFilledRect(screen, 8, 8, hudPanelW, float32(panelH), h.pal.panelBG, false)

	x := 8 + hudPad
	y := 8 + hudPad

	h.text(screen, fmt.Sprintf("terraplan  seed %d", gs.Seed), x, y, mainFont, h.pal.accent)
	y += hudLine

	name := "none"
	if st.imagePath != "" {
		name = filepath.Base(st.imagePath)
	}
	h.text(screen, "image: "+name, x, y, mainFont, h.pal.textMain)
	y += hudLine

	badge, badgeCol := "hidden", h.pal.textDim
	if st.visible {
		badge, badgeCol = "visible", h.pal.accent
	}
	h.text(screen, badge, x, y, mainFont, badgeCol)
	if st.showThrough {
		h.text(screen, "show-through", x+90, y, mainFont, h.pal.warn)
	}
	y += hudLine

	h.text(screen, fmt.Sprintf("size: %.0f", st.size), x, y, mainFont, h.pal.textMain)
	y += hudLine
	h.text(screen, fmt.Sprintf("position: %.0f, %.0f", st.x, st.z), x, y, mainFont, h.pal.textMain)
	y += hudLine
	surface := g.ter.surfaceAt(st.x, st.z)
	h.text(screen, fmt.Sprintf("elevation: %.1f (surface %.1f)", st.y, surface), x, y, mainFont, h.pal.textMain)
	y += hudLine
	h.text(screen, fmt.Sprintf("rotation: %.1f deg", st.rotation), x, y, mainFont, h.pal.textMain)
	y += hudLine
	h.text(screen, fmt.Sprintf("opacity: %.0f%%", (1-st.alpha)*100), x, y, mainFont, h.pal.textMain)
	y += hudLine

	if debugLogger != nil {
		s := g.scn.snapshot()
		h.text(screen, fmt.Sprintf("live t/m/p: %d/%d/%d", s.LiveTextures, s.LiveMaterials, s.LivePlanes),
			x, y, smallFont, h.pal.textDim)
		y += hudLine
	}

	y += hudLine / 2
	h.text(screen, fmt.Sprintf("images: %d (refreshed %s)", len(files), formatAgo(g.store.lastRefresh())),
		x, y, mainFont, h.pal.textDim)
	y += hudLine

	for i := 0; i < shown; i++ {
		f := files[i]
		if f == st.imagePath {
			vector.DrawFilledRect(screen, float32(x-4), float32(y-2), hudPanelW-2*hudPad+8, hudLine, h.pal.selBG, false)
		}
		tx := x
		if gs.ShowThumbnails {
			if img := g.thumbs.image(f); img != nil {
				op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
				b := img.Bounds()
				s := hudThumb / float64(max(b.Dx(), b.Dy()))
				op.GeoM.Scale(s, s)
				op.GeoM.Translate(tx, y-2)
				screen.DrawImage(img, op)
			}
			tx += hudThumb + 6
		}
		label := fmt.Sprintf("%s  %s", filepath.Base(f), humanize.Bytes(uint64(h.fileSize(f, ver))))
		col := h.pal.textMain
		if f != st.imagePath {
			col = h.pal.textDim
		}
		h.text(screen, label, tx, y, smallFont, col)
		y += hudLine
	}
	if len(files) > shown {
		h.text(screen, fmt.Sprintf("+%d more", len(files)-shown), x, y, smallFont, h.pal.textDim)
		y += hudLine
	}
	h.text(screen, g.acts.comboFor("help")+" bindings", x, y, smallFont, h.pal.textDim)
}

// drawMessages paints the newest status entries bottom-left, fading out.
func (h *hud) drawMessages(screen *ebiten.Image) {
	msgs := statusLog.Recent(6)
	if len(msgs) == 0 {
		return
	}
	y := float64(screen.Bounds().Dy()) - hudPad - float64(len(msgs))*hudSmallLine
	for _, m := range msgs {
		age := time.Since(m.Time)
		if age < msgHold+msgFade {
			alpha := 1.0
			if age > msgHold {
				alpha = 1 - float64(age-msgHold)/float64(msgFade)
			}
			op := &text.DrawOptions{}
			op.GeoM.Translate(hudPad, y)
			op.ColorScale.ScaleWithColor(h.pal.textMain)
			op.ColorScale.ScaleAlpha(float32(alpha))
			text.Draw(screen, m.Text, smallFont, op)
		}
		y += hudSmallLine
	}
}

func (h *hud) drawHelp(screen *ebiten.Image, g *Game) {
	rows := g.acts.list()
	lh := hudSmallLine
	colW := 420.0

	// One column unless the list would spill past the viewport.
	cols := 1
	if hudPad*2+float64(len(rows)+2)*lh > float64(screen.Bounds().Dy())-2*hudPad {
		cols = 2
	}
	perCol := (len(rows) + cols - 1) / cols

	w := colW * float64(cols)
	ph := hudPad*2 + float64(perCol+2)*lh
	px := (float64(screen.Bounds().Dx()) - w) / 2
	py := (float64(screen.Bounds().Dy()) - ph) / 2
	vector.DrawFilledRect(screen, float32(px), float32(py), float32(w), float32(ph), h.pal.panelBG, false)

	h.text(screen, "Key Bindings", px+hudPad, py+hudPad, mainFont, h.pal.accent)
	h.text(screen, "Esc closes", px+w-hudPad-70, py+hudPad, smallFont, h.pal.textDim)
	for c := 0; c < cols; c++ {
		x := px + hudPad + float64(c)*colW
		y := py + hudPad + lh*2
		for i := c * perCol; i < len(rows) && i < (c+1)*perCol; i++ {
			h.text(screen, prettyActionName(rows[i][0]), x, y, smallFont, h.pal.textMain)
			h.text(screen, rows[i][1], x+260, y, smallFont, h.pal.textDim)
			y += lh
		}
	}
}
