package main

import (
	"context"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	initialWindowW = 1280
	initialWindowH = 800
)

// Hotkey step sizes; the Shift variants move in coarse steps.
const (
	elevStep     = 1.0
	elevStepBig  = 10.0
	panStep      = 1.0
	panStepBig   = 10.0
	rotStep      = 1.0
	rotStepBig   = 90.0
	sizeStep     = 10.0
	sizeStepBig  = 100.0
	alphaStep    = 0.05
	alphaStepBig = 0.25
)

var backdropColor = color.RGBA{10, 12, 16, 255}

type dialogResult struct {
	path string
	err  error
}

// Game wires the overlay store, dispatcher, presenter and viewer pieces
// together and drives them from the ebiten loop.
type Game struct {
	ctx    context.Context
	store  *overlayStore
	acts   *actionSet
	pres   *presenter
	ter    *terrainMap
	cam    *camera
	scn    *scene
	hud    *hud
	thumbs *thumbCache

	dialogBusy bool
	dialogCh   chan dialogResult

	thumbVer uint64
	wantShot bool
}

func newGame(ctx context.Context) *Game {
	g := &Game{
		ctx:      ctx,
		store:    newOverlayStore(overlayDirPath()),
		acts:     newActionSet(),
		ter:      newTerrainMap(gs.Seed),
		cam:      newCamera(),
		scn:      newScene(),
		hud:      newHUD(),
		thumbs:   newThumbCache(),
		dialogCh: make(chan dialogResult, 1),
	}

	st := overlayState{
		imagePath:   gs.ImagePath,
		size:        gs.OverlaySize,
		x:           gs.OverlayX,
		y:           gs.OverlayY,
		z:           gs.OverlayZ,
		rotation:    gs.RotationDegrees,
		alpha:       gs.Alpha,
		showThrough: gs.ShowThroughTerrain,
	}
	if !gs.ElevationSet {
		// Fresh profile: start a little above whatever is at the placement.
		st.y = g.ter.surfaceAt(st.x, st.z) + elevationOffset
		gs.OverlayY = st.y
		gs.ElevationSet = true
		settingsDirty = true
	}
	g.store.loadState(st)

	g.pres = newPresenter(g.store, g.scn, g.ter)
	g.registerActions()
	g.acts.applyBindingOverrides(gs.Bindings)

	g.store.refreshImages()
	if startupImage != "" {
		g.store.setImagePath(startupImage)
		g.store.setVisible(true)
	} else if gs.OverlayVisible {
		g.store.setVisible(true)
	}
	return g
}

func (g *Game) registerActions() {
	reg := g.acts.register
	st := g.store

	reg("toggle overlay", "Ctrl-O", func() { st.setVisible(!st.snapshot().visible) })

	reg("raise elevation", "Ctrl-PageUp", func() { st.nudgeElevation(elevStep) })
	reg("raise elevation fast", "Ctrl-Shift-PageUp", func() { st.nudgeElevation(elevStepBig) })
	reg("lower elevation", "Ctrl-PageDown", func() { st.nudgeElevation(-elevStep) })
	reg("lower elevation fast", "Ctrl-Shift-PageDown", func() { st.nudgeElevation(-elevStepBig) })

	reg("pan north", "Ctrl-ArrowUp", func() { st.nudgePosition(0, -panStep) })
	reg("pan north fast", "Ctrl-Shift-ArrowUp", func() { st.nudgePosition(0, -panStepBig) })
	reg("pan south", "Ctrl-ArrowDown", func() { st.nudgePosition(0, panStep) })
	reg("pan south fast", "Ctrl-Shift-ArrowDown", func() { st.nudgePosition(0, panStepBig) })
	reg("pan west", "Ctrl-ArrowLeft", func() { st.nudgePosition(-panStep, 0) })
	reg("pan west fast", "Ctrl-Shift-ArrowLeft", func() { st.nudgePosition(-panStepBig, 0) })
	reg("pan east", "Ctrl-ArrowRight", func() { st.nudgePosition(panStep, 0) })
	reg("pan east fast", "Ctrl-Shift-ArrowRight", func() { st.nudgePosition(panStepBig, 0) })

	reg("rotate left", "Ctrl-Comma", func() { st.nudgeRotation(-rotStep) })
	reg("rotate left fast", "Ctrl-Shift-Comma", func() { st.nudgeRotation(-rotStepBig) })
	reg("rotate right", "Ctrl-Period", func() { st.nudgeRotation(rotStep) })
	reg("rotate right fast", "Ctrl-Shift-Period", func() { st.nudgeRotation(rotStepBig) })

	reg("shrink overlay", "Ctrl-Minus", func() { st.nudgeSize(-sizeStep) })
	reg("shrink overlay fast", "Ctrl-Shift-Minus", func() { st.nudgeSize(-sizeStepBig) })
	reg("grow overlay", "Ctrl-Equal", func() { st.nudgeSize(sizeStep) })
	reg("grow overlay fast", "Ctrl-Shift-Equal", func() { st.nudgeSize(sizeStepBig) })

	reg("more transparent", "Ctrl-Digit9", func() { st.nudgeAlpha(alphaStep) })
	reg("more transparent fast", "Ctrl-Shift-Digit9", func() { st.nudgeAlpha(alphaStepBig) })
	reg("more opaque", "Ctrl-Digit0", func() { st.nudgeAlpha(-alphaStep) })
	reg("more opaque fast", "Ctrl-Shift-Digit0", func() { st.nudgeAlpha(-alphaStepBig) })

	reg("toggle show-through", "Ctrl-T", func() { st.toggleShowThrough() })
	reg("toggle additive blend", "Ctrl-A", func() {
		gs.AdditiveBlend = !gs.AdditiveBlend
		settingsDirty = true
		g.pres.applyRenderPrefs()
		statusMessage("additive blend " + onOff(gs.AdditiveBlend))
	})
	reg("toggle smooth filter", "Ctrl-S", func() {
		gs.SmoothFilter = !gs.SmoothFilter
		settingsDirty = true
		g.pres.applyRenderPrefs()
		statusMessage("smooth filter " + onOff(gs.SmoothFilter))
	})

	reg("next image", "Ctrl-BracketRight", func() { st.selectOffset(1) })
	reg("previous image", "Ctrl-BracketLeft", func() { st.selectOffset(-1) })
	reg("refresh images", "Ctrl-R", func() {
		st.refreshImages()
		statusMessage("image list refreshed")
	})

	reg("reset elevation", "Ctrl-Home", func() { g.pres.resetElevation() })
	reg("center overlay", "Ctrl-End", func() { st.setPosition(0, 0) })

	reg("browse for image", "Ctrl-B", func() { g.openImageDialog() })
	reg("open images folder", "Ctrl-F", func() { openOverlayFolder() })
	reg("copy placement", "Ctrl-C", func() { copyPlacement(st.snapshot()) })
	reg("copy status log", "Ctrl-L", func() { copyStatusLog() })
	reg("screenshot", "F10", func() { g.wantShot = true })

	reg("help", "F1", func() {
		g.hud.help = true
		g.acts.setAllEnabled(false)
	})
	reg("project page", "Ctrl-P", func() { openProjectPage() })
	reg("toggle fps", "Ctrl-Shift-F", func() {
		gs.ShowFPS = !gs.ShowFPS
		settingsDirty = true
	})
	reg("toggle fullscreen", "F11", func() {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	})
}

// openImageDialog runs the native picker on its own goroutine; every hotkey
// is suspended until the result lands back in Update.
func (g *Game) openImageDialog() {
	if g.dialogBusy {
		return
	}
	g.dialogBusy = true
	g.acts.setAllEnabled(false)
	go func() {
		path, err := pickOverlayImage()
		g.dialogCh <- dialogResult{path: path, err: err}
	}()
}

// syncThumbs restarts the thumbnail precache whenever the scanned list
// changes versions.
func (g *Game) syncThumbs() {
	files, ver := g.store.imageFiles()
	if ver == g.thumbVer {
		return
	}
	g.thumbVer = ver
	keep := make(map[string]bool, len(files))
	for _, f := range files {
		keep[f] = true
	}
	g.thumbs.drop(keep)
	if gs.ShowThumbnails && len(files) > 0 {
		go g.thumbs.precache(files)
	}
}

func (g *Game) Update() error {
	// Shutdown signals land here so the final save and teardown run on the
	// thread that owns the settings and scene.
	if g.ctx != nil {
		select {
		case <-g.ctx.Done():
			return ebiten.Termination
		default:
		}
	}

	select {
	case res := <-g.dialogCh:
		g.dialogBusy = false
		g.acts.setAllEnabled(true)
		switch {
		case res.err == errImageDialogCancelled:
		case res.err != nil:
			logError("image dialog: %v", res.err)
		case res.path != "":
			g.store.setImagePath(res.path)
			g.store.setVisible(true)
		}
	default:
	}

	in := pollKeyInput()
	if g.hud.help {
		for _, k := range in.keys {
			if k == ebiten.KeyF1 || k == ebiten.KeyEscape {
				g.hud.help = false
				g.acts.setAllEnabled(true)
				break
			}
		}
	} else {
		g.acts.dispatch(in)
	}

	g.cam.handleInput()
	g.syncThumbs()
	updateDiscordOverlay(g.store.snapshot())

	if syncOverlaySettings(g.store) || syncWindowSettings() {
		settingsDirty = true
	}
	if settingsDirty && settingsSaveLimiter.Allow() {
		saveSettings()
		settingsDirty = false
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backdropColor)
	g.ter.draw(screen, g.cam)
	if p := g.pres.activePlane(); p != nil {
		g.scn.drawPlane(screen, g.cam)
		if !p.mat.showThrough {
			g.ter.drawOcclusion(screen, g.cam, p.elevation)
		}
	}
	g.hud.draw(screen, g)

	if g.wantShot {
		g.wantShot = false
		saveScreenshot(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.cam.setViewport(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func runGame(ctx context.Context) {
	ebiten.SetWindowTitle("terraplan")
	ebiten.SetScreenClearedEveryFrame(false)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(gs.vsync)
	// Keep Update() TPS synced with draw FPS from the start.
	ebiten.SetTPS(ebiten.SyncWithFPS)
	if gs.Fullscreen {
		ebiten.SetFullscreen(true)
	}

	initFont()
	g := newGame(ctx)
	ebiten.SetWindowIcon(windowIcon(g.ter))
	initDiscordRPC(ctx)

	op := &ebiten.RunGameOptions{ScreenTransparent: false}
	if err := ebiten.RunGameWithOptions(g, op); err != nil {
		log.Printf("ebiten: %v", err)
	}
	g.pres.teardown()
	syncOverlaySettings(g.store)
	syncWindowSettings()
	saveSettings()
}
