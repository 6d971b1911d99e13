package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.design/x/clipboard"
)

var (
	doDebug      bool
	startupImage string

	// -dir is a session override; it never lands in the saved settings.
	overlayDirFlag string
)

func main() {
	var seedFlag int64
	flag.BoolVar(&doDebug, "debug", false, "verbose/debug logging")
	flag.StringVar(&overlayDirFlag, "dir", "", "directory scanned for overlay images")
	flag.StringVar(&startupImage, "image", "", "overlay image to load at startup")
	flag.Int64Var(&seedFlag, "seed", 0, "terrain seed (0 keeps the saved seed)")
	flag.Parse()

	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard init: %v", err)
	} else {
		clipboardReady = true
	}

	loadSettings()
	if seedFlag != 0 && seedFlag != gs.Seed {
		gs.Seed = seedFlag
		settingsDirty = true
	}
	if gs.WindowWidth < 512 {
		gs.WindowWidth = initialWindowW
	}
	if gs.WindowHeight < 384 {
		gs.WindowHeight = initialWindowH
	}
	ebiten.SetWindowSize(gs.WindowWidth, gs.WindowHeight)

	setupLogging(doDebug)
	defer func() {
		if r := recover(); r != nil {
			logPanic(r)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP)
	defer cancel()

	runGame(ctx)
}
