package main

import (
	"context"
	"path/filepath"
	"time"

	client "github.com/hugolgst/rich-go/client"
)

var (
	discordStart time.Time
	discordReady bool
	discordLast  string
)

// initDiscordRPC connects to a locally running Discord client, best-effort.
// Without one the login fails quietly and presence stays off.
func initDiscordRPC(ctx context.Context) {
	if err := client.Login("1318276589793340672"); err != nil {
		logDebug("discord rpc login: %v", err)
		return
	}
	discordReady = true
	discordStart = time.Now()
	setDiscordStatus("viewing terrain")
	go func() {
		<-ctx.Done()
		client.Logout()
	}()
}

// setDiscordStatus publishes detail as the activity line. Repeats of the
// current detail are skipped so callers may fire every tick.
func setDiscordStatus(detail string) {
	if !discordReady || detail == discordLast {
		return
	}
	discordLast = detail
	if err := client.SetActivity(client.Activity{
		State:   "terraplan",
		Details: detail,
		Timestamps: &client.Timestamps{
			Start: &discordStart,
		},
	}); err != nil {
		logDebug("discord rpc activity: %v", err)
	}
}

// updateDiscordOverlay derives the presence line from the overlay state.
func updateDiscordOverlay(st overlayState) {
	if st.visible && st.imagePath != "" {
		setDiscordStatus("placing " + filepath.Base(st.imagePath))
		return
	}
	setDiscordStatus("viewing terrain")
}
