package main

import (
	"fmt"
	"strings"

	"golang.design/x/clipboard"
)

var clipboardReady bool

// copyPlacement puts the current overlay placement on the clipboard in a
// form that pastes cleanly into notes or chat.
func copyPlacement(st overlayState) {
	if !clipboardReady {
		logWarn("clipboard unavailable")
		return
	}
	s := fmt.Sprintf("x=%.1f z=%.1f elev=%.1f size=%.1f rot=%.1f alpha=%.2f",
		st.x, st.z, st.y, st.size, st.rotation, st.alpha)
	clipboard.Write(clipboard.FmtText, []byte(s))
	statusMessage("copied placement: " + s)
}

// copyStatusLog puts the whole status feed on the clipboard, handy when
// reporting a problem.
func copyStatusLog() {
	if !clipboardReady {
		logWarn("clipboard unavailable")
		return
	}
	lines := getStatusMessages()
	if len(lines) == 0 {
		statusMessage("status log is empty")
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(strings.Join(lines, "\n")))
	statusMessage(fmt.Sprintf("copied %d status lines", len(lines)))
}
