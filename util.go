package main

import (
	"fmt"
	"time"

	"github.com/hako/durafmt"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var shortUnits, _ = durafmt.DefaultUnitsCoder.Decode("y:yrs,wk:wks,d:d,h:h,m:m,s:s,ms:ms,us:us")

var titleCaser = cases.Title(language.AmericanEnglish)

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// formatAgo renders the elapsed time since t as a short two-unit duration.
func formatAgo(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	d := time.Since(t).Round(time.Second)
	if d < time.Second {
		return "just now"
	}
	return fmt.Sprintf("%s ago", durafmt.Parse(d).LimitFirstN(2).Format(shortUnits))
}

// prettyActionName turns a registered action name like "raise elevation"
// into a display label.
func prettyActionName(name string) string {
	return titleCaser.String(name)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
