package main

import (
	"strings"
	"testing"
)

func TestMessageLogCapsEntries(t *testing.T) {
	l := messageLog{max: 3}
	for _, m := range []string{"one", "two", "three", "four", "five"} {
		l.Add(m)
	}
	if l.Len() != 3 {
		t.Fatalf("Len = %d, want 3", l.Len())
	}
	got := l.Entries("", false)
	want := []string{"three", "four", "five"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMessageLogRecentNewestLast(t *testing.T) {
	l := messageLog{max: 10}
	l.Add("a")
	l.Add("b")
	l.Add("c")

	recent := l.Recent(2)
	if len(recent) != 2 || recent[0].Text != "b" || recent[1].Text != "c" {
		t.Errorf("Recent(2) = %v", recent)
	}
	if got := l.Recent(99); len(got) != 3 {
		t.Errorf("Recent past length returned %d entries, want 3", len(got))
	}
}

func TestMessageLogTimestampPrefix(t *testing.T) {
	l := messageLog{max: 10}
	l.Add("hello")

	plain := l.Entries("3:04PM", false)
	if plain[0] != "hello" {
		t.Errorf("plain entry = %q", plain[0])
	}
	stamped := l.Entries("3:04PM", true)
	if !strings.HasPrefix(stamped[0], "[") || !strings.HasSuffix(stamped[0], "] hello") {
		t.Errorf("stamped entry = %q", stamped[0])
	}
}

func TestMessageLogSkipsEmpty(t *testing.T) {
	l := messageLog{max: 10}
	l.Add("")
	l.Add("kept")
	if l.Len() != 1 {
		t.Errorf("Len = %d, want 1", l.Len())
	}
}
