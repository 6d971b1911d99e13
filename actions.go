package main

import (
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// An action is a named callback bound to a key chord of up to three
// modifiers plus one trigger key, e.g. "Ctrl-Shift-PageUp".
type action struct {
	name     string
	combo    string
	fn       func()
	disabled bool
}

type actionSet struct {
	mu      sync.RWMutex
	actions []*action
	names   map[string]int
}

func newActionSet() *actionSet {
	return &actionSet{names: map[string]int{}}
}

var keyNameMap = func() map[string]ebiten.Key {
	m := make(map[string]ebiten.Key)
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		m[strings.ToLower(k.String())] = k
	}
	return m
}()

func keyFromName(name string) (ebiten.Key, bool) {
	k, ok := keyNameMap[strings.ToLower(name)]
	return k, ok
}

func isModifier(k ebiten.Key) bool {
	switch k {
	case ebiten.KeyShift, ebiten.KeyShiftLeft, ebiten.KeyShiftRight,
		ebiten.KeyControl, ebiten.KeyControlLeft, ebiten.KeyControlRight,
		ebiten.KeyAlt, ebiten.KeyAltLeft, ebiten.KeyAltRight:
		return true
	}
	return false
}

// splitCombo breaks a combo string into its modifier set and trigger token.
// Tokens are separated by "-"; the last token is the trigger. Modifier names
// accept the verbose forms ("Control", "ControlLeft") seen in recorded keys.
func splitCombo(s string) (mods map[string]bool, trig string) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) == 0 {
		return map[string]bool{}, ""
	}
	trig = strings.ToLower(strings.TrimSpace(parts[len(parts)-1]))
	mods = map[string]bool{}
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "ctrl", "control", "controlleft", "controlright":
			mods["ctrl"] = true
		case "alt", "altleft", "altright":
			mods["alt"] = true
		case "shift", "shiftleft", "shiftright":
			mods["shift"] = true
		default:
			if p != "" {
				mods[strings.ToLower(p)] = true
			}
		}
	}
	return mods, trig
}

// sameCombo compares two combo strings case-insensitively while ignoring the
// order and verbosity of modifier keys. The trigger token must match.
func sameCombo(a, b string) bool {
	am, at := splitCombo(a)
	bm, bt := splitCombo(b)
	if at != bt || at == "" {
		return false
	}
	if len(am) != len(bm) {
		return false
	}
	for k := range am {
		if !bm[k] {
			return false
		}
	}
	return true
}

// validCombo reports whether a combo names at most three known modifiers and
// a real, non-modifier trigger key.
func validCombo(s string) bool {
	mods, trig := splitCombo(s)
	if trig == "" || len(mods) > 3 {
		return false
	}
	for m := range mods {
		switch m {
		case "ctrl", "alt", "shift":
		default:
			return false
		}
	}
	k, ok := keyFromName(trig)
	if !ok || isModifier(k) {
		return false
	}
	return true
}

// canonicalCombo rewrites a valid combo into Ctrl-Alt-Shift-Trigger order
// with the trigger's proper key name.
func canonicalCombo(s string) string {
	mods, trig := splitCombo(s)
	k, _ := keyFromName(trig)
	var parts []string
	if mods["ctrl"] {
		parts = append(parts, "Ctrl")
	}
	if mods["alt"] {
		parts = append(parts, "Alt")
	}
	if mods["shift"] {
		parts = append(parts, "Shift")
	}
	parts = append(parts, k.String())
	return strings.Join(parts, "-")
}

// register binds name to combo. Empty names, nil handlers, invalid combos
// and duplicate names are rejected with a logged error; the first
// registration of a name wins.
func (s *actionSet) register(name, combo string, fn func()) bool {
	if strings.TrimSpace(name) == "" {
		logError("action with empty name skipped (combo %q)", combo)
		return false
	}
	if fn == nil {
		logError("action %q has no handler, skipped", name)
		return false
	}
	if !validCombo(combo) {
		logError("action %q has invalid combo %q, skipped", name, combo)
		return false
	}
	key := strings.ToLower(name)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.names[key]; dup {
		logError("duplicate action %q ignored", name)
		return false
	}
	s.names[key] = len(s.actions)
	s.actions = append(s.actions, &action{name: name, combo: canonicalCombo(combo), fn: fn})
	return true
}

// rebind replaces the combo of a registered action. Unknown names and
// invalid combos are logged and leave the current binding in place.
func (s *actionSet) rebind(name, combo string) bool {
	if !validCombo(combo) {
		logWarn("binding %q for %q is invalid, keeping default", combo, name)
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, ok := s.names[strings.ToLower(name)]
	if !ok {
		logWarn("binding for unknown action %q ignored", name)
		return false
	}
	s.actions[idx].combo = canonicalCombo(combo)
	return true
}

// applyBindingOverrides merges saved per-action combos over the defaults.
func (s *actionSet) applyBindingOverrides(overrides map[string]string) {
	for name, combo := range overrides {
		s.rebind(name, combo)
	}
}

// setAllEnabled mass-enables or mass-disables every action; used to suppress
// overlay hotkeys while a modal (file dialog, help) owns the keyboard.
func (s *actionSet) setAllEnabled(on bool) {
	s.mu.Lock()
	for _, a := range s.actions {
		a.disabled = !on
	}
	s.mu.Unlock()
}

func (s *actionSet) comboFor(name string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx, ok := s.names[strings.ToLower(name)]; ok {
		return s.actions[idx].combo
	}
	return ""
}

// list returns name/combo pairs in registration order for the help screen.
func (s *actionSet) list() [][2]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([][2]string, 0, len(s.actions))
	for _, a := range s.actions {
		out = append(out, [2]string{a.name, a.combo})
	}
	return out
}

// keyInput is one tick's worth of chord input: the modifier state and the
// non-modifier keys that went down this tick. Built from ebiten in Update
// and passed in, so dispatch stays testable without a window.
type keyInput struct {
	ctrl, alt, shift bool
	keys             []ebiten.Key
}

func pollKeyInput() keyInput {
	in := keyInput{
		ctrl:  ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight),
		alt:   ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight),
		shift: ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight),
	}
	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		if isModifier(k) {
			continue
		}
		in.keys = append(in.keys, k)
	}
	return in
}

// combos expands the snapshot into one combo string per trigger key.
func (in keyInput) combos() []string {
	if len(in.keys) == 0 {
		return nil
	}
	var mods []string
	if in.ctrl {
		mods = append(mods, "Ctrl")
	}
	if in.alt {
		mods = append(mods, "Alt")
	}
	if in.shift {
		mods = append(mods, "Shift")
	}
	out := make([]string, 0, len(in.keys))
	for _, k := range in.keys {
		out = append(out, strings.Join(append(append([]string(nil), mods...), k.String()), "-"))
	}
	return out
}

// dispatch runs the callback of every enabled action whose chord fired this
// tick, each exactly once.
func (s *actionSet) dispatch(in keyInput) {
	fired := in.combos()
	if len(fired) == 0 {
		return
	}
	s.mu.RLock()
	list := append([]*action(nil), s.actions...)
	s.mu.RUnlock()
	for _, a := range list {
		if a.disabled {
			continue
		}
		for _, combo := range fired {
			if sameCombo(a.combo, combo) {
				a.fn()
				break
			}
		}
	}
}
