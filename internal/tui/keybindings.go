package tui

import (
	"slices"

	"github.com/gdamore/tcell/v2"
)

// ViewMode is the part of the search screen that owns the keyboard.
type ViewMode int

const (
	ModeInput ViewMode = iota
	ModeResults
	ModeFilter
	ModeModal
)

// KeyBinding defines a keyboard shortcut.
type KeyBinding struct {
	Key         tcell.Key // special keys; tcell.KeyRune for characters
	Rune        rune
	Description string
	Modes       []ViewMode // empty means every mode
	Handler     func() bool
}

// KeyBindings dispatches key events to the bindings of the current mode.
type KeyBindings struct {
	bindings []KeyBinding
	mode     ViewMode
}

func NewKeyBindings() *KeyBindings {
	return &KeyBindings{mode: ModeInput}
}

func (kb *KeyBindings) SetMode(mode ViewMode) {
	kb.mode = mode
}

func (kb *KeyBindings) Mode() ViewMode {
	return kb.mode
}

// RegisterKey binds a character key.
func (kb *KeyBindings) RegisterKey(r rune, description string, modes []ViewMode, handler func() bool) {
	kb.bindings = append(kb.bindings, KeyBinding{
		Key:         tcell.KeyRune,
		Rune:        r,
		Description: description,
		Modes:       modes,
		Handler:     handler,
	})
}

// RegisterSpecial binds a non-character key.
func (kb *KeyBindings) RegisterSpecial(key tcell.Key, description string, modes []ViewMode, handler func() bool) {
	kb.bindings = append(kb.bindings, KeyBinding{
		Key:         key,
		Description: description,
		Modes:       modes,
		Handler:     handler,
	})
}

// Handle runs the first matching binding that accepts the event.
func (kb *KeyBindings) Handle(event *tcell.EventKey) bool {
	for _, b := range kb.bindings {
		if len(b.Modes) > 0 && !slices.Contains(b.Modes, kb.mode) {
			continue
		}

		if b.Key != event.Key() {
			continue
		}

		if b.Key == tcell.KeyRune && b.Rune != event.Rune() {
			continue
		}

		if b.Handler() {
			return true
		}
	}

	return false
}

// HelpEntry is one line of the help screen.
type HelpEntry struct {
	Key         string
	Description string
}

// HelpEntries lists the described bindings of a mode in registration order.
func (kb *KeyBindings) HelpEntries(mode ViewMode) []HelpEntry {
	var entries []HelpEntry

	for _, b := range kb.bindings {
		if b.Description == "" {
			continue
		}

		if len(b.Modes) > 0 && !slices.Contains(b.Modes, mode) {
			continue
		}

		entries = append(entries, HelpEntry{Key: formatKey(b), Description: b.Description})
	}

	return entries
}

func formatKey(b KeyBinding) string {
	if b.Key == tcell.KeyRune {
		if b.Rune >= 'A' && b.Rune <= 'Z' {
			return "Shift+" + string(b.Rune)
		}

		return string(b.Rune)
	}

	switch b.Key {
	case tcell.KeyEnter:
		return "Enter"
	case tcell.KeyEscape:
		return "Esc"
	case tcell.KeyTab:
		return "Tab"
	case tcell.KeyUp:
		return "↑"
	case tcell.KeyDown:
		return "↓"
	case tcell.KeyDelete:
		return "Del"
	case tcell.KeyCtrlL:
		return "Ctrl+L"
	case tcell.KeyCtrlC:
		return "Ctrl+C"
	default:
		return tcell.KeyNames[b.Key]
	}
}
