package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Parse errors.
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Event represents a single key press.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// Matches reports whether e is the same key press as other.
// Shift is ignored for characters since it is part of the character.
func (e Event) Matches(other Event) bool {
	if e.Key != other.Key {
		return false
	}
	if e.Key == KeyRune {
		const mask = ModCtrl | ModAlt | ModMeta
		return e.Rune == other.Rune && e.Modifiers&mask == other.Modifiers&mask
	}
	return e.Modifiers == other.Modifiers
}

// String returns the canonical specification, parseable by Parse.
func (e Event) String() string {
	var name string
	if e.Key == KeyRune {
		name = string(e.Rune)
	} else {
		name = e.Key.String()
	}

	mods := e.Modifiers
	if e.Key == KeyRune {
		mods &^= ModShift
	}
	if mods == ModNone {
		return name
	}
	return mods.String() + "+" + name
}

// Parse parses a key specification like "q", "PgDn" or "Ctrl+L".
// A lone "+" is the plus character.
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}
	if spec == "+" {
		return NewRuneEvent('+', ModNone), nil
	}

	parts := strings.Split(spec, "+")
	keyPart := parts[len(parts)-1]
	if keyPart == "" && len(parts) > 1 {
		// "Ctrl++"
		keyPart = "+"
		parts = parts[:len(parts)-1]
	}

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		if p == "" {
			continue
		}
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(mod)
	}

	if k, ok := FromName(keyPart); ok {
		return NewSpecialEvent(k, mods), nil
	}
	if strings.EqualFold(keyPart, "space") {
		return NewRuneEvent(' ', mods), nil
	}
	if utf8.RuneCountInString(keyPart) == 1 {
		r, _ := utf8.DecodeRuneInString(keyPart)
		return NewRuneEvent(r, mods), nil
	}
	return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
}
