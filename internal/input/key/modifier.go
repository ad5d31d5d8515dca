package key

import "strings"

// Modifier is a set of held modifier keys.
type Modifier uint8

// Modifier bits. Meta is Cmd on macOS terminals that report it.
const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << (iota - 1)
	ModCtrl
	ModAlt
	ModMeta
)

// modifierOrder is the canonical order used by String.
var modifierOrder = []struct {
	mod  Modifier
	name string
}{
	{ModCtrl, "Ctrl"},
	{ModAlt, "Alt"},
	{ModShift, "Shift"},
	{ModMeta, "Meta"},
}

// Aliases accepted by ModifierFromName, lower case.
var modifierNames = map[string]Modifier{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"alt":     ModAlt,
	"option":  ModAlt,
	"shift":   ModShift,
	"meta":    ModMeta,
	"cmd":     ModMeta,
	"super":   ModMeta,
}

// Has reports whether any bit of mod is set in m.
func (m Modifier) Has(mod Modifier) bool { return m&mod != 0 }

// HasShift reports whether Shift is held.
func (m Modifier) HasShift() bool { return m.Has(ModShift) }

// HasCtrl reports whether Control is held.
func (m Modifier) HasCtrl() bool { return m.Has(ModCtrl) }

// HasAlt reports whether Alt is held.
func (m Modifier) HasAlt() bool { return m.Has(ModAlt) }

// HasMeta reports whether Meta is held.
func (m Modifier) HasMeta() bool { return m.Has(ModMeta) }

// With returns m plus mod.
func (m Modifier) With(mod Modifier) Modifier { return m | mod }

// String joins the held modifiers with "+", e.g. "Ctrl+Shift".
func (m Modifier) String() string {
	var b strings.Builder
	for _, o := range modifierOrder {
		if !m.Has(o.mod) {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('+')
		}
		b.WriteString(o.name)
	}
	return b.String()
}

// ModifierFromName returns the modifier named by name, ignoring case and
// surrounding space. Unknown names return ModNone.
func ModifierFromName(name string) Modifier {
	return modifierNames[strings.ToLower(strings.TrimSpace(name))]
}
