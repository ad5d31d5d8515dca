// Package key provides keyboard event types and key specification parsing.
//
//   - Key: identifies a special key, or KeyRune for characters
//   - Modifier: a bitset of Shift, Ctrl, Alt and Meta
//   - Event: one key press with its modifiers
//
// Key specifications are used for configurable bindings:
//
//   - Simple keys: "q", "/", "1", "Enter", "Esc", "PgDn"
//   - With modifiers: "Ctrl+L", "Alt+Left", "Shift+Tab"
package key
