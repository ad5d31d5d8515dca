// Package keymap maps key presses to named actions.
//
// A Keymap is a list of bindings written as key specifications ("q",
// "PgDn", "Ctrl+l"). Parse validates them once; Lookup then resolves a
// key.Event to its binding. When two bindings use the same keys the later
// one wins, so user overrides are appended after the defaults.
package keymap
