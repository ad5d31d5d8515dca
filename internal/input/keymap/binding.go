package keymap

import (
	"github.com/dshills/gridview/internal/input/key"
)

// Binding represents a single key-to-action mapping.
type Binding struct {
	// Keys is the key specification that triggers this binding.
	// Formats: "j", "PgDn", "Ctrl+l", "Shift+Tab"
	Keys string

	// Action is the command to execute, one of the Action* names.
	Action string

	// Args are fixed arguments for the action.
	Args map[string]any

	// Description provides documentation for the binding.
	Description string

	// Category groups bindings for display purposes.
	Category string
}

// NewBinding creates a new binding with the given keys and action.
func NewBinding(keys, action string) Binding {
	return Binding{
		Keys:   keys,
		Action: action,
	}
}

// WithArgs sets arguments for this binding.
func (b Binding) WithArgs(args map[string]any) Binding {
	b.Args = args
	return b
}

// WithDescription sets the description for this binding.
func (b Binding) WithDescription(desc string) Binding {
	b.Description = desc
	return b
}

// WithCategory sets the category for this binding.
func (b Binding) WithCategory(category string) Binding {
	b.Category = category
	return b
}

// IntArg returns the integer argument name, or def when it is missing or
// not a number. TOML and JSON decoders produce int64 and float64.
func (b Binding) IntArg(name string, def int) int {
	switch v := b.Args[name].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return def
}

// ParsedBinding is a binding with a pre-parsed key event.
type ParsedBinding struct {
	Binding
	Event key.Event
}

// Match reports whether ev triggers this binding.
func (pb *ParsedBinding) Match(ev key.Event) bool {
	if pb == nil {
		return false
	}
	return pb.Event.Matches(ev)
}
