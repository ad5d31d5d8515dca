package keymap

import (
	"fmt"
	"maps"

	"github.com/dshills/gridview/internal/input/key"
)

// Keymap holds key bindings.
type Keymap struct {
	// Name is the keymap identifier.
	Name string

	// Bindings are the key-to-action mappings.
	Bindings []Binding

	// Source indicates where this keymap was defined.
	// Examples: "default", "config"
	Source string
}

// NewKeymap creates a new keymap with the given name.
func NewKeymap(name string) *Keymap {
	return &Keymap{
		Name:     name,
		Bindings: make([]Binding, 0),
	}
}

// WithSource sets the source for this keymap.
func (k *Keymap) WithSource(source string) *Keymap {
	k.Source = source
	return k
}

// Add adds a binding to this keymap.
func (k *Keymap) Add(keys, action string) *Keymap {
	k.Bindings = append(k.Bindings, Binding{
		Keys:   keys,
		Action: action,
	})
	return k
}

// AddBinding adds a fully configured binding to this keymap.
func (k *Keymap) AddBinding(binding Binding) *Keymap {
	k.Bindings = append(k.Bindings, binding)
	return k
}

// Merge appends other's bindings so they take precedence over k's.
func (k *Keymap) Merge(other *Keymap) *Keymap {
	if other != nil {
		k.Bindings = append(k.Bindings, other.Bindings...)
	}
	return k
}

// Validate checks that all bindings in the keymap are valid.
func (k *Keymap) Validate() error {
	for i, b := range k.Bindings {
		if b.Keys == "" {
			return fmt.Errorf("binding %d: empty keys", i)
		}
		if b.Action == "" {
			return fmt.Errorf("binding %d (%s): empty action", i, b.Keys)
		}
		if !IsAction(b.Action) {
			return fmt.Errorf("binding %d (%s): unknown action %q", i, b.Keys, b.Action)
		}
		if _, err := key.Parse(b.Keys); err != nil {
			return fmt.Errorf("binding %d (%s): %w", i, b.Keys, err)
		}
	}
	return nil
}

// ParsedKeymap is a keymap with pre-parsed key events.
type ParsedKeymap struct {
	*Keymap
	ParsedBindings []ParsedBinding
}

// Parse validates and parses all bindings in the keymap.
func (k *Keymap) Parse() (*ParsedKeymap, error) {
	if err := k.Validate(); err != nil {
		return nil, err
	}

	parsed := &ParsedKeymap{
		Keymap:         k,
		ParsedBindings: make([]ParsedBinding, 0, len(k.Bindings)),
	}
	for _, b := range k.Bindings {
		ev, err := key.Parse(b.Keys)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", b.Keys, err)
		}
		parsed.ParsedBindings = append(parsed.ParsedBindings, ParsedBinding{
			Binding: b,
			Event:   ev,
		})
	}
	return parsed, nil
}

// Lookup returns the binding triggered by ev. The last matching binding wins.
func (p *ParsedKeymap) Lookup(ev key.Event) (*Binding, bool) {
	for i := len(p.ParsedBindings) - 1; i >= 0; i-- {
		pb := &p.ParsedBindings[i]
		if pb.Match(ev) {
			return &pb.Binding, true
		}
	}
	return nil, false
}

// Clone creates a deep copy of the keymap.
func (k *Keymap) Clone() *Keymap {
	clone := &Keymap{
		Name:     k.Name,
		Source:   k.Source,
		Bindings: make([]Binding, len(k.Bindings)),
	}
	for i, b := range k.Bindings {
		clone.Bindings[i] = b
		if b.Args != nil {
			clone.Bindings[i].Args = maps.Clone(b.Args)
		}
	}
	return clone
}
