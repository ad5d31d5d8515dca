// Package selection provides the click-driven record selection model.
//
// The selection is an insertion-ordered set of record references. It never
// owns or copies records: callers pass a liveness predicate on read and
// references to removed records are dropped at that point.
//
// Range clicks are always resolved against the view passed with the click,
// so a resort or refilter between two range clicks changes what the second
// one covers.
package selection

import "github.com/dshills/gridview/internal/record"

// Kind is the kind of click.
type Kind uint8

const (
	// Replace selects exactly the clicked record (plain click).
	Replace Kind = iota
	// Toggle adds or removes the clicked record (ctrl or meta click).
	Toggle
	// Extend adds the contiguous range from the anchor (shift click).
	Extend
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Replace:
		return "replace"
	case Toggle:
		return "toggle"
	case Extend:
		return "extend"
	default:
		return "unknown"
	}
}

// Model is an insertion-ordered set of selected records.
type Model struct {
	order []*record.Record
	set   map[*record.Record]struct{}
}

// New creates an empty selection.
func New() *Model {
	return &Model{
		set: make(map[*record.Record]struct{}),
	}
}

// Click applies a click on rec with the given kind, resolving ranges
// against view. A nil rec is ignored.
func (m *Model) Click(view []*record.Record, rec *record.Record, kind Kind) {
	if rec == nil {
		return
	}

	switch kind {
	case Toggle:
		if m.Contains(rec) {
			m.remove(rec)
		} else {
			m.add(rec)
		}
	case Extend:
		if !m.extend(view, rec) {
			m.replace(rec)
		}
	default:
		m.replace(rec)
	}
}

// Anchor returns the first selected record still in the set, the origin of
// range clicks.
func (m *Model) Anchor() (*record.Record, bool) {
	if len(m.order) == 0 {
		return nil, false
	}
	return m.order[0], true
}

// Contains returns true if rec is selected.
func (m *Model) Contains(rec *record.Record) bool {
	_, ok := m.set[rec]
	return ok
}

// Len returns the number of selected references, including any not yet pruned.
func (m *Model) Len() int {
	return len(m.order)
}

// Clear empties the selection.
func (m *Model) Clear() {
	m.order = nil
	m.set = make(map[*record.Record]struct{})
}

// Selected returns the selection in insertion order.
// When alive is non-nil, references it rejects are pruned first.
func (m *Model) Selected(alive func(*record.Record) bool) []*record.Record {
	if alive != nil {
		m.Prune(alive)
	}
	out := make([]*record.Record, len(m.order))
	copy(out, m.order)
	return out
}

// Prune drops every reference alive rejects and returns how many were dropped.
func (m *Model) Prune(alive func(*record.Record) bool) int {
	kept := m.order[:0]
	dropped := 0
	for _, r := range m.order {
		if alive(r) {
			kept = append(kept, r)
			continue
		}
		delete(m.set, r)
		dropped++
	}
	for i := len(kept); i < len(m.order); i++ {
		m.order[i] = nil
	}
	m.order = kept
	return dropped
}

func (m *Model) replace(rec *record.Record) {
	m.Clear()
	m.add(rec)
}

func (m *Model) add(rec *record.Record) {
	if m.Contains(rec) {
		return
	}
	m.set[rec] = struct{}{}
	m.order = append(m.order, rec)
}

func (m *Model) remove(rec *record.Record) {
	delete(m.set, rec)
	for i, r := range m.order {
		if r == rec {
			m.order = append(m.order[:i], m.order[i+1:]...)
			return
		}
	}
}

// extend adds the range between the anchor and rec within view.
// It returns false when either end is not in view.
func (m *Model) extend(view []*record.Record, rec *record.Record) bool {
	anchor, ok := m.Anchor()
	if !ok {
		return false
	}

	from, to := IndexOf(view, anchor), IndexOf(view, rec)
	if from < 0 || to < 0 {
		return false
	}
	if from > to {
		from, to = to, from
	}
	for i := from; i <= to; i++ {
		m.add(view[i])
	}
	return true
}

// IndexOf returns the position of rec in view by identity, or -1.
func IndexOf(view []*record.Record, rec *record.Record) int {
	for i, r := range view {
		if r == rec {
			return i
		}
	}
	return -1
}
