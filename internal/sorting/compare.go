// Package sorting orders record views by a property hierarchy.
//
// A hierarchy is the primary property followed by the tie-break chain the
// schema configures for it. Two interchangeable algorithms implement the
// same contract (view, hierarchy, direction -> ordered view):
//
//   - BucketSort, the default, is stable and hierarchical.
//   - PartitionSort is an in-place quicksort over Compare; it is not stable.
//
// Sorter adds the reversal shortcut on top: flipping only the direction of
// the previous sort over an unchanged view reverses the prior result in O(n).
package sorting

import (
	"fmt"
	"strings"

	"github.com/dshills/gridview/internal/record"
	"github.com/dshills/gridview/internal/schema"
)

// Mode selects which relation Compare tests.
type Mode uint8

const (
	// Less tests whether a sorts before b.
	Less Mode = iota + 1
	// Greater tests whether a sorts after b.
	Greater
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Less:
		return "less"
	case Greater:
		return "greater"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// Direction is the sort direction.
type Direction uint8

const (
	// Asc sorts smallest first.
	Asc Direction = iota
	// Desc sorts largest first.
	Desc
)

// String returns "asc" or "desc".
func (d Direction) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Desc {
		return Asc
	}
	return Desc
}

// ParseDirection parses "asc" or "desc" (case-insensitive).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending", "":
		return Asc, nil
	case "desc", "descending":
		return Desc, nil
	default:
		return Asc, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
	}
}

// Hierarchy returns the primary property followed by its tie-break chain.
func Hierarchy(s *schema.Schema, primary string) []string {
	chain := s.SortOrder(primary)
	h := make([]string, 0, 1+len(chain))
	h = append(h, primary)
	return append(h, chain...)
}

// Compare tests a against b over hierarchy.
//
// The first level where the values differ decides: numerically when both
// parse as numbers, otherwise by native ordering. A missing left value is
// less than any present right value, and vice versa. Desc swaps the
// relation. When no level differs the records are equal and Compare
// returns false for either mode.
//
// Compare panics with *InvariantError if mode is not Less or Greater.
func Compare(a, b *record.Record, mode Mode, hierarchy []string, dir Direction) bool {
	if mode != Less && mode != Greater {
		panic(&InvariantError{Op: "compare", Value: mode, Err: ErrInvalidMode})
	}

	for _, property := range hierarchy {
		av, bv := a.Value(property), b.Value(property)
		if record.Identical(av, bv) {
			continue
		}

		less, greater := relate(av, bv)
		if dir == Desc {
			less, greater = greater, less
		}
		if mode == Less {
			return less
		}
		return greater
	}
	return false
}

// relate computes the natural (ascending) relation between two differing values.
func relate(a, b any) (less, greater bool) {
	switch {
	case a == nil:
		return true, false
	case b == nil:
		return false, true
	}

	an, aok := record.Number(a)
	bn, bok := record.Number(b)
	if aok && bok {
		return an < bn, an > bn
	}
	return record.NativeLess(a, b), record.NativeLess(b, a)
}
