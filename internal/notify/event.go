package notify

import (
	"time"

	"github.com/google/uuid"

	"github.com/dshills/gridview/internal/record"
	"github.com/dshills/gridview/internal/sorting"
)

// Kind identifies the type of a table event.
type Kind uint8

const (
	// KindScroll is emitted when the vertical offset changes.
	KindScroll Kind = iota + 1
	// KindSearch is emitted after a filter is applied.
	KindSearch
	// KindSort is emitted after a sort completes.
	KindSort
	// KindClearSearch is emitted when the filter is removed.
	KindClearSearch
	// KindClearSort is emitted when the sort is removed.
	KindClearSort
)

// String returns the event kind name.
func (k Kind) String() string {
	switch k {
	case KindScroll:
		return "scroll"
	case KindSearch:
		return "search"
	case KindSort:
		return "sort"
	case KindClearSearch:
		return "clearSearch"
	case KindClearSort:
		return "clearSort"
	default:
		return "unknown"
	}
}

// Event is a notification published by a table.
type Event interface {
	// Kind returns the event kind.
	Kind() Kind
	// Source returns the ID of the table that published the event.
	Source() uuid.UUID
}

// Header carries the fields common to every event.
type Header struct {
	TableID uuid.UUID
	Time    time.Time
}

// Source returns the publishing table ID.
func (h Header) Source() uuid.UUID {
	return h.TableID
}

// NewHeader creates a header stamped with the current time.
func NewHeader(id uuid.UUID) Header {
	return Header{TableID: id, Time: time.Now()}
}

// ScrollEvent reports a vertical scroll.
type ScrollEvent struct {
	Header
	Offset       int
	WindowLength int
	Steps        int

	// Visible is the window of the active view now on screen.
	Visible []*record.Record
}

// Kind implements Event.
func (ScrollEvent) Kind() Kind { return KindScroll }

// SearchEvent reports a completed filter.
type SearchEvent struct {
	Header
	Results           []*record.Record
	TermsMatched      []string
	TermsNotMatched   []string
	PropertiesChecked []string
}

// Kind implements Event.
func (SearchEvent) Kind() Kind { return KindSearch }

// SortEvent reports a completed sort.
type SortEvent struct {
	Header
	Property  string
	Direction sorting.Direction
	Hierarchy []string

	// Algorithm is "bucket", "partition" or "reverse".
	Algorithm     string
	BenchmarkTime time.Duration
}

// Kind implements Event.
func (SortEvent) Kind() Kind { return KindSort }

// ClearSearchEvent reports that the filter was removed.
type ClearSearchEvent struct {
	Header
}

// Kind implements Event.
func (ClearSearchEvent) Kind() Kind { return KindClearSearch }

// ClearSortEvent reports that the sort was removed.
type ClearSortEvent struct {
	Header
}

// Kind implements Event.
func (ClearSortEvent) Kind() Kind { return KindClearSort }
