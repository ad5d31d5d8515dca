package sorting

import (
	"fmt"
	"strings"
	"time"

	"github.com/dshills/gridview/internal/record"
	"github.com/dshills/gridview/internal/schema"
)

// Algorithm selects the sort implementation.
type Algorithm uint8

const (
	// AlgorithmBucket is the stable hierarchical bucket sort (default).
	AlgorithmBucket Algorithm = iota
	// AlgorithmPartition is the quicksort variant.
	AlgorithmPartition
)

// String returns the algorithm name.
func (a Algorithm) String() string {
	switch a {
	case AlgorithmBucket:
		return "bucket"
	case AlgorithmPartition:
		return "partition"
	default:
		return "unknown"
	}
}

// ParseAlgorithm parses an algorithm name. An empty name is the default.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "bucket", "bucketsort":
		return AlgorithmBucket, nil
	case "partition", "quick", "quicksort":
		return AlgorithmPartition, nil
	default:
		return AlgorithmBucket, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
	}
}

// Run sorts view with the algorithm.
func (a Algorithm) Run(view []*record.Record, hierarchy []string, dir Direction) []*record.Record {
	if a == AlgorithmPartition {
		return PartitionSort(view, hierarchy, dir)
	}
	return BucketSort(view, hierarchy, dir)
}

// Request describes a sort of a view.
type Request struct {
	// View is the view to order. It is never modified.
	View []*record.Record

	// Generation identifies View. The owner bumps it whenever the view
	// it passes changes (for example after a new filter).
	Generation uint64

	// Property is the primary sort property.
	Property string

	// Direction is the requested direction.
	Direction Direction
}

// Report describes a completed sort.
type Report struct {
	Hierarchy []string
	Algorithm Algorithm
	Direction Direction
	Elapsed   time.Duration

	// Reversed is true when the reversal shortcut produced the result.
	Reversed bool
}

// AlgorithmUsed names what produced the result: "reverse" or the algorithm.
func (r Report) AlgorithmUsed() string {
	if r.Reversed {
		return "reverse"
	}
	return r.Algorithm.String()
}

// Sorter sorts views for one table and remembers the last sort.
type Sorter struct {
	schema    *schema.Schema
	algorithm Algorithm

	last *lastSort
}

type lastSort struct {
	generation uint64
	property   string
	direction  Direction
	result     []*record.Record
}

// NewSorter creates a sorter for a schema.
func NewSorter(s *schema.Schema, algorithm Algorithm) *Sorter {
	return &Sorter{
		schema:    s,
		algorithm: algorithm,
	}
}

// Algorithm returns the configured algorithm.
func (s *Sorter) Algorithm() Algorithm {
	return s.algorithm
}

// SetAlgorithm switches the algorithm for subsequent sorts.
func (s *Sorter) SetAlgorithm(a Algorithm) {
	s.algorithm = a
}

// Sort orders req.View and returns a new slice.
//
// When req repeats the previous primary property with only the direction
// flipped and the same Generation, the previous result is reversed instead
// of re-sorting.
func (s *Sorter) Sort(req Request) ([]*record.Record, Report) {
	start := time.Now()
	report := Report{
		Hierarchy: Hierarchy(s.schema, req.Property),
		Algorithm: s.algorithm,
		Direction: req.Direction,
	}

	var result []*record.Record
	if s.canReverse(req) {
		result = reversed(s.last.result)
		report.Reversed = true
	} else {
		result = s.algorithm.Run(req.View, report.Hierarchy, req.Direction)
	}

	s.last = &lastSort{
		generation: req.Generation,
		property:   req.Property,
		direction:  req.Direction,
		result:     result,
	}
	report.Elapsed = time.Since(start)
	return result, report
}

// Current returns the property and direction of the last sort.
func (s *Sorter) Current() (property string, dir Direction, ok bool) {
	if s.last == nil {
		return "", Asc, false
	}
	return s.last.property, s.last.direction, true
}

// Reset forgets the last sort.
func (s *Sorter) Reset() {
	s.last = nil
}

func (s *Sorter) canReverse(req Request) bool {
	return s.last != nil &&
		s.last.generation == req.Generation &&
		s.last.property == req.Property &&
		s.last.direction != req.Direction &&
		len(s.last.result) == len(req.View)
}

func reversed(in []*record.Record) []*record.Record {
	out := make([]*record.Record, len(in))
	for i, r := range in {
		out[len(in)-1-i] = r
	}
	return out
}
