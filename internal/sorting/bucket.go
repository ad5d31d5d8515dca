package sorting

import (
	"sort"

	"github.com/dshills/gridview/internal/record"
)

// missingBucket is the key for records whose value is missing or falsy.
const missingBucket = "0"

// BucketSort returns view ordered by hierarchy using stable hierarchical
// bucketing.
//
// Records are grouped by the string form of the first hierarchy property,
// each group is regrouped by the next property, and so on. Bucket keys are
// ordered numerically when both parse as numbers, otherwise ordinally.
// The tree is flattened depth-first. Records that tie on every level keep
// their input order.
//
// The work happens on an arena of record indices: each level partitions a
// contiguous index range into buckets delimited by boundary offsets, so no
// per-level record containers are allocated.
func BucketSort(view []*record.Record, hierarchy []string, dir Direction) []*record.Record {
	n := len(view)
	out := make([]*record.Record, n)
	if n == 0 {
		return out
	}

	b := &bucketer{
		view:      view,
		hierarchy: hierarchy,
		dir:       dir,
		arena:     make([]int, n),
		scratch:   make([]int, n),
		keys:      make([]string, n),
	}
	for i := range b.arena {
		b.arena[i] = i
	}
	b.partition(0, n, 0)

	for i, idx := range b.arena {
		out[i] = view[idx]
	}
	return out
}

type bucketer struct {
	view      []*record.Record
	hierarchy []string
	dir       Direction

	// arena holds record indices; every bucket is a contiguous range.
	arena []int
	// scratch is the placement buffer for one partition pass.
	scratch []int
	// keys caches bucket keys for the range being partitioned.
	keys []string
}

// partition orders arena[lo:hi] by hierarchy[level] and recurses into each bucket.
func (b *bucketer) partition(lo, hi, level int) {
	if hi-lo < 2 || level >= len(b.hierarchy) {
		return
	}
	property := b.hierarchy[level]

	slots := make(map[string]int)
	var unique []string
	for i := lo; i < hi; i++ {
		key := BucketKey(b.view[b.arena[i]].Value(property))
		b.keys[i] = key
		if _, ok := slots[key]; !ok {
			slots[key] = len(unique)
			unique = append(unique, key)
		}
	}

	if len(unique) == 1 {
		b.partition(lo, hi, level+1)
		return
	}

	// order[r] is the unique-key slot that ranks r-th.
	order := make([]int, len(unique))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		ki, kj := unique[order[i]], unique[order[j]]
		if b.dir == Desc {
			return keyLess(kj, ki)
		}
		return keyLess(ki, kj)
	})
	rank := make([]int, len(unique))
	for r, slot := range order {
		rank[slot] = r
	}

	// Boundary offsets: bounds[r] is the start of bucket r within [lo, hi).
	bounds := make([]int, len(unique)+1)
	for i := lo; i < hi; i++ {
		bounds[rank[slots[b.keys[i]]]+1]++
	}
	for r := 1; r < len(bounds); r++ {
		bounds[r] += bounds[r-1]
	}

	next := make([]int, len(unique))
	copy(next, bounds[:len(unique)])
	for i := lo; i < hi; i++ {
		r := rank[slots[b.keys[i]]]
		b.scratch[lo+next[r]] = b.arena[i]
		next[r]++
	}
	copy(b.arena[lo:hi], b.scratch[lo:hi])

	for r := 0; r < len(unique); r++ {
		b.partition(lo+bounds[r], lo+bounds[r+1], level+1)
	}
}

// BucketKey returns the bucket a value falls into.
// Missing and falsy values share the "0" bucket.
func BucketKey(v any) string {
	if record.IsFalsy(v) {
		return missingBucket
	}
	return record.String(v)
}

// keyLess orders bucket keys: numerically when both parse, else ordinally.
func keyLess(a, b string) bool {
	an, aok := record.Number(a)
	bn, bok := record.Number(b)
	if aok && bok {
		return an < bn
	}
	return a < b
}
